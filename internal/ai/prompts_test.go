package ai

import (
	"strings"
	"testing"

	"newscaster/internal/model"
)

func TestSummaryPromptStyles(t *testing.T) {
	for style, instr := range styleInstructions {
		got := summaryPrompt("Title", "Content here", style)
		if !strings.HasPrefix(got, instr) {
			t.Errorf("style %s: prompt does not start with its instruction", style)
		}
		if !strings.Contains(got, "Content here") {
			t.Errorf("style %s: prompt missing article content", style)
		}
	}
}

func TestSummaryPromptDefaultStyle(t *testing.T) {
	got := summaryPrompt("Title", "Content", model.StyleDefault)
	if !strings.HasPrefix(got, defaultInstruction) {
		t.Errorf("default style should use the generic instruction, got %q", got)
	}
	// an unknown style value must also hit the default case
	got = summaryPrompt("Title", "Content", model.SummaryStyle("Sarcastic"))
	if !strings.HasPrefix(got, defaultInstruction) {
		t.Errorf("unknown style should use the generic instruction, got %q", got)
	}
}

func TestSummaryPromptFallsBackToTitle(t *testing.T) {
	got := summaryPrompt("Only The Title", "   ", model.StyleBrief)
	if !strings.Contains(got, "Only The Title") {
		t.Errorf("empty content should fall back to title, got %q", got)
	}
}

func TestScriptPrompt(t *testing.T) {
	articles := []model.Article{
		{Title: "First", Source: "BBC News", Description: "Desc one"},
		{Title: "Second", Description: "Desc two"},
	}
	got := scriptPrompt(articles, model.StyleHumorous, "alice")
	for _, want := range []string{
		"1. Title: First",
		"Source: BBC News",
		"2. Title: Second",
		"Source: Unknown Source",
		"alice",
		"Humorous",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("script prompt missing %q", want)
		}
	}
}
