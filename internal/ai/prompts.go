package ai

import (
	"fmt"
	"strings"

	"newscaster/internal/model"
)

// styleInstructions is a closed lookup table from summary style to the
// instruction wrapped around the article content. Unknown styles fall
// back to defaultInstruction.
var styleInstructions = map[model.SummaryStyle]string{
	model.StyleBrief:        "Summarize this article briefly, keeping it insightful, yet concise. Please go straight into the summary, do not repeat the prompt in any way.",
	model.StyleDetailed:     "Summarize this article in detail, but keep it interesting and thought-provoking. Please go straight into the summary, do not repeat the prompt in any way.",
	model.StyleELI5:         "Explain the key points of this article like I'm five years old, in a concise, yet interesting manner. Please go straight into the summary, do not repeat the prompt in any way.",
	model.StyleHumorous:     "Summarize this article in a humorous way, to aid the reader in understanding and taking away the most from the daily news through humor. Please go straight into the summary, do not repeat the prompt in any way.",
	model.StyleStorytelling: "Turn this article into a storytelling format, that keeps the reader engrossed and helps them come away learning new things. Please go straight into the summary, do not repeat the prompt in any way.",
	model.StylePoetic:       "Turn this article into a poetic recitation, that is intriguing, yet informative.",
}

const defaultInstruction = "Provide a generic summary of this article."

// summaryPrompt builds the single-turn prompt for one article. Content
// falls back to the title when empty.
func summaryPrompt(title, content string, style model.SummaryStyle) string {
	text := strings.TrimSpace(content)
	if text == "" {
		text = strings.TrimSpace(title)
	}
	instr, ok := styleInstructions[style]
	if !ok {
		instr = defaultInstruction
	}
	return fmt.Sprintf("%s: %s", instr, text)
}

// scriptPrompt builds the podcast script prompt from the numbered article
// list, the user's summary style and their name.
func scriptPrompt(articles []model.Article, style model.SummaryStyle, username string) string {
	b := &strings.Builder{}
	for i, a := range articles {
		source := a.Source
		if source == "" {
			source = "Unknown Source"
		}
		fmt.Fprintf(b, "%d. Title: %s\nSource: %s\nSummary: %s\n\n", i+1, a.Title, source, a.Description)
	}
	return fmt.Sprintf(
		"You are a creative assistant skilled in writing engaging and entertaining podcast scripts. "+
			"Below is a collection of summarized news articles. Create a seamless and personalized 2-minute podcast script for a user named %[1]s, based on these articles. "+
			"Tailor the script to the summary style specified (%[2]s) and focus on making it conversational, lively, and relatable.\n\n"+
			"Begin with a warm, energetic introduction that greets %[1]s by name, like a friendly host talking directly to them.\n\n"+
			"For each article:\n%[3]s"+
			"- Summarize it concisely, mentioning the title, key points, and the source. Provide insights, context, or interesting interpretations beyond just reading the title and description.\n"+
			"- Add rhetorical questions (e.g., 'Can you believe it?' or 'What do you think about this?') to engage %[1]s.\n"+
			"- Incorporate humor, light commentary, or thought-provoking remarks to make the podcast engaging.\n"+
			"- Transition smoothly between stories.\n\n"+
			"Conclude with an upbeat outro, thanking %[1]s and urging them to stay curious and motivated.\n"+
			"Ensure the podcast fits within 2 minutes (~300 words) and sounds like it's delivered by a charismatic and lively host.",
		username, style, b.String())
}
