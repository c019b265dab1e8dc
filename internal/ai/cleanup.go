package ai

import (
	"regexp"
	"strings"
)

// DefaultPreamblePatterns are the boilerplate openers models prepend to
// summaries despite being told not to. Matched case-insensitively, only
// at the start of the response. The list is heuristic and expected to be
// tuned; each entry must anchor itself with ^.
var DefaultPreamblePatterns = []string{
	`^here(('|’)s| is) a summary of the article.*?:`,
	`^summariz(ed|es|ing|ation).*?:`,
	`^explain(ed|ing|s).*?:`,
	`^this article is about.*?:`,
	`^turn(ed|ing|s) into.*?:`,
}

// PreambleStripper removes boilerplate preambles from model output.
type PreambleStripper struct {
	re *regexp.Regexp
}

// NewPreambleStripper compiles a stripper from the given pattern table.
// An empty table falls back to DefaultPreamblePatterns.
func NewPreambleStripper(patterns []string) (*PreambleStripper, error) {
	if len(patterns) == 0 {
		patterns = DefaultPreamblePatterns
	}
	re, err := regexp.Compile("(?i)(" + strings.Join(patterns, "|") + ")")
	if err != nil {
		return nil, err
	}
	return &PreambleStripper{re: re}, nil
}

// Strip removes a leading boilerplate preamble, if any, and trims
// surrounding whitespace.
func (p *PreambleStripper) Strip(s string) string {
	return strings.TrimSpace(p.re.ReplaceAllString(strings.TrimSpace(s), ""))
}
