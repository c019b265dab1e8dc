package ai

import "testing"

func TestStripPreamble(t *testing.T) {
	s, err := NewPreambleStripper(nil)
	if err != nil {
		t.Fatalf("NewPreambleStripper error: %v", err)
	}
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "heres a summary",
			in:   "Here's a summary of the article you requested: The markets rallied today.",
			want: "The markets rallied today.",
		},
		{
			name: "case insensitive",
			in:   "HERE IS A SUMMARY OF THE ARTICLE: Rates went up.",
			want: "Rates went up.",
		},
		{
			name: "summarized",
			in:   "Summarized for you: Storms hit the coast.",
			want: "Storms hit the coast.",
		},
		{
			name: "explaining",
			in:   "Explaining the key points: Chips are scarce.",
			want: "Chips are scarce.",
		},
		{
			name: "this article is about",
			in:   "This article is about space travel: Rockets launched again.",
			want: "Rockets launched again.",
		},
		{
			name: "turned into",
			in:   "Turned into a story: Once upon a time, rates fell.",
			want: "Once upon a time, rates fell.",
		},
		{
			name: "mid-string untouched",
			in:   "The claim that this article is about fraud: disputed.",
			want: "The claim that this article is about fraud: disputed.",
		},
		{
			name: "clean input untouched",
			in:   "A plain summary with no preamble.",
			want: "A plain summary with no preamble.",
		},
		{
			name: "whitespace trimmed",
			in:   "  \n A padded summary. \n",
			want: "A padded summary.",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.Strip(tc.in); got != tc.want {
				t.Errorf("Strip(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestStripPreambleCustomPatterns(t *testing.T) {
	s, err := NewPreambleStripper([]string{`^in short:`})
	if err != nil {
		t.Fatalf("NewPreambleStripper error: %v", err)
	}
	if got := s.Strip("In short: brevity wins."); got != "brevity wins." {
		t.Errorf("custom pattern not applied, got %q", got)
	}
	// default patterns must not apply when a custom table is supplied
	in := "Here's a summary of the article: untouched."
	if got := s.Strip(in); got != in {
		t.Errorf("default pattern leaked into custom table, got %q", got)
	}
}

func TestStripPreambleBadPattern(t *testing.T) {
	if _, err := NewPreambleStripper([]string{`^(`}); err == nil {
		t.Fatal("expected compile error for invalid pattern")
	}
}
