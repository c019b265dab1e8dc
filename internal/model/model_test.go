package model

import "testing"

func TestParseStyle(t *testing.T) {
	cases := []struct {
		in   string
		want SummaryStyle
	}{
		{"Brief", StyleBrief},
		{"brief", StyleBrief},
		{"  DETAILED ", StyleDetailed},
		{"eli5", StyleELI5},
		{"Humorous", StyleHumorous},
		{"storytelling", StyleStorytelling},
		{"Poetic", StylePoetic},
		{"", StyleDefault},
		{"sarcastic", StyleDefault},
	}
	for _, tc := range cases {
		if got := ParseStyle(tc.in); got != tc.want {
			t.Errorf("ParseStyle(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestArticlesEqual(t *testing.T) {
	a := []Article{{Title: "A", URL: "https://x/1"}, {Title: "B", URL: "https://x/2"}}
	b := []Article{{Title: "A", URL: "https://x/1"}, {Title: "B", URL: "https://x/2"}}
	if !ArticlesEqual(a, b) {
		t.Error("identical ordered sets should be equal")
	}
	// order matters: the snapshot is an ordered sequence
	if ArticlesEqual(a, []Article{b[1], b[0]}) {
		t.Error("reordered sets must not be equal")
	}
	if ArticlesEqual(a, a[:1]) {
		t.Error("different lengths must not be equal")
	}
	// read-state changes break equality, which forces podcast regeneration
	c := append([]Article(nil), a...)
	c[0].IsRead = true
	if ArticlesEqual(a, c) {
		t.Error("differing read flags must not be equal")
	}
	if !ArticlesEqual(nil, nil) {
		t.Error("two empty sets should be equal")
	}
}
