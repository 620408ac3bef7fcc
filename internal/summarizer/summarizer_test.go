package summarizer

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func newProfile(t *testing.T) *EnglishProfile {
	t.Helper()
	p, err := NewEnglishProfile()
	if err != nil {
		t.Fatalf("NewEnglishProfile returned error: %v", err)
	}
	return p
}

func TestSentences(t *testing.T) {
	p := newProfile(t)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "merged comment bodies",
			text: "Great idea!I disagree completely.",
			want: []string{"Great idea!", "I disagree completely."},
		},
		{
			name: "initialism",
			text: "I moved to the U.S. last year. Rent is high.",
			want: []string{"I moved to the U.S. last year.", "Rent is high."},
		},
		{
			name: "title abbreviation",
			text: "Dr. Smith recommends Go. It is fast.",
			want: []string{"Dr. Smith recommends Go.", "It is fast."},
		},
		{
			name: "decimal number",
			text: "It costs 3.5 dollars. Worth it.",
			want: []string{"It costs 3.5 dollars.", "Worth it."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Sentences(tt.text)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("Sentences() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTermsStemsAndDropsStopWords(t *testing.T) {
	p := newProfile(t)

	got := strings.Join(p.Terms("The keyboards are running and the switches were clicking"), " ")
	if got != "keyboard run switch click" {
		t.Errorf("Terms() = %q", got)
	}
}

func TestNewUnknownEngine(t *testing.T) {
	if _, err := New("abstractive"); err == nil {
		t.Error("Expected error for unknown engine")
	}
}

func TestSummarizeBlankText(t *testing.T) {
	for _, engine := range []string{"lexrank", "mmr"} {
		s, err := New(engine)
		if err != nil {
			t.Fatalf("New(%s) returned error: %v", engine, err)
		}
		got, err := s.Summarize(context.Background(), " \n ", 7)
		if err != nil {
			t.Errorf("%s: unexpected error %v", engine, err)
		}
		if len(got) != 0 {
			t.Errorf("%s: expected no sentences, got %q", engine, got)
		}
	}
}

func TestSummarizeShortTextReturnsEverySentence(t *testing.T) {
	for _, engine := range []string{"lexrank", "mmr"} {
		s, _ := New(engine)
		got, err := s.Summarize(context.Background(), "Great idea!I disagree completely.", 7)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", engine, err)
		}
		if strings.Join(got, "|") != "Great idea!|I disagree completely." {
			t.Errorf("%s: unexpected summary %q", engine, got)
		}
	}
}

func TestSummarizeCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, _ := New("lexrank")
	if _, err := s.Summarize(ctx, "One. Two.", 7); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

var keyboardThread = []string{
	"Mechanical keyboards with tactile switches feel great for typing.",
	"Tactile switches give clear feedback when typing on a keyboard.",
	"I bought a cheap keyboard and the switches failed after a month.",
	"Linear switches are smoother but some people miss tactile feedback.",
	"The weather was nice yesterday.",
	"Budget keyboards often use membrane switches instead of mechanical ones.",
	"Typing feedback matters more than keycap colour for most people.",
	"My cat sleeps on the keyboard.",
	"Hot swappable keyboards let you try different switches cheaply.",
	"Good stabilizers make a budget keyboard feel premium.",
}

func TestSummarizeRanksOriginalSentences(t *testing.T) {
	text := strings.Join(keyboardThread, " ")
	original := make(map[string]bool, len(keyboardThread))
	for _, s := range keyboardThread {
		original[s] = true
	}

	for _, engine := range []string{"lexrank", "mmr"} {
		t.Run(engine, func(t *testing.T) {
			s, err := New(engine)
			if err != nil {
				t.Fatalf("New(%s) returned error: %v", engine, err)
			}

			got, err := s.Summarize(context.Background(), text, 3)
			if err != nil {
				t.Fatalf("Summarize returned error: %v", err)
			}

			if len(got) != 3 {
				t.Fatalf("Expected exactly 3 sentences, got %d: %q", len(got), got)
			}
			seen := make(map[string]bool)
			for _, sentence := range got {
				if !original[sentence] {
					t.Errorf("Summary sentence %q is not from the input", sentence)
				}
				if seen[sentence] {
					t.Errorf("Summary sentence %q returned twice", sentence)
				}
				seen[sentence] = true
			}
		})
	}
}

func TestTermIndexResolvesDuplicatesInOrder(t *testing.T) {
	p := newProfile(t)
	idx := buildTermIndex(p, []string{"Keyboards rock!", "Keyboard rocks.", "The and of."})

	if len(idx.lines) != 2 {
		t.Fatalf("Expected stop-word-only sentence to be dropped, got %q", idx.lines)
	}
	if dict := idx.dictionary(); len(dict) != 2 || dict["keyboard"] != 1 || dict["rock"] != 2 {
		t.Errorf("dictionary() = %v", dict)
	}

	got := idx.resolve([]string{idx.lines[0] + ".", idx.lines[1], "unknown line"})
	if strings.Join(got, "|") != "Keyboards rock!|Keyboard rocks." {
		t.Errorf("resolve() = %q", got)
	}
}
