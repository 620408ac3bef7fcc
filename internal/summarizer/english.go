package summarizer

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
	"github.com/neurosnap/sentences"
	punkt "github.com/neurosnap/sentences/english"
)

// mergedBoundary finds a sentence end glued to the next sentence, as in
// "Great idea!I disagree". At least two letters must precede the
// terminator so initialisms like "U.S." are left alone.
var mergedBoundary = regexp.MustCompile(`(\p{L}\p{Ll}[.!?]+["')]*)(\p{Lu})`)

// EnglishProfile is the fixed language setup: Punkt sentence splitting,
// Snowball stemming and the Snowball English stop-word list.
type EnglishProfile struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

func NewEnglishProfile() (*EnglishProfile, error) {
	tokenizer, err := punkt.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("load English sentence model: %w", err)
	}
	return &EnglishProfile{tokenizer: tokenizer}, nil
}

// Sentences splits text with the Punkt English model. Comment bodies are
// concatenated without a separator, so a space is put back first wherever
// one sentence runs straight into the next.
func (p *EnglishProfile) Sentences(text string) []string {
	text = mergedBoundary.ReplaceAllString(text, "$1 $2")

	var out []string
	for _, s := range p.tokenizer.Tokenize(text) {
		if trimmed := strings.TrimSpace(s.Text); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Terms returns the stemmed content words of a sentence.
func (p *EnglishProfile) Terms(sentence string) []string {
	words := strings.FieldsFunc(strings.ToLower(sentence), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})

	terms := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.Trim(w, "'")
		if len(w) < 2 || english.IsStopWord(w) {
			continue
		}
		terms = append(terms, english.Stem(w, false))
	}

	return terms
}
