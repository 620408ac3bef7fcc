package summarizer

import (
	"strings"
)

// termIndex keeps the sentences that carry at least one content word,
// alongside their stemmed form. originals maps a stemmed line back to the
// sentences that produced it, in text order.
type termIndex struct {
	sentences []string
	terms     [][]string
	lines     []string
	originals map[string][]string
}

func buildTermIndex(p *EnglishProfile, sentences []string) *termIndex {
	idx := &termIndex{originals: make(map[string][]string)}

	for _, s := range sentences {
		terms := p.Terms(s)
		if len(terms) == 0 {
			continue
		}
		key := strings.Join(terms, " ")
		idx.sentences = append(idx.sentences, s)
		idx.terms = append(idx.terms, terms)
		idx.lines = append(idx.lines, key)
		idx.originals[key] = append(idx.originals[key], s)
	}

	return idx
}

// dictionary numbers every distinct term from 1 in order of first use.
func (idx *termIndex) dictionary() map[string]int {
	dict := make(map[string]int)
	for _, terms := range idx.terms {
		for _, term := range terms {
			if _, ok := dict[term]; !ok {
				dict[term] = len(dict) + 1
			}
		}
	}
	return dict
}

// resolve turns engine output back into original sentences. Lines the
// engine altered beyond recognition are skipped.
func (idx *termIndex) resolve(ranked []string) []string {
	out := make([]string, 0, len(ranked))
	for _, line := range ranked {
		key := normalizeLine(line)
		queue := idx.originals[key]
		if len(queue) == 0 {
			continue
		}
		out = append(out, queue[0])
		idx.originals[key] = queue[1:]
	}
	return out
}

func normalizeLine(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimRight(line, ".。")
	return strings.Join(strings.Fields(line), " ")
}
