package moderation

import (
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/samber/lo"
)

// Moderator masks banned words in chat text. Matching ignores case,
// punctuation, spacing and common leet substitutions, so "B.4.d" still
// matches "bad". A nil Moderator leaves text untouched.
type Moderator struct {
	matcher *goahocorasick.Machine
	mask    rune
}

// positions maps each normalized rune back to its index in the original text.
type positions struct {
	runes []rune
	index []int
}

// NewModerator builds the automaton once. Words that normalize to nothing
// are skipped, and an empty list yields a nil Moderator.
func NewModerator(words []string, mask rune) (*Moderator, error) {
	patterns := lo.FilterMap(words, func(word string, _ int) ([]rune, bool) {
		normalized := normalize([]rune(word)).runes
		return normalized, len(normalized) > 0
	})
	if len(patterns) == 0 {
		return nil, nil
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return &Moderator{matcher: m, mask: mask}, nil
}

// Censor returns the masked text and the banned words found, in order.
func (m *Moderator) Censor(text string) (string, []string) {
	if m == nil || text == "" {
		return text, nil
	}
	original := []rune(text)
	normalized := normalize(original)
	if len(normalized.runes) == 0 {
		return text, nil
	}

	terms := m.matcher.MultiPatternSearch(normalized.runes, false)
	if len(terms) == 0 {
		return text, nil
	}

	var found []string
	for _, term := range terms {
		start, end := term.Pos, term.Pos+len(term.Word)
		if start < 0 || end > len(normalized.index) {
			continue
		}
		for i := normalized.index[start]; i <= normalized.index[end-1]; i++ {
			original[i] = m.mask
		}
		found = append(found, string(term.Word))
	}
	return string(original), found
}

func normalize(input []rune) positions {
	out := positions{
		runes: make([]rune, 0, len(input)),
		index: make([]int, 0, len(input)),
	}
	for i, r := range input {
		clean := unleet(r)
		if isNoise(clean) {
			continue
		}
		out.runes = append(out.runes, unicode.ToLower(clean))
		out.index = append(out.index, i)
	}
	return out
}

func unleet(r rune) rune {
	switch r {
	case '4', '@':
		return 'a'
	case '3', '€':
		return 'e'
	case '1', '!', '|':
		return 'i'
	case '0':
		return 'o'
	case '5', '$':
		return 's'
	default:
		return r
	}
}

func isNoise(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r)
}
