package moderation

import (
	"log/slog"
	"sort"
	"strings"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/samber/lo"
)

// Moderator matches a fixed dictionary against free text.
// Contains is a plain case-insensitive substring test. Censor is wider: both
// sides are lower-cased, leet characters folded back to letters, punctuation,
// spaces and symbols dropped, so obfuscated spellings are still masked.
type Moderator struct {
	literal      *goahocorasick.Machine
	matcher      *goahocorasick.Machine
	censoredChar rune
	size         int
}

type TextMapping struct {
	Normalized []rune
	OrigIdx    []int
}

// NewModerator builds two Aho-Corasick automatons from words: one over the
// lower-cased words as written, one over their normalized form.
// Words that normalize to nothing are left out of the normalized one.
// An empty dictionary yields a Moderator that never matches.
func NewModerator(words []string, censoredChar rune, log *slog.Logger) (Moderator, error) {
	literal, err := buildMachine(lo.FilterMap(words, func(word string, _ int) (string, bool) {
		return strings.ToLower(word), word != ""
	}))
	if err != nil {
		return Moderator{}, err
	}

	normalized := make([]string, 0, len(words))
	for _, word := range words {
		n := normalizeRunes([]rune(word))
		if len(n) == 0 {
			log.Debug("Skipping dictionary entry made of noise only", "word", word)
			continue
		}
		normalized = append(normalized, string(n))
	}
	normalized = lo.Uniq(normalized)
	matcher, err := buildMachine(normalized)
	if err != nil {
		return Moderator{}, err
	}
	return Moderator{literal: literal, matcher: matcher, censoredChar: censoredChar, size: len(normalized)}, nil
}

// buildMachine returns nil when there is nothing to match.
func buildMachine(words []string) (*goahocorasick.Machine, error) {
	words = lo.Uniq(words)
	if len(words) == 0 {
		return nil, nil
	}
	sort.Strings(words)
	m := new(goahocorasick.Machine)
	if err := m.Build(lo.Map(words, func(w string, _ int) []rune { return []rune(w) })); err != nil {
		return nil, err
	}
	return m, nil
}

// Size is the number of distinct normalized patterns.
func (m *Moderator) Size() int {
	return m.size
}

// Contains reports whether at least one dictionary word occurs in text,
// ignoring case only. "by passing" does not contain "bypass".
func (m *Moderator) Contains(text string) bool {
	if m.literal == nil || text == "" {
		return false
	}
	return len(m.literal.MultiPatternSearch([]rune(strings.ToLower(text)), true)) > 0
}

// Censor identifies forbidden patterns and replaces the original characters with the censor rune while preserving spacing.
// It also returns the matched words in order of appearance, nil when nothing matched.
func (m *Moderator) Censor(original string) (string, []string) {
	if m.matcher == nil {
		return original, nil
	}
	mapping := normalize(original)
	if len(mapping.Normalized) == 0 {
		return original, nil
	}

	spans := m.matcher.MultiPatternSearch(mapping.Normalized, false)
	if len(spans) == 0 {
		return original, nil
	}

	origRunes := []rune(original)
	var words []string
	for _, span := range spans {
		normStart := span.Pos
		normEnd := normStart + len(span.Word)

		if normStart < 0 || normEnd > len(mapping.OrigIdx) {
			continue
		}
		words = append(words, string(span.Word))

		origStart := mapping.OrigIdx[normStart]
		origEnd := mapping.OrigIdx[normEnd-1] + 1

		for i := origStart; i < origEnd; i++ {
			origRunes[i] = m.censoredChar
		}
	}

	return string(origRunes), words
}

// normalize transforms the input string into a searchable format and tracks original rune positions.
func normalize(input string) TextMapping {
	origRunes := []rune(input)
	norm := make([]rune, 0, len(origRunes))
	origIdx := make([]int, 0, len(origRunes))

	for i, r := range origRunes {
		clean := simplifyRune(r)
		if isNoise(clean) {
			continue
		}
		norm = append(norm, unicode.ToLower(clean))
		origIdx = append(origIdx, i)
	}
	return TextMapping{Normalized: norm, OrigIdx: origIdx}
}

// normalizeRunes applies simplification and noise removal to a slice of runes.
func normalizeRunes(input []rune) []rune {
	out := make([]rune, 0, len(input))
	for _, r := range input {
		clean := simplifyRune(r)
		if isNoise(clean) {
			continue
		}
		out = append(out, unicode.ToLower(clean))
	}
	return out
}

// simplifyRune maps common leet speak characters back to their standard alphabet counterparts.
func simplifyRune(r rune) rune {
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

// isNoise identifies characters that should be ignored during the pattern matching phase.
func isNoise(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r)
}
