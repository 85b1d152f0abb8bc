package masking

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/medflow/translation-backend/internal/translation/patterns"
)

// ErrUndecodableInput is returned when the source text is not valid UTF-8.
// It is the only hard failure masking can produce.
var ErrUndecodableInput = errors.New("input text is not valid UTF-8")

// CriticalSpan is one protected substring found in source text.
type CriticalSpan struct {
	Kind  patterns.Kind
	Start int
	End   int
	Text  string
}

// Entry maps one placeholder token back to the span text it replaced.
type Entry struct {
	Token    string
	Original string
}

// PlaceholderMap records the substitutions made while masking one field,
// in insertion order. Restoration walks the same order.
type PlaceholderMap struct {
	entries []Entry
}

// Len returns the number of placeholders in the map.
func (m *PlaceholderMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Entries returns the substitutions in insertion order.
func (m *PlaceholderMap) Entries() []Entry {
	if m == nil {
		return nil
	}
	return m.entries
}

// Spans returns the original span texts in insertion order.
func (m *PlaceholderMap) Spans() []string {
	if m == nil || len(m.entries) == 0 {
		return nil
	}
	out := make([]string, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Original
	}
	return out
}

// Mask finds every critical span in text and replaces it with a placeholder
// token. Zero matches is not an error: the text comes back unchanged with an
// empty map.
//
// Tokens are uppercase with no letters adjacent to digits aside from the
// kind label, a shape translators pass through rather than rewrite. Sequence
// numbers that would collide with text already present in the source are
// skipped.
func Mask(text string) (string, *PlaceholderMap, error) {
	if !utf8.ValidString(text) {
		return "", nil, ErrUndecodableInput
	}

	spans := extractSpans(text)
	pm := &PlaceholderMap{}
	if len(spans) == 0 {
		return text, pm, nil
	}

	seq := make(map[patterns.Kind]int)
	var b strings.Builder
	b.Grow(len(text))

	last := 0
	for _, s := range spans {
		token := nextToken(text, seq, s.Kind)
		b.WriteString(text[last:s.Start])
		b.WriteString(token)
		last = s.End
		pm.entries = append(pm.entries, Entry{Token: token, Original: s.Text})
	}
	b.WriteString(text[last:])

	return b.String(), pm, nil
}

// extractSpans collects candidate matches from every pattern, then selects a
// non-overlapping set: earliest start wins, ties go to the higher-priority
// pattern. Selected spans come back in ascending offset order.
func extractSpans(text string) []CriticalSpan {
	type candidate struct {
		CriticalSpan
		priority int
	}

	var candidates []candidate
	for prio, p := range patterns.Library() {
		for _, loc := range p.Re.FindAllStringIndex(text, -1) {
			candidates = append(candidates, candidate{
				CriticalSpan: CriticalSpan{
					Kind:  p.Kind,
					Start: loc[0],
					End:   loc[1],
					Text:  text[loc[0]:loc[1]],
				},
				priority: prio,
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Start != candidates[j].Start {
			return candidates[i].Start < candidates[j].Start
		}
		return candidates[i].priority < candidates[j].priority
	})

	var spans []CriticalSpan
	lastEnd := 0
	for _, c := range candidates {
		if c.Start < lastEnd {
			continue
		}
		spans = append(spans, c.CriticalSpan)
		lastEnd = c.End
	}

	return spans
}

// nextToken returns the next placeholder token for kind, skipping sequence
// numbers whose token already occurs in the source text.
func nextToken(text string, seq map[patterns.Kind]int, kind patterns.Kind) string {
	label := strings.ToUpper(string(kind))
	for {
		token := fmt.Sprintf("___%s_%d___", label, seq[kind])
		seq[kind]++
		if !strings.Contains(text, token) {
			return token
		}
	}
}
