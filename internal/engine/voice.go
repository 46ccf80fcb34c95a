// Brand-voice post-processing shared by both engines.
//
// The remote engine forwards voice constraints into the prompt, but prompt
// compliance is best-effort; this pass enforces the hard rules on whatever
// text comes back, and gives the local engine's template output the same
// treatment so the two are indistinguishable downstream.

package engine

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/creatorkit/go-creator-backend/internal/domain"
)

// maskGlyph replaces each forbidden word wherever it appears.
const maskGlyph = "▇▇▇"

// ApplyVoice enforces the brand voice on a list of variants: forbidden words
// are masked (whole-word, case-insensitive), decorative non-ASCII characters
// are stripped when emojis are disallowed, and caption output gets a CTA line
// appended to the long variant when the voice provides CTAs.
//
// The input slice is not modified.
func ApplyVoice(variants []string, contentType string, voice domain.BrandVoice) []string {
	out := make([]string, len(variants))
	copy(out, variants)

	for _, w := range voice.Forbidden {
		re, ok := forbiddenPattern(w)
		if !ok {
			continue
		}
		for i := range out {
			out[i] = re.ReplaceAllString(out[i], maskGlyph)
		}
	}

	if !voice.EmojisAllowed() {
		for i := range out {
			out[i] = stripDecorative(out[i])
		}
	}

	if contentType == domain.TypeCaption && len(voice.CTA) > 0 && len(out) > 0 {
		last := len(out) - 1
		if !containsAnyFold(out[last], voice.CTA) {
			out[last] = strings.TrimRight(out[last], " \n") + "\n" + voice.CTA[0]
		}
	}

	return out
}

// forbiddenPattern compiles a case-insensitive whole-word matcher for w.
// Returns false for blank entries.
func forbiddenPattern(w string) (*regexp.Regexp, bool) {
	w = strings.TrimSpace(w)
	if w == "" {
		return nil, false
	}
	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(w) + `\b`)
	if err != nil {
		return nil, false
	}
	return re, true
}

// stripDecorative removes emoji and other symbol runes while keeping letters
// (including non-ASCII ones), digits, punctuation, and whitespace, then
// collapses any doubled spaces the removal left behind.
func stripDecorative(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 128 {
			b.WriteRune(r)
			continue
		}
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsPunct(r) || unicode.IsSpace(r) {
			// The mask glyph is a symbol; keep it so masking survives
			// emoji stripping.
			b.WriteRune(r)
			continue
		}
		if strings.ContainsRune(maskGlyph, r) {
			b.WriteRune(r)
		}
	}
	return collapseSpaces(b.String())
}

// collapseSpaces reduces runs of spaces/tabs to a single space per line.
func collapseSpaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, ln := range lines {
		fields := strings.Fields(ln)
		lines[i] = strings.Join(fields, " ")
	}
	return strings.Join(lines, "\n")
}

// containsAnyFold reports whether s contains any of subs, case-insensitively.
func containsAnyFold(s string, subs []string) bool {
	low := strings.ToLower(s)
	for _, sub := range subs {
		if sub == "" {
			continue
		}
		if strings.Contains(low, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}
