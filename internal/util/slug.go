// Package util provides common utility functions.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	// Matches runs of anything that is not a lowercase letter or digit.
	nonAlphanumericRe = regexp.MustCompile(`[^a-z0-9]+`)

	// Letters that NFKD does not decompose into an ASCII base.
	foldReplacer = strings.NewReplacer(
		"ı", "i", "ß", "ss", "ø", "o", "Ø", "O",
		"æ", "ae", "Æ", "AE", "đ", "d", "Đ", "D", "ł", "l", "Ł", "L",
	)
)

// Slugify converts user input to a URL-safe slug.
//
//  1. Fold letters without a decomposition (ı, ß, ø...)
//  2. NFKD-decompose and drop non-ASCII runes (accents, emoji)
//  3. Lowercase
//  4. Collapse every run of non-alphanumerics into one dash
//  5. Trim leading/trailing dashes
//
// Examples:
//
//	"Güzel Sözler"     → "guzel-sozler"
//	"Işık ve Umut"     → "isik-ve-umut"
//	"slow_burn"        → "slow-burn"
//	"🐉 Dragons!"      → "dragons"
//	"--leading--"      → "leading"
func Slugify(input string) string {
	s := foldReplacer.Replace(input)
	s = norm.NFKD.String(s)
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)
	s = strings.ToLower(s)
	s = nonAlphanumericRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// NormalizeTags slugifies tags, dropping empties and duplicates while keeping
// first-seen order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		slug := Slugify(t)
		if slug == "" {
			continue
		}
		if _, dup := seen[slug]; dup {
			continue
		}
		seen[slug] = struct{}{}
		out = append(out, slug)
	}
	return out
}
