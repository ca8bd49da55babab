package model

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks removes combining marks so accented input ("Flabébé") matches
// the plain names the database uses ("flabebe").
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName folds user input into the form names take in the reference
// data: lowercase, accent-free, with spaces as hyphens ("Mr. Mime" ->
// "mr-mime").
func NormalizeName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))

	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}

	s = strings.ReplaceAll(s, ". ", "-")
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, ".", "")

	return s
}
