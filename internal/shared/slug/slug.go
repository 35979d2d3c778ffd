package slug

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

var accents = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
	"à", "a", "è", "e", "ì", "i", "ò", "o", "ù", "u", "ç", "c",
)

// FromName lowercases s, folds Spanish accents and joins the remaining
// alphanumeric runs with dashes. An empty result becomes "archivo".
func FromName(s string) string {
	s = accents.Replace(strings.ToLower(strings.TrimSpace(s)))
	s = nonAlnum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "archivo"
	}
	return s
}
