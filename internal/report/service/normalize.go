package service

import "strings"

var newlines = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// NormalizeHeader brings a raw header into comparison form: newlines become spaces,
// the text is trimmed and lowercased, and whitespace runs collapse to one space.
// NormalizeHeader(NormalizeHeader(s)) == NormalizeHeader(s).
func NormalizeHeader(s string) string {
	s = newlines.Replace(s)
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func NormalizeHeaders(hs []string) []string {
	out := make([]string, len(hs))
	for i, h := range hs {
		out[i] = NormalizeHeader(h)
	}
	return out
}
