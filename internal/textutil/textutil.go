// Package textutil provides word-form normalization utilities for tagging.
package textutil

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// URLForm replaces any form that looks like a URL or e-mail address.
const URLForm = "#url#"

var (
	urlRe    = regexp.MustCompile(`^(?i)(?:[a-z][a-z0-9+.-]*://\S+|www\.\S+|\S+@\S+\.\S+)$`)
	numberRe = regexp.MustCompile(`\d+(?:[.,:/-]\d+)*`)
)

// Simplify collapses digit runs (including separated ones such as "3.14" or
// "12/05") to "0" and replaces URL-like forms with URLForm.
func Simplify(form string) string {
	if urlRe.MatchString(form) {
		return URLForm
	}
	return numberRe.ReplaceAllString(form, "0")
}

// Lemma returns the normalized lemma for a form: simplified and lowercased.
func Lemma(s string) string {
	return strings.ToLower(Simplify(s))
}

// Shape maps letters to X/x, digits to d and keeps other runes,
// collapsing repeated classes: "McDonald's" -> "XxXx'x".
func Shape(form string) string {
	var buf strings.Builder
	var prev rune
	for _, r := range form {
		var c rune
		switch {
		case unicode.IsUpper(r):
			c = 'X'
		case unicode.IsLetter(r):
			c = 'x'
		case unicode.IsDigit(r):
			c = 'd'
		default:
			c = r
		}
		if c != prev {
			buf.WriteRune(c)
			prev = c
		}
	}
	return buf.String()
}

// Prefix returns the first n runes of s, or "" if s is not longer than n.
func Prefix(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return ""
	}
	runes := []rune(s)
	return string(runes[:n])
}

// Suffix returns the last n runes of s, or "" if s is not longer than n.
func Suffix(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return ""
	}
	runes := []rune(s)
	return string(runes[len(runes)-n:])
}
