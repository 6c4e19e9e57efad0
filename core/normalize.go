// Place for pure domain logic: no Gin, no GORM, no Redis in here.
// Name standardization rules live here so they can be unit tested in isolation.
package core

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultEmailDomain is appended to every derived local part.
const DefaultEmailDomain = "empresa.com.br"

// ErrEmptyLocalPart is returned by DeriveEmail when nothing usable is left
// before the "@" (e.g. a name made only of symbols). Callers must not persist it.
var ErrEmptyLocalPart = errors.New("derived email has an empty local part")

// connectives stay lowercase inside an otherwise Title-Case name.
// Keys are the Title-Case form produced by titleWord.
var connectives = map[string]struct{}{
	"Da":  {},
	"De":  {},
	"Do":  {},
	"Dos": {},
	"Das": {},
}

// ErrInvalidDomain is returned by ValidateDomain for anything that is not a
// plain dotted hostname such as "empresa.com.br".
var ErrInvalidDomain = errors.New("invalid e-mail domain")

var dotRuns = regexp.MustCompile(`\.{2,}`)

// hostname: two or more LDH labels, each 1-63 chars, no edge hyphens.
var hostname = regexp.MustCompile(`^(?i)[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?(\.[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?)+$`)

// ValidateDomain checks that d can be appended after "@" as-is.
func ValidateDomain(d string) error {
	if len(d) > 253 || !hostname.MatchString(d) {
		return fmt.Errorf("%w: %q", ErrInvalidDomain, d)
	}
	return nil
}

// Pipeline turns a raw name into a display name and a company e-mail address.
// The zero value is ready to use and behaves like the package-level helpers.
type Pipeline struct {
	Domain      string // "empresa.com.br" when empty
	FoldAccents bool   // "João" -> "joao" instead of "joo"
}

// Result is one pipeline run: what came in and what was derived from it.
type Result struct {
	Original   string
	Normalized string
	Email      string
}

// Run normalizes raw and derives the e-mail from the normalized form.
func (p Pipeline) Run(raw string) (Result, error) {
	normalized := NormalizeName(raw)
	email, err := p.DeriveEmail(normalized)
	if err != nil {
		return Result{}, err
	}
	return Result{Original: raw, Normalized: normalized, Email: email}, nil
}

// NormalizeName collapses whitespace and Title-Cases every word, keeping the
// connectives (da, de, do, dos, das) in lowercase.
//
//	"  MARIA  DA   SILVA " -> "Maria da Silva"
func NormalizeName(raw string) string {
	words := strings.Fields(strings.ToLower(raw)) // Fields splits on any whitespace run and drops the edges.
	for i, w := range words {
		w = titleWord(w)
		if _, ok := connectives[w]; ok {
			w = strings.ToLower(w)
		}
		words[i] = w
	}
	return strings.Join(words, " ")
}

// titleWord uppercases the first rune and lowercases the rest.
func titleWord(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
}

// DeriveEmail builds "<local>@empresa.com.br" from a name using the default pipeline.
func DeriveEmail(name string) (string, error) {
	return Pipeline{}.DeriveEmail(name)
}

// DeriveEmail lowercases name, turns spaces into dots and keeps only [a-z0-9.]
// in the local part. Non-ASCII letters, digits and marks are dropped; any other
// character (punctuation, symbols) separates like a space does. Dot runs are
// collapsed and edge dots trimmed.
//
// When the local part ends up empty the degenerate "@domain" string is returned
// together with ErrEmptyLocalPart.
func (p Pipeline) DeriveEmail(name string) (string, error) {
	s := strings.ReplaceAll(strings.ToLower(name), " ", ".")
	if p.FoldAccents {
		s = foldAccents(s)
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case unicode.IsLetter(r), unicode.IsNumber(r), unicode.IsMark(r):
			// dropped
		default:
			b.WriteByte('.')
		}
	}

	local := strings.Trim(dotRuns.ReplaceAllString(b.String(), "."), ".")
	email := local + "@" + p.domain()
	if local == "" {
		return email, ErrEmptyLocalPart
	}
	return email, nil
}

func (p Pipeline) domain() string {
	if d := strings.TrimPrefix(strings.TrimSpace(p.Domain), "@"); d != "" {
		return strings.ToLower(d)
	}
	return DefaultEmailDomain
}

// foldAccents strips combining marks after canonical decomposition.
// The transformer chain is stateful, so a fresh one is built per call.
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
