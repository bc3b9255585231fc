// Package normalize canonicalizes raw influencer names and handles into the
// join key used for identity resolution.
package normalize

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"golang.org/x/text/unicode/norm"
)

// Reasons a normalized name is rejected at ingestion.
var (
	ErrEmptyName = eris.New("normalize: empty name")
	ErrTooShort  = eris.New("normalize: name too short")
	ErrNoLetters = eris.New("normalize: name has no letters")
)

var (
	// handleOnlyRe matches a cell that is nothing but an @handle.
	handleOnlyRe = regexp.MustCompile(`^@[\p{L}\p{N}_.]+$`)
	handleRe     = regexp.MustCompile(`@[\p{L}\p{N}_.]+`)
	parenRe      = regexp.MustCompile(`\([^)]*\)`)

	// followerRe matches a trailing follower count such as "3k", "1.2m",
	// "12,5k followers" or a bare "3000".
	followerRe = regexp.MustCompile(`(?:^|\s)\d+(?:[.,]\d+)?\s*[km]?\s*(?:followers?)?$`)
)

// Name returns the canonical form of a raw name field:
//  1. NFC-normalize and lowercase
//  2. Strip trailing follower-count tokens ("Serap 3K" → "serap")
//  3. A lone handle keeps its text ("@hale.now.studios" → "hale now studios");
//     handles inside mixed text are removed along with stray "@" signs
//  4. Remove parenthetical remarks
//  5. Collapse whitespace and trim
//
// Name is total and idempotent: Name(Name(s)) == Name(s).
func Name(raw string) string {
	s := norm.NFC.String(strings.ToLower(raw))
	s = collapse(s)
	s = stripFollowers(s)

	if handleOnlyRe.MatchString(s) {
		s = strings.NewReplacer(".", " ", "_", " ").Replace(strings.TrimPrefix(s, "@"))
	} else {
		s = handleRe.ReplaceAllString(s, " ")
		s = strings.ReplaceAll(s, "@", " ")
	}

	s = parenRe.ReplaceAllString(s, " ")
	return stripFollowers(collapse(s))
}

// Validate reports why a normalized name cannot serve as an index key, or
// nil if it can. minLen is measured in runes.
func Validate(name string, minLen int) error {
	if name == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(name) < minLen {
		return ErrTooShort
	}
	if strings.IndexFunc(name, unicode.IsLetter) < 0 {
		return ErrNoLetters
	}
	return nil
}

// HasHandle reports whether a raw name carries an "@" handle marker.
func HasHandle(raw string) bool {
	return handleRe.MatchString(raw)
}

func stripFollowers(s string) string {
	for {
		t := collapse(followerRe.ReplaceAllString(s, ""))
		if t == s {
			return s
		}
		s = t
	}
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
