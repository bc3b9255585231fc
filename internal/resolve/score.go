package resolve

import (
	"math"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agext/levenshtein"
)

// indel counts a substitution as a deletion plus an insertion, so Ratio
// measures shared characters rather than raw edit steps.
var indel = levenshtein.NewParams().SubCost(2)

// Ratio returns the similarity of a and b in [0,100] based on indel edit
// distance over runes. Two empty strings are identical.
func Ratio(a, b string) int {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 100
	}
	dist := levenshtein.Distance(a, b, indel)
	return int(math.Round(100 * float64(total-dist) / float64(total)))
}

// TokenSetRatio compares a and b as sets of tokens, ignoring token order and
// duplicates. When every token of one side appears in the other the score
// is 100, so a partial name ("laura") fully matches a longer one ("laura
// malina seiler"). Otherwise it is the best Ratio between the shared tokens
// and each side's shared-plus-remaining tokens.
func TokenSetRatio(a, b string) int {
	ta, tb := tokenSet(a), tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	var inter, onlyA, onlyB []string
	for _, t := range ta {
		if _, ok := slices.BinarySearch(tb, t); ok {
			inter = append(inter, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for _, t := range tb {
		if _, ok := slices.BinarySearch(ta, t); !ok {
			onlyB = append(onlyB, t)
		}
	}

	if len(inter) > 0 && (len(onlyA) == 0 || len(onlyB) == 0) {
		return 100
	}

	sect := strings.Join(inter, " ")
	combA := strings.TrimSpace(sect + " " + strings.Join(onlyA, " "))
	combB := strings.TrimSpace(sect + " " + strings.Join(onlyB, " "))

	return max(Ratio(sect, combA), Ratio(sect, combB), Ratio(combA, combB))
}

// tokenSet lowercases s, splits it on anything that is not a letter or
// digit, and returns the distinct tokens sorted.
func tokenSet(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	slices.Sort(fields)
	return slices.Compact(fields)
}
