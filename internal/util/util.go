package util

import (
	"sort"
	"strings"
	"unicode"
)

// MakeTextList gives a nice list of things based on their display name. If
// articles is true, each item is given an indefinite article.
func MakeTextList(items []string, articles bool) string {
	if len(items) < 1 {
		return ""
	}

	withArts := make([]string, len(items))
	for i := range items {
		item := items[i]
		if articles {
			iRunes := []rune(item)
			leadingUpper := unicode.IsUpper(iRunes[0])
			allCaps := leadingUpper
			if leadingUpper && len(iRunes) > 1 {
				allCaps = unicode.IsUpper(iRunes[1])
			}

			if leadingUpper && !allCaps {
				// make the item lower case
				iRunes[0] = unicode.ToLower(iRunes[0])
				item = string(iRunes)
			}

			item = ArticleFor(item, false) + " " + item
		}
		withArts[i] = item
	}

	if len(withArts) == 1 {
		return withArts[0]
	} else if len(withArts) == 2 {
		return withArts[0] + " and " + withArts[1]
	}

	// if its more than two, use an oxford comma
	withArts[len(withArts)-1] = "and " + withArts[len(withArts)-1]
	return strings.Join(withArts, ", ")
}

// ArticleFor returns the article for the given string. It will be capitalized
// the same as the string. If definite is true, the returned value will be "the"
// capitalized as described; otherwise, it will be "a"/"an" capitalized as
// described.
func ArticleFor(s string, definite bool) string {
	sRunes := []rune(s)

	if len(sRunes) < 1 {
		return ""
	}

	leadingUpper := unicode.IsUpper(sRunes[0])
	allCaps := leadingUpper
	if leadingUpper && len(sRunes) > 1 {
		allCaps = unicode.IsUpper(sRunes[1])
	}

	if definite {
		if allCaps {
			return "THE"
		} else if leadingUpper {
			return "The"
		}
		return "the"
	}

	art := "a"
	if allCaps || leadingUpper {
		art = "A"
	}

	first := unicode.ToUpper(sRunes[0])
	if first == 'A' || first == 'E' || first == 'I' || first == 'O' || first == 'U' {
		if allCaps {
			art += "N"
		} else {
			art += "n"
		}
	}

	return art
}

// Pluralize gives a simple English plural of a singular noun phrase. Phrases
// of the form "X of Y" have only X pluralized.
func Pluralize(s string) string {
	head, tail, hasOf := strings.Cut(s, " of ")

	lower := strings.ToLower(head)
	switch {
	case strings.HasSuffix(lower, "staff"):
		ves := "ves"
		if strings.HasSuffix(head, "FF") {
			ves = "VES"
		}
		head = head[:len(head)-2] + ves
	case strings.HasSuffix(lower, "s"), strings.HasSuffix(lower, "sh"), strings.HasSuffix(lower, "ch"):
		head += "es"
	default:
		head += "s"
	}

	if hasOf {
		return head + " of " + tail
	}
	return head
}

// Capitalize returns s with its first letter made upper case.
func Capitalize(s string) string {
	sRunes := []rune(s)
	if len(sRunes) < 1 {
		return s
	}
	sRunes[0] = unicode.ToUpper(sRunes[0])
	return string(sRunes)
}

// OrderedKeys returns the keys of m, ordered a particular way. The order is
// guaranteed to be the same on every run.
//
// As of this writing, the order is alphabetical, but this function does not
// guarantee this will always be the case.
func OrderedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
