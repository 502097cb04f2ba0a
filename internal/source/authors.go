// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"regexp"
	"strconv"
	"strings"
)

// DBLP disambiguates homonymous authors with a numeric suffix
// ("Wei Zhang 0003"); it never belongs in a citation.
var trailingDigits = regexp.MustCompile(`\s+\d+$`)

// CleanAuthor strips registry artifacts from an author name.
func CleanAuthor(name string) string {
	name = strings.TrimSpace(name)
	return trailingDigits.ReplaceAllString(name, "")
}

// atoiSafe parses an integer, returning 0 for anything unparsable.
func atoiSafe(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
