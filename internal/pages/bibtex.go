// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pages

import (
	"regexp"
)

// BibTeX field values appear either brace-wrapped or quoted, with
// arbitrary internal dashes (120--135, 120–135).
var (
	bibPages  = regexp.MustCompile(`(?i)pages\s*=\s*[{"]\s*([^}"]+?)\s*[}"]`)
	bibVolume = regexp.MustCompile(`(?i)volume\s*=\s*[{"]\s*([^}"]+?)\s*[}"]`)
	bibNumber = regexp.MustCompile(`(?i)number\s*=\s*[{"]\s*([^}"]+?)\s*[}"]`)
)

// FromBibTeX pulls the pages field out of a BibTeX entry and normalizes
// it. Returns "" when the entry has no usable pages field.
func FromBibTeX(entry string) string {
	m := bibPages.FindStringSubmatch(entry)
	if m == nil {
		return ""
	}
	return Normalize(m[1])
}

// VolumeIssue extracts the volume and number fields from a BibTeX entry.
// Either value may be empty.
func VolumeIssue(entry string) (volume, issue string) {
	if m := bibVolume.FindStringSubmatch(entry); m != nil {
		volume = m[1]
	}
	if m := bibNumber.FindStringSubmatch(entry); m != nil {
		issue = m[1]
	}
	return volume, issue
}
