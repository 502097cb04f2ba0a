// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cite renders resolved papers as citations: numbered reference
// strings in GB/T 7714 style, BibTeX entries, and CSL-YAML.
package cite

import (
	"fmt"
	"strings"
	"unicode"
)

// journalMarkers identify venues cited in journal style. PMLR is listed
// because its volumes are cited like a journal despite being
// proceedings.
var journalMarkers = []string{
	"journal",
	"transactions",
	"magazine",
	"review",
	"letters",
	"proceedings of machine learning research",
}

// IsJournal reports whether the venue is cited journal-style.
func IsJournal(venue string) bool {
	lower := strings.ToLower(venue)
	for _, m := range journalMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// formatAuthor renders one author as "Family Initials": the last token
// is the family name, the rest contribute their initials. Single-token
// names pass through.
func formatAuthor(name string) string {
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return name
	}
	family := parts[len(parts)-1]
	var initials strings.Builder
	for _, p := range parts[:len(parts)-1] {
		r := []rune(p)[0]
		if unicode.IsLetter(r) {
			initials.WriteRune(unicode.ToUpper(r))
		}
	}
	return family + " " + initials.String()
}

// authorString renders the author list. More than three authors are
// truncated to three followed by "et al.".
func authorString(authors []string) string {
	if len(authors) == 0 {
		return "Unknown"
	}
	etAl := len(authors) > 3
	if etAl {
		authors = authors[:3]
	}
	formatted := make([]string, len(authors))
	for i, a := range authors {
		formatted[i] = formatAuthor(a)
	}
	out := strings.Join(formatted, ", ")
	if etAl {
		out += ", et al."
	}
	return out
}

// Paper is the subset of a resolved record the formatter needs.
type Paper struct {
	Title   string
	Authors []string
	Venue   string
	Year    int
	Volume  string
	Issue   string
	Pages   string
	DOI     string
	URL     string
}

// Reference renders the paper as a numbered reference string. Journal
// papers get the "[J]" marker with volume(issue):pages; conference
// papers get "[C]//" with the proceedings name. Pass number 0 to omit
// the leading "[n]".
func Reference(p Paper, number int) string {
	var b strings.Builder

	if number > 0 {
		fmt.Fprintf(&b, "[%d] ", number)
	}

	authors := authorString(p.Authors)
	b.WriteString(authors)
	// "et al." already carries the period.
	if !strings.HasSuffix(authors, ".") {
		b.WriteString(".")
	}
	b.WriteString(" ")

	b.WriteString(p.Title)
	if !strings.HasSuffix(p.Title, ".") {
		b.WriteString(".")
	}

	journal := IsJournal(p.Venue)
	if journal {
		b.WriteString(" [J]. ")
	} else {
		b.WriteString(" [C]//")
	}
	b.WriteString(p.Venue)

	if p.Year > 0 {
		if journal {
			fmt.Fprintf(&b, ", %d", p.Year)
		} else {
			fmt.Fprintf(&b, ". %d", p.Year)
		}
	}

	if journal {
		switch {
		case p.Volume != "" && p.Issue != "":
			fmt.Fprintf(&b, ", %s(%s)", p.Volume, p.Issue)
		case p.Volume != "":
			fmt.Fprintf(&b, ", %s", p.Volume)
		case p.Issue != "":
			fmt.Fprintf(&b, ", (%s)", p.Issue)
		}
	}

	if p.Pages != "" {
		if journal {
			b.WriteString(":" + p.Pages)
		} else {
			b.WriteString(": " + p.Pages)
		}
	}

	return b.String()
}

// BibTeXEntry renders the paper as a BibTeX entry. Journal-style venues
// become @article, everything else @inproceedings.
func BibTeXEntry(p Paper) string {
	citeKey := "Unknown"
	if len(p.Authors) > 0 {
		parts := strings.Fields(p.Authors[0])
		if len(parts) > 0 {
			citeKey = parts[len(parts)-1]
		}
	}
	if p.Year > 0 {
		citeKey += fmt.Sprintf("%d", p.Year)
	} else {
		citeKey += "XXXX"
	}

	entryType := "inproceedings"
	venueField := "booktitle"
	if IsJournal(p.Venue) {
		entryType = "article"
		venueField = "journal"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "@%s{%s,\n", entryType, citeKey)
	if p.Title != "" {
		fmt.Fprintf(&b, "  title={%s},\n", p.Title)
	}
	if len(p.Authors) > 0 {
		fmt.Fprintf(&b, "  author={%s},\n", strings.Join(p.Authors, " and "))
	}
	if p.Venue != "" {
		fmt.Fprintf(&b, "  %s={%s},\n", venueField, p.Venue)
	}
	if p.Year > 0 {
		fmt.Fprintf(&b, "  year={%d},\n", p.Year)
	}
	if p.Volume != "" {
		fmt.Fprintf(&b, "  volume={%s},\n", p.Volume)
	}
	if p.Issue != "" {
		fmt.Fprintf(&b, "  number={%s},\n", p.Issue)
	}
	if p.Pages != "" {
		fmt.Fprintf(&b, "  pages={%s},\n", p.Pages)
	}
	if p.DOI != "" {
		fmt.Fprintf(&b, "  doi={%s},\n", p.DOI)
	}
	if p.URL != "" {
		fmt.Fprintf(&b, "  url={%s},\n", p.URL)
	}
	b.WriteString("}\n")
	return b.String()
}
