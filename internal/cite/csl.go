// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cite

import (
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style
// Language) format. The field names follow the CSL-JSON/CSL-YAML schema
// so the output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Volume         string    `yaml:"volume,omitempty"`
	Issue          string    `yaml:"issue,omitempty"`
	Page           string    `yaml:"page,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	DOI            string    `yaml:"DOI,omitempty"`
	URL            string    `yaml:"URL,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// FormatCSL writes the papers as a CSL-YAML list to w.
func FormatCSL(papers []Paper, w io.Writer) error {
	items := make([]CSLItem, len(papers))
	for i, p := range papers {
		items[i] = toCSLItem(p)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// toCSLItem converts a resolved paper to a CSLItem.
func toCSLItem(p Paper) CSLItem {
	item := CSLItem{
		ID:             cslID(p),
		Type:           "paper-conference",
		Title:          p.Title,
		ContainerTitle: p.Venue,
		Volume:         p.Volume,
		Issue:          p.Issue,
		Page:           p.Pages,
		DOI:            p.DOI,
		URL:            p.URL,
	}
	if IsJournal(p.Venue) {
		item.Type = "article-journal"
	}
	for _, a := range p.Authors {
		item.Author = append(item.Author, parseAuthorName(a))
	}
	if p.Year > 0 {
		item.Issued = &CSLDate{DateParts: [][]int{{p.Year}}}
	}
	return item
}

// cslID derives a citation key: first author's family name plus year,
// falling back to a title slug.
func cslID(p Paper) string {
	if len(p.Authors) > 0 {
		parts := strings.Fields(p.Authors[0])
		if len(parts) > 0 && p.Year > 0 {
			return strings.ToLower(parts[len(parts)-1]) + strconv.Itoa(p.Year)
		}
	}
	slug := strings.ToLower(strings.Join(strings.Fields(p.Title), "-"))
	if len(slug) > 40 {
		slug = slug[:40]
	}
	return slug
}

// parseAuthorName splits a full name string into CSL family/given parts.
// It splits on the last space: everything before is given, the last
// token is family. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}
