// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paper-reference-agent
// resolution pipeline.
package types

// PaperRef is the canonical bibliographic record every source is mapped
// into. A single resolution produces at most one PaperRef; the extraction
// chain may fill missing fields afterwards but never overwrites fields a
// source already set.
type PaperRef struct {
	// Title is the paper title as returned by the winning source.
	Title string `json:"title" yaml:"title"`

	// Authors lists author display names in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Year is the publication year, 0 when unknown.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// Venue is the conference or journal name, expanded from an
	// abbreviation where one is recognized.
	Venue string `json:"venue,omitempty" yaml:"venue,omitempty"`

	// URL is the landing page for the paper.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// DOI is the bare DOI (e.g. "10.1145/3539618.3591695"), without a
	// resolver prefix.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Pages is the canonical page range: "<start>-<end>" or a single
	// "<page>".
	Pages string `json:"pages,omitempty" yaml:"pages,omitempty"`

	// Volume and Issue are set when the source reports them (journals).
	Volume string `json:"volume,omitempty" yaml:"volume,omitempty"`
	Issue  string `json:"issue,omitempty" yaml:"issue,omitempty"`

	// Source identifies which client produced the record
	// (e.g. "semantic_scholar", "dblp", "crossref", "google_scholar").
	Source string `json:"source" yaml:"source"`

	// PagesSource names the extraction strategy that supplied Pages when
	// the winning source did not carry them (e.g. "doi2bib",
	// "neurips_bibtex", "llm_extraction"). Informational only.
	PagesSource string `json:"pages_source,omitempty" yaml:"pages_source,omitempty"`

	// CitationCount is the citation count reported by the source, 0 when
	// not reported.
	CitationCount int `json:"citation_count,omitempty" yaml:"citation_count,omitempty"`

	// ArxivID, DBLPID and DBLPURL are auxiliary identifiers surfaced by
	// sources that report external IDs.
	ArxivID string `json:"arxiv_id,omitempty" yaml:"arxiv_id,omitempty"`
	DBLPID  string `json:"dblp_id,omitempty" yaml:"dblp_id,omitempty"`
	DBLPURL string `json:"dblp_url,omitempty" yaml:"dblp_url,omitempty"`

	// PDFURL is an open-access PDF location when one is known.
	PDFURL string `json:"pdf_url,omitempty" yaml:"pdf_url,omitempty"`

	// BibTeX is the raw BibTeX blob when a proceedings page provided one.
	BibTeX string `json:"bibtex,omitempty" yaml:"bibtex,omitempty"`
}

// HasPages reports whether the record already carries page data. The
// extraction chain consults this before every strategy: a set value is
// final for the rest of the resolution.
func (p *PaperRef) HasPages() bool {
	return p != nil && p.Pages != ""
}

// BestURL returns the most useful URL on the record for page extraction:
// the landing page, then the DBLP record page, then the PDF.
func (p *PaperRef) BestURL() string {
	switch {
	case p.URL != "":
		return p.URL
	case p.DBLPURL != "":
		return p.DBLPURL
	default:
		return p.PDFURL
	}
}
