// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cite

import (
	"bytes"
	"strings"
	"testing"
)

var conferencePaper = Paper{
	Title:   "Collusion attack on cooperative spectrum sensing",
	Authors: []string{"Zhen Pan", "Hong Lian", "Gang Hu"},
	Venue:   "IEEE International Conference on Communications",
	Year:    2005,
	Pages:   "671-672",
}

var journalPaper = Paper{
	Title:   "Yes, Machine Learning Can Be More Secure",
	Authors: []string{"Ambra Demontis", "Marco Melis", "Battista Biggio", "Davide Maiorca", "Daniel Arp"},
	Venue:   "IEEE Transactions on Dependable and Secure Computing",
	Year:    2017,
	Volume:  "16",
	Issue:   "4",
	Pages:   "711-724",
}

func TestIsJournal(t *testing.T) {
	tests := []struct {
		venue string
		want  bool
	}{
		{"IEEE Transactions on Dependable and Secure Computing", true},
		{"Journal of Machine Learning Research", true},
		{"Physical Review Letters", true},
		{"Proceedings of Machine Learning Research", true},
		{"International Conference on Machine Learning", false},
		{"Advances in Neural Information Processing Systems", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsJournal(tt.venue); got != tt.want {
			t.Errorf("IsJournal(%q) = %v, want %v", tt.venue, got, tt.want)
		}
	}
}

func TestReferenceConference(t *testing.T) {
	got := Reference(conferencePaper, 4)
	want := "[4] Pan Z, Lian H, Hu G. Collusion attack on cooperative spectrum sensing. [C]//IEEE International Conference on Communications. 2005: 671-672"
	if got != want {
		t.Errorf("Reference =\n%q\nwant\n%q", got, want)
	}
}

func TestReferenceJournal(t *testing.T) {
	got := Reference(journalPaper, 5)
	want := "[5] Demontis A, Melis M, Biggio B, et al. Yes, Machine Learning Can Be More Secure. [J]. IEEE Transactions on Dependable and Secure Computing, 2017, 16(4):711-724"
	if got != want {
		t.Errorf("Reference =\n%q\nwant\n%q", got, want)
	}
}

func TestReferenceNoNumber(t *testing.T) {
	got := Reference(conferencePaper, 0)
	if strings.HasPrefix(got, "[") {
		t.Errorf("unnumbered reference starts with bracket: %q", got)
	}
}

func TestReferenceNoAuthors(t *testing.T) {
	got := Reference(Paper{Title: "Anonymous Work", Venue: "Some Workshop", Year: 2020}, 1)
	if !strings.HasPrefix(got, "[1] Unknown. ") {
		t.Errorf("got %q", got)
	}
}

func TestBibTeXEntryJournal(t *testing.T) {
	entry := BibTeXEntry(journalPaper)
	for _, want := range []string{
		"@article{Demontis2017,",
		"journal={IEEE Transactions on Dependable and Secure Computing}",
		"author={Ambra Demontis and Marco Melis and Battista Biggio and Davide Maiorca and Daniel Arp}",
		"volume={16}",
		"number={4}",
		"pages={711-724}",
	} {
		if !strings.Contains(entry, want) {
			t.Errorf("entry missing %q:\n%s", want, entry)
		}
	}
}

func TestBibTeXEntryConference(t *testing.T) {
	entry := BibTeXEntry(conferencePaper)
	if !strings.HasPrefix(entry, "@inproceedings{Pan2005,") {
		t.Errorf("entry head: %q", entry)
	}
	if !strings.Contains(entry, "booktitle={IEEE International Conference on Communications}") {
		t.Errorf("entry missing booktitle:\n%s", entry)
	}
}

func TestFormatCSL(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatCSL([]Paper{journalPaper, conferencePaper}, &buf); err != nil {
		t.Fatalf("FormatCSL: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"id: demontis2017",
		"type: article-journal",
		"type: paper-conference",
		"container-title: IEEE Transactions on Dependable and Secure Computing",
		"page: 711-724",
		"family: Demontis",
		"given: Ambra",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("CSL output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatAuthorSingleToken(t *testing.T) {
	if got := formatAuthor("Aristotle"); got != "Aristotle" {
		t.Errorf("formatAuthor = %q", got)
	}
}
