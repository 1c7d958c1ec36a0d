// Package ledger decides which extracted tables are transaction ledgers and turns their
// rows into labeled transactions.
package ledger

import (
	"sort"

	"github.com/Aashish23092/ledger-extraction/dto"
)

// MinDataRows is the strict lower bound on rows below the header.
const MinDataRows = 5

type Verdict int

const (
	Reject Verdict = iota
	Accept
)

func (v Verdict) String() string {
	if v == Accept {
		return "accept"
	}
	return "reject"
}

// Classifier holds a read-only keyword table and is safe for concurrent use.
type Classifier struct {
	kw *Keywords
}

func NewClassifier(kw *Keywords) *Classifier {
	if kw == nil {
		kw = DefaultKeywords()
	}
	return &Classifier{kw: kw}
}

// Classify judges a table from its header row and its total row count (header included).
func (c *Classifier) Classify(header []string, rowCount int) Verdict {
	if rowCount-1 < MinDataRows {
		return Reject
	}
	for _, cell := range header {
		if startsWordAny(cell, c.kw.Reject) {
			return Reject
		}
	}
	for _, cell := range header {
		if containsAny(cell, c.kw.Accept) {
			return Accept
		}
	}
	return Reject
}

// ClassifyTable is Classify over a whole table.
func (c *Classifier) ClassifyTable(t dto.RawTable) Verdict {
	return c.Classify(t.Header(), len(t))
}

// LedgerTable is an accepted table with its position in the document.
type LedgerTable struct {
	Page  int
	Index int
	Table dto.RawTable
}

// SelectTables scans every table of every page and returns the accepted ones in ascending
// page order, then table order within a page. A ledger continued over several pages shows
// up as several entries.
func (c *Classifier) SelectTables(pages []dto.Page) []LedgerTable {
	ordered := make([]dto.Page, len(pages))
	copy(ordered, pages)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Number < ordered[j].Number })

	var out []LedgerTable
	for _, p := range ordered {
		for i, t := range p.Tables {
			if c.ClassifyTable(t) == Accept {
				out = append(out, LedgerTable{Page: p.Number, Index: i, Table: t})
			}
		}
	}
	return out
}
