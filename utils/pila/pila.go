// Package pila maps rows of the PILA payroll contribution report onto contributor records.
// Only the 52-cell and 43-cell variants of the report are recognized.
package pila

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Aashish23092/ledger-extraction/dto"
	"github.com/Aashish23092/ledger-extraction/utils/money"
)

// MapRow reads one table row. ok is false when the row is not a contributor row: its cell
// count has no layout or its No cell is not a digit string. A non-nil error means the row
// was a contributor row with an unreadable field; the row is dropped either way.
func MapRow(cells []string) (rec dto.PilaRecord, ok bool, err error) {
	layout, found := Layouts[len(cells)]
	if !found {
		return dto.PilaRecord{}, false, nil
	}
	no := strings.TrimSpace(cells[layout.No])
	if !isDigits(no) {
		return dto.PilaRecord{}, false, nil
	}

	r := rowReader{cells: cells}
	rec = dto.PilaRecord{
		No:               no,
		DocumentType:     r.text(layout.DocumentType),
		DocumentNumber:   r.text(layout.DocumentNumber),
		Name:             r.text(layout.Name),
		Pension:          r.contribution(layout.Pension),
		Health:           r.contribution(layout.Health),
		CompensationFund: r.contribution(layout.CompensationFund),
		OccupationalRisk: r.contribution(layout.OccupationalRisk),
		SENA:             r.amount(layout.SENA),
		ICBF:             r.amount(layout.ICBF),
		Total:            r.amount(layout.Total),
	}
	if r.err != nil {
		return dto.PilaRecord{}, false, fmt.Errorf("row %s: %w", no, r.err)
	}
	return rec, true, nil
}

// Result is what MapTables found in a document.
type Result struct {
	Records []dto.PilaRecord
	// Failed holds one error per contributor row that was dropped.
	Failed []error
}

// MapTables maps every row of every table in ascending page order. Rows of other sizes are
// skipped silently; summary pages simply contribute nothing.
func MapTables(pages []dto.Page) (Result, error) {
	ordered := make([]dto.Page, len(pages))
	copy(ordered, pages)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Number < ordered[j].Number })

	var res Result
	for _, p := range ordered {
		for _, t := range p.Tables {
			for _, row := range t {
				rec, ok, err := MapRow(row)
				if err != nil {
					res.Failed = append(res.Failed, fmt.Errorf("page %d: %w", p.Number, err))
					continue
				}
				if ok {
					res.Records = append(res.Records, rec)
				}
			}
		}
	}
	if len(res.Records) == 0 {
		return res, fmt.Errorf("%w: no 43 or 52 cell contributor rows", dto.ErrUnrecognizedLayout)
	}
	return res, nil
}

// rowReader keeps the first field error so a row is built in one pass. PILA reports are
// always printed with Colombian separators, so "6.800" is six thousand eight hundred.
type rowReader struct {
	cells []string
	err   error
}

func (r *rowReader) text(i int) string {
	return strings.Join(strings.Fields(r.cells[i]), " ")
}

func (r *rowReader) days(i int) int {
	s := strings.TrimSpace(r.cells[i])
	if s == "" || r.err != nil {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		r.err = fmt.Errorf("days column %d: %q is not a number", i, s)
		return 0
	}
	return n
}

func (r *rowReader) amount(i int) money.Value {
	s := strings.TrimSpace(r.cells[i])
	if s == "" || r.err != nil {
		return money.FromInt(0)
	}
	v, err := money.ParseFormat(s, money.CommaDecimal)
	if err != nil {
		r.err = fmt.Errorf("column %d: %w", i, err)
		return money.FromInt(0)
	}
	return v
}

func (r *rowReader) rate(i int) money.Value {
	s := strings.TrimSpace(r.cells[i])
	if s == "" || r.err != nil {
		return money.FromInt(0)
	}
	d, err := money.ParseRate(s)
	if err != nil {
		r.err = fmt.Errorf("column %d: %w", i, err)
		return money.FromInt(0)
	}
	return d
}

func (r *rowReader) contribution(c contributionCols) dto.Contribution {
	return dto.Contribution{
		Administrator: r.text(c.Administrator),
		Days:          r.days(c.Days),
		IBC:           r.amount(c.IBC),
		Rate:          r.rate(c.Rate),
		Amount:        r.amount(c.Amount),
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
