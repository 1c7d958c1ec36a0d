// Package textpattern reads transactions out of statement text for issuers whose PDFs carry
// no usable table structure. Two line grammars are supported; the one that yields more rows
// wins.
package textpattern

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Aashish23092/ledger-extraction/dto"
	"github.com/Aashish23092/ledger-extraction/utils/money"
)

type Grammar int

const (
	// StyleA lines read "DD/MM description amount balance" with point-decimal amounts.
	StyleA Grammar = iota
	// StyleB lines read "DD MM office description debit credit" with comma-decimal amounts.
	StyleB
)

func (g Grammar) String() string {
	if g == StyleB {
		return "text_style_b"
	}
	return "text_style_a"
}

var (
	styleAAnchor = regexp.MustCompile(`^\d{1,2}/\d{1,2}\s`)
	styleALine   = regexp.MustCompile(`^(\d{1,2}/\d{1,2})\s+(.+?)\s+(-?[\d,]*\d\.\d{2}-?)\s+(-?[\d,]*\d\.\d{2}-?)$`)

	styleBAnchor = regexp.MustCompile(`^\d{1,2}\s+\d{1,2}\s+\d{2,5}\s`)
	styleBLine   = regexp.MustCompile(`^(\d{1,2})\s+(\d{1,2})\s+(\d{2,5})\s+(.+?)\s+(?:\$\s*)?(-|[\d.]*\d,\d{2})\s+(?:\$\s*)?(-|[\d.]*\d,\d{2})$`)
)

type grammar struct {
	anchor *regexp.Regexp
	line   *regexp.Regexp
	build  func(m []string) (dto.TransactionRow, bool)
}

var grammars = map[Grammar]grammar{
	StyleA: {anchor: styleAAnchor, line: styleALine, build: buildStyleA},
	StyleB: {anchor: styleBAnchor, line: styleBLine, build: buildStyleB},
}

// Extract runs both grammars and returns the longer result.
func Extract(text string) ([]dto.TransactionRow, error) {
	_, rows, err := Match(text)
	return rows, err
}

// Match is Extract that also reports which grammar produced the rows. Ties go to StyleA.
func Match(text string) (Grammar, []dto.TransactionRow, error) {
	a := ParseStyleA(text)
	b := ParseStyleB(text)
	switch {
	case len(a) == 0 && len(b) == 0:
		return StyleA, nil, fmt.Errorf("%w: no statement line matched", dto.ErrNoTransactionsFound)
	case len(b) > len(a):
		return StyleB, b, nil
	default:
		return StyleA, a, nil
	}
}

func ParseStyleA(text string) []dto.TransactionRow { return parse(grammars[StyleA], text) }

func ParseStyleB(text string) []dto.TransactionRow { return parse(grammars[StyleB], text) }

func parse(g grammar, text string) []dto.TransactionRow {
	var rows []dto.TransactionRow
	for _, rec := range JoinContinuations(text, g.anchor) {
		if m := g.line.FindStringSubmatch(rec.Joined()); m != nil {
			if row, ok := g.build(m); ok {
				rows = append(rows, row)
			}
			continue
		}
		// amounts on the anchor line, wrapped description below it
		if len(rec.Continuations) == 0 {
			continue
		}
		m := g.line.FindStringSubmatch(rec.Head)
		if m == nil {
			continue
		}
		row, ok := g.build(m)
		if !ok {
			continue
		}
		row.Description = strings.Join(append([]string{row.Description}, rec.Continuations...), " ")
		rows = append(rows, row)
	}
	return rows
}

func buildStyleA(m []string) (dto.TransactionRow, bool) {
	v, err := money.ParseFormat(m[3], money.PointDecimal)
	if err != nil {
		return dto.TransactionRow{}, false
	}
	return dto.NewSignedTransaction(m[1], m[2], v), true
}

func buildStyleB(m []string) (dto.TransactionRow, bool) {
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return dto.TransactionRow{}, false
	}

	debit, dok := slot(m[5])
	credit, cok := slot(m[6])
	if dok == cok {
		// both empty, or both populated and ambiguous
		return dto.TransactionRow{}, false
	}

	row := dto.TransactionRow{
		Date:        fmt.Sprintf("%02d/%02d", day, month),
		Description: m[4],
	}
	if dok {
		row.Amount, row.Direction = debit.Abs(), dto.Salida
	} else {
		row.Amount, row.Direction = credit.Abs(), dto.Entrada
	}
	return row, true
}

// slot reads one style B amount column. "-" and zero mean the column is empty.
func slot(s string) (money.Value, bool) {
	if s == "-" {
		return money.Value{}, false
	}
	v, err := money.ParseFormat(s, money.CommaDecimal)
	if err != nil || v.IsZero() {
		return money.Value{}, false
	}
	return v, true
}
