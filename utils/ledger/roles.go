package ledger

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Aashish23092/ledger-extraction/dto"
	"github.com/Aashish23092/ledger-extraction/utils/money"
)

// ErrNoAmountColumn means neither strategy found a column to read amounts from.
var ErrNoAmountColumn = errors.New("no amount column")

type ColumnRole int

const (
	RoleOther ColumnRole = iota
	RoleDate
	RoleDescription
	RoleCredit
	RoleDebit
)

func (r ColumnRole) String() string {
	switch r {
	case RoleDate:
		return "date"
	case RoleDescription:
		return "description"
	case RoleCredit:
		return "credit"
	case RoleDebit:
		return "debit"
	default:
		return "other"
	}
}

// Strategy records how amounts were located.
type Strategy int

const (
	StrategyNone Strategy = iota
	// StrategyExplicit reads separate credit and debit columns named in the header.
	StrategyExplicit
	// StrategyMostMonetary reads one signed amount column picked by cell statistics.
	StrategyMostMonetary
)

func (s Strategy) String() string {
	switch s {
	case StrategyExplicit:
		return "explicit_columns"
	case StrategyMostMonetary:
		return "most_monetary_column"
	default:
		return "none"
	}
}

// Roles is the column assignment for one table. Indices are -1 when absent. Credit/Debit
// and Amount are mutually exclusive: Strategy says which pair is in use.
type Roles struct {
	Columns     []ColumnRole
	Date        int
	Description int
	Credit      int
	Debit       int
	Amount      int
	Strategy    Strategy
}

var datePattern = regexp.MustCompile(`^(\d{1,2}[/.-]\d{1,2}([/.-]\d{2,4})?|\d{4}-\d{2}-\d{2}|\d{1,2}[\s/-]?[A-Za-z]{3}[\s/-]?(\d{2,4})?)$`)

// InferRoles assigns roles to the columns of an accepted table.
func (c *Classifier) InferRoles(t dto.RawTable) (Roles, error) {
	header := t.Header()
	width := tableWidth(t)
	roles := Roles{
		Columns:     make([]ColumnRole, width),
		Date:        -1,
		Description: -1,
		Credit:      -1,
		Debit:       -1,
		Amount:      -1,
	}

	balance := make([]bool, width)
	for i := 0; i < width && i < len(header); i++ {
		cell := header[i]
		isCredit := containsAny(cell, c.kw.Roles.Credit)
		isDebit := containsAny(cell, c.kw.Roles.Debit)
		switch {
		case isCredit && isDebit:
			// "Débitos/Créditos" names both sides and neither.
		case isCredit:
			if roles.Credit == -1 {
				roles.Credit = i
				roles.Columns[i] = RoleCredit
			}
		case isDebit:
			if roles.Debit == -1 {
				roles.Debit = i
				roles.Columns[i] = RoleDebit
			}
		case containsAny(cell, c.kw.Roles.Balance):
			balance[i] = true
		case containsAny(cell, c.kw.Roles.Date):
			if roles.Date == -1 {
				roles.Date = i
				roles.Columns[i] = RoleDate
			}
		case containsAny(cell, c.kw.Roles.Description):
			if roles.Description == -1 {
				roles.Description = i
				roles.Columns[i] = RoleDescription
			}
		}
	}

	data := t[min(1, len(t)):]

	if roles.Credit >= 0 || roles.Debit >= 0 {
		roles.Strategy = StrategyExplicit
	} else {
		best, bestCount := -1, 0
		for col := 0; col < width; col++ {
			if balance[col] || col == roles.Date {
				continue
			}
			n := 0
			for _, row := range data {
				cell := cellAt(row, col)
				if !money.LooksMonetary(cell) {
					continue
				}
				if _, err := money.Normalize(cell); err == nil {
					n++
				}
			}
			// strict '>' keeps the lowest index on ties
			if n > bestCount {
				best, bestCount = col, n
			}
		}
		if best == -1 {
			return roles, ErrNoAmountColumn
		}
		roles.Amount = best
		roles.Strategy = StrategyMostMonetary
		if roles.Description == best {
			roles.Description = -1
		}
		if roles.Columns[best] == RoleDescription {
			roles.Columns[best] = RoleOther
		}
	}

	if roles.Date == -1 {
		roles.Date = firstDateColumn(data, width, roles)
		if roles.Date >= 0 {
			roles.Columns[roles.Date] = RoleDate
		}
	}
	if roles.Description == -1 {
		roles.Description = longestTextColumn(data, width, roles)
		if roles.Description >= 0 {
			roles.Columns[roles.Description] = RoleDescription
		}
	}

	return roles, nil
}

// ReduceRows turns the data rows of a table into transactions. Rows without a usable
// amount are dropped; the rest keep table order.
func ReduceRows(t dto.RawTable, roles Roles) []dto.TransactionRow {
	var out []dto.TransactionRow
	for _, row := range t[min(1, len(t)):] {
		date := cleanCell(cellAt(row, roles.Date))
		desc := cleanCell(cellAt(row, roles.Description))

		switch roles.Strategy {
		case StrategyExplicit:
			if v, ok := populated(cellAt(row, roles.Credit)); ok {
				out = append(out, dto.TransactionRow{Date: date, Description: desc, Amount: v.Abs(), Direction: dto.Entrada})
			} else if v, ok := populated(cellAt(row, roles.Debit)); ok {
				out = append(out, dto.TransactionRow{Date: date, Description: desc, Amount: v.Abs(), Direction: dto.Salida})
			}
		case StrategyMostMonetary:
			v, err := money.Normalize(cellAt(row, roles.Amount))
			if err != nil {
				continue
			}
			out = append(out, dto.NewSignedTransaction(date, desc, v))
		}
	}
	return out
}

// ExtractRows runs classification and role inference over a whole document. Tables without
// an amount column are discarded; rows of the remaining tables are concatenated in page
// order.
func (c *Classifier) ExtractRows(pages []dto.Page) ([]dto.TransactionRow, error) {
	var rows []dto.TransactionRow
	for _, lt := range c.SelectTables(pages) {
		roles, err := c.InferRoles(lt.Table)
		if err != nil {
			continue
		}
		rows = append(rows, ReduceRows(lt.Table, roles)...)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no ledger table yielded rows", dto.ErrNoTransactionsFound)
	}
	return rows, nil
}

// populated reads a credit or debit cell. Blank, unparsable, and zero cells count as empty.
func populated(cell string) (money.Value, bool) {
	if strings.TrimSpace(cell) == "" {
		return money.Value{}, false
	}
	v, err := money.Normalize(cell)
	if err != nil || v.IsZero() {
		return money.Value{}, false
	}
	return v, true
}

func firstDateColumn(data dto.RawTable, width int, roles Roles) int {
	for col := 0; col < width; col++ {
		if roles.Columns[col] != RoleOther || col == roles.Amount {
			continue
		}
		filled, dates := 0, 0
		for _, row := range data {
			cell := strings.TrimSpace(cellAt(row, col))
			if cell == "" {
				continue
			}
			filled++
			if datePattern.MatchString(cell) {
				dates++
			}
		}
		if filled > 0 && dates*2 > filled {
			return col
		}
	}
	return -1
}

func longestTextColumn(data dto.RawTable, width int, roles Roles) int {
	best, bestLen := -1, 0
	for col := 0; col < width; col++ {
		if roles.Columns[col] != RoleOther || col == roles.Amount {
			continue
		}
		total := 0
		for _, row := range data {
			cell := cleanCell(cellAt(row, col))
			if money.LooksMonetary(cell) {
				continue
			}
			total += len([]rune(cell))
		}
		if total > bestLen {
			best, bestLen = col, total
		}
	}
	return best
}

func tableWidth(t dto.RawTable) int {
	w := 0
	for _, row := range t {
		w = max(w, len(row))
	}
	return w
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// cleanCell collapses wrapped PDF text into a single line.
func cleanCell(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
