package pila

// contributionCols locates one subsystem block inside a row.
type contributionCols struct {
	Administrator int
	Days          int
	IBC           int
	Rate          int
	Amount        int
}

// Layout is a positional index map for one cell count of the PILA contributor table.
type Layout struct {
	Cells int

	No             int
	DocumentType   int
	DocumentNumber int
	Name           int

	Pension          contributionCols
	Health           contributionCols
	CompensationFund contributionCols
	OccupationalRisk contributionCols

	SENA  int
	ICBF  int
	Total int
}

// layout52 is the full operator report: twelve novelty flags after the identity block, and
// solidarity fund and UPC columns inside the pension and health blocks.
var layout52 = Layout{
	Cells:          52,
	No:             0,
	DocumentType:   1,
	DocumentNumber: 2,
	Name:           3,
	// 4-15: ING RET TDE TAE TDP TAP VSP VST SLN IGE LMA VAC
	Pension:          contributionCols{Administrator: 16, Days: 17, IBC: 18, Rate: 19, Amount: 20},
	Health:           contributionCols{Administrator: 24, Days: 25, IBC: 26, Rate: 27, Amount: 28},
	CompensationFund: contributionCols{Administrator: 31, Days: 32, IBC: 33, Rate: 34, Amount: 35},
	OccupationalRisk: contributionCols{Administrator: 36, Days: 37, IBC: 38, Rate: 40, Amount: 41},
	SENA:             44,
	ICBF:             46,
	Total:            51,
}

// layout43 is the condensed report: three novelty flags, no UPC column, contributor type
// columns at the end.
var layout43 = Layout{
	Cells:          43,
	No:             0,
	DocumentType:   1,
	DocumentNumber: 2,
	Name:           3,
	// 4-6: ING RET VSP
	Pension:          contributionCols{Administrator: 7, Days: 8, IBC: 9, Rate: 10, Amount: 11},
	Health:           contributionCols{Administrator: 14, Days: 15, IBC: 16, Rate: 17, Amount: 18},
	CompensationFund: contributionCols{Administrator: 20, Days: 21, IBC: 22, Rate: 23, Amount: 24},
	OccupationalRisk: contributionCols{Administrator: 25, Days: 26, IBC: 27, Rate: 29, Amount: 30},
	SENA:             33,
	ICBF:             35,
	Total:            42,
}

// Layouts maps a row's cell count to the only index map allowed to read it.
var Layouts = map[int]Layout{
	layout52.Cells: layout52,
	layout43.Cells: layout43,
}
