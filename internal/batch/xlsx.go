package batch

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alexiusacademia/goshaft/internal/shaft"
	"github.com/xuri/excelize/v2"
)

const (
	resultsSheet = "Results"
	issuesSheet  = "Issues"
)

// WriteXLSX writes the rows to a workbook with a "Results" sheet (one row per
// calculation) and an "Issues" sheet listing undefined quantities.
func WriteXLSX(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), resultsSheet); err != nil {
		return err
	}
	if err := setRow(f, resultsSheet, 1, toCells(Header())); err != nil {
		return err
	}
	for i, r := range rows {
		if err := setRow(f, resultsSheet, i+2, rowCells(r)); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(resultsSheet, "A", "A", 24); err != nil {
		return err
	}
	if err := f.SetPanes(resultsSheet, &excelize.Panes{
		Freeze: true, XSplit: 1, YSplit: 1, TopLeftCell: "B2", ActivePane: "bottomRight",
	}); err != nil {
		return err
	}

	if _, err := f.NewSheet(issuesSheet); err != nil {
		return err
	}
	if err := setRow(f, issuesSheet, 1, toCells([]string{"name", "quantity", "reason", "detail"})); err != nil {
		return err
	}
	line := 2
	for _, r := range rows {
		for _, is := range r.Issues {
			if err := setRow(f, issuesSheet, line, []interface{}{r.Name, is.Quantity, string(is.Reason), is.Detail}); err != nil {
				return err
			}
			line++
		}
	}

	return f.Write(w)
}

// ReadXLSX reads cases from the first sheet of a workbook. The first row
// names the columns. Result columns are ignored so a results workbook can be
// read back as input; any other unknown column is an error.
func ReadXLSX(r io.Reader) ([]shaft.Case, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &shaft.OpError{Op: "batch.read_xlsx", Kind: shaft.KindInvalidFormat, Err: err}
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &shaft.OpError{Op: "batch.read_xlsx", Kind: shaft.KindInvalidFormat, Err: err}
	}
	if len(rows) < 2 {
		return nil, &shaft.OpError{Op: "batch.read_xlsx", Kind: shaft.KindInvalidInput, Err: fmt.Errorf("sheet %q has no data rows", sheet)}
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}
	if err := shaft.CheckHeader(header, ResultHeader()...); err != nil {
		return nil, &shaft.OpError{Op: "batch.read_xlsx", Kind: shaft.KindInvalidFormat, Err: err}
	}

	var cases []shaft.Case
	for i := 1; i < len(rows); i++ {
		if isBlank(rows[i]) {
			continue
		}
		c, err := shaft.CaseFromRow(header, rows[i])
		if err != nil {
			return nil, &shaft.OpError{Op: "batch.read_xlsx", Kind: shaft.KindInvalidInput, Err: fmt.Errorf("row %d: %w", i+1, err)}
		}
		cases = append(cases, c)
	}
	return cases, nil
}

func setRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &cells)
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

// rowCells keeps numbers numeric so spreadsheets can compute with them.
func rowCells(r Row) []interface{} {
	rec := r.Record()
	cells := make([]interface{}, len(rec))
	for i, v := range rec {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			cells[i] = n
			continue
		}
		cells[i] = v
	}
	cells[0] = r.Name
	return cells
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
