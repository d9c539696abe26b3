// Package batch runs many shaft cases at once and moves them in and out of
// delimited and spreadsheet files.
package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexiusacademia/goshaft/internal/fatigue"
	"github.com/alexiusacademia/goshaft/internal/shaft"
)

// Computer computes one result; *fatigue.Cache satisfies it.
type Computer interface {
	Compute(in shaft.Inputs) fatigue.Result
}

type computeFunc func(shaft.Inputs) fatigue.Result

func (f computeFunc) Compute(in shaft.Inputs) fatigue.Result { return f(in) }

// Row is one calculated case
type Row struct {
	Name   string          `json:"name,omitempty"`
	Inputs shaft.Inputs    `json:"inputs"`
	Result fatigue.Result  `json:"result"`
	Issues []fatigue.Issue `json:"issues,omitempty"`
}

// Run computes every case in order. A nil Computer uses fatigue.Compute.
func Run(cases []shaft.Case, c Computer) []Row {
	if c == nil {
		c = computeFunc(fatigue.Compute)
	}
	rows := make([]Row, 0, len(cases))
	for i, cs := range cases {
		name := cs.Name
		if name == "" {
			name = "case-" + strconv.Itoa(i+1)
		}
		res := c.Compute(cs.Inputs)
		rows = append(rows, Row{Name: name, Inputs: cs.Inputs, Result: res, Issues: res.Issues()})
	}
	return rows
}

// ResultHeader returns the result column names in report order.
func ResultHeader() []string {
	fields := fatigue.Result{}.Fields()
	h := make([]string, 0, len(fields)+4)
	for _, f := range fields {
		h = append(h, f.Name)
	}
	return append(h, "status", "gerber_status", "yield_status", "life_state")
}

// ResultRecord flattens a result in ResultHeader order. Undefined values are
// empty cells.
func ResultRecord(r fatigue.Result) []string {
	fields := r.Fields()
	rec := make([]string, 0, len(fields)+4)
	for _, f := range fields {
		rec = append(rec, formatQuantity(f.Value))
	}
	return append(rec, string(r.Status), string(r.GerberStatus), string(r.YieldStatus), string(r.Life.State))
}

// Header returns the full row header: name, inputs, results.
func Header() []string {
	h := append([]string{shaft.NameColumn}, shaft.Header()...)
	return append(h, ResultHeader()...)
}

// Record flattens a row in Header order.
func (r Row) Record() []string {
	rec := append([]string{r.Name}, r.Inputs.Record()...)
	return append(rec, ResultRecord(r.Result)...)
}

func formatQuantity(q fatigue.Quantity) string {
	if !q.Defined {
		return ""
	}
	return strconv.FormatFloat(q.Value, 'g', -1, 64)
}

// ReadFile loads cases from a .csv, .xlsx, .yaml, .yml or .json file.
func ReadFile(path string) ([]shaft.Case, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml", ".json":
		return shaft.LoadCasesFromFile(path)
	case ".csv", ".xlsx":
	default:
		return nil, &shaft.OpError{Op: "batch.read", Kind: shaft.KindInvalidFormat, Path: path,
			Err: fmt.Errorf("unsupported extension %q", ext)}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &shaft.OpError{Op: "batch.read", Kind: shaft.KindNotFound, Path: path, Err: err}
	}
	defer f.Close()

	var cases []shaft.Case
	if ext == ".csv" {
		cases, err = ReadCSV(f)
	} else {
		cases, err = ReadXLSX(f)
	}
	if err != nil {
		var oe *shaft.OpError
		if errors.As(err, &oe) {
			oe.Path = path
			return nil, oe
		}
		return nil, &shaft.OpError{Op: "batch.read", Kind: shaft.KindInvalidFormat, Path: path, Err: err}
	}
	if len(cases) == 0 {
		return nil, &shaft.OpError{Op: "batch.read", Kind: shaft.KindInvalidInput, Path: path, Err: fmt.Errorf("no cases found")}
	}
	return cases, nil
}

// WriteFile writes rows to a .csv or .xlsx file.
func WriteFile(path string, rows []Row) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".csv" && ext != ".xlsx" {
		return fmt.Errorf("unsupported output extension %q (want .csv or .xlsx)", ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if ext == ".csv" {
		err = WriteCSV(f, rows)
	} else {
		err = WriteXLSX(f, rows)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
