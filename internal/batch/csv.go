package batch

import (
	"encoding/csv"
	"io"

	"github.com/alexiusacademia/goshaft/internal/shaft"
)

// ReadCSV reads cases from a delimited file. Result columns are accepted
// so a results file can be read back as input; other unknown columns are
// an error.
func ReadCSV(r io.Reader) ([]shaft.Case, error) {
	return shaft.ReadCSV(r, ResultHeader()...)
}

// WriteCSV writes one header row and one row per calculation.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header()); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.Record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
