package shaft

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// column binds one exported field name to its Inputs field. Exactly one of
// num or text is set.
type column struct {
	name string
	num  func(*Inputs) *float64
	text func(*Inputs) *MomentModel
}

var columns = []column{
	{name: "da", num: func(in *Inputs) *float64 { return &in.Da }},
	{name: "db", num: func(in *Inputs) *float64 { return &in.Db }},
	{name: "r", num: func(in *Inputs) *float64 { return &in.R }},
	{name: "l", num: func(in *Inputs) *float64 { return &in.L }},
	{name: "lfa", num: func(in *Inputs) *float64 { return &in.Lfa }},
	{name: "lfb", num: func(in *Inputs) *float64 { return &in.Lfb }},
	{name: "f", num: func(in *Inputs) *float64 { return &in.F }},
	{name: "fa", num: func(in *Inputs) *float64 { return &in.Fa }},
	{name: "fb", num: func(in *Inputs) *float64 { return &in.Fb }},
	{name: "mean_torque", num: func(in *Inputs) *float64 { return &in.MeanTorque }},
	{name: "alt_torque", num: func(in *Inputs) *float64 { return &in.AltTorque }},
	{name: "mean_load", num: func(in *Inputs) *float64 { return &in.MeanLoad }},
	{name: "amplitude_load", num: func(in *Inputs) *float64 { return &in.AmplitudeLoad }},
	{name: "uts", num: func(in *Inputs) *float64 { return &in.UTS }},
	{name: "sy", num: func(in *Inputs) *float64 { return &in.Sy }},
	{name: "a_surf", num: func(in *Inputs) *float64 { return &in.ASurf }},
	{name: "b_surf", num: func(in *Inputs) *float64 { return &in.BSurf }},
	{name: "fatigue_fraction", num: func(in *Inputs) *float64 { return &in.FatigueFraction }},
	{name: "moment", text: func(in *Inputs) *MomentModel { return &in.Moment }},
	{name: "section_x", num: func(in *Inputs) *float64 { return &in.SectionX }},
	{name: "bending_moment", num: func(in *Inputs) *float64 { return &in.BendingMoment }},
}

// NameColumn is the optional case-name column of delimited files
const NameColumn = "name"

// Header returns the column names of an Inputs record in canonical order.
func Header() []string {
	h := make([]string, len(columns))
	for i, c := range columns {
		h[i] = c.name
	}
	return h
}

// Record flattens the inputs into one delimited row, in Header order.
// Numbers use the shortest representation that parses back to the same value.
func (in Inputs) Record() []string {
	rec := make([]string, len(columns))
	for i, c := range columns {
		if c.num != nil {
			rec[i] = strconv.FormatFloat(*c.num(&in), 'g', -1, 64)
		} else {
			rec[i] = string(*c.text(&in))
		}
	}
	return rec
}

// ParseRecord is the inverse of Record.
func ParseRecord(rec []string) (Inputs, error) {
	if len(rec) != len(columns) {
		return Inputs{}, &ValidationError{msg: fmt.Sprintf("record has %d fields, want %d", len(rec), len(columns))}
	}
	var in Inputs
	for i, c := range columns {
		if err := c.set(&in, rec[i]); err != nil {
			return Inputs{}, err
		}
	}
	return in, nil
}

// FromFields builds inputs from named string values. Missing or blank fields
// keep their Defaults value; names that are not input columns are ignored,
// so callers check them with CheckHeader first.
func FromFields(fields map[string]string) (Inputs, error) {
	in := Defaults()
	for _, c := range columns {
		raw, ok := fields[c.name]
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		if err := c.set(&in, raw); err != nil {
			return Inputs{}, err
		}
	}
	return in, nil
}

// Set assigns one field by its column name, parsing raw the way delimited
// files are parsed.
func (in *Inputs) Set(name, raw string) error {
	for _, c := range columns {
		if c.name == name {
			return c.set(in, raw)
		}
	}
	return &ValidationError{msg: fmt.Sprintf("unknown input %q", name)}
}

func (c column) set(in *Inputs, raw string) error {
	raw = strings.TrimSpace(raw)
	if c.text != nil {
		if raw == "" {
			*c.text(in) = ""
			return nil
		}
		m, err := ParseMomentModel(raw)
		if err != nil {
			return err
		}
		*c.text(in) = m
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return &ValidationError{msg: fmt.Sprintf("%s: invalid number %q", c.name, raw)}
	}
	*c.num(in) = v
	return nil
}

// WriteCSV writes a header row followed by one row per case.
func WriteCSV(w io.Writer, cases []Case) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{NameColumn}, Header()...)); err != nil {
		return err
	}
	for _, c := range cases {
		if err := cw.Write(append([]string{c.Name}, c.Inputs.Record()...)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CheckHeader rejects a header row that names a column other than
// NameColumn, an input column or one of extra, or that repeats a column.
// Names are compared as given; callers lower-case them first.
func CheckHeader(header []string, extra ...string) error {
	known := make(map[string]bool, len(columns)+len(extra)+1)
	known[NameColumn] = true
	for _, c := range columns {
		known[c.name] = true
	}
	for _, e := range extra {
		known[e] = true
	}

	seen := make(map[string]bool, len(header))
	for i, name := range header {
		switch {
		case name == "":
			return &ValidationError{msg: fmt.Sprintf("column %d has no name", i+1)}
		case !known[name]:
			return &ValidationError{msg: fmt.Sprintf("unknown column %q", name)}
		case seen[name]:
			return &ValidationError{msg: fmt.Sprintf("duplicate column %q", name)}
		}
		seen[name] = true
	}
	return nil
}

// ReadCSV reads cases from a delimited file whose first row names the
// columns. Columns may appear in any order; missing ones take defaults.
// Columns named in extra are accepted and ignored; any other unknown column
// is an error.
func ReadCSV(r io.Reader, extra ...string) ([]Case, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &OpError{Op: "shaft.read_csv", Kind: KindInvalidFormat, Err: errors.New("missing header row")}
		}
		return nil, &OpError{Op: "shaft.read_csv", Kind: KindInvalidFormat, Err: err}
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}
	if err := CheckHeader(header, extra...); err != nil {
		return nil, &OpError{Op: "shaft.read_csv", Kind: KindInvalidFormat, Err: err}
	}

	var cases []Case
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, &OpError{Op: "shaft.read_csv", Kind: KindInvalidFormat, Err: err}
		}
		c, err := CaseFromRow(header, rec)
		if err != nil {
			return nil, &OpError{Op: "shaft.read_csv", Kind: KindInvalidInput, Err: fmt.Errorf("line %d: %w", line, err)}
		}
		cases = append(cases, c)
	}
	return cases, nil
}

// CaseFromRow maps a row onto a Case using the lower-cased header names.
// Blank rows yield an error so callers can report the line.
func CaseFromRow(header, row []string) (Case, error) {
	fields := make(map[string]string, len(header))
	blank := true
	for i, name := range header {
		if i >= len(row) {
			break
		}
		fields[name] = row[i]
		if strings.TrimSpace(row[i]) != "" {
			blank = false
		}
	}
	if blank {
		return Case{}, &ValidationError{msg: "empty row"}
	}
	in, err := FromFields(fields)
	if err != nil {
		return Case{}, err
	}
	if err := in.Validate(); err != nil {
		return Case{}, err
	}
	return Case{Name: strings.TrimSpace(fields[NameColumn]), Inputs: in}, nil
}
