package shaft

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexiusacademia/goshaft/internal/shigley"
	"gopkg.in/yaml.v3"
)

// caseFile is the on-disk shape of a case: the Inputs fields inline, plus an
// optional name and surface finish shorthand.
type caseFile struct {
	Name   string `json:"name" yaml:"name"`
	Finish string `json:"finish" yaml:"finish"`
	Inputs `yaml:",inline"`
}

type casesFile struct {
	Cases []yaml.Node `yaml:"cases"`
}

// caseKey reports whether name is a field of a case object. Matching is
// exact: "Db" or "UTS" are not case fields.
func caseKey(name string) bool {
	if name == "name" || name == "finish" {
		return true
	}
	for _, c := range columns {
		if c.name == name {
			return true
		}
	}
	return false
}

// LoadFromFile loads a single case from a YAML or JSON file. If the file
// holds a case list, the first case is returned.
func LoadFromFile(path string) (Inputs, error) {
	cases, err := LoadCasesFromFile(path)
	if err != nil {
		return Inputs{}, err
	}
	return cases[0].Inputs, nil
}

// LoadCasesFromFile loads one or more cases from a YAML (.yaml, .yml) or
// JSON (.json) file. A file is either one case or a mapping with a "cases"
// list. Fields a case leaves out take their Defaults value.
func LoadCasesFromFile(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &OpError{Op: "shaft.load", Kind: KindNotFound, Path: path, Err: err}
	}

	var cases []Case
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		cases, err = decodeYAML(data)
	case ".json":
		cases, err = decodeJSON(data)
	default:
		return nil, &OpError{Op: "shaft.load", Kind: KindInvalidFormat, Path: path,
			Err: fmt.Errorf("unsupported extension %q (want .yaml, .yml or .json)", filepath.Ext(path))}
	}
	if err != nil {
		return nil, &OpError{Op: "shaft.load", Kind: KindInvalidFormat, Path: path, Err: err}
	}
	if len(cases) == 0 {
		return nil, &OpError{Op: "shaft.load", Kind: KindInvalidInput, Path: path, Err: fmt.Errorf("no cases defined")}
	}
	for i, c := range cases {
		if err := c.Inputs.Validate(); err != nil {
			return nil, &OpError{Op: "shaft.load", Kind: KindInvalidInput, Path: path, Err: fmt.Errorf("cases[%d]: %w", i, err)}
		}
	}
	return cases, nil
}

func decodeYAML(data []byte) ([]Case, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.New("a case file must be a mapping")
	}

	if !yamlHasKey(root, "cases") {
		given, err := yamlKeys(root)
		if err != nil {
			return nil, err
		}
		cf := caseFile{Inputs: Defaults()}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cf); err != nil {
			return nil, err
		}
		c, err := cf.toCase(given)
		if err != nil {
			return nil, err
		}
		return []Case{c}, nil
	}

	var list casesFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&list); err != nil {
		return nil, err
	}
	cases := make([]Case, 0, len(list.Cases))
	for i := range list.Cases {
		c, err := decodeYAMLCase(&list.Cases[i])
		if err != nil {
			return nil, fmt.Errorf("cases[%d]: %w", i, err)
		}
		cases = append(cases, c)
	}
	return cases, nil
}

// decodeYAMLCase decodes one entry of a cases list. Node.Decode has no
// known-fields mode, so the keys are checked first.
func decodeYAMLCase(n *yaml.Node) (Case, error) {
	if n.Kind != yaml.MappingNode {
		return Case{}, errors.New("a case must be a mapping")
	}
	given, err := yamlKeys(n)
	if err != nil {
		return Case{}, err
	}
	cf := caseFile{Inputs: Defaults()}
	if err := n.Decode(&cf); err != nil {
		return Case{}, err
	}
	return cf.toCase(given)
}

func yamlHasKey(n *yaml.Node, key string) bool {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return true
		}
	}
	return false
}

// yamlKeys returns the keys of a case mapping, rejecting unknown ones.
func yamlKeys(n *yaml.Node) (map[string]bool, error) {
	given := make(map[string]bool, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		if !caseKey(key) {
			return nil, &ValidationError{msg: fmt.Sprintf("line %d: unknown field %q", n.Content[i].Line, key)}
		}
		given[key] = true
	}
	return given, nil
}

func decodeJSON(data []byte) ([]Case, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, err
	}
	raw, ok := top["cases"]
	if !ok {
		c, err := DecodeCaseJSON(data)
		if err != nil {
			return nil, err
		}
		return []Case{c}, nil
	}
	for key := range top {
		if key != "cases" {
			return nil, &ValidationError{msg: fmt.Sprintf("unknown field %q next to cases", key)}
		}
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("cases: %w", err)
	}
	cases := make([]Case, 0, len(list))
	for i, item := range list {
		c, err := DecodeCaseJSON(item)
		if err != nil {
			return nil, fmt.Errorf("cases[%d]: %w", i, err)
		}
		cases = append(cases, c)
	}
	return cases, nil
}

// DecodeCaseJSON decodes one case object: the Inputs fields plus optional
// "name" and "finish". Keys must match exactly; unknown keys are an error.
// Omitted fields take their Defaults value. The result is not validated.
func DecodeCaseJSON(data []byte) (Case, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return Case{}, err
	}
	if fields == nil {
		return Case{}, errors.New("a case must be a JSON object")
	}
	given := make(map[string]bool, len(fields))
	for key := range fields {
		if !caseKey(key) {
			return Case{}, &ValidationError{msg: fmt.Sprintf("unknown field %q", key)}
		}
		given[key] = true
	}

	cf := caseFile{Inputs: Defaults()}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cf); err != nil {
		return Case{}, err
	}
	return cf.toCase(given)
}

// toCase applies the finish shorthand and normalizes the moment model.
// given holds the keys present in the source; a finish cannot be combined
// with explicit surface factors.
func (cf caseFile) toCase(given map[string]bool) (Case, error) {
	in := cf.Inputs
	if cf.Finish != "" {
		if given["a_surf"] || given["b_surf"] {
			return Case{}, &ValidationError{msg: "finish cannot be combined with a_surf or b_surf"}
		}
		f, ok := shigley.FinishByName(cf.Finish)
		if !ok {
			return Case{}, &ValidationError{msg: fmt.Sprintf("unknown surface finish %q", cf.Finish)}
		}
		in.ASurf, in.BSurf = f.A, f.B
	}
	if in.Moment != "" {
		m, err := ParseMomentModel(string(in.Moment))
		if err != nil {
			return Case{}, err
		}
		in.Moment = m
	}
	return Case{Name: cf.Name, Inputs: in}, nil
}
