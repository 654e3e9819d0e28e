// Package modelfile reads models written in YAML:
//
//	name: diet
//	sense: minimize
//	offset: 0
//	columns:
//	  - {name: x, cost: 1, lower: 0, upper: .inf}
//	  - {name: y, cost: 2, lower: 0, upper: 4, type: integer}
//	rows:
//	  - name: c1
//	    lower: 1
//	    upper: .inf
//	    entries: [{col: x, value: 1}, {col: y, value: 1}]
//
// Omitted column bounds default to [0, +inf], omitted row bounds to
// (-inf, +inf). Infinities are written as .inf and -.inf.
package modelfile

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bartolsthoorn/highslp/highs"
)

// ErrInvalid is wrapped by every model file content error.
var ErrInvalid = errors.New("invalid model file")

// File is the YAML document.
type File struct {
	Name    string   `yaml:"name,omitempty"`
	Sense   string   `yaml:"sense,omitempty"`
	Offset  float64  `yaml:"offset,omitempty"`
	Columns []Column `yaml:"columns"`
	Rows    []Row    `yaml:"rows,omitempty"`
}

// Column is one variable.
type Column struct {
	Name  string   `yaml:"name"`
	Cost  float64  `yaml:"cost,omitempty"`
	Lower *float64 `yaml:"lower,omitempty"`
	Upper *float64 `yaml:"upper,omitempty"`
	Type  string   `yaml:"type,omitempty"`
}

// Row is one constraint.
type Row struct {
	Name    string   `yaml:"name,omitempty"`
	Lower   *float64 `yaml:"lower,omitempty"`
	Upper   *float64 `yaml:"upper,omitempty"`
	Entries []Entry  `yaml:"entries,omitempty"`
}

// Entry is one coefficient of a row, referring to a column by name.
type Entry struct {
	Col   string  `yaml:"col"`
	Value float64 `yaml:"value"`
}

// Load reads the model file at path.
func Load(path string) (*highs.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Decode reads one YAML model document from r.
func Decode(r io.Reader) (*highs.Model, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decoding model: %w", err)
	}
	return file.Model()
}

// Model converts the document to a highs.Model.
func (f *File) Model() (*highs.Model, error) {
	m := &highs.Model{Name: f.Name, Offset: f.Offset}
	switch strings.ToLower(f.Sense) {
	case "", "min", "minimize":
	case "max", "maximize":
		m.Maximize = true
	default:
		return nil, fmt.Errorf("%w: unknown sense %q", ErrInvalid, f.Sense)
	}

	cols := make(map[string]int, len(f.Columns))
	integer := false
	for i, c := range f.Columns {
		if c.Name == "" {
			return nil, fmt.Errorf("%w: column %d has no name", ErrInvalid, i)
		}
		if _, dup := cols[c.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrInvalid, c.Name)
		}
		cols[c.Name] = i
		t, err := parseType(c.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: column %q: %v", ErrInvalid, c.Name, err)
		}
		integer = integer || t != highs.Continuous
		m.ColNames = append(m.ColNames, c.Name)
		m.ColCosts = append(m.ColCosts, c.Cost)
		m.ColLower = append(m.ColLower, valueOr(c.Lower, 0))
		m.ColUpper = append(m.ColUpper, valueOr(c.Upper, math.Inf(1)))
		m.VarTypes = append(m.VarTypes, t)
	}
	if !integer {
		m.VarTypes = nil
	}

	rows := make(map[string]bool, len(f.Rows))
	for i, r := range f.Rows {
		name := r.Name
		if name == "" {
			name = fmt.Sprintf("r%d", i)
		}
		if rows[name] {
			return nil, fmt.Errorf("%w: duplicate row %q", ErrInvalid, name)
		}
		rows[name] = true
		m.RowNames = append(m.RowNames, name)

		index := make([]int, 0, len(r.Entries))
		value := make([]float64, 0, len(r.Entries))
		for _, e := range r.Entries {
			col, ok := cols[e.Col]
			if !ok {
				return nil, fmt.Errorf("%w: row %q refers to unknown column %q", ErrInvalid, name, e.Col)
			}
			index = append(index, col)
			value = append(value, e.Value)
		}
		m.AddSparseRow(valueOr(r.Lower, math.Inf(-1)), index, value, valueOr(r.Upper, math.Inf(1)))
	}
	return m, nil
}

func parseType(name string) (highs.VariableType, error) {
	switch strings.ToLower(name) {
	case "", "continuous":
		return highs.Continuous, nil
	case "integer":
		return highs.Integer, nil
	case "semicontinuous":
		return highs.SemiContinuous, nil
	case "semiinteger":
		return highs.SemiInteger, nil
	}
	return highs.Continuous, fmt.Errorf("unknown type %q", name)
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
