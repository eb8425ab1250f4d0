package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	ErrEmptyFile     = errors.New("no columns to parse from file")
	ErrTooManyFields = errors.New("record has more fields than the header")
)

// nullTokens are the cell spellings read as missing values.
var nullTokens = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {}, "-NaN": {},
	"-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {}, "NA": {}, "NULL": {},
	"NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

type kind int

const (
	kindString kind = iota
	kindInt
	kindFloat
	kindBool
)

// Table is a fully read CSV file. Every row carries every column, in header
// order; missing cells are nil.
type Table struct {
	Columns []string
	Rows    []bson.D
}

func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

func ReadCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV reads every record and types each column as a whole: integer
// columns without nulls stay int64, numeric columns become float64, boolean
// columns bool, anything else string.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	cols := dedupeHeader(header)

	var raw [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		if len(rec) > len(cols) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d has %d fields, header has %d", ErrTooManyFields, line, len(rec), len(cols))
		}
		raw = append(raw, rec)
	}

	kinds := make([]kind, len(cols))
	for j := range cols {
		kinds[j] = inferKind(raw, j)
	}

	rows := make([]bson.D, 0, len(raw))
	for _, rec := range raw {
		d := make(bson.D, len(cols))
		for j, col := range cols {
			s, ok := cell(rec, j)
			d[j] = bson.E{Key: col, Value: convert(s, ok, kinds[j])}
		}
		rows = append(rows, d)
	}
	return &Table{Columns: cols, Rows: rows}, nil
}

// cell returns the j-th field and whether it holds a value.
func cell(rec []string, j int) (string, bool) {
	if j >= len(rec) {
		return "", false
	}
	if _, null := nullTokens[rec[j]]; null {
		return "", false
	}
	return rec[j], true
}

func inferKind(raw [][]string, j int) kind {
	var (
		hasNull bool
		values  int
		allInt  = true
		allNum  = true
		allBool = true
	)
	for _, rec := range raw {
		s, ok := cell(rec, j)
		if !ok {
			hasNull = true
			continue
		}
		values++
		if allInt && !isInt(s) {
			allInt = false
		}
		if allNum && !isFloat(s) {
			allNum = false
		}
		if allBool && !isBool(s) {
			allBool = false
		}
		if !allNum && !allBool {
			return kindString
		}
	}
	switch {
	case values == 0:
		return kindString
	case allInt && !hasNull:
		return kindInt
	case allNum:
		return kindFloat
	case allBool:
		return kindBool
	}
	return kindString
}

func convert(s string, ok bool, k kind) any {
	if !ok {
		return nil
	}
	switch k {
	case kindInt:
		n, _ := strconv.ParseInt(s, 10, 64)
		return n
	case kindFloat:
		f, _ := strconv.ParseFloat(s, 64)
		return f
	case kindBool:
		return strings.EqualFold(s, "true")
	}
	return s
}

func isInt(s string) bool {
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

func isFloat(s string) bool {
	if strings.ContainsAny(s, "xX_") {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func isBool(s string) bool {
	switch s {
	case "True", "TRUE", "true", "False", "FALSE", "false":
		return true
	}
	return false
}

// dedupeHeader names blank headers "Unnamed: i" and suffixes repeats with
// ".1", ".2", ...
func dedupeHeader(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		if strings.TrimSpace(h) == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		name := h
		if n, dup := seen[h]; dup {
			for {
				name = fmt.Sprintf("%s.%d", h, n)
				n++
				if _, taken := seen[name]; !taken {
					break
				}
			}
			seen[h] = n
		} else {
			seen[h] = 1
		}
		if name != h {
			seen[name] = 1
		}
		out[i] = name
	}
	return out
}
