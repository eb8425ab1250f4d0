package ingest

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

var ErrMissingColumn = errors.New("required column not found")

// DropMissing keeps the rows whose required fields are all non-null. Nothing
// else about a row is inspected or changed.
func DropMissing(t *Table, required []string) ([]bson.D, error) {
	idx := make([]int, len(required))
	for i, f := range required {
		j := t.ColumnIndex(f)
		if j < 0 {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, f)
		}
		idx[i] = j
	}

	kept := make([]bson.D, 0, len(t.Rows))
rows:
	for _, row := range t.Rows {
		for _, j := range idx {
			if row[j].Value == nil {
				continue rows
			}
		}
		kept = append(kept, row)
	}
	return kept, nil
}
