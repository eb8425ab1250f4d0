package ingest

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nadissa1508/CC3089-LAB-4/internal/config"
)

// Target is a Store that can also describe the database it writes to.
type Target interface {
	Store
	DatabaseName() string
	CollectionNames(ctx context.Context) ([]string, error)
}

// RunAll loads every configured dataset into db and prints the closing summary.
func RunAll(ctx context.Context, cfg config.Config, db Target, out io.Writer, log logrus.FieldLogger) ([]Report, error) {
	datasets, err := DatasetsFor(cfg)
	if err != nil {
		return nil, err
	}
	return Run(ctx, datasets, db, out, log)
}

func Run(ctx context.Context, datasets []Dataset, db Target, out io.Writer, log logrus.FieldLogger) ([]Report, error) {
	l := &Loader{Store: db, Out: out, Log: log, RunID: uuid.NewString()}
	reports, err := l.LoadAll(ctx, datasets)
	if err != nil {
		return reports, err
	}

	names, err := db.CollectionNames(ctx)
	if err != nil {
		return reports, fmt.Errorf("list collections: %w", err)
	}
	if out != nil {
		fmt.Fprintln(out, "\nProcess completed successfully")
		fmt.Fprintf(out, "Database: %s\n", db.DatabaseName())
		fmt.Fprintf(out, "Collections: %s\n", strings.Join(names, ", "))
	}
	return reports, nil
}
