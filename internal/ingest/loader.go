package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

// Store is the part of the database client the loader writes through.
type Store interface {
	DeleteAll(ctx context.Context, collection string) (int64, error)
	BulkInsert(ctx context.Context, collection string, docs []bson.D) (int64, error)
	EnsureIndexes(ctx context.Context, collection string, keySets [][]string) error
}

type Report struct {
	RunID      string        `json:"run_id"`
	Dataset    string        `json:"dataset"`
	Collection string        `json:"collection"`
	Read       int           `json:"read"`
	Cleaned    int           `json:"cleaned"`
	Deleted    int64         `json:"deleted"`
	Inserted   int64         `json:"inserted"`
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration_ns"`
}

type Loader struct {
	Store Store
	Out   io.Writer          // human progress report
	Log   logrus.FieldLogger // nil discards
	HTTP  *http.Client       // for remote sources; nil uses http.DefaultClient
	RunID string             // assigned on first use when empty
}

func NewLoader(store Store, out io.Writer, log logrus.FieldLogger) *Loader {
	return &Loader{Store: store, Out: out, Log: log}
}

// LoadDataset replaces the contents of d.Collection with the rows of d.Path
// that have every required field. The collection is not touched when the file
// cannot be read or lacks a required column.
func (l *Loader) LoadDataset(ctx context.Context, d Dataset) (Report, error) {
	rep := Report{RunID: l.runID(), Dataset: d.Name, Collection: d.Collection, StartedAt: time.Now()}
	log := l.logger().WithFields(logrus.Fields{"run_id": rep.RunID, "dataset": d.Name, "collection": d.Collection})

	l.printf("\n--- Loading %s ---\n", d.Name)

	path, cleanup, err := l.resolve(ctx, d.Path)
	if err != nil {
		return rep, fmt.Errorf("fetch %s: %w", d.Path, err)
	}
	defer cleanup()

	t, err := ReadCSVFile(path)
	if err != nil {
		return rep, fmt.Errorf("read %s: %w", d.Path, err)
	}
	rep.Read = len(t.Rows)
	l.printf("Records read: %d\n", rep.Read)

	docs, err := DropMissing(t, d.Required)
	if err != nil {
		return rep, fmt.Errorf("clean %s: %w", d.Name, err)
	}
	rep.Cleaned = len(docs)
	l.printf("Records after cleanup: %d\n", rep.Cleaned)

	rep.Deleted, err = l.Store.DeleteAll(ctx, d.Collection)
	if err != nil {
		return rep, fmt.Errorf("clear %s: %w", d.Collection, err)
	}

	if len(docs) > 0 {
		rep.Inserted, err = l.Store.BulkInsert(ctx, d.Collection, docs)
		if err != nil {
			return rep, fmt.Errorf("insert into %s: %w", d.Collection, err)
		}
	}
	l.printf("%s inserted: %d\n", capitalize(d.Name), rep.Inserted)

	if err := l.Store.EnsureIndexes(ctx, d.Collection, d.Indexes); err != nil {
		return rep, fmt.Errorf("index %s: %w", d.Collection, err)
	}

	rep.Duration = time.Since(rep.StartedAt)
	log.WithFields(logrus.Fields{
		"read":     rep.Read,
		"cleaned":  rep.Cleaned,
		"deleted":  rep.Deleted,
		"inserted": rep.Inserted,
		"took":     rep.Duration.String(),
	}).Info("dataset loaded")
	return rep, nil
}

// LoadAll loads datasets in order and stops at the first failure. Reports for
// the datasets loaded before it are still returned.
func (l *Loader) LoadAll(ctx context.Context, datasets []Dataset) ([]Report, error) {
	reports := make([]Report, 0, len(datasets))
	for _, d := range datasets {
		rep, err := l.LoadDataset(ctx, d)
		if err != nil {
			return reports, err
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

func (l *Loader) resolve(ctx context.Context, path string) (string, func(), error) {
	if !isRemote(path) {
		return path, func() {}, nil
	}
	client := l.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	tmp, err := downloadToTemp(ctx, client, path)
	if err != nil {
		return "", func() {}, err
	}
	return tmp, func() { os.Remove(tmp) }, nil
}

func (l *Loader) runID() string {
	if l.RunID == "" {
		l.RunID = uuid.NewString()
	}
	return l.RunID
}

func (l *Loader) logger() logrus.FieldLogger {
	if l.Log == nil {
		lg := logrus.New()
		lg.SetOutput(io.Discard)
		l.Log = lg
	}
	return l.Log
}

func capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

func (l *Loader) printf(format string, args ...any) {
	if l.Out != nil {
		fmt.Fprintf(l.Out, format, args...)
	}
}
