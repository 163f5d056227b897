// Package kv stores prepared datasets in a BadgerDB key-value store, one key
// per row, so large runs can be read back incrementally.
//
// Key layout for a run R:
//
//	run:R:meta               model.Meta
//	run:R:vocabulary         map[string]int
//	run:R:embedding          model.Matrix
//	run:R:train:%010d        Row
//	run:R:test:%010d         Row
//	latest                   R
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/crimson-sun/genreprep/internal/model"
)

// Split names accepted by Rows.
const (
	Train = "train"
	Test  = "test"
)

var latestKey = []byte("latest")

// ErrNotFound is returned when a run or key is absent.
var ErrNotFound = errors.New("kv: not found")

// Row is one document of a split.
type Row struct {
	LabelCode  *int      `json:"label_code,omitempty"`
	LabelSet   []int     `json:"label_set,omitempty"`
	Sequence   []int     `json:"sequence"`
	Prevalence []float64 `json:"prevalence"`
}

// Sink writes datasets to a badger database.
type Sink struct {
	db     *badger.DB
	log    *slog.Logger
	ownsDB bool
}

// Open opens (or creates) a database directory and returns a Sink that
// closes it on Close.
func Open(dir string, log *slog.Logger) (*Sink, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLoggingLevel(badger.ERROR))
	if err != nil {
		return nil, fmt.Errorf("kv sink: open %s: %w", dir, err)
	}
	s := New(db, log)
	s.ownsDB = true
	return s, nil
}

// New wraps an already open database. Close leaves it open.
func New(db *badger.DB, log *slog.Logger) *Sink {
	if log == nil {
		log = slog.Default()
	}
	return &Sink{db: db, log: log}
}

func runKey(runID, suffix string) []byte {
	return []byte("run:" + runID + ":" + suffix)
}

func rowKey(runID, split string, i int) []byte {
	return []byte(fmt.Sprintf("run:%s:%s:%010d", runID, split, i))
}

// Write stores every part of ds under its run ID and marks it as latest.
func (s *Sink) Write(ctx context.Context, ds *model.Dataset) error {
	if ds.Meta.RunID == "" {
		return fmt.Errorf("kv sink: dataset has no run id")
	}
	id := ds.Meta.RunID

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	set := func(key []byte, v any) error {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("kv sink: marshal %s: %w", key, err)
		}
		return wb.Set(key, data)
	}

	if err := set(runKey(id, "meta"), ds.Meta); err != nil {
		return err
	}
	if err := set(runKey(id, "vocabulary"), ds.Vocabulary); err != nil {
		return err
	}
	if ds.Embedding != nil {
		if err := set(runKey(id, "embedding"), ds.Embedding); err != nil {
			return err
		}
	}
	for _, part := range []struct {
		name  string
		split model.Split
	}{{Train, ds.Train}, {Test, ds.Test}} {
		for i := range part.split.Len() {
			if i%1024 == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			if err := set(rowKey(id, part.name, i), rowAt(part.split, i)); err != nil {
				return err
			}
		}
	}
	if err := wb.Set(latestKey, []byte(id)); err != nil {
		return fmt.Errorf("kv sink: %w", err)
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("kv sink: flush: %w", err)
	}
	s.log.Debug("dataset stored", "run_id", id, "train", ds.Train.Len(), "test", ds.Test.Len())
	return nil
}

func rowAt(s model.Split, i int) Row {
	r := Row{Sequence: s.Sequences[i], Prevalence: s.Prevalence[i]}
	if s.LabelCodes != nil {
		code := s.LabelCodes[i]
		r.LabelCode = &code
	}
	if s.LabelSets != nil {
		r.LabelSet = s.LabelSets[i]
	}
	return r
}

// Close closes the database when the Sink opened it.
func (s *Sink) Close() error {
	if !s.ownsDB {
		return nil
	}
	return s.db.Close()
}

// Latest returns the run ID of the most recent Write.
func (s *Sink) Latest() (string, error) {
	var id string
	err := s.db.View(func(txn *badger.Txn) error {
		v, err := get(txn, latestKey)
		id = string(v)
		return err
	})
	return id, err
}

// Meta reads the metadata of a run.
func (s *Sink) Meta(runID string) (model.Meta, error) {
	var m model.Meta
	err := s.readJSON(runKey(runID, "meta"), &m)
	return m, err
}

// Vocabulary reads the token mapping of a run.
func (s *Sink) Vocabulary(runID string) (map[string]int, error) {
	var v map[string]int
	err := s.readJSON(runKey(runID, "vocabulary"), &v)
	return v, err
}

// Embedding reads the embedding matrix of a run.
func (s *Sink) Embedding(runID string) (*model.Matrix, error) {
	var m model.Matrix
	if err := s.readJSON(runKey(runID, "embedding"), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Rows reads every row of one split in order.
func (s *Sink) Rows(runID, split string) ([]Row, error) {
	if split != Train && split != Test {
		return nil, fmt.Errorf("kv sink: unknown split %q", split)
	}
	prefix := runKey(runID, split+":")
	var rows []Row
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(v []byte) error {
				var r Row
				if err := json.Unmarshal(v, &r); err != nil {
					return fmt.Errorf("kv sink: decode row: %w", err)
				}
				rows = append(rows, r)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return rows, err
}

func (s *Sink) readJSON(key []byte, dst any) error {
	return s.db.View(func(txn *badger.Txn) error {
		v, err := get(txn, key)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(v, dst); err != nil {
			return fmt.Errorf("kv sink: decode %s: %w", key, err)
		}
		return nil
	})
}

func get(txn *badger.Txn, key []byte) ([]byte, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, err
	}
	return item.ValueCopy(nil)
}
