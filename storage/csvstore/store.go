// Package csvstore keeps attendance records in a CSV file with a fixed header.
//
// Every save rewrites the whole file through a temporary file and a rename, so a
// crash never leaves a half-written table behind. There is no cross-process lock:
// two processes saving the same file can lose each other's updates.
package csvstore

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/natefinch/atomic"
	"github.com/pkg/errors"

	"github.com/trezcool/recordsync/core"
	"github.com/trezcool/recordsync/core/attendance"
)

// Header is the column schema, in file order.
var Header = []string{"ID", "Name", "Status", "ClassesAttended", "TimeIn", "TimeOut", "Img_Path"}

const bom = "\ufeff"

type Store struct {
	mu     sync.Mutex
	path   string
	logger core.Logger
}

var _ attendance.Repository = (*Store)(nil)

func New(path string, logger core.Logger) *Store {
	return &Store{path: path, logger: logger}
}

func (s *Store) Path() string { return s.path }

// Init writes an empty table if the file is missing or empty.
func (s *Store) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fi, err := os.Stat(s.path)
	if err == nil && fi.Size() > 0 {
		return nil
	}
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "stat %s", s.path)
	}
	return s.save(nil)
}

func (s *Store) LoadAll(_ context.Context) []attendance.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) SaveAll(_ context.Context, records []attendance.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(records)
}

func (s *Store) Clear(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.load())
	if err := s.save(nil); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *Store) load() []attendance.Record {
	f, err := os.Open(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Error("reading attendance file", errors.Wrapf(err, "opening %s", s.path))
		}
		return make([]attendance.Record, 0)
	}
	defer func() { _ = f.Close() }()

	records, err := Decode(f, s.logger)
	if err != nil {
		s.logger.Error("reading attendance file", errors.Wrapf(err, "decoding %s", s.path))
		return make([]attendance.Record, 0)
	}
	return records
}

func (s *Store) save(records []attendance.Record) error {
	var buf bytes.Buffer
	if err := Encode(&buf, records); err != nil {
		return errors.Wrap(err, "encoding records")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.Wrapf(err, "creating %s", filepath.Dir(s.path))
	}
	if err := atomic.WriteFile(s.path, &buf); err != nil {
		return errors.Wrapf(err, "writing %s", s.path)
	}
	return nil
}

// Encode writes the header followed by one row per record.
func Encode(w io.Writer, records []attendance.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			rec.ID,
			rec.Name,
			string(rec.Status),
			strconv.Itoa(rec.ClassesAttended),
			rec.TimeIn,
			rec.TimeOut,
			rec.ImgPath,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Decode reads records by header name: columns may come in any order, missing
// ones read as empty. A malformed ClassesAttended reads as 0 and is logged.
func Decode(r io.Reader, logger core.Logger) ([]attendance.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records := make([]attendance.Record, 0)
	header, err := cr.Read()
	if err == io.EOF {
		return records, nil
	}
	if err != nil {
		return nil, err
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, bom)
		}
		cols[strings.TrimSpace(name)] = i
	}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		get := func(col string) string {
			if i, ok := cols[col]; ok && i < len(row) {
				return row[i]
			}
			return ""
		}

		rec := attendance.Record{
			ID:      get("ID"),
			Name:    get("Name"),
			Status:  attendance.Status(get("Status")),
			TimeIn:  get("TimeIn"),
			TimeOut: get("TimeOut"),
			ImgPath: get("Img_Path"),
		}
		if ca := strings.TrimSpace(get("ClassesAttended")); ca != "" {
			n, err := strconv.Atoi(ca)
			if err != nil {
				logger.Warn("invalid ClassesAttended, using 0", map[string]interface{}{"id": rec.ID, "value": ca})
				n = 0
			}
			rec.ClassesAttended = n
		}
		records = append(records, rec)
	}
	return records, nil
}
