package inmemdb

import (
	"context"

	"github.com/trezcool/recordsync/core/attendance"
)

type recordRepository struct {
	db *recordTable
}

var _ attendance.Repository = (*recordRepository)(nil)

func NewRecordRepository(db *DB) attendance.Repository {
	return &recordRepository{db: db.record}
}

func (repo *recordRepository) LoadAll(_ context.Context) []attendance.Record {
	repo.db.RLock()
	defer repo.db.RUnlock()

	records := make([]attendance.Record, len(repo.db.rows))
	copy(records, repo.db.rows)
	return records
}

func (repo *recordRepository) SaveAll(_ context.Context, records []attendance.Record) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	rows := make([]attendance.Record, len(records))
	copy(rows, records)
	repo.db.rows = rows
	return nil
}

func (repo *recordRepository) Clear(_ context.Context) (int, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	n := len(repo.db.rows)
	repo.db.rows = make([]attendance.Record, 0)
	return n, nil
}
