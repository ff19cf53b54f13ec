package postgresdb

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/recordsync/core"
	"github.com/trezcool/recordsync/core/attendance"
)

type recordRow struct {
	Seq             int    `db:"seq"`
	ID              string `db:"id"`
	Name            string `db:"name"`
	Status          string `db:"status"`
	ClassesAttended int    `db:"classes_attended"`
	TimeIn          string `db:"time_in"`
	TimeOut         string `db:"time_out"`
	ImgPath         string `db:"img_path"`
}

func (r recordRow) record() attendance.Record {
	return attendance.Record{
		ID:              r.ID,
		Name:            r.Name,
		Status:          attendance.Status(r.Status),
		ClassesAttended: r.ClassesAttended,
		TimeIn:          r.TimeIn,
		TimeOut:         r.TimeOut,
		ImgPath:         r.ImgPath,
	}
}

func newRecordRow(seq int, rec attendance.Record) recordRow {
	return recordRow{
		Seq:             seq,
		ID:              rec.ID,
		Name:            rec.Name,
		Status:          string(rec.Status),
		ClassesAttended: rec.ClassesAttended,
		TimeIn:          rec.TimeIn,
		TimeOut:         rec.TimeOut,
		ImgPath:         rec.ImgPath,
	}
}

type recordRepository struct {
	db     *sqlx.DB
	logger core.Logger
}

var _ attendance.Repository = (*recordRepository)(nil)

// NewRecordRepository stores records in the attendance_record table; `seq` keeps store order.
func NewRecordRepository(db *sqlx.DB, logger core.Logger) attendance.Repository {
	return &recordRepository{db: db, logger: logger}
}

func (repo *recordRepository) LoadAll(ctx context.Context) []attendance.Record {
	rows := make([]recordRow, 0)
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM attendance_record ORDER BY seq`); err != nil {
		repo.logger.Error("reading attendance records", errors.Wrap(err, "selecting attendance_record"))
		return make([]attendance.Record, 0)
	}

	records := make([]attendance.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.record())
	}
	return records
}

// SaveAll replaces the table content in one transaction.
func (repo *recordRepository) SaveAll(ctx context.Context, records []attendance.Record) (err error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM attendance_record`); err != nil {
		return errors.Wrap(err, "deleting attendance records")
	}
	if len(records) > 0 {
		rows := make([]recordRow, 0, len(records))
		for i, rec := range records {
			rows = append(rows, newRecordRow(i+1, rec))
		}
		q := `INSERT INTO attendance_record (seq, id, name, status, classes_attended, time_in, time_out, img_path)
			VALUES (:seq, :id, :name, :status, :classes_attended, :time_in, :time_out, :img_path)`
		if _, err = tx.NamedExecContext(ctx, q, rows); err != nil {
			return errors.Wrap(err, "inserting attendance records")
		}
	}
	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "committing attendance records")
	}
	return nil
}

func (repo *recordRepository) Clear(ctx context.Context) (int, error) {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM attendance_record`)
	if err != nil {
		return 0, errors.Wrap(err, "deleting attendance records")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "counting deleted records")
	}
	return int(n), nil
}
