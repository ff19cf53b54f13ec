package inmemdb

import (
	"sync"

	"github.com/trezcool/recordsync/core/attendance"
	"github.com/trezcool/recordsync/core/settings"
)

type (
	// DB keeps records and settings in process memory. For tests and dry runs.
	DB struct {
		record   *recordTable
		settings *settingsTable
	}

	recordTable struct {
		sync.RWMutex
		rows []attendance.Record
	}

	settingsTable struct {
		sync.RWMutex
		row settings.Settings
	}
)

func Open() (*DB, error) {
	db := &DB{
		record:   &recordTable{rows: make([]attendance.Record, 0)},
		settings: &settingsTable{},
	}
	return db, nil
}
