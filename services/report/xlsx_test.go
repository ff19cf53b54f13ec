package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/recordsync/core/attendance"
)

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	records := []attendance.Record{
		{ID: "00-001", Name: "Ana Cruz", Status: attendance.StatusPresent, ClassesAttended: 3, TimeIn: "7:58 AM", TimeOut: "3:05 PM"},
		{ID: "00-002", Name: "Ben Reyes", Status: attendance.StatusLate, TimeIn: "8:20 AM"},
	}
	require.NoError(t, WriteXLSX(&buf, records))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Name", "Status", "Classes Attended", "Time In", "Time Out"}, rows[0])
	assert.Equal(t, []string{"00-001", "Ana Cruz", "Present", "3", "7:58 AM", "3:05 PM"}, rows[1])
	assert.Equal(t, []string{"00-002", "Ben Reyes", "Late", "0", "8:20 AM"}, rows[2])
}

func TestWriteXLSX_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
