// Package report exports attendance records as spreadsheets.
package report

import (
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/recordsync/core/attendance"
)

const (
	SheetName   = "Attendance"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var header = []interface{}{"ID", "Name", "Status", "Classes Attended", "Time In", "Time Out"}

// WriteXLSX writes `records` as a single-sheet workbook, header first, in store order.
func WriteXLSX(w io.Writer, records []attendance.Record) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return errors.Wrap(err, "naming sheet")
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return errors.Wrap(err, "writing header")
	}
	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{rec.ID, rec.Name, string(rec.Status), rec.ClassesAttended, rec.TimeIn, rec.TimeOut}
		if err = f.SetSheetRow(SheetName, cell, &row); err != nil {
			return errors.Wrapf(err, "writing record %s", rec.ID)
		}
	}
	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return errors.Wrap(err, "freezing header")
	}

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "writing workbook")
	}
	return nil
}
