package echoapi

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/recordsync/core"
	"github.com/trezcool/recordsync/core/attendance"
	"github.com/trezcool/recordsync/services/report"
	"github.com/trezcool/recordsync/services/rfid"
	"github.com/trezcool/recordsync/storage/csvstore"
)

const suggestionCount = 3

type (
	// ScanRequest is either a raw reader line or an already split scan event.
	ScanRequest struct {
		Line   string `json:"line"`
		ID     string `json:"id"`
		Name   string `json:"name"`
		Status string `json:"status"`
	}

	RecomputeRequest struct {
		ClassStart string `json:"class_start" validate:"omitempty,clocktime"`
		ClassEnd   string `json:"class_end" validate:"omitempty,clocktime"`
	}

	LookupResponse struct {
		Error       string   `json:"error"`
		Suggestions []string `json:"suggestions"`
	}

	LogoutResponse struct {
		Status         string   `json:"status"`
		RecordsDeleted int      `json:"records_deleted"`
		Errors         []string `json:"errors"`
	}
)

func (sr ScanRequest) event() (attendance.ScanEvent, error) {
	if core.CleanString(sr.Line) == "" {
		return attendance.ScanEvent{ID: sr.ID, Name: sr.Name, Status: sr.Status}, nil
	}
	ev, err := rfid.ParseLine(sr.Line)
	if err != nil {
		return ev, core.NewValidationError(nil, core.FieldError{Field: "line", Error: err.Error()})
	}
	return ev, nil
}

type attendanceApi struct {
	svc      attendance.Service
	validate *validator.Validate
}

func registerAttendanceAPI(g *echo.Group, svc attendance.Service, validate *validator.Validate) {
	api := attendanceApi{svc: svc, validate: validate}

	ag := g.Group("/attendance")
	ag.GET("", api.query)
	ag.GET("/lookup", api.lookup)
	ag.GET("/export", api.export)
	ag.POST("/scans", api.scan)
	ag.POST("/recompute", api.recompute)
	ag.POST("/logout", api.logout)
}

// Handlers

func (api *attendanceApi) query(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.QueryAll(ctx.Request().Context()))
}

func (api *attendanceApi) lookup(ctx echo.Context) error {
	name := core.CleanString(ctx.QueryParam("name"))
	if name == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "name", Error: "this field is required"})
	}

	rec, err := api.svc.GetByName(ctx.Request().Context(), name)
	if err == attendance.ErrNotFound {
		return ctx.JSON(http.StatusNotFound, LookupResponse{
			Error:       err.Error(),
			Suggestions: api.svc.SuggestNames(ctx.Request().Context(), name, suggestionCount),
		})
	}
	if err != nil {
		return errors.Wrap(err, "looking up record")
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *attendanceApi) scan(ctx echo.Context) error {
	var data ScanRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ScanRequest")
	}
	ev, err := data.event()
	if err != nil {
		return err
	}

	rec, err := api.svc.UpsertScan(ctx.Request().Context(), ev)
	if err != nil {
		return storeError(err, "recording scan")
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *attendanceApi) recompute(ctx echo.Context) error {
	var data RecomputeRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to RecomputeRequest")
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}

	res, err := api.svc.RecomputeFromSettings(ctx.Request().Context(), data.ClassStart, data.ClassEnd)
	if err != nil {
		return storeError(err, "recomputing statuses")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *attendanceApi) logout(ctx echo.Context) error {
	n, err := api.svc.Clear(ctx.Request().Context())
	if err != nil {
		return storeError(err, "clearing records")
	}
	return ctx.JSON(http.StatusOK, LogoutResponse{Status: "success", RecordsDeleted: n, Errors: []string{}})
}

func (api *attendanceApi) export(ctx echo.Context) error {
	records := api.svc.QueryAll(ctx.Request().Context())

	var buf bytes.Buffer
	var contentType, filename string
	switch format := ctx.QueryParam("format"); format {
	case "", "xlsx":
		if err := report.WriteXLSX(&buf, records); err != nil {
			return errors.Wrap(err, "exporting xlsx")
		}
		contentType, filename = report.ContentType, "attendance.xlsx"
	case "csv":
		if err := csvstore.Encode(&buf, records); err != nil {
			return errors.Wrap(err, "exporting csv")
		}
		contentType, filename = "text/csv", "attendance.csv"
	default:
		return core.NewValidationError(nil, core.FieldError{Field: "format", Error: fmt.Sprintf("unsupported format %q", format)})
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return ctx.Blob(http.StatusOK, contentType, buf.Bytes())
}
