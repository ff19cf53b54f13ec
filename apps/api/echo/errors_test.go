package echoapi_test

import (
	"context"
	"io/fs"
	"net/http"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/recordsync/apps/api/echo"
	"github.com/trezcool/recordsync/core"
	"github.com/trezcool/recordsync/core/attendance"
	"github.com/trezcool/recordsync/tests"
)

// readOnlyRecords loads normally but refuses every write.
type readOnlyRecords struct {
	attendance.Repository
	err error
}

func (r readOnlyRecords) SaveAll(context.Context, []attendance.Record) error { return r.err }

func (r readOnlyRecords) Clear(context.Context) (int, error) { return 0, r.err }

func setupReadOnly(t *testing.T, saveErr error) *echoapi.Server {
	stack := testutil.NewStack(t)
	records := readOnlyRecords{Repository: stack.Records, err: saveErr}
	return echoapi.NewServer(echoapi.ServerDeps{
		Conf: &core.Config{
			TestMode: true,
			Server:   core.ServerConfig{DisableReqLogs: true},
		},
		Logger:        stack.Logger,
		AttendanceSvc: attendance.NewService(records, stack.Settings, stack.Validate, stack.Logger),
		SettingsSvc:   stack.SettingsSvc,
		Validate:      stack.Validate,
		Translator:    stack.Translator,
	})
}

func TestErrorHandler_StoreUnavailable(t *testing.T) {
	tests := []struct {
		name         string
		saveErr      error
		wantShutdown bool
	}{
		{name: "permission denied", saveErr: errors.Wrap(fs.ErrPermission, "writing Students_Data.csv"), wantShutdown: true},
		{name: "other write error", saveErr: errors.New("disk full"), wantShutdown: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := setupReadOnly(t, tt.saveErr)
			runHTTPTests(t, server, []httpTest{
				{
					name: "scan", method: http.MethodPost, path: "/v1/attendance/scans",
					body: []byte(`{"line": "Ana Cruz, 1, Present"}`), wantCode: http.StatusInternalServerError,
					wantData: []byte(`{"error": "Internal Server Error"}`),
				},
			})

			select {
			case <-server.ShutdownSignal():
				if !tt.wantShutdown {
					t.Error("shutdown signaled for a recoverable write error")
				}
			case <-time.After(100 * time.Millisecond):
				if tt.wantShutdown {
					t.Error("no shutdown signaled when the record store refused writes")
				}
			}
		})
	}
}

func TestErrorHandler_Logout_StoreUnavailable(t *testing.T) {
	server := setupReadOnly(t, errors.Wrap(fs.ErrPermission, "writing Students_Data.csv"))
	runHTTPTests(t, server, []httpTest{
		{name: "logout", method: http.MethodPost, path: "/v1/attendance/logout", wantCode: http.StatusInternalServerError},
	})
	select {
	case <-server.ShutdownSignal():
	case <-time.After(100 * time.Millisecond):
		t.Error("no shutdown signaled")
	}
}
