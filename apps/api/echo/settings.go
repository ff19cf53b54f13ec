package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/recordsync/core/settings"
)

type settingsApi struct {
	svc settings.Service
}

func registerSettingsAPI(g *echo.Group, svc settings.Service) {
	api := settingsApi{svc: svc}

	sg := g.Group("/settings")
	sg.GET("", api.retrieve)
	sg.PUT("", api.update)
}

func (api *settingsApi) retrieve(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Get(ctx.Request().Context()))
}

// update only persists the fields it is given; recomputing is left to the settings watcher or /attendance/recompute.
func (api *settingsApi) update(ctx echo.Context) error {
	var data settings.Settings
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Settings")
	}
	s, err := api.svc.Update(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, s)
}
