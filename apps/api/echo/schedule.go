package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/campusflow/campusflow/core/schedule"
)

type scheduleApi struct {
	auth *authenticator
	svc  *schedule.Service
}

func registerScheduleAPI(g *echo.Group, authed []echo.MiddlewareFunc, auth *authenticator, svc *schedule.Service) {
	api := scheduleApi{auth: auth, svc: svc}
	g.GET("/schedule", api.retrieve, authed...)
}

func (api *scheduleApi) retrieve(ctx echo.Context) error {
	usr, err := api.auth.contextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	sched, err := api.svc.Get(ctx.Request().Context(), usr.ID)
	if err != nil {
		return errors.Wrap(err, "loading schedule")
	}
	return ctx.JSON(http.StatusOK, sched)
}
