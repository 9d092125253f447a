package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/campusflow/campusflow/core"
	"github.com/campusflow/campusflow/core/assistant"
)

type assistantApi struct {
	auth   *authenticator
	svc    *assistant.Service
	logger core.Logger
}

func registerAssistantAPI(
	g *echo.Group,
	authed []echo.MiddlewareFunc,
	auth *authenticator,
	svc *assistant.Service,
	logger core.Logger,
) {
	api := assistantApi{auth: auth, svc: svc, logger: logger}

	ag := g.Group("/assistant", authed...)
	ag.POST("", api.handle)
	ag.POST("/confirm", api.confirm)
}

func (api *assistantApi) handle(ctx echo.Context) error {
	usr, err := api.auth.contextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	var data assistant.Request
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to assistant.Request")
	}

	reply, err := api.svc.Handle(ctx.Request().Context(), usr.ID, data)
	if err != nil {
		return errors.Wrap(err, "handling message")
	}
	if reply.Type == assistant.ReplyConfirmation {
		api.logger.Info("schedule change awaiting confirmation", map[string]interface{}{
			"conflicts": len(reply.Conflicts),
		}, usr)
	}
	return ctx.JSON(http.StatusOK, reply)
}

func (api *assistantApi) confirm(ctx echo.Context) error {
	usr, err := api.auth.contextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	var data assistant.Confirmation
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to assistant.Confirmation")
	}

	reply, err := api.svc.Confirm(ctx.Request().Context(), usr.ID, data)
	if err != nil {
		return errors.Wrap(err, "confirming schedule")
	}
	return ctx.JSON(http.StatusOK, reply)
}
