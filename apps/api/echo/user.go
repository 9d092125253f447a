package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type userApi struct {
	auth *authenticator
}

func registerUserAPI(g *echo.Group, authed []echo.MiddlewareFunc, auth *authenticator) {
	api := userApi{auth: auth}

	ug := g.Group("/users", authed...)
	ug.POST("/token-refresh", api.refreshToken)
	ug.GET("/me", api.me)
}

// Handlers

func (api *userApi) refreshToken(ctx echo.Context) error {
	token, err := api.auth.refreshToken(ctx)
	if err != nil {
		return errors.Wrap(err, "refreshing token")
	}
	return ctx.JSON(http.StatusOK, TokenResponse{Token: token})
}

func (api *userApi) me(ctx echo.Context) error {
	usr, err := api.auth.contextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	return ctx.JSON(http.StatusOK, usr)
}

type TokenResponse struct {
	Token string `json:"token"`
}
