package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/campusflow/campusflow/core/quiz"
)

type quizApi struct {
	auth *authenticator
	svc  *quiz.Service
}

func registerQuizAPI(g *echo.Group, authed []echo.MiddlewareFunc, auth *authenticator, svc *quiz.Service) {
	api := quizApi{auth: auth, svc: svc}

	qg := g.Group("/quiz", authed...)
	qg.GET("", api.questions)
	qg.POST("", api.submit)
}

func (api *quizApi) questions(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Questions())
}

func (api *quizApi) submit(ctx echo.Context) error {
	usr, err := api.auth.contextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	var data quiz.Answers
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to quiz.Answers")
	}

	res, err := api.svc.Submit(ctx.Request().Context(), usr, data)
	if err != nil {
		return errors.Wrap(err, "submitting quiz")
	}
	return ctx.JSON(http.StatusOK, res)
}
