package echoapi

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/campusflow/campusflow/core"
	"github.com/campusflow/campusflow/core/attendance"
)

type attendanceApi struct {
	auth     *authenticator
	svc      *attendance.Service
	validate *validator.Validate
}

func registerAttendanceAPI(
	g *echo.Group,
	authed []echo.MiddlewareFunc,
	auth *authenticator,
	svc *attendance.Service,
	validate *validator.Validate,
) {
	api := attendanceApi{auth: auth, svc: svc, validate: validate}

	cg := g.Group("/courses", authed...)
	cg.GET("", api.query)
	cg.POST("", api.create)
	cg.DELETE("/:id", api.destroy)
	cg.POST("/:id/attendance", api.toggleAttendance)
}

func (api *attendanceApi) query(ctx echo.Context) error {
	usr, err := api.auth.contextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	courses, err := api.svc.List(ctx.Request().Context(), usr.ID)
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}

	details := make([]attendance.CourseDetail, 0, len(courses))
	for _, c := range courses {
		details = append(details, c.Detail())
	}
	return ctx.JSON(http.StatusOK, details)
}

func (api *attendanceApi) create(ctx echo.Context) error {
	usr, err := api.auth.contextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	var data attendance.NewCourse
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	course, err := api.svc.Create(ctx.Request().Context(), usr.ID, data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, course.Detail())
}

func (api *attendanceApi) destroy(ctx echo.Context) error {
	usr, err := api.auth.contextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	if err = api.svc.Delete(ctx.Request().Context(), usr.ID, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *attendanceApi) toggleAttendance(ctx echo.Context) error {
	usr, err := api.auth.contextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	var data attendance.ToggleAttendance
	if ctx.Request().ContentLength != 0 {
		if err = ctx.Bind(&data); err != nil {
			return errors.Wrap(err, "binding to ToggleAttendance")
		}
	}
	if err = api.validate.Struct(data); err != nil {
		return err
	}

	date := api.svc.Today()
	if data.Date != "" {
		// validated above
		date, _ = time.Parse(core.DateLayout, data.Date)
	}

	course, err := api.svc.ToggleAttendance(ctx.Request().Context(), usr.ID, ctx.Param("id"), date)
	if err != nil {
		return errors.Wrap(err, "toggling attendance")
	}
	return ctx.JSON(http.StatusOK, course.Detail())
}
