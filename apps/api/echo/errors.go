package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/campusflow/campusflow/core"
	"github.com/campusflow/campusflow/core/assistant"
	"github.com/campusflow/campusflow/core/attendance"
	"github.com/campusflow/campusflow/core/schedule"
	"github.com/campusflow/campusflow/core/user"
)

var (
	errUnauthorized       = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errAccountDeactivated = echo.NewHTTPError(http.StatusForbidden, "account deactivated")
	errRefreshExpired     = echo.NewHTTPError(http.StatusForbidden, "refresh has expired")
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(
	logger core.Logger,
	translator ut.Translator,
	signalShutdown func(),
) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		code, message := classify(err, translator)

		if code >= http.StatusInternalServerError {
			msg := http.StatusText(code)
			usr, _ := ctx.Get(contextUserKey).(user.User)
			if code == http.StatusInternalServerError {
				logger.Error(msg, errors.Wrap(err, msg), usr)
			} else {
				logger.Warn(msg, err, usr)
			}

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if ctx.Echo().Debug {
			message = err.Error()
		}
		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

// classify maps err to an HTTP status and a response message.
func classify(err error, translator ut.Translator) (int, interface{}) {
	switch origErr := errors.Cause(err).(type) {
	case *echo.HTTPError:
		if origErr == middleware.ErrJWTMissing {
			return http.StatusUnauthorized, origErr.Message
		}
		if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
			origErr = herr
		}
		return origErr.Code, origErr.Message
	case validator.ValidationErrors:
		fldErrs := make(map[string]string, len(origErr))
		for _, vErr := range origErr {
			fldErrs[vErr.Field()] = vErr.Translate(translator)
		}
		return http.StatusBadRequest, fldErrs
	case *core.ValidationError:
		if len(origErr.Fields) > 0 {
			fldErrs := make(map[string]string, len(origErr.Fields))
			for _, fErr := range origErr.Fields {
				fldErrs[fErr.Field] = fErr.Error
			}
			return http.StatusBadRequest, fldErrs
		}
		return http.StatusBadRequest, origErr.Error()
	case *schedule.MalformedTimeError, *schedule.InvalidIntervalError, *schedule.InvalidPriorityError:
		return http.StatusUnprocessableEntity, origErr.Error()
	}

	switch cause := errors.Cause(err); cause {
	case assistant.ErrUpstreamParse:
		return http.StatusBadGateway, cause.Error()
	case assistant.ErrUpstreamUnavailable:
		return http.StatusServiceUnavailable, cause.Error()
	case user.ErrNotFound, schedule.ErrNotFound, attendance.ErrNotFound:
		return http.StatusNotFound, cause.Error()
	}

	// any other error is a server error
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}
