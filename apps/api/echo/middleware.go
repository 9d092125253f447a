package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// activeUserMiddleware loads the token's user and rejects deactivated accounts.
func activeUserMiddleware(a *authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			usr, err := a.contextUser(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context user")
			}
			if !usr.IsActive {
				return errAccountDeactivated
			}
			return next(ctx)
		}
	}
}
