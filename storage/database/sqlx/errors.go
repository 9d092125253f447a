package sqlxrepos

import (
	"database/sql"
	"database/sql/driver"

	"github.com/pkg/errors"

	"github.com/campusflow/campusflow/core"
)

// wrapErr annotates a query error with msg.
// A lost connection becomes a shutdown error so the API stops serving from a dead pool.
func wrapErr(err error, msg string) error {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return core.NewShutdownError(msg + ": " + err.Error())
	}
	return errors.Wrap(err, msg)
}
