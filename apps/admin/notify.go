package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

// notifyAttendance emails every user with enough courses at risk.
func (cli *commandLine) notifyAttendance() error {
	ctx := context.Background()

	users, err := cli.usrSvc.QueryAll(ctx)
	if err != nil {
		return errors.Wrap(err, "querying users")
	}
	msgs, err := cli.attendanceSvc.WarningMessages(ctx, users, cli.conf.Attendance.WarningThreshold)
	if err != nil {
		return errors.Wrap(err, "preparing warnings")
	}
	if err = cli.mailSvc.SendMessages(ctx, msgs...); err != nil {
		return errors.Wrap(err, "sending warnings")
	}
	_, _ = fmt.Fprintf(cli.stdout(), "%d warning(s) sent\n", len(msgs))
	return nil
}
