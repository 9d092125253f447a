package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	echoapi "github.com/campusflow/campusflow/apps/api/echo"
	"github.com/campusflow/campusflow/core/user"
)

// addUser creates a user.User, or reactivates the one owning email.
func (cli *commandLine) addUser(name, email string) error {
	ctx := context.Background()

	usr, err := cli.usrSvc.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if _, err = cli.usrSvc.SetActive(ctx, usr, true); err != nil {
			return errors.Wrap(err, "activating user")
		}
		_, _ = fmt.Fprintf(cli.stdout(), "user %s reactivated\n", usr.ID)
		return nil
	case !errors.Is(err, user.ErrNotFound):
		return errors.Wrap(err, "finding user by email")
	}

	usr, err = cli.usrSvc.Create(ctx, user.NewUser{Name: name, Email: email})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cli.stdout(), "user %s created\n", usr.ID)
	return nil
}

// token prints a signed API token for the user owning email.
func (cli *commandLine) token(email string) error {
	ctx := context.Background()

	usr, err := cli.usrSvc.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !usr.IsActive {
		return errors.Errorf("user %s is deactivated", usr.ID)
	}
	if usr, err = cli.usrSvc.SetLastLogin(ctx, usr); err != nil {
		return errors.Wrap(err, "setting lastLogin")
	}

	token, err := echoapi.GenerateToken(echoapi.GetUserClaims(usr, cli.conf), cli.conf)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cli.stdout(), token)
	return nil
}
