package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/campusflow/campusflow/core"
	"github.com/campusflow/campusflow/core/attendance"
	"github.com/campusflow/campusflow/core/user"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	conf          *core.Config
	db            *sql.DB // nil with the in-memory engine
	usrSvc        *user.Service
	attendanceSvc *attendance.Service
	mailSvc       core.EmailService
	out           io.Writer
}

func (cli *commandLine) stdout() io.Writer {
	if cli.out == nil {
		return os.Stdout
	}
	return cli.out
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  adduser -name NAME -email EMAIL - create a user, or reactivate an existing one")
	fmt.Println("  token -email EMAIL - print an API token for a user")
	fmt.Println("  migrate COMMAND [ARGS] - run a goose command (up, down, status, ...)")
	fmt.Println("  notify-attendance - email users whose attendance is below the minimum")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ContinueOnError)
	addUserName := addUserCmd.String("name", "", "The user's full name.")
	addUserEmail := addUserCmd.String("email", "", "The user's email.")

	tokenCmd := flag.NewFlagSet("token", flag.ContinueOnError)
	tokenEmail := tokenCmd.String("email", "", "The user's email.")

	switch args[1] {
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserEmail == "" {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(*addUserName, *addUserEmail)
	case "token":
		if err := tokenCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *tokenEmail == "" {
			tokenCmd.Usage()
			return errHelp
		}
		return cli.token(*tokenEmail)
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "notify-attendance":
		return cli.notifyAttendance()
	default:
		cli.printUsage()
		return errHelp
	}
}
