package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/campusflow/campusflow/apps/api/echo"
	"github.com/campusflow/campusflow/core"
	"github.com/campusflow/campusflow/core/attendance"
	"github.com/campusflow/campusflow/core/user"
	emailsvc "github.com/campusflow/campusflow/services/email"
	logsvc "github.com/campusflow/campusflow/services/logger"
	"github.com/campusflow/campusflow/storage/database/dummy"
	"github.com/campusflow/campusflow/tests"
)

var (
	usrRepo    user.Repository
	courseRepo attendance.Repository
	mailSvc    *emailsvc.ConsoleService
	out        *bytes.Buffer
)

func setup(t *testing.T) *commandLine {
	conf := testutil.NewConfig()
	validate, _ := testutil.NewValidator()
	core.ParseEmailTemplates(conf, logsvc.NewNopLogger(conf))

	// set up DB & repos
	db := dummydb.Open()
	usrRepo = dummydb.NewUserRepository(db)
	courseRepo = dummydb.NewCourseRepository(db)
	mailSvc = emailsvc.NewConsoleServiceMock(conf)
	out = new(bytes.Buffer)

	// start CLI
	return &commandLine{
		conf:          conf,
		usrSvc:        user.NewService(usrRepo, validate),
		attendanceSvc: attendance.NewService(courseRepo, conf),
		mailSvc:       mailSvc,
		out:           out,
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func runCLITests(t *testing.T, cli *commandLine, tests []cliTest, check ...func(t *testing.T, tt cliTest)) {
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			switch {
			case tt.wantErr != nil:
				assert.Equal(t, tt.wantErr, err)
			case tt.wantErrStr != "":
				if assert.Error(t, err) {
					assert.Equal(t, tt.wantErrStr, err.Error())
				}
			default:
				require.NoError(t, err)
				for _, c := range check {
					c(t, tt)
				}
			}
		})
	}
}

func Test_commandLine_run(t *testing.T) {
	cli := setup(t)

	runCLITests(t, cli, []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "adduser: no email", args: []string{"adduser", "-name", "Hero"}, wantErr: errHelp},
		{name: "token: no email", args: []string{"token"}, wantErr: errHelp},
		{name: "migrate: no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "migrate: in-memory engine", args: []string{"migrate", "up"}, wantErr: errNoDatabase},
	})
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)
	cli.db = new(sql.DB) // never used by the mock

	gooseRunFunc = func(command string, db *sql.DB, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s must be of form: goose [OPTIONS] DRIVER DBSTRING %s VERSION", command, command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	runCLITests(t, cli, []cliTest{
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "create", args: []string{"migrate", "create", "course", "sql"}},
	})
}

func Test_commandLine_addUser(t *testing.T) {
	cli := setup(t)
	ctx := context.Background()

	naughty := testutil.CreateUser(t, usrRepo, "N Dog", "ndog@test.cd", false) // 😂

	err := cli.run([]string{"admin", "adduser", "-name", "Hero", "-email", "lol"})
	assert.IsType(t, validator.ValidationErrors{}, err)

	runCLITests(t, cli, []cliTest{
		{name: "created", args: []string{"adduser", "-name", " Hero ", "-email", "HERO@test.cd"}, extra: "hero@test.cd"},
		{name: "reactivated", args: []string{"adduser", "-email", naughty.Email}, extra: naughty.Email},
	}, func(t *testing.T, tt cliTest) {
		usr, err := usrRepo.GetUser(ctx, user.GetFilter{Email: tt.extra.(string)})
		require.NoError(t, err)
		assert.True(t, usr.IsActive)
		assert.NotEmpty(t, usr.Name)
	})
}

func Test_commandLine_token(t *testing.T) {
	cli := setup(t)

	student := testutil.CreateUser(t, usrRepo, "Hero", "hero@test.cd", true)
	naughty := testutil.CreateUser(t, usrRepo, "N Dog", "ndog@test.cd", false)

	runCLITests(t, cli, []cliTest{
		{name: "unknown user", args: []string{"token", "-email", "lol@test.cd"}, wantErr: user.ErrNotFound},
		{name: "deactivated user", args: []string{"token", "-email", naughty.Email}, wantErrStr: "user " + naughty.ID + " is deactivated"},
		{name: "token printed", args: []string{"token", "-email", student.Email}},
	}, func(t *testing.T, tt cliTest) {
		claims := new(echoapi.Claims)
		_, err := jwt.ParseWithClaims(strings.TrimSpace(out.String()), claims, func(*jwt.Token) (interface{}, error) {
			return []byte(cli.conf.SecretKey), nil
		})
		require.NoError(t, err)
		assert.Equal(t, student.ID, claims.Subject)

		usr, err := usrRepo.GetUser(context.Background(), user.GetFilter{ID: student.ID})
		require.NoError(t, err)
		assert.False(t, usr.LastLogin.IsZero())
	})
}

func Test_commandLine_notifyAttendance(t *testing.T) {
	cli := setup(t)
	ctx := context.Background()

	student := testutil.CreateUser(t, usrRepo, "Hero", "hero@test.cd", true)
	testutil.CreateUser(t, usrRepo, "King", "king@test.cd", true)
	_, err := courseRepo.CreateCourse(ctx, attendance.Course{
		ID:              uuid.New().String(),
		UserID:          student.ID,
		Name:            "Physics",
		Schedule:        map[string]int{"Mon": 1},
		MinAttendance:   75,
		AttendedClasses: 1,
		TotalClasses:    4,
		AttendanceLog:   map[string]bool{},
		CreatedAt:       time.Now().UTC(),
	})
	require.NoError(t, err)

	require.NoError(t, cli.run([]string{"admin", "notify-attendance"}))
	assert.Equal(t, "1 warning(s) sent\n", out.String())

	sent := mailSvc.SentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, student.Email, sent[0].To[0].Address)
	assert.Contains(t, sent[0].TextContent, "Hi Hero,")
	assert.Contains(t, sent[0].TextContent, "- Physics: 25% (minimum 75%)")
	assert.Contains(t, sent[0].HTMLContent, "Physics")
}
