package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/campusflow/campusflow/core"
	"github.com/campusflow/campusflow/core/attendance"
	"github.com/campusflow/campusflow/core/user"
	emailsvc "github.com/campusflow/campusflow/services/email"
	logsvc "github.com/campusflow/campusflow/services/logger"
	"github.com/campusflow/campusflow/storage/database"
	"github.com/campusflow/campusflow/storage/database/dummy"
	"github.com/campusflow/campusflow/storage/database/sqlx"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	validate := validator.New()
	_en := en.New()
	translator, _ := ut.New(_en, _en).GetTranslator("en")
	core.InitValidators(validate, translator)
	attendance.InitValidators(validate, translator)

	core.ParseEmailTemplates(conf, logger)

	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	cli := commandLine{conf: conf, mailSvc: mailSvc}
	var db *sql.DB
	if conf.Database.InMemory() {
		mem := dummydb.Open()
		cli.usrSvc = user.NewService(dummydb.NewUserRepository(mem), validate)
		cli.attendanceSvc = attendance.NewService(dummydb.NewCourseRepository(mem), conf)
	} else {
		if err := database.CreateIfNotExist(conf); err != nil {
			logger.Fatal(fmt.Sprintf("creating database: %v", err), err)
		}
		sqlxDB, err := database.Open(conf)
		if err != nil {
			logger.Fatal(fmt.Sprintf("opening database: %v", err), err)
		}
		db = sqlxDB.DB
		cli.db = db
		cli.usrSvc = user.NewService(sqlxrepos.NewUserRepository(sqlxDB), validate)
		cli.attendanceSvc = attendance.NewService(sqlxrepos.NewCourseRepository(sqlxDB), conf)
	}

	err := cli.run(os.Args)
	if db != nil {
		_ = db.Close()
	}
	if err != nil {
		if err != errHelp {
			logger.Error(fmt.Sprintf("error: %s", err), err)
		}
		os.Exit(1)
	}
}
