package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	_ "time/tzdata"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	echoapi "github.com/campusflow/campusflow/apps/api/echo"
	"github.com/campusflow/campusflow/core"
	"github.com/campusflow/campusflow/core/assistant"
	"github.com/campusflow/campusflow/core/attendance"
	"github.com/campusflow/campusflow/core/quiz"
	"github.com/campusflow/campusflow/core/schedule"
	"github.com/campusflow/campusflow/core/user"
	"github.com/campusflow/campusflow/fs"
	logsvc "github.com/campusflow/campusflow/services/logger"
	"github.com/campusflow/campusflow/services/oracle"
	"github.com/campusflow/campusflow/storage/database"
	"github.com/campusflow/campusflow/storage/database/dummy"
	"github.com/campusflow/campusflow/storage/database/sqlx"
)

type repositories struct {
	users     user.Repository
	schedules schedule.Repository
	courses   attendance.Repository
	close     func() error
}

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	dbLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	dbLogger.Enable(!conf.Debug)

	// set up DB
	repos, err := setUpRepositories(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = repos.close(); err != nil {
			dbLogger.Fatal("Failed to close", err)
		}
	}()

	// set up the assistant's language model
	ctx := context.Background()
	gemini, err := oracle.NewGeminiOracle(ctx, conf, logger)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up oracle: %v", err), err)
	}

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	schedule.InitValidators(validate, translator)
	attendance.InitValidators(validate, translator)

	quizDef, err := quiz.LoadDefinition(appfs.FS)
	if err != nil {
		logger.Fatal(fmt.Sprintf("loading quiz: %v", err), err)
	}

	// set up services
	usrSvc := user.NewService(repos.users, validate)
	schedSvc := schedule.NewService(repos.schedules, conf)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(echoapi.ServerDeps{
		Conf:          conf,
		Logger:        logger,
		UserSvc:       usrSvc,
		ScheduleSvc:   schedSvc,
		AssistantSvc:  assistant.NewService(gemini, schedSvc, validate),
		AttendanceSvc: attendance.NewService(repos.courses, conf),
		QuizSvc:       quiz.NewService(quizDef, usrSvc, validate),
		Validate:      validate,
		Translator:    translator,
	})

	go server.Start()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(ctx, conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

// setUpRepositories picks the storage engine: the in-memory one, or postgres (migrated on start).
func setUpRepositories(conf *core.Config) (repositories, error) {
	if conf.Database.InMemory() {
		db := dummydb.Open()
		return repositories{
			users:     dummydb.NewUserRepository(db),
			schedules: dummydb.NewScheduleRepository(db),
			courses:   dummydb.NewCourseRepository(db),
			close:     func() error { return nil },
		}, nil
	}

	db, err := setUpDB(conf)
	if err != nil {
		return repositories{}, err
	}
	return repositories{
		users:     sqlxrepos.NewUserRepository(db),
		schedules: sqlxrepos.NewScheduleRepository(db),
		courses:   sqlxrepos.NewCourseRepository(db),
		close:     db.Close,
	}, nil
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db.DB); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
