package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	echoapi "github.com/spaceacademy/backoffice/api/echo"
	"github.com/spaceacademy/backoffice/core"
	"github.com/spaceacademy/backoffice/core/auth"
	"github.com/spaceacademy/backoffice/core/course"
	"github.com/spaceacademy/backoffice/core/exam"
	"github.com/spaceacademy/backoffice/core/reeval"
	"github.com/spaceacademy/backoffice/core/result"
	"github.com/spaceacademy/backoffice/core/student"
	emailsvc "github.com/spaceacademy/backoffice/services/email"
	logsvc "github.com/spaceacademy/backoffice/services/logger"
	notifsvc "github.com/spaceacademy/backoffice/services/notification"
	"github.com/spaceacademy/backoffice/storage/inmem"
)

const shutdownTimeout = 20 * time.Second

func main() {
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	rootDir, err := os.Getwd()
	if err != nil {
		std.Fatalf("main: %+v", err)
	}
	conf := core.NewConfig(rootDir)
	if err := conf.Check(); err != nil {
		std.Fatalf("main: %+v", err)
	}

	var logger core.Logger
	if conf.Debug {
		logger = logsvc.NewConsoleLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}

	if err := run(conf, logger); err != nil {
		logger.Fatal("main: shutting down", err)
	}
}

func run(conf *core.Config, logger core.Logger) error {
	validate, translator := core.NewValidator()
	result.RegisterValidators(validate, translator)

	// set up DB
	db, err := inmem.Open()
	if err != nil {
		return err
	}
	if err := inmem.Seed(db); err != nil {
		return err
	}

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	notifier := notifsvc.NewConsoleNotifier(logger)

	crsSvc := course.NewService(inmem.NewCourseRepository(db))
	stdSvc := student.NewService(inmem.NewStudentRepository(db), mailSvc)
	resSvc := result.NewService(inmem.NewResultRepository(db), stdSvc, crsSvc)
	exmSvc := exam.NewService(inmem.NewExamRepository(db))
	reqSvc := reeval.NewService(inmem.NewReevalRepository(db))

	authenticator, err := auth.NewAllowListAuthenticator(conf.Admin)
	if err != nil {
		return err
	}

	// start API server
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	app := echoapi.NewServer(conf.Addr(), shutdown, &echoapi.Deps{
		Conf:          conf,
		Logger:        logger,
		Notifier:      notifier,
		Validate:      validate,
		Translator:    translator,
		Authenticator: authenticator,
		CourseSvc:     crsSvc,
		StudentSvc:    stdSvc,
		ResultSvc:     resSvc,
		ExamSvc:       exmSvc,
		ReevalSvc:     reqSvc,
	})

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("server listening on " + conf.Addr())
		serverErrors <- app.Start()
	}()

	select {
	case err := <-serverErrors:
		return err
	case sig := <-shutdown:
		logger.Info("shutdown started", sig)
		defer logger.Info("shutdown complete", sig)

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			return err
		}
	}
	return nil
}
