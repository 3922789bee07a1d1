package echoapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/spaceacademy/backoffice/core"
	"github.com/spaceacademy/backoffice/core/exam"
)

type examApi struct {
	svc  *exam.Service
	deps *Deps
}

func registerExamAPI(g *echo.Group, deps *Deps) {
	api := examApi{svc: deps.ExamSvc, deps: deps}

	eg := g.Group("/exams")
	eg.GET("", api.query)
	eg.POST("", api.create)

	// detail endpoints
	dg := eg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

// Handlers

func (api *examApi) query(ctx echo.Context) error {
	var filter exam.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}
	var ord Ordering
	ord.Bind(ctx)

	exams, err := api.svc.Filter(filter, ord.Orderings...)
	if err != nil {
		return errors.Wrap(err, "filtering exams")
	}
	return ctx.JSON(http.StatusOK, exams)
}

func (api *examApi) create(ctx echo.Context) error {
	var data exam.NewExam
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewExam")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	exm, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "scheduling exam")
	}

	api.deps.Notifier.Notify(core.Notification{
		Title:       "Exam Scheduled!",
		Description: fmt.Sprintf("Exam for %s has been added to the timetable.", exm.Course),
		Severity:    core.SeverityInfo,
	})
	return ctx.JSON(http.StatusCreated, exm)
}

func (api *examApi) retrieve(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	exm, err := api.svc.GetByID(id)
	if err != nil {
		if errors.Cause(err) == exam.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding exam by ID")
	}
	return ctx.JSON(http.StatusOK, exm)
}

func (api *examApi) update(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data exam.UpdateExam
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateExam")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	exm, err := api.svc.Update(id, data)
	if err != nil {
		if errors.Cause(err) == exam.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating exam")
	}

	notifySuccess(api.deps.Notifier, "Exam updated successfully")
	return ctx.JSON(http.StatusOK, exm)
}

func (api *examApi) destroy(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if err := api.svc.Delete(id); err != nil {
		if errors.Cause(err) == exam.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting exam")
	}
	notifySuccess(api.deps.Notifier, "Exam deleted successfully")
	return ctx.NoContent(http.StatusNoContent)
}
