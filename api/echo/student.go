package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/spaceacademy/backoffice/core/student"
)

type studentApi struct {
	svc  *student.Service
	deps *Deps
}

func registerStudentAPI(g *echo.Group, deps *Deps) {
	api := studentApi{svc: deps.StudentSvc, deps: deps}

	sg := g.Group("/students")
	sg.GET("", api.query)
	sg.POST("", api.create)

	// detail endpoints
	dg := sg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

// Handlers

func (api *studentApi) query(ctx echo.Context) error {
	var filter student.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}
	var ord Ordering
	ord.Bind(ctx)

	students, err := api.svc.Filter(filter, ord.Orderings...)
	if err != nil {
		return errors.Wrap(err, "filtering students")
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) create(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	std, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}

	notifySuccess(api.deps.Notifier, "Student created successfully")
	return ctx.JSON(http.StatusCreated, std)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	std, err := api.svc.GetByID(id)
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding student by ID")
	}
	return ctx.JSON(http.StatusOK, std)
}

func (api *studentApi) update(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data student.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	std, err := api.svc.Update(id, data)
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating student")
	}

	notifySuccess(api.deps.Notifier, "Student updated successfully")
	return ctx.JSON(http.StatusOK, std)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if err := api.svc.Delete(id); err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting student")
	}
	notifySuccess(api.deps.Notifier, "Student deleted successfully")
	return ctx.NoContent(http.StatusNoContent)
}
