package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/spaceacademy/backoffice/core"
	"github.com/spaceacademy/backoffice/core/result"
)

type resultApi struct {
	svc  *result.Service
	deps *Deps
}

func registerResultAPI(g *echo.Group, deps *Deps) {
	api := resultApi{svc: deps.ResultSvc, deps: deps}

	rg := g.Group("/results")
	rg.GET("", api.query)
	rg.POST("", api.create)
	rg.GET("/summary", api.summary)

	// detail endpoints
	dg := rg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

// Handlers

func (api *resultApi) query(ctx echo.Context) error {
	var filter result.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}
	results, err := api.svc.Filter(filter)
	if err != nil {
		return errors.Wrap(err, "filtering results")
	}
	return ctx.JSON(http.StatusOK, results)
}

func (api *resultApi) summary(ctx echo.Context) error {
	sum, err := api.svc.Summarize(ctx.QueryParam("course_code"))
	if err != nil {
		return errors.Wrap(err, "summarizing results")
	}
	return ctx.JSON(http.StatusOK, sum)
}

func (api *resultApi) create(ctx echo.Context) error {
	var data result.NewResult
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewResult")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	res, err := api.svc.Create(data)
	if err != nil {
		if core.IsValidationError(err) {
			return err
		}
		return errors.Wrap(err, "creating result")
	}

	notifySuccess(api.deps.Notifier, "Result created successfully")
	return ctx.JSON(http.StatusCreated, res)
}

func (api *resultApi) retrieve(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	res, err := api.svc.GetByID(id)
	if err != nil {
		if errors.Cause(err) == result.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding result by ID")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *resultApi) update(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data result.UpdateResult
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateResult")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	res, err := api.svc.Update(id, data)
	if err != nil {
		if errors.Cause(err) == result.ErrNotFound {
			return errHttpNotFound
		}
		if core.IsValidationError(err) {
			return err
		}
		return errors.Wrap(err, "updating result")
	}

	notifySuccess(api.deps.Notifier, "Result updated successfully")
	return ctx.JSON(http.StatusOK, res)
}

func (api *resultApi) destroy(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if err := api.svc.Delete(id); err != nil {
		if errors.Cause(err) == result.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting result")
	}
	notifySuccess(api.deps.Notifier, "Result deleted successfully")
	return ctx.NoContent(http.StatusNoContent)
}
