package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/spaceacademy/backoffice/core"
	"github.com/spaceacademy/backoffice/core/reeval"
)

type reevalApi struct {
	svc  *reeval.Service
	deps *Deps
}

func registerReevalAPI(g *echo.Group, deps *Deps) {
	api := reevalApi{svc: deps.ReevalSvc, deps: deps}

	rg := g.Group("/reevaluations")
	rg.GET("", api.query)
	rg.POST("", api.create)

	// detail endpoints
	dg := rg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

// Handlers

func (api *reevalApi) query(ctx echo.Context) error {
	var filter reeval.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}
	var ord Ordering
	ord.Bind(ctx)

	reqs, err := api.svc.Filter(filter, ord.Orderings...)
	if err != nil {
		return errors.Wrap(err, "filtering re-evaluation requests")
	}
	return ctx.JSON(http.StatusOK, reqs)
}

func (api *reevalApi) create(ctx echo.Context) error {
	var data reeval.NewRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRequest")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	req, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "filing re-evaluation request")
	}

	api.deps.Notifier.Notify(core.Notification{
		Title:       "Request Submitted!",
		Description: "Your re-evaluation request has been submitted for review.",
		Severity:    core.SeverityInfo,
	})
	return ctx.JSON(http.StatusCreated, req)
}

func (api *reevalApi) retrieve(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	req, err := api.svc.GetByID(id)
	if err != nil {
		if errors.Cause(err) == reeval.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding re-evaluation request by ID")
	}
	return ctx.JSON(http.StatusOK, req)
}

func (api *reevalApi) update(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data reeval.UpdateRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateRequest")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	req, err := api.svc.Update(id, data)
	if err != nil {
		if errors.Cause(err) == reeval.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating re-evaluation request")
	}

	notifySuccess(api.deps.Notifier, "Request updated successfully")
	return ctx.JSON(http.StatusOK, req)
}

func (api *reevalApi) destroy(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if err := api.svc.Delete(id); err != nil {
		if errors.Cause(err) == reeval.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting re-evaluation request")
	}
	notifySuccess(api.deps.Notifier, "Request deleted successfully")
	return ctx.NoContent(http.StatusNoContent)
}
