package echoapi

import (
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/spaceacademy/backoffice/core"
	"github.com/spaceacademy/backoffice/core/course"
)

type courseApi struct {
	svc  *course.Service
	deps *Deps
}

func registerCourseAPI(g *echo.Group, deps *Deps) {
	api := courseApi{svc: deps.CourseSvc, deps: deps}

	cg := g.Group("/courses")
	cg.GET("", api.query)
	cg.POST("", api.create)

	// detail endpoints
	dg := cg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
	dg.POST("/files", api.uploadFile)
	dg.GET("/files/:fileID", api.downloadFile)
	dg.DELETE("/files/:fileID", api.deleteFile)
}

// Handlers

func (api *courseApi) query(ctx echo.Context) error {
	var filter course.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}
	var ord Ordering
	ord.Bind(ctx)

	courses, err := api.svc.Filter(filter, ord.Orderings...)
	if err != nil {
		return errors.Wrap(err, "filtering courses")
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *courseApi) create(ctx echo.Context) error {
	var data course.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	crs, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}

	notifySuccess(api.deps.Notifier, "Course created successfully")
	return ctx.JSON(http.StatusCreated, crs)
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	crs, err := api.svc.GetByID(id)
	if err != nil {
		if errors.Cause(err) == course.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding course by ID")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) update(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data course.UpdateCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCourse")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	crs, err := api.svc.Update(id, data)
	if err != nil {
		if errors.Cause(err) == course.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating course")
	}

	notifySuccess(api.deps.Notifier, "Course updated successfully")
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) destroy(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if err := api.svc.Delete(id); err != nil {
		if errors.Cause(err) == course.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting course")
	}
	notifySuccess(api.deps.Notifier, "Course deleted successfully")
	return ctx.NoContent(http.StatusNoContent)
}

func (api *courseApi) uploadFile(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		return core.NewValidationError(errors.New("Please select a file and provide a name."))
	}
	name := ctx.FormValue("name")
	if name == "" {
		name = header.Filename
	}

	src, err := header.Open()
	if err != nil {
		return errors.Wrap(err, "opening uploaded file")
	}
	defer src.Close()
	content, err := ioutil.ReadAll(src)
	if err != nil {
		return errors.Wrap(err, "reading uploaded file")
	}

	data := course.NewFile{Name: name, Content: content}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	crs, err := api.svc.GetByID(id)
	if err != nil {
		if errors.Cause(err) == course.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding course by ID")
	}

	f, err := api.svc.AttachFile(id, data)
	if err != nil {
		if errors.Cause(err) == course.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "attaching course file")
	}

	notifySuccess(api.deps.Notifier, fmt.Sprintf("File '%s' uploaded to %s.", f.Name, crs.Code))
	return ctx.JSON(http.StatusCreated, f)
}

func (api *courseApi) downloadFile(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	f, err := api.svc.GetFile(id, ctx.Param("fileID"))
	if err != nil {
		cause := errors.Cause(err)
		if cause == course.ErrNotFound || cause == course.ErrFileNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding course file")
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", f.Name))
	return ctx.Blob(http.StatusOK, echo.MIMEOctetStream, f.Content)
}

func (api *courseApi) deleteFile(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if err := api.svc.DetachFile(id, ctx.Param("fileID")); err != nil {
		cause := errors.Cause(err)
		if cause == course.ErrNotFound || cause == course.ErrFileNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "detaching course file")
	}
	notifySuccess(api.deps.Notifier, "File deleted successfully")
	return ctx.NoContent(http.StatusNoContent)
}
