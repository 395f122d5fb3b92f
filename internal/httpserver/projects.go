package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/portfolio/internal/service"
	"github.com/Skotchmaster/portfolio/internal/transport"
	"github.com/Skotchmaster/portfolio/internal/util"
	"github.com/Skotchmaster/portfolio/pkg/logging"
)

type ProjectHTTP struct {
	Svc *service.ProjectService
}

func (h *ProjectHTTP) ListProjects(c echo.Context) error {
	items, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProjectHTTP) GetProject(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	project, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

func (h *ProjectHTTP) SearchProjects(c echo.Context) error {
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	res, err := h.Svc.Search(c.Request().Context(), c.QueryParam("q"), page, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (h *ProjectHTTP) CreateProject(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "project.create")

	var req transport.ProjectRequest
	if err := bind(c, &req, "project_create"); err != nil {
		return err
	}

	id, err := h.Svc.Create(ctx, req)
	if err != nil {
		return err
	}

	l.Info("create_project_success", "project_id", id)
	return c.JSON(http.StatusCreated, transport.MutationResponse{Message: "Project created", ID: id})
}

func (h *ProjectHTTP) UpdateProject(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "project.update")

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req transport.ProjectRequest
	if err := bind(c, &req, "project_update"); err != nil {
		return err
	}

	if err := h.Svc.Update(ctx, id, req); err != nil {
		return err
	}

	l.Info("update_project_success", "project_id", id)
	return c.JSON(http.StatusOK, transport.MutationResponse{Message: "Project updated", ID: id})
}

func (h *ProjectHTTP) DeleteProject(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "project.delete")

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		return err
	}

	l.Info("delete_project_success", "project_id", id)
	return c.JSON(http.StatusOK, transport.MutationResponse{Message: "Project deleted", ID: id})
}
