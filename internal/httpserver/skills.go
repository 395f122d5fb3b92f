package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/portfolio/internal/service"
	"github.com/Skotchmaster/portfolio/internal/transport"
)

type SkillHTTP struct {
	Svc *service.SkillService
}

func (h *SkillHTTP) ListSkills(c echo.Context) error {
	items, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// CreateSkill is reachable without a token, like the other visitor forms.
func (h *SkillHTTP) CreateSkill(c echo.Context) error {
	var req transport.SkillRequest
	if err := bind(c, &req, "skill_create"); err != nil {
		return err
	}

	sk, err := h.Svc.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, sk)
}

func (h *SkillHTTP) ListAboutSkills(c echo.Context) error {
	items, err := h.Svc.ListAbout(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}
