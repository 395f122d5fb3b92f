package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/portfolio/internal/service"
	"github.com/Skotchmaster/portfolio/internal/transport"
)

type RatingHTTP struct {
	Svc *service.RatingService
}

func (h *RatingHTTP) SubmitRating(c echo.Context) error {
	var req transport.RatingRequest
	if err := bind(c, &req, "rating_submit"); err != nil {
		return err
	}

	id, err := h.Svc.Submit(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, transport.MutationResponse{Message: "Rating submitted", ID: id})
}

func (h *RatingHTTP) GetRatings(c echo.Context) error {
	id, err := pathID(c, "projectId")
	if err != nil {
		return err
	}

	sum, err := h.Svc.Summary(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sum)
}
