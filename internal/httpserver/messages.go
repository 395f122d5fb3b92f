package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/portfolio/internal/service"
	"github.com/Skotchmaster/portfolio/internal/transport"
	"github.com/Skotchmaster/portfolio/pkg/logging"
)

type MessageHTTP struct {
	Svc *service.MessageService
}

func (h *MessageHTTP) SubmitMessage(c echo.Context) error {
	var req transport.MessageRequest
	if err := bind(c, &req, "message_submit"); err != nil {
		return err
	}

	if err := h.Svc.Submit(c.Request().Context(), req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Message sent"})
}

func (h *MessageHTTP) ListMessages(c echo.Context) error {
	items, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *MessageHTTP) DeleteMessages(c echo.Context) error {
	ctx := c.Request().Context()

	n, err := h.Svc.DeleteAll(ctx)
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Info("delete_messages_success", "deleted", n)
	return c.JSON(http.StatusOK, map[string]any{"message": "All messages deleted", "deleted": n})
}
