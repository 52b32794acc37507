package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"uploadgate/internal/application/usecase/abstraction"
	"uploadgate/internal/presentation"
)

type GetHandler struct {
	getter abstraction.Getter
}

func NewGetHandler(getter abstraction.Getter) *GetHandler {
	return &GetHandler{
		getter: getter,
	}
}

// HandleGet handles GET /records/:id requests. Records with a mirror
// redirect there when the client asks for it with ?redirect=1.
func (h *GetHandler) HandleGet(c echo.Context) error {
	id := c.Param(presentation.IDParam)
	if id == "" {
		c.Response().Header().Set(presentation.ReasonTag, "missing upload id")

		return c.NoContent(http.StatusBadRequest)
	}

	record, err := h.getter.GetRecord(c.Request().Context(), id)
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.NoContent(http.StatusNotFound)
	}

	if c.QueryParam("redirect") == "1" && record.Mirror != "" {
		return c.Redirect(http.StatusFound, record.Mirror)
	}

	return c.JSON(http.StatusOK, record)
}
