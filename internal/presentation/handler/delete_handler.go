package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"uploadgate/internal/application/usecase/abstraction"
	"uploadgate/internal/presentation"
)

type DeleteHandler struct {
	deleter abstraction.Deleter
}

func NewDeleteHandler(deleter abstraction.Deleter) *DeleteHandler {
	return &DeleteHandler{
		deleter: deleter,
	}
}

// HandleDelete handles DELETE /records/:id requests.
func (h *DeleteHandler) HandleDelete(c echo.Context) error {
	id := c.Param(presentation.IDParam)
	if id == "" {
		c.Response().Header().Set(presentation.ReasonTag, "missing upload id")

		return c.NoContent(http.StatusBadRequest)
	}

	author, _ := c.Get(presentation.PK).(string)

	status, err := h.deleter.DeleteUpload(c.Request().Context(), id, author)
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.NoContent(status)
	}

	return c.NoContent(http.StatusOK)
}
