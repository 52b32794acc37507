package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"uploadgate/internal/application/usecase/abstraction"
	"uploadgate/internal/presentation"
)

const defaultListLimit = 100

type ListHandler struct {
	lister abstraction.Lister
}

func NewListHandler(lister abstraction.Lister) *ListHandler {
	return &ListHandler{
		lister: lister,
	}
}

// HandleList handles GET /records requests.
func (h *ListHandler) HandleList(c echo.Context) error {
	since, err := parseTimeQueryParam(c, "since")
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.NoContent(http.StatusBadRequest)
	}

	limit, err := parseLimitQueryParam(c)
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.NoContent(http.StatusBadRequest)
	}

	records, status, err := h.lister.ListRecords(c.Request().Context(), since, limit)
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.NoContent(status)
	}

	return c.JSON(http.StatusOK, records)
}

// parseTimeQueryParam parses a Unix timestamp string from query parameters into a *time.Time.
func parseTimeQueryParam(c echo.Context, paramName string) (*time.Time, error) {
	s := c.QueryParam(paramName)
	if s == "" {
		return nil, nil //nolint
	}

	ts, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid '%s' timestamp", paramName)
	}

	t := time.Unix(ts, 0)

	return &t, nil
}

func parseLimitQueryParam(c echo.Context) (int64, error) {
	s := c.QueryParam("limit")
	if s == "" {
		return defaultListLimit, nil
	}

	limit, err := strconv.ParseInt(s, 10, 64)
	if err != nil || limit <= 0 {
		return 0, fmt.Errorf("invalid 'limit' %q", s)
	}

	return min(limit, defaultListLimit*10), nil
}
