package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	appErrors "github.com/gdiniz/rental-cars/internal/errors"
)

// translateError is the single point where domain errors become HTTP
// responses. Anything outside the taxonomy falls through to echo's default
// 500 handling.
func translateError(err error) error {
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return echo.NewHTTPError(appErr.Status(), appErr.Message)
	}
	return err
}

func getIdParam(c echo.Context, name string) (int, error) {
	idStr := c.Param(name)
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

func queryInt(c echo.Context, name string) (*int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return &n, nil
}

func queryFloat(c echo.Context, name string) (*float64, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return &f, nil
}

func (s *Server) RootHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"message": "Car Rental API",
			"version": "1.0.0",
		})
	}
}

func (s *Server) HealthHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	}
}
