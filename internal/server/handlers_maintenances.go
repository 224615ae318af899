package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gdiniz/rental-cars/internal/models"
)

func (s *Server) CreateMaintenanceHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(models.CreateMaintenanceRequest)
		if err := c.Bind(req); err != nil {
			return err
		}

		maintenance, err := s.maintenances.Create(c.Request().Context(), *req)
		if err != nil {
			return translateError(err)
		}

		return c.JSON(http.StatusCreated, maintenance)
	}
}

func (s *Server) GetMaintenanceHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := getIdParam(c, "id")
		if err != nil {
			return err
		}

		maintenance, err := s.maintenances.Get(c.Request().Context(), id)
		if err != nil {
			return translateError(err)
		}

		return c.JSON(http.StatusOK, maintenance)
	}
}

func (s *Server) ListMaintenancesHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		maintenances, err := s.maintenances.List(c.Request().Context())
		if err != nil {
			return translateError(err)
		}

		return c.JSON(http.StatusOK, maintenances)
	}
}

func (s *Server) ListMaintenancesByCarHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		carId, err := getIdParam(c, "car_id")
		if err != nil {
			return err
		}

		maintenances, err := s.maintenances.ListByCar(c.Request().Context(), carId)
		if err != nil {
			return translateError(err)
		}

		return c.JSON(http.StatusOK, maintenances)
	}
}

func (s *Server) UpdateMaintenanceHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := getIdParam(c, "id")
		if err != nil {
			return err
		}

		req := new(models.UpdateMaintenanceRequest)
		if err := c.Bind(req); err != nil {
			return err
		}

		maintenance, err := s.maintenances.Update(c.Request().Context(), id, *req)
		if err != nil {
			return translateError(err)
		}

		return c.JSON(http.StatusOK, maintenance)
	}
}

func (s *Server) CompleteMaintenanceHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := getIdParam(c, "id")
		if err != nil {
			return err
		}

		maintenance, err := s.maintenances.Complete(c.Request().Context(), id)
		if err != nil {
			return translateError(err)
		}

		return c.JSON(http.StatusOK, maintenance)
	}
}

func (s *Server) DeleteMaintenanceHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := getIdParam(c, "id")
		if err != nil {
			return err
		}

		if err := s.maintenances.Delete(c.Request().Context(), id); err != nil {
			return translateError(err)
		}

		return c.NoContent(http.StatusNoContent)
	}
}
