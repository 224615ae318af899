package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gdiniz/rental-cars/internal/export"
	"github.com/gdiniz/rental-cars/internal/models"
)

func (s *Server) CreateCarHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(models.CreateCarRequest)
		if err := c.Bind(req); err != nil {
			return err
		}

		car, err := s.cars.Create(c.Request().Context(), *req)
		if err != nil {
			return translateError(err)
		}

		return c.JSON(http.StatusCreated, car)
	}
}

func (s *Server) GetCarHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := getIdParam(c, "id")
		if err != nil {
			return err
		}

		car, err := s.cars.Get(c.Request().Context(), id)
		if err != nil {
			return translateError(err)
		}

		return c.JSON(http.StatusOK, car)
	}
}

func (s *Server) ListCarsHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		cars, err := s.cars.List(c.Request().Context())
		if err != nil {
			return translateError(err)
		}

		return c.JSON(http.StatusOK, cars)
	}
}

func (s *Server) SearchAvailableCarsHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		maxPrice, err := queryFloat(c, "max_price")
		if err != nil {
			return err
		}
		minYear, err := queryInt(c, "min_year")
		if err != nil {
			return err
		}
		maxYear, err := queryInt(c, "max_year")
		if err != nil {
			return err
		}

		filter := models.AvailableCarFilter{
			Brand:    c.QueryParam("brand"),
			Model:    c.QueryParam("model"),
			MaxPrice: maxPrice,
			MinYear:  minYear,
			MaxYear:  maxYear,
		}

		cars, err := s.cars.ListAvailable(c.Request().Context(), filter)
		if err != nil {
			return translateError(err)
		}

		return c.JSON(http.StatusOK, cars)
	}
}

func (s *Server) UpdateCarHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := getIdParam(c, "id")
		if err != nil {
			return err
		}

		req := new(models.UpdateCarRequest)
		if err := c.Bind(req); err != nil {
			return err
		}

		car, err := s.cars.Update(c.Request().Context(), id, *req)
		if err != nil {
			return translateError(err)
		}

		return c.JSON(http.StatusOK, car)
	}
}

func (s *Server) DeleteCarHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := getIdParam(c, "id")
		if err != nil {
			return err
		}

		if err := s.cars.Delete(c.Request().Context(), id); err != nil {
			return translateError(err)
		}

		return c.NoContent(http.StatusNoContent)
	}
}

func (s *Server) ExportCarsHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		cars, err := s.cars.List(c.Request().Context())
		if err != nil {
			return translateError(err)
		}

		return writeExport(c, export.Cars(cars))
	}
}
