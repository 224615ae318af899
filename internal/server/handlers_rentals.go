package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gdiniz/rental-cars/internal/export"
	"github.com/gdiniz/rental-cars/internal/models"
	"github.com/gdiniz/rental-cars/internal/validation"
)

func (s *Server) CreateRentalHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(models.CreateRentalRequest)
		if err := c.Bind(req); err != nil {
			return err
		}

		rental, err := s.rentals.Create(c.Request().Context(), *req)
		if err != nil {
			return translateError(err)
		}

		return c.JSON(http.StatusCreated, rental)
	}
}

func (s *Server) GetRentalHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := getIdParam(c, "id")
		if err != nil {
			return err
		}

		rental, err := s.rentals.Get(c.Request().Context(), id)
		if err != nil {
			return translateError(err)
		}

		return c.JSON(http.StatusOK, rental)
	}
}

func (s *Server) ListRentalsHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		rentals, err := s.rentals.List(c.Request().Context())
		if err != nil {
			return translateError(err)
		}

		return c.JSON(http.StatusOK, rentals)
	}
}

func (s *Server) SearchRentalsHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		customerId, err := queryInt(c, "customer_id")
		if err != nil {
			return err
		}

		filter := models.RentalFilter{
			CustomerId: customerId,
			Status:     models.RentalStatus(c.QueryParam("status")),
		}

		if v := c.QueryParam("start_date"); v != "" {
			start, err := validation.ParseDate(v)
			if err != nil {
				return translateError(err)
			}
			filter.StartDate = &start
		}
		if v := c.QueryParam("end_date"); v != "" {
			end, err := validation.ParseDate(v)
			if err != nil {
				return translateError(err)
			}
			filter.EndDate = &end
		}

		rentals, err := s.rentals.Search(c.Request().Context(), filter)
		if err != nil {
			return translateError(err)
		}

		return c.JSON(http.StatusOK, rentals)
	}
}

func (s *Server) UpdateRentalHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := getIdParam(c, "id")
		if err != nil {
			return err
		}

		req := new(models.UpdateRentalRequest)
		if err := c.Bind(req); err != nil {
			return err
		}

		rental, err := s.rentals.Update(c.Request().Context(), id, *req)
		if err != nil {
			return translateError(err)
		}

		return c.JSON(http.StatusOK, rental)
	}
}

func (s *Server) CompleteRentalHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := getIdParam(c, "id")
		if err != nil {
			return err
		}

		rental, err := s.rentals.Complete(c.Request().Context(), id)
		if err != nil {
			return translateError(err)
		}

		return c.JSON(http.StatusOK, rental)
	}
}

func (s *Server) CancelRentalHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := getIdParam(c, "id")
		if err != nil {
			return err
		}

		rental, err := s.rentals.Cancel(c.Request().Context(), id)
		if err != nil {
			return translateError(err)
		}

		return c.JSON(http.StatusOK, rental)
	}
}

func (s *Server) DeleteRentalHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := getIdParam(c, "id")
		if err != nil {
			return err
		}

		if err := s.rentals.Delete(c.Request().Context(), id); err != nil {
			return translateError(err)
		}

		return c.NoContent(http.StatusNoContent)
	}
}

func (s *Server) ExportRentalsHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		rentals, err := s.rentals.List(c.Request().Context())
		if err != nil {
			return translateError(err)
		}

		return writeExport(c, export.Rentals(rentals))
	}
}
