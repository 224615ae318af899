package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gdiniz/rental-cars/internal/models"
)

func (s *Server) CreatePaymentHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(models.CreatePaymentRequest)
		if err := c.Bind(req); err != nil {
			return err
		}

		payment, err := s.payments.Create(c.Request().Context(), *req)
		if err != nil {
			return translateError(err)
		}

		return c.JSON(http.StatusCreated, payment)
	}
}

func (s *Server) GetPaymentHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := getIdParam(c, "id")
		if err != nil {
			return err
		}

		payment, err := s.payments.Get(c.Request().Context(), id)
		if err != nil {
			return translateError(err)
		}

		return c.JSON(http.StatusOK, payment)
	}
}

func (s *Server) ListPaymentsHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		payments, err := s.payments.List(c.Request().Context())
		if err != nil {
			return translateError(err)
		}

		return c.JSON(http.StatusOK, payments)
	}
}

func (s *Server) ListPaymentsByRentalHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		rentalId, err := getIdParam(c, "rental_id")
		if err != nil {
			return err
		}

		payments, err := s.payments.ListByRental(c.Request().Context(), rentalId)
		if err != nil {
			return translateError(err)
		}

		return c.JSON(http.StatusOK, payments)
	}
}

func (s *Server) UpdatePaymentHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := getIdParam(c, "id")
		if err != nil {
			return err
		}

		req := new(models.UpdatePaymentRequest)
		if err := c.Bind(req); err != nil {
			return err
		}

		payment, err := s.payments.Update(c.Request().Context(), id, *req)
		if err != nil {
			return translateError(err)
		}

		return c.JSON(http.StatusOK, payment)
	}
}

func (s *Server) ProcessPaymentHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := getIdParam(c, "id")
		if err != nil {
			return err
		}

		payment, err := s.payments.Process(c.Request().Context(), id)
		if err != nil {
			return translateError(err)
		}

		return c.JSON(http.StatusOK, payment)
	}
}

func (s *Server) DeletePaymentHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := getIdParam(c, "id")
		if err != nil {
			return err
		}

		if err := s.payments.Delete(c.Request().Context(), id); err != nil {
			return translateError(err)
		}

		return c.NoContent(http.StatusNoContent)
	}
}
