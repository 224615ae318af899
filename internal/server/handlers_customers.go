package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gdiniz/rental-cars/internal/models"
)

func (s *Server) CreateCustomerHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(models.CreateCustomerRequest)
		if err := c.Bind(req); err != nil {
			return err
		}

		customer, err := s.customers.Create(c.Request().Context(), *req)
		if err != nil {
			return translateError(err)
		}

		return c.JSON(http.StatusCreated, customer)
	}
}

func (s *Server) GetCustomerHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := getIdParam(c, "id")
		if err != nil {
			return err
		}

		customer, err := s.customers.Get(c.Request().Context(), id)
		if err != nil {
			return translateError(err)
		}

		return c.JSON(http.StatusOK, customer)
	}
}

func (s *Server) ListCustomersHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		customers, err := s.customers.List(c.Request().Context())
		if err != nil {
			return translateError(err)
		}

		return c.JSON(http.StatusOK, customers)
	}
}

func (s *Server) UpdateCustomerHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := getIdParam(c, "id")
		if err != nil {
			return err
		}

		req := new(models.UpdateCustomerRequest)
		if err := c.Bind(req); err != nil {
			return err
		}

		customer, err := s.customers.Update(c.Request().Context(), id, *req)
		if err != nil {
			return translateError(err)
		}

		return c.JSON(http.StatusOK, customer)
	}
}

func (s *Server) DeleteCustomerHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := getIdParam(c, "id")
		if err != nil {
			return err
		}

		if err := s.customers.Delete(c.Request().Context(), id); err != nil {
			return translateError(err)
		}

		return c.NoContent(http.StatusNoContent)
	}
}
