package server

import (
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/gdiniz/rental-cars/internal/usecases/cars"
	"github.com/gdiniz/rental-cars/internal/usecases/customers"
	"github.com/gdiniz/rental-cars/internal/usecases/maintenances"
	"github.com/gdiniz/rental-cars/internal/usecases/payments"
	"github.com/gdiniz/rental-cars/internal/usecases/rentals"
)

type Server struct {
	*echo.Echo
	cars         *cars.CarUsecase
	customers    *customers.CustomerUsecase
	rentals      *rentals.RentalUsecase
	payments     *payments.PaymentUsecase
	maintenances *maintenances.MaintenanceUsecase
}

func NewServer(
	carsUsecase *cars.CarUsecase,
	customersUsecase *customers.CustomerUsecase,
	rentalsUsecase *rentals.RentalUsecase,
	paymentsUsecase *payments.PaymentUsecase,
	maintenancesUsecase *maintenances.MaintenanceUsecase,
) *Server {
	e := echo.New()

	e.HideBanner = true
	e.Logger.SetLevel(log.ERROR)
	e.JSONSerializer = DefaultJSONSerializer{}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(RequestLogger())

	s := &Server{e, carsUsecase, customersUsecase, rentalsUsecase, paymentsUsecase, maintenancesUsecase}

	s.registerHandlers()

	return s
}

// DefaultJSONSerializer implements JSON encoding using goccy/go-json.
type DefaultJSONSerializer struct{}

// Serialize converts an interface into a json and writes it to the response.
// You can optionally use the indent parameter to produce pretty JSONs.
func (d DefaultJSONSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := json.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

// Deserialize reads a JSON from a request body and converts it into an interface.
func (d DefaultJSONSerializer) Deserialize(c echo.Context, i interface{}) error {
	err := json.NewDecoder(c.Request().Body).Decode(i)
	if ute, ok := err.(*json.UnmarshalTypeError); ok {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Unmarshal type error: expected=%v, got=%v, field=%v, offset=%v", ute.Type, ute.Value, ute.Field, ute.Offset)).SetInternal(err)
	} else if se, ok := err.(*json.SyntaxError); ok {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Syntax error: offset=%v, error=%v", se.Offset, se.Error())).SetInternal(err)
	}
	return err
}

func (s *Server) registerHandlers() {
	s.GET("/", s.RootHandler())
	s.GET("/health", s.HealthHandler())

	s.POST("/cars", s.CreateCarHandler())
	s.GET("/cars", s.ListCarsHandler())
	s.GET("/cars/export", s.ExportCarsHandler())
	s.GET("/cars/available/search", s.SearchAvailableCarsHandler())
	s.GET("/cars/:id", s.GetCarHandler())
	s.PUT("/cars/:id", s.UpdateCarHandler())
	s.DELETE("/cars/:id", s.DeleteCarHandler())

	s.POST("/customers", s.CreateCustomerHandler())
	s.GET("/customers", s.ListCustomersHandler())
	s.GET("/customers/:id", s.GetCustomerHandler())
	s.PUT("/customers/:id", s.UpdateCustomerHandler())
	s.DELETE("/customers/:id", s.DeleteCustomerHandler())

	s.POST("/rentals", s.CreateRentalHandler())
	s.GET("/rentals", s.ListRentalsHandler())
	s.GET("/rentals/export", s.ExportRentalsHandler())
	s.GET("/rentals/search/filter", s.SearchRentalsHandler())
	s.GET("/rentals/:id", s.GetRentalHandler())
	s.PUT("/rentals/:id", s.UpdateRentalHandler())
	s.POST("/rentals/:id/complete", s.CompleteRentalHandler())
	s.POST("/rentals/:id/cancel", s.CancelRentalHandler())
	s.DELETE("/rentals/:id", s.DeleteRentalHandler())

	s.POST("/payments", s.CreatePaymentHandler())
	s.GET("/payments", s.ListPaymentsHandler())
	s.GET("/payments/rental/:rental_id", s.ListPaymentsByRentalHandler())
	s.GET("/payments/:id", s.GetPaymentHandler())
	s.PUT("/payments/:id", s.UpdatePaymentHandler())
	s.POST("/payments/:id/process", s.ProcessPaymentHandler())
	s.DELETE("/payments/:id", s.DeletePaymentHandler())

	s.POST("/maintenances", s.CreateMaintenanceHandler())
	s.GET("/maintenances", s.ListMaintenancesHandler())
	s.GET("/maintenances/car/:car_id", s.ListMaintenancesByCarHandler())
	s.GET("/maintenances/:id", s.GetMaintenanceHandler())
	s.PUT("/maintenances/:id", s.UpdateMaintenanceHandler())
	s.POST("/maintenances/:id/complete", s.CompleteMaintenanceHandler())
	s.DELETE("/maintenances/:id", s.DeleteMaintenanceHandler())
}
