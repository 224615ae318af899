package main

import (
	"context"
	"fmt"

	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"

	"github.com/gdiniz/rental-cars/internal/config"
	"github.com/gdiniz/rental-cars/internal/database/connection"
	"github.com/gdiniz/rental-cars/internal/database/repository"
	"github.com/gdiniz/rental-cars/internal/server"
	"github.com/gdiniz/rental-cars/internal/usecases/cars"
	"github.com/gdiniz/rental-cars/internal/usecases/customers"
	"github.com/gdiniz/rental-cars/internal/usecases/maintenances"
	"github.com/gdiniz/rental-cars/internal/usecases/payments"
	"github.com/gdiniz/rental-cars/internal/usecases/rentals"
)

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()

	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg.Level = lvl

	return cfg.Build()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	dbConn, err := connection.NewDBConn(cfg.DatabaseURL)
	if err != nil {
		zap.S().Fatalf("could not connect to database: %v", err)
	}
	defer dbConn.Close()

	if err := dbConn.InitSchema(context.Background()); err != nil {
		zap.S().Fatalf("could not initialize schema: %v", err)
	}

	carsRepo := repository.NewCars(dbConn)
	customersRepo := repository.NewCustomers(dbConn)
	rentalsRepo := repository.NewRentals(dbConn)
	paymentsRepo := repository.NewPayments(dbConn)
	maintenancesRepo := repository.NewMaintenances(dbConn)

	carsUsecase := cars.NewCarUsecase(carsRepo, maintenancesRepo)
	customersUsecase := customers.NewCustomerUsecase(customersRepo, rentalsRepo, paymentsRepo)
	rentalsUsecase := rentals.NewRentalUsecase(rentalsRepo, carsRepo, carsUsecase, customersUsecase)
	paymentsUsecase := payments.NewPaymentUsecase(paymentsRepo, rentalsRepo, customersRepo)
	maintenancesUsecase := maintenances.NewMaintenanceUsecase(maintenancesRepo, carsRepo)

	s := server.NewServer(carsUsecase, customersUsecase, rentalsUsecase, paymentsUsecase, maintenancesUsecase)

	zap.S().Infof("starting server on %s", cfg.BindAddr())
	s.Logger.Fatal(s.Start(cfg.BindAddr()))
}
