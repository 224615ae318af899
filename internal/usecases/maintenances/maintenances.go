package maintenances

import (
	"context"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/gdiniz/rental-cars/internal/errors"
	"github.com/gdiniz/rental-cars/internal/models"
	"github.com/gdiniz/rental-cars/internal/validation"
)

type MaintenanceRepository interface {
	Create(ctx context.Context, maintenance *models.Maintenance) (*models.Maintenance, error)
	GetByID(ctx context.Context, id int) (*models.Maintenance, error)
	List(ctx context.Context) ([]*models.Maintenance, error)
	ListByCar(ctx context.Context, carId int) ([]*models.Maintenance, error)
	CountActiveByCar(ctx context.Context, carId int) (int, error)
	Update(ctx context.Context, maintenance *models.Maintenance) (*models.Maintenance, error)
	UpdateStatus(ctx context.Context, id int, status models.MaintenanceStatus) error
	Delete(ctx context.Context, id int) error
}

type CarRepository interface {
	GetByID(ctx context.Context, id int) (*models.Car, error)
	UpdateAvailability(ctx context.Context, id int, available bool) error
}

type MaintenanceUsecase struct {
	repo MaintenanceRepository
	cars CarRepository
}

func NewMaintenanceUsecase(repo MaintenanceRepository, cars CarRepository) *MaintenanceUsecase {
	return &MaintenanceUsecase{repo: repo, cars: cars}
}

func validStatus(status models.MaintenanceStatus) bool {
	switch status {
	case models.MaintenanceStatusScheduled, models.MaintenanceStatusInProgress, models.MaintenanceStatusCompleted:
		return true
	}
	return false
}

// Create schedules a maintenance. A scheduled or in-progress maintenance
// takes the car off the rental fleet.
func (u *MaintenanceUsecase) Create(ctx context.Context, req models.CreateMaintenanceRequest) (*models.Maintenance, error) {
	if _, err := u.cars.GetByID(ctx, req.CarId); err != nil {
		return nil, err
	}
	if err := validation.PositiveNumber(req.Cost, "maintenance cost"); err != nil {
		return nil, err
	}

	maintenanceDate := time.Now()
	if req.MaintenanceDate != nil {
		var err error
		if maintenanceDate, err = validation.ParseDate(*req.MaintenanceDate); err != nil {
			return nil, err
		}
	}

	status := models.MaintenanceStatusScheduled
	if req.Status != nil {
		if !validStatus(*req.Status) {
			return nil, appErrors.Validation("invalid maintenance status, options: scheduled, in_progress, completed")
		}
		status = *req.Status
	}

	maintenance := &models.Maintenance{
		CarId:           req.CarId,
		Description:     req.Description,
		MaintenanceDate: maintenanceDate,
		Cost:            req.Cost,
		Status:          status,
	}

	created, err := u.repo.Create(ctx, maintenance)
	if err != nil {
		return nil, err
	}

	if created.Status == models.MaintenanceStatusScheduled || created.Status == models.MaintenanceStatusInProgress {
		if err := u.cars.UpdateAvailability(ctx, req.CarId, false); err != nil {
			return nil, err
		}
	}

	zap.S().Infof("maintenance created: id=%d car=%d", created.Id, created.CarId)
	return created, nil
}

func (u *MaintenanceUsecase) Get(ctx context.Context, id int) (*models.Maintenance, error) {
	return u.repo.GetByID(ctx, id)
}

func (u *MaintenanceUsecase) List(ctx context.Context) ([]*models.Maintenance, error) {
	return u.repo.List(ctx)
}

func (u *MaintenanceUsecase) ListByCar(ctx context.Context, carId int) ([]*models.Maintenance, error) {
	return u.repo.ListByCar(ctx, carId)
}

func (u *MaintenanceUsecase) Update(ctx context.Context, id int, req models.UpdateMaintenanceRequest) (*models.Maintenance, error) {
	maintenance, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Cost != nil {
		if err := validation.PositiveNumber(*req.Cost, "maintenance cost"); err != nil {
			return nil, err
		}
		maintenance.Cost = *req.Cost
	}
	if req.Description != nil {
		maintenance.Description = *req.Description
	}
	if req.MaintenanceDate != nil {
		date, err := validation.ParseDate(*req.MaintenanceDate)
		if err != nil {
			return nil, err
		}
		maintenance.MaintenanceDate = date
	}
	if req.Status != nil {
		if !validStatus(*req.Status) {
			return nil, appErrors.Validation("invalid maintenance status, options: scheduled, in_progress, completed")
		}
		maintenance.Status = *req.Status
	}

	return u.repo.Update(ctx, maintenance)
}

// Complete finishes a maintenance. The car becomes available again only
// when no other maintenance is still active for it.
func (u *MaintenanceUsecase) Complete(ctx context.Context, id int) (*models.Maintenance, error) {
	maintenance, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if maintenance.Status == models.MaintenanceStatusCompleted {
		return nil, appErrors.BusinessRule("maintenance already completed")
	}

	if err := u.repo.UpdateStatus(ctx, id, models.MaintenanceStatusCompleted); err != nil {
		return nil, err
	}

	active, err := u.repo.CountActiveByCar(ctx, maintenance.CarId)
	if err != nil {
		return nil, err
	}
	if active == 0 {
		if err := u.cars.UpdateAvailability(ctx, maintenance.CarId, true); err != nil {
			return nil, err
		}
	}

	zap.S().Infof("maintenance completed: id=%d", id)
	return u.repo.GetByID(ctx, id)
}

func (u *MaintenanceUsecase) Delete(ctx context.Context, id int) error {
	return u.repo.Delete(ctx, id)
}
