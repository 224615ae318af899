package cars

import (
	"context"

	"go.uber.org/zap"

	appErrors "github.com/gdiniz/rental-cars/internal/errors"
	"github.com/gdiniz/rental-cars/internal/models"
	"github.com/gdiniz/rental-cars/internal/validation"
)

type CarRepository interface {
	Create(ctx context.Context, car *models.Car) (*models.Car, error)
	GetByID(ctx context.Context, id int) (*models.Car, error)
	GetByPlate(ctx context.Context, plate string) (*models.Car, error)
	List(ctx context.Context) ([]*models.Car, error)
	ListAvailable(ctx context.Context, filter models.AvailableCarFilter) ([]*models.Car, error)
	Update(ctx context.Context, car *models.Car) (*models.Car, error)
	UpdateAvailability(ctx context.Context, id int, available bool) error
	Delete(ctx context.Context, id int) error
}

type MaintenanceRepository interface {
	CountActiveByCar(ctx context.Context, carId int) (int, error)
}

type CarUsecase struct {
	repo         CarRepository
	maintenances MaintenanceRepository
}

func NewCarUsecase(repo CarRepository, maintenances MaintenanceRepository) *CarUsecase {
	return &CarUsecase{repo: repo, maintenances: maintenances}
}

func (u *CarUsecase) Create(ctx context.Context, req models.CreateCarRequest) (*models.Car, error) {
	if err := validation.LicensePlate(req.LicensePlate); err != nil {
		return nil, err
	}
	if err := validation.PositiveNumber(req.DailyRate, "daily rate"); err != nil {
		return nil, err
	}
	if err := validation.Year(req.Year); err != nil {
		return nil, err
	}

	existing, err := u.repo.GetByPlate(ctx, req.LicensePlate)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, appErrors.BusinessRule("license plate already registered")
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	car := &models.Car{
		Brand:        req.Brand,
		Model:        req.Model,
		Year:         req.Year,
		LicensePlate: req.LicensePlate,
		DailyRate:    req.DailyRate,
		IsAvailable:  available,
	}

	created, err := u.repo.Create(ctx, car)
	if err != nil {
		return nil, err
	}

	zap.S().Infof("car created: id=%d plate=%s", created.Id, created.LicensePlate)
	return created, nil
}

func (u *CarUsecase) Get(ctx context.Context, id int) (*models.Car, error) {
	return u.repo.GetByID(ctx, id)
}

func (u *CarUsecase) List(ctx context.Context) ([]*models.Car, error) {
	return u.repo.List(ctx)
}

func (u *CarUsecase) ListAvailable(ctx context.Context, filter models.AvailableCarFilter) ([]*models.Car, error) {
	return u.repo.ListAvailable(ctx, filter)
}

// Update applies only the fields present in the patch, re-validating any
// changed plate, rate or year. The duplicate-plate check runs only when the
// plate actually changes.
func (u *CarUsecase) Update(ctx context.Context, id int, req models.UpdateCarRequest) (*models.Car, error) {
	car, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.LicensePlate != nil && *req.LicensePlate != car.LicensePlate {
		if err := validation.LicensePlate(*req.LicensePlate); err != nil {
			return nil, err
		}
		existing, err := u.repo.GetByPlate(ctx, *req.LicensePlate)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, appErrors.BusinessRule("license plate already registered")
		}
		car.LicensePlate = *req.LicensePlate
	}
	if req.DailyRate != nil {
		if err := validation.PositiveNumber(*req.DailyRate, "daily rate"); err != nil {
			return nil, err
		}
		car.DailyRate = *req.DailyRate
	}
	if req.Year != nil {
		if err := validation.Year(*req.Year); err != nil {
			return nil, err
		}
		car.Year = *req.Year
	}
	if req.Brand != nil {
		car.Brand = *req.Brand
	}
	if req.Model != nil {
		car.Model = *req.Model
	}
	if req.IsAvailable != nil {
		car.IsAvailable = *req.IsAvailable
	}

	return u.repo.Update(ctx, car)
}

func (u *CarUsecase) Delete(ctx context.Context, id int) error {
	return u.repo.Delete(ctx, id)
}

// CheckAvailability is a pure gate: it fails when the car is flagged
// unavailable or has a scheduled/in-progress maintenance, and has no side
// effect otherwise.
func (u *CarUsecase) CheckAvailability(ctx context.Context, id int) error {
	car, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !car.IsAvailable {
		return appErrors.BusinessRule("car is not available for rental")
	}

	active, err := u.maintenances.CountActiveByCar(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return appErrors.BusinessRule("car has scheduled or ongoing maintenance")
	}

	return nil
}
