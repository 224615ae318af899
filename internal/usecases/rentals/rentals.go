package rentals

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appErrors "github.com/gdiniz/rental-cars/internal/errors"
	"github.com/gdiniz/rental-cars/internal/models"
	"github.com/gdiniz/rental-cars/internal/validation"
)

type RentalRepository interface {
	Create(ctx context.Context, rental *models.Rental) (*models.Rental, error)
	GetByID(ctx context.Context, id int) (*models.Rental, error)
	List(ctx context.Context) ([]*models.Rental, error)
	Search(ctx context.Context, filter models.RentalFilter) ([]*models.Rental, error)
	Update(ctx context.Context, rental *models.Rental) (*models.Rental, error)
	UpdateStatus(ctx context.Context, id int, status models.RentalStatus) error
	Delete(ctx context.Context, id int) error
}

type CarRepository interface {
	GetByID(ctx context.Context, id int) (*models.Car, error)
	UpdateAvailability(ctx context.Context, id int, available bool) error
}

// CarService gates rental creation on car availability.
type CarService interface {
	CheckAvailability(ctx context.Context, id int) error
}

// CustomerService gates rental creation on the customer's payment standing.
type CustomerService interface {
	CheckPaymentStatus(ctx context.Context, customerId int) error
}

type RentalUsecase struct {
	repo      RentalRepository
	cars      CarRepository
	carSvc    CarService
	customers CustomerService
}

func NewRentalUsecase(repo RentalRepository, cars CarRepository, carSvc CarService, customers CustomerService) *RentalUsecase {
	return &RentalUsecase{repo: repo, cars: cars, carSvc: carSvc, customers: customers}
}

// CalculateValue prices a rental with the progressive discount:
// up to 7 days full price, 8-14 days 10% off, 15-30 days 15% off,
// above 30 days 20% off. The total is rounded to 2 decimal places,
// half away from zero.
func (u *RentalUsecase) CalculateValue(ctx context.Context, carId int, start, end time.Time) (float64, error) {
	if err := validation.DateRange(start, end); err != nil {
		return 0, err
	}

	car, err := u.cars.GetByID(ctx, carId)
	if err != nil {
		return 0, err
	}

	days := wholeDays(start, end)
	if days <= 0 {
		return 0, appErrors.Validation("rental period must be at least one day")
	}

	var discount decimal.Decimal
	switch {
	case days > 30:
		discount = decimal.NewFromFloat(0.20)
	case days >= 15:
		discount = decimal.NewFromFloat(0.15)
	case days >= 8:
		discount = decimal.NewFromFloat(0.10)
	}

	base := decimal.NewFromFloat(car.DailyRate).Mul(decimal.NewFromInt(int64(days)))
	total := base.Mul(decimal.NewFromInt(1).Sub(discount)).Round(2)

	return total.InexactFloat64(), nil
}

// wholeDays is the day span between the two dates, truncated. The arithmetic
// runs on the calendar fields rather than elapsed wall-clock time, so a
// daylight saving shift inside the range cannot shave a day off.
func wholeDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), start.Hour(), start.Minute(), start.Second(), 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), end.Hour(), end.Minute(), end.Second(), 0, time.UTC)
	return int(e.Sub(s) / (24 * time.Hour))
}

// Create runs the business gates in order: the customer must have no
// pending payment, the car must be available, the dates must be valid.
// Only then is the rental persisted (active) and the car reserved.
func (u *RentalUsecase) Create(ctx context.Context, req models.CreateRentalRequest) (*models.Rental, error) {
	if err := u.customers.CheckPaymentStatus(ctx, req.CustomerId); err != nil {
		return nil, err
	}
	if err := u.carSvc.CheckAvailability(ctx, req.CarId); err != nil {
		return nil, err
	}

	start, err := validation.ParseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := validation.ParseDate(req.EndDate)
	if err != nil {
		return nil, err
	}

	total, err := u.CalculateValue(ctx, req.CarId, start, end)
	if err != nil {
		return nil, err
	}

	rental := &models.Rental{
		CustomerId: req.CustomerId,
		CarId:      req.CarId,
		StartDate:  start,
		EndDate:    end,
		TotalValue: total,
		Status:     models.RentalStatusActive,
	}

	created, err := u.repo.Create(ctx, rental)
	if err != nil {
		return nil, err
	}

	zap.S().Infof("rental created: id=%d customer=%d car=%d total=%.2f",
		created.Id, created.CustomerId, created.CarId, created.TotalValue)
	return created, nil
}

func (u *RentalUsecase) Get(ctx context.Context, id int) (*models.Rental, error) {
	return u.repo.GetByID(ctx, id)
}

func (u *RentalUsecase) List(ctx context.Context) ([]*models.Rental, error) {
	return u.repo.List(ctx)
}

func (u *RentalUsecase) Search(ctx context.Context, filter models.RentalFilter) ([]*models.Rental, error) {
	return u.repo.Search(ctx, filter)
}

// Update applies only the supplied fields. A change to either date
// recomputes the total against the resulting range.
func (u *RentalUsecase) Update(ctx context.Context, id int, req models.UpdateRentalRequest) (*models.Rental, error) {
	rental, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.StartDate != nil || req.EndDate != nil {
		start := rental.StartDate
		end := rental.EndDate

		if req.StartDate != nil {
			if start, err = validation.ParseDate(*req.StartDate); err != nil {
				return nil, err
			}
		}
		if req.EndDate != nil {
			if end, err = validation.ParseDate(*req.EndDate); err != nil {
				return nil, err
			}
		}

		total, err := u.CalculateValue(ctx, rental.CarId, start, end)
		if err != nil {
			return nil, err
		}

		rental.StartDate = start
		rental.EndDate = end
		rental.TotalValue = total
	}

	if req.Status != nil {
		rental.Status = *req.Status
	}

	return u.repo.Update(ctx, rental)
}

// Complete finishes an active rental and frees the car.
func (u *RentalUsecase) Complete(ctx context.Context, id int) (*models.Rental, error) {
	return u.transition(ctx, id, models.RentalStatusCompleted, "only active rentals can be completed")
}

// Cancel aborts an active rental and frees the car.
func (u *RentalUsecase) Cancel(ctx context.Context, id int) (*models.Rental, error) {
	return u.transition(ctx, id, models.RentalStatusCancelled, "only active rentals can be cancelled")
}

func (u *RentalUsecase) transition(ctx context.Context, id int, to models.RentalStatus, denied string) (*models.Rental, error) {
	rental, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if rental.Status != models.RentalStatusActive {
		return nil, appErrors.BusinessRule(denied)
	}

	if err := u.repo.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}
	if err := u.cars.UpdateAvailability(ctx, rental.CarId, true); err != nil {
		return nil, err
	}

	zap.S().Infof("rental %d transitioned to %s", id, to)
	return u.repo.GetByID(ctx, id)
}

func (u *RentalUsecase) Delete(ctx context.Context, id int) error {
	return u.repo.Delete(ctx, id)
}
