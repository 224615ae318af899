package rentals

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/gdiniz/rental-cars/internal/errors"
	"github.com/gdiniz/rental-cars/internal/models"
)

type fakeRentalRepo struct {
	rentals map[int]*models.Rental
	cars    *fakeCarRepo
	nextId  int
}

func newFakeRentalRepo(cars *fakeCarRepo) *fakeRentalRepo {
	return &fakeRentalRepo{rentals: map[int]*models.Rental{}, cars: cars, nextId: 1}
}

func (r *fakeRentalRepo) Create(_ context.Context, rental *models.Rental) (*models.Rental, error) {
	stored := *rental
	stored.Id = r.nextId
	r.nextId++
	r.rentals[stored.Id] = &stored
	// the rental insert and the car reservation commit together
	if car, ok := r.cars.cars[stored.CarId]; ok {
		car.IsAvailable = false
	}
	return &stored, nil
}

func (r *fakeRentalRepo) GetByID(_ context.Context, id int) (*models.Rental, error) {
	rental, ok := r.rentals[id]
	if !ok {
		return nil, appErrors.NotFound("rental %d not found", id)
	}
	copied := *rental
	return &copied, nil
}

func (r *fakeRentalRepo) List(_ context.Context) ([]*models.Rental, error) {
	var out []*models.Rental
	for _, rental := range r.rentals {
		out = append(out, rental)
	}
	return out, nil
}

func (r *fakeRentalRepo) Search(_ context.Context, filter models.RentalFilter) ([]*models.Rental, error) {
	var out []*models.Rental
	for _, rental := range r.rentals {
		if filter.Status != "" && rental.Status != filter.Status {
			continue
		}
		if filter.CustomerId != nil && rental.CustomerId != *filter.CustomerId {
			continue
		}
		if filter.StartDate != nil && rental.StartDate.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && rental.EndDate.After(*filter.EndDate) {
			continue
		}
		out = append(out, rental)
	}
	return out, nil
}

func (r *fakeRentalRepo) Update(_ context.Context, rental *models.Rental) (*models.Rental, error) {
	if _, ok := r.rentals[rental.Id]; !ok {
		return nil, appErrors.NotFound("rental %d not found", rental.Id)
	}
	stored := *rental
	r.rentals[rental.Id] = &stored
	return &stored, nil
}

func (r *fakeRentalRepo) UpdateStatus(_ context.Context, id int, status models.RentalStatus) error {
	rental, ok := r.rentals[id]
	if !ok {
		return appErrors.NotFound("rental %d not found", id)
	}
	rental.Status = status
	return nil
}

func (r *fakeRentalRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.rentals[id]; !ok {
		return appErrors.NotFound("rental %d not found", id)
	}
	delete(r.rentals, id)
	return nil
}

type fakeCarRepo struct {
	cars map[int]*models.Car
}

func (r *fakeCarRepo) GetByID(_ context.Context, id int) (*models.Car, error) {
	car, ok := r.cars[id]
	if !ok {
		return nil, appErrors.NotFound("car %d not found", id)
	}
	return car, nil
}

func (r *fakeCarRepo) UpdateAvailability(_ context.Context, id int, available bool) error {
	car, ok := r.cars[id]
	if !ok {
		return appErrors.NotFound("car %d not found", id)
	}
	car.IsAvailable = available
	return nil
}

type fakeCarService struct{ err error }

func (s *fakeCarService) CheckAvailability(context.Context, int) error { return s.err }

type fakeCustomerService struct{ err error }

func (s *fakeCustomerService) CheckPaymentStatus(context.Context, int) error { return s.err }

func newTestUsecase(rate float64) (*RentalUsecase, *fakeRentalRepo, *fakeCarRepo) {
	carRepo := &fakeCarRepo{cars: map[int]*models.Car{
		1: {Id: 1, Brand: "Fiat", Model: "Uno", Year: 2020, LicensePlate: "ABC1234", DailyRate: rate, IsAvailable: true},
	}}
	rentalRepo := newFakeRentalRepo(carRepo)
	u := NewRentalUsecase(rentalRepo, carRepo, &fakeCarService{}, &fakeCustomerService{})
	return u, rentalRepo, carRepo
}

func tomorrow() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
}

func TestCalculateValue(t *testing.T) {
	u, _, _ := newTestUsecase(100)
	ctx := context.Background()
	start := tomorrow()

	cases := []struct {
		days     int
		expected float64
	}{
		{1, 100},
		{7, 700},     // no discount
		{8, 720},     // 10% off
		{14, 1260},   // 10% off
		{15, 1275},   // 15% off
		{29, 2465},   // 15% off
		{30, 2550},   // 15% off
		{31, 2480},   // 20% off
		{60, 4800},   // 20% off
	}

	for _, tc := range cases {
		end := start.AddDate(0, 0, tc.days)
		total, err := u.CalculateValue(ctx, 1, start, end)
		require.NoError(t, err, "days=%d", tc.days)
		assert.InDelta(t, tc.expected, total, 0.001, "days=%d", tc.days)
	}
}

func TestCalculateValueRounding(t *testing.T) {
	// 8 days at 33.33 with 10% off: 266.64 * 0.9 = 239.976 -> 239.98
	u, _, _ := newTestUsecase(33.33)
	start := tomorrow()
	end := start.AddDate(0, 0, 8)

	total, err := u.CalculateValue(context.Background(), 1, start, end)
	require.NoError(t, err)
	assert.InDelta(t, 239.98, total, 0.001)
}

func TestCalculateValueAcrossDSTTransition(t *testing.T) {
	u, _, _ := newTestUsecase(100)
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// clocks spring forward on 2027-03-14: the elapsed duration is an hour
	// short of ten full days, but the calendar span is still ten days
	start := time.Date(2027, 3, 10, 0, 0, 0, 0, loc)
	end := time.Date(2027, 3, 20, 0, 0, 0, 0, loc)

	total, err := u.CalculateValue(context.Background(), 1, start, end)
	require.NoError(t, err)
	assert.InDelta(t, 900.00, total, 0.001) // 10 days, 10% off
}

func TestCalculateValueTruncatesPartialDays(t *testing.T) {
	u, _, _ := newTestUsecase(100)
	start := tomorrow().Add(12 * time.Hour)
	end := start.Add(9*24*time.Hour + 18*time.Hour)

	total, err := u.CalculateValue(context.Background(), 1, start, end)
	require.NoError(t, err)
	assert.InDelta(t, 810.00, total, 0.001) // 9 full days, 10% off
}

func TestCalculateValueInvalidRange(t *testing.T) {
	u, _, _ := newTestUsecase(100)
	ctx := context.Background()
	start := tomorrow()

	_, err := u.CalculateValue(ctx, 1, start, start)
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindValidation))

	_, err = u.CalculateValue(ctx, 1, start.AddDate(0, 0, -5), start)
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindValidation))
}

func TestCalculateValueUnknownCar(t *testing.T) {
	u, _, _ := newTestUsecase(100)
	start := tomorrow()

	_, err := u.CalculateValue(context.Background(), 99, start, start.AddDate(0, 0, 3))
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindNotFound))
}

func TestCreateRental(t *testing.T) {
	u, repo, carRepo := newTestUsecase(100)
	start := tomorrow()
	end := start.AddDate(0, 0, 10)

	rental, err := u.Create(context.Background(), models.CreateRentalRequest{
		CustomerId: 7,
		CarId:      1,
		StartDate:  start.Format(time.RFC3339),
		EndDate:    end.Format(time.RFC3339),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, rental.Id)
	assert.Equal(t, 7, rental.CustomerId)
	assert.Equal(t, models.RentalStatusActive, rental.Status)
	assert.InDelta(t, 900.00, rental.TotalValue, 0.001) // 10 days, 10% off
	assert.Len(t, repo.rentals, 1)
	// creating the rental reserves the car
	assert.False(t, carRepo.cars[1].IsAvailable)
}

func TestCreateRentalBlockedByPendingPayment(t *testing.T) {
	carRepo := &fakeCarRepo{cars: map[int]*models.Car{1: {Id: 1, DailyRate: 100, IsAvailable: true}}}
	rentalRepo := newFakeRentalRepo(carRepo)
	customerSvc := &fakeCustomerService{err: appErrors.BusinessRule("customer has a pending payment on rental #3")}
	u := NewRentalUsecase(rentalRepo, carRepo, &fakeCarService{}, customerSvc)

	start := tomorrow()
	_, err := u.Create(context.Background(), models.CreateRentalRequest{
		CustomerId: 7,
		CarId:      1,
		StartDate:  start.Format(time.RFC3339),
		EndDate:    start.AddDate(0, 0, 5).Format(time.RFC3339),
	})
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindBusinessRule))
	assert.Empty(t, rentalRepo.rentals)
}

func TestCreateRentalBlockedByUnavailableCar(t *testing.T) {
	carRepo := &fakeCarRepo{cars: map[int]*models.Car{1: {Id: 1, DailyRate: 100}}}
	rentalRepo := newFakeRentalRepo(carRepo)
	carSvc := &fakeCarService{err: appErrors.BusinessRule("car is not available for rental")}
	u := NewRentalUsecase(rentalRepo, carRepo, carSvc, &fakeCustomerService{})

	start := tomorrow()
	_, err := u.Create(context.Background(), models.CreateRentalRequest{
		CustomerId: 7,
		CarId:      1,
		StartDate:  start.Format(time.RFC3339),
		EndDate:    start.AddDate(0, 0, 5).Format(time.RFC3339),
	})
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindBusinessRule))
	assert.Empty(t, rentalRepo.rentals)
}

func TestCompleteRental(t *testing.T) {
	u, _, carRepo := newTestUsecase(100)
	ctx := context.Background()
	start := tomorrow()

	rental, err := u.Create(ctx, models.CreateRentalRequest{
		CustomerId: 7,
		CarId:      1,
		StartDate:  start.Format(time.RFC3339),
		EndDate:    start.AddDate(0, 0, 5).Format(time.RFC3339),
	})
	require.NoError(t, err)

	require.False(t, carRepo.cars[1].IsAvailable)

	completed, err := u.Complete(ctx, rental.Id)
	require.NoError(t, err)
	assert.Equal(t, models.RentalStatusCompleted, completed.Status)
	assert.True(t, carRepo.cars[1].IsAvailable)

	// already completed
	_, err = u.Complete(ctx, rental.Id)
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindBusinessRule))
}

func TestCancelRental(t *testing.T) {
	u, _, carRepo := newTestUsecase(100)
	ctx := context.Background()
	start := tomorrow()

	rental, err := u.Create(ctx, models.CreateRentalRequest{
		CustomerId: 7,
		CarId:      1,
		StartDate:  start.Format(time.RFC3339),
		EndDate:    start.AddDate(0, 0, 5).Format(time.RFC3339),
	})
	require.NoError(t, err)

	require.False(t, carRepo.cars[1].IsAvailable)

	cancelled, err := u.Cancel(ctx, rental.Id)
	require.NoError(t, err)
	assert.Equal(t, models.RentalStatusCancelled, cancelled.Status)
	assert.True(t, carRepo.cars[1].IsAvailable)

	_, err = u.Cancel(ctx, rental.Id)
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindBusinessRule))
}

func TestUpdateRentalRecomputesTotal(t *testing.T) {
	u, _, _ := newTestUsecase(100)
	ctx := context.Background()
	start := tomorrow()

	rental, err := u.Create(ctx, models.CreateRentalRequest{
		CustomerId: 7,
		CarId:      1,
		StartDate:  start.Format(time.RFC3339),
		EndDate:    start.AddDate(0, 0, 5).Format(time.RFC3339),
	})
	require.NoError(t, err)
	assert.InDelta(t, 500.00, rental.TotalValue, 0.001)

	newEnd := start.AddDate(0, 0, 15).Format(time.RFC3339)
	updated, err := u.Update(ctx, rental.Id, models.UpdateRentalRequest{EndDate: &newEnd})
	require.NoError(t, err)
	assert.InDelta(t, 1275.00, updated.TotalValue, 0.001) // 15 days, 15% off
}

func TestUpdateRentalStatusOnly(t *testing.T) {
	u, _, _ := newTestUsecase(100)
	ctx := context.Background()
	start := tomorrow()

	rental, err := u.Create(ctx, models.CreateRentalRequest{
		CustomerId: 7,
		CarId:      1,
		StartDate:  start.Format(time.RFC3339),
		EndDate:    start.AddDate(0, 0, 5).Format(time.RFC3339),
	})
	require.NoError(t, err)

	completed := models.RentalStatusCompleted
	updated, err := u.Update(ctx, rental.Id, models.UpdateRentalRequest{Status: &completed})
	require.NoError(t, err)
	assert.Equal(t, models.RentalStatusCompleted, updated.Status)
	assert.InDelta(t, 500.00, updated.TotalValue, 0.001) // unchanged
}

func TestSearchRentalsDateBounds(t *testing.T) {
	u, _, _ := newTestUsecase(100)
	ctx := context.Background()
	base := tomorrow()

	// three 5-day rentals starting 0, 10 and 20 days out
	for _, offset := range []int{0, 10, 20} {
		start := base.AddDate(0, 0, offset)
		_, err := u.Create(ctx, models.CreateRentalRequest{
			CustomerId: 7,
			CarId:      1,
			StartDate:  start.Format(time.RFC3339),
			EndDate:    start.AddDate(0, 0, 5).Format(time.RFC3339),
		})
		require.NoError(t, err)
	}

	from := base.AddDate(0, 0, 9)
	to := base.AddDate(0, 0, 17)
	results, err := u.Search(ctx, models.RentalFilter{StartDate: &from, EndDate: &to})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 2, results[0].Id)

	// lower bound only
	results, err = u.Search(ctx, models.RentalFilter{StartDate: &from})
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestDeleteRental(t *testing.T) {
	u, repo, _ := newTestUsecase(100)
	ctx := context.Background()
	start := tomorrow()

	rental, err := u.Create(ctx, models.CreateRentalRequest{
		CustomerId: 7,
		CarId:      1,
		StartDate:  start.Format(time.RFC3339),
		EndDate:    start.AddDate(0, 0, 3).Format(time.RFC3339),
	})
	require.NoError(t, err)

	require.NoError(t, u.Delete(ctx, rental.Id))
	assert.Empty(t, repo.rentals)

	err = u.Delete(ctx, rental.Id)
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindNotFound))
}
