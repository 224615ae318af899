package customers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/gdiniz/rental-cars/internal/errors"
	"github.com/gdiniz/rental-cars/internal/models"
)

type fakeCustomerRepo struct {
	customers map[int]*models.Customer
	nextId    int
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: map[int]*models.Customer{}, nextId: 1}
}

func (r *fakeCustomerRepo) Create(_ context.Context, customer *models.Customer) (*models.Customer, error) {
	stored := *customer
	stored.Id = r.nextId
	r.nextId++
	r.customers[stored.Id] = &stored
	return &stored, nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id int) (*models.Customer, error) {
	customer, ok := r.customers[id]
	if !ok {
		return nil, appErrors.NotFound("customer %d not found", id)
	}
	copied := *customer
	return &copied, nil
}

func (r *fakeCustomerRepo) GetByCPF(_ context.Context, cpf string) (*models.Customer, error) {
	for _, customer := range r.customers {
		if customer.CPF == cpf {
			return customer, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) GetByEmail(_ context.Context, email string) (*models.Customer, error) {
	for _, customer := range r.customers {
		if customer.Email == email {
			return customer, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) List(_ context.Context) ([]*models.Customer, error) {
	var out []*models.Customer
	for _, customer := range r.customers {
		out = append(out, customer)
	}
	return out, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, customer *models.Customer) (*models.Customer, error) {
	if _, ok := r.customers[customer.Id]; !ok {
		return nil, appErrors.NotFound("customer %d not found", customer.Id)
	}
	stored := *customer
	r.customers[customer.Id] = &stored
	return &stored, nil
}

func (r *fakeCustomerRepo) UpdatePendingPayment(_ context.Context, id int, pending bool) error {
	customer, ok := r.customers[id]
	if !ok {
		return appErrors.NotFound("customer %d not found", id)
	}
	customer.HasPendingPayment = pending
	return nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.customers[id]; !ok {
		return appErrors.NotFound("customer %d not found", id)
	}
	delete(r.customers, id)
	return nil
}

type fakeRentalRepo struct {
	byCustomer map[int][]*models.Rental
}

func (r *fakeRentalRepo) ListByCustomer(_ context.Context, customerId int) ([]*models.Rental, error) {
	return r.byCustomer[customerId], nil
}

type fakePaymentRepo struct {
	pendingByRental map[int]bool
}

func (r *fakePaymentRepo) HasPendingByRental(_ context.Context, rentalId int) (bool, error) {
	return r.pendingByRental[rentalId], nil
}

func newTestUsecase() (*CustomerUsecase, *fakeCustomerRepo, *fakeRentalRepo, *fakePaymentRepo) {
	repo := newFakeCustomerRepo()
	rentals := &fakeRentalRepo{byCustomer: map[int][]*models.Rental{}}
	payments := &fakePaymentRepo{pendingByRental: map[int]bool{}}
	return NewCustomerUsecase(repo, rentals, payments), repo, rentals, payments
}

var validRequest = models.CreateCustomerRequest{
	Name:  "Maria Silva",
	CPF:   "52998224725",
	Phone: "11987654321",
	Email: "maria@example.com",
}

func TestCreateCustomer(t *testing.T) {
	u, repo, _, _ := newTestUsecase()

	customer, err := u.Create(context.Background(), validRequest)
	require.NoError(t, err)

	assert.Equal(t, 1, customer.Id)
	assert.Equal(t, "Maria Silva", customer.Name)
	assert.False(t, customer.HasPendingPayment)
	assert.Len(t, repo.customers, 1)
}

func TestCreateCustomerValidation(t *testing.T) {
	u, _, _, _ := newTestUsecase()
	ctx := context.Background()

	cases := []struct {
		name string
		req  models.CreateCustomerRequest
	}{
		{"bad cpf", models.CreateCustomerRequest{Name: "X", CPF: "12345678901", Phone: "11987654321", Email: "x@example.com"}},
		{"bad email", models.CreateCustomerRequest{Name: "X", CPF: "52998224725", Phone: "11987654321", Email: "not-an-email"}},
		{"bad phone", models.CreateCustomerRequest{Name: "X", CPF: "52998224725", Phone: "123", Email: "x@example.com"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := u.Create(ctx, tc.req)
			require.Error(t, err)
			assert.True(t, appErrors.IsKind(err, appErrors.KindValidation))
		})
	}
}

func TestCreateCustomerDuplicates(t *testing.T) {
	u, _, _, _ := newTestUsecase()
	ctx := context.Background()

	_, err := u.Create(ctx, validRequest)
	require.NoError(t, err)

	_, err = u.Create(ctx, validRequest)
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindBusinessRule))
	assert.Contains(t, err.Error(), "cpf already registered")

	other := validRequest
	other.CPF = "11144477735"
	_, err = u.Create(ctx, other)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email already registered")
}

func TestUpdateCustomer(t *testing.T) {
	u, _, _, _ := newTestUsecase()
	ctx := context.Background()

	customer, err := u.Create(ctx, validRequest)
	require.NoError(t, err)

	name := "Maria Souza"
	phone := "(11) 91234-5678"
	updated, err := u.Update(ctx, customer.Id, models.UpdateCustomerRequest{Name: &name, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Maria Souza", updated.Name)
	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, validRequest.CPF, updated.CPF)

	badCPF := "11111111111"
	_, err = u.Update(ctx, customer.Id, models.UpdateCustomerRequest{CPF: &badCPF})
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindValidation))
}

func TestUpdateCustomerDuplicateEmail(t *testing.T) {
	u, _, _, _ := newTestUsecase()
	ctx := context.Background()

	first, err := u.Create(ctx, validRequest)
	require.NoError(t, err)

	second := validRequest
	second.CPF = "11144477735"
	second.Email = "other@example.com"
	_, err = u.Create(ctx, second)
	require.NoError(t, err)

	taken := "other@example.com"
	_, err = u.Update(ctx, first.Id, models.UpdateCustomerRequest{Email: &taken})
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindBusinessRule))
}

func TestCheckPaymentStatus(t *testing.T) {
	u, repo, rentals, payments := newTestUsecase()
	ctx := context.Background()

	customer, err := u.Create(ctx, validRequest)
	require.NoError(t, err)

	rentals.byCustomer[customer.Id] = []*models.Rental{
		{Id: 10, CustomerId: customer.Id},
		{Id: 11, CustomerId: customer.Id},
	}

	// no pending payments: flag cleared, no error
	require.NoError(t, u.CheckPaymentStatus(ctx, customer.Id))
	assert.False(t, repo.customers[customer.Id].HasPendingPayment)

	// a pending payment on the second rental: flag set, error names the rental
	payments.pendingByRental[11] = true
	err = u.CheckPaymentStatus(ctx, customer.Id)
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindBusinessRule))
	assert.Contains(t, err.Error(), "rental #11")
	assert.True(t, repo.customers[customer.Id].HasPendingPayment)

	// payment settled: flag cleared again
	payments.pendingByRental[11] = false
	require.NoError(t, u.CheckPaymentStatus(ctx, customer.Id))
	assert.False(t, repo.customers[customer.Id].HasPendingPayment)
}

func TestDeleteCustomer(t *testing.T) {
	u, repo, _, _ := newTestUsecase()
	ctx := context.Background()

	customer, err := u.Create(ctx, validRequest)
	require.NoError(t, err)

	require.NoError(t, u.Delete(ctx, customer.Id))
	assert.Empty(t, repo.customers)

	err = u.Delete(ctx, customer.Id)
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindNotFound))
}
