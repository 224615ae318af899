package customers

import (
	"context"

	"go.uber.org/zap"

	appErrors "github.com/gdiniz/rental-cars/internal/errors"
	"github.com/gdiniz/rental-cars/internal/models"
	"github.com/gdiniz/rental-cars/internal/validation"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	GetByID(ctx context.Context, id int) (*models.Customer, error)
	GetByCPF(ctx context.Context, cpf string) (*models.Customer, error)
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)
	List(ctx context.Context) ([]*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	UpdatePendingPayment(ctx context.Context, id int, pending bool) error
	Delete(ctx context.Context, id int) error
}

type RentalRepository interface {
	ListByCustomer(ctx context.Context, customerId int) ([]*models.Rental, error)
}

type PaymentRepository interface {
	HasPendingByRental(ctx context.Context, rentalId int) (bool, error)
}

type CustomerUsecase struct {
	repo     CustomerRepository
	rentals  RentalRepository
	payments PaymentRepository
}

func NewCustomerUsecase(repo CustomerRepository, rentals RentalRepository, payments PaymentRepository) *CustomerUsecase {
	return &CustomerUsecase{repo: repo, rentals: rentals, payments: payments}
}

func (u *CustomerUsecase) Create(ctx context.Context, req models.CreateCustomerRequest) (*models.Customer, error) {
	if err := validation.CPF(req.CPF); err != nil {
		return nil, err
	}
	if err := validation.Email(req.Email); err != nil {
		return nil, err
	}
	if err := validation.Phone(req.Phone); err != nil {
		return nil, err
	}

	existing, err := u.repo.GetByCPF(ctx, req.CPF)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, appErrors.BusinessRule("cpf already registered")
	}

	existing, err = u.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, appErrors.BusinessRule("email already registered")
	}

	customer := &models.Customer{
		Name:  req.Name,
		CPF:   req.CPF,
		Phone: req.Phone,
		Email: req.Email,
	}

	created, err := u.repo.Create(ctx, customer)
	if err != nil {
		return nil, err
	}

	zap.S().Infof("customer created: id=%d", created.Id)
	return created, nil
}

func (u *CustomerUsecase) Get(ctx context.Context, id int) (*models.Customer, error) {
	return u.repo.GetByID(ctx, id)
}

func (u *CustomerUsecase) List(ctx context.Context) ([]*models.Customer, error) {
	return u.repo.List(ctx)
}

func (u *CustomerUsecase) Update(ctx context.Context, id int, req models.UpdateCustomerRequest) (*models.Customer, error) {
	customer, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CPF != nil && *req.CPF != customer.CPF {
		if err := validation.CPF(*req.CPF); err != nil {
			return nil, err
		}
		existing, err := u.repo.GetByCPF(ctx, *req.CPF)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, appErrors.BusinessRule("cpf already registered")
		}
		customer.CPF = *req.CPF
	}
	if req.Email != nil && *req.Email != customer.Email {
		if err := validation.Email(*req.Email); err != nil {
			return nil, err
		}
		existing, err := u.repo.GetByEmail(ctx, *req.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, appErrors.BusinessRule("email already registered")
		}
		customer.Email = *req.Email
	}
	if req.Phone != nil {
		if err := validation.Phone(*req.Phone); err != nil {
			return nil, err
		}
		customer.Phone = *req.Phone
	}
	if req.Name != nil {
		customer.Name = *req.Name
	}

	return u.repo.Update(ctx, customer)
}

func (u *CustomerUsecase) Delete(ctx context.Context, id int) error {
	return u.repo.Delete(ctx, id)
}

// CheckPaymentStatus rescans the customer's rentals for pending payments
// and persists the recomputed has_pending_payment flag on both outcomes.
// It fails naming the first rental found with a pending payment.
func (u *CustomerUsecase) CheckPaymentStatus(ctx context.Context, customerId int) error {
	rentals, err := u.rentals.ListByCustomer(ctx, customerId)
	if err != nil {
		return err
	}

	for _, rental := range rentals {
		pending, err := u.payments.HasPendingByRental(ctx, rental.Id)
		if err != nil {
			return err
		}
		if pending {
			if err := u.repo.UpdatePendingPayment(ctx, customerId, true); err != nil {
				return err
			}
			return appErrors.BusinessRule("customer has a pending payment on rental #%d", rental.Id)
		}
	}

	return u.repo.UpdatePendingPayment(ctx, customerId, false)
}
