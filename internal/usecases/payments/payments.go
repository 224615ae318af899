package payments

import (
	"context"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/gdiniz/rental-cars/internal/errors"
	"github.com/gdiniz/rental-cars/internal/models"
	"github.com/gdiniz/rental-cars/internal/validation"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) (*models.Payment, error)
	GetByID(ctx context.Context, id int) (*models.Payment, error)
	List(ctx context.Context) ([]*models.Payment, error)
	ListByRental(ctx context.Context, rentalId int) ([]*models.Payment, error)
	HasPendingByRental(ctx context.Context, rentalId int) (bool, error)
	Update(ctx context.Context, payment *models.Payment) (*models.Payment, error)
	UpdateStatus(ctx context.Context, id int, status models.PaymentStatus) error
	Delete(ctx context.Context, id int) error
}

type RentalRepository interface {
	GetByID(ctx context.Context, id int) (*models.Rental, error)
	ListByCustomer(ctx context.Context, customerId int) ([]*models.Rental, error)
}

type CustomerRepository interface {
	UpdatePendingPayment(ctx context.Context, id int, pending bool) error
}

type PaymentUsecase struct {
	repo      PaymentRepository
	rentals   RentalRepository
	customers CustomerRepository
}

func NewPaymentUsecase(repo PaymentRepository, rentals RentalRepository, customers CustomerRepository) *PaymentUsecase {
	return &PaymentUsecase{repo: repo, rentals: rentals, customers: customers}
}

func validMethod(method models.PaymentMethod) bool {
	switch method {
	case models.PaymentMethodCreditCard, models.PaymentMethodDebitCard, models.PaymentMethodCash, models.PaymentMethodPix:
		return true
	}
	return false
}

func (u *PaymentUsecase) Create(ctx context.Context, req models.CreatePaymentRequest) (*models.Payment, error) {
	rental, err := u.rentals.GetByID(ctx, req.RentalId)
	if err != nil {
		return nil, err
	}

	if !validMethod(req.PaymentMethod) {
		return nil, appErrors.Validation("invalid payment method, options: credit_card, debit_card, cash, pix")
	}
	if err := validation.PositiveNumber(req.Amount, "payment amount"); err != nil {
		return nil, err
	}

	paymentDate := time.Now()
	if req.PaymentDate != nil {
		if paymentDate, err = validation.ParseDate(*req.PaymentDate); err != nil {
			return nil, err
		}
	}

	status := models.PaymentStatusPending
	if req.Status != nil {
		status = *req.Status
	}

	payment := &models.Payment{
		RentalId:      req.RentalId,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		PaymentDate:   paymentDate,
		Status:        status,
	}

	created, err := u.repo.Create(ctx, payment)
	if err != nil {
		return nil, err
	}

	if created.Status == models.PaymentStatusCompleted {
		if err := u.refreshPendingFlag(ctx, rental.CustomerId); err != nil {
			return nil, err
		}
	}

	zap.S().Infof("payment created: id=%d rental=%d amount=%.2f", created.Id, created.RentalId, created.Amount)
	return created, nil
}

func (u *PaymentUsecase) Get(ctx context.Context, id int) (*models.Payment, error) {
	return u.repo.GetByID(ctx, id)
}

func (u *PaymentUsecase) List(ctx context.Context) ([]*models.Payment, error) {
	return u.repo.List(ctx)
}

func (u *PaymentUsecase) ListByRental(ctx context.Context, rentalId int) ([]*models.Payment, error) {
	return u.repo.ListByRental(ctx, rentalId)
}

func (u *PaymentUsecase) Update(ctx context.Context, id int, req models.UpdatePaymentRequest) (*models.Payment, error) {
	payment, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.PaymentMethod != nil {
		if !validMethod(*req.PaymentMethod) {
			return nil, appErrors.Validation("invalid payment method, options: credit_card, debit_card, cash, pix")
		}
		payment.PaymentMethod = *req.PaymentMethod
	}
	if req.Amount != nil {
		if err := validation.PositiveNumber(*req.Amount, "payment amount"); err != nil {
			return nil, err
		}
		payment.Amount = *req.Amount
	}
	if req.PaymentDate != nil {
		date, err := validation.ParseDate(*req.PaymentDate)
		if err != nil {
			return nil, err
		}
		payment.PaymentDate = date
	}
	if req.Status != nil {
		payment.Status = *req.Status
	}

	updated, err := u.repo.Update(ctx, payment)
	if err != nil {
		return nil, err
	}

	if updated.Status == models.PaymentStatusCompleted {
		rental, err := u.rentals.GetByID(ctx, updated.RentalId)
		if err != nil {
			return nil, err
		}
		if err := u.refreshPendingFlag(ctx, rental.CustomerId); err != nil {
			return nil, err
		}
	}

	return updated, nil
}

// Process moves a pending payment to completed and recomputes the owning
// customer's pending flag.
func (u *PaymentUsecase) Process(ctx context.Context, id int) (*models.Payment, error) {
	payment, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payment.Status != models.PaymentStatusPending {
		return nil, appErrors.BusinessRule("only pending payments can be processed")
	}

	if err := u.repo.UpdateStatus(ctx, id, models.PaymentStatusCompleted); err != nil {
		return nil, err
	}

	rental, err := u.rentals.GetByID(ctx, payment.RentalId)
	if err != nil {
		return nil, err
	}
	if err := u.refreshPendingFlag(ctx, rental.CustomerId); err != nil {
		return nil, err
	}

	zap.S().Infof("payment processed: id=%d", id)
	return u.repo.GetByID(ctx, id)
}

func (u *PaymentUsecase) Delete(ctx context.Context, id int) error {
	return u.repo.Delete(ctx, id)
}

// refreshPendingFlag rescans every rental of the customer for pending
// payments and persists the result. Deliberately a full rescan: the
// recomputation points mirror the payment lifecycle exactly.
func (u *PaymentUsecase) refreshPendingFlag(ctx context.Context, customerId int) error {
	rentals, err := u.rentals.ListByCustomer(ctx, customerId)
	if err != nil {
		return err
	}

	hasPending := false
	for _, rental := range rentals {
		pending, err := u.repo.HasPendingByRental(ctx, rental.Id)
		if err != nil {
			return err
		}
		if pending {
			hasPending = true
			break
		}
	}

	return u.customers.UpdatePendingPayment(ctx, customerId, hasPending)
}
