package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gdiniz/rental-cars/internal/database/connection"
	appErrors "github.com/gdiniz/rental-cars/internal/errors"
	"github.com/gdiniz/rental-cars/internal/models"
)

type Payments struct {
	dbConn *connection.DBConn
}

func NewPayments(conn *connection.DBConn) *Payments {
	return &Payments{conn}
}

const paymentColumns = "id, rental_id, amount, payment_method, payment_date, status, created_at"

func scanPayment(row interface{ Scan(...any) error }) (*models.Payment, error) {
	var payment models.Payment
	err := row.Scan(
		&payment.Id,
		&payment.RentalId,
		&payment.Amount,
		&payment.PaymentMethod,
		&payment.PaymentDate,
		&payment.Status,
		&payment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *Payments) Create(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	query := `
      INSERT INTO payments (rental_id, amount, payment_method, payment_date, status)
      VALUES ($1, $2, $3, $4, $5)
      RETURNING id, created_at
    `

	row := r.dbConn.Conn.QueryRowContext(ctx, query,
		payment.RentalId, payment.Amount, payment.PaymentMethod, payment.PaymentDate, payment.Status,
	)
	if err := row.Scan(&payment.Id, &payment.CreatedAt); err != nil {
		return nil, appErrors.Storage("error creating payment: %v", err)
	}

	return payment, nil
}

func (r *Payments) GetByID(ctx context.Context, id int) (*models.Payment, error) {
	query := fmt.Sprintf(`SELECT %s FROM payments WHERE id = $1`, paymentColumns)

	payment, err := scanPayment(r.dbConn.Conn.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFound("payment with id %d not found", id)
		}
		return nil, appErrors.Storage("error getting payment: %v", err)
	}

	return payment, nil
}

func (r *Payments) List(ctx context.Context) ([]*models.Payment, error) {
	query := fmt.Sprintf(`SELECT %s FROM payments ORDER BY id DESC`, paymentColumns)
	return r.queryPayments(ctx, query)
}

func (r *Payments) ListByRental(ctx context.Context, rentalId int) ([]*models.Payment, error) {
	query := fmt.Sprintf(`SELECT %s FROM payments WHERE rental_id = $1 ORDER BY payment_date DESC`, paymentColumns)
	return r.queryPayments(ctx, query, rentalId)
}

// HasPendingByRental reports whether the rental has any payment still in
// status pending.
func (r *Payments) HasPendingByRental(ctx context.Context, rentalId int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM payments WHERE rental_id = $1 AND status = 'pending')`

	var pending bool
	if err := r.dbConn.Conn.QueryRowContext(ctx, query, rentalId).Scan(&pending); err != nil {
		return false, appErrors.Storage("error checking pending payments: %v", err)
	}

	return pending, nil
}

func (r *Payments) queryPayments(ctx context.Context, query string, params ...any) ([]*models.Payment, error) {
	rows, err := r.dbConn.Conn.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, appErrors.Storage("error listing payments: %v", err)
	}
	defer rows.Close()

	payments := make([]*models.Payment, 0)
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, appErrors.Storage("error scanning payment: %v", err)
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, appErrors.Storage("error listing payments: %v", err)
	}

	return payments, nil
}

func (r *Payments) Update(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	query := `
      UPDATE payments
      SET rental_id = $1, amount = $2, payment_method = $3, payment_date = $4, status = $5
      WHERE id = $6
    `

	res, err := r.dbConn.Conn.ExecContext(ctx, query,
		payment.RentalId, payment.Amount, payment.PaymentMethod, payment.PaymentDate, payment.Status, payment.Id,
	)
	if err != nil {
		return nil, appErrors.Storage("error updating payment: %v", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, appErrors.Storage("error updating payment: %v", err)
	} else if n == 0 {
		return nil, appErrors.NotFound("payment with id %d not found", payment.Id)
	}

	return payment, nil
}

func (r *Payments) UpdateStatus(ctx context.Context, id int, status models.PaymentStatus) error {
	res, err := r.dbConn.Conn.ExecContext(ctx, `UPDATE payments SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return appErrors.Storage("error updating payment status: %v", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return appErrors.Storage("error updating payment status: %v", err)
	} else if n == 0 {
		return appErrors.NotFound("payment with id %d not found", id)
	}
	return nil
}

func (r *Payments) Delete(ctx context.Context, id int) error {
	res, err := r.dbConn.Conn.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return appErrors.Storage("error deleting payment: %v", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return appErrors.Storage("error deleting payment: %v", err)
	} else if n == 0 {
		return appErrors.NotFound("payment with id %d not found", id)
	}
	return nil
}
