package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gdiniz/rental-cars/internal/database/connection"
	appErrors "github.com/gdiniz/rental-cars/internal/errors"
	"github.com/gdiniz/rental-cars/internal/models"
)

type Customers struct {
	dbConn *connection.DBConn
}

func NewCustomers(conn *connection.DBConn) *Customers {
	return &Customers{conn}
}

const customerColumns = "id, name, cpf, phone, email, has_pending_payment, created_at"

func scanCustomer(row interface{ Scan(...any) error }) (*models.Customer, error) {
	var customer models.Customer
	err := row.Scan(
		&customer.Id,
		&customer.Name,
		&customer.CPF,
		&customer.Phone,
		&customer.Email,
		&customer.HasPendingPayment,
		&customer.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func customerUniqueError(constraint string) *appErrors.Error {
	if strings.Contains(constraint, "cpf") {
		return appErrors.BusinessRule("cpf already registered")
	}
	return appErrors.BusinessRule("email already registered")
}

func (r *Customers) Create(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	query := `
      INSERT INTO customers (name, cpf, phone, email, has_pending_payment)
      VALUES ($1, $2, $3, $4, $5)
      RETURNING id, created_at
    `

	row := r.dbConn.Conn.QueryRowContext(ctx, query,
		customer.Name, customer.CPF, customer.Phone, customer.Email, customer.HasPendingPayment,
	)
	if err := row.Scan(&customer.Id, &customer.CreatedAt); err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			return nil, customerUniqueError(constraint)
		}
		return nil, appErrors.Storage("error creating customer: %v", err)
	}

	return customer, nil
}

func (r *Customers) GetByID(ctx context.Context, id int) (*models.Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE id = $1`, customerColumns)

	customer, err := scanCustomer(r.dbConn.Conn.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFound("customer with id %d not found", id)
		}
		return nil, appErrors.Storage("error getting customer: %v", err)
	}

	return customer, nil
}

// GetByCPF returns nil without error when no customer has the given cpf.
func (r *Customers) GetByCPF(ctx context.Context, cpf string) (*models.Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE cpf = $1`, customerColumns)

	customer, err := scanCustomer(r.dbConn.Conn.QueryRowContext(ctx, query, cpf))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, appErrors.Storage("error getting customer by cpf: %v", err)
	}

	return customer, nil
}

// GetByEmail returns nil without error when no customer has the given email.
func (r *Customers) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE email = $1`, customerColumns)

	customer, err := scanCustomer(r.dbConn.Conn.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, appErrors.Storage("error getting customer by email: %v", err)
	}

	return customer, nil
}

func (r *Customers) List(ctx context.Context) ([]*models.Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers ORDER BY id`, customerColumns)

	rows, err := r.dbConn.Conn.QueryContext(ctx, query)
	if err != nil {
		return nil, appErrors.Storage("error listing customers: %v", err)
	}
	defer rows.Close()

	customers := make([]*models.Customer, 0)
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, appErrors.Storage("error scanning customer: %v", err)
		}
		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, appErrors.Storage("error listing customers: %v", err)
	}

	return customers, nil
}

func (r *Customers) Update(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	query := `
      UPDATE customers
      SET name = $1, cpf = $2, phone = $3, email = $4, has_pending_payment = $5
      WHERE id = $6
    `

	res, err := r.dbConn.Conn.ExecContext(ctx, query,
		customer.Name, customer.CPF, customer.Phone, customer.Email, customer.HasPendingPayment, customer.Id,
	)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			return nil, customerUniqueError(constraint)
		}
		return nil, appErrors.Storage("error updating customer: %v", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, appErrors.Storage("error updating customer: %v", err)
	} else if n == 0 {
		return nil, appErrors.NotFound("customer with id %d not found", customer.Id)
	}

	return customer, nil
}

func (r *Customers) UpdatePendingPayment(ctx context.Context, id int, pending bool) error {
	res, err := r.dbConn.Conn.ExecContext(ctx,
		`UPDATE customers SET has_pending_payment = $1 WHERE id = $2`, pending, id,
	)
	if err != nil {
		return appErrors.Storage("error updating customer payment status: %v", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return appErrors.Storage("error updating customer payment status: %v", err)
	} else if n == 0 {
		return appErrors.NotFound("customer with id %d not found", id)
	}
	return nil
}

func (r *Customers) Delete(ctx context.Context, id int) error {
	res, err := r.dbConn.Conn.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return appErrors.Storage("error deleting customer: %v", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return appErrors.Storage("error deleting customer: %v", err)
	} else if n == 0 {
		return appErrors.NotFound("customer with id %d not found", id)
	}
	return nil
}
