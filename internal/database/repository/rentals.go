package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/gdiniz/rental-cars/internal/database/connection"
	appErrors "github.com/gdiniz/rental-cars/internal/errors"
	"github.com/gdiniz/rental-cars/internal/models"
)

type Rentals struct {
	dbConn *connection.DBConn
}

func NewRentals(conn *connection.DBConn) *Rentals {
	return &Rentals{conn}
}

const rentalColumns = "id, customer_id, car_id, start_date, end_date, total_value, status, created_at"

func scanRental(row interface{ Scan(...any) error }) (*models.Rental, error) {
	var rental models.Rental
	err := row.Scan(
		&rental.Id,
		&rental.CustomerId,
		&rental.CarId,
		&rental.StartDate,
		&rental.EndDate,
		&rental.TotalValue,
		&rental.Status,
		&rental.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rental, nil
}

// Create inserts the rental and marks the car unavailable in a single
// transaction. The partial unique index on active rentals makes concurrent
// creations for the same car fail here instead of racing.
func (r *Rentals) Create(ctx context.Context, rental *models.Rental) (*models.Rental, error) {
	tx, err := r.dbConn.Conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, appErrors.Storage("error beginning transaction: %v", err)
	}

	var txErr error
	defer func() {
		if txErr != nil {
			if err := tx.Rollback(); err != nil {
				zap.S().Warnf("error rolling back rental creation: %v", err)
			}
		}
	}()

	insertQuery := `
      INSERT INTO rentals (customer_id, car_id, start_date, end_date, total_value, status)
      VALUES ($1, $2, $3, $4, $5, $6)
      RETURNING id, created_at
    `

	row := tx.QueryRowContext(ctx, insertQuery,
		rental.CustomerId, rental.CarId, rental.StartDate, rental.EndDate, rental.TotalValue, rental.Status,
	)
	if err := row.Scan(&rental.Id, &rental.CreatedAt); err != nil {
		if _, ok := uniqueViolation(err); ok {
			txErr = appErrors.BusinessRule("car is not available for rental")
		} else {
			txErr = appErrors.Storage("error creating rental: %v", err)
		}
		return nil, txErr
	}

	if _, err := tx.ExecContext(ctx, `UPDATE cars SET is_available = FALSE WHERE id = $1`, rental.CarId); err != nil {
		txErr = appErrors.Storage("error reserving car: %v", err)
		return nil, txErr
	}

	if err := tx.Commit(); err != nil {
		txErr = appErrors.Storage("error committing transaction: %v", err)
		return nil, txErr
	}

	return rental, nil
}

func (r *Rentals) GetByID(ctx context.Context, id int) (*models.Rental, error) {
	query := fmt.Sprintf(`SELECT %s FROM rentals WHERE id = $1`, rentalColumns)

	rental, err := scanRental(r.dbConn.Conn.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFound("rental with id %d not found", id)
		}
		return nil, appErrors.Storage("error getting rental: %v", err)
	}

	return rental, nil
}

func (r *Rentals) List(ctx context.Context) ([]*models.Rental, error) {
	query := fmt.Sprintf(`SELECT %s FROM rentals ORDER BY id DESC`, rentalColumns)
	return r.queryRentals(ctx, query)
}

func (r *Rentals) ListByCustomer(ctx context.Context, customerId int) ([]*models.Rental, error) {
	query := fmt.Sprintf(`SELECT %s FROM rentals WHERE customer_id = $1 ORDER BY start_date DESC`, rentalColumns)
	return r.queryRentals(ctx, query, customerId)
}

func (r *Rentals) Search(ctx context.Context, filter models.RentalFilter) ([]*models.Rental, error) {
	query := fmt.Sprintf(`SELECT %s FROM rentals WHERE 1=1`, rentalColumns)
	params := make([]any, 0, 4)

	if filter.CustomerId != nil {
		params = append(params, *filter.CustomerId)
		query += fmt.Sprintf(" AND customer_id = $%d", len(params))
	}
	if filter.Status != "" {
		params = append(params, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(params))
	}
	if filter.StartDate != nil {
		params = append(params, *filter.StartDate)
		query += fmt.Sprintf(" AND start_date >= $%d", len(params))
	}
	if filter.EndDate != nil {
		params = append(params, *filter.EndDate)
		query += fmt.Sprintf(" AND end_date <= $%d", len(params))
	}

	query += " ORDER BY start_date DESC"

	return r.queryRentals(ctx, query, params...)
}

func (r *Rentals) queryRentals(ctx context.Context, query string, params ...any) ([]*models.Rental, error) {
	rows, err := r.dbConn.Conn.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, appErrors.Storage("error listing rentals: %v", err)
	}
	defer rows.Close()

	rentals := make([]*models.Rental, 0)
	for rows.Next() {
		rental, err := scanRental(rows)
		if err != nil {
			return nil, appErrors.Storage("error scanning rental: %v", err)
		}
		rentals = append(rentals, rental)
	}
	if err := rows.Err(); err != nil {
		return nil, appErrors.Storage("error listing rentals: %v", err)
	}

	return rentals, nil
}

func (r *Rentals) Update(ctx context.Context, rental *models.Rental) (*models.Rental, error) {
	query := `
      UPDATE rentals
      SET customer_id = $1, car_id = $2, start_date = $3, end_date = $4, total_value = $5, status = $6
      WHERE id = $7
    `

	res, err := r.dbConn.Conn.ExecContext(ctx, query,
		rental.CustomerId, rental.CarId, rental.StartDate, rental.EndDate, rental.TotalValue, rental.Status, rental.Id,
	)
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return nil, appErrors.BusinessRule("car is not available for rental")
		}
		return nil, appErrors.Storage("error updating rental: %v", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, appErrors.Storage("error updating rental: %v", err)
	} else if n == 0 {
		return nil, appErrors.NotFound("rental with id %d not found", rental.Id)
	}

	return rental, nil
}

func (r *Rentals) UpdateStatus(ctx context.Context, id int, status models.RentalStatus) error {
	res, err := r.dbConn.Conn.ExecContext(ctx, `UPDATE rentals SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return appErrors.Storage("error updating rental status: %v", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return appErrors.Storage("error updating rental status: %v", err)
	} else if n == 0 {
		return appErrors.NotFound("rental with id %d not found", id)
	}
	return nil
}

func (r *Rentals) Delete(ctx context.Context, id int) error {
	res, err := r.dbConn.Conn.ExecContext(ctx, `DELETE FROM rentals WHERE id = $1`, id)
	if err != nil {
		return appErrors.Storage("error deleting rental: %v", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return appErrors.Storage("error deleting rental: %v", err)
	} else if n == 0 {
		return appErrors.NotFound("rental with id %d not found", id)
	}
	return nil
}
