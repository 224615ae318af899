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

type Cars struct {
	dbConn *connection.DBConn
}

func NewCars(conn *connection.DBConn) *Cars {
	return &Cars{conn}
}

const carColumns = "id, brand, model, year, license_plate, daily_rate, is_available, created_at"

func scanCar(row interface{ Scan(...any) error }) (*models.Car, error) {
	var car models.Car
	err := row.Scan(
		&car.Id,
		&car.Brand,
		&car.Model,
		&car.Year,
		&car.LicensePlate,
		&car.DailyRate,
		&car.IsAvailable,
		&car.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &car, nil
}

func (r *Cars) Create(ctx context.Context, car *models.Car) (*models.Car, error) {
	query := `
      INSERT INTO cars (brand, model, year, license_plate, daily_rate, is_available)
      VALUES ($1, $2, $3, $4, $5, $6)
      RETURNING id, created_at
    `

	row := r.dbConn.Conn.QueryRowContext(ctx, query,
		car.Brand, car.Model, car.Year, car.LicensePlate, car.DailyRate, car.IsAvailable,
	)
	if err := row.Scan(&car.Id, &car.CreatedAt); err != nil {
		if _, ok := uniqueViolation(err); ok {
			return nil, appErrors.BusinessRule("license plate already registered")
		}
		return nil, appErrors.Storage("error creating car: %v", err)
	}

	return car, nil
}

func (r *Cars) GetByID(ctx context.Context, id int) (*models.Car, error) {
	query := fmt.Sprintf(`SELECT %s FROM cars WHERE id = $1`, carColumns)

	car, err := scanCar(r.dbConn.Conn.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFound("car with id %d not found", id)
		}
		return nil, appErrors.Storage("error getting car: %v", err)
	}

	return car, nil
}

// GetByPlate returns nil without error when no car has the given plate.
func (r *Cars) GetByPlate(ctx context.Context, plate string) (*models.Car, error) {
	query := fmt.Sprintf(`SELECT %s FROM cars WHERE license_plate = $1`, carColumns)

	car, err := scanCar(r.dbConn.Conn.QueryRowContext(ctx, query, plate))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, appErrors.Storage("error getting car by plate: %v", err)
	}

	return car, nil
}

func (r *Cars) List(ctx context.Context) ([]*models.Car, error) {
	query := fmt.Sprintf(`SELECT %s FROM cars ORDER BY id`, carColumns)

	rows, err := r.dbConn.Conn.QueryContext(ctx, query)
	if err != nil {
		return nil, appErrors.Storage("error listing cars: %v", err)
	}
	defer rows.Close()

	cars := make([]*models.Car, 0)
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, appErrors.Storage("error scanning car: %v", err)
		}
		cars = append(cars, car)
	}
	if err := rows.Err(); err != nil {
		return nil, appErrors.Storage("error listing cars: %v", err)
	}

	return cars, nil
}

func (r *Cars) ListAvailable(ctx context.Context, filter models.AvailableCarFilter) ([]*models.Car, error) {
	query := fmt.Sprintf(`SELECT %s FROM cars WHERE is_available = TRUE`, carColumns)
	params := make([]any, 0, 5)

	if filter.Brand != "" {
		params = append(params, "%"+filter.Brand+"%")
		query += fmt.Sprintf(" AND brand ILIKE $%d", len(params))
	}
	if filter.Model != "" {
		params = append(params, "%"+filter.Model+"%")
		query += fmt.Sprintf(" AND model ILIKE $%d", len(params))
	}
	if filter.MaxPrice != nil {
		params = append(params, *filter.MaxPrice)
		query += fmt.Sprintf(" AND daily_rate <= $%d", len(params))
	}
	if filter.MinYear != nil {
		params = append(params, *filter.MinYear)
		query += fmt.Sprintf(" AND year >= $%d", len(params))
	}
	if filter.MaxYear != nil {
		params = append(params, *filter.MaxYear)
		query += fmt.Sprintf(" AND year <= $%d", len(params))
	}

	query += " ORDER BY daily_rate"

	rows, err := r.dbConn.Conn.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, appErrors.Storage("error listing available cars: %v", err)
	}
	defer rows.Close()

	cars := make([]*models.Car, 0)
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, appErrors.Storage("error scanning car: %v", err)
		}
		cars = append(cars, car)
	}
	if err := rows.Err(); err != nil {
		return nil, appErrors.Storage("error listing available cars: %v", err)
	}

	return cars, nil
}

func (r *Cars) Update(ctx context.Context, car *models.Car) (*models.Car, error) {
	query := `
      UPDATE cars
      SET brand = $1, model = $2, year = $3, license_plate = $4, daily_rate = $5, is_available = $6
      WHERE id = $7
    `

	res, err := r.dbConn.Conn.ExecContext(ctx, query,
		car.Brand, car.Model, car.Year, car.LicensePlate, car.DailyRate, car.IsAvailable, car.Id,
	)
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return nil, appErrors.BusinessRule("license plate already registered")
		}
		return nil, appErrors.Storage("error updating car: %v", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, appErrors.Storage("error updating car: %v", err)
	} else if n == 0 {
		return nil, appErrors.NotFound("car with id %d not found", car.Id)
	}

	return car, nil
}

func (r *Cars) UpdateAvailability(ctx context.Context, id int, available bool) error {
	res, err := r.dbConn.Conn.ExecContext(ctx, `UPDATE cars SET is_available = $1 WHERE id = $2`, available, id)
	if err != nil {
		return appErrors.Storage("error updating car availability: %v", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return appErrors.Storage("error updating car availability: %v", err)
	} else if n == 0 {
		return appErrors.NotFound("car with id %d not found", id)
	}
	return nil
}

func (r *Cars) Delete(ctx context.Context, id int) error {
	res, err := r.dbConn.Conn.ExecContext(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		return appErrors.Storage("error deleting car: %v", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return appErrors.Storage("error deleting car: %v", err)
	} else if n == 0 {
		return appErrors.NotFound("car with id %d not found", id)
	}
	return nil
}
