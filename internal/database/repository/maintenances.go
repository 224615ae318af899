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

type Maintenances struct {
	dbConn *connection.DBConn
}

func NewMaintenances(conn *connection.DBConn) *Maintenances {
	return &Maintenances{conn}
}

const maintenanceColumns = "id, car_id, description, maintenance_date, cost, status, created_at"

func scanMaintenance(row interface{ Scan(...any) error }) (*models.Maintenance, error) {
	var maintenance models.Maintenance
	err := row.Scan(
		&maintenance.Id,
		&maintenance.CarId,
		&maintenance.Description,
		&maintenance.MaintenanceDate,
		&maintenance.Cost,
		&maintenance.Status,
		&maintenance.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &maintenance, nil
}

func (r *Maintenances) Create(ctx context.Context, maintenance *models.Maintenance) (*models.Maintenance, error) {
	query := `
      INSERT INTO maintenances (car_id, description, maintenance_date, cost, status)
      VALUES ($1, $2, $3, $4, $5)
      RETURNING id, created_at
    `

	row := r.dbConn.Conn.QueryRowContext(ctx, query,
		maintenance.CarId, maintenance.Description, maintenance.MaintenanceDate, maintenance.Cost, maintenance.Status,
	)
	if err := row.Scan(&maintenance.Id, &maintenance.CreatedAt); err != nil {
		return nil, appErrors.Storage("error creating maintenance: %v", err)
	}

	return maintenance, nil
}

func (r *Maintenances) GetByID(ctx context.Context, id int) (*models.Maintenance, error) {
	query := fmt.Sprintf(`SELECT %s FROM maintenances WHERE id = $1`, maintenanceColumns)

	maintenance, err := scanMaintenance(r.dbConn.Conn.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFound("maintenance with id %d not found", id)
		}
		return nil, appErrors.Storage("error getting maintenance: %v", err)
	}

	return maintenance, nil
}

func (r *Maintenances) List(ctx context.Context) ([]*models.Maintenance, error) {
	query := fmt.Sprintf(`SELECT %s FROM maintenances ORDER BY id DESC`, maintenanceColumns)
	return r.queryMaintenances(ctx, query)
}

func (r *Maintenances) ListByCar(ctx context.Context, carId int) ([]*models.Maintenance, error) {
	query := fmt.Sprintf(`SELECT %s FROM maintenances WHERE car_id = $1 ORDER BY maintenance_date DESC`, maintenanceColumns)
	return r.queryMaintenances(ctx, query, carId)
}

// CountActiveByCar counts maintenances still in scheduled or in_progress
// for the car.
func (r *Maintenances) CountActiveByCar(ctx context.Context, carId int) (int, error) {
	query := `SELECT COUNT(*) FROM maintenances WHERE car_id = $1 AND status IN ('scheduled', 'in_progress')`

	var count int
	if err := r.dbConn.Conn.QueryRowContext(ctx, query, carId).Scan(&count); err != nil {
		return 0, appErrors.Storage("error counting active maintenances: %v", err)
	}

	return count, nil
}

func (r *Maintenances) queryMaintenances(ctx context.Context, query string, params ...any) ([]*models.Maintenance, error) {
	rows, err := r.dbConn.Conn.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, appErrors.Storage("error listing maintenances: %v", err)
	}
	defer rows.Close()

	maintenances := make([]*models.Maintenance, 0)
	for rows.Next() {
		maintenance, err := scanMaintenance(rows)
		if err != nil {
			return nil, appErrors.Storage("error scanning maintenance: %v", err)
		}
		maintenances = append(maintenances, maintenance)
	}
	if err := rows.Err(); err != nil {
		return nil, appErrors.Storage("error listing maintenances: %v", err)
	}

	return maintenances, nil
}

func (r *Maintenances) Update(ctx context.Context, maintenance *models.Maintenance) (*models.Maintenance, error) {
	query := `
      UPDATE maintenances
      SET car_id = $1, description = $2, maintenance_date = $3, cost = $4, status = $5
      WHERE id = $6
    `

	res, err := r.dbConn.Conn.ExecContext(ctx, query,
		maintenance.CarId, maintenance.Description, maintenance.MaintenanceDate, maintenance.Cost, maintenance.Status, maintenance.Id,
	)
	if err != nil {
		return nil, appErrors.Storage("error updating maintenance: %v", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, appErrors.Storage("error updating maintenance: %v", err)
	} else if n == 0 {
		return nil, appErrors.NotFound("maintenance with id %d not found", maintenance.Id)
	}

	return maintenance, nil
}

func (r *Maintenances) UpdateStatus(ctx context.Context, id int, status models.MaintenanceStatus) error {
	res, err := r.dbConn.Conn.ExecContext(ctx, `UPDATE maintenances SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return appErrors.Storage("error updating maintenance status: %v", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return appErrors.Storage("error updating maintenance status: %v", err)
	} else if n == 0 {
		return appErrors.NotFound("maintenance with id %d not found", id)
	}
	return nil
}

func (r *Maintenances) Delete(ctx context.Context, id int) error {
	res, err := r.dbConn.Conn.ExecContext(ctx, `DELETE FROM maintenances WHERE id = $1`, id)
	if err != nil {
		return appErrors.Storage("error deleting maintenance: %v", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return appErrors.Storage("error deleting maintenance: %v", err)
	} else if n == 0 {
		return appErrors.NotFound("maintenance with id %d not found", id)
	}
	return nil
}
