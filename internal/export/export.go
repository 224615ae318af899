package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	appErrors "github.com/gdiniz/rental-cars/internal/errors"
	"github.com/gdiniz/rental-cars/internal/models"
)

// Dataset is a flat, column-ordered view of an entity collection, ready to
// be written as CSV or JSON.
type Dataset struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Filename builds a timestamped attachment name, e.g. cars_20240131_154500.csv.
func (d Dataset) Filename(format string) string {
	return fmt.Sprintf("%s_%s.%s", d.Name, time.Now().Format("20060102_150405"), format)
}

// WriteCSV writes a header row followed by the data rows. An empty dataset
// is an error: a CSV with only a header is not a useful export.
func (d Dataset) WriteCSV(w io.Writer) error {
	if len(d.Rows) == 0 {
		return appErrors.BusinessRule("no data to export")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(d.Columns); err != nil {
		return appErrors.Storage("error writing csv header: %v", err)
	}
	for _, row := range d.Rows {
		if err := cw.Write(row); err != nil {
			return appErrors.Storage("error writing csv row: %v", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return appErrors.Storage("error flushing csv: %v", err)
	}
	return nil
}

// WriteJSON writes the rows as an array of column-keyed objects.
func (d Dataset) WriteJSON(w io.Writer) error {
	records := make([]map[string]string, 0, len(d.Rows))
	for _, row := range d.Rows {
		record := make(map[string]string, len(d.Columns))
		for i, col := range d.Columns {
			record[col] = row[i]
		}
		records = append(records, record)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return appErrors.Storage("error encoding json export: %v", err)
	}
	return nil
}

func Cars(cars []*models.Car) Dataset {
	rows := make([][]string, 0, len(cars))
	for _, car := range cars {
		rows = append(rows, []string{
			strconv.Itoa(car.Id),
			car.Brand,
			car.Model,
			strconv.Itoa(car.Year),
			car.LicensePlate,
			formatMoney(car.DailyRate),
			strconv.FormatBool(car.IsAvailable),
			car.CreatedAt.Format(time.RFC3339),
		})
	}
	return Dataset{
		Name:    "cars",
		Columns: []string{"id", "brand", "model", "year", "license_plate", "daily_rate", "is_available", "created_at"},
		Rows:    rows,
	}
}

func Rentals(rentals []*models.Rental) Dataset {
	rows := make([][]string, 0, len(rentals))
	for _, rental := range rentals {
		rows = append(rows, []string{
			strconv.Itoa(rental.Id),
			strconv.Itoa(rental.CustomerId),
			strconv.Itoa(rental.CarId),
			rental.StartDate.Format(time.RFC3339),
			rental.EndDate.Format(time.RFC3339),
			formatMoney(rental.TotalValue),
			string(rental.Status),
			rental.CreatedAt.Format(time.RFC3339),
		})
	}
	return Dataset{
		Name:    "rentals",
		Columns: []string{"id", "customer_id", "car_id", "start_date", "end_date", "total_value", "status", "created_at"},
		Rows:    rows,
	}
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
