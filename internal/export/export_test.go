package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/gdiniz/rental-cars/internal/errors"
	"github.com/gdiniz/rental-cars/internal/models"
)

func sampleCars() []*models.Car {
	created := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	return []*models.Car{
		{Id: 1, Brand: "Toyota", Model: "Corolla", Year: 2022, LicensePlate: "ABC1D23", DailyRate: 150, IsAvailable: true, CreatedAt: created},
		{Id: 2, Brand: "Fiat", Model: "Uno", Year: 2018, LicensePlate: "DEF4567", DailyRate: 89.9, IsAvailable: false, CreatedAt: created},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Cars(sampleCars()).WriteCSV(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,brand,model,year,license_plate,daily_rate,is_available,created_at", lines[0])
	assert.Equal(t, "1,Toyota,Corolla,2022,ABC1D23,150.00,true,2026-03-10T12:00:00Z", lines[1])
	assert.Equal(t, "2,Fiat,Uno,2018,DEF4567,89.90,false,2026-03-10T12:00:00Z", lines[2])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := Cars(nil).WriteCSV(&buf)
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindBusinessRule))
	assert.Zero(t, buf.Len())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Cars(sampleCars()).WriteJSON(&buf))

	var records []map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "Toyota", records[0]["brand"])
	assert.Equal(t, "150.00", records[0]["daily_rate"])
	assert.Equal(t, "false", records[1]["is_available"])
}

func TestRentalsDataset(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	rentals := []*models.Rental{
		{Id: 5, CustomerId: 7, CarId: 1, StartDate: start, EndDate: start.AddDate(0, 0, 10), TotalValue: 900, Status: models.RentalStatusActive, CreatedAt: start},
	}

	d := Rentals(rentals)
	assert.Equal(t, "rentals", d.Name)
	require.Len(t, d.Rows, 1)
	assert.Equal(t, "5", d.Rows[0][0])
	assert.Equal(t, "900.00", d.Rows[0][5])
	assert.Equal(t, "active", d.Rows[0][6])
}

func TestFilename(t *testing.T) {
	name := Cars(nil).Filename("csv")
	assert.True(t, strings.HasPrefix(name, "cars_"))
	assert.True(t, strings.HasSuffix(name, ".csv"))
}
