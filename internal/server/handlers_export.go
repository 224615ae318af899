package server

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gdiniz/rental-cars/internal/export"
)

// writeExport streams a dataset as a CSV or JSON attachment. The body is
// buffered first so that export failures still produce a proper error
// response instead of a half-written file.
func writeExport(c echo.Context, dataset export.Dataset) error {
	format := c.QueryParam("format")
	if format == "" {
		format = "csv"
	}

	var buf bytes.Buffer
	var contentType string

	switch format {
	case "csv":
		contentType = "text/csv"
		if err := dataset.WriteCSV(&buf); err != nil {
			return translateError(err)
		}
	case "json":
		contentType = echo.MIMEApplicationJSON
		if err := dataset.WriteJSON(&buf); err != nil {
			return translateError(err)
		}
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "invalid format, options: csv, json")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", dataset.Filename(format)))

	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}
