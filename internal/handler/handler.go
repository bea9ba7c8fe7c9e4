package handler

import (
	"strconv"
	"time"

	"facturacion-service/internal/billing"
	"facturacion-service/internal/store"

	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

// Handler carries the store and billing services handlers need. It is
// built once in main and registered on the route table.
type Handler struct {
	store    *store.Store
	renderer *billing.DocumentRenderer
	mailer   *billing.Mailer
	exporter billing.Exporter
}

func New(st *store.Store, renderer *billing.DocumentRenderer, mailer *billing.Mailer) *Handler {
	return &Handler{store: st, renderer: renderer, mailer: mailer}
}

// idParam reads the numeric :id path parameter.
func idParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// parseDate reads a yyyy-mm-dd request field.
func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}
