package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kananguluzade/CantaOrtak-TgBot/internal/domain"
)

func TestFormatOrderRow(t *testing.T) {
	o := domain.Order{
		ID:        7,
		TgID:      1001,
		Product:   "iPhone <cable>",
		Weight:    0.3,
		FromCity:  "Istanbul",
		ToCity:    "Lefkosa",
		Price:     "10€",
		CreatedAt: time.Date(2025, 9, 10, 15, 30, 0, 0, time.UTC),
	}
	got := formatOrderRow(o)

	assert.Contains(t, got, "<b>Order #7</b>")
	assert.Contains(t, got, "<code>1001</code>")
	assert.Contains(t, got, "<b>Istanbul</b> → <b>Lefkosa</b>")
	assert.Contains(t, got, "iPhone &lt;cable&gt;")
	assert.Contains(t, got, "0.3 kg")
	assert.Contains(t, got, "2025-09-10")
}

func TestFormatOrderRowSkipsEmptyRoute(t *testing.T) {
	got := formatOrderRow(domain.Order{ID: 1, Product: "cable"})
	assert.NotContains(t, got, "📍")
}

func TestFormatTripRow(t *testing.T) {
	tr := domain.Trip{
		ID:         3,
		TgID:       2002,
		FromCity:   "Ankara",
		ToCity:     "Girne",
		Date:       "2025-10-15",
		CapacityKG: 5,
		PricePerKG: "2€/kg",
		CreatedAt:  time.Date(2025, 9, 11, 8, 0, 0, 0, time.UTC),
	}
	got := formatTripRow(tr)

	assert.Contains(t, got, "<b>Trip #3</b>")
	assert.Contains(t, got, "<b>Ankara</b> → <b>Girne</b>")
	assert.Contains(t, got, "Date: 2025-10-15")
	assert.Contains(t, got, "Free: 5 kg")
	assert.Contains(t, got, "2€/kg")
	assert.Contains(t, got, "2025-09-11")
}

func TestRequesterInfo(t *testing.T) {
	name, username := requesterInfo(nil)
	assert.Empty(t, name)
	assert.Equal(t, "(no username)", username)
}
