package flow

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/kananguluzade/CantaOrtak-TgBot/internal/domain"
	"github.com/kananguluzade/CantaOrtak-TgBot/internal/expiry"
	"github.com/kananguluzade/CantaOrtak-TgBot/internal/logger"
)

// Trip flow step labels.
const (
	StepTripFrom     = "waiting_trip_from"
	StepTripTo       = "waiting_trip_to"
	StepTripDate     = "waiting_trip_date"
	StepTripCapacity = "waiting_trip_capacity"
	StepTripPrice    = "waiting_trip_price"
)

// TripDraft accumulates answers of an unfinished trip dialog.
type TripDraft struct {
	FromCity   string  `json:"from_city,omitempty"`
	ToCity     string  `json:"to_city,omitempty"`
	Date       string  `json:"date,omitempty"`
	CapacityKG float64 `json:"capacity_kg,omitempty"`
	PricePerKG string  `json:"price_per_kg,omitempty"`
}

// TripWriter is the slice of the listing repository the trip flow needs.
type TripWriter interface {
	InsertTrip(ctx context.Context, t domain.Trip) (int64, error)
}

// NewTripFlow assembles the post-trip dialog. There is no expiry question:
// a trip disappears the day after travel.
func NewTripFlow(mgr *Manager, listings TripWriter, defaultExpiryDays int) *Flow[TripDraft] {
	return &Flow[TripDraft]{
		Name: "post_trip",
		Done: "trip_posted",
		Steps: []Step[TripDraft]{
			{
				State:  StepTripFrom,
				Prompt: "ask_trip_from",
				Apply: func(d *TripDraft, in string, _ time.Time) error {
					d.FromCity = strings.TrimSpace(in)
					return nil
				},
			},
			{
				State:  StepTripTo,
				Prompt: "ask_trip_to",
				Apply: func(d *TripDraft, in string, _ time.Time) error {
					d.ToCity = strings.TrimSpace(in)
					return nil
				},
			},
			{
				State:  StepTripDate,
				Prompt: "ask_trip_date",
				Retry:  "invalid_date",
				Apply: func(d *TripDraft, in string, now time.Time) error {
					date, err := expiry.ValidateTravelDate(in, now)
					if err != nil {
						return retry(err)
					}
					d.Date = date
					return nil
				},
			},
			{
				State:  StepTripCapacity,
				Prompt: "ask_trip_capacity",
				Apply: func(d *TripDraft, in string, _ time.Time) error {
					capKG, err := strconv.ParseFloat(strings.TrimSpace(in), 64)
					if err != nil {
						capKG = 0
					}
					d.CapacityKG = capKG
					return nil
				},
			},
			{
				State:  StepTripPrice,
				Prompt: "ask_trip_price",
				Apply: func(d *TripDraft, in string, _ time.Time) error {
					d.PricePerKG = strings.TrimSpace(in)
					return nil
				},
			},
		},
		Finish: func(ctx context.Context, tgID int64, d *TripDraft, now time.Time) error {
			id, err := listings.InsertTrip(ctx, domain.Trip{
				TgID:       tgID,
				FromCity:   d.FromCity,
				ToCity:     d.ToCity,
				Date:       d.Date,
				CapacityKG: d.CapacityKG,
				PricePerKG: d.PricePerKG,
				CreatedAt:  now,
				ExpiresAt:  expiry.ForTrip(d.Date, now, defaultExpiryDays),
				IsActive:   true,
			})
			if err != nil {
				return err
			}
			logger.Info(ctx, "service", "trip.created",
				slog.Int64("trip_id", id),
				slog.Int64("user_id", tgID),
			)
			return nil
		},
		mgr: mgr,
	}
}
