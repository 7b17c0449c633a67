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

// Order flow step labels, persisted in conversation_states.step.
const (
	StepOrderProduct  = "waiting_product"
	StepOrderWeight   = "waiting_weight"
	StepOrderFromCity = "waiting_from_city"
	StepOrderToCity   = "waiting_to_city"
	StepOrderPrice    = "waiting_price"
	StepOrderExpiry   = "waiting_expiry"
)

// OrderDraft accumulates answers of an unfinished order dialog.
type OrderDraft struct {
	Product   string    `json:"product,omitempty"`
	Weight    float64   `json:"weight,omitempty"`
	FromCity  string    `json:"from_city,omitempty"`
	ToCity    string    `json:"to_city,omitempty"`
	Price     string    `json:"price,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// OrderWriter is the slice of the listing repository the order flow needs.
type OrderWriter interface {
	InsertOrder(ctx context.Context, o domain.Order) (int64, error)
}

// NewOrderFlow assembles the post-order dialog. Weight coercion to zero on
// bad input is deliberate; only the expiry answer is re-prompted.
func NewOrderFlow(mgr *Manager, listings OrderWriter) *Flow[OrderDraft] {
	return &Flow[OrderDraft]{
		Name: "post_order",
		Done: "order_posted",
		Steps: []Step[OrderDraft]{
			{
				State:  StepOrderProduct,
				Prompt: "ask_product",
				Apply: func(d *OrderDraft, in string, _ time.Time) error {
					d.Product = strings.TrimSpace(in)
					return nil
				},
			},
			{
				State:  StepOrderWeight,
				Prompt: "ask_weight",
				Apply: func(d *OrderDraft, in string, _ time.Time) error {
					w, err := strconv.ParseFloat(strings.TrimSpace(in), 64)
					if err != nil {
						w = 0
					}
					d.Weight = w
					return nil
				},
			},
			{
				State:  StepOrderFromCity,
				Prompt: "ask_from",
				Apply: func(d *OrderDraft, in string, _ time.Time) error {
					d.FromCity = strings.TrimSpace(in)
					return nil
				},
			},
			{
				State:  StepOrderToCity,
				Prompt: "ask_to",
				Apply: func(d *OrderDraft, in string, _ time.Time) error {
					d.ToCity = strings.TrimSpace(in)
					return nil
				},
			},
			{
				State:  StepOrderPrice,
				Prompt: "ask_price",
				Apply: func(d *OrderDraft, in string, _ time.Time) error {
					d.Price = strings.TrimSpace(in)
					return nil
				},
			},
			{
				State:  StepOrderExpiry,
				Prompt: "ask_expiry",
				Retry:  "invalid_expiry",
				Apply: func(d *OrderDraft, in string, now time.Time) error {
					t, err := expiry.ParseOrderInput(in, now)
					if err != nil {
						return retry(err)
					}
					d.ExpiresAt = t
					return nil
				},
			},
		},
		Finish: func(ctx context.Context, tgID int64, d *OrderDraft, now time.Time) error {
			id, err := listings.InsertOrder(ctx, domain.Order{
				TgID:      tgID,
				Product:   d.Product,
				Weight:    d.Weight,
				FromCity:  d.FromCity,
				ToCity:    d.ToCity,
				Price:     d.Price,
				CreatedAt: now,
				ExpiresAt: d.ExpiresAt,
				IsActive:  true,
			})
			if err != nil {
				return err
			}
			logger.Info(ctx, "service", "order.created",
				slog.Int64("order_id", id),
				slog.Int64("user_id", tgID),
			)
			return nil
		},
		mgr: mgr,
	}
}
