package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Kashikuroni/wb-abc/internal/model"
)

// JSONSource reads a Wildberries Statistics API export: a JSON array of
// order objects, exactly as the /supplier/orders endpoint returns them.
type JSONSource struct {
	r    io.Reader
	name string
}

// NewJSONSource wraps r, which must yield a JSON array of orders. The name
// is used in logs and report metadata.
func NewJSONSource(name string, r io.Reader) *JSONSource {
	return &JSONSource{name: name, r: r}
}

// Name implements Source.
func (s *JSONSource) Name() string { return s.name }

// Fetch decodes the export and keeps the orders whose lastChangeDate falls
// inside dr.
func (s *JSONSource) Fetch(ctx context.Context, dr DateRange) ([]model.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var all []model.Order
	dec := json.NewDecoder(s.r)
	if err := dec.Decode(&all); err != nil {
		return nil, fmt.Errorf("failed to decode orders from %s: %w", s.name, err)
	}

	orders := make([]model.Order, 0, len(all))
	for _, order := range all {
		if dr.Contains(order.LastChangeDate.Time) {
			orders = append(orders, order)
		}
	}
	return orders, nil
}
