// Package abc implements ABC (Pareto) revenue classification of an order
// history: products are ranked by revenue and split into A/B/C tiers by
// cumulative share of the total.
package abc

import (
	"fmt"
	"math"
	"sort"

	"github.com/Kashikuroni/wb-abc/internal/common"
	"github.com/Kashikuroni/wb-abc/internal/model"
)

// Options control how orders are bucketed into revenue tiers.
type Options struct {
	// ThresholdA is the cumulative revenue share (percent) up to which
	// products are assigned tier A.
	ThresholdA float64
	// ThresholdB is the cumulative share up to which products are assigned
	// tier B. Everything above it is tier C.
	ThresholdB float64
	// ExcludeCancelled drops cancelled orders before aggregation.
	ExcludeCancelled bool
}

// DefaultOptions is the classic 80/15/5 Pareto split over non-cancelled
// orders.
func DefaultOptions() Options {
	return Options{
		ThresholdA:       80.0,
		ThresholdB:       95.0,
		ExcludeCancelled: true,
	}
}

// Validate ensures the thresholds satisfy 0 < A < B <= 100. Anything else
// silently produces nonsense tiers, so classification refuses to start.
func (o Options) Validate() error {
	if o.ThresholdA <= 0 {
		return fmt.Errorf("%w: threshold A must be positive, got %.2f", common.ErrInvalidConfig, o.ThresholdA)
	}
	if o.ThresholdB <= 0 {
		return fmt.Errorf("%w: threshold B must be positive, got %.2f", common.ErrInvalidConfig, o.ThresholdB)
	}
	if o.ThresholdA >= o.ThresholdB {
		return fmt.Errorf("%w: threshold A (%.2f) must be below threshold B (%.2f)", common.ErrInvalidConfig, o.ThresholdA, o.ThresholdB)
	}
	if o.ThresholdB > 100 {
		return fmt.Errorf("%w: threshold B must not exceed 100, got %.2f", common.ErrInvalidConfig, o.ThresholdB)
	}
	return nil
}

// accumulator collects per-product totals during aggregation.
type accumulator struct {
	supplierArticle string
	barcode         string
	subject         string
	brand           string
	productID       int64
	ordersCount     int
	revenue         float64
}

// Classify runs the five-stage ABC analysis over an order history: filter,
// aggregate by product, total, rank by revenue, and walk the ranking
// assigning tiers by cumulative revenue share.
//
// The result is ordered by revenue descending (ties broken by ascending
// product ID). A zero total (empty input, everything filtered out, or an
// all-zero-price dataset) yields an empty result and no error. The only
// error is an invalid Options, reported before any data is touched.
//
// Pure function: the input slice is never modified and no state outlives
// the call, so concurrent calls need no locking.
func Classify(orders []model.Order, opts Options) (model.ABCItems, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	ranked := rank(aggregate(filterCancelled(orders, opts.ExcludeCancelled)))

	// Sum in ranking order, not map order: float addition is not
	// associative, and a total that wobbles between runs can flip a product
	// sitting exactly on a tier boundary.
	var total float64
	for _, acc := range ranked {
		total += acc.revenue
	}
	if total == 0 {
		return nil, nil
	}

	items := make(model.ABCItems, 0, len(ranked))
	cumulative := 0.0
	for _, acc := range ranked {
		share := acc.revenue / total * 100
		cumulative += share

		// The comparison uses the unrounded running cumulative; rounding
		// applies to emitted values only.
		var category model.ABCCategory
		switch {
		case cumulative <= opts.ThresholdA:
			category = model.CategoryA
		case cumulative <= opts.ThresholdB:
			category = model.CategoryB
		default:
			category = model.CategoryC
		}

		items = append(items, model.ABCItem{
			SupplierArticle: acc.supplierArticle,
			ProductID:       acc.productID,
			Barcode:         acc.barcode,
			Subject:         acc.subject,
			Brand:           acc.brand,
			Category:        category,
			OrdersCount:     acc.ordersCount,
			Revenue:         round2(acc.revenue),
			RevenueShare:    round2(share),
			CumulativeShare: round2(cumulative),
		})
	}

	return items, nil
}

func filterCancelled(orders []model.Order, exclude bool) []model.Order {
	if !exclude {
		return orders
	}
	kept := make([]model.Order, 0, len(orders))
	for _, order := range orders {
		if !order.IsCancel {
			kept = append(kept, order)
		}
	}
	return kept
}

func aggregate(orders []model.Order) map[int64]*accumulator {
	groups := make(map[int64]*accumulator)
	for _, order := range orders {
		acc, ok := groups[order.ProductID]
		if !ok {
			acc = &accumulator{productID: order.ProductID}
			groups[order.ProductID] = acc
		}

		// Descriptive fields are expected to be uniform per product; take
		// them from the first order that actually names the article.
		if acc.supplierArticle == "" {
			acc.supplierArticle = order.SupplierArticle
			acc.barcode = order.Barcode
			acc.subject = order.Subject
			acc.brand = order.Brand
		}

		acc.ordersCount++
		acc.revenue += order.PriceWithDisc
	}
	return groups
}

// rank sorts accumulators by revenue, highest first. Equal revenues fall
// back to ascending product ID so repeated runs over the same data produce
// the same ranking.
func rank(groups map[int64]*accumulator) []*accumulator {
	ranked := make([]*accumulator, 0, len(groups))
	for _, acc := range groups {
		ranked = append(ranked, acc)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].revenue != ranked[j].revenue {
			return ranked[i].revenue > ranked[j].revenue
		}
		return ranked[i].productID < ranked[j].productID
	})
	return ranked
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
