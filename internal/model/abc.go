package model

// ABCCategory is the revenue tier assigned to a product by ABC analysis.
type ABCCategory string

// Revenue tiers, top contributors first.
const (
	CategoryA ABCCategory = "A"
	CategoryB ABCCategory = "B"
	CategoryC ABCCategory = "C"
)

// Valid reports whether c is one of the three known tiers.
func (c ABCCategory) Valid() bool {
	switch c {
	case CategoryA, CategoryB, CategoryC:
		return true
	}
	return false
}

// ABCItem is one product of an ABC report: the per-product aggregates plus
// the assigned tier. Items are immutable once built; their position in the
// sequence is the revenue ranking.
type ABCItem struct {
	SupplierArticle string      `json:"supplierArticle"`
	ProductID       int64       `json:"nmId"`
	Barcode         string      `json:"barcode"`
	Subject         string      `json:"subject"`
	Brand           string      `json:"brand"`
	Category        ABCCategory `json:"category"`
	OrdersCount     int         `json:"ordersCount"`
	Revenue         float64     `json:"revenue"`
	RevenueShare    float64     `json:"revenueShare"`
	CumulativeShare float64     `json:"cumulativeShare"`
}

// ABCItems is a ranked sequence of report items.
type ABCItems []ABCItem

// TotalRevenue sums the rounded per-product revenues.
func (items ABCItems) TotalRevenue() float64 {
	var total float64
	for _, item := range items {
		total += item.Revenue
	}
	return total
}

// TotalOrders sums the per-product order counts.
func (items ABCItems) TotalOrders() int {
	var total int
	for _, item := range items {
		total += item.OrdersCount
	}
	return total
}

// TierStat aggregates the items belonging to one tier.
type TierStat struct {
	Category     ABCCategory `json:"category"`
	Products     int         `json:"products"`
	Orders       int         `json:"orders"`
	Revenue      float64     `json:"revenue"`
	RevenueShare float64     `json:"revenueShare"`
}

// TierBreakdown folds items into per-tier totals. All three tiers are
// always present, in A, B, C order, so callers can render a fixed table.
func (items ABCItems) TierBreakdown() []TierStat {
	stats := []TierStat{
		{Category: CategoryA},
		{Category: CategoryB},
		{Category: CategoryC},
	}
	index := map[ABCCategory]int{CategoryA: 0, CategoryB: 1, CategoryC: 2}

	for _, item := range items {
		i, ok := index[item.Category]
		if !ok {
			continue
		}
		stats[i].Products++
		stats[i].Orders += item.OrdersCount
		stats[i].Revenue += item.Revenue
		stats[i].RevenueShare += item.RevenueShare
	}

	return stats
}
