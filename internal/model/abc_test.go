package model

import (
	"testing"
)

func TestABCCategoryValid(t *testing.T) {
	for _, c := range []ABCCategory{CategoryA, CategoryB, CategoryC} {
		if !c.Valid() {
			t.Errorf("Valid() = false for %q", c)
		}
	}
	for _, c := range []ABCCategory{"", "D", "a"} {
		if c.Valid() {
			t.Errorf("Valid() = true for %q", c)
		}
	}
}

func TestABCItemsTotals(t *testing.T) {
	items := ABCItems{
		{ProductID: 1, Category: CategoryA, OrdersCount: 10, Revenue: 700.50, RevenueShare: 70.05},
		{ProductID: 2, Category: CategoryB, OrdersCount: 4, Revenue: 200.25, RevenueShare: 20.02},
		{ProductID: 3, Category: CategoryC, OrdersCount: 1, Revenue: 99.25, RevenueShare: 9.93},
	}

	if got := items.TotalRevenue(); got != 1000.0 {
		t.Errorf("TotalRevenue() = %v, want 1000", got)
	}
	if got := items.TotalOrders(); got != 15 {
		t.Errorf("TotalOrders() = %v, want 15", got)
	}
}

func TestABCItemsTierBreakdown(t *testing.T) {
	items := ABCItems{
		{ProductID: 1, Category: CategoryA, OrdersCount: 5, Revenue: 500, RevenueShare: 50},
		{ProductID: 2, Category: CategoryA, OrdersCount: 3, Revenue: 300, RevenueShare: 30},
		{ProductID: 3, Category: CategoryC, OrdersCount: 2, Revenue: 200, RevenueShare: 20},
	}

	stats := items.TierBreakdown()
	if len(stats) != 3 {
		t.Fatalf("TierBreakdown() returned %d tiers, want 3", len(stats))
	}

	a, b, c := stats[0], stats[1], stats[2]
	if a.Category != CategoryA || b.Category != CategoryB || c.Category != CategoryC {
		t.Fatalf("TierBreakdown() order = %v %v %v, want A B C", a.Category, b.Category, c.Category)
	}

	if a.Products != 2 || a.Orders != 8 || a.Revenue != 800 || a.RevenueShare != 80 {
		t.Errorf("tier A = %+v, want 2 products, 8 orders, 800 revenue, 80 share", a)
	}
	if b.Products != 0 || b.Orders != 0 || b.Revenue != 0 {
		t.Errorf("tier B = %+v, want empty", b)
	}
	if c.Products != 1 || c.Orders != 2 || c.Revenue != 200 {
		t.Errorf("tier C = %+v, want 1 product, 2 orders, 200 revenue", c)
	}
}
