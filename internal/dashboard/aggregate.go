package dashboard

import (
	"sort"

	"github.com/joyva20/ecommerce-api/internal/model"
)

const (
	uncategorized = "Uncategorized"
	untyped       = "Untyped"

	recentOrderLimit = 10
	topProductLimit  = 5
)

// Options tunes the aggregation.
type Options struct {
	// RevenueFallback sums ALL order amounts when no paid order exists.
	// A diagnostic leftover from the source dashboard; off by default so
	// revenue reads 0 until something is actually paid.
	RevenueFallback bool
}

// Compute builds a dashboard summary from full collection snapshots.
// Deterministic and order-independent apart from the sorted slices; a
// nil input collection degrades that slice of the summary rather than
// failing the whole aggregation.
func Compute(products []model.Product, orders []model.Order, users []model.User, opts Options) *model.DashboardSummary {
	summary := &model.DashboardSummary{
		TotalProducts:      len(products),
		TotalOrders:        len(orders),
		TotalUsers:         len(users),
		ProductsByCategory: map[string]int{},
		ProductsByType:     map[string]int{},
		RecentOrders:       []model.Order{},
		TopProducts:        []model.TopProduct{},
	}

	summary.TotalRevenue = totalRevenue(orders, opts.RevenueFallback)

	for _, p := range products {
		category := p.Category
		if category == "" {
			category = uncategorized
		}
		summary.ProductsByCategory[category]++

		subCategory := p.SubCategory
		if subCategory == "" {
			subCategory = untyped
		}
		summary.ProductsByType[subCategory]++
	}

	summary.RecentOrders = recentOrders(orders)
	summary.TopProducts = topProducts(orders, products)

	return summary
}

// totalRevenue sums paid orders. An order with a zero amount falls back
// to its line items, mirroring the source dashboard's per-order rescue.
func totalRevenue(orders []model.Order, fallback bool) int64 {
	var revenue int64
	paidSeen := false

	for _, order := range orders {
		if !order.Paid() {
			continue
		}
		paidSeen = true
		revenue += orderValue(order)
	}

	if !paidSeen && fallback {
		for _, order := range orders {
			revenue += order.Amount
		}
	}

	return revenue
}

func orderValue(order model.Order) int64 {
	if order.Amount > 0 {
		return order.Amount
	}
	var total int64
	for _, item := range order.Items {
		total += int64(itemQuantity(item)) * item.Price
	}
	return total
}

// itemQuantity treats missing quantities as a single unit, like the
// source dashboard did for legacy documents.
func itemQuantity(item model.OrderItem) int {
	if item.Quantity > 0 {
		return item.Quantity
	}
	return 1
}

func recentOrders(orders []model.Order) []model.Order {
	recent := make([]model.Order, len(orders))
	copy(recent, orders)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].PlacedAt.After(recent[j].PlacedAt)
	})
	if len(recent) > recentOrderLimit {
		recent = recent[:recentOrderLimit]
	}
	return recent
}

// topProducts accumulates units and revenue per product across every
// order's line items, then takes the top 5 by units. When nothing sold,
// the first catalogue products stand in as flagged placeholders.
func topProducts(orders []model.Order, products []model.Product) []model.TopProduct {
	type sales struct {
		ordered int
		revenue int64
		name    string
		image   string
	}

	perProduct := map[string]*sales{}
	var order []string // first-seen order for deterministic ties

	for _, o := range orders {
		for _, item := range o.Items {
			if item.ProductID == "" {
				continue
			}
			entry, ok := perProduct[item.ProductID]
			if !ok {
				entry = &sales{name: item.Name, image: item.Image}
				perProduct[item.ProductID] = entry
				order = append(order, item.ProductID)
			}
			quantity := itemQuantity(item)
			entry.ordered += quantity
			entry.revenue += int64(quantity) * item.Price
		}
	}

	top := make([]model.TopProduct, 0, len(perProduct))
	for _, id := range order {
		entry := perProduct[id]
		if entry.ordered <= 0 {
			continue
		}
		name, image := entry.name, entry.image
		if name == "" || image == "" {
			if p := findProduct(products, id); p != nil {
				if name == "" {
					name = p.Name
				}
				if image == "" {
					image = p.FirstImage()
				}
			}
		}
		top = append(top, model.TopProduct{
			ProductID:    id,
			Name:         name,
			Image:        image,
			TotalOrdered: entry.ordered,
			TotalRevenue: entry.revenue,
		})
	}

	sort.SliceStable(top, func(i, j int) bool {
		return top[i].TotalOrdered > top[j].TotalOrdered
	})
	if len(top) > topProductLimit {
		top = top[:topProductLimit]
	}

	if len(top) == 0 && len(products) > 0 {
		limit := topProductLimit
		if len(products) < limit {
			limit = len(products)
		}
		for _, p := range products[:limit] {
			top = append(top, model.TopProduct{
				ProductID:  p.ID.String(),
				Name:       p.Name,
				Image:      p.FirstImage(),
				IsFallback: true,
			})
		}
	}

	return top
}

func findProduct(products []model.Product, id string) *model.Product {
	for i := range products {
		if products[i].ID.String() == id {
			return &products[i]
		}
	}
	return nil
}
