package model

// DashboardSummary is the transient dashboard read model. It is fully
// recomputed from the source collections on every refresh; nothing here
// is an incrementally maintained view.
type DashboardSummary struct {
	TotalProducts      int            `json:"totalProducts"`
	TotalOrders        int            `json:"totalOrders"`
	TotalUsers         int            `json:"totalUsers"`
	TotalRevenue       int64          `json:"totalRevenue"`
	ProductsByCategory map[string]int `json:"productsByCategory"`
	ProductsByType     map[string]int `json:"productsByType"`
	RecentOrders       []Order        `json:"recentOrders"`
	TopProducts        []TopProduct   `json:"topProducts"`
}

// TopProduct is one entry of the best-sellers list. IsFallback marks
// placeholder rows shown when no order contributed any sales.
type TopProduct struct {
	ProductID    string `json:"productId"`
	Name         string `json:"name"`
	Image        string `json:"image,omitempty"`
	TotalOrdered int    `json:"totalOrdered"`
	TotalRevenue int64  `json:"totalRevenue"`
	IsFallback   bool   `json:"isFallback,omitempty"`
}
