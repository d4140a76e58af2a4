package models

import "time"

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type Activity struct {
	Type      string    `json:"type"`
	Amount    float64   `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

// Analytics aggregates statistics over the whole store.
type Analytics struct {
	TotalProducts     int             `json:"totalProducts"`
	TotalUsers        int             `json:"totalUsers"`
	TotalOrders       int             `json:"totalOrders"`
	TotalRevenue      float64         `json:"totalRevenue"`
	AverageOrderValue float64         `json:"averageOrderValue"`
	TopCategories     []CategoryCount `json:"topCategories"`
	RecentActivity    []Activity      `json:"recentActivity"`
}
