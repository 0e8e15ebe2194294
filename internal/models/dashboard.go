package models

import (
	"github.com/shopspring/decimal"
)

type DashboardSnapshot struct {
	KPI            KPI             `json:"kpi"`
	RecentOrders   []Order         `json:"recent_orders"`
	RecentProducts []Product       `json:"recent_products"`
	SalesData      []SalesPoint    `json:"sales_data"`
	InventoryData  []CategoryStock `json:"inventory_data"`
}

type KPI struct {
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalOrders  int64           `json:"total_orders"`
	ProductsSold int64           `json:"products_sold"`
	ActiveUsers  int64           `json:"active_users"`
}

type SalesPoint struct {
	Name   string `json:"name"`
	Sales  int    `json:"sales"`
	Orders int    `json:"orders"`
}

type CategoryStock struct {
	Name  string `json:"name"`
	Stock int64  `json:"stock"`
}

const UncategorizedLabel = "Uncategorized"
