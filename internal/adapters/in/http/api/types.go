package api

import "time"

// Error is the body of every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Created carries the id of a new resource.
type Created struct {
	Id string `json:"id"`
}

// OrderSummary is one row of the order list.
type OrderSummary struct {
	Id                string     `json:"id"`
	Status            string     `json:"status"`
	Stage             string     `json:"stage"`
	StageLabel        string     `json:"stageLabel"`
	AssignedShipperId *string    `json:"assignedShipperId,omitempty"`
	ShipperName       *string    `json:"shipperName,omitempty"`
	CustomerName      string     `json:"customerName,omitempty"`
	ProductName       string     `json:"productName,omitempty"`
	Quantity          int        `json:"quantity"`
	FromWarehouse     string     `json:"fromWarehouse,omitempty"`
	ToWarehouse       string     `json:"toWarehouse,omitempty"`
	PlacedAt          *time.Time `json:"placedAt,omitempty"`
}

// TimelineStep is one stage of the order timeline.
type TimelineStep struct {
	Stage string `json:"stage"`
	Label string `json:"label"`
	State string `json:"state"`
}

// StageProgress is one verification step.
type StageProgress struct {
	Stage       int     `json:"stage"`
	ShipperId   *string `json:"shipperId,omitempty"`
	ShipperName string  `json:"shipperName"`
	Confirmed   bool    `json:"confirmed"`
}

// OrderDetails is the order page.
type OrderDetails struct {
	Order         OrderSummary    `json:"order"`
	CustomerPhone string          `json:"customerPhone,omitempty"`
	Note          string          `json:"note,omitempty"`
	QrCode        string          `json:"qrCode,omitempty"`
	ActiveHandler string          `json:"activeHandler"`
	Timeline      []TimelineStep  `json:"timeline"`
	Verification  []StageProgress `json:"verification"`
	Warnings      []string        `json:"warnings,omitempty"`
	CanUnassign   bool            `json:"canUnassign"`
	RefreshedAt   time.Time       `json:"refreshedAt"`
}

// Shipper is a fleet agent as shown in pickers and the roster.
type Shipper struct {
	Id              string  `json:"id"`
	Name            string  `json:"name"`
	Type            int     `json:"type"`
	Status          string  `json:"status"`
	CurrentOrder    *string `json:"currentOrder,omitempty"`
	Occupied        bool    `json:"occupied"`
	Locked          bool    `json:"locked"`
	Bonus           int     `json:"bonus"`
	Email           string  `json:"email,omitempty"`
	Phone           string  `json:"phone,omitempty"`
	CompletedOrders *int    `json:"completedOrders,omitempty"`
}

// EligibleShippers is the assignment picker of an order.
type EligibleShippers struct {
	OrderId       string    `json:"orderId"`
	Stage         string    `json:"stage"`
	RequiredType  int       `json:"requiredType"`
	UsingFallback bool      `json:"usingFallback"`
	CanAssign     bool      `json:"canAssign"`
	Shippers      []Shipper `json:"shippers"`
}

// Roster is the fleet list with its id to name index.
type Roster struct {
	Shippers []Shipper         `json:"shippers"`
	Names    map[string]string `json:"names"`
}

// AssignShipperRequest is the body of AssignShipper.
type AssignShipperRequest struct {
	ShipperId string `json:"shipperId"`
}

// RegisterShipperRequest is the body of RegisterShipper.
type RegisterShipperRequest struct {
	Name     string `json:"name"`
	Type     int    `json:"type"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password,omitempty"`
}

// SetLockRequest is the body of SetShipperLock.
type SetLockRequest struct {
	Locked bool `json:"locked"`
}

// DashboardActionRequest is the body of RecordDashboardAction.
type DashboardActionRequest struct {
	Action string `json:"action"`
}

// ActivityLog is one audit entry.
type ActivityLog struct {
	Id        string    `json:"id"`
	UserId    string    `json:"userId"`
	UserEmail string    `json:"userEmail"`
	Role      string    `json:"role"`
	Event     string    `json:"event"`
	Details   string    `json:"details"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// InventoryItem is one stock item.
type InventoryItem struct {
	Id          string     `json:"id"`
	Sku         string     `json:"sku"`
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	Quantity    int        `json:"quantity"`
	MinQuantity int        `json:"minQuantity"`
	Unit        string     `json:"unit,omitempty"`
	Warehouse   string     `json:"warehouse,omitempty"`
	Zone        string     `json:"zone,omitempty"`
	LowStock    bool       `json:"lowStock"`
	LastUpdated *time.Time `json:"lastUpdated,omitempty"`
}

// Inventory is the filtered stock list.
type Inventory struct {
	Items      []InventoryItem `json:"items"`
	Categories []string        `json:"categories"`
	LowStock   int             `json:"lowStock"`
}

// WarehouseCount is the number of orders leaving one warehouse.
type WarehouseCount struct {
	Warehouse string `json:"warehouse"`
	Orders    int    `json:"orders"`
}

// DashboardStats is the dashboard header.
type DashboardStats struct {
	TotalOrders       int              `json:"totalOrders"`
	PendingOrders     int              `json:"pendingOrders"`
	ProcessingOrders  int              `json:"processingOrders"`
	CompletedOrders   int              `json:"completedOrders"`
	FreeShippers      int              `json:"freeShippers"`
	BusyShippers      int              `json:"busyShippers"`
	OrdersByWarehouse []WarehouseCount `json:"ordersByWarehouse"`
	RecentOrders      []OrderSummary   `json:"recentOrders"`
	ComputedAt        time.Time        `json:"computedAt"`
}

// ListOrdersParams are the query parameters of ListOrders.
type ListOrdersParams struct {
	Status    *string `form:"status,omitempty" json:"status,omitempty"`
	Warehouse *string `form:"warehouse,omitempty" json:"warehouse,omitempty"`
	Limit     *int    `form:"limit,omitempty" json:"limit,omitempty"`
}

// ListActivityLogsParams are the query parameters of ListActivityLogs.
type ListActivityLogsParams struct {
	Tab    *string `form:"tab,omitempty" json:"tab,omitempty"`
	Search *string `form:"search,omitempty" json:"search,omitempty"`
	Limit  *int    `form:"limit,omitempty" json:"limit,omitempty"`
}

// ListInventoryParams are the query parameters of ListInventory.
type ListInventoryParams struct {
	Category *string `form:"category,omitempty" json:"category,omitempty"`
	Search   *string `form:"search,omitempty" json:"search,omitempty"`
}
