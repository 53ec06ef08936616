package models

import "time"

// Vehicle status flags. At most one vehicle is "in use" at a time; the
// transition happens atomically in the database layer.
const (
	StatusInUse  = "in use"
	StatusUnused = "unused"
)

// Vehicle is a tracked automobile. Mileage is a cache of
// SUM(distance_driven) over the vehicle's charging records; list/get queries
// recompute it and a nightly job rewrites the stored column.
type Vehicle struct {
	ID              int       `json:"id"`
	LicensePlate    string    `json:"license_plate"`
	Brand           string    `json:"brand"`
	Model           string    `json:"model"`
	Owner           string    `json:"owner"`
	Year            int       `json:"year,omitempty"`
	Color           string    `json:"color,omitempty"`
	Mileage         float64   `json:"mileage"`
	BatteryCapacity float64   `json:"battery_capacity"`
	CLTCRange       int       `json:"cltc_range"`
	PurchaseDate    string    `json:"purchase_date,omitempty"`
	InsuranceExpiry string    `json:"insurance_expiry,omitempty"`
	LastService     string    `json:"last_service,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	StatusFlag      string    `json:"status_flag"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Per-vehicle aggregates (populated by queries, not stored)
	TotalCost        float64 `json:"total_cost"`
	MaintenanceCount int     `json:"maintenance_count"`
}

// MaintenanceRecord is one service event. Owned by a vehicle and removed with it.
type MaintenanceRecord struct {
	ID               int       `json:"id"`
	VehicleID        int       `json:"vehicle_id"`
	ServiceDate      string    `json:"service_date"`
	ServiceType      string    `json:"service_type"`
	Description      string    `json:"description,omitempty"`
	Cost             float64   `json:"cost"`
	MileageAtService float64   `json:"mileage_at_service,omitempty"`
	ServiceLocation  string    `json:"service_location,omitempty"`
	NextServiceDate  string    `json:"next_service_date,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// ChargingRecord is one charging session, in wire field names. The storage
// table keeps its legacy short column names; the database layer owns the
// bidirectional remap. The derived fields (driven_mileage, car_charging_kwh,
// energy_loss_kwh) are computed client-side and stored as submitted.
type ChargingRecord struct {
	ID                      int       `json:"id"`
	VehicleID               int       `json:"vehicle_id"`
	ChargingDate            string    `json:"charging_date"`
	ChargingLocation        string    `json:"charging_location,omitempty"`
	PreviousMileage         float64   `json:"previous_mileage"`
	CurrentMileage          float64   `json:"current_mileage"`
	DrivenMileage           float64   `json:"driven_mileage"`
	MeterChargingKWH        float64   `json:"meter_charging_kwh"`
	ChargingStartPercentage int       `json:"charging_start_percentage"`
	ChargingEndPercentage   int       `json:"charging_end_percentage"`
	CarChargingKWH          float64   `json:"car_charging_kwh"`
	EnergyLossKWH           float64   `json:"energy_loss_kwh"`
	Amount                  float64   `json:"amount"`
	Notes                   string    `json:"notes,omitempty"`
	CreatedAt               time.Time `json:"created_at"`
}

// Category classifies bills as income or expense.
type Category struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Color string `json:"color"`
}

// Bill is one income or expense transaction. CategoryID is nullable: deleting
// a category leaves its bills dangling and the joined fields empty.
type Bill struct {
	ID         int       `json:"id"`
	Amount     float64   `json:"amount"`
	CategoryID *int      `json:"category_id"`
	Date       string    `json:"date"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`

	// Joined from categories (populated by queries, not stored)
	CategoryName  string `json:"category_name,omitempty"`
	CategoryType  string `json:"category_type,omitempty"`
	CategoryColor string `json:"category_color,omitempty"`
}

// Bookmark is a saved URL shown on the dashboard.
type Bookmark struct {
	ID        int       `json:"id"`
	URL       string    `json:"url"`
	Notes     string    `json:"notes,omitempty"`
	Favicon   string    `json:"favicon,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// --- Statistics Types ---

// ChargingSummary holds running totals and averages over a vehicle's charging
// records. The average formulas deliberately subtract only the most recent
// record's values (that charge is still in the battery) and yield 0 on a zero
// denominator.
type ChargingSummary struct {
	TotalRecords   int     `json:"total_records"`
	TotalMeterKWH  float64 `json:"total_meter_kwh"`
	TotalCarKWH    float64 `json:"total_car_kwh"`
	TotalAmount    float64 `json:"total_amount"`
	TotalMileage   float64 `json:"total_mileage"`
	TotalLossKWH   float64 `json:"total_loss_kwh"`
	AvgConsumption float64 `json:"avg_consumption_per_100km"`
	AvgCostPerKM   float64 `json:"avg_cost_per_km"`
	AvgPricePerKWH float64 `json:"avg_price_per_kwh"`
}

// MonthBucket aggregates one calendar month of charging records.
type MonthBucket struct {
	Records int     `json:"records"`
	Mileage float64 `json:"mileage"`
	Amount  float64 `json:"amount"`
}

// TrendChange holds month-over-month percentage changes, zero-baseline when
// the previous month's figure is zero.
type TrendChange struct {
	Records float64 `json:"records"`
	Mileage float64 `json:"mileage"`
	Amount  float64 `json:"amount"`
}

// MonthlyTrend compares the current calendar month against the previous one.
type MonthlyTrend struct {
	Current  MonthBucket `json:"current"`
	Previous MonthBucket `json:"previous"`
	Change   TrendChange `json:"change"`
}

// BillTotals is one calendar month of bill sums.
type BillTotals struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Net     float64 `json:"net"`
}

// MonthlyBillStats is the monthly rollup with month-over-month change.
// Change values are percentages, zero when the previous month's figure is zero.
type MonthlyBillStats struct {
	Current  BillTotals `json:"current"`
	Previous BillTotals `json:"previous"`
	Change   BillTotals `json:"change"`
}

// LocationGroup is one charging-location bucket. Percent-of-total is a
// presentation concern; callers get the grand total alongside the groups.
type LocationGroup struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// CategoryGroup is one bill-category bucket.
type CategoryGroup struct {
	Name  string  `json:"name"`
	Type  string  `json:"type"`
	Color string  `json:"color"`
	Total float64 `json:"total"`
}

// GlobalStats is the dashboard overview. Cost and mileage are formatted to two
// decimals as strings, which the dashboard renders as-is.
type GlobalStats struct {
	TotalVehicles    int    `json:"totalVehicles"`
	TotalMaintenance int    `json:"totalMaintenance"`
	TotalCost        string `json:"totalCost"`
	AvgMileage       string `json:"avgMileage"`
}
