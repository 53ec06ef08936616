package stats

import (
	"testing"
	"time"

	"github.com/garagebook/garagebook/internal/models"
)

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		want     float64
	}{
		{"doubled", 200, 100, 100},
		{"decreased", 400, 500, -20},
		{"zero baseline", 150, 0, 0},
		{"zero baseline zero current", 0, 0, 0},
		{"no change", 75, 75, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PercentChange(tt.current, tt.previous); got != tt.want {
				t.Errorf("PercentChange(%v, %v) = %v, want %v", tt.current, tt.previous, got, tt.want)
			}
		})
	}
}

func TestMonthWindows(t *testing.T) {
	now := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
	current, previous := MonthWindows(now)

	if current.Start != "2024-03-01" || current.End != "2024-03-31" {
		t.Errorf("current window = %v..%v, want 2024-03-01..2024-03-31", current.Start, current.End)
	}
	// 2024 is a leap year
	if previous.Start != "2024-02-01" || previous.End != "2024-02-29" {
		t.Errorf("previous window = %v..%v, want 2024-02-01..2024-02-29", previous.Start, previous.End)
	}

	t.Run("january wraps to december", func(t *testing.T) {
		current, previous := MonthWindows(time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC))
		if current.Start != "2024-01-01" || current.End != "2024-01-31" {
			t.Errorf("current window = %v..%v", current.Start, current.End)
		}
		if previous.Start != "2023-12-01" || previous.End != "2023-12-31" {
			t.Errorf("previous window = %v..%v", previous.Start, previous.End)
		}
	})
}

func TestMonthlyBills(t *testing.T) {
	// current month: income 1000, expense 400; previous: income 500, expense 500.
	// Previous net is 0, so the net change falls back to the zero baseline.
	got := MonthlyBills(
		models.BillTotals{Income: 1000, Expense: 400, Net: 600},
		models.BillTotals{Income: 500, Expense: 500, Net: 0},
	)

	if got.Current.Net != 600 {
		t.Errorf("current net = %v, want 600", got.Current.Net)
	}
	if got.Previous.Net != 0 {
		t.Errorf("previous net = %v, want 0", got.Previous.Net)
	}
	if got.Change.Income != 100 {
		t.Errorf("income change = %v, want 100", got.Change.Income)
	}
	if got.Change.Expense != -20 {
		t.Errorf("expense change = %v, want -20", got.Change.Expense)
	}
	if got.Change.Net != 0 {
		t.Errorf("net change = %v, want 0 (zero baseline)", got.Change.Net)
	}
}

func TestSummarize(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		s := Summarize(nil)
		if s.TotalRecords != 0 || s.AvgConsumption != 0 || s.AvgCostPerKM != 0 || s.AvgPricePerKWH != 0 {
			t.Errorf("empty summary not all zero: %+v", s)
		}
	})

	t.Run("zero mileage yields zero averages", func(t *testing.T) {
		records := []models.ChargingRecord{
			{MeterChargingKWH: 30, CarChargingKWH: 25, Amount: 45, DrivenMileage: 0, EnergyLossKWH: 5},
		}
		s := Summarize(records)
		if s.AvgConsumption != 0 {
			t.Errorf("avg consumption = %v, want 0", s.AvgConsumption)
		}
		if s.AvgCostPerKM != 0 {
			t.Errorf("avg cost = %v, want 0", s.AvgCostPerKM)
		}
		if s.AvgPricePerKWH != 1.5 {
			t.Errorf("avg price = %v, want 1.5", s.AvgPricePerKWH)
		}
	})

	t.Run("subtracts latest record only", func(t *testing.T) {
		// newest first: the 36 kWh / ¥80 session is still in the battery
		records := []models.ChargingRecord{
			{MeterChargingKWH: 40, CarChargingKWH: 36, Amount: 80, DrivenMileage: 200, EnergyLossKWH: 4},
			{MeterChargingKWH: 30, CarChargingKWH: 28, Amount: 60, DrivenMileage: 300, EnergyLossKWH: 2},
		}
		s := Summarize(records)

		if s.TotalMeterKWH != 70 || s.TotalMileage != 500 || s.TotalLossKWH != 6 {
			t.Fatalf("totals wrong: %+v", s)
		}
		// (70 - 6 - 36) / 500 * 100 = 5.6
		if s.AvgConsumption != 5.6 {
			t.Errorf("avg consumption = %v, want 5.6", s.AvgConsumption)
		}
		// (140 - 80) / 500 = 0.12
		if s.AvgCostPerKM != 0.12 {
			t.Errorf("avg cost = %v, want 0.12", s.AvgCostPerKM)
		}
		// 140 / 70 = 2
		if s.AvgPricePerKWH != 2 {
			t.Errorf("avg price = %v, want 2", s.AvgPricePerKWH)
		}
	})
}

func TestTrend(t *testing.T) {
	now := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)

	records := []models.ChargingRecord{
		{ChargingDate: "2024-03-18", DrivenMileage: 120, Amount: 50},
		{ChargingDate: "2024-03-05", DrivenMileage: 80, Amount: 30},
		{ChargingDate: "2024-02-20", DrivenMileage: 100, Amount: 40},
		{ChargingDate: "2024-01-15", DrivenMileage: 999, Amount: 999}, // outside both windows
		{ChargingDate: "not-a-date", DrivenMileage: 1, Amount: 1},
	}

	tr := Trend(records, now)

	if tr.Current.Records != 2 || tr.Current.Mileage != 200 || tr.Current.Amount != 80 {
		t.Errorf("current bucket = %+v", tr.Current)
	}
	if tr.Previous.Records != 1 || tr.Previous.Mileage != 100 || tr.Previous.Amount != 40 {
		t.Errorf("previous bucket = %+v", tr.Previous)
	}
	if tr.Change.Records != 100 {
		t.Errorf("records change = %v, want 100", tr.Change.Records)
	}
	if tr.Change.Mileage != 100 {
		t.Errorf("mileage change = %v, want 100", tr.Change.Mileage)
	}
	if tr.Change.Amount != 100 {
		t.Errorf("amount change = %v, want 100", tr.Change.Amount)
	}

	t.Run("empty previous month", func(t *testing.T) {
		tr := Trend(records[:2], now)
		if tr.Change.Records != 0 || tr.Change.Mileage != 0 || tr.Change.Amount != 0 {
			t.Errorf("changes with empty baseline = %+v, want zeros", tr.Change)
		}
	})
}

func TestLocations(t *testing.T) {
	records := []models.ChargingRecord{
		{ChargingLocation: "home"},
		{ChargingLocation: "office"},
		{ChargingLocation: "home"},
		{ChargingLocation: ""},
		{ChargingLocation: "home"},
	}

	groups, total := Locations(records)
	// the record without a location stays out of the breakdown
	if total != 4 {
		t.Errorf("total = %d, want 4", total)
	}
	if len(groups) != 2 {
		t.Fatalf("group count = %d, want 2", len(groups))
	}
	if groups[0].Location != "home" || groups[0].Count != 3 {
		t.Errorf("top group = %+v, want home/3", groups[0])
	}

	var sum int
	for _, g := range groups {
		sum += g.Count
	}
	if sum != total {
		t.Errorf("group counts sum to %d, total is %d", sum, total)
	}
}
