// Package stats computes the derived metrics served by the API: monthly
// rollups, month-over-month change and the per-vehicle consumption/cost
// averages. Everything here is pure computation over already-loaded rows;
// sums stay unrounded internally and are rounded to two decimals only at the
// response boundary.
package stats

import (
	"math"
	"time"

	"github.com/garagebook/garagebook/internal/models"
)

const dateLayout = "2006-01-02"

// PercentChange returns the month-over-month change in percent. A zero
// previous value yields 0, not infinity: a missing baseline reads as "no
// change".
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// MonthWindow is one calendar month as an inclusive ISO date range.
type MonthWindow struct {
	Start string
	End   string
}

// MonthWindows returns the calendar-month windows containing now and the
// month before it, using actual days-in-month for the end bounds.
func MonthWindows(now time.Time) (current, previous MonthWindow) {
	y, m, _ := now.Date()
	loc := now.Location()

	curStart := time.Date(y, m, 1, 0, 0, 0, 0, loc)
	curEnd := curStart.AddDate(0, 1, -1)
	prevStart := curStart.AddDate(0, -1, 0)
	prevEnd := curStart.AddDate(0, 0, -1)

	current = MonthWindow{Start: curStart.Format(dateLayout), End: curEnd.Format(dateLayout)}
	previous = MonthWindow{Start: prevStart.Format(dateLayout), End: prevEnd.Format(dateLayout)}
	return current, previous
}

// MonthlyBills assembles the monthly rollup response from the two window sums,
// rounding at this boundary only.
func MonthlyBills(current, previous models.BillTotals) models.MonthlyBillStats {
	return models.MonthlyBillStats{
		Current: models.BillTotals{
			Income:  Round2(current.Income),
			Expense: Round2(current.Expense),
			Net:     Round2(current.Net),
		},
		Previous: models.BillTotals{
			Income:  Round2(previous.Income),
			Expense: Round2(previous.Expense),
			Net:     Round2(previous.Net),
		},
		Change: models.BillTotals{
			Income:  Round2(PercentChange(current.Income, previous.Income)),
			Expense: Round2(PercentChange(current.Expense, previous.Expense)),
			Net:     Round2(PercentChange(current.Net, previous.Net)),
		},
	}
}

// Summarize computes the running totals and averages over a vehicle's charging
// records. Records must be ordered newest first; the averages subtract the
// newest record's charge and amount because that energy has not been driven
// down yet. Every average is 0 when its denominator is 0.
func Summarize(records []models.ChargingRecord) models.ChargingSummary {
	s := models.ChargingSummary{TotalRecords: len(records)}

	for _, r := range records {
		s.TotalMeterKWH += r.MeterChargingKWH
		s.TotalCarKWH += r.CarChargingKWH
		s.TotalAmount += r.Amount
		s.TotalMileage += r.DrivenMileage
		s.TotalLossKWH += r.EnergyLossKWH
	}

	var latestCarKWH, latestAmount float64
	if len(records) > 0 {
		latestCarKWH = records[0].CarChargingKWH
		latestAmount = records[0].Amount
	}

	if s.TotalMileage > 0 {
		s.AvgConsumption = (s.TotalMeterKWH - s.TotalLossKWH - latestCarKWH) / s.TotalMileage * 100
		s.AvgCostPerKM = (s.TotalAmount - latestAmount) / s.TotalMileage
	}
	if s.TotalMeterKWH > 0 {
		s.AvgPricePerKWH = s.TotalAmount / s.TotalMeterKWH
	}

	s.AvgConsumption = Round2(s.AvgConsumption)
	s.AvgCostPerKM = Round2(s.AvgCostPerKM)
	s.AvgPricePerKWH = Round2(s.AvgPricePerKWH)
	return s
}

// Trend partitions a vehicle's records into the current and previous calendar
// month by record date and compares the buckets. Records with unparseable
// dates are skipped.
func Trend(records []models.ChargingRecord, now time.Time) models.MonthlyTrend {
	var t models.MonthlyTrend

	curYear, curMonth, _ := now.Date()
	prev := now.AddDate(0, -1, -now.Day()+1) // first of the previous month
	prevYear, prevMonth, _ := prev.Date()

	for _, r := range records {
		d, err := time.Parse(dateLayout, r.ChargingDate)
		if err != nil {
			continue
		}
		y, m, _ := d.Date()
		switch {
		case y == curYear && m == curMonth:
			t.Current.Records++
			t.Current.Mileage += r.DrivenMileage
			t.Current.Amount += r.Amount
		case y == prevYear && m == prevMonth:
			t.Previous.Records++
			t.Previous.Mileage += r.DrivenMileage
			t.Previous.Amount += r.Amount
		}
	}

	t.Change.Records = Round2(PercentChange(float64(t.Current.Records), float64(t.Previous.Records)))
	t.Change.Mileage = Round2(PercentChange(t.Current.Mileage, t.Previous.Mileage))
	t.Change.Amount = Round2(PercentChange(t.Current.Amount, t.Previous.Amount))

	t.Current.Mileage = Round2(t.Current.Mileage)
	t.Current.Amount = Round2(t.Current.Amount)
	t.Previous.Mileage = Round2(t.Previous.Mileage)
	t.Previous.Amount = Round2(t.Previous.Amount)
	return t
}

// Locations groups records by charging location and returns the groups with
// the counted total; percentage-of-whole is left to the caller. Records
// without a location are excluded from both. Groups are ordered by count
// descending, ties by first appearance.
func Locations(records []models.ChargingRecord) ([]models.LocationGroup, int) {
	counts := make(map[string]int)
	var order []string
	total := 0
	for _, r := range records {
		loc := r.ChargingLocation
		if loc == "" {
			continue
		}
		if _, seen := counts[loc]; !seen {
			order = append(order, loc)
		}
		counts[loc]++
		total++
	}

	groups := make([]models.LocationGroup, 0, len(order))
	for _, loc := range order {
		groups = append(groups, models.LocationGroup{Location: loc, Count: counts[loc]})
	}
	// insertion sort keeps the first-appearance order within equal counts
	for i := 1; i < len(groups); i++ {
		for j := i; j > 0 && groups[j].Count > groups[j-1].Count; j-- {
			groups[j], groups[j-1] = groups[j-1], groups[j]
		}
	}

	return groups, total
}
