// Package export renders record collections as XLSX workbooks for download.
package export

import (
	"fmt"

	"github.com/garagebook/garagebook/internal/models"
	"github.com/xuri/excelize/v2"
)

const sheet = "Sheet1"

// ChargingWorkbook builds a spreadsheet of a vehicle's charging sessions,
// newest first, matching the order the API serves.
func ChargingWorkbook(vehicle *models.Vehicle, records []models.ChargingRecord) (*excelize.File, error) {
	f := excelize.NewFile()

	headers := []any{
		"Date", "Location", "Previous Mileage", "Current Mileage", "Driven Mileage",
		"Meter kWh", "Start %", "End %", "Car kWh", "Energy Loss kWh", "Amount", "Notes",
	}
	if err := writeRow(f, 1, headers...); err != nil {
		return nil, err
	}

	for i, r := range records {
		err := writeRow(f, i+2,
			r.ChargingDate, r.ChargingLocation,
			r.PreviousMileage, r.CurrentMileage, r.DrivenMileage,
			r.MeterChargingKWH, r.ChargingStartPercentage, r.ChargingEndPercentage,
			r.CarChargingKWH, r.EnergyLossKWH, r.Amount, r.Notes)
		if err != nil {
			return nil, err
		}
	}

	if err := f.SetColWidth(sheet, "A", "L", 16); err != nil {
		return nil, err
	}

	title := fmt.Sprintf("%s %s (%s)", vehicle.Brand, vehicle.Model, vehicle.LicensePlate)
	f.SetDocProps(&excelize.DocProperties{Title: title})
	return f, nil
}

// BillsWorkbook builds a spreadsheet of all bills with their category labels.
func BillsWorkbook(bills []models.Bill) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := writeRow(f, 1, "Date", "Amount", "Category", "Type", "Notes"); err != nil {
		return nil, err
	}

	for i, b := range bills {
		name := b.CategoryName
		if name == "" {
			name = "uncategorized"
		}
		if err := writeRow(f, i+2, b.Date, b.Amount, name, b.CategoryType, b.Notes); err != nil {
			return nil, err
		}
	}

	if err := f.SetColWidth(sheet, "A", "E", 16); err != nil {
		return nil, err
	}
	return f, nil
}

func writeRow(f *excelize.File, row int, values ...any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}
