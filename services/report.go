package services

import (
	"bytes"
	"fmt"
	"time"

	"barber_flow_app_go/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// BuildReservationsReport produces an Excel workbook with every reservation
// in the [from, to] date range (inclusive, shop-local days), one sheet of
// rows plus a summary block. Dates inside the sheet are rendered in the
// shop timezone.
func BuildReservationsReport(database *gorm.DB, loc *time.Location, from, to time.Time) (*bytes.Buffer, error) {
	if to.Before(from) {
		return nil, NewCodedError(CodeInvalidDateRange, "end date must not be before start date")
	}

	var reservations []models.Reservation
	err := database.Preload("Barber").Preload("Customer").Preload("Service").
		Where("start_time >= ? AND start_time < ?", DayStart(from, loc).UTC(), DayEnd(to, loc).UTC()).
		Order("start_time asc").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Reservations"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Date", "Time", "Barber", "Customer", "Service", "Duration (min)", "Price", "Status", "Cancelled By"}
	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}})
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	f.SetCellStyle(sheet, "A1", "I1", headerStyle)

	statusCounts := map[string]int{}
	row := 2
	for i := range reservations {
		r := &reservations[i]
		statusCounts[r.Status]++

		customerName := "walk-in"
		if r.Customer != nil {
			customerName = r.Customer.Name
		}

		cancelledBy := ""
		if r.CancelledBy != nil {
			cancelledBy = *r.CancelledBy
		}

		values := []interface{}{
			DateKey(r.StartTime, loc),
			HHMM(r.StartTime, loc),
			r.Barber.Name,
			customerName,
			r.Service.Name,
			r.Service.DurationMinutes,
			r.Service.Price,
			r.Status,
			cancelledBy,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	// Summary block two rows below the table
	row++
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Summary")
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), headerStyle)
	row++
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), len(reservations))
	for _, status := range []string{models.ReservationStatusConfirmed, models.ReservationStatusCompleted, models.ReservationStatusCancelled} {
		row++
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), status)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), statusCounts[status])
	}

	f.SetColWidth(sheet, "A", "B", 14)
	f.SetColWidth(sheet, "C", "E", 24)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}
	return buf, nil
}
