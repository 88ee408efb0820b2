// Package spreadsheet renders a booking as a one-row xlsx workbook for staff.
package spreadsheet

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tiyasha05/Dental-Art-api/internal/models"
)

const (
	SheetName   = "Appointments"
	Filename    = "appointment.xlsx"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	// TimestampLayout mirrors the browser locale string the clinic is used to.
	TimestampLayout = "1/2/2006, 3:04:05 PM"
)

// Columns is the fixed header row.
var Columns = []string{"Name", "Phone", "Treatment", "Doctor", "Date", "Time", "Submitted At"}

// Row returns the data row for a submission in column order.
func Row(sub models.AppointmentSubmission, submittedAt time.Time) []string {
	return []string{
		sub.Name,
		sub.Phone,
		sub.Treatment,
		sub.Doctor,
		sub.Date,
		sub.Time(),
		submittedAt.Local().Format(TimestampLayout),
	}
}

// BuildAppointment serialises the header and a single data row to xlsx bytes.
func BuildAppointment(sub models.AppointmentSubmission, submittedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	row := Row(sub, submittedAt)
	values := make([]interface{}, len(row))
	for i, c := range row {
		values[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A2", &values); err != nil {
		return nil, fmt.Errorf("failed to write appointment row: %w", err)
	}

	if err := f.SetColWidth(SheetName, "A", "G", 20); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Attachment wraps workbook bytes for a notification.
func Attachment(content []byte) *models.Attachment {
	return &models.Attachment{
		Filename:    Filename,
		ContentType: ContentType,
		Content:     content,
	}
}
