package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const bookingsSheet = "Бронирования"

// Exporter writes booking reports as xlsx files into the exports
// directory.
type Exporter struct {
	path   string
	logger *zerolog.Logger
}

func NewExporter(path string, logger *zerolog.Logger) *Exporter {
	return &Exporter{path: path, logger: logger}
}

// BookingsToExcel renders the owner's bookings into a workbook and
// returns the saved file path.
func (e *Exporter) BookingsToExcel(ownerID int64, bookings []*models.Booking) (string, error) {
	// Создаем папку для экспорта, если не существует
	if err := os.MkdirAll(e.path, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(bookingsSheet)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := []string{"ID", "Вещь", "Арендатор", "Начало", "Конец", "Статус", "Создано"}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(bookingsSheet, cell, header)
		_ = f.SetCellStyle(bookingsSheet, cell, cell, headerStyle)
	}

	for i, booking := range bookings {
		row := i + 2
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("A%d", row), booking.ID)
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("B%d", row), booking.ItemName)
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("C%d", row), booking.BookerName)
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("D%d", row), booking.Start.Format("02.01.2006 15:04"))
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("E%d", row), booking.End.Format("02.01.2006 15:04"))
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("F%d", row), statusLabel(booking.Status))
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("G%d", row), booking.CreatedAt.Format("02.01.2006 15:04"))
	}

	_ = f.SetColWidth(bookingsSheet, "A", "A", 8)
	_ = f.SetColWidth(bookingsSheet, "B", "C", 25)
	_ = f.SetColWidth(bookingsSheet, "D", "G", 18)

	// Удаляем стандартный лист
	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("bookings_owner_%d_%s.xlsx", ownerID, time.Now().Format("2006-01-02_15-04-05"))
	filePath := filepath.Join(e.path, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %w", err)
	}

	e.logger.Info().Str("file_path", filePath).Int("bookings", len(bookings)).Msg("bookings export created")
	return filePath, nil
}

func statusLabel(status string) string {
	switch status {
	case models.StatusApproved:
		return "Подтверждено"
	case models.StatusRejected:
		return "Отклонено"
	case models.StatusWaiting:
		return "Ожидает"
	default:
		return status
	}
}
