// Package report renders a month of shifts as a spreadsheet.
package report

import (
	"fmt"
	"io"

	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/models"
	"github.com/xuri/excelize/v2"
)

var headers = []string{"Giorno", "Data", "Turno", "Orario", "Ore", "Nota"}

// WriteMonthXLSX writes the day rows followed by the per-type summary of the month
func WriteMonthXLSX(w io.Writer, rows []models.ReportRow, stats models.MonthStatistics) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(stats.Year, int(stats.Month))
	index, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	f.SetCellValue(sheet, "A1", fmt.Sprintf("Turni di lavoro - %s", sheet))
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}); err == nil {
		f.SetCellStyle(sheet, "A1", "A1", style)
	}
	f.MergeCell(sheet, "A1", "F1")

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		f.SetCellValue(sheet, cell, h)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "top", Color: "#000000", Style: 1},
			{Type: "bottom", Color: "#000000", Style: 2},
		},
	})
	if err == nil {
		f.SetCellStyle(sheet, "A3", "F3", headerStyle)
	}

	row := 4
	for _, r := range rows {
		values := []any{r.Day, r.Date, r.ShiftName, r.TimeRange, hoursCell(r.Hours), r.NoteTitle}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	row++
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Riepilogo")
	for _, e := range stats.Entries() {
		row++
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), e.Label)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), e.Days)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), e.Hours)
	}
	row++
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Totale ore")
	f.SetCellValue(sheet, fmt.Sprintf("C%d", row), stats.TotalHours)

	f.SetColWidth(sheet, "B", "B", 12)
	f.SetColWidth(sheet, "C", "C", 18)
	f.SetColWidth(sheet, "F", "F", 30)

	return f.Write(w)
}

// SheetName is the MM/YYYY label of a month, with "-" since "/" is not allowed in sheet names
func SheetName(year, month int) string {
	return fmt.Sprintf("%02d-%d", month, year)
}

func hoursCell(h float64) any {
	if h == 0 {
		return ""
	}
	return h
}
