package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/scheduler"
	"github.com/xuri/excelize/v2"
)

func TestWriteMonthXLSX(t *testing.T) {
	s, err := scheduler.NewScheduler(scheduler.DefaultShiftTypes(), map[string]string{
		"2025-02-01": "MATT",
		"2025-02-02": "NOTTE",
	}, nil)
	require.NoError(t, err)
	require.NoError(t, s.SetNote("2025-02-02", "swap with Luca", ""))

	var buf bytes.Buffer
	err = WriteMonthXLSX(&buf, s.MonthReport(2025, time.February), s.MonthStats(2025, time.February))
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheet := SheetName(2025, 2)
	assert.Equal(t, []string{sheet}, f.GetSheetList())

	v, err := f.GetCellValue(sheet, "C4")
	require.NoError(t, err)
	assert.Equal(t, "Mattina", v)
	v, _ = f.GetCellValue(sheet, "F5")
	assert.Equal(t, "swap with Luca", v)
	v, _ = f.GetCellValue(sheet, "B31")
	assert.Equal(t, "2025-02-28", v)
	v, _ = f.GetCellValue(sheet, "A36")
	assert.Equal(t, "Totale ore", v)
	v, _ = f.GetCellValue(sheet, "C36")
	assert.Equal(t, "16", v)
}
