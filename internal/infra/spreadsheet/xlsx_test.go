//go:build unit

package spreadsheet_test

import (
	"bytes"
	"testing"
	"time"

	"multipark-dashboard/internal/infra/spreadsheet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var exportHeader = []string{
	"licensePlate", "checkoutDate", "checkOut", "priceOnDelivery",
	"parkBrand", "paymentMethod", "name", "lastname",
}

// buildWorkbook writes a single-sheet xlsx with the given header and rows.
func buildWorkbook(t *testing.T, header []string, rows [][]string) *bytes.Reader {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if header != nil {
		require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	}
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return bytes.NewReader(buf.Bytes())
}

func TestParse(t *testing.T) {
	parser := spreadsheet.NewXLSXParser()

	t.Run("parses a complete export row", func(t *testing.T) {
		wb := buildWorkbook(t, exportHeader, [][]string{
			{"AA-12-BB", "Timestamp(seconds=1750625764, nanoseconds=637000000)", "22/06/2025, 21:16", "100.50", "SkyPark", "card", "Maria", "Silva"},
		})

		entries, err := parser.Parse(wb)
		require.NoError(t, err)
		require.Len(t, entries, 1)

		e := entries[0]
		assert.Equal(t, "AA-12-BB", e.LicensePlate)
		assert.Equal(t, "Maria", e.Name)
		assert.Equal(t, "Silva", e.Lastname)
		assert.Equal(t, time.Unix(1750625764, 0).UTC(), e.CheckoutTimestamp)
		assert.Equal(t, "22/06/2025, 21:16", e.CheckoutFormatted)
		assert.Equal(t, time.Date(2025, 6, 22, 21, 16, 0, 0, time.UTC), e.ExpectedCheckout)
		assert.Equal(t, "100.5", e.PriceDelivery.String())
		assert.Equal(t, "SkyPark", e.ParkBrand)
		assert.Equal(t, "card", e.PaymentMethod)
	})

	t.Run("skips rows without a license plate", func(t *testing.T) {
		wb := buildWorkbook(t, exportHeader, [][]string{
			{"", "Timestamp(seconds=1750625764)", "22/06/2025, 21:16", "10", "brand", "card", "A", "B"},
			{"CC-34-DD", "Timestamp(seconds=1750625764)", "22/06/2025, 21:16", "10", "brand", "card", "A", "B"},
		})

		entries, err := parser.Parse(wb)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "CC-34-DD", entries[0].LicensePlate)
	})

	t.Run("unparseable timestamps stay zero instead of failing the file", func(t *testing.T) {
		wb := buildWorkbook(t, exportHeader, [][]string{
			{"EE-56-FF", "not a timestamp", "also not a date", "10", "brand", "card", "A", "B"},
		})

		entries, err := parser.Parse(wb)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.True(t, entries[0].CheckoutTimestamp.IsZero())
		assert.True(t, entries[0].ExpectedCheckout.IsZero())
	})

	t.Run("comma decimal separator prices", func(t *testing.T) {
		wb := buildWorkbook(t, exportHeader, [][]string{
			{"GG-78-HH", "Timestamp(seconds=1750625764)", "22/06/2025, 21:16", "12,50", "brand", "cash", "A", "B"},
		})

		entries, err := parser.Parse(wb)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "12.5", entries[0].PriceDelivery.String())
	})

	t.Run("extra columns are ignored", func(t *testing.T) {
		header := append(append([]string{}, exportHeader...), "deliveryDate", "condutorEntrega")
		wb := buildWorkbook(t, header, [][]string{
			{"II-90-JJ", "Timestamp(seconds=1750625764)", "22/06/2025, 21:16", "10", "brand", "card", "A", "B", "23/06/2025", "driver"},
		})

		entries, err := parser.Parse(wb)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("error: missing required columns", func(t *testing.T) {
		wb := buildWorkbook(t, []string{"licensePlate", "checkOut"}, [][]string{
			{"KK-12-LL", "22/06/2025"},
		})

		_, err := parser.Parse(wb)
		require.ErrorIs(t, err, spreadsheet.ErrMissingColumns)
	})

	t.Run("error: header only sheet", func(t *testing.T) {
		wb := buildWorkbook(t, exportHeader, nil)

		_, err := parser.Parse(wb)
		require.ErrorIs(t, err, spreadsheet.ErrEmptySheet)
	})

	t.Run("error: not a workbook", func(t *testing.T) {
		_, err := parser.Parse(bytes.NewReader([]byte("definitely not xlsx")))
		require.Error(t, err)
	})
}

func TestParseFormattedDate(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  time.Time
	}{
		{name: "slash date with comma time", value: "22/06/2025, 21:16", want: time.Date(2025, 6, 22, 21, 16, 0, 0, time.UTC)},
		{name: "slash date with time", value: "22/06/2025 21:16", want: time.Date(2025, 6, 22, 21, 16, 0, 0, time.UTC)},
		{name: "dash date", value: "22-06-2025", want: time.Date(2025, 6, 22, 0, 0, 0, 0, time.UTC)},
		{name: "iso date", value: "2025-06-22", want: time.Date(2025, 6, 22, 0, 0, 0, 0, time.UTC)},
		{name: "iso datetime", value: "2025-06-22 21:16:05", want: time.Date(2025, 6, 22, 21, 16, 5, 0, time.UTC)},
		{name: "surrounding whitespace", value: "  22/06/2025  ", want: time.Date(2025, 6, 22, 0, 0, 0, 0, time.UTC)},
		{name: "empty", value: "", want: time.Time{}},
		{name: "garbage", value: "tomorrow-ish", want: time.Time{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, spreadsheet.ParseFormattedDate(tc.value))
		})
	}
}
