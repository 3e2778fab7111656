package spreadsheet

import (
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"multipark-dashboard/internal/domain/booking"
	"multipark-dashboard/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var (
	ErrNoSheets       = errs.New("workbook has no sheets")
	ErrEmptySheet     = errs.New("sheet contains no data rows")
	ErrMissingColumns = errs.New("missing required columns")
)

// requiredColumns are the export headers the dashboard depends on. The
// export carries more columns; extras are ignored.
var requiredColumns = []string{
	"licensePlate", "checkoutDate", "checkOut", "priceOnDelivery",
	"parkBrand", "paymentMethod", "name", "lastname",
}

// checkoutLayouts are the formats observed in the export's formatted
// checkout column, most specific first.
var checkoutLayouts = []string{
	"02/01/2006, 15:04",
	"02/01/2006 15:04",
	"02-01-2006, 15:04",
	"02-01-2006 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"02/01/2006",
	"02-01-2006",
	"2006-01-02",
}

// firebaseTimestampRe matches the raw export form of the checkout
// timestamp: Timestamp(seconds=1750625764, nanoseconds=637000000)
var firebaseTimestampRe = regexp.MustCompile(`seconds=(\d+)`)

// XLSXParser turns a booking export workbook into raw ingestion entries.
// Unparseable timestamps are left zero so the reconciliation engine can
// reject the entry individually instead of failing the whole file.
type XLSXParser struct{}

func NewXLSXParser() *XLSXParser {
	return &XLSXParser{}
}

func (p *XLSXParser) Parse(r io.Reader) ([]booking.Input, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errs.Wrap(err, "failed to open workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errs.Wrap(err, "failed to read sheet rows")
	}
	if len(rows) < 2 {
		return nil, ErrEmptySheet
	}

	columns, err := indexColumns(rows[0])
	if err != nil {
		return nil, err
	}

	entries := make([]booking.Input, 0, len(rows)-1)
	for _, row := range rows[1:] {
		plate := strings.TrimSpace(cell(row, columns["licensePlate"]))
		if plate == "" {
			continue
		}

		entries = append(entries, booking.Input{
			LicensePlate:      plate,
			Name:              strings.TrimSpace(cell(row, columns["name"])),
			Lastname:          strings.TrimSpace(cell(row, columns["lastname"])),
			CheckoutTimestamp: parseTimestamp(cell(row, columns["checkoutDate"])),
			CheckoutFormatted: strings.TrimSpace(cell(row, columns["checkOut"])),
			ExpectedCheckout:  ParseFormattedDate(cell(row, columns["checkOut"])),
			PriceDelivery:     parsePrice(cell(row, columns["priceOnDelivery"])),
			ParkBrand:         strings.TrimSpace(cell(row, columns["parkBrand"])),
			PaymentMethod:     strings.TrimSpace(cell(row, columns["paymentMethod"])),
		})
	}
	return entries, nil
}

func indexColumns(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, errs.Mark(
			errs.Newf("missing required columns: %s", strings.Join(missing, ", ")),
			ErrMissingColumns,
		)
	}
	return index, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// parseTimestamp handles the raw checkout timestamp column, which the
// export writes either as a Firebase Timestamp literal or as a plain
// date string.
func parseTimestamp(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}

	if strings.Contains(value, "Timestamp(") {
		if m := firebaseTimestampRe.FindStringSubmatch(value); m != nil {
			seconds, err := strconv.ParseInt(m[1], 10, 64)
			if err == nil {
				return time.Unix(seconds, 0).UTC()
			}
		}
		return time.Time{}
	}

	return ParseFormattedDate(value)
}

// ParseFormattedDate parses the free-form formatted checkout column,
// trying each known layout in order. A zero time means no layout matched.
func ParseFormattedDate(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range checkoutLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t
		}
	}
	return time.Time{}
}

func parsePrice(value string) decimal.Decimal {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero
	}
	// Exports from locales with comma decimal separators
	if !strings.Contains(value, ".") {
		value = strings.Replace(value, ",", ".", 1)
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return d
}
