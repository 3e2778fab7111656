//go:build unit || e2e

package builder

import (
	"time"

	dombooking "multipark-dashboard/internal/domain/booking"
	"multipark-dashboard/internal/usecase/queries"
	"multipark-dashboard/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingBuilder struct {
	LicensePlate      string
	Name              string
	Lastname          string
	CheckoutTimestamp time.Time
	CheckoutFormatted string
	ExpectedCheckout  time.Time
	PriceDelivery     decimal.Decimal
	ParkBrand         string
	PaymentMethod     string
	PartnerPercent    int
	StatusApproved    bool
	ApprovedAt        *time.Time
	CreatedAt         time.Time
}

func NewBookingBuilder() *BookingBuilder {
	expected := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		LicensePlate:      "AA-12-BB",
		Name:              "Maria",
		Lastname:          "Silva",
		CheckoutTimestamp: expected,
		CheckoutFormatted: "10/03/2025 12:00",
		ExpectedCheckout:  expected,
		PriceDelivery:     decimal.NewFromFloat(100.00),
		ParkBrand:         "skypark",
		PaymentMethod:     "card",
		PartnerPercent:    dombooking.DefaultPartnerPercent,
		StatusApproved:    false,
		ApprovedAt:        nil,
		CreatedAt:         expected,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildInput() dombooking.Input {
	return dombooking.Input{
		LicensePlate:      b.LicensePlate,
		Name:              b.Name,
		Lastname:          b.Lastname,
		CheckoutTimestamp: b.CheckoutTimestamp,
		CheckoutFormatted: b.CheckoutFormatted,
		ExpectedCheckout:  b.ExpectedCheckout,
		PriceDelivery:     b.PriceDelivery,
		ParkBrand:         b.ParkBrand,
		PaymentMethod:     b.PaymentMethod,
	}
}

func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	ratio, err := dombooking.NewSplitRatio(b.PartnerPercent)
	if err != nil {
		return nil, err
	}
	return dombooking.NewBooking(b.BuildInput(), ratio, b.CreatedAt)
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	diff := dombooking.CalendarDayDifference(b.ExpectedCheckout, b.CheckoutTimestamp)
	total := b.PriceDelivery.Round(2)
	partner := total.Mul(decimal.NewFromInt(int64(b.PartnerPercent))).Div(decimal.NewFromInt(100)).Round(2)
	return &queries.BookingView{
		ID:                 uuid.New(),
		LicensePlate:       b.LicensePlate,
		Name:               b.Name,
		Lastname:           b.Lastname,
		CheckoutTimestamp:  b.CheckoutTimestamp,
		CheckoutFormatted:  b.CheckoutFormatted,
		ExpectedCheckout:   b.ExpectedCheckout,
		DateDifferenceDays: diff,
		NeedsApproval:      diff > 1,
		ParkBrand:          b.ParkBrand,
		PaymentMethod:      b.PaymentMethod,
		StatusApproved:     b.StatusApproved,
		ApprovedAt:         b.ApprovedAt,
		CreatedAt:          b.CreatedAt,
		Split: queries.SplitView{
			TotalAmount:     total,
			PartnerAmount:   partner,
			MultiparkAmount: total.Sub(partner),
		},
	}
}

func (b *BookingBuilder) BuildSnapshot() *shared.BookingSnapshot {
	diff := dombooking.CalendarDayDifference(b.ExpectedCheckout, b.CheckoutTimestamp)
	return &shared.BookingSnapshot{
		ID:             uuid.New(),
		NeedsApproval:  diff > 1,
		StatusApproved: b.StatusApproved,
		ApprovedAt:     b.ApprovedAt,
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithLicensePlate(plate string) *BookingBuilder {
	b.LicensePlate = plate
	return b
}

func (b *BookingBuilder) WithCheckoutTimestamp(t time.Time) *BookingBuilder {
	b.CheckoutTimestamp = t
	return b
}

func (b *BookingBuilder) WithExpectedCheckout(t time.Time) *BookingBuilder {
	b.ExpectedCheckout = t
	return b
}

func (b *BookingBuilder) WithPriceDelivery(price decimal.Decimal) *BookingBuilder {
	b.PriceDelivery = price
	return b
}

func (b *BookingBuilder) WithParkBrand(brand string) *BookingBuilder {
	b.ParkBrand = brand
	return b
}

func (b *BookingBuilder) WithPaymentMethod(method string) *BookingBuilder {
	b.PaymentMethod = method
	return b
}

func (b *BookingBuilder) WithPartnerPercent(percent int) *BookingBuilder {
	b.PartnerPercent = percent
	return b
}

func (b *BookingBuilder) AsApproved(at time.Time) *BookingBuilder {
	b.StatusApproved = true
	b.ApprovedAt = &at
	return b
}

// AsLateCheckout pushes the actual checkout the given number of days past
// the expected one.
func (b *BookingBuilder) AsLateCheckout(days int) *BookingBuilder {
	b.CheckoutTimestamp = b.ExpectedCheckout.AddDate(0, 0, days)
	return b
}
