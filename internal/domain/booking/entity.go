package booking

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyLicensePlate       = errors.New("license plate is required")
	ErrMissingCheckout         = errors.New("actual checkout timestamp is required")
	ErrMissingExpectedCheckout = errors.New("expected checkout timestamp is required")
	ErrNegativePrice           = errors.New("delivery price cannot be negative")
)

// approvalDayTolerance is the largest checkout-date difference, in whole
// days, that does not require manual sign-off. A one-day slip is flagged
// with a warning but is still auto-acceptable.
const approvalDayTolerance = 1

// Input is one raw booking entry as produced by an external parser.
type Input struct {
	LicensePlate      string
	Name              string
	Lastname          string
	CheckoutTimestamp time.Time
	CheckoutFormatted string
	ExpectedCheckout  time.Time
	PriceDelivery     decimal.Decimal
	ParkBrand         string
	PaymentMethod     string
}

type Booking struct {
	id                 uuid.UUID
	licensePlate       string
	name               string
	lastname           string
	checkoutTimestamp  time.Time
	checkoutFormatted  string
	expectedCheckout   time.Time
	dateDifferenceDays int
	needsApproval      bool
	priceDelivery      Money
	parkBrand          string
	paymentMethod      string
	statusApproved     bool
	approvedAt         *time.Time
	createdAt          time.Time
	split              FinancialSplit
}

// NewBooking reconciles one raw entry into a fully derived booking record.
// The date difference is computed on calendar-day granularity: both
// instants are truncated to their UTC calendar date before subtracting,
// so partial days never count.
func NewBooking(in Input, ratio SplitRatio, now time.Time) (*Booking, error) {
	plate := strings.TrimSpace(in.LicensePlate)
	if plate == "" {
		return nil, ErrEmptyLicensePlate
	}
	if in.CheckoutTimestamp.IsZero() {
		return nil, ErrMissingCheckout
	}
	if in.ExpectedCheckout.IsZero() {
		return nil, ErrMissingExpectedCheckout
	}

	price, err := NewMoney(in.PriceDelivery)
	if err != nil {
		return nil, ErrNegativePrice
	}

	diff := CalendarDayDifference(in.ExpectedCheckout, in.CheckoutTimestamp)

	return &Booking{
		id:                 uuid.New(),
		licensePlate:       plate,
		name:               strings.TrimSpace(in.Name),
		lastname:           strings.TrimSpace(in.Lastname),
		checkoutTimestamp:  in.CheckoutTimestamp,
		checkoutFormatted:  strings.TrimSpace(in.CheckoutFormatted),
		expectedCheckout:   in.ExpectedCheckout,
		dateDifferenceDays: diff,
		needsApproval:      diff > approvalDayTolerance,
		priceDelivery:      price,
		parkBrand:          strings.ToLower(strings.TrimSpace(in.ParkBrand)),
		paymentMethod:      strings.TrimSpace(in.PaymentMethod),
		statusApproved:     false,
		approvedAt:         nil,
		createdAt:          now,
		split:              NewFinancialSplit(price, ratio),
	}, nil
}

func ReconstructBooking(
	id uuid.UUID,
	licensePlate, name, lastname string,
	checkoutTimestamp time.Time,
	checkoutFormatted string,
	expectedCheckout time.Time,
	dateDifferenceDays int,
	needsApproval bool,
	priceDelivery Money,
	parkBrand, paymentMethod string,
	statusApproved bool,
	approvedAt *time.Time,
	createdAt time.Time,
	split FinancialSplit,
) *Booking {
	return &Booking{
		id:                 id,
		licensePlate:       licensePlate,
		name:               name,
		lastname:           lastname,
		checkoutTimestamp:  checkoutTimestamp,
		checkoutFormatted:  checkoutFormatted,
		expectedCheckout:   expectedCheckout,
		dateDifferenceDays: dateDifferenceDays,
		needsApproval:      needsApproval,
		priceDelivery:      priceDelivery,
		parkBrand:          parkBrand,
		paymentMethod:      paymentMethod,
		statusApproved:     statusApproved,
		approvedAt:         approvedAt,
		createdAt:          createdAt,
		split:              split,
	}
}

// Approve transitions the booking from pending to approved. Approving an
// already approved booking is a no-op: approved_at keeps its first value
// and the approved state never reverts.
func (b *Booking) Approve(now time.Time) {
	if b.statusApproved {
		return
	}
	b.statusApproved = true
	t := now
	b.approvedAt = &t
}

func (b *Booking) State() ApprovalState {
	if b.statusApproved {
		return StateApproved
	}
	return StatePending
}

func (b *Booking) Severity() MatchSeverity {
	return SeverityForDifference(b.dateDifferenceDays)
}

// IsPendingApproval reports whether the booking counts toward the
// pending-approval statistic: it requires sign-off and has not yet
// received it. Unapproved bookings that never needed approval do not
// count.
func (b *Booking) IsPendingApproval() bool {
	return b.needsApproval && !b.statusApproved
}

func (b *Booking) ID() uuid.UUID                { return b.id }
func (b *Booking) LicensePlate() string         { return b.licensePlate }
func (b *Booking) Name() string                 { return b.name }
func (b *Booking) Lastname() string             { return b.lastname }
func (b *Booking) CheckoutTimestamp() time.Time { return b.checkoutTimestamp }
func (b *Booking) CheckoutFormatted() string    { return b.checkoutFormatted }
func (b *Booking) ExpectedCheckout() time.Time  { return b.expectedCheckout }
func (b *Booking) DateDifferenceDays() int      { return b.dateDifferenceDays }
func (b *Booking) NeedsApproval() bool          { return b.needsApproval }
func (b *Booking) PriceDelivery() Money         { return b.priceDelivery }
func (b *Booking) ParkBrand() string            { return b.parkBrand }
func (b *Booking) PaymentMethod() string        { return b.paymentMethod }
func (b *Booking) StatusApproved() bool         { return b.statusApproved }
func (b *Booking) ApprovedAt() *time.Time       { return b.approvedAt }
func (b *Booking) CreatedAt() time.Time         { return b.createdAt }
func (b *Booking) Split() FinancialSplit        { return b.split }

// CalendarDayDifference returns the absolute whole-day difference between
// two instants, truncated to UTC calendar dates.
func CalendarDayDifference(expected, actual time.Time) int {
	ey, em, ed := expected.UTC().Date()
	ay, am, ad := actual.UTC().Date()
	e := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	a := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	days := int(a.Sub(e).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days
}
