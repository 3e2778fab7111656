package queries

import (
	"time"

	"multipark-dashboard/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrInvalidFilter   = errs.New("invalid filter")
)

type BookingView struct {
	ID                 uuid.UUID  `json:"id"`
	LicensePlate       string     `json:"license_plate"`
	Name               string     `json:"name"`
	Lastname           string     `json:"lastname"`
	CheckoutTimestamp  time.Time  `json:"checkout_timestamp"`
	CheckoutFormatted  string     `json:"checkout_formatted"`
	ExpectedCheckout   time.Time  `json:"expected_checkout"`
	DateDifferenceDays int        `json:"date_difference_days"`
	NeedsApproval      bool       `json:"needs_approval"`
	ParkBrand          string     `json:"park_brand"`
	PaymentMethod      string     `json:"payment_method"`
	StatusApproved     bool       `json:"status_approved"`
	ApprovedAt         *time.Time `json:"approved_at"`
	CreatedAt          time.Time  `json:"created_at"`
	Split              SplitView  `json:"split"`
}

type SplitView struct {
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PartnerAmount   decimal.Decimal `json:"partner_amount"`
	MultiparkAmount decimal.Decimal `json:"multipark_amount"`
}

// Filters narrow a booking listing. Nil fields mean "no filter"; set
// fields are intersected.
type Filters struct {
	Brand    *string
	Approved *bool
}

type DashboardStats struct {
	TotalBookings   int             `json:"total_bookings"`
	PendingApproval int             `json:"pending_approval"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PartnerAmount   decimal.Decimal `json:"partner_amount"`
	MultiparkAmount decimal.Decimal `json:"multipark_amount"`
	ApprovalRate    int             `json:"approval_rate"`
}

type SummaryGroup string

const (
	GroupByBrand         SummaryGroup = "brand"
	GroupByPaymentMethod SummaryGroup = "payment_method"
)

func (g SummaryGroup) IsValid() bool {
	switch g {
	case GroupByBrand, GroupByPaymentMethod:
		return true
	default:
		return false
	}
}

type FinancialSummaryRow struct {
	Key             string          `json:"key"`
	Count           int             `json:"count"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PartnerAmount   decimal.Decimal `json:"partner_amount"`
	MultiparkAmount decimal.Decimal `json:"multipark_amount"`
	PercentOfTotal  decimal.Decimal `json:"percent_of_total"`
}
