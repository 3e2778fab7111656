package response

import (
	"time"

	"multipark-dashboard/internal/domain/booking"
	"multipark-dashboard/internal/usecase/commands"
	"multipark-dashboard/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID                 uuid.UUID     `json:"id"`
	LicensePlate       string        `json:"licensePlate"`
	Name               string        `json:"name"`
	Lastname           string        `json:"lastname"`
	CheckoutTimestamp  time.Time     `json:"checkoutTimestamp"`
	CheckoutFormatted  string        `json:"checkoutFormatted"`
	ExpectedCheckout   time.Time     `json:"expectedCheckout"`
	DateDifferenceDays int           `json:"dateDifferenceDays"`
	NeedsApproval      bool          `json:"needsApproval"`
	Severity           string        `json:"severity"`
	ParkBrand          string        `json:"parkBrand"`
	PaymentMethod      string        `json:"paymentMethod"`
	StatusApproved     bool          `json:"statusApproved"`
	ApprovedAt         *time.Time    `json:"approvedAt,omitempty"`
	CreatedAt          time.Time     `json:"createdAt"`
	Split              SplitResponse `json:"split"`
}

type SplitResponse struct {
	TotalAmount     string `json:"totalAmount"`
	PartnerAmount   string `json:"partnerAmount"`
	MultiparkAmount string `json:"multiparkAmount"`
}

func FromBookingView(v *queries.BookingView) (*BookingResponse, error) {
	var resp BookingResponse
	if err := copier.Copy(&resp, v); err != nil {
		return nil, err
	}
	resp.Severity = string(booking.SeverityForDifference(v.DateDifferenceDays))
	resp.Split = SplitResponse{
		TotalAmount:     v.Split.TotalAmount.StringFixed(2),
		PartnerAmount:   v.Split.PartnerAmount.StringFixed(2),
		MultiparkAmount: v.Split.MultiparkAmount.StringFixed(2),
	}
	return &resp, nil
}

func FromBookingViews(views []*queries.BookingView) ([]BookingResponse, error) {
	resps := make([]BookingResponse, 0, len(views))
	for _, v := range views {
		resp, err := FromBookingView(v)
		if err != nil {
			return nil, err
		}
		resps = append(resps, *resp)
	}
	return resps, nil
}

type UploadEntryError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type UploadResponse struct {
	Created       int                `json:"created"`
	NeedsApproval int                `json:"needsApproval"`
	Errors        []UploadEntryError `json:"errors"`
}

func FromIngestResult(res *commands.IngestResult) *UploadResponse {
	entryErrs := make([]UploadEntryError, 0, len(res.Errors))
	for _, e := range res.Errors {
		entryErrs = append(entryErrs, UploadEntryError{Row: e.Index, Reason: e.Err.Error()})
	}
	return &UploadResponse{
		Created:       len(res.Created),
		NeedsApproval: res.NeedsApprovalCount(),
		Errors:        entryErrs,
	}
}

type ApproveResponse struct {
	ID              uuid.UUID `json:"id"`
	AlreadyApproved bool      `json:"alreadyApproved"`
	ApprovedAt      time.Time `json:"approvedAt"`
}

func FromApproveResult(res *commands.ApproveResult) *ApproveResponse {
	return &ApproveResponse{
		ID:              res.ID,
		AlreadyApproved: res.AlreadyApproved,
		ApprovedAt:      res.ApprovedAt,
	}
}

type ApproveAllResponse struct {
	ApprovedIDs        []uuid.UUID `json:"approvedIds"`
	AlreadyApprovedIDs []uuid.UUID `json:"alreadyApprovedIds"`
	ApprovedAt         time.Time   `json:"approvedAt"`
}

func FromApproveAllResult(res *commands.ApproveAllResult) *ApproveAllResponse {
	return &ApproveAllResponse{
		ApprovedIDs:        res.ApprovedIDs,
		AlreadyApprovedIDs: res.AlreadyApprovedIDs,
		ApprovedAt:         res.ApprovedAt,
	}
}

type StatsResponse struct {
	TotalBookings   int    `json:"totalBookings"`
	PendingApproval int    `json:"pendingApproval"`
	TotalAmount     string `json:"totalAmount"`
	PartnerAmount   string `json:"partnerAmount"`
	MultiparkAmount string `json:"multiparkAmount"`
	ApprovalRate    int    `json:"approvalRate"`
}

func FromDashboardStats(s *queries.DashboardStats) *StatsResponse {
	return &StatsResponse{
		TotalBookings:   s.TotalBookings,
		PendingApproval: s.PendingApproval,
		TotalAmount:     s.TotalAmount.StringFixed(2),
		PartnerAmount:   s.PartnerAmount.StringFixed(2),
		MultiparkAmount: s.MultiparkAmount.StringFixed(2),
		ApprovalRate:    s.ApprovalRate,
	}
}

type BrandsResponse struct {
	Brands []string `json:"brands"`
}

type FinancialSummaryRowResponse struct {
	Key             string `json:"key"`
	Count           int    `json:"count"`
	TotalAmount     string `json:"totalAmount"`
	PartnerAmount   string `json:"partnerAmount"`
	MultiparkAmount string `json:"multiparkAmount"`
	PercentOfTotal  string `json:"percentOfTotal"`
}

type FinancialSummaryResponse struct {
	GroupBy string                        `json:"groupBy"`
	Rows    []FinancialSummaryRowResponse `json:"rows"`
}

func FromFinancialSummary(group queries.SummaryGroup, rows []queries.FinancialSummaryRow) *FinancialSummaryResponse {
	out := make([]FinancialSummaryRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FinancialSummaryRowResponse{
			Key:             r.Key,
			Count:           r.Count,
			TotalAmount:     r.TotalAmount.StringFixed(2),
			PartnerAmount:   r.PartnerAmount.StringFixed(2),
			MultiparkAmount: r.MultiparkAmount.StringFixed(2),
			PercentOfTotal:  r.PercentOfTotal.StringFixed(2),
		})
	}
	return &FinancialSummaryResponse{GroupBy: string(group), Rows: out}
}
