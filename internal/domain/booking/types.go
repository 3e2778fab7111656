package booking

type ApprovalState string

const (
	StatePending  ApprovalState = "pending"
	StateApproved ApprovalState = "approved"
)

func (s ApprovalState) String() string {
	return string(s)
}

func (s ApprovalState) IsValid() bool {
	switch s {
	case StatePending, StateApproved:
		return true
	default:
		return false
	}
}

// MatchSeverity classifies the checkout-date discrepancy for display:
// a perfect match, a one-day slip that is still auto-acceptable, or a
// discrepancy that requires manual sign-off.
type MatchSeverity string

const (
	SeverityOK       MatchSeverity = "ok"
	SeverityWarning  MatchSeverity = "warning"
	SeverityCritical MatchSeverity = "critical"
)

func SeverityForDifference(days int) MatchSeverity {
	switch {
	case days == 0:
		return SeverityOK
	case days == 1:
		return SeverityWarning
	default:
		return SeverityCritical
	}
}
