package booking

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativeAmount      = errors.New("amount cannot be negative")
	ErrInvalidSplitPercent = errors.New("split percentage must be between 0 and 100")
)

// Money is a two-decimal monetary amount. Construction rounds half away
// from zero so every stored amount is an exact number of cents.
type Money struct {
	amount decimal.Decimal
}

func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	return Money{amount: amount.Round(2)}, nil
}

func NewMoneyFromFloat(value float64) (Money, error) {
	return NewMoney(decimal.NewFromFloat(value))
}

func MustMoney(amount decimal.Decimal) Money {
	m, err := NewMoney(amount)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) StringFixed() string {
	return m.amount.StringFixed(2)
}

// SplitRatio is the partner/platform revenue division. The partner
// percentage is the single source of truth; the platform side is the
// remainder, so the two shares always add up to 100%.
type SplitRatio struct {
	partnerPercent int64
}

const DefaultPartnerPercent = 60

func NewSplitRatio(partnerPercent int) (SplitRatio, error) {
	if partnerPercent < 0 || partnerPercent > 100 {
		return SplitRatio{}, ErrInvalidSplitPercent
	}
	return SplitRatio{partnerPercent: int64(partnerPercent)}, nil
}

func DefaultSplitRatio() SplitRatio {
	return SplitRatio{partnerPercent: DefaultPartnerPercent}
}

func (r SplitRatio) PartnerPercent() int64 {
	return r.partnerPercent
}

func (r SplitRatio) PlatformPercent() int64 {
	return 100 - r.partnerPercent
}

// FinancialSplit divides a booking's total between the partner and the
// platform. The partner share is rounded to two decimals half away from
// zero; the platform takes the remainder, so partner + multipark always
// equals the total exactly.
type FinancialSplit struct {
	total     Money
	partner   Money
	multipark Money
}

func NewFinancialSplit(total Money, ratio SplitRatio) FinancialSplit {
	partnerAmount := total.Amount().
		Mul(decimal.NewFromInt(ratio.PartnerPercent())).
		Div(decimal.NewFromInt(100)).
		Round(2)
	partner := Money{amount: partnerAmount}
	return FinancialSplit{
		total:     total,
		partner:   partner,
		multipark: total.Sub(partner),
	}
}

func ReconstructFinancialSplit(total, partner, multipark Money) FinancialSplit {
	return FinancialSplit{total: total, partner: partner, multipark: multipark}
}

func (s FinancialSplit) TotalAmount() Money     { return s.total }
func (s FinancialSplit) PartnerAmount() Money   { return s.partner }
func (s FinancialSplit) MultiparkAmount() Money { return s.multipark }
