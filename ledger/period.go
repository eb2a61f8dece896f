package ledger

import (
	"errors"
	"fmt"
	"strings"
)

// Period 预算展示周期，存储的金额一律是月度金额
type Period string

const (
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
	Yearly  Period = "yearly"
)

// 周与月之间按固定 4 周换算，而不是 52/12
const (
	weeklyFactor  = 0.25
	weeksPerMonth = 4
	monthsPerYear = 12
)

// ErrUnknownPeriod 无法识别的周期
var ErrUnknownPeriod = errors.New("unknown budget period")

// ParsePeriod 解析周期字符串，空字符串视为月度
func ParsePeriod(s string) (Period, error) {
	switch Period(strings.ToLower(strings.TrimSpace(s))) {
	case Weekly:
		return Weekly, nil
	case Monthly, "":
		return Monthly, nil
	case Yearly:
		return Yearly, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPeriod, s)
}

// ToDisplay 月度金额 -> 展示周期金额
func ToDisplay(monthly float64, p Period) float64 {
	switch p {
	case Weekly:
		return monthly * weeklyFactor
	case Yearly:
		return monthly * monthsPerYear
	}
	return monthly
}

// ToCanonical 展示周期金额 -> 月度金额
func ToCanonical(display float64, p Period) float64 {
	switch p {
	case Weekly:
		return display * weeksPerMonth
	case Yearly:
		return display / monthsPerYear
	}
	return display
}
