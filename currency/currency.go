// Package currency 金额展示格式化
package currency

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// 货币符号表，未知货币使用 USD 符号
var symbols = map[string]string{
	"USD": "$",
	"INR": "₹",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CAD": "CA$",
	"AUD": "A$",
	"CHF": "CHF ",
	"CNY": "¥",
}

const defaultSymbol = "$"

var (
	usPrinter     = message.NewPrinter(language.AmericanEnglish)
	indianPrinter = message.NewPrinter(language.MustParse("en-IN"))
)

// Symbol 返回货币符号
func Symbol(code string) string {
	if s, ok := symbols[code]; ok {
		return s
	}
	return defaultSymbol
}

// Format 符号 + 千分位分组 + 两位小数。INR 使用印度分组（lakh/crore），其余使用美式分组
func Format(amount float64, code string) string {
	p := usPrinter
	if code == "INR" {
		p = indianPrinter
	}
	rounded, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return Symbol(code) + p.Sprint(number.Decimal(rounded,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// FormatSimple 符号 + 两位小数，不分组
func FormatSimple(amount float64, code string) string {
	return Symbol(code) + decimal.NewFromFloat(amount).StringFixed(2)
}
