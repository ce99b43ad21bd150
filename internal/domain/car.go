package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type CarType string

const (
	CarTypeSedan     CarType = "SEDAN"
	CarTypeSUV       CarType = "SUV"
	CarTypeHatchback CarType = "HATCHBACK"
	CarTypeUniversal CarType = "UNIVERSAL"
)

// ParseCarType is case-insensitive; anything unrecognized becomes UNIVERSAL.
func ParseCarType(s string) CarType {
	switch CarType(strings.ToUpper(strings.TrimSpace(s))) {
	case CarTypeSedan:
		return CarTypeSedan
	case CarTypeSUV:
		return CarTypeSUV
	case CarTypeHatchback:
		return CarTypeHatchback
	default:
		return CarTypeUniversal
	}
}

type Car struct {
	ID        int64           `json:"id"`
	Model     string          `json:"model"`
	Brand     string          `json:"brand"`
	Type      CarType         `json:"type"`
	Inventory int32           `json:"inventory"`
	DailyFee  decimal.Decimal `json:"dailyFee"`
	Deleted   bool            `json:"-"`
}
