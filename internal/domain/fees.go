package domain

import "github.com/shopspring/decimal"

// Processing fees in SSP per application type.
var applicationFees = map[ApplicationType]decimal.Decimal{
	TypePassportFirst:         decimal.NewFromInt(500),
	TypePassportReplacement:   decimal.NewFromInt(300),
	TypeNationalIDFirst:       decimal.NewFromInt(200),
	TypeNationalIDReplacement: decimal.NewFromInt(150),
}

func FeeFor(t ApplicationType) decimal.Decimal {
	if fee, ok := applicationFees[t]; ok {
		return fee
	}
	return decimal.NewFromInt(500)
}
