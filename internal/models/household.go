package models

import (
	"strings"

	"golang.org/x/text/currency"
	"gorm.io/gorm"
)

// Default currencies of the transfer wizard. Money moves from the primary
// account in the source currency to the primary account in the target currency.
const (
	DefaultSourceCurrency = "SEK"
	DefaultTargetCurrency = "INR"
)

// Household is the tenancy boundary. All financial records belong to
// exactly one household.
type Household struct {
	DefaultModel
	Name           string
	SourceCurrency string
	TargetCurrency string
}

// BeforeSave sets the default currency pair and validates it.
func (h *Household) BeforeSave(_ *gorm.DB) (err error) {
	h.Name = strings.TrimSpace(h.Name)
	if h.Name == "" {
		return ErrHouseholdNameMissing
	}

	if h.SourceCurrency == "" {
		h.SourceCurrency = DefaultSourceCurrency
	}

	if h.TargetCurrency == "" {
		h.TargetCurrency = DefaultTargetCurrency
	}

	h.SourceCurrency, err = NormalizeCurrency(h.SourceCurrency)
	if err != nil {
		return err
	}

	h.TargetCurrency, err = NormalizeCurrency(h.TargetCurrency)
	if err != nil {
		return err
	}

	if h.SourceCurrency == h.TargetCurrency {
		return ErrHouseholdSameCurrencies
	}

	return nil
}

// NormalizeCurrency returns the canonical ISO 4217 code for s.
func NormalizeCurrency(s string) (string, error) {
	unit, err := currency.ParseISO(strings.TrimSpace(s))
	if err != nil {
		return "", ErrCurrencyInvalid
	}

	return unit.String(), nil
}
