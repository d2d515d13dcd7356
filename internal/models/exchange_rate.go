package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Rates maps currency codes to the amount of that currency one unit of the base buys.
type Rates map[string]decimal.Decimal

// ExchangeRate caches the conversion table for a base currency on a date.
//
// Entries are immutable once written.
type ExchangeRate struct {
	Timestamps
	Base  string `json:"base" gorm:"primaryKey" example:"SEK"`
	Date  string `json:"date" gorm:"primaryKey" example:"2024-03-01"`
	Rates Rates  `json:"rates" gorm:"serializer:json"`
}

// CachedRates returns the cached rates for a base currency and date.
func CachedRates(db *gorm.DB, base, date string) (ExchangeRate, error) {
	var rate ExchangeRate
	err := db.Where("base = ? AND date = ?", strings.ToUpper(base), date).First(&rate).Error
	return rate, err
}

// StoreRates writes rates to the cache. An existing entry for the same
// base and date is left untouched.
func StoreRates(db *gorm.DB, base, date string, rates Rates) error {
	return db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&ExchangeRate{Base: strings.ToUpper(base), Date: date, Rates: rates}).Error
}
