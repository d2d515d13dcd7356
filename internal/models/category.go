package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Category is a free-text expense category of a household.
//
// Categories are never created directly by expenses or recurring templates,
// they are mirrored into this set whenever one of those is saved.
type Category struct {
	DefaultModel
	Household   Household `gorm:"constraint:OnDelete:CASCADE"`
	HouseholdID uuid.UUID `gorm:"uniqueIndex:category_household_name"`
	Name        string    `gorm:"uniqueIndex:category_household_name"`
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return ErrCategoryNameMissing
	}
	return nil
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	_ = c.DefaultModel.BeforeCreate(tx)
	return tx.First(&Household{}, "id = ?", c.HouseholdID).Error
}

// EnsureCategory adds the category name to the household's set
// unless it is already present.
//
// The insert is a single conditional write against the unique index, so
// concurrent callers can never create duplicates. Empty names are ignored.
func EnsureCategory(db *gorm.DB, householdID uuid.UUID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	return db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&Category{HouseholdID: householdID, Name: name}).Error
}

// Categories returns all category names for a household in
// alphabetical order.
func Categories(db *gorm.DB, householdID uuid.UUID) ([]Category, error) {
	var categories []Category
	err := db.Where(&Category{HouseholdID: householdID}).Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}

	return categories, nil
}
