package v1

import (
	"fmt"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

const defaultLimit = 50

// nameFilter adds a fuzzy filter on the name column.
func nameFilter(query *gorm.DB, name string) *gorm.DB {
	if name == "" {
		return query
	}

	return query.Where("name LIKE ?", fmt.Sprintf("%%%s%%", name))
}

// pageLimit returns the maximum number of resources to return. A negative
// limit returns all resources.
func pageLimit(setFields []string, limit int) int {
	if slices.Contains(setFields, "Limit") {
		return limit
	}

	return defaultLimit
}
