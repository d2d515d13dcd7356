package models

import (
	"sync"

	"github.com/google/uuid"
	"github.com/hearth-budget/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Balances maps bank account IDs to their current balance.
type Balances map[uuid.UUID]decimal.Decimal

// Get returns the balance for an account. Missing accounts have a balance of zero.
func (b Balances) Get(id uuid.UUID) decimal.Decimal {
	if balance, ok := b[id]; ok {
		return balance
	}
	return decimal.Zero
}

// MonthlySnapshot stores the account balances a household recorded for a month.
//
// There is at most one snapshot per household and month.
type MonthlySnapshot struct {
	Timestamps
	Household   Household   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	HouseholdID uuid.UUID   `json:"householdId" gorm:"primaryKey" example:"0a8e6c5b-5a6b-4cd1-9c4c-6d7f8e9a0b1c"`
	Month       types.Month `json:"month" gorm:"primaryKey" example:"2024-03"`
	Balances    Balances    `json:"balances" gorm:"serializer:json"`
}

func (s *MonthlySnapshot) BeforeCreate(tx *gorm.DB) error {
	if s.Month.IsZero() {
		return ErrMonthMissing
	}

	return tx.First(&Household{}, "id = ?", s.HouseholdID).Error
}

// snapshotLocks serializes writes per household and month within this process.
var snapshotLocks sync.Map

func snapshotLock(householdID uuid.UUID, month types.Month) *sync.Mutex {
	key := householdID.String() + "/" + month.String()
	lock, _ := snapshotLocks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// Snapshot returns the snapshot for a household and month.
func Snapshot(db *gorm.DB, householdID uuid.UUID, month types.Month) (MonthlySnapshot, error) {
	var snapshot MonthlySnapshot
	err := db.Where("household_id = ? AND month = ?", householdID, month).First(&snapshot).Error
	if err != nil {
		return MonthlySnapshot{}, err
	}

	if snapshot.Balances == nil {
		snapshot.Balances = Balances{}
	}

	return snapshot, nil
}

// SaveSnapshot creates or replaces the snapshot for a household and month.
//
// The write is a single upsert on the primary key, saving the same balances
// again leaves exactly one snapshot with those balances. All account IDs
// must belong to the household.
func SaveSnapshot(db *gorm.DB, householdID uuid.UUID, month types.Month, balances Balances) (MonthlySnapshot, error) {
	if month.IsZero() {
		return MonthlySnapshot{}, ErrMonthMissing
	}

	if balances == nil {
		balances = Balances{}
	}

	if len(balances) > 0 {
		ids := make([]uuid.UUID, 0, len(balances))
		for id := range balances {
			ids = append(ids, id)
		}

		var count int64
		err := db.Model(&BankAccount{}).Where("household_id = ? AND id IN ?", householdID, ids).Count(&count).Error
		if err != nil {
			return MonthlySnapshot{}, err
		}

		if count != int64(len(ids)) {
			return MonthlySnapshot{}, ErrSnapshotAccountNotInHouse
		}
	}

	lock := snapshotLock(householdID, month)
	lock.Lock()
	defer lock.Unlock()

	snapshot := MonthlySnapshot{
		HouseholdID: householdID,
		Month:       month,
		Balances:    balances,
	}

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "household_id"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{"balances", "updated_at"}),
	}).Create(&snapshot).Error
	if err != nil {
		return MonthlySnapshot{}, err
	}

	return Snapshot(db, householdID, month)
}
