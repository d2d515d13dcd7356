package models

import (
	"errors"
	"fmt"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
	ErrValidation       = errors.New("validation failed")
)

// Validation errors. All of them wrap ErrValidation so that callers can
// block a save without knowing every single reason.
var (
	ErrHouseholdNameMissing      = fmt.Errorf("%w: the household name must be set", ErrValidation)
	ErrHouseholdSameCurrencies   = fmt.Errorf("%w: source and target currency of a household must differ", ErrValidation)
	ErrCurrencyInvalid           = fmt.Errorf("%w: the currency must be a valid ISO 4217 code", ErrValidation)
	ErrAccountNameMissing        = fmt.Errorf("%w: the account name must be set", ErrValidation)
	ErrAccountNameNotUnique      = fmt.Errorf("%w: the account name must be unique for the household", ErrValidation)
	ErrMinBalanceNegative        = fmt.Errorf("%w: the minimum balance must not be negative", ErrValidation)
	ErrPrimaryAccountExists      = fmt.Errorf("%w: the household already has a primary account for this currency", ErrValidation)
	ErrExpenseNameMissing        = fmt.Errorf("%w: the expense name must be set", ErrValidation)
	ErrExpenseAccountMissing     = fmt.Errorf("%w: the expense must reference a bank account", ErrValidation)
	ErrAmountNegative            = fmt.Errorf("%w: the amount must not be negative", ErrValidation)
	ErrExpenseStatusInvalid      = fmt.Errorf("%w: the expense status must be 'planned' or 'paid'", ErrValidation)
	ErrAccountHouseholdMismatch  = fmt.Errorf("%w: the bank account belongs to a different household", ErrValidation)
	ErrTemplateNameMissing       = fmt.Errorf("%w: the recurring template name must be set", ErrValidation)
	ErrTemplateAccountMissing    = fmt.Errorf("%w: the recurring template must reference a bank account", ErrValidation)
	ErrCategoryNameMissing       = fmt.Errorf("%w: the category name must be set", ErrValidation)
	ErrCategoryNameNotUnique     = fmt.Errorf("%w: the category name must be unique for the household", ErrValidation)
	ErrMonthMissing              = fmt.Errorf("%w: the month must be set", ErrValidation)
	ErrSnapshotAccountNotInHouse = fmt.Errorf("%w: the snapshot references a bank account of a different household", ErrValidation)
)

// ErrAccountInUse is returned when a bank account that is still referenced
// by expenses or recurring templates is deleted.
var ErrAccountInUse = errors.New("the bank account is still referenced and cannot be deleted")
