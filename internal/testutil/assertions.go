package testutil

import (
	"errors"
	"testing"

	apperrors "tallybook/internal/errors"
	"tallybook/internal/models"

	"gorm.io/gorm"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertBalancedEntry checks that a final entry's lines have exactly one
// debit and one credit leg and that debits equal credits.
func AssertBalancedEntry(t *testing.T, db *gorm.DB, entryID string) {
	t.Helper()

	var lines []models.EntryLine
	if err := db.Where("entry_id = ?", entryID).Find(&lines).Error; err != nil {
		t.Fatalf("failed to load entry lines: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 entry lines, got %d", len(lines))
	}

	var debits, credits int64
	for _, line := range lines {
		if line.Amount <= 0 {
			t.Errorf("entry line amount must be positive, got %d", line.Amount)
		}
		switch line.Side {
		case models.SideDebit:
			debits += line.Amount
		case models.SideCredit:
			credits += line.Amount
		default:
			t.Errorf("unexpected entry side %q", line.Side)
		}
	}
	if debits != credits {
		t.Errorf("entry is unbalanced: debits %d, credits %d", debits, credits)
	}
	if debits == 0 {
		t.Error("expected a debit leg, found none")
	}
}
