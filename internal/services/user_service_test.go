package services

import (
	"testing"

	"tallybook/internal/testutil"
)

func TestCreateUser(t *testing.T) {
	t.Run("creates_user_with_hashed_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("Maya@Example.com", "password123", "Maya", "Lin")
		testutil.AssertNoError(t, err)

		if user.Email != "maya@example.com" {
			t.Errorf("email = %q, want lowercased", user.Email)
		}
		if user.Password == "password123" {
			t.Error("password stored in plaintext")
		}
		if !svc.VerifyPassword(user, "password123") {
			t.Error("stored hash does not verify against original password")
		}
		if svc.VerifyPassword(user, "wrong") {
			t.Error("wrong password verified")
		}
	})

	t.Run("duplicate_email_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("dup@example.com", "password123", "", "")
		testutil.AssertNoError(t, err)
		_, err = svc.CreateUser("DUP@example.com", "password456", "", "")
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})
}

func TestGetUserByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)

	created, err := svc.CreateUser("lookup@example.com", "password123", "", "")
	testutil.AssertNoError(t, err)

	// Lookup is case- and whitespace-insensitive.
	found, err := svc.GetUserByEmail("  Lookup@Example.com ")
	testutil.AssertNoError(t, err)
	if found.ID != created.ID {
		t.Errorf("found user %s, want %s", found.ID, created.ID)
	}

	_, err = svc.GetUserByEmail("missing@example.com")
	testutil.AssertAppError(t, err, "USER_NOT_FOUND")
}
