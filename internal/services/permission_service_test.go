package services

import (
	"testing"

	"tallybook/internal/models"
	"tallybook/internal/testutil"
)

func TestRequire(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewPermissionService(db)

	owner := testutil.CreateTestUser(t, db)
	org := testutil.CreateTestOrg(t, db, owner.ID)
	bookkeeper := testutil.CreateTestUser(t, db)
	testutil.CreateTestMembership(t, db, org.ID, bookkeeper.ID, models.RoleBookkeeper)
	viewer := testutil.CreateTestUser(t, db)
	testutil.CreateTestMembership(t, db, org.ID, viewer.ID, models.RoleViewer)
	outsider := testutil.CreateTestUser(t, db)

	tests := []struct {
		name       string
		userID     string
		permission Permission
		wantCode   string
	}{
		{"owner_edits", owner.ID, PermissionEditTransactions, ""},
		{"owner_approves", owner.ID, PermissionApproveEntries, ""},
		{"owner_manages_accounts", owner.ID, PermissionManageAccounts, ""},
		{"bookkeeper_edits", bookkeeper.ID, PermissionEditTransactions, ""},
		{"bookkeeper_approves", bookkeeper.ID, PermissionApproveEntries, ""},
		{"bookkeeper_cannot_manage_accounts", bookkeeper.ID, PermissionManageAccounts, "FORBIDDEN"},
		{"viewer_views", viewer.ID, PermissionViewLedger, ""},
		{"viewer_cannot_edit", viewer.ID, PermissionEditTransactions, "FORBIDDEN"},
		{"viewer_cannot_approve", viewer.ID, PermissionApproveEntries, "FORBIDDEN"},
		{"outsider_is_not_member", outsider.ID, PermissionViewLedger, "NOT_ORG_MEMBER"},
		{"system_actor_bypasses", SystemActor, PermissionEditTransactions, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Require(tt.userID, org.ID, tt.permission)
			if tt.wantCode == "" {
				testutil.AssertNoError(t, err)
			} else {
				testutil.AssertAppError(t, err, tt.wantCode)
			}
		})
	}
}

func TestGetRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewPermissionService(db)

	owner := testutil.CreateTestUser(t, db)
	org := testutil.CreateTestOrg(t, db, owner.ID)

	role, err := svc.GetRole(owner.ID, org.ID)
	testutil.AssertNoError(t, err)
	if role != models.RoleOwner {
		t.Errorf("role = %q, want owner", role)
	}

	stranger := testutil.CreateTestUser(t, db)
	_, err = svc.GetRole(stranger.ID, org.ID)
	testutil.AssertAppError(t, err, "NOT_ORG_MEMBER")
}
