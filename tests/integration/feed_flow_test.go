package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestFeedFlow_IngestBatch(t *testing.T) {
	app := setupApp(t)

	token, _ := app.registerUser(t, "owner@test.com", "password123")
	orgID := app.createOrg(t, token, "Maple Studio")
	checking := app.findAccount(t, token, orgID, "Business Checking")

	body := fmt.Sprintf(`{"transactions":[
		{"account_id":%q,"amount":-4250,"merchant":"Chipotle","description":"Team lunch","date":"2026-08-01T00:00:00Z"},
		{"account_id":%q,"amount":150000,"merchant":"Acme Corp","description":"Invoice 42 payment","date":"2026-08-02T00:00:00Z"},
		{"account_id":"not-a-real-account","amount":-999,"merchant":"","description":"Orphan row","date":"2026-08-03T00:00:00Z"}
	]}`, checking["id"], checking["id"])

	rec := app.feedRequest("/api/v1/feed/orgs/"+orgID+"/transactions", body, feedAPIKey)
	if rec.Code != http.StatusOK {
		t.Fatalf("feed ingest failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["created"].(float64) != 2 {
		t.Errorf("created = %v, want 2", result["created"])
	}
	if result["failed"].(float64) != 1 {
		t.Errorf("failed = %v, want 1 (unknown account row)", result["failed"])
	}

	// Fed transactions land as pending feed rows visible to members.
	rec = app.request("GET", "/api/v1/orgs/"+orgID+"/transactions", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list transactions failed: %d %s", rec.Code, rec.Body.String())
	}
	listed := parseJSON(t, rec)["data"].([]interface{})
	if len(listed) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(listed))
	}
	for _, item := range listed {
		txn := item.(map[string]interface{})
		if txn["source"] != "feed" {
			t.Errorf("transaction source = %v, want feed", txn["source"])
		}
	}
}

func TestFeedFlow_RequiresAPIKey(t *testing.T) {
	app := setupApp(t)

	token, _ := app.registerUser(t, "owner@test.com", "password123")
	orgID := app.createOrg(t, token, "Maple Studio")

	rec := app.feedRequest("/api/v1/feed/orgs/"+orgID+"/transactions", `{"transactions":[]}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without key, got %d", rec.Code)
	}

	rec = app.feedRequest("/api/v1/feed/orgs/"+orgID+"/transactions", `{"transactions":[]}`, "wrong-key")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with wrong key, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "INVALID_API_KEY" {
		t.Errorf("expected INVALID_API_KEY, got %v", code)
	}
}

func TestOrgIsolation_MemberOfOtherOrgCannotRead(t *testing.T) {
	app := setupApp(t)

	ownerToken, _ := app.registerUser(t, "owner@test.com", "password123")
	orgID := app.createOrg(t, ownerToken, "Maple Studio")
	checking := app.findAccount(t, ownerToken, orgID, "Business Checking")
	txnID := app.createTransaction(t, ownerToken, orgID, checking["id"].(string),
		"Team lunch", "Chipotle", -4250)

	// A user with their own org cannot read another org's transactions.
	strangerToken, _ := app.registerUser(t, "stranger@test.com", "password123")
	otherOrgID := app.createOrg(t, strangerToken, "Other Studio")
	rec := app.request("GET", "/api/v1/orgs/"+otherOrgID+"/transactions/"+txnID, "", strangerToken)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 across orgs, got %d: %s", rec.Code, rec.Body.String())
	}
}
