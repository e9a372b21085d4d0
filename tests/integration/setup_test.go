package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tallybook/internal/handlers"
	"tallybook/internal/logger"
	"tallybook/internal/middleware"
	"tallybook/internal/models"
	"tallybook/internal/services"
	"tallybook/internal/validator"
)

// feedAPIKey is the bank feed key used by the test stack.
const feedAPIKey = "feed-test-key"

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	// The pipeline worker writes concurrently with request handling, so the
	// connection needs a busy timeout instead of failing fast on contention.
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared&_busy_timeout=5000", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Org{},
		&models.Membership{},
		&models.Account{},
		&models.BusinessProfile{},
		&models.RawTransaction{},
		&models.ProposedEntry{},
		&models.FinalEntry{},
		&models.EntryLine{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory
// SQLite. No model back-ends are configured, so the suggestion pipeline runs
// keyword-only and is fully deterministic.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	permissionService := services.NewPermissionService(db)
	auditService := services.NewAuditService(db)
	userService := services.NewUserService(db)
	accountService := services.NewAccountService(db, permissionService)
	orgService := services.NewOrgService(db, accountService)
	profileService := services.NewBusinessProfileService(db, permissionService)
	proposalService := services.NewProposalService(db, permissionService, auditService)
	suggestionService := services.NewSuggestionService()
	classifier := services.NewClassifier(nil)
	enrichmentService := services.NewEnrichmentService(nil)
	pipeline := services.NewPipelineService(db, accountService, profileService,
		classifier, suggestionService, enrichmentService, proposalService)
	t.Cleanup(pipeline.Close)
	transactionService := services.NewTransactionService(db, permissionService, auditService, pipeline)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	orgHandler := handlers.NewOrgHandler(orgService)
	accountHandler := handlers.NewAccountHandler(accountService)
	profileHandler := handlers.NewBusinessProfileHandler(profileService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	proposalHandler := handlers.NewProposalHandler(proposalService, suggestionService,
		accountService, profileService, transactionService, pipeline)
	feedHandler := handlers.NewFeedHandler(transactionService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Bank feed routes, API-key authenticated
	feed := v1.Group("/feed")
	feed.Use(middleware.FeedAuthMiddleware(feedAPIKey))
	feed.POST("/orgs/:orgId/transactions", feedHandler.IngestBatch)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)
	protected.POST("/orgs", orgHandler.CreateOrg)

	orgs := protected.Group("/orgs/:orgId")
	orgs.GET("", orgHandler.GetOrg)
	orgs.POST("/members", orgHandler.AddMember)
	orgs.GET("/business-profile", profileHandler.GetProfile)
	orgs.PUT("/business-profile", profileHandler.UpsertProfile)

	accounts := orgs.Group("/accounts")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.ListAccounts)
	accounts.GET("/:id", accountHandler.GetAccountByID)

	transactions := orgs.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.POST("/:id/suggest", proposalHandler.Suggest)
	transactions.GET("/:id/alternatives", proposalHandler.Alternatives)

	proposals := orgs.Group("/proposals")
	proposals.GET("", proposalHandler.ListProposals)
	proposals.GET("/:id", proposalHandler.GetProposal)
	proposals.POST("/:id/approve", proposalHandler.Approve)
	proposals.POST("/:id/reject", proposalHandler.Reject)

	orgs.GET("/entries/:id", proposalHandler.GetFinalEntry)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// feedRequest makes an API-key authenticated bank feed request.
func (app *testApp) feedRequest(path, body, apiKey string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// errorCode extracts the error code from an error response body.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	result := parseJSON(t, rec)
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("response has no error object: %s", rec.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}

// registerUser registers a new user and returns the access token and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (token, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"first_name":"Test","last_name":"User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), user["id"].(string)
}

// createOrg creates an org for the caller and returns its ID. The default
// chart of accounts is seeded as part of creation.
func (app *testApp) createOrg(t *testing.T, token, name string) string {
	t.Helper()
	rec := app.request("POST", "/api/v1/orgs", fmt.Sprintf(`{"name":%q}`, name), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create org failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	org := result["org"].(map[string]interface{})
	return org["id"].(string)
}

// findAccount looks up an account in the org's chart by name.
func (app *testApp) findAccount(t *testing.T, token, orgID, name string) map[string]interface{} {
	t.Helper()
	rec := app.request("GET", "/api/v1/orgs/"+orgID+"/accounts?page_size=100", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list accounts failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	for _, item := range result["data"].([]interface{}) {
		account := item.(map[string]interface{})
		if account["name"] == name {
			return account
		}
	}
	t.Fatalf("account %q not found in chart", name)
	return nil
}

// createTransaction ingests a manual transaction and returns its ID.
func (app *testApp) createTransaction(t *testing.T, token, orgID, accountID, description, merchant string, amount int64) string {
	t.Helper()
	body := fmt.Sprintf(`{"account_id":%q,"amount":%d,"merchant":%q,"description":%q,"date":"2026-08-01T00:00:00Z"}`,
		accountID, amount, merchant, description)
	rec := app.request("POST", "/api/v1/orgs/"+orgID+"/transactions", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create transaction failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	txn := result["transaction"].(map[string]interface{})
	return txn["id"].(string)
}
