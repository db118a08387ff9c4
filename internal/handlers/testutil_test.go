package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/relieflink/backend/internal/advisor"
	"github.com/relieflink/backend/internal/database"
	"github.com/relieflink/backend/internal/donations"
	"github.com/relieflink/backend/internal/middleware"
	"github.com/relieflink/backend/internal/models"
	"github.com/relieflink/backend/pkg/logger"
	"github.com/relieflink/backend/pkg/utils"
	"gorm.io/gorm"
)

type testEnv struct {
	app        *fiber.App
	db         *gorm.DB
	classifier *fakeClassifier
}

/// fakeClassifier is the injectable advisor double: deterministic, offline.
type fakeClassifier struct {
	result advisor.Result
	err    error
	calls  int
}

func (f *fakeClassifier) Classify(ctx context.Context, itemsDescription string) (advisor.Result, error) {
	f.calls++
	if f.err != nil {
		return advisor.Fallback(), f.err
	}
	return f.result, nil
}

var testSetupOnce sync.Once

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	testSetupOnce.Do(func() {
		logger.Init()
		utils.ConfigureJWT("test-secret", 24)
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed opening in-memory sqlite database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed getting sql.DB from gorm: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed migrating models: %v", err)
	}

	classifier := &fakeClassifier{result: advisor.Fallback()}

	authHandler := NewAuthHandler(db)
	donationsHandler := NewDonationsHandler(db, donations.NewGormStore(db), classifier)
	authMiddleware := middleware.NewAuthMiddleware(db)

	app := fiber.New()
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.CORS("http://localhost:3000"))
	app.Use(middleware.RequestLogger())
	app.Use(middleware.SecurityLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.Post("/signup", authHandler.Signup)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Get("/me", authMiddleware.RequireAuth, authHandler.Me)

	donationRoutes := api.Group("/donations")
	donationRoutes.Post("/", donationsHandler.Create)
	donationRoutes.Get("/", donationsHandler.List)
	donationRoutes.Get("/stats", donationsHandler.Stats)
	donationRoutes.Get("/user/:userId", donationsHandler.ListByUser)
	donationRoutes.Put("/:id", donationsHandler.Update)
	donationRoutes.Delete("/:id", donationsHandler.Delete)

	return &testEnv{app: app, db: db, classifier: classifier}
}

func createTestUser(t *testing.T, db *gorm.DB, name, email, password string) (*models.User, string) {
	t.Helper()

	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("failed hashing password: %v", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Phone:        "+94 77 000 0000",
		AvatarURL:    utils.DefaultAvatarURL(name),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed creating test user: %v", err)
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		t.Fatalf("failed generating auth token: %v", err)
	}

	return user, token
}

func createTestDonation(t *testing.T, db *gorm.DB, user *models.User, category models.DonationCategory, weightKg float64, date time.Time) *models.Donation {
	t.Helper()

	donation := &models.Donation{
		UserID:           user.ID,
		DonorName:        user.Name,
		Location:         "Colombo Collection Center",
		ItemsDescription: "assorted relief goods",
		Category:         category,
		WeightKg:         weightKg,
		Quantity:         1,
		Date:             date,
		Status:           models.StatusPending,
	}
	if err := db.Create(donation).Error; err != nil {
		t.Fatalf("failed creating test donation: %v", err)
	}
	return donation
}

func authHeaders(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func performRequest(t *testing.T, app *fiber.App, method, path string, body io.Reader, headers map[string]string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := app.Test(req, int((10 * time.Second).Milliseconds()))
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}

	return resp
}

func performJSONRequest(t *testing.T, app *fiber.App, method, path string, payload any, headers map[string]string) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	requestHeaders := map[string]string{}
	for key, value := range headers {
		requestHeaders[key] = value
	}
	if payload != nil {
		requestHeaders["Content-Type"] = "application/json"
	}

	return performRequest(t, app, method, path, body, requestHeaders)
}

func decodeJSONMap(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed reading response body: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("failed decoding JSON response: %v body=%q", err, string(raw))
	}

	return payload
}

func assertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Fatalf("expected status %d, got %d", expected, resp.StatusCode)
	}
}

func assertEnvelopeError(t *testing.T, body map[string]any, expected string) {
	t.Helper()
	if success, _ := body["success"].(bool); success {
		t.Fatalf("expected error envelope, got success: %+v", body)
	}
	if message, _ := body["error"].(string); message != expected {
		t.Fatalf("expected error %q, got %q", expected, body["error"])
	}
}

func dataMap(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object in envelope, got %+v", body)
	}
	return data
}

func dataSlice(t *testing.T, body map[string]any) []any {
	t.Helper()
	data, ok := body["data"].([]any)
	if !ok {
		t.Fatalf("expected data array in envelope, got %+v", body)
	}
	return data
}
