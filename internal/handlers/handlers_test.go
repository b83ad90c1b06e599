package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campuskit/assetdb/internal/config"
	"github.com/campuskit/assetdb/internal/handlers"
	"github.com/campuskit/assetdb/internal/middleware"
	"github.com/campuskit/assetdb/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.SubCategory{},
		&models.Floor{},
		&models.RoomType{},
		&models.Room{},
		&models.Item{},
		&models.ActivityLog{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// setupApp wires the handlers under the same route layout the server uses.
func setupApp(t *testing.T) (*fiber.App, *gorm.DB, *config.Config) {
	db := setupTestDB(t)
	cfg := &config.Config{
		AccessTokenSecret:  "test-access-secret",
		RefreshTokenSecret: "test-refresh-secret",
		AccessTokenTTL:     time.Hour,
		RefreshTokenTTL:    24 * time.Hour,
	}

	app := fiber.New()
	api := app.Group("/api")

	authUser := middleware.AuthUser(cfg)
	authAdmin := middleware.AuthAdmin(cfg)

	userHandler := &handlers.UserHandler{DB: db, Cfg: cfg}
	api.Post("/auth/login", userHandler.Login)
	api.Post("/auth/refresh", userHandler.Refresh)
	api.Post("/auth/logout", authUser, userHandler.Logout)

	catalogHandler := &handlers.CatalogHandler{DB: db}
	api.Get("/categories", catalogHandler.ListCategories)
	api.Post("/categories", authAdmin, catalogHandler.CreateCategory)
	api.Get("/categories/:id", catalogHandler.GetCategory)
	api.Delete("/categories/:id", authAdmin, catalogHandler.DeleteCategory)

	return app, db, cfg
}

// seedUser writes a user row with a bcrypt hash, bypassing the registration
// admin gate.
func seedUser(t *testing.T, db *gorm.DB, username, password, role string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	user := &models.User{
		Username: username,
		Email:    username + "@example.edu",
		Role:     role,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	return user
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("Failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return resp.StatusCode, result
}

// loginToken logs in over HTTP and returns the access token.
func loginToken(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()
	status, result := doJSON(t, app, "POST", "/api/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	if status != 200 {
		t.Fatalf("Login failed with status %d: %v", status, result)
	}
	data := result["data"].(map[string]interface{})
	tokens := data["tokens"].(map[string]interface{})
	return tokens["accessToken"].(string)
}

func TestLoginIssuesTokens(t *testing.T) {
	app, db, _ := setupApp(t)
	seedUser(t, db, "admin", "correct horse", "Admin")

	status, result := doJSON(t, app, "POST", "/api/auth/login", "", map[string]string{
		"username": "admin",
		"password": "correct horse",
	})
	if status != 200 {
		t.Fatalf("Expected 200, got %d: %v", status, result)
	}
	if result["ok"] != true {
		t.Error("Expected ok=true")
	}
	data := result["data"].(map[string]interface{})
	tokens, ok := data["tokens"].(map[string]interface{})
	if !ok || tokens["accessToken"] == "" || tokens["refreshToken"] == "" {
		t.Errorf("Expected a token pair, got %v", data)
	}

	status, result = doJSON(t, app, "POST", "/api/auth/login", "", map[string]string{
		"username": "admin",
		"password": "wrong",
	})
	if status != 401 {
		t.Errorf("Expected 401 for bad password, got %d", status)
	}
	if result["type"] != "authorization" {
		t.Errorf("Expected authorization error type, got %v", result["type"])
	}
}

func TestCreateCategoryRequiresAdminToken(t *testing.T) {
	app, db, _ := setupApp(t)
	seedUser(t, db, "admin", "correct horse", "Admin")
	seedUser(t, db, "viewer", "correct horse", "Viewer")

	payload := map[string]string{"categoryName": "Electronics"}

	// No token.
	status, _ := doJSON(t, app, "POST", "/api/categories", "", payload)
	if status != 401 {
		t.Errorf("Expected 401 without token, got %d", status)
	}

	// Viewer token.
	viewerToken := loginToken(t, app, "viewer", "correct horse")
	status, _ = doJSON(t, app, "POST", "/api/categories", viewerToken, payload)
	if status != 401 {
		t.Errorf("Expected 401 for viewer, got %d", status)
	}

	// Admin token.
	adminToken := loginToken(t, app, "admin", "correct horse")
	status, result := doJSON(t, app, "POST", "/api/categories", adminToken, payload)
	if status != 201 {
		t.Fatalf("Expected 201 for admin, got %d: %v", status, result)
	}
	data := result["data"].(map[string]interface{})
	if data["categoryName"] != "Electronics" {
		t.Errorf("Expected categoryName in response, got %v", data)
	}
}

func TestCategoryLifecycleOverHTTP(t *testing.T) {
	app, db, _ := setupApp(t)
	seedUser(t, db, "admin", "correct horse", "Admin")
	token := loginToken(t, app, "admin", "correct horse")

	status, result := doJSON(t, app, "POST", "/api/categories", token, map[string]string{"categoryName": "Furniture"})
	if status != 201 {
		t.Fatalf("Create failed: %d %v", status, result)
	}
	id := result["data"].(map[string]interface{})["_id"].(string)

	// Duplicate (case-insensitive).
	status, result = doJSON(t, app, "POST", "/api/categories", token, map[string]string{"categoryName": "furniture"})
	if status != 409 {
		t.Errorf("Expected 409 for duplicate, got %d", status)
	}
	if result["type"] != "conflict" {
		t.Errorf("Expected conflict type, got %v", result["type"])
	}

	// Fetch by id, no auth needed.
	status, result = doJSON(t, app, "GET", "/api/categories/"+id, "", nil)
	if status != 200 {
		t.Fatalf("Get failed: %d %v", status, result)
	}

	// Delete, then delete again.
	status, _ = doJSON(t, app, "DELETE", "/api/categories/"+id, token, nil)
	if status != 200 {
		t.Errorf("Delete failed: %d", status)
	}
	status, result = doJSON(t, app, "DELETE", "/api/categories/"+id, token, nil)
	if status != 400 {
		t.Errorf("Expected 400 for double delete, got %d", status)
	}
	if result["type"] != "invalid_state" {
		t.Errorf("Expected invalid_state type, got %v", result["type"])
	}
}

func TestCategoryNotFoundOverHTTP(t *testing.T) {
	app, _, _ := setupApp(t)

	status, result := doJSON(t, app, "GET", "/api/categories/018f3b1c-0000-7000-8000-000000000000", "", nil)
	if status != 404 {
		t.Errorf("Expected 404, got %d", status)
	}
	if result["type"] != "not_found" {
		t.Errorf("Expected not_found type, got %v", result["type"])
	}

	status, _ = doJSON(t, app, "GET", "/api/categories/garbage", "", nil)
	if status != 400 {
		t.Errorf("Expected 400 for malformed id, got %d", status)
	}
}

func TestInvalidBodyOverHTTP(t *testing.T) {
	app, db, _ := setupApp(t)
	seedUser(t, db, "admin", "correct horse", "Admin")
	token := loginToken(t, app, "admin", "correct horse")

	// Missing required field fails validation.
	status, result := doJSON(t, app, "POST", "/api/categories", token, map[string]string{})
	if status != 400 {
		t.Errorf("Expected 400 for missing field, got %d: %v", status, result)
	}
}

func TestRefreshOverHTTP(t *testing.T) {
	app, db, _ := setupApp(t)
	seedUser(t, db, "admin", "correct horse", "Admin")

	status, result := doJSON(t, app, "POST", "/api/auth/login", "", map[string]string{
		"username": "admin",
		"password": "correct horse",
	})
	if status != 200 {
		t.Fatalf("Login failed: %d %v", status, result)
	}
	tokens := result["data"].(map[string]interface{})["tokens"].(map[string]interface{})
	refresh := tokens["refreshToken"].(string)

	status, result = doJSON(t, app, "POST", "/api/auth/refresh", "", map[string]string{"refreshToken": refresh})
	if status != 200 {
		t.Fatalf("Refresh failed: %d %v", status, result)
	}
	rotated := result["data"].(map[string]interface{})
	if rotated["accessToken"] == "" || rotated["refreshToken"] == "" {
		t.Errorf("Expected a rotated pair, got %v", rotated)
	}

	// The presented token died on rotation.
	status, _ = doJSON(t, app, "POST", "/api/auth/refresh", "", map[string]string{"refreshToken": refresh})
	if status != 401 {
		t.Errorf("Expected 401 for replayed refresh token, got %d", status)
	}
}
