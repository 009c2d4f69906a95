package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/marisolfit/coachdesk/internal/db"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "coachdesk-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	handler := NewHandler(db.NewRepositories(database), "test-secret-key", time.UTC, false)
	app := fiber.New()
	RegisterRoutes(app, handler)
	return app
}

func uintToString(value uint) string {
	return strconv.FormatUint(uint64(value), 10)
}

func jsonRequest(t *testing.T, method string, path string, payload any) *http.Request {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode request payload: %v", err)
		}
	}

	request := httptest.NewRequest(method, path, &body)
	request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return request
}

func performRequest(t *testing.T, app *fiber.App, request *http.Request) *http.Response {
	t.Helper()

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("perform %s %s: %v", request.Method, request.URL.Path, err)
	}
	return response
}

func decodeJSONBody(t *testing.T, response *http.Response, target any) {
	t.Helper()

	defer response.Body.Close()
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func responseCookieValue(t *testing.T, response *http.Response, name string) string {
	t.Helper()

	for _, cookie := range response.Cookies() {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	return ""
}

// registerFirstCoach bootstraps the admin account and returns the session
// cookie value.
func registerFirstCoach(t *testing.T, app *fiber.App) string {
	t.Helper()

	request := jsonRequest(t, http.MethodPost, "/api/auth/register", map[string]any{
		"email":        "marisol@example.com",
		"password":     "Sunrise42",
		"display_name": "Marisol",
	})
	response := performRequest(t, app, request)
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d, want %d", response.StatusCode, http.StatusCreated)
	}

	cookie := responseCookieValue(t, response, authCookieName)
	if cookie == "" {
		t.Fatal("expected auth cookie after registration")
	}
	return cookie
}

func withSession(request *http.Request, sessionCookie string) *http.Request {
	request.AddCookie(&http.Cookie{Name: authCookieName, Value: sessionCookie})
	return request
}

// createTestClient adds a roster client and returns its id and raw
// submission token.
func createTestClient(t *testing.T, app *fiber.App, sessionCookie string, fullName string) (uint, string) {
	t.Helper()

	request := withSession(jsonRequest(t, http.MethodPost, "/api/clients", map[string]any{
		"full_name": fullName,
	}), sessionCookie)
	response := performRequest(t, app, request)
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("create client status = %d, want %d", response.StatusCode, http.StatusCreated)
	}

	var created struct {
		Client struct {
			ID uint `json:"ID"`
		} `json:"client"`
		Token string `json:"token"`
	}
	decodeJSONBody(t, response, &created)
	if created.Client.ID == 0 {
		t.Fatal("expected created client id")
	}
	if created.Token == "" {
		t.Fatal("expected raw submission token in create response")
	}
	return created.Client.ID, created.Token
}
