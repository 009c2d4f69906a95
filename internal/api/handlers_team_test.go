package api

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
)

// inviteSecondCoach runs the full invite flow and returns the new coach's
// session cookie.
func inviteSecondCoach(t *testing.T, app *fiber.App, adminCookie string) string {
	t.Helper()

	invite := performRequest(t, app, withSession(jsonRequest(t, http.MethodPost, "/api/team/invites", map[string]any{
		"email": "jordan@example.com",
	}), adminCookie))
	if invite.StatusCode != http.StatusCreated {
		t.Fatalf("create invite status = %d, want %d", invite.StatusCode, http.StatusCreated)
	}

	var created struct {
		Token string `json:"token"`
	}
	decodeJSONBody(t, invite, &created)
	if created.Token == "" {
		t.Fatal("expected raw invite token")
	}

	accept := performRequest(t, app, jsonRequest(t, http.MethodPost, "/api/auth/accept-invite", map[string]any{
		"token":        created.Token,
		"password":     "Stronger7",
		"display_name": "Jordan",
	}))
	if accept.StatusCode != http.StatusCreated {
		t.Fatalf("accept invite status = %d, want %d", accept.StatusCode, http.StatusCreated)
	}

	cookie := responseCookieValue(t, accept, authCookieName)
	if cookie == "" {
		t.Fatal("expected session cookie after accepting invite")
	}
	return cookie
}

func TestTeamRoutesAreAdminOnly(t *testing.T) {
	app := newTestApp(t)
	adminCookie := registerFirstCoach(t, app)
	coachCookie := inviteSecondCoach(t, app, adminCookie)

	response := performRequest(t, app, withSession(jsonRequest(t, http.MethodGet, "/api/team/coaches", nil), coachCookie))
	if response.StatusCode != http.StatusForbidden {
		t.Fatalf("coach team access status = %d, want %d", response.StatusCode, http.StatusForbidden)
	}

	adminList := performRequest(t, app, withSession(jsonRequest(t, http.MethodGet, "/api/team/coaches", nil), adminCookie))
	if adminList.StatusCode != http.StatusOK {
		t.Fatalf("admin team access status = %d, want %d", adminList.StatusCode, http.StatusOK)
	}

	var team struct {
		Coaches []struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"coaches"`
	}
	decodeJSONBody(t, adminList, &team)
	if len(team.Coaches) != 2 {
		t.Fatalf("team size = %d, want 2", len(team.Coaches))
	}
}

func TestInviteTokenIsSingleUse(t *testing.T) {
	app := newTestApp(t)
	adminCookie := registerFirstCoach(t, app)

	invite := performRequest(t, app, withSession(jsonRequest(t, http.MethodPost, "/api/team/invites", map[string]any{
		"email": "jordan@example.com",
	}), adminCookie))
	var created struct {
		Token string `json:"token"`
	}
	decodeJSONBody(t, invite, &created)

	first := performRequest(t, app, jsonRequest(t, http.MethodPost, "/api/auth/accept-invite", map[string]any{
		"token":    created.Token,
		"password": "Stronger7",
	}))
	if first.StatusCode != http.StatusCreated {
		t.Fatalf("first accept status = %d, want %d", first.StatusCode, http.StatusCreated)
	}

	second := performRequest(t, app, jsonRequest(t, http.MethodPost, "/api/auth/accept-invite", map[string]any{
		"token":    created.Token,
		"password": "Stronger7",
	}))
	if second.StatusCode != http.StatusBadRequest {
		t.Fatalf("second accept status = %d, want %d", second.StatusCode, http.StatusBadRequest)
	}
}

func TestRosterIsScopedPerCoach(t *testing.T) {
	app := newTestApp(t)
	adminCookie := registerFirstCoach(t, app)
	coachCookie := inviteSecondCoach(t, app, adminCookie)

	clientID, _ := createTestClient(t, app, adminCookie, "Dana Reyes")

	foreign := performRequest(t, app, withSession(jsonRequest(t, http.MethodGet,
		"/api/clients/"+uintToString(clientID), nil), coachCookie))
	if foreign.StatusCode != http.StatusForbidden {
		t.Fatalf("cross-roster detail status = %d, want %d", foreign.StatusCode, http.StatusForbidden)
	}

	list := performRequest(t, app, withSession(jsonRequest(t, http.MethodGet, "/api/clients", nil), coachCookie))
	var page struct {
		Total int64 `json:"total"`
	}
	decodeJSONBody(t, list, &page)
	if page.Total != 0 {
		t.Fatalf("foreign roster total = %d, want 0", page.Total)
	}

	// The admin sees every roster.
	adminView := performRequest(t, app, withSession(jsonRequest(t, http.MethodGet,
		"/api/clients/"+uintToString(clientID), nil), adminCookie))
	if adminView.StatusCode != http.StatusOK {
		t.Fatalf("admin detail status = %d, want %d", adminView.StatusCode, http.StatusOK)
	}
}
