package api

import (
	"net/http"
	"testing"
)

func TestSettingsDefaultsBeforeFirstSave(t *testing.T) {
	app := newTestApp(t)
	cookie := registerFirstCoach(t, app)

	response := performRequest(t, app, withSession(jsonRequest(t, http.MethodGet, "/api/settings", nil), cookie))
	if response.StatusCode != http.StatusOK {
		t.Fatalf("get settings status = %d, want %d", response.StatusCode, http.StatusOK)
	}

	var settings struct {
		DefaultCheckinDay        int      `json:"DefaultCheckinDay"`
		DefaultDueHour           int      `json:"DefaultDueHour"`
		DefaultOverdueAfterHours int      `json:"DefaultOverdueAfterHours"`
		RiskKeywords             []string `json:"RiskKeywords"`
	}
	decodeJSONBody(t, response, &settings)
	if settings.DefaultDueHour != 18 || settings.DefaultOverdueAfterHours != 48 {
		t.Fatalf("default settings = %+v", settings)
	}
	if len(settings.RiskKeywords) == 0 {
		t.Fatal("expected default risk keywords")
	}
}

func TestSettingsUpdateNormalizesKeywords(t *testing.T) {
	app := newTestApp(t)
	cookie := registerFirstCoach(t, app)

	response := performRequest(t, app, withSession(jsonRequest(t, http.MethodPut, "/api/settings", map[string]any{
		"default_checkin_day":         1,
		"default_due_hour":            9,
		"default_overdue_after_hours": 24,
		"risk_keywords":               []string{" Pain ", "", "plateau", "PAIN"},
	}), cookie))
	if response.StatusCode != http.StatusOK {
		t.Fatalf("update settings status = %d, want %d", response.StatusCode, http.StatusOK)
	}

	var settings struct {
		DefaultCheckinDay int      `json:"DefaultCheckinDay"`
		RiskKeywords      []string `json:"RiskKeywords"`
	}
	decodeJSONBody(t, response, &settings)
	if settings.DefaultCheckinDay != 1 {
		t.Fatalf("checkin day = %d, want 1", settings.DefaultCheckinDay)
	}
	if len(settings.RiskKeywords) != 2 || settings.RiskKeywords[0] != "Pain" || settings.RiskKeywords[1] != "plateau" {
		t.Fatalf("keywords = %v, want [Pain plateau]", settings.RiskKeywords)
	}
}

func TestSettingsUpdateRejectsBadRanges(t *testing.T) {
	app := newTestApp(t)
	cookie := registerFirstCoach(t, app)

	response := performRequest(t, app, withSession(jsonRequest(t, http.MethodPut, "/api/settings", map[string]any{
		"default_checkin_day":         7,
		"default_due_hour":            18,
		"default_overdue_after_hours": 48,
	}), cookie))
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("update settings status = %d, want %d", response.StatusCode, http.StatusBadRequest)
	}
}
