package services

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/marisolfit/coachdesk/internal/models"
	"github.com/marisolfit/coachdesk/internal/security"
)

type stubClientRepo struct {
	clients     []models.Client
	total       int64
	client      models.Client
	found       bool
	created     *models.Client
	updates     map[string]any
	rotatedHash string
	lastQuery   ClientListQuery
}

func (stub *stubClientRepo) ListPage(listQuery ClientListQuery) ([]models.Client, int64, error) {
	stub.lastQuery = listQuery
	return stub.clients, stub.total, nil
}

func (stub *stubClientRepo) FindByID(uint) (models.Client, bool, error) {
	return stub.client, stub.found, nil
}

func (stub *stubClientRepo) Create(client *models.Client) error {
	client.ID = 14
	stub.created = client
	return nil
}

func (stub *stubClientRepo) UpdateByID(clientID uint, updates map[string]any) error {
	stub.updates = updates
	return nil
}

func (stub *stubClientRepo) RotateToken(clientID uint, tokenHash string, generatedAt time.Time) error {
	stub.rotatedHash = tokenHash
	return nil
}

type stubClientCheckinReader struct {
	latest  map[uint]models.Checkin
	history []models.Checkin
}

func (stub *stubClientCheckinReader) LatestByClients([]uint) (map[uint]models.Checkin, error) {
	return stub.latest, nil
}

func (stub *stubClientCheckinReader) ListByClient(uint) ([]models.Checkin, error) {
	return stub.history, nil
}

type stubClientTaskReader struct {
	counts map[uint]int64
	open   []models.Task
}

func (stub *stubClientTaskReader) OpenCountsByClients([]uint) (map[uint]int64, error) {
	return stub.counts, nil
}

func (stub *stubClientTaskReader) ListOpenByClient(uint) ([]models.Task, error) {
	return stub.open, nil
}

type stubClientToolkitReader struct {
	record models.ToolkitRecord
	found  bool
}

func (stub *stubClientToolkitReader) FindByClient(uint) (models.ToolkitRecord, bool, error) {
	return stub.record, stub.found, nil
}

var clientTestNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func TestListAttachesAggregates(t *testing.T) {
	repo := &stubClientRepo{
		clients: []models.Client{
			{ID: 1, CoachID: 2, FullName: "Dana Reyes"},
			{ID: 2, CoachID: 2, FullName: "Sam Okafor"},
		},
		total: 2,
	}
	checkins := &stubClientCheckinReader{
		latest: map[uint]models.Checkin{
			1: {ID: 40, ClientID: 1, RiskFlags: []string{"pain"}},
		},
	}
	tasks := &stubClientTaskReader{counts: map[uint]int64{1: 3}}
	service := NewClientService(repo, checkins, tasks, &stubClientToolkitReader{})

	overviews, total, err := service.List(ClientListQuery{Scope: CoachScope{CoachID: 2}, Limit: 20})
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if total != 2 || len(overviews) != 2 {
		t.Fatalf("total = %d, rows = %d", total, len(overviews))
	}

	first := overviews[0]
	if first.LatestCheckin == nil || first.LatestCheckin.ID != 40 {
		t.Fatalf("latest check-in not attached: %+v", first)
	}
	if !first.HasRisk || first.OpenTasks != 3 {
		t.Fatalf("aggregates wrong: %+v", first)
	}

	second := overviews[1]
	if second.LatestCheckin != nil || second.HasRisk || second.OpenTasks != 0 {
		t.Fatalf("client without data must read zero aggregates: %+v", second)
	}
}

func TestCreateClientReturnsRawTokenOnce(t *testing.T) {
	repo := &stubClientRepo{}
	service := NewClientService(repo, &stubClientCheckinReader{}, &stubClientTaskReader{}, &stubClientToolkitReader{})

	client, rawToken, err := service.Create(CoachScope{CoachID: 2}, CreateClientInput{
		FullName: "  Dana Reyes ",
		Email:    "dana@example.com",
	}, clientTestNow)
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if client.FullName != "Dana Reyes" || client.CoachID != 2 || client.Status != models.ClientStatusActive {
		t.Fatalf("unexpected client: %+v", client)
	}
	if rawToken == "" {
		t.Fatal("raw token must be returned")
	}
	if repo.created.TokenHash == rawToken {
		t.Fatal("raw token must never be stored")
	}
	if repo.created.TokenHash != security.HashToken(rawToken) {
		t.Fatal("stored hash must match the raw token")
	}
}

func TestCreateClientRequiresName(t *testing.T) {
	service := NewClientService(&stubClientRepo{}, &stubClientCheckinReader{}, &stubClientTaskReader{}, &stubClientToolkitReader{})
	if _, _, err := service.Create(CoachScope{CoachID: 2}, CreateClientInput{FullName: "  "}, clientTestNow); !IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDetailComputesHabitFigures(t *testing.T) {
	state := DefaultToolkitState()
	state.Habits.List = []string{"Protein target hit"}
	state.Habits.Tracking = models.TrackingMap{
		DateKey(clientTestNow): {0: true},
	}
	encoded, err := json.Marshal(state)
	if err != nil {
		t.Fatalf("marshal state: %v", err)
	}

	repo := &stubClientRepo{client: models.Client{ID: 1, CoachID: 2, FullName: "Dana Reyes"}, found: true}
	service := NewClientService(
		repo,
		&stubClientCheckinReader{history: []models.Checkin{{ID: 40, ClientID: 1}}},
		&stubClientTaskReader{open: []models.Task{{ID: 5, ClientID: 1, State: models.TaskStateNew}}},
		&stubClientToolkitReader{record: models.ToolkitRecord{ClientID: 1, State: encoded}, found: true},
	)

	detail, err := service.Detail(CoachScope{CoachID: 2}, 1, clientTestNow)
	if err != nil {
		t.Fatalf("Detail() unexpected error: %v", err)
	}
	if len(detail.Checkins) != 1 || len(detail.OpenTasks) != 1 {
		t.Fatalf("history not attached: %+v", detail)
	}
	if len(detail.Habits) != 1 || detail.Habits[0].CurrentStreak != 1 {
		t.Fatalf("habit figures = %+v", detail.Habits)
	}
	if detail.OverallAdherence != 4 {
		t.Fatalf("overall adherence = %d, want 4", detail.OverallAdherence)
	}
}

func TestArchiveAndUnarchive(t *testing.T) {
	repo := &stubClientRepo{client: models.Client{ID: 1, CoachID: 2, Status: models.ClientStatusActive}, found: true}
	service := NewClientService(repo, &stubClientCheckinReader{}, &stubClientTaskReader{}, &stubClientToolkitReader{})

	client, err := service.Archive(CoachScope{CoachID: 2}, 1, clientTestNow)
	if err != nil {
		t.Fatalf("Archive() unexpected error: %v", err)
	}
	if client.Status != models.ClientStatusArchived {
		t.Fatalf("status = %q", client.Status)
	}
	if repo.updates["status"] != models.ClientStatusArchived {
		t.Fatalf("persisted updates = %v", repo.updates)
	}

	repo.client.Status = models.ClientStatusArchived
	client, err = service.Unarchive(CoachScope{CoachID: 2}, 1, clientTestNow)
	if err != nil {
		t.Fatalf("Unarchive() unexpected error: %v", err)
	}
	if client.Status != models.ClientStatusActive {
		t.Fatalf("status = %q", client.Status)
	}
}

func TestArchiveIsIdempotent(t *testing.T) {
	repo := &stubClientRepo{client: models.Client{ID: 1, CoachID: 2, Status: models.ClientStatusArchived}, found: true}
	service := NewClientService(repo, &stubClientCheckinReader{}, &stubClientTaskReader{}, &stubClientToolkitReader{})

	if _, err := service.Archive(CoachScope{CoachID: 2}, 1, clientTestNow); err != nil {
		t.Fatalf("Archive() unexpected error: %v", err)
	}
	if repo.updates != nil {
		t.Fatal("archiving an archived client must not write")
	}
}

func TestRegenerateTokenStoresNewHash(t *testing.T) {
	repo := &stubClientRepo{client: models.Client{ID: 1, CoachID: 2, TokenHash: "old-hash"}, found: true}
	service := NewClientService(repo, &stubClientCheckinReader{}, &stubClientTaskReader{}, &stubClientToolkitReader{})

	rawToken, err := service.RegenerateToken(CoachScope{CoachID: 2}, 1, clientTestNow)
	if err != nil {
		t.Fatalf("RegenerateToken() unexpected error: %v", err)
	}
	if rawToken == "" || repo.rotatedHash == "" {
		t.Fatal("expected a fresh token and stored hash")
	}
	if repo.rotatedHash == "old-hash" {
		t.Fatal("hash must change on rotation")
	}
	if repo.rotatedHash != security.HashToken(rawToken) {
		t.Fatal("stored hash must match the new raw token")
	}
}

func TestClientOpsEnforceRosterScope(t *testing.T) {
	repo := &stubClientRepo{client: models.Client{ID: 1, CoachID: 2}, found: true}
	service := NewClientService(repo, &stubClientCheckinReader{}, &stubClientTaskReader{}, &stubClientToolkitReader{})
	foreign := CoachScope{CoachID: 9}

	if _, err := service.Detail(foreign, 1, clientTestNow); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("Detail: expected ErrUnauthorized, got %v", err)
	}
	if _, err := service.RegenerateToken(foreign, 1, clientTestNow); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("RegenerateToken: expected ErrUnauthorized, got %v", err)
	}

	missing := NewClientService(&stubClientRepo{}, &stubClientCheckinReader{}, &stubClientTaskReader{}, &stubClientToolkitReader{})
	if _, err := missing.Detail(CoachScope{CoachID: 2}, 1, clientTestNow); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing client: expected ErrNotFound, got %v", err)
	}
}
