package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mooney-app-go/internal/config"
	subsdomain "mooney-app-go/internal/domain/subscriptions"
	"mooney-app-go/internal/repository/inmemory"
	"mooney-app-go/internal/transport/httpserver"
	"mooney-app-go/internal/transport/httpserver/handler"
	"mooney-app-go/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/text/language"
)

const (
	testSecret = "e2e-test-secret"
	testUserID = "00000000-0000-0000-0000-000000000001"
)

type testEnv struct {
	server *httptest.Server
	token  string
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	cfg := config.Config{
		HTTPPort:      "0",
		Env:           "test",
		StorageDriver: config.StorageDriverMemory,
		AllowedOrigin: "http://localhost:5173",
		Auth:          config.AuthConfig{JWTSecret: testSecret},
	}

	repo := inmemory.NewSubscriptionsRepository()
	service := subsdomain.NewServiceWithOptions(repo, subsdomain.Options{
		Locale: language.English,
		Cache:  inmemory.NewCategoriesCache(),
	})

	log := logger.NewFromEnv()
	handlers := handler.New(service, log)
	router := httpserver.NewRouter(cfg, handlers, log)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testEnv{server: server, token: signToken(t)}
}

func signToken(t *testing.T) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   testUserID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, wantStatus int, out interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+e.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s: status %d, want %d", method, path, resp.StatusCode, wantStatus)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode response: %v", method, path, err)
		}
	}
}

type categoryDTO struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Color *string `json:"color"`
}

type recordDTO struct {
	ID          string  `json:"id"`
	Amount      int64   `json:"amount"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	DueDate     *string `json:"due_date"`
	ActualDate  *string `json:"actual_date"`
	CategoryID  string  `json:"category_id"`
}

type pendingItemDTO struct {
	recordDTO
	Due struct {
		Severity  string `json:"severity"`
		DaysDelta int    `json:"days_delta"`
		Label     string `json:"label"`
	} `json:"due"`
}

type pendingViewDTO struct {
	Items        []pendingItemDTO `json:"items"`
	TotalAmount  int64            `json:"total_amount"`
	OverdueCount int              `json:"overdue_count"`
}

type completedViewDTO struct {
	Items          []recordDTO `json:"items"`
	TotalAmount    int64       `json:"total_amount"`
	CategoryTotals []struct {
		CategoryID string  `json:"category_id"`
		Name       string  `json:"name"`
		Color      *string `json:"color"`
		Amount     int64   `json:"amount"`
	} `json:"category_totals"`
}

type completionDTO struct {
	Completed   recordDTO `json:"completed"`
	NextPending recordDTO `json:"next_pending"`
}

func TestHealth(t *testing.T) {
	env := setup(t)

	resp, err := http.Get(env.server.URL + "/api/health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health: status %d", resp.StatusCode)
	}
}

func TestAuthRequired(t *testing.T) {
	env := setup(t)

	resp, err := http.Get(env.server.URL + "/api/subscriptions")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", resp.StatusCode)
	}
}

func TestSubscriptionLifecycle(t *testing.T) {
	env := setup(t)
	today := time.Now()
	day := func(offset int) string {
		return today.AddDate(0, 0, offset).Format("2006-01-02")
	}

	var media categoryDTO
	color := "#e50914"
	env.do(t, http.MethodPost, "/api/categories",
		map[string]interface{}{"name": "Media", "color": color},
		http.StatusCreated, &media)

	var netflix, spotify, drive recordDTO
	env.do(t, http.MethodPost, "/api/subscriptions",
		map[string]interface{}{"description": "Netflix", "amount": 17000, "due_date": day(-2), "category_id": media.ID},
		http.StatusCreated, &netflix)
	env.do(t, http.MethodPost, "/api/subscriptions",
		map[string]interface{}{"description": "Spotify", "amount": 10900, "due_date": day(1), "category_id": media.ID},
		http.StatusCreated, &spotify)
	env.do(t, http.MethodPost, "/api/subscriptions",
		map[string]interface{}{"description": "Drive", "amount": 2900, "due_date": day(20), "category_id": media.ID},
		http.StatusCreated, &drive)

	var view pendingViewDTO
	env.do(t, http.MethodGet, "/api/subscriptions/pending?sort=due", nil, http.StatusOK, &view)

	if len(view.Items) != 3 {
		t.Fatalf("pending view: expected 3 items, got %d", len(view.Items))
	}
	want := []string{"Netflix", "Spotify", "Drive"}
	for i, desc := range want {
		if view.Items[i].Description != desc {
			t.Fatalf("pending view position %d: got %s, want %s", i, view.Items[i].Description, desc)
		}
	}
	if view.Items[0].Status != "overdue" || view.Items[0].Due.Severity != "overdue" {
		t.Fatalf("past-due record must surface as overdue, got %+v", view.Items[0])
	}
	if view.TotalAmount != 30800 {
		t.Fatalf("pending total = %d, want 30800", view.TotalAmount)
	}
	if view.OverdueCount != 1 {
		t.Fatalf("overdue count = %d, want 1", view.OverdueCount)
	}

	// Three-day filter keeps the overdue item and drops the distant one.
	env.do(t, http.MethodGet, "/api/subscriptions/pending?filter=3days", nil, http.StatusOK, &view)
	if len(view.Items) != 2 {
		t.Fatalf("filtered view: expected 2 items, got %d", len(view.Items))
	}

	var completion completionDTO
	env.do(t, http.MethodPost, fmt.Sprintf("/api/subscriptions/%s/complete", netflix.ID),
		map[string]interface{}{}, http.StatusOK, &completion)

	if completion.Completed.Status != "completed" || completion.Completed.ActualDate == nil {
		t.Fatalf("completion must return the paid record, got %+v", completion.Completed)
	}
	if completion.NextPending.Status != "pending" || completion.NextPending.DueDate == nil {
		t.Fatalf("completion must spawn a pending sibling, got %+v", completion.NextPending)
	}
	wantNextDue := today.AddDate(0, 0, -2).AddDate(0, 1, 0).Format("2006-01-02")
	if *completion.NextPending.DueDate != wantNextDue {
		t.Fatalf("next due = %s, want %s", *completion.NextPending.DueDate, wantNextDue)
	}

	var completed completedViewDTO
	env.do(t, http.MethodGet, "/api/subscriptions/completed", nil, http.StatusOK, &completed)
	if len(completed.Items) != 1 || completed.Items[0].Description != "Netflix" {
		t.Fatalf("completed view: expected the paid Netflix record, got %+v", completed.Items)
	}
	if completed.TotalAmount != 17000 {
		t.Fatalf("completed total = %d, want 17000", completed.TotalAmount)
	}
	if len(completed.CategoryTotals) != 1 || completed.CategoryTotals[0].Amount != 17000 {
		t.Fatalf("category totals = %+v, want one Media group of 17000", completed.CategoryTotals)
	}
	if completed.CategoryTotals[0].Color == nil || *completed.CategoryTotals[0].Color != color {
		t.Fatalf("category group must carry the display color")
	}

	// Category in use cannot be deleted.
	env.do(t, http.MethodDelete, "/api/categories/"+media.ID, nil, http.StatusConflict, nil)

	env.do(t, http.MethodDelete, "/api/subscriptions/"+drive.ID, nil, http.StatusNoContent, nil)
	env.do(t, http.MethodDelete, "/api/subscriptions/"+drive.ID, nil, http.StatusNotFound, nil)
}
