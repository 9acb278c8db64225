package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mullvad/guidelint/internal/ir"
	"github.com/mullvad/guidelint/internal/security"
	"github.com/mullvad/guidelint/internal/storage"
)

type fakeStore struct {
	runs    map[string]ir.Run
	waivers []storage.Waiver
}

func (f *fakeStore) ListRuns(limit, offset int) ([]storage.RunRow, error) {
	var out []storage.RunRow
	for id, r := range f.runs {
		out = append(out, storage.RunRow{ID: id, StartedAt: r.StartedAt, Violations: len(r.Violations)})
	}
	return out, nil
}

func (f *fakeStore) LoadRun(id string) (ir.Run, error) {
	r, ok := f.runs[id]
	if !ok {
		return ir.Run{}, errors.New("not found")
	}
	return r, nil
}

func (f *fakeStore) LoadLatestRun() (ir.Run, error) {
	var latest ir.Run
	found := false
	for _, r := range f.runs {
		if !found || r.StartedAt.After(latest.StartedAt) {
			latest, found = r, true
		}
	}
	if !found {
		return ir.Run{}, errors.New("no runs")
	}
	return latest, nil
}

func (f *fakeStore) ListViolations(runID, minSeverity string) ([]ir.Violation, error) {
	r, ok := f.runs[runID]
	if !ok {
		return nil, errors.New("not found")
	}
	return r.Violations, nil
}

func (f *fakeStore) ListWaivers(activeOnly bool) ([]storage.Waiver, error) { return f.waivers, nil }

func (f *fakeStore) CreateWaiver(ruleID, pathGlob, pattern, reason, createdBy string, expires time.Time) (int64, error) {
	f.waivers = append(f.waivers, storage.Waiver{ID: int64(len(f.waivers) + 1), RuleID: ruleID})
	return int64(len(f.waivers)), nil
}

func (f *fakeStore) RevokeWaiver(id int64, by string) error { return nil }

type fakeUsers struct {
	user     storage.User
	passHash string
	sessions map[string]storage.User
}

func (f *fakeUsers) GetUserByUsername(name string) (storage.User, string, error) {
	if name != f.user.Username {
		return storage.User{}, "", errors.New("not found")
	}
	return f.user, f.passHash, nil
}

func (f *fakeUsers) CreateSession(id int64, token string, exp time.Time) error {
	f.sessions[token] = f.user
	return nil
}

func (f *fakeUsers) GetSession(token string) (storage.User, error) {
	u, ok := f.sessions[token]
	if !ok {
		return storage.User{}, errors.New("no session")
	}
	return u, nil
}

func (f *fakeUsers) DeleteSession(token string) error { delete(f.sessions, token); return nil }

func (f *fakeUsers) LogAudit(username, action, resource string, meta map[string]any) error {
	return nil
}

func newTestServer(t *testing.T, role string) (*httptest.Server, *fakeStore) {
	t.Helper()
	hash, err := security.HashPassword("hunter2")
	if err != nil {
		t.Fatal(err)
	}
	store := &fakeStore{runs: map[string]ir.Run{
		"run-1": {
			ID:        "run-1",
			StartedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
			Violations: []ir.Violation{
				{ID: "X-1", RuleID: "BASH-STRICT-MODE", Path: "a.sh", Severity: "HIGH"},
			},
		},
	}}
	users := &fakeUsers{
		user:     storage.User{ID: 1, Username: "sam", Role: role},
		passHash: hash,
		sessions: map[string]storage.User{},
	}
	s := &Server{DB: store, UserStore: users, SessionDuration: time.Hour}
	ts := httptest.NewServer(s.Routes())
	t.Cleanup(ts.Close)
	return ts, store
}

func login(t *testing.T, ts *httptest.Server) *http.Cookie {
	t.Helper()
	resp, err := http.Post(ts.URL+"/api/v1/auth/login", "application/json",
		strings.NewReader(`{"username":"sam","password":"hunter2"}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookie {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t, "viewer")
	resp, err := http.Get(ts.URL + "/api/v1/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestGetRunAndViolations(t *testing.T) {
	ts, _ := newTestServer(t, "viewer")

	resp, err := http.Get(ts.URL + "/api/v1/runs/run-1")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var run ir.Run
	if err := json.NewDecoder(resp.Body).Decode(&run); err != nil {
		t.Fatal(err)
	}
	if run.ID != "run-1" || len(run.Violations) != 1 {
		t.Fatalf("run = %+v", run)
	}

	resp2, err := http.Get(ts.URL + "/api/v1/runs/missing")
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusNotFound {
		t.Fatalf("missing run status = %d", resp2.StatusCode)
	}
}

func TestRulesInventory(t *testing.T) {
	ts, _ := newTestServer(t, "viewer")
	resp, err := http.Get(ts.URL + "/api/v1/rules")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var body struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Count == 0 {
		t.Fatal("rules inventory empty")
	}
}

func TestWaiversRequireAuth(t *testing.T) {
	ts, _ := newTestServer(t, "viewer")
	resp, err := http.Get(ts.URL + "/api/v1/waivers")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unauthenticated waivers status = %d", resp.StatusCode)
	}
}

func TestWaiverCreateRequiresAdmin(t *testing.T) {
	ts, _ := newTestServer(t, "viewer")
	cookie := login(t, ts)

	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/api/v1/waivers",
		strings.NewReader(`{"rule_id":"BASH-STRICT-MODE","reason":"legacy","expires_at":"2030-01-01T00:00:00Z"}`))
	req.AddCookie(cookie)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("viewer create waiver status = %d", resp.StatusCode)
	}
}

func TestWaiverCreateAsAdmin(t *testing.T) {
	ts, store := newTestServer(t, "admin")
	cookie := login(t, ts)

	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/api/v1/waivers",
		strings.NewReader(`{"rule_id":"BASH-STRICT-MODE","reason":"legacy","expires_at":"2030-01-01T00:00:00Z"}`))
	req.AddCookie(cookie)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("admin create waiver status = %d", resp.StatusCode)
	}
	if len(store.waivers) != 1 {
		t.Fatalf("waiver not stored: %+v", store.waivers)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	ts, _ := newTestServer(t, "viewer")
	resp, err := http.Post(ts.URL+"/api/v1/auth/login", "application/json",
		strings.NewReader(`{"username":"sam","password":"wrong"}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad password status = %d", resp.StatusCode)
	}
}
