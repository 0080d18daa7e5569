package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/flappykiro/leaderboard-service/internal/config"
	"github.com/flappykiro/leaderboard-service/internal/eventlog"
	"github.com/flappykiro/leaderboard-service/internal/leaderboard"
	"github.com/flappykiro/leaderboard-service/internal/models"
	"github.com/flappykiro/leaderboard-service/internal/service"
	"github.com/flappykiro/leaderboard-service/internal/store"
)

func newTestRouter(t *testing.T, cfg config.Config) *gin.Engine {
	t.Helper()
	if cfg.DataDir == "" {
		cfg.DataDir = t.TempDir()
	}
	scoresFile, err := store.NewJSONFile[models.ScoreEntry](cfg.ScoresFile())
	if err != nil {
		t.Fatal(err)
	}
	telemetryFile, err := store.NewJSONFile[models.TelemetryEvent](cfg.TelemetryFile())
	if err != nil {
		t.Fatal(err)
	}
	svc := service.New(
		leaderboard.New(scoresFile, leaderboard.DefaultCapacity),
		eventlog.New(telemetryFile, eventlog.DefaultCapacity),
	)
	return NewRouter(cfg, svc)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func submit(t *testing.T, r *gin.Engine, username string, score float64, difficulty string) *httptest.ResponseRecorder {
	t.Helper()
	return doJSON(t, r, http.MethodPost, "/api/scores", map[string]any{
		"username":   username,
		"score":      score,
		"difficulty": difficulty,
	})
}

func TestSubmitScoreCreated(t *testing.T) {
	r := newTestRouter(t, config.Config{})

	w := submit(t, r, "player1", 42, "easy")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", w.Code, w.Body.String())
	}

	var resp models.SubmitScoreResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Score.Username != "player1" || resp.Score.Score != 42 || resp.Score.Difficulty != "easy" {
		t.Fatalf("unexpected response entry: %+v", resp.Score)
	}
}

func TestSubmitScoreRejections(t *testing.T) {
	r := newTestRouter(t, config.Config{})

	cases := []struct {
		name    string
		payload map[string]any
	}{
		{"negative score", map[string]any{"username": "player1", "score": -5, "difficulty": "easy"}},
		{"unknown difficulty", map[string]any{"username": "player1", "score": 10, "difficulty": "extreme"}},
		{"bad username", map[string]any{"username": "admin2", "score": 10, "difficulty": "easy"}},
		{"missing score", map[string]any{"username": "player1", "difficulty": "easy"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/scores", tc.payload)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 got %d: %s", w.Code, w.Body.String())
			}
		})
	}

	// Nothing above may have touched the ledger.
	w := doJSON(t, r, http.MethodGet, "/api/scores", nil)
	var entries []models.ScoreEntry
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("rejected submissions reached the ledger: %d entries", len(entries))
	}
}

func TestSubmitScoreMalformedBody(t *testing.T) {
	r := newTestRouter(t, config.Config{})

	req := httptest.NewRequest(http.MethodPost, "/api/scores", bytes.NewReader([]byte("{oops")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}

func TestGetScoresOrderingAndLimit(t *testing.T) {
	r := newTestRouter(t, config.Config{})

	for _, score := range []float64{10, 99, 55} {
		if w := submit(t, r, "player1", score, "medium"); w.Code != http.StatusCreated {
			t.Fatalf("seed submit failed: %d", w.Code)
		}
	}

	w := doJSON(t, r, http.MethodGet, "/api/scores", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var entries []models.ScoreEntry
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 || entries[0].Score != 99 || entries[2].Score != 10 {
		t.Fatalf("unexpected leaderboard: %+v", entries)
	}

	w = doJSON(t, r, http.MethodGet, "/api/scores?limit=2", nil)
	entries = nil
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("limit=2 returned %d entries", len(entries))
	}

	w = doJSON(t, r, http.MethodGet, "/api/scores?limit=0", nil)
	entries = nil
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("limit=0 returned %d entries", len(entries))
	}

	if w := doJSON(t, r, http.MethodGet, "/api/scores?limit=abc", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("non-integer limit expected 400 got %d", w.Code)
	}
}

func TestGetScoresDefaultLimit(t *testing.T) {
	r := newTestRouter(t, config.Config{})

	for i := 0; i < 55; i++ {
		if w := submit(t, r, "player1", float64(i), "easy"); w.Code != http.StatusCreated {
			t.Fatalf("seed submit failed: %d", w.Code)
		}
	}

	w := doJSON(t, r, http.MethodGet, "/api/scores", nil)
	var entries []models.ScoreEntry
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != leaderboard.DefaultLimit {
		t.Fatalf("default read returned %d entries, want %d", len(entries), leaderboard.DefaultLimit)
	}
}

func TestTelemetryAlwaysAcknowledged(t *testing.T) {
	r := newTestRouter(t, config.Config{})

	w := doJSON(t, r, http.MethodPost, "/api/telemetry", map[string]any{
		"eventName": "game_start",
		"sessionId": "abc123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", w.Code, w.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["status"] != "logged" {
		t.Fatalf("unexpected ack: %v", resp)
	}

	if w := doJSON(t, r, http.MethodPost, "/api/telemetry", map[string]any{}); w.Code != http.StatusBadRequest {
		t.Fatalf("empty payload expected 400 got %d", w.Code)
	}
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, config.Config{})
	submit(t, r, "player1", 10, "hard")

	w := doJSON(t, r, http.MethodGet, "/api/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var h models.HealthStatus
	if err := json.Unmarshal(w.Body.Bytes(), &h); err != nil {
		t.Fatal(err)
	}
	if h.Status != "healthy" || h.ScoresCount != 1 {
		t.Fatalf("unexpected health: %+v", h)
	}
}

func TestStaticFrontend(t *testing.T) {
	staticDir := t.TempDir()
	index := []byte("<html>flappy</html>")
	if err := os.WriteFile(filepath.Join(staticDir, "index.html"), index, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(staticDir, "game.js"), []byte("// js"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := newTestRouter(t, config.Config{StaticDir: staticDir})

	w := doJSON(t, r, http.MethodGet, "/", nil)
	if w.Code != http.StatusOK || !bytes.Equal(w.Body.Bytes(), index) {
		t.Fatalf("index not served: %d %q", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/game.js", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("static file not served: %d", w.Code)
	}
}

func TestStaticFrontendDirectoriesNotListed(t *testing.T) {
	staticDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<html></html>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(staticDir, "assets"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(staticDir, "assets", "sprite.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := newTestRouter(t, config.Config{StaticDir: staticDir})

	if w := doJSON(t, r, http.MethodGet, "/assets", nil); w.Code != http.StatusNotFound {
		t.Fatalf("directory path expected 404 got %d: %s", w.Code, w.Body.String())
	}
	if w := doJSON(t, r, http.MethodGet, "/assets/", nil); w.Code != http.StatusNotFound {
		t.Fatalf("directory path expected 404 got %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodGet, "/assets/sprite.png", nil); w.Code != http.StatusOK {
		t.Fatalf("file under directory expected 200 got %d", w.Code)
	}
}

func TestSubmitScoreHugeNumberRejected(t *testing.T) {
	r := newTestRouter(t, config.Config{})

	w := doJSON(t, r, http.MethodPost, "/api/scores", map[string]any{
		"username":   "player1",
		"score":      1e20,
		"difficulty": "easy",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/scores", nil)
	var entries []models.ScoreEntry
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Score < 0 {
			t.Fatalf("negative score reached the ledger: %+v", e)
		}
	}
	if len(entries) != 0 {
		t.Fatalf("rejected submission reached the ledger: %d entries", len(entries))
	}
}
