package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"learnai_backend/internal/config"
	"learnai_backend/pkg/storage"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type sessionItems struct {
	HasSession bool              `json:"hasSession"`
	Items      []json.RawMessage `json:"items"`
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := &config.Config{
		Server:         config.ServerConfig{Port: "0", Mode: "test"},
		JWT:            config.JWTConfig{Secret: "app-test-secret-app-test-secret-00", ExpireTime: time.Hour},
		Storage:        config.StorageConfig{Type: "memory", Namespace: "apptest"},
		RateLimit:      config.RateLimitConfig{MaxRequests: 1000, WindowMinutes: 1},
		Progress:       config.ProgressConfig{QuizAverageMode: config.QuizAverageRounded},
		Recommendation: config.RecommendationConfig{Limit: 6},
		Feedback:       config.FeedbackConfig{RecentWindow: 20},
		Timezone:       "UTC",
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	store := storage.NewStore(storage.NewMemoryProvider(), cfg.Storage.Namespace)
	app, err := NewAppWithStore(ctx, cfg, store)
	if err != nil {
		t.Fatalf("NewAppWithStore: %v", err)
	}
	return app
}

func (a *App) do(t *testing.T, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: decode response %q: %v", method, path, w.Body.String(), err)
	}
	return w.Code, env
}

func decode(t *testing.T, raw json.RawMessage, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(raw, dst); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
}

func TestLearningFlow(t *testing.T) {
	app := newTestApp(t)

	code, resp := app.do(t, http.MethodGet, "/api/recommendations", "", nil)
	if code != http.StatusOK {
		t.Fatalf("anonymous recommendations status = %d", code)
	}
	var anon sessionItems
	decode(t, resp.Data, &anon)
	if anon.HasSession || len(anon.Items) != 0 {
		t.Fatalf("anonymous recommendations = %+v", anon)
	}

	register := map[string]interface{}{"name": "Ada", "email": "ada@example.com", "password": "secret123", "interests": []string{"data"}}
	if code, resp = app.do(t, http.MethodPost, "/api/register", "", register); code != http.StatusCreated {
		t.Fatalf("register status = %d (%s)", code, resp.Message)
	}
	if code, _ = app.do(t, http.MethodPost, "/api/register", "", register); code != http.StatusConflict {
		t.Fatalf("duplicate register status = %d", code)
	}
	longPassword := map[string]interface{}{"name": "Bob", "email": "bob@example.com", "password": strings.Repeat("p", 80)}
	if code, _ = app.do(t, http.MethodPost, "/api/register", "", longPassword); code != http.StatusBadRequest {
		t.Fatalf("long password register status = %d, want 400", code)
	}
	if code, _ = app.do(t, http.MethodPost, "/api/login", "", map[string]string{"email": "ada@example.com", "password": "nope-nope"}); code != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d", code)
	}

	code, resp = app.do(t, http.MethodPost, "/api/login", "", map[string]string{"email": "ada@example.com", "password": "secret123"})
	if code != http.StatusOK {
		t.Fatalf("login status = %d", code)
	}
	var login struct {
		Token string `json:"token"`
	}
	decode(t, resp.Data, &login)
	if login.Token == "" {
		t.Fatalf("empty token")
	}
	token := login.Token

	activity := map[string]interface{}{"type": "quiz_completed", "details": map[string]interface{}{"score": 100}}
	if code, resp = app.do(t, http.MethodPost, "/api/activities", token, activity); code != http.StatusCreated {
		t.Fatalf("record activity status = %d (%s)", code, resp.Message)
	}
	bad := map[string]interface{}{"type": "quiz_completed", "details": map[string]interface{}{"score": 120}}
	if code, _ = app.do(t, http.MethodPost, "/api/activities", token, bad); code != http.StatusBadRequest {
		t.Fatalf("invalid activity status = %d", code)
	}

	code, resp = app.do(t, http.MethodGet, "/api/progress", token, nil)
	if code != http.StatusOK {
		t.Fatalf("progress status = %d", code)
	}
	var stats struct {
		QuizzesTaken int `json:"quizzesTaken"`
		QuizAverage  int `json:"quizAverage"`
	}
	decode(t, resp.Data, &stats)
	if stats.QuizzesTaken != 1 || stats.QuizAverage != 100 {
		t.Fatalf("stats = %+v", stats)
	}

	code, resp = app.do(t, http.MethodGet, "/api/recommendations", token, nil)
	if code != http.StatusOK {
		t.Fatalf("recommendations status = %d", code)
	}
	var recs sessionItems
	decode(t, resp.Data, &recs)
	if !recs.HasSession || len(recs.Items) != 6 {
		t.Fatalf("recommendations hasSession=%v items=%d", recs.HasSession, len(recs.Items))
	}

	if code, _ = app.do(t, http.MethodPost, "/api/courses/course_ml/enroll", token, nil); code != http.StatusCreated {
		t.Fatalf("enroll status = %d", code)
	}
	if code, _ = app.do(t, http.MethodPost, "/api/courses/course_ml/enroll", token, nil); code != http.StatusConflict {
		t.Fatalf("repeat enroll status = %d", code)
	}
	if code, _ = app.do(t, http.MethodPost, "/api/courses/course_missing/enroll", token, nil); code != http.StatusNotFound {
		t.Fatalf("unknown course enroll status = %d", code)
	}

	code, resp = app.do(t, http.MethodGet, "/api/activities/recent?limit=1", token, nil)
	if code != http.StatusOK {
		t.Fatalf("recent status = %d", code)
	}
	var recent []struct {
		Type string `json:"type"`
	}
	decode(t, resp.Data, &recent)
	if len(recent) != 1 || recent[0].Type != "course_enrolled" {
		t.Fatalf("recent = %+v", recent)
	}

	if code, _ = app.do(t, http.MethodPost, "/api/logout", token, nil); code != http.StatusOK {
		t.Fatalf("logout status = %d", code)
	}
	if code, _ = app.do(t, http.MethodGet, "/api/profile", token, nil); code != http.StatusUnauthorized {
		t.Fatalf("profile after logout status = %d", code)
	}

	// 会话失效后可选登录接口按匿名处理
	code, resp = app.do(t, http.MethodGet, "/api/feedback", token, nil)
	if code != http.StatusOK {
		t.Fatalf("feedback after logout status = %d", code)
	}
	var fb sessionItems
	decode(t, resp.Data, &fb)
	if fb.HasSession {
		t.Fatalf("feedback after logout still has session")
	}
}

func TestCourseEndpoints(t *testing.T) {
	app := newTestApp(t)

	code, resp := app.do(t, http.MethodGet, "/api/courses?category="+url.QueryEscape("data science"), "", nil)
	if code != http.StatusOK {
		t.Fatalf("courses status = %d", code)
	}
	var courses []struct {
		ID string `json:"id"`
	}
	decode(t, resp.Data, &courses)
	if len(courses) != 2 {
		t.Fatalf("data science courses = %+v", courses)
	}

	if code, _ = app.do(t, http.MethodGet, "/api/courses/course_web", "", nil); code != http.StatusOK {
		t.Fatalf("get course status = %d", code)
	}
	if code, _ = app.do(t, http.MethodGet, "/api/courses/nope", "", nil); code != http.StatusNotFound {
		t.Fatalf("missing course status = %d", code)
	}
	if code, _ = app.do(t, http.MethodGet, "/api/health", "", nil); code != http.StatusOK {
		t.Fatalf("health status = %d", code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)
	for _, path := range []string{"/api/profile", "/api/progress", "/api/progress/weekly", "/api/activities/recent", "/api/profile/insights"} {
		if code, _ := app.do(t, http.MethodGet, path, "", nil); code != http.StatusUnauthorized {
			t.Fatalf("GET %s without token status = %d", path, code)
		}
	}
	if code, _ := app.do(t, http.MethodGet, "/api/profile", "not-a-jwt", nil); code != http.StatusUnauthorized {
		t.Fatalf("invalid token status = %d", code)
	}
}
