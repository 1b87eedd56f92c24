package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vickramb/unibot/internal/config"
	"github.com/vickramb/unibot/internal/content"
	"github.com/vickramb/unibot/internal/flow"
	"github.com/vickramb/unibot/internal/observability"
	"github.com/vickramb/unibot/internal/registry"
	"github.com/vickramb/unibot/internal/session"
	"github.com/vickramb/unibot/internal/verify"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := content.Load()
	if err != nil {
		t.Fatalf("content.Load() error = %v", err)
	}
	cfg := config.Config{
		SessionTimeout:   time.Hour,
		VerifyBypassCode: "123456",
	}
	metrics := observability.NewMetrics(fmt.Sprintf("test_httpapi_%d", time.Now().UnixNano()))
	sessions := session.NewStore(flow.EntryState, cfg.SessionTimeout)
	gateway := verify.NewBypassProvider(cfg.VerifyBypassCode)
	router := flow.NewRouter(sessions, store, gateway, registry.NewInMemoryStore(), metrics, flow.Config{})
	srv := New(cfg, router, metrics, nil)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, payload map[string]string) flow.Response {
	t.Helper()
	body, _ := json.Marshal(payload)
	res, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s error = %v", url, err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("POST %s status = %d, want %d", url, res.StatusCode, http.StatusOK)
	}
	var out flow.Response
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestStartReturnsGreeting(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/start", map[string]string{})
	if resp.SessionID != "" {
		t.Fatalf("session_id = %q, want empty before name submission", resp.SessionID)
	}
	if resp.InputType != flow.InputText {
		t.Fatalf("input_type = %q, want text", resp.InputType)
	}
	if len(resp.Messages) == 0 || !strings.Contains(resp.Messages[0], "Geeta University") {
		t.Fatalf("messages = %v, want greeting", resp.Messages)
	}
}

func TestMessageRejectsEmptyInput(t *testing.T) {
	ts := newTestServer(t)

	body, _ := json.Marshal(map[string]string{"session_id": "", "message": ""})
	res, err := http.Post(ts.URL+"/api/message", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/message error = %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusBadRequest)
	}
}

// TestCriticalFlow walks Start, name, phone, code, schools, course and a
// curriculum facet end to end over HTTP.
func TestCriticalFlow(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/start", map[string]string{})
	if resp.InputType != flow.InputText {
		t.Fatalf("start input_type = %q, want text", resp.InputType)
	}

	resp = postJSON(t, ts.URL+"/api/message", map[string]string{"session_id": "", "message": "Rohan"})
	sessionID := resp.SessionID
	if sessionID == "" {
		t.Fatal("no session id after name submission")
	}
	if resp.InputType != flow.InputTel {
		t.Fatalf("input_type = %q, want tel", resp.InputType)
	}

	resp = postJSON(t, ts.URL+"/api/message", map[string]string{"session_id": sessionID, "message": "9876543210"})
	if resp.InputType != flow.InputText {
		t.Fatalf("input_type = %q, want text code prompt", resp.InputType)
	}

	resp = postJSON(t, ts.URL+"/api/message", map[string]string{"session_id": sessionID, "message": "123456"})
	if !buttonsContainLabel(resp, "Explore Schools & Courses") {
		t.Fatalf("main menu missing schools entry: %+v", resp.Buttons)
	}

	resp = postJSON(t, ts.URL+"/api/message", map[string]string{"session_id": sessionID, "message": "flow_schools"})
	if !buttonsContainLabel(resp, "School of Computer Science & Engineering") {
		t.Fatalf("schools menu missing CSE: %+v", resp.Buttons)
	}
	cseToken := tokenForLabel(t, resp, "School of Computer Science & Engineering")

	resp = postJSON(t, ts.URL+"/api/message", map[string]string{"session_id": sessionID, "message": cseToken})
	if !buttonsContainLabel(resp, "B.Tech. Hons. CSE") {
		t.Fatalf("course menu missing B.Tech: %+v", resp.Buttons)
	}
	btechToken := tokenForLabel(t, resp, "B.Tech. Hons. CSE")

	resp = postJSON(t, ts.URL+"/api/message", map[string]string{"session_id": sessionID, "message": btechToken})
	if !buttonsContainLabel(resp, "Curriculum / Subjects") {
		t.Fatalf("course facet menu missing curriculum: %+v", resp.Buttons)
	}

	resp = postJSON(t, ts.URL+"/api/message", map[string]string{"session_id": sessionID, "message": "detail_curriculum"})
	if !strings.Contains(strings.Join(resp.Messages, "\n"), "Computer Science Fundamentals") {
		t.Fatalf("curriculum facet missing expected entry: %v", resp.Messages)
	}
}

func TestRestartInvalidatesSession(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/message", map[string]string{"session_id": "", "message": "Rohan"})
	sessionID := resp.SessionID
	if sessionID == "" {
		t.Fatal("no session id after name submission")
	}

	resp = postJSON(t, ts.URL+"/api/restart", map[string]string{"session_id": sessionID})
	if resp.SessionID != "" || resp.InputType != flow.InputText {
		t.Fatalf("restart payload = %+v, want greeting", resp)
	}

	resp = postJSON(t, ts.URL+"/api/message", map[string]string{"session_id": sessionID, "message": "anything"})
	if resp.SessionID != "" || !strings.Contains(resp.Messages[0], "expired") {
		t.Fatalf("stale session dispatch = %+v, want expired payload", resp)
	}
}

func TestUIRoutes(t *testing.T) {
	ts := newTestServer(t)

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	rootRes, err := client.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET / error = %v", err)
	}
	defer rootRes.Body.Close()
	if rootRes.StatusCode != http.StatusTemporaryRedirect {
		t.Fatalf("GET / status = %d, want %d", rootRes.StatusCode, http.StatusTemporaryRedirect)
	}
	if got := rootRes.Header.Get("Location"); got != "/ui/" {
		t.Fatalf("GET / location = %q, want %q", got, "/ui/")
	}

	uiRes, err := http.Get(ts.URL + "/ui/")
	if err != nil {
		t.Fatalf("GET /ui/ error = %v", err)
	}
	defer uiRes.Body.Close()
	if uiRes.StatusCode != http.StatusOK {
		t.Fatalf("GET /ui/ status = %d, want %d", uiRes.StatusCode, http.StatusOK)
	}

	var body bytes.Buffer
	if _, err := body.ReadFrom(uiRes.Body); err != nil {
		t.Fatalf("reading /ui/ body failed: %v", err)
	}
	if !strings.Contains(body.String(), "id=\"chat-box\"") {
		t.Fatalf("GET /ui/ body missing expected content")
	}
}

func TestHealthEndpoints(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		res, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("GET %s error = %v", path, err)
		}
		res.Body.Close()
		if res.StatusCode != http.StatusOK {
			t.Fatalf("GET %s status = %d, want %d", path, res.StatusCode, http.StatusOK)
		}
	}
}

func buttonsContainLabel(resp flow.Response, label string) bool {
	for _, b := range resp.Buttons {
		if b.Label == label {
			return true
		}
	}
	return false
}

func tokenForLabel(t *testing.T, resp flow.Response, label string) string {
	t.Helper()
	for _, b := range resp.Buttons {
		if b.Label == label {
			return b.Token
		}
	}
	t.Fatalf("button %q not found in %+v", label, resp.Buttons)
	return ""
}
