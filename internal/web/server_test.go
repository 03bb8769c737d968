package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"boris-chat/internal/llm"
	"boris-chat/internal/session"
)

type fakeClient struct {
	reply string
	err   error
}

func (f *fakeClient) Generate(_ context.Context, _ []llm.Message) (llm.Response, error) {
	if f.err != nil {
		return llm.Response{}, f.err
	}
	return llm.Response{Content: f.reply}, nil
}

func newTestServer(client llm.Client, envKey string) *Server {
	factory := func(credential string) (llm.Client, error) {
		if credential == "bad-key" {
			return nil, fmt.Errorf("malformed key")
		}
		return client, nil
	}
	return NewServer(session.NewManager(factory, envKey), "gemini-2.5-pro", 8080)
}

// do runs one request against a handler, carrying the session cookie
// between calls the way a browser would.
func do(t *testing.T, handler http.HandlerFunc, method, path, body string, cookie *http.Cookie) (*httptest.ResponseRecorder, *http.Cookie) {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rr := httptest.NewRecorder()
	handler(rr, req)

	for _, c := range rr.Result().Cookies() {
		if c.Name == sessionCookie {
			return rr, c
		}
	}
	return rr, cookie
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to parse JSON response: %v", err)
	}
	return out
}

func TestSendAppendsUserAndAssistantTurns(t *testing.T) {
	s := newTestServer(&fakeClient{reply: "Hi there"}, "env-key")

	rr, cookie := do(t, s.handleSend, "POST", "/api/send", `{"message":"Hello"}`, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("send returned %d: %s", rr.Code, rr.Body.String())
	}

	resp := decode(t, rr)
	if resp["reply"] != "Hi there" {
		t.Fatalf("unexpected reply: %v", resp["reply"])
	}
	if resp["count"] != float64(2) {
		t.Fatalf("expected count 2, got %v", resp["count"])
	}

	rr, _ = do(t, s.handleHistory, "GET", "/api/history", "", cookie)
	hist := decode(t, rr)
	msgs := hist["messages"].([]interface{})
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	first := msgs[0].(map[string]interface{})
	second := msgs[1].(map[string]interface{})
	if first["role"] != "user" || first["content"] != "Hello" {
		t.Fatalf("unexpected first message: %v", first)
	}
	if second["role"] != "assistant" || second["content"] != "Hi there" {
		t.Fatalf("unexpected second message: %v", second)
	}
}

func TestSendWithoutConfiguration(t *testing.T) {
	s := newTestServer(&fakeClient{reply: "unused"}, "")

	rr, _ := do(t, s.handleSend, "POST", "/api/send", `{"message":"Hello"}`, nil)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 for unconfigured session, got %d", rr.Code)
	}
}

func TestSendRejectsBlankMessage(t *testing.T) {
	s := newTestServer(&fakeClient{reply: "unused"}, "env-key")

	rr, cookie := do(t, s.handleSend, "POST", "/api/send", `{"message":"   "}`, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank message, got %d", rr.Code)
	}

	rr, _ = do(t, s.handleHistory, "GET", "/api/history", "", cookie)
	hist := decode(t, rr)
	if hist["count"] != float64(0) {
		t.Fatalf("blank message changed the log: %v", hist["count"])
	}
}

func TestSendFailureBecomesAssistantTurn(t *testing.T) {
	s := newTestServer(&fakeClient{err: fmt.Errorf("auth revoked")}, "env-key")

	rr, cookie := do(t, s.handleSend, "POST", "/api/send", `{"message":"Hello"}`, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("completion failure must not fail the request, got %d", rr.Code)
	}

	resp := decode(t, rr)
	reply := resp["reply"].(string)
	if !strings.Contains(reply, "auth revoked") {
		t.Fatalf("synthetic reply should describe the failure: %q", reply)
	}

	rr, _ = do(t, s.handleHistory, "GET", "/api/history", "", cookie)
	hist := decode(t, rr)
	if hist["count"] != float64(2) {
		t.Fatalf("failure path should still append both turns, got %v", hist["count"])
	}
}

func TestClearResetsLog(t *testing.T) {
	s := newTestServer(&fakeClient{reply: "Hi there"}, "env-key")

	_, cookie := do(t, s.handleSend, "POST", "/api/send", `{"message":"Hello"}`, nil)

	rr, _ := do(t, s.handleClear, "POST", "/api/clear", "", cookie)
	if rr.Code != http.StatusOK {
		t.Fatalf("clear returned %d", rr.Code)
	}
	if decode(t, rr)["count"] != float64(0) {
		t.Fatalf("clear did not empty the log")
	}

	// Idempotent.
	rr, _ = do(t, s.handleClear, "POST", "/api/clear", "", cookie)
	if decode(t, rr)["count"] != float64(0) {
		t.Fatalf("second clear changed state")
	}
}

func TestConfigureFailureKeepsPreviousHandle(t *testing.T) {
	s := newTestServer(&fakeClient{reply: "Hi there"}, "")

	rr, cookie := do(t, s.handleConfigure, "POST", "/api/configure", `{"api_key":"good-key"}`, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("configure returned %d: %s", rr.Code, rr.Body.String())
	}

	rr, _ = do(t, s.handleConfigure, "POST", "/api/configure", `{"api_key":"bad-key"}`, cookie)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for rejected credential, got %d", rr.Code)
	}

	rr, _ = do(t, s.handleSend, "POST", "/api/send", `{"message":"Hello"}`, cookie)
	if rr.Code != http.StatusOK {
		t.Fatalf("previous handle should remain usable, got %d", rr.Code)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	s := newTestServer(&fakeClient{reply: "Hi there"}, "env-key")

	_, cookieA := do(t, s.handleSend, "POST", "/api/send", `{"message":"Hello from A"}`, nil)

	rr, _ := do(t, s.handleHistory, "GET", "/api/history", "", nil)
	hist := decode(t, rr)
	if hist["count"] != float64(0) {
		t.Fatalf("new browser saw another session's log: %v", hist["count"])
	}

	rr, _ = do(t, s.handleHistory, "GET", "/api/history", "", cookieA)
	hist = decode(t, rr)
	if hist["count"] != float64(2) {
		t.Fatalf("session A lost its log: %v", hist["count"])
	}
}

func TestStatusEndpoint(t *testing.T) {
	s := newTestServer(&fakeClient{reply: "unused"}, "")

	rr, _ := do(t, s.handleStatus, "GET", "/api/status", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status returned %d", rr.Code)
	}

	resp := decode(t, rr)
	if resp["status"] != "healthy" {
		t.Fatalf("unexpected status payload: %v", resp)
	}
	if resp["service"] != "boris-chat" {
		t.Fatalf("unexpected service name: %v", resp["service"])
	}
}

func TestRootServesChatPage(t *testing.T) {
	s := newTestServer(&fakeClient{reply: "unused"}, "env-key")

	rr, cookie := do(t, s.handleRoot, "GET", "/", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("root returned %d", rr.Code)
	}
	if cookie == nil {
		t.Fatalf("first visit should set a session cookie")
	}
	if !strings.Contains(rr.Body.String(), "Boris Chat Pro") {
		t.Fatalf("page body missing title")
	}
	if !strings.Contains(rr.Body.String(), "API Key loaded from environment") {
		t.Fatalf("env-configured session should show the env banner")
	}
}
