package web

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"boris-chat/internal/gateway"
	"boris-chat/internal/session"
)

const sessionCookie = "boris_session"

// Server is the HTTP surface of the chat: one page, inline static
// assets and a small JSON API. Each browser gets its own isolated
// session keyed by a cookie.
type Server struct {
	sessions  *session.Manager
	model     string
	server    *http.Server
	port      int
	startTime time.Time
}

func NewServer(sessions *session.Manager, model string, port int) *Server {
	return &Server{
		sessions:  sessions,
		model:     model,
		port:      port,
		startTime: time.Now(),
	}
}

func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/static/", s.handleStatic)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/api/send", s.handleSend)
	mux.HandleFunc("/api/clear", s.handleClear)
	mux.HandleFunc("/api/configure", s.handleConfigure)
	mux.HandleFunc("/", s.handleRoot)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("🌐 Starting chat web server on http://localhost:%d", s.port)
	return s.server.ListenAndServe()
}

func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

// sessionFor resolves the caller's session from the cookie, creating a
// fresh one (and setting the cookie) on first visit or after a restart.
func (s *Server) sessionFor(w http.ResponseWriter, r *http.Request) *session.Session {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if sess := s.sessions.Get(cookie.Value); sess != nil {
			return sess
		}
	}

	token, sess := s.sessions.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	sess := s.sessionFor(w, r)

	data := struct {
		Model         string
		Configured    bool
		EnvConfigured bool
	}{
		Model:         s.model,
		Configured:    sess.Configured(),
		EnvConfigured: sess.EnvConfigured(),
	}

	tmpl := template.Must(template.New("chat").Parse(getHTMLTemplate()))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		log.Printf("Error rendering template: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/static/style.css":
		w.Header().Set("Content-Type", "text/css")
		w.Write([]byte(getCSS()))
	case "/static/script.js":
		w.Header().Set("Content-Type", "application/javascript")
		w.Write([]byte(getJS()))
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sess := s.sessionFor(w, r)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"messages":       sess.Messages(),
		"count":          sess.Len(),
		"configured":     sess.Configured(),
		"env_configured": sess.EnvConfigured(),
	})
}

func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sess := s.sessionFor(w, r)

	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": "Invalid JSON request: " + err.Error(),
		})
		return
	}

	if !sess.Configured() {
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error": "No API key configured. Set GEMINI_API_KEY or enter a key in the sidebar.",
		})
		return
	}

	// History is captured before the append so the prompt context
	// excludes the utterance being sent.
	history := sess.History()
	if !sess.AppendUserTurn(req.Message) {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": "Message is empty",
		})
		return
	}

	// One blocking call per turn; a failure comes back as synthetic
	// assistant text and is stored like any other reply.
	reply := gateway.GetResponse(r.Context(), sess.Client(), req.Message, history)
	sess.AppendAssistantTurn(reply)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reply": reply,
		"count": sess.Len(),
	})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sess := s.sessionFor(w, r)
	sess.Clear()
	log.Printf("🗑️ Chat history cleared")

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   sess.Len(),
	})
}

func (s *Server) handleConfigure(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sess := s.sessionFor(w, r)

	var req struct {
		APIKey string `json:"api_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": "Invalid JSON request: " + err.Error(),
		})
		return
	}

	if err := sess.Configure(req.APIKey); err != nil {
		log.Printf("❌ Failed to configure API key: %v", err)
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   fmt.Sprintf("Error configuring Gemini API: %v", err),
		})
		return
	}

	log.Printf("✅ API key configured")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "boris-chat",
		"model":     s.model,
		"sessions":  s.sessions.Count(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(s.startTime).String(),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
