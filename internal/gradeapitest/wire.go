package gradeapitest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

type gradeJSON struct {
	Username string `json:"username"`
	Course   string `json:"course"`
	Grade    int    `json:"grade"`
}

type teamJSON struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

func writeOK(w http.ResponseWriter, fields map[string]interface{}) {
	body := map[string]interface{}{"status_code": http.StatusOK}
	for k, v := range fields {
		body[k] = v
	}
	writeJSON(w, http.StatusOK, body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{"status_code": status, "message": msg})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeName(r *http.Request) (string, bool) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return "", false
	}
	name := strings.TrimSpace(body.Name)
	return name, name != ""
}

// record stores the request and restores its body for the next handler.
func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw []byte
		if r.Body != nil {
			raw, _ = io.ReadAll(r.Body)
			_ = r.Body.Close()
			r.Body = io.NopCloser(bytes.NewReader(raw))
		}

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:    r.Method,
			Path:      r.URL.Path,
			RawQuery:  r.URL.RawQuery,
			Token:     r.Header.Get("token"),
			RequestID: r.Header.Get("X-Request-ID"),
			Body:      string(raw),
		})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}
