package httpapi

import (
	"encoding/json"
	"mime"
	"net/http"
	"strings"
)

// maxBodyBytes caps login and book request bodies.
const maxBodyBytes = 1 << 20

const (
	codeInvalidCredentials = "INVALID_CREDENTIALS"
	codeUnauthenticated    = "UNAUTHENTICATED"
	codeValidation         = "VALIDATION_FAILED"
	codeBadRequest         = "BAD_REQUEST"
	codeNotFound           = "NOT_FOUND"
	codeInternal           = "INTERNAL"
)

type errorResponse struct {
	Error    string            `json:"error"`
	Message  string            `json:"message"`
	Fields   map[string]string `json:"fields,omitempty"`
	LoginURL string            `json:"login_url,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Error: code, Message: msg})
}

// wantsHTML reports whether the client is a browser expecting a page
// rather than a JSON API client.
func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// isForm reports whether the request body is an HTML form submission.
func isForm(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mt == "application/x-www-form-urlencoded" || mt == "multipart/form-data"
}

func redirect(w http.ResponseWriter, r *http.Request, location string) {
	http.Redirect(w, r, location, http.StatusSeeOther)
}

func limitBody(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
}
