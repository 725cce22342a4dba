package httpapi

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/dmitrijs2005/librarylite/internal/common"
	"github.com/dmitrijs2005/librarylite/internal/server/models"
	validation "github.com/go-ozzo/ozzo-validation"
)

const loginPath = "/login"

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (in loginRequest) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Username, validation.Required, validation.Length(1, 150)),
		validation.Field(&in.Password, validation.Required, validation.Length(1, 72)),
	)
}

type loginResponse struct {
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

type meResponse struct {
	Username string `json:"username"`
}

var loginPage = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html>
<head><title>LibraryLite - Sign in</title></head>
<body>
<h1>Sign in</h1>
{{if eq . "invalid_input"}}<p class="error">Enter both a username and a password.</p>
{{else if .}}<p class="error">Invalid username or password.</p>{{end}}
<form method="post" action="/login">
<label>Username <input name="username" autocomplete="username"></label>
<label>Password <input name="password" type="password" autocomplete="current-password"></label>
<button type="submit">Sign in</button>
</form>
</body>
</html>
`))

func (h *handlers) loginForm(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = loginPage.Execute(w, r.URL.Query().Get("error"))
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	form := isForm(r)
	limitBody(w, r)

	var in loginRequest
	if form {
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, "malformed form")
			return
		}
		in.Username = r.PostForm.Get("username")
		in.Password = r.PostForm.Get("password")
	} else if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "malformed request body")
		return
	}

	if err := in.Validate(); err != nil {
		if form {
			redirect(w, r, loginPath+"?error=invalid_input")
			return
		}
		writeValidationError(w, err)
		return
	}

	token, user, err := h.auth.Login(ctx, in.Username, in.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			h.recorder.AuthOutcome("login", "invalid_credentials")
			if form {
				redirect(w, r, loginPath+"?error=invalid_credentials")
				return
			}
			writeError(w, http.StatusUnauthorized, codeInvalidCredentials, common.ErrInvalidCredentials.Error())
			return
		}
		h.recorder.AuthOutcome("login", "error")
		h.internalError(w, r, err)
		return
	}

	h.cookies.Set(w, token.Value, token.Claims.ExpiresAt)
	h.recorder.AuthOutcome("login", "success")

	if form {
		redirect(w, r, "/books")
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Username: user.UserName, ExpiresAt: token.Claims.ExpiresAt})
}

// logout only drops the cookie; the token itself stays valid until it
// expires.
func (h *handlers) logout(w http.ResponseWriter, r *http.Request) {
	h.cookies.Clear(w)
	h.recorder.AuthOutcome("logout", "success")

	if isForm(r) || wantsHTML(r) {
		redirect(w, r, "/books")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) me(w http.ResponseWriter, r *http.Request, user *models.User) {
	writeJSON(w, http.StatusOK, meResponse{Username: user.UserName})
}
