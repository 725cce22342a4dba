package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/librarylite/internal/common"
	"github.com/dmitrijs2005/librarylite/internal/server/models"
)

// userHandler is a handler that is handed the resolved account explicitly.
type userHandler func(w http.ResponseWriter, r *http.Request, user *models.User)

// withUser runs next only for requests carrying a valid session; everyone
// else is sent to the login page.
func (h *handlers) withUser(next userHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.sessions.Required(r)
		if err != nil {
			if errors.Is(err, common.ErrUnauthenticated) {
				h.promptLogin(w, r)
				return
			}
			h.internalError(w, r, err)
			return
		}
		next(w, r, user)
	}
}

// withOptionalUser runs next with a nil user for anonymous requests.
func (h *handlers) withOptionalUser(next userHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.sessions.Optional(r)
		if err != nil {
			h.internalError(w, r, err)
			return
		}
		next(w, r, user)
	}
}

func (h *handlers) promptLogin(w http.ResponseWriter, r *http.Request) {
	if wantsHTML(r) {
		redirect(w, r, loginPath)
		return
	}
	writeJSON(w, http.StatusUnauthorized, errorResponse{
		Error:    codeUnauthenticated,
		Message:  "login required",
		LoginURL: loginPath,
	})
}

func (h *handlers) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, codeInternal, "internal server error")
}
