package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/librarylite/internal/common"
	"github.com/dmitrijs2005/librarylite/internal/server/models"
	"github.com/dmitrijs2005/librarylite/internal/server/services"
	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
)

type listResponse struct {
	User  *meResponse   `json:"user"`
	Books []models.Book `json:"books"`
}

type bookResponse struct {
	User *meResponse  `json:"user"`
	Book *models.Book `json:"book"`
}

func viewer(user *models.User) *meResponse {
	if user == nil {
		return nil
	}
	return &meResponse{Username: user.UserName}
}

func (h *handlers) listBooks(w http.ResponseWriter, r *http.Request, user *models.User) {
	books, err := h.books.List(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{User: viewer(user), Books: books})
}

func (h *handlers) getBook(w http.ResponseWriter, r *http.Request, user *models.User) {
	id, ok := bookID(w, r)
	if !ok {
		return
	}

	b, err := h.books.Get(r.Context(), id)
	if err != nil {
		h.bookError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookResponse{User: viewer(user), Book: b})
}

func (h *handlers) createBook(w http.ResponseWriter, r *http.Request, user *models.User) {
	limitBody(w, r)
	var in services.BookInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "malformed request body")
		return
	}

	b, err := h.books.Create(r.Context(), user, in)
	if err != nil {
		h.bookError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *handlers) updateBook(w http.ResponseWriter, r *http.Request, user *models.User) {
	id, ok := bookID(w, r)
	if !ok {
		return
	}

	limitBody(w, r)
	var in services.BookInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "malformed request body")
		return
	}

	b, err := h.books.Update(r.Context(), user, id, in)
	if err != nil {
		h.bookError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *handlers) deleteBook(w http.ResponseWriter, r *http.Request, user *models.User) {
	id, ok := bookID(w, r)
	if !ok {
		return
	}

	if err := h.books.Delete(r.Context(), user, id); err != nil {
		h.bookError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func bookID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid book id")
		return 0, false
	}
	return id, true
}

func (h *handlers) bookError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, "book not found")
	case errors.Is(err, common.ErrorValidation):
		writeValidationError(w, err)
	default:
		h.internalError(w, r, err)
	}
}

func writeValidationError(w http.ResponseWriter, err error) {
	resp := errorResponse{Error: codeValidation, Message: "invalid input"}

	var fields validation.Errors
	if errors.As(err, &fields) {
		resp.Fields = make(map[string]string, len(fields))
		for name, ferr := range fields {
			resp.Fields[name] = ferr.Error()
		}
	}
	writeJSON(w, http.StatusBadRequest, resp)
}
