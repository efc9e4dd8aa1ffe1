package httpapi

import (
	"net/http"
	"strings"

	"pawpad.org/internal/auth"
	"pawpad.org/internal/dogs"
)

type createNoteRequest struct {
	TypeOfNote string `json:"type_of_note"`
	Notes      string `json:"notes"`
	DogID      int64  `json:"dog_id"`
}

func (a *API) handleNotesCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		a.createNote(w, r)
	case http.MethodDelete:
		a.deleteNotesByDog(w, r)
	default:
		methodNotAllowed(w, r, http.MethodPost, http.MethodDelete)
	}
}

func (a *API) handleNoteResource(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/notes/")
	id, ok := parseID(path)
	if !ok {
		writeError(w, r, http.StatusNotFound, "Can't find note.")
		return
	}
	switch r.Method {
	case http.MethodGet:
		a.listNotesByDog(w, r, id)
	case http.MethodDelete:
		a.deleteNote(w, r, id)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodDelete)
	}
}

func (a *API) createNote(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if missing := firstMissing(map[string]string{
		"type_of_note": req.TypeOfNote,
		"notes":        req.Notes,
	}, "type_of_note", "notes"); missing != "" {
		writeError(w, r, http.StatusBadRequest, "Missing '"+missing+"' in request body")
		return
	}
	if req.DogID == 0 {
		writeError(w, r, http.StatusBadRequest, "Missing 'dog_id' in request body")
		return
	}

	var (
		authorID   int64
		authorName string
	)
	if user, ok := auth.UserFromContext(r.Context()); ok {
		authorID = user.ID
		authorName = user.FirstName
	}

	note := &dogs.Note{
		TypeOfNote: req.TypeOfNote,
		Notes:      req.Notes,
		DogID:      req.DogID,
	}
	if err := a.dogs.AddNote(r.Context(), note, authorID, authorName); err != nil {
		a.handleStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

func (a *API) listNotesByDog(w http.ResponseWriter, r *http.Request, dogID int64) {
	notes, err := a.dogs.Store().NotesByDog(r.Context(), dogID)
	if err != nil {
		a.handleStoreError(w, r, err)
		return
	}
	if notes == nil {
		notes = []dogs.Note{}
	}
	writeJSON(w, http.StatusOK, notes)
}

func (a *API) deleteNote(w http.ResponseWriter, r *http.Request, noteID int64) {
	if err := a.dogs.RemoveNote(r.Context(), noteID); err != nil {
		if dogs.IsMissing(err) {
			writeError(w, r, http.StatusNotFound, "Can't find note.")
			return
		}
		a.handleStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) deleteNotesByDog(w http.ResponseWriter, r *http.Request) {
	var req byDogRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.DogID == 0 {
		writeError(w, r, http.StatusBadRequest, "Missing 'dog_id' in request body")
		return
	}
	deleted, err := a.dogs.Store().DeleteNotesByDog(r.Context(), req.DogID)
	if err != nil {
		a.handleStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": deleted})
}
