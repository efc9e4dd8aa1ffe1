package httpapi

import (
	"net/http"
	"strings"
	"time"

	"pawpad.org/internal/dogs"
)

type createShotRequest struct {
	ShotName      string     `json:"shot_name"`
	ShotCompleted *bool      `json:"shot_iscompleted"`
	ShotDate      *time.Time `json:"shot_date"`
	DogID         int64      `json:"dog_id"`
}

type recordShotRequest struct {
	ShotName string     `json:"shot_name"`
	ShotDate *time.Time `json:"shot_date"`
}

type byDogRequest struct {
	DogID int64 `json:"dog_id"`
}

func (a *API) handleShotsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listShotNames(w, r)
	case http.MethodPost:
		a.createShot(w, r)
	case http.MethodDelete:
		a.deleteShotsByDog(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost, http.MethodDelete)
	}
}

func (a *API) handleShotResource(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/shots/")

	if rest, ok := strings.CutPrefix(path, "dogs/"); ok {
		dogID, valid := parseID(rest)
		if !valid {
			writeError(w, r, http.StatusNotFound, "Can't find dog.")
			return
		}
		switch r.Method {
		case http.MethodGet:
			a.listShotsByDog(w, r, dogID)
		case http.MethodPatch:
			a.recordShot(w, r, dogID)
		default:
			methodNotAllowed(w, r, http.MethodGet, http.MethodPatch)
		}
		return
	}

	shotID, ok := parseID(path)
	if !ok {
		writeError(w, r, http.StatusNotFound, "Can't find shot.")
		return
	}
	switch r.Method {
	case http.MethodPatch:
		a.updateShot(w, r, shotID)
	case http.MethodDelete:
		a.deleteShot(w, r, shotID)
	default:
		methodNotAllowed(w, r, http.MethodPatch, http.MethodDelete)
	}
}

func (a *API) listShotNames(w http.ResponseWriter, r *http.Request) {
	names, err := a.dogs.Store().ShotNames(r.Context())
	if err != nil {
		a.handleStoreError(w, r, err)
		return
	}
	if len(names) == 0 {
		writeError(w, r, http.StatusNotFound, "Can't find any shots.")
		return
	}
	writeJSON(w, http.StatusOK, names)
}

func (a *API) createShot(w http.ResponseWriter, r *http.Request) {
	var req createShotRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.ShotName) == "" {
		writeError(w, r, http.StatusBadRequest, "Missing 'shot_name' in request body")
		return
	}
	if req.ShotCompleted == nil {
		writeError(w, r, http.StatusBadRequest, "Missing 'shot_iscompleted' in request body")
		return
	}
	if req.DogID == 0 {
		writeError(w, r, http.StatusBadRequest, "Missing 'dog_id' in request body")
		return
	}

	shot := &dogs.Shot{
		ShotName:      req.ShotName,
		ShotCompleted: *req.ShotCompleted,
		ShotDate:      req.ShotDate,
		DogID:         req.DogID,
	}
	if err := a.dogs.Store().CreateShot(r.Context(), shot); err != nil {
		a.handleStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, shot)
}

func (a *API) listShotsByDog(w http.ResponseWriter, r *http.Request, dogID int64) {
	shots, err := a.dogs.Store().ShotsByDog(r.Context(), dogID)
	if err != nil {
		a.handleStoreError(w, r, err)
		return
	}
	if shots == nil {
		shots = []dogs.Shot{}
	}
	writeJSON(w, http.StatusOK, shots)
}

// recordShot marks the named shot complete for the dog, inserting it when
// the dog has other shots but not this one.
func (a *API) recordShot(w http.ResponseWriter, r *http.Request, dogID int64) {
	var req recordShotRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.ShotName) == "" {
		writeError(w, r, http.StatusBadRequest, "Missing 'shot_name' in request body")
		return
	}
	date := time.Now().UTC()
	if req.ShotDate != nil {
		date = *req.ShotDate
	}

	if err := a.dogs.RecordShot(r.Context(), dogID, req.ShotName, date); err != nil {
		if dogs.IsMissing(err) {
			writeError(w, r, http.StatusNotFound, "Can't find shots for this dog.")
			return
		}
		a.handleStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Updated shot."})
}

func (a *API) updateShot(w http.ResponseWriter, r *http.Request, shotID int64) {
	var req createShotRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.ShotName) == "" {
		writeError(w, r, http.StatusBadRequest, "Missing 'shot_name' in request body")
		return
	}
	if req.ShotCompleted == nil {
		writeError(w, r, http.StatusBadRequest, "Missing 'shot_iscompleted' in request body")
		return
	}

	shot := &dogs.Shot{
		ID:            shotID,
		ShotName:      req.ShotName,
		ShotCompleted: *req.ShotCompleted,
		ShotDate:      req.ShotDate,
		DogID:         req.DogID,
	}
	if err := a.dogs.Store().UpdateShot(r.Context(), shot); err != nil {
		if dogs.IsMissing(err) {
			writeError(w, r, http.StatusNotFound, "Can't find shot.")
			return
		}
		a.handleStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Updated shot."})
}

func (a *API) deleteShot(w http.ResponseWriter, r *http.Request, shotID int64) {
	if err := a.dogs.RemoveShot(r.Context(), shotID); err != nil {
		if dogs.IsMissing(err) {
			writeError(w, r, http.StatusNotFound, "Can't find shot.")
			return
		}
		a.handleStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) deleteShotsByDog(w http.ResponseWriter, r *http.Request) {
	var req byDogRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.DogID == 0 {
		writeError(w, r, http.StatusBadRequest, "Missing 'dog_id' in request body")
		return
	}
	deleted, err := a.dogs.Store().DeleteShotsByDog(r.Context(), req.DogID)
	if err != nil {
		a.handleStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": deleted})
}
