package httpapi

import (
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"pawpad.org/internal/audit"
	"pawpad.org/internal/auth"
	"pawpad.org/internal/dogs"
	"pawpad.org/internal/ids"
)

type dogRequest struct {
	DogName        string     `json:"dog_name"`
	Age            string     `json:"age"`
	ArrivalDate    *time.Time `json:"arrival_date"`
	Gender         string     `json:"gender"`
	SpayedNeutered *bool      `json:"spayedneutered"`
	TagNumber      string     `json:"tag_number"`
	Microchip      string     `json:"microchip"`
}

func (a *API) handleDogsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listDogs(w, r)
	case http.MethodPost:
		a.createDog(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleDogResource(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/dogs/")

	if rest, ok := strings.CutSuffix(path, "/archive"); ok {
		a.updateDogStatus(w, r, rest, dogs.StatusArchived)
		return
	}
	if rest, ok := strings.CutSuffix(path, "/adopt"); ok {
		a.updateDogStatus(w, r, rest, dogs.StatusAdopted)
		return
	}

	id, ok := parseID(path)
	if !ok {
		writeError(w, r, http.StatusNotFound, "Can't find dog.")
		return
	}
	switch r.Method {
	case http.MethodGet:
		a.getDog(w, r, id)
	case http.MethodPatch:
		a.updateDog(w, r, id)
	case http.MethodDelete:
		a.deleteDog(w, r, id)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPatch, http.MethodDelete)
	}
}

func (a *API) listDogs(w http.ResponseWriter, r *http.Request) {
	list, err := a.dogs.Store().ListDogs(r.Context())
	if err != nil {
		a.handleStoreError(w, r, err)
		return
	}
	if list == nil {
		list = []dogs.DogListing{}
	}
	writeJSON(w, http.StatusOK, list)
}

// createDog accepts multipart form data when a profile image rides along, or
// a plain JSON body otherwise.
func (a *API) createDog(w http.ResponseWriter, r *http.Request) {
	var (
		req  dogRequest
		file multipart.File
		hdr  *multipart.FileHeader
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
			writeError(w, r, http.StatusBadRequest, "malformed multipart body")
			return
		}
		req = dogRequestFromForm(r)
		if f, h, err := r.FormFile("profile_img"); err == nil {
			file, hdr = f, h
			defer file.Close()
		}
	} else {
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
	}

	if msg := validateDogRequest(req); msg != "" {
		writeError(w, r, http.StatusBadRequest, msg)
		return
	}

	dog := &dogs.Dog{
		DogName:        req.DogName,
		Age:            req.Age,
		ArrivalDate:    req.ArrivalDate,
		Gender:         req.Gender,
		SpayedNeutered: *req.SpayedNeutered,
		TagNumber:      req.TagNumber,
		Microchip:      req.Microchip,
		DogStatus:      dogs.StatusCurrent,
	}

	if file != nil {
		if a.media == nil {
			writeError(w, r, http.StatusBadRequest, "image uploads are not configured")
			return
		}
		key := ids.NewLower() + strings.ToLower(filepath.Ext(hdr.Filename))
		url, err := a.media.Upload(r.Context(), key, file, hdr.Size, hdr.Header.Get("Content-Type"))
		if err != nil {
			a.handleStoreError(w, r, err)
			return
		}
		dog.ProfileImg = url
	}

	if err := a.dogs.Store().CreateDog(r.Context(), dog); err != nil {
		a.handleStoreError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "dogs.create", map[string]any{
		"dog_id":   dog.ID,
		"dog_name": dog.DogName,
	})

	w.Header().Set("Location", "/api/v1/dogs/"+strconv.FormatInt(dog.ID, 10))
	writeJSON(w, http.StatusCreated, dog)
}

func (a *API) getDog(w http.ResponseWriter, r *http.Request, id int64) {
	dog, err := a.dogs.Store().NormalizedDog(r.Context(), id)
	if err != nil {
		if dogs.IsMissing(err) {
			writeError(w, r, http.StatusNotFound, "Can't find dog.")
			return
		}
		a.handleStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dog)
}

func (a *API) updateDog(w http.ResponseWriter, r *http.Request, id int64) {
	var req dogRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if msg := validateDogRequest(req); msg != "" {
		writeError(w, r, http.StatusBadRequest, msg)
		return
	}

	var updatedBy string
	if user, ok := auth.UserFromContext(r.Context()); ok {
		updatedBy = user.FirstName
	}

	dog := &dogs.Dog{
		ID:             id,
		DogName:        req.DogName,
		Age:            req.Age,
		ArrivalDate:    req.ArrivalDate,
		Gender:         req.Gender,
		SpayedNeutered: *req.SpayedNeutered,
		TagNumber:      req.TagNumber,
		Microchip:      req.Microchip,
	}
	if err := a.dogs.Update(r.Context(), dog, updatedBy); err != nil {
		if dogs.IsMissing(err) {
			writeError(w, r, http.StatusNotFound, "Can't find dog.")
			return
		}
		a.handleStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Updated dog."})
}

func (a *API) deleteDog(w http.ResponseWriter, r *http.Request, id int64) {
	dog, err := a.dogs.Delete(r.Context(), id)
	if err != nil {
		if dogs.IsMissing(err) {
			writeError(w, r, http.StatusNotFound, "Can't find dog.")
			return
		}
		a.handleStoreError(w, r, err)
		return
	}

	// Best effort: losing the stored image is not worth failing the delete.
	if a.media != nil && dog.ProfileImg != "" {
		if key := mediaKeyFromURL(dog.ProfileImg); key != "" {
			_ = a.media.Remove(r.Context(), key)
		}
	}

	_ = audit.LogEvent(r.Context(), "dogs.delete", map[string]any{"dog_id": id})
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) updateDogStatus(w http.ResponseWriter, r *http.Request, rawID, status string) {
	if r.Method != http.MethodPatch {
		methodNotAllowed(w, r, http.MethodPatch)
		return
	}
	id, ok := parseID(rawID)
	if !ok {
		writeError(w, r, http.StatusNotFound, "Can't find dog.")
		return
	}

	now := time.Now().UTC()
	var err error
	switch status {
	case dogs.StatusArchived:
		err = a.dogs.Archive(r.Context(), id, now)
	case dogs.StatusAdopted:
		err = a.dogs.Adopt(r.Context(), id, now)
	}
	if err != nil {
		if dogs.IsMissing(err) {
			writeError(w, r, http.StatusNotFound, "Can't find dog.")
			return
		}
		a.handleStoreError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "dogs.status", map[string]any{
		"dog_id": id,
		"status": status,
	})
	writeJSON(w, http.StatusOK, map[string]any{"message": "Updated dog status."})
}

func validateDogRequest(req dogRequest) string {
	if strings.TrimSpace(req.DogName) == "" {
		return "Missing 'dog_name' in request body"
	}
	if req.SpayedNeutered == nil {
		return "Missing 'spayedneutered' in request body"
	}
	if strings.TrimSpace(req.Gender) == "" {
		return "Missing 'gender' in request body"
	}
	return ""
}

func dogRequestFromForm(r *http.Request) dogRequest {
	req := dogRequest{
		DogName:   r.FormValue("dog_name"),
		Age:       r.FormValue("age"),
		Gender:    r.FormValue("gender"),
		TagNumber: r.FormValue("tag_number"),
		Microchip: r.FormValue("microchip"),
	}
	if v := r.FormValue("spayedneutered"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			req.SpayedNeutered = &b
		}
	}
	if v := r.FormValue("arrival_date"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			req.ArrivalDate = &t
		}
	}
	return req
}

func parseID(raw string) (int64, bool) {
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "/")
	if raw == "" || strings.Contains(raw, "/") {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// mediaKeyFromURL recovers the object key from a URL produced by the media
// store. Keys never contain slashes.
func mediaKeyFromURL(url string) string {
	i := strings.LastIndexByte(url, '/')
	if i < 0 || i == len(url)-1 {
		return ""
	}
	return url[i+1:]
}
