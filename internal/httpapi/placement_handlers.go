package httpapi

import (
	"bytes"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"pawpad.org/internal/audit"
	"pawpad.org/internal/envelope"
	"pawpad.org/internal/ids"
	"pawpad.org/internal/placement"
)

type adoptionPayload struct {
	DogID          int64      `json:"dog_id"`
	AdopterName    string     `json:"adopter_name"`
	AdoptionDate   *time.Time `json:"adoption_date,omitempty"`
	AdopterEmail   string     `json:"adopter_email,omitempty"`
	AdopterPhone   string     `json:"adopter_phone,omitempty"`
	AdopterCountry string     `json:"adopter_country,omitempty"`
	ContractImg    string     `json:"contract_img,omitempty"`
	ContractImgURL string     `json:"contract_img_url,omitempty"`
}

type fosterPayload struct {
	DogID         int64      `json:"dog_id"`
	FosterName    string     `json:"foster_name"`
	FosterDate    *time.Time `json:"foster_date,omitempty"`
	FosterEmail   string     `json:"foster_email,omitempty"`
	FosterPhone   string     `json:"foster_phone,omitempty"`
	FosterCountry string     `json:"foster_country,omitempty"`
	ContractImg   string     `json:"contract_img,omitempty"`
	ContractURL   string     `json:"contract_url,omitempty"`
}

func (a *API) handleAdoptionCollection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	a.submitAdoption(w, r)
}

func (a *API) handleAdoptionResource(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/adoption/")
	dogID, ok := parseID(path)
	if !ok {
		writeError(w, r, http.StatusNotFound, "Can't find dog.")
		return
	}
	switch r.Method {
	case http.MethodGet:
		a.getAdoption(w, r, dogID)
	case http.MethodDelete:
		a.deleteAdoption(w, r, dogID)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodDelete)
	}
}

func (a *API) submitAdoption(w http.ResponseWriter, r *http.Request) {
	var req envelope.Wire
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var payload adoptionPayload
	if err := a.cipher.Open(req.Data, &payload); err != nil {
		writeError(w, r, http.StatusBadRequest, "Could not decrypt payload.")
		return
	}
	if strings.TrimSpace(payload.AdopterName) == "" {
		writeError(w, r, http.StatusBadRequest, "Missing 'adopter_name' in request body")
		return
	}
	if payload.DogID == 0 {
		writeError(w, r, http.StatusBadRequest, "Missing 'dog_id' in request body")
		return
	}

	contractURL := payload.ContractImgURL
	if payload.ContractImg != "" {
		url, err := a.uploadContract(r, payload.ContractImg)
		if err != nil {
			a.handleStoreError(w, r, err)
			return
		}
		contractURL = url
	}

	adoption := &placement.Adoption{
		DogID:          payload.DogID,
		AdopterName:    payload.AdopterName,
		AdoptionDate:   payload.AdoptionDate,
		AdopterEmail:   payload.AdopterEmail,
		AdopterPhone:   payload.AdopterPhone,
		AdopterCountry: payload.AdopterCountry,
		ContractImgURL: contractURL,
	}
	if err := a.placements.SubmitAdoption(r.Context(), adoption); err != nil {
		if errors.Is(err, placement.ErrDogNotFound) {
			writeError(w, r, http.StatusNotFound, "Can't find dog.")
			return
		}
		a.handleStoreError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "placement.adoption.submit", map[string]any{
		"dog_id": adoption.DogID,
	})
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Adoption completed."})
}

func (a *API) getAdoption(w http.ResponseWriter, r *http.Request, dogID int64) {
	adoption, err := a.placements.AdoptionByDog(r.Context(), dogID)
	if err != nil {
		if errors.Is(err, placement.ErrNotFound) {
			writeError(w, r, http.StatusBadRequest, "Can't find adoption information.")
			return
		}
		a.handleStoreError(w, r, err)
		return
	}
	a.writeSealed(w, r, adoption)
}

func (a *API) deleteAdoption(w http.ResponseWriter, r *http.Request, dogID int64) {
	if err := a.placements.RemoveAdoption(r.Context(), dogID); err != nil {
		if errors.Is(err, placement.ErrDogNotFound) {
			writeError(w, r, http.StatusNotFound, "Can't find dog.")
			return
		}
		a.handleStoreError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "placement.adoption.remove", map[string]any{"dog_id": dogID})
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleFosterCollection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	a.submitFoster(w, r)
}

func (a *API) handleFosterResource(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/foster/")
	dogID, ok := parseID(path)
	if !ok {
		writeError(w, r, http.StatusNotFound, "Can't find dog.")
		return
	}
	switch r.Method {
	case http.MethodGet:
		a.getFoster(w, r, dogID)
	case http.MethodDelete:
		a.deleteFoster(w, r, dogID)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodDelete)
	}
}

func (a *API) submitFoster(w http.ResponseWriter, r *http.Request) {
	var req envelope.Wire
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var payload fosterPayload
	if err := a.cipher.Open(req.Data, &payload); err != nil {
		writeError(w, r, http.StatusBadRequest, "Could not decrypt payload.")
		return
	}
	if strings.TrimSpace(payload.FosterName) == "" {
		writeError(w, r, http.StatusBadRequest, "Missing 'foster_name' in request body")
		return
	}
	if payload.DogID == 0 {
		writeError(w, r, http.StatusBadRequest, "Missing 'dog_id' in request body")
		return
	}

	contractURL := payload.ContractURL
	if payload.ContractImg != "" {
		url, err := a.uploadContract(r, payload.ContractImg)
		if err != nil {
			a.handleStoreError(w, r, err)
			return
		}
		contractURL = url
	}

	foster := &placement.Foster{
		DogID:         payload.DogID,
		FosterName:    payload.FosterName,
		FosterDate:    payload.FosterDate,
		FosterEmail:   payload.FosterEmail,
		FosterPhone:   payload.FosterPhone,
		FosterCountry: payload.FosterCountry,
		ContractURL:   contractURL,
	}
	if err := a.placements.SubmitFoster(r.Context(), foster); err != nil {
		if errors.Is(err, placement.ErrDogNotFound) {
			writeError(w, r, http.StatusNotFound, "Can't find dog.")
			return
		}
		a.handleStoreError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "placement.foster.submit", map[string]any{
		"dog_id": foster.DogID,
	})
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Foster completed."})
}

func (a *API) getFoster(w http.ResponseWriter, r *http.Request, dogID int64) {
	foster, err := a.placements.FosterByDog(r.Context(), dogID)
	if err != nil {
		if errors.Is(err, placement.ErrNotFound) {
			writeError(w, r, http.StatusBadRequest, "Can't find foster information.")
			return
		}
		a.handleStoreError(w, r, err)
		return
	}
	a.writeSealed(w, r, foster)
}

func (a *API) deleteFoster(w http.ResponseWriter, r *http.Request, dogID int64) {
	if err := a.placements.RemoveFoster(r.Context(), dogID); err != nil {
		if errors.Is(err, placement.ErrDogNotFound) {
			writeError(w, r, http.StatusNotFound, "Can't find dog.")
			return
		}
		a.handleStoreError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "placement.foster.remove", map[string]any{"dog_id": dogID})
	w.WriteHeader(http.StatusNoContent)
}

// writeSealed responds with the enveloped form of v.
func (a *API) writeSealed(w http.ResponseWriter, r *http.Request, v any) {
	sealed, err := a.cipher.Seal(v)
	if err != nil {
		a.handleStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope.Wire{Data: sealed})
}

// uploadContract stores a base64-encoded contract image and returns its URL.
func (a *API) uploadContract(r *http.Request, encoded string) (string, error) {
	if a.media == nil {
		return "", errors.New("media store is not configured")
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	key := ids.NewLower()
	return a.media.Upload(r.Context(), key, bytes.NewReader(raw), int64(len(raw)), "application/octet-stream")
}
