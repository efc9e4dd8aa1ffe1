package httpapi

import (
	"errors"
	"net/http"

	"pawpad.org/internal/audit"
	"pawpad.org/internal/auth"
)

type registerShelterRequest struct {
	ShelterName     string `json:"shelter_name"`
	ShelterUsername string `json:"shelter_username"`
	ShelterCountry  string `json:"shelter_country"`
	ShelterAddress  string `json:"shelter_address"`
	ShelterPhone    string `json:"shelter_phone"`
	ShelterEmail    string `json:"shelter_email"`
}

func (a *API) handleShelter(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req registerShelterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if missing := firstMissing(map[string]string{
		"shelter_name":     req.ShelterName,
		"shelter_username": req.ShelterUsername,
	}, "shelter_name", "shelter_username"); missing != "" {
		writeError(w, r, http.StatusBadRequest, "Missing '"+missing+"' in request body")
		return
	}

	shelter := &auth.Shelter{
		ShelterName:     req.ShelterName,
		ShelterUsername: req.ShelterUsername,
		ShelterCountry:  req.ShelterCountry,
		ShelterAddress:  req.ShelterAddress,
		ShelterPhone:    req.ShelterPhone,
		ShelterEmail:    req.ShelterEmail,
	}
	if err := a.auth.RegisterShelter(r.Context(), shelter); err != nil {
		if errors.Is(err, auth.ErrShelterTaken) {
			writeError(w, r, http.StatusBadRequest, "Shelter username is already taken.")
			return
		}
		a.handleStoreError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "auth.shelter.register", map[string]any{
		"shelter_username": shelter.ShelterUsername,
	})

	writeJSON(w, http.StatusCreated, shelter)
}
