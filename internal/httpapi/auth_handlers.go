package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"pawpad.org/internal/audit"
	"pawpad.org/internal/auth"
)

type loginRequest struct {
	UserName        string `json:"user_name"`
	Password        string `json:"password"`
	ShelterUsername string `json:"shelter_username"`
}

type loginResponse struct {
	AuthToken string `json:"authToken"`
	ShelterID string `json:"shelterId"`
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if missing := firstMissing(map[string]string{
		"user_name":        req.UserName,
		"password":         req.Password,
		"shelter_username": req.ShelterUsername,
	}, "user_name", "password", "shelter_username"); missing != "" {
		writeError(w, r, http.StatusBadRequest, "Missing '"+missing+"' in request body")
		return
	}

	res, err := a.auth.Login(r.Context(), req.UserName, req.Password, req.ShelterUsername)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrBadCredentials):
			writeError(w, r, http.StatusBadRequest, "Incorrect username or password")
		case errors.Is(err, auth.ErrShelterMismatch):
			writeError(w, r, http.StatusBadRequest, "Shelter missing or does not match.")
		default:
			a.handleStoreError(w, r, err)
		}
		return
	}

	// The shelter id travels encrypted; only envelope-capable clients can
	// recover it.
	sealed, err := a.cipher.Seal(res.Shelter.ID)
	if err != nil {
		a.handleStoreError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "auth.login", map[string]any{
		"user_name":  res.User.UserName,
		"shelter_id": res.Shelter.ID,
	})

	writeJSON(w, http.StatusOK, loginResponse{
		AuthToken: res.Token,
		ShelterID: sealed,
	})
}

// firstMissing returns the first listed field whose value is blank.
func firstMissing(fields map[string]string, order ...string) string {
	for _, name := range order {
		if strings.TrimSpace(fields[name]) == "" {
			return name
		}
	}
	return ""
}
