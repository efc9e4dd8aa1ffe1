package httpapi

import (
	"errors"
	"net/http"

	"pawpad.org/internal/audit"
	"pawpad.org/internal/auth"
)

type registerUserRequest struct {
	UserName  string `json:"user_name"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	ShelterID int64  `json:"shelter_id"`
}

func (a *API) handleUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req registerUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if missing := firstMissing(map[string]string{
		"user_name":  req.UserName,
		"password":   req.Password,
		"first_name": req.FirstName,
		"last_name":  req.LastName,
	}, "user_name", "password", "first_name", "last_name"); missing != "" {
		writeError(w, r, http.StatusBadRequest, "Missing '"+missing+"' in request body")
		return
	}
	if req.ShelterID == 0 {
		writeError(w, r, http.StatusBadRequest, "Missing 'shelter_id' in request body")
		return
	}
	if msg := auth.ValidateNewUser(req.UserName, req.Password, req.FirstName, req.LastName); msg != "" {
		writeError(w, r, http.StatusBadRequest, msg)
		return
	}

	user := &auth.User{
		UserName:  req.UserName,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		ShelterID: req.ShelterID,
	}
	token, err := a.auth.RegisterUser(r.Context(), user, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUsernameTaken) {
			writeError(w, r, http.StatusBadRequest, "Username is already taken.")
			return
		}
		a.handleStoreError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "auth.user.register", map[string]any{
		"user_name":  user.UserName,
		"shelter_id": user.ShelterID,
	})

	writeJSON(w, http.StatusCreated, map[string]any{
		"user":      user,
		"authToken": token,
	})
}
