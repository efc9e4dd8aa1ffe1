package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pawpad.org/internal/auth"
	"pawpad.org/internal/dogs"
	"pawpad.org/internal/envelope"
	"pawpad.org/internal/placement"
	"pawpad.org/internal/store/memory"
)

type apiClient struct {
	baseURL string
	client  *http.Client
	t       *testing.T
	tokens  *auth.TokenService
	cipher  *envelope.Cipher
}

func newTestAPI(t *testing.T) *apiClient {
	t.Helper()

	st := memory.New()
	tokens := auth.NewTokenService("test-secret", time.Hour)
	authSvc := auth.NewService(st, tokens)
	kennel := dogs.NewService(st)
	placements := placement.NewService(st, st)
	cipher, err := envelope.New("test-envelope-key")
	if err != nil {
		t.Fatalf("new cipher: %v", err)
	}

	api := New(authSvc, kennel, placements, cipher, nil, ReadyProbe{}, Options{
		Version:    "test",
		RateBurst:  1000,
		RatePerSec: 1000,
	})

	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	return &apiClient{
		baseURL: srv.URL,
		client:  srv.Client(),
		t:       t,
		tokens:  tokens,
		cipher:  cipher,
	}
}

func (c *apiClient) do(method, path string, body any, headers map[string]string) *http.Response {
	c.t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			c.t.Fatalf("marshal body: %v", err)
		}
	}
	req, err := http.NewRequest(method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		c.t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		c.t.Fatalf("do request: %v", err)
	}
	return resp
}

func (c *apiClient) post(path string, body any, headers map[string]string) *http.Response {
	return c.do(http.MethodPost, path, body, headers)
}

func (c *apiClient) get(path string, headers map[string]string) *http.Response {
	return c.do(http.MethodGet, path, nil, headers)
}

// registerAndLogin provisions a shelter and staff account and returns the
// auth header for protected calls.
func (c *apiClient) registerAndLogin() map[string]string {
	c.t.Helper()

	resp := c.post("/api/v1/shelter", map[string]any{
		"shelter_name":     "Demo Shelter",
		"shelter_username": "demo",
	}, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		c.t.Fatalf("register shelter: unexpected status %d", resp.StatusCode)
	}

	resp = c.post("/api/v1/users", map[string]any{
		"user_name":  "pawpad",
		"password":   "pawpad123",
		"first_name": "Paw",
		"last_name":  "Pad",
		"shelter_id": 1,
	}, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		c.t.Fatalf("register user: unexpected status %d", resp.StatusCode)
	}

	resp = c.post("/api/v1/auth/login", map[string]any{
		"user_name":        "pawpad",
		"password":         "pawpad123",
		"shelter_username": "demo",
	}, nil)
	if resp.StatusCode != http.StatusOK {
		c.t.Fatalf("login: unexpected status %d", resp.StatusCode)
	}
	body := decode[loginResponse](c.t, resp)
	if body.AuthToken == "" {
		c.t.Fatal("login: empty token")
	}
	return map[string]string{"Authorization": "Bearer " + body.AuthToken}
}

func decode[T any](t *testing.T, r *http.Response) T {
	t.Helper()
	defer r.Body.Close()
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestRegisterLoginFlow(t *testing.T) {
	api := newTestAPI(t)

	resp := api.post("/api/v1/shelter", map[string]any{
		"shelter_name":     "Demo Shelter",
		"shelter_username": "demo",
	}, nil)
	shelter := decode[map[string]any](t, resp)
	if shelter["shelter_status"] != "current" {
		t.Fatalf("new shelter status = %v, want current", shelter["shelter_status"])
	}

	resp = api.post("/api/v1/users", map[string]any{
		"user_name":  "pawpad",
		"password":   "pawpad123",
		"first_name": "Paw",
		"last_name":  "Pad",
		"shelter_id": 1,
	}, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register user: status %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = api.post("/api/v1/auth/login", map[string]any{
		"user_name":        "pawpad",
		"password":         "pawpad123",
		"shelter_username": "demo",
	}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: status %d", resp.StatusCode)
	}
	body := decode[loginResponse](t, resp)

	claims, err := api.tokens.Verify(body.AuthToken)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if claims.Subject != "pawpad" {
		t.Fatalf("token subject = %q, want pawpad", claims.Subject)
	}
	if claims.UserID != 1 {
		t.Fatalf("token user id = %d, want 1", claims.UserID)
	}

	var shelterID int64
	if err := api.cipher.Open(body.ShelterID, &shelterID); err != nil {
		t.Fatalf("open sealed shelter id: %v", err)
	}
	if shelterID != 1 {
		t.Fatalf("sealed shelter id = %d, want 1", shelterID)
	}
}

func TestLoginFailures(t *testing.T) {
	api := newTestAPI(t)
	api.registerAndLogin()

	cases := []struct {
		name    string
		body    map[string]any
		status  int
		message string
	}{
		{
			name: "unknown user",
			body: map[string]any{
				"user_name": "ghost", "password": "pawpad123", "shelter_username": "demo",
			},
			status:  http.StatusBadRequest,
			message: "Incorrect username or password",
		},
		{
			name: "wrong password",
			body: map[string]any{
				"user_name": "pawpad", "password": "wrong-pass-1", "shelter_username": "demo",
			},
			status:  http.StatusBadRequest,
			message: "Incorrect username or password",
		},
		{
			name: "unknown shelter",
			body: map[string]any{
				"user_name": "pawpad", "password": "pawpad123", "shelter_username": "other",
			},
			status:  http.StatusBadRequest,
			message: "Shelter missing or does not match.",
		},
		{
			name: "missing password",
			body: map[string]any{
				"user_name": "pawpad", "shelter_username": "demo",
			},
			status:  http.StatusBadRequest,
			message: "Missing 'password' in request body",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := api.post("/api/v1/auth/login", tc.body, nil)
			if resp.StatusCode != tc.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tc.status)
			}
			body := decode[map[string]any](t, resp)
			if body["error"] != tc.message {
				t.Fatalf("error = %v, want %q", body["error"], tc.message)
			}
		})
	}
}

func TestUserRegistrationValidation(t *testing.T) {
	api := newTestAPI(t)

	resp := api.post("/api/v1/shelter", map[string]any{
		"shelter_name":     "Demo Shelter",
		"shelter_username": "demo",
	}, nil)
	resp.Body.Close()

	cases := []struct {
		name    string
		body    map[string]any
		message string
	}{
		{
			name: "short password",
			body: map[string]any{
				"user_name": "abc", "password": "short1", "first_name": "A", "last_name": "B", "shelter_id": 1,
			},
			message: "Password should be longer.",
		},
		{
			name: "password without digit",
			body: map[string]any{
				"user_name": "abc", "password": "longenough", "first_name": "A", "last_name": "B", "shelter_id": 1,
			},
			message: "Password has to include at least a number.",
		},
		{
			name: "username with space",
			body: map[string]any{
				"user_name": "a bc", "password": "longenough1", "first_name": "A", "last_name": "B", "shelter_id": 1,
			},
			message: "Username cannot have spaces.",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := api.post("/api/v1/users", tc.body, nil)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
			body := decode[map[string]any](t, resp)
			if body["error"] != tc.message {
				t.Fatalf("error = %v, want %q", body["error"], tc.message)
			}
		})
	}

	ok := map[string]any{
		"user_name": "abc", "password": "longenough1", "first_name": "A", "last_name": "B", "shelter_id": 1,
	}
	resp = api.post("/api/v1/users", ok, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("valid registration: status %d", resp.StatusCode)
	}
	resp = api.post("/api/v1/users", ok, nil)
	body := decode[map[string]any](t, resp)
	if body["error"] != "Username is already taken." {
		t.Fatalf("duplicate registration error = %v", body["error"])
	}
}

func TestDogsCRUDFlow(t *testing.T) {
	api := newTestAPI(t)
	authHeader := api.registerAndLogin()

	resp := api.post("/api/v1/dogs", map[string]any{
		"dog_name":       "Rex",
		"gender":         "male",
		"spayedneutered": true,
		"age":            "3",
	}, authHeader)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create dog: status %d", resp.StatusCode)
	}
	dog := decode[map[string]any](t, resp)
	if dog["dog_status"] != dogs.StatusCurrent {
		t.Fatalf("new dog status = %v, want %s", dog["dog_status"], dogs.StatusCurrent)
	}

	resp = api.get("/api/v1/dogs", authHeader)
	list := decode[[]map[string]any](t, resp)
	if len(list) != 1 || list[0]["dog_name"] != "Rex" {
		t.Fatalf("unexpected listing: %v", list)
	}

	resp = api.get("/api/v1/dogs/1", authHeader)
	normalized := decode[map[string]any](t, resp)
	if normalized["shotsCompleted"] == nil {
		t.Fatal("normalized dog missing shotsCompleted")
	}

	resp = api.do(http.MethodPatch, "/api/v1/dogs/1", map[string]any{
		"dog_name":       "Rexy",
		"gender":         "male",
		"spayedneutered": true,
	}, authHeader)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update dog: status %d", resp.StatusCode)
	}

	resp = api.get("/api/v1/dogs/1", authHeader)
	updated := decode[map[string]any](t, resp)
	if updated["dog_name"] != "Rexy" {
		t.Fatalf("dog name after update = %v", updated["dog_name"])
	}
	if updated["updated_by"] != "Paw" {
		t.Fatalf("updated_by = %v, want Paw", updated["updated_by"])
	}

	resp = api.do(http.MethodPatch, "/api/v1/dogs/1/archive", nil, authHeader)
	msg := decode[map[string]any](t, resp)
	if msg["message"] != "Updated dog status." {
		t.Fatalf("archive message = %v", msg["message"])
	}

	resp = api.get("/api/v1/dogs/99", authHeader)
	errBody := decode[map[string]any](t, resp)
	if resp.StatusCode != http.StatusNotFound || errBody["error"] != "Can't find dog." {
		t.Fatalf("missing dog: status %d error %v", resp.StatusCode, errBody["error"])
	}

	resp = api.do(http.MethodDelete, "/api/v1/dogs/1", nil, authHeader)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete dog: status %d", resp.StatusCode)
	}
}

func TestShotsAndNotes(t *testing.T) {
	api := newTestAPI(t)
	authHeader := api.registerAndLogin()

	resp := api.post("/api/v1/dogs", map[string]any{
		"dog_name": "Luna", "gender": "female", "spayedneutered": false,
	}, authHeader)
	resp.Body.Close()

	resp = api.get("/api/v1/shots", authHeader)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("empty shots listing: status %d", resp.StatusCode)
	}

	resp = api.post("/api/v1/shots", map[string]any{
		"shot_name": "rabies", "shot_iscompleted": false, "dog_id": 1,
	}, authHeader)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create shot: status %d", resp.StatusCode)
	}

	resp = api.do(http.MethodPatch, "/api/v1/shots/dogs/1", map[string]any{
		"shot_name": "rabies",
	}, authHeader)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("record shot: status %d", resp.StatusCode)
	}

	resp = api.get("/api/v1/shots/dogs/1", authHeader)
	shots := decode[[]map[string]any](t, resp)
	if len(shots) != 1 || shots[0]["shot_iscompleted"] != true {
		t.Fatalf("unexpected shots: %v", shots)
	}

	resp = api.get("/api/v1/shots", authHeader)
	names := decode[[]string](t, resp)
	if len(names) != 1 || names[0] != "rabies" {
		t.Fatalf("unexpected shot names: %v", names)
	}

	resp = api.post("/api/v1/notes", map[string]any{
		"type_of_note": "medical", "notes": "Limping on front left paw.", "dog_id": 1,
	}, authHeader)
	note := decode[map[string]any](t, resp)
	if note["note_updated_by"] != "Paw" {
		t.Fatalf("note author = %v, want Paw", note["note_updated_by"])
	}

	resp = api.get("/api/v1/notes/1", authHeader)
	notes := decode[[]map[string]any](t, resp)
	if len(notes) != 1 {
		t.Fatalf("unexpected notes: %v", notes)
	}

	resp = api.do(http.MethodDelete, "/api/v1/notes/1", nil, authHeader)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete note: status %d", resp.StatusCode)
	}

	resp = api.do(http.MethodDelete, "/api/v1/notes/1", nil, authHeader)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("delete missing note: status %d", resp.StatusCode)
	}
}

func TestAdoptionFlow(t *testing.T) {
	api := newTestAPI(t)
	authHeader := api.registerAndLogin()

	resp := api.post("/api/v1/dogs", map[string]any{
		"dog_name": "Buddy", "gender": "male", "spayedneutered": true,
	}, authHeader)
	resp.Body.Close()

	sealed, err := api.cipher.Seal(map[string]any{
		"dog_id":        1,
		"adopter_name":  "Jordan Smith",
		"adopter_email": "jordan@example.com",
	})
	if err != nil {
		t.Fatalf("seal payload: %v", err)
	}
	resp = api.post("/api/v1/adoption", map[string]any{"data": sealed}, authHeader)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("submit adoption: status %d", resp.StatusCode)
	}

	resp = api.get("/api/v1/dogs/1", authHeader)
	dog := decode[map[string]any](t, resp)
	if dog["dog_status"] != dogs.StatusAdopted {
		t.Fatalf("dog status = %v, want %s", dog["dog_status"], dogs.StatusAdopted)
	}

	resp = api.get("/api/v1/adoption/1", authHeader)
	wire := decode[map[string]string](t, resp)
	var adoption placement.Adoption
	if err := api.cipher.Open(wire["data"], &adoption); err != nil {
		t.Fatalf("open adoption envelope: %v", err)
	}
	if adoption.AdopterName != "Jordan Smith" || adoption.DogStatus != dogs.StatusAdopted {
		t.Fatalf("unexpected adoption record: %+v", adoption)
	}

	resp = api.do(http.MethodDelete, "/api/v1/adoption/1", nil, authHeader)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("remove adoption: status %d", resp.StatusCode)
	}

	resp = api.get("/api/v1/adoption/1", authHeader)
	errBody := decode[map[string]any](t, resp)
	if resp.StatusCode != http.StatusBadRequest || errBody["error"] != "Can't find adoption information." {
		t.Fatalf("missing adoption: status %d error %v", resp.StatusCode, errBody["error"])
	}

	resp = api.get("/api/v1/dogs/1", authHeader)
	dog = decode[map[string]any](t, resp)
	if dog["dog_status"] != dogs.StatusCurrent {
		t.Fatalf("dog status after removal = %v, want %s", dog["dog_status"], dogs.StatusCurrent)
	}
}

func TestFosterFlow(t *testing.T) {
	api := newTestAPI(t)
	authHeader := api.registerAndLogin()

	resp := api.post("/api/v1/dogs", map[string]any{
		"dog_name": "Milo", "gender": "male", "spayedneutered": true,
	}, authHeader)
	resp.Body.Close()

	sealed, err := api.cipher.Seal(map[string]any{
		"dog_id":      1,
		"foster_name": "Sam Lee",
	})
	if err != nil {
		t.Fatalf("seal payload: %v", err)
	}
	resp = api.post("/api/v1/foster", map[string]any{"data": sealed}, authHeader)
	body := decode[map[string]any](t, resp)
	if resp.StatusCode != http.StatusCreated || body["message"] != "Foster completed." {
		t.Fatalf("submit foster: status %d body %v", resp.StatusCode, body)
	}

	resp = api.get("/api/v1/dogs/1", authHeader)
	dog := decode[map[string]any](t, resp)
	if dog["dog_status"] != dogs.StatusFostered {
		t.Fatalf("dog status = %v, want %s", dog["dog_status"], dogs.StatusFostered)
	}

	// Payload sealed under a different key must be rejected as a bad request.
	foreign, err := envelope.New("some-other-key")
	if err != nil {
		t.Fatalf("new foreign cipher: %v", err)
	}
	sealed, err = foreign.Seal(map[string]any{"dog_id": 1, "foster_name": "X"})
	if err != nil {
		t.Fatalf("seal foreign payload: %v", err)
	}
	resp = api.post("/api/v1/foster", map[string]any{"data": sealed}, authHeader)
	errBody := decode[map[string]any](t, resp)
	if resp.StatusCode != http.StatusBadRequest || errBody["error"] != "Could not decrypt payload." {
		t.Fatalf("foreign envelope: status %d error %v", resp.StatusCode, errBody["error"])
	}

	sealedMissing, err := api.cipher.Seal(map[string]any{"dog_id": 42, "foster_name": "Sam Lee"})
	if err != nil {
		t.Fatalf("seal payload: %v", err)
	}
	resp = api.post("/api/v1/foster", map[string]any{"data": sealedMissing}, authHeader)
	errBody = decode[map[string]any](t, resp)
	if resp.StatusCode != http.StatusNotFound || errBody["error"] != "Can't find dog." {
		t.Fatalf("foster for missing dog: status %d error %v", resp.StatusCode, errBody["error"])
	}
}
