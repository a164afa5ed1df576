//go:build integration

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin inserts an admin user directly and returns its ID.
func (env *TestEnv) SeedAdmin(username, password, role string, active bool) uuid.UUID {
	env.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		env.t.Fatalf("SeedAdmin: hash: %v", err)
	}

	id := uuid.New()
	_, err = env.Pool.Exec(context.Background(), `
		INSERT INTO admin_users (id, username, password_hash, email, full_name, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, username, string(hash), username+"@test.local", "Test "+username, role, active)
	if err != nil {
		env.t.Fatalf("SeedAdmin: insert: %v", err)
	}
	return id
}

// LoginAdmin authenticates a seeded admin and returns the token.
func (env *TestEnv) LoginAdmin(username, password string) string {
	env.t.Helper()
	resp := env.POST("/api-admin/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		env.t.Fatalf("LoginAdmin: expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		env.t.Fatalf("LoginAdmin: decode: %v", err)
	}
	return result.Data.Token
}

// AdminToken seeds an admin with the given role and returns a fresh token.
func (env *TestEnv) AdminToken(role string) string {
	env.t.Helper()
	username := fmt.Sprintf("admin-%s-%d", role, time.Now().UnixNano())
	env.SeedAdmin(username, "integration-pass", role, true)
	return env.LoginAdmin(username, "integration-pass")
}

// SeedContacts inserts n contact rows with the given status.
func (env *TestEnv) SeedContacts(n int, status string) {
	env.t.Helper()
	for i := 0; i < n; i++ {
		_, err := env.Pool.Exec(context.Background(), `
			INSERT INTO contacts (name, email, message, status)
			VALUES ($1, $2, $3, $4)`,
			fmt.Sprintf("Contact %d", i), fmt.Sprintf("contact%d@test.local", i),
			"hello", status)
		if err != nil {
			env.t.Fatalf("SeedContacts: %v", err)
		}
	}
}

// SeedLead inserts one lead row and returns its ID.
func (env *TestEnv) SeedLead(status, priority string) int64 {
	env.t.Helper()
	var id int64
	err := env.Pool.QueryRow(context.Background(), `
		INSERT INTO leads (name, email, requirement, priority, status)
		VALUES ('Lead', 'lead@test.local', 'needs a site', $1, $2)
		RETURNING id`, priority, status).Scan(&id)
	if err != nil {
		env.t.Fatalf("SeedLead: %v", err)
	}
	return id
}

// GET performs an unauthenticated GET request.
func (env *TestEnv) GET(path string) *http.Response {
	env.t.Helper()
	resp, err := http.Get(env.Server.URL + path)
	if err != nil {
		env.t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

// POST performs a POST request with optional auth token.
func (env *TestEnv) POST(path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	return env.do("POST", path, body, token)
}

// AuthGET performs an authenticated GET request.
func (env *TestEnv) AuthGET(path, token string) *http.Response {
	env.t.Helper()
	return env.do("GET", path, nil, token)
}

// AuthPATCH performs an authenticated PATCH request.
func (env *TestEnv) AuthPATCH(path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	return env.do("PATCH", path, body, token)
}

// AuthPUT performs an authenticated PUT request.
func (env *TestEnv) AuthPUT(path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	return env.do("PUT", path, body, token)
}

// OPTIONS performs a CORS preflight request.
func (env *TestEnv) OPTIONS(path, origin, method string) *http.Response {
	env.t.Helper()
	req, err := http.NewRequest("OPTIONS", env.Server.URL+path, nil)
	if err != nil {
		env.t.Fatalf("OPTIONS %s: new request: %v", path, err)
	}
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", method)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("OPTIONS %s: %v", path, err)
	}
	return resp
}

func (env *TestEnv) do(method, path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			env.t.Fatalf("%s %s: encode: %v", method, path, err)
		}
	}
	req, err := http.NewRequest(method, env.Server.URL+path, &buf)
	if err != nil {
		env.t.Fatalf("%s %s: new request: %v", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

// DecodeEnvelope decodes a response body into the uniform envelope shape.
func DecodeEnvelope(resp *http.Response) (map[string]json.RawMessage, error) {
	defer resp.Body.Close()
	var body map[string]json.RawMessage
	err := json.NewDecoder(resp.Body).Decode(&body)
	return body, err
}
