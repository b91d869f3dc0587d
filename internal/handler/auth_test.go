package handler

import (
	"net/http"
	"testing"

	"github.com/clavier/clavier/internal/handler/dto"
)

func TestAuthHandler_Signup(t *testing.T) {
	env := newTestEnv(t)

	rec := doJSON(t, env, http.MethodPost, "/api/v1/auth/signup", "", dto.CredentialsRequest{
		Email:    "ada@example.com",
		Password: "correct horse battery staple",
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var session dto.SessionResponse
	decodeBody(t, rec, &session)

	if session.Token == "" {
		t.Error("expected a session token")
	}
	if session.User.ID == "" {
		t.Error("expected a user id")
	}
	if session.User.Email != "ada@example.com" {
		t.Errorf("unexpected email: %s", session.User.Email)
	}

	// The token must resolve back to the new user.
	userID, err := env.tokens.Verify(session.Token)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if string(userID) != session.User.ID {
		t.Errorf("token subject %q does not match user id %q", userID, session.User.ID)
	}
}

func TestAuthHandler_SignupMissingFields(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body dto.CredentialsRequest
	}{
		{name: "missing email", body: dto.CredentialsRequest{Password: "secret"}},
		{name: "missing password", body: dto.CredentialsRequest{Email: "ada@example.com"}},
		{name: "both missing", body: dto.CredentialsRequest{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, env, http.MethodPost, "/api/v1/auth/signup", "", tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", rec.Code)
			}

			var errResp dto.ErrorResponse
			decodeBody(t, rec, &errResp)
			if errResp.Code != "MISSING_FIELDS" {
				t.Errorf("expected code MISSING_FIELDS, got %s", errResp.Code)
			}
		})
	}
}

func TestAuthHandler_SignupDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	creds := dto.CredentialsRequest{Email: "ada@example.com", Password: "secret"}
	if rec := doJSON(t, env, http.MethodPost, "/api/v1/auth/signup", "", creds); rec.Code != http.StatusCreated {
		t.Fatalf("first signup failed: %d", rec.Code)
	}

	rec := doJSON(t, env, http.MethodPost, "/api/v1/auth/signup", "", creds)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var errResp dto.ErrorResponse
	decodeBody(t, rec, &errResp)
	if errResp.Code != "EMAIL_TAKEN" {
		t.Errorf("expected code EMAIL_TAKEN, got %s", errResp.Code)
	}
}

func TestAuthHandler_SignupInvalidJSON(t *testing.T) {
	env := newTestEnv(t)

	rec := doJSON(t, env, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"email":    "ada@example.com",
		"password": "secret",
		"role":     "admin",
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var errResp dto.ErrorResponse
	decodeBody(t, rec, &errResp)
	if errResp.Code != "INVALID_JSON" {
		t.Errorf("expected code INVALID_JSON, got %s", errResp.Code)
	}
}

func TestAuthHandler_Signin(t *testing.T) {
	env := newTestEnv(t)

	creds := dto.CredentialsRequest{Email: "ada@example.com", Password: "secret"}
	var signup dto.SessionResponse
	decodeBody(t, doJSON(t, env, http.MethodPost, "/api/v1/auth/signup", "", creds), &signup)

	rec := doJSON(t, env, http.MethodPost, "/api/v1/auth/signin", "", creds)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var session dto.SessionResponse
	decodeBody(t, rec, &session)

	if session.User.ID != signup.User.ID {
		t.Errorf("signin resolved user %q, signup created %q", session.User.ID, signup.User.ID)
	}
	if session.Token == "" {
		t.Error("expected a session token")
	}
}

func TestAuthHandler_SigninInvalidCredentials(t *testing.T) {
	env := newTestEnv(t)

	creds := dto.CredentialsRequest{Email: "ada@example.com", Password: "secret"}
	if rec := doJSON(t, env, http.MethodPost, "/api/v1/auth/signup", "", creds); rec.Code != http.StatusCreated {
		t.Fatalf("signup failed: %d", rec.Code)
	}

	tests := []struct {
		name string
		body dto.CredentialsRequest
	}{
		{name: "unknown email", body: dto.CredentialsRequest{Email: "nobody@example.com", Password: "secret"}},
		{name: "wrong password", body: dto.CredentialsRequest{Email: "ada@example.com", Password: "wrong"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, env, http.MethodPost, "/api/v1/auth/signin", "", tt.body)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected status 401, got %d", rec.Code)
			}

			// Both failure modes return the identical body.
			var errResp dto.ErrorResponse
			decodeBody(t, rec, &errResp)
			if errResp.Code != "INVALID_CREDENTIALS" {
				t.Errorf("expected code INVALID_CREDENTIALS, got %s", errResp.Code)
			}
			if errResp.Error != "Invalid credentials" {
				t.Errorf("unexpected error message: %s", errResp.Error)
			}
		})
	}
}
