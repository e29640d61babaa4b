package handlers_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestSignupWithCaptcha(t *testing.T) {
	r := newTestServer(t)

	resp := doJSON(t, r, "GET", "/api/auth/captcha", nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("captcha status = %d", resp.Code)
	}
	cookies := readCookies(resp)
	question := decodeBody(t, resp)["captcha"].(string)

	// Questions look like "3 + 5" or "7 - 2"
	parts := strings.Fields(question)
	if len(parts) != 3 {
		t.Fatalf("unexpected captcha format %q", question)
	}
	var a, b int
	fmt.Sscanf(parts[0], "%d", &a)
	fmt.Sscanf(parts[2], "%d", &b)
	answer := a + b
	if parts[1] == "-" {
		answer = a - b
	}

	resp = doJSON(t, r, "POST", "/api/auth/signup", map[string]interface{}{
		"email":    "yeni@test.dev",
		"password": "password123",
		"captcha":  fmt.Sprintf("%d", answer),
	}, cookies)
	if resp.Code != http.StatusOK {
		t.Fatalf("signup status = %d: %s", resp.Code, resp.Body.String())
	}

	// Signup logs the user in; the refreshed session works against /me
	sessionCookies := readCookies(resp)
	if len(sessionCookies) == 0 {
		sessionCookies = cookies
	}
	resp = doJSON(t, r, "GET", "/api/auth/me", nil, sessionCookies)
	if resp.Code != http.StatusOK {
		t.Fatalf("me status = %d: %s", resp.Code, resp.Body.String())
	}
	user := decodeBody(t, resp)["user"].(map[string]interface{})
	if user["username"] != "yeni" {
		t.Errorf("username = %v, want yeni (local part of the email)", user["username"])
	}
}

func TestSignupRejectsWrongCaptcha(t *testing.T) {
	r := newTestServer(t)

	resp := doJSON(t, r, "GET", "/api/auth/captcha", nil, nil)
	cookies := readCookies(resp)

	resp = doJSON(t, r, "POST", "/api/auth/signup", map[string]interface{}{
		"email":    "bot@test.dev",
		"password": "password123",
		"captcha":  "9999",
	}, cookies)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	r := newTestServer(t)
	createUser(t, "kemal@test.dev", "user")

	resp := doJSON(t, r, "POST", "/api/auth/login",
		map[string]interface{}{"email": "kemal@test.dev", "password": "nope"}, nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.Code)
	}
}

func TestBannedUserCannotLogin(t *testing.T) {
	r := newTestServer(t)
	user := createUser(t, "troll@test.dev", "user")
	user.Status = 2
	saveUser(t, user)

	resp := doJSON(t, r, "POST", "/api/auth/login",
		map[string]interface{}{"email": "troll@test.dev", "password": "password123"}, nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.Code)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	r := newTestServer(t)
	createUser(t, "ayse@test.dev", "user")
	cookies := login(t, r, "ayse@test.dev")

	resp := doJSON(t, r, "POST", "/api/auth/logout", nil, cookies)
	if resp.Code != http.StatusOK {
		t.Fatalf("logout status = %d", resp.Code)
	}
	cleared := readCookies(resp)

	resp = doJSON(t, r, "GET", "/api/auth/me", nil, cleared)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("me after logout = %d, want 401", resp.Code)
	}
}
