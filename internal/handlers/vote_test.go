package handlers_test

import (
	"net/http"
	"testing"

	"github.com/EmirhanSalman/dijital-pati-sub000/internal/db"
	"github.com/EmirhanSalman/dijital-pati-sub000/internal/models"
)

func TestVoteRequiresLogin(t *testing.T) {
	r := newTestServer(t)
	createUser(t, "author@test.dev", "user")
	cookies := login(t, r, "author@test.dev")
	pid := createPost(t, r, cookies, "lost cat in Kadıköy")

	// No session cookie at all
	resp := doJSON(t, r, "POST", "/api/posts/"+pid+"/vote",
		map[string]interface{}{"voteType": 1}, nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.Code)
	}
	body := decodeBody(t, resp)
	if body["error"] == "" {
		t.Error("401 response should carry an error message")
	}

	// And no row may have been written
	var count int64
	db.DB.Model(&models.Vote{}).Count(&count)
	if count != 0 {
		t.Errorf("unauthenticated request wrote %d vote rows", count)
	}
}

func TestVoteUnknownPost(t *testing.T) {
	r := newTestServer(t)
	createUser(t, "voter@test.dev", "user")
	cookies := login(t, r, "voter@test.dev")

	resp := doJSON(t, r, "POST", "/api/posts/zzzzzzzz/vote",
		map[string]interface{}{"voteType": 1}, cookies)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.Code)
	}
}

func TestVoteInvalidDirection(t *testing.T) {
	r := newTestServer(t)
	createUser(t, "voter@test.dev", "user")
	cookies := login(t, r, "voter@test.dev")
	pid := createPost(t, r, cookies, "a post")

	resp := doJSON(t, r, "POST", "/api/posts/"+pid+"/vote",
		map[string]interface{}{"voteType": 5}, cookies)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
}

func TestVoteToggleOverHTTP(t *testing.T) {
	r := newTestServer(t)
	createUser(t, "author@test.dev", "user")
	createUser(t, "voter@test.dev", "user")
	authorCookies := login(t, r, "author@test.dev")
	voterCookies := login(t, r, "voter@test.dev")
	pid := createPost(t, r, authorCookies, "vote on me")

	// First upvote
	resp := doJSON(t, r, "POST", "/api/posts/"+pid+"/vote",
		map[string]interface{}{"voteType": 1}, voterCookies)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.Code, resp.Body.String())
	}
	body := decodeBody(t, resp)
	if body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}
	if body["score"].(float64) != 1 {
		t.Errorf("score = %v, want 1", body["score"])
	}
	if body["userVote"].(float64) != 1 {
		t.Errorf("userVote = %v, want 1", body["userVote"])
	}

	// Same direction again: toggle off
	resp = doJSON(t, r, "POST", "/api/posts/"+pid+"/vote",
		map[string]interface{}{"voteType": 1}, voterCookies)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.Code, resp.Body.String())
	}
	body = decodeBody(t, resp)
	if body["score"].(float64) != 0 {
		t.Errorf("score after toggle-off = %v, want 0", body["score"])
	}
	if body["userVote"] != nil {
		t.Errorf("userVote after toggle-off = %v, want null", body["userVote"])
	}

	// Downvote, then flip to upvote
	resp = doJSON(t, r, "POST", "/api/posts/"+pid+"/vote",
		map[string]interface{}{"voteType": -1}, voterCookies)
	if decodeBody(t, resp)["score"].(float64) != -1 {
		t.Fatal("downvote should take score to -1")
	}
	resp = doJSON(t, r, "POST", "/api/posts/"+pid+"/vote",
		map[string]interface{}{"voteType": 1}, voterCookies)
	body = decodeBody(t, resp)
	if body["score"].(float64) != 1 {
		t.Errorf("score after flip = %v, want 1", body["score"])
	}

	// Explicit clear
	resp = doJSON(t, r, "POST", "/api/posts/"+pid+"/vote",
		map[string]interface{}{"voteType": 0}, voterCookies)
	if decodeBody(t, resp)["score"].(float64) != 0 {
		t.Error("clearing the vote should take score back to 0")
	}
}

func TestVoteShowForAnonymous(t *testing.T) {
	r := newTestServer(t)
	createUser(t, "author@test.dev", "user")
	cookies := login(t, r, "author@test.dev")
	pid := createPost(t, r, cookies, "public score")

	doJSON(t, r, "POST", "/api/posts/"+pid+"/vote",
		map[string]interface{}{"voteType": 1}, cookies)

	// Anonymous readers see the score but no personal vote
	resp := doJSON(t, r, "GET", "/api/posts/"+pid+"/vote", nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Code)
	}
	body := decodeBody(t, resp)
	if body["score"].(float64) != 1 {
		t.Errorf("score = %v, want 1", body["score"])
	}
	if body["userVote"] != nil {
		t.Errorf("anonymous userVote = %v, want null", body["userVote"])
	}
}

func TestDeletePostRemovesVotes(t *testing.T) {
	r := newTestServer(t)
	createUser(t, "author@test.dev", "user")
	createUser(t, "voter@test.dev", "user")
	authorCookies := login(t, r, "author@test.dev")
	voterCookies := login(t, r, "voter@test.dev")
	pid := createPost(t, r, authorCookies, "soon to be gone")

	doJSON(t, r, "POST", "/api/posts/"+pid+"/vote",
		map[string]interface{}{"voteType": 1}, voterCookies)
	doJSON(t, r, "POST", "/api/posts/"+pid+"/comments",
		map[string]interface{}{"content": "nice"}, voterCookies)

	resp := doJSON(t, r, "DELETE", "/api/posts/"+pid, nil, authorCookies)
	if resp.Code != http.StatusOK {
		t.Fatalf("delete status = %d: %s", resp.Code, resp.Body.String())
	}

	var votes, comments int64
	db.DB.Model(&models.Vote{}).Count(&votes)
	db.DB.Model(&models.Comment{}).Count(&comments)
	if votes != 0 {
		t.Errorf("vote rows = %d after post delete, want 0", votes)
	}
	if comments != 0 {
		t.Errorf("comment rows = %d after post delete, want 0", comments)
	}
}

func TestVoteEmitsNoNotifications(t *testing.T) {
	r := newTestServer(t)
	createUser(t, "author@test.dev", "user")
	createUser(t, "voter@test.dev", "user")
	authorCookies := login(t, r, "author@test.dev")
	voterCookies := login(t, r, "voter@test.dev")
	pid := createPost(t, r, authorCookies, "quiet votes")

	doJSON(t, r, "POST", "/api/posts/"+pid+"/vote",
		map[string]interface{}{"voteType": 1}, voterCookies)

	var count int64
	db.DB.Model(&models.Notification{}).Count(&count)
	if count != 0 {
		t.Errorf("voting created %d notifications, want 0", count)
	}
}
