package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/EmirhanSalman/dijital-pati-sub000/internal/db"
	"github.com/EmirhanSalman/dijital-pati-sub000/internal/models"
	"github.com/EmirhanSalman/dijital-pati-sub000/internal/router"
	"github.com/EmirhanSalman/dijital-pati-sub000/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	mw "github.com/EmirhanSalman/dijital-pati-sub000/internal/middleware"
)

// newTestServer points the global db handle at an in-memory database and
// wires the real middleware and routes, so tests exercise the same stack
// the binary runs.
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	db.DB = gdb

	if err := gdb.Create(&models.Topic{Name: "general"}).Error; err != nil {
		t.Fatalf("seed topic: %v", err)
	}

	r := gin.New()
	store := cookie.NewStore([]byte("test_secret"))
	r.Use(sessions.Sessions("dijitalpati_session", store))
	r.Use(mw.LoadUser())
	router.RegisterRoutes(r)
	return r
}

func createUser(t *testing.T, email, role string) *models.User {
	t.Helper()
	hash, err := utils.HashPassword("password123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{
		Username: email,
		Email:    email,
		Password: hash,
		Role:     role,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &user
}

func saveUser(t *testing.T, user *models.User) {
	t.Helper()
	if err := db.DB.Save(user).Error; err != nil {
		t.Fatalf("save user: %v", err)
	}
}

// login returns the session cookies for an existing user.
func login(t *testing.T, r *gin.Engine, email string) []*http.Cookie {
	t.Helper()
	resp := doJSON(t, r, "POST", "/api/auth/login",
		map[string]interface{}{"email": email, "password": "password123"}, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("login failed with status %d: %s", resp.Code, resp.Body.String())
	}
	return readCookies(resp)
}

func readCookies(resp *httptest.ResponseRecorder) []*http.Cookie {
	parsed := http.Response{Header: resp.Header()}
	return parsed.Cookies()
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", resp.Body.String(), err)
	}
	return body
}

func createPost(t *testing.T, r *gin.Engine, cookies []*http.Cookie, title string) string {
	t.Helper()
	resp := doJSON(t, r, "POST", "/api/posts",
		map[string]interface{}{"title": title, "content": "some *markdown* content"}, cookies)
	if resp.Code != http.StatusOK {
		t.Fatalf("create post failed with status %d: %s", resp.Code, resp.Body.String())
	}
	return decodeBody(t, resp)["pid"].(string)
}
