package routes

import (
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"collegesphere/middlewares"
	"collegesphere/models"
	"collegesphere/utils"
)

type testServer struct {
	engine   *gin.Engine
	users    *mockUserRepo
	colleges *mockCollegeRepo
	events   *mockEventRepo
	regs     *mockRegRepo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { mr.Close() })

	ts := &testServer{
		users:    newMockUserRepo(),
		colleges: newMockCollegeRepo(),
		events:   newMockEventRepo(),
		regs:     newMockRegRepo(),
	}

	engine := gin.New()
	engine.Use(middlewares.ResponseCache(rdb, 30*time.Second))
	RegisterRoutes(engine, Deps{
		Users:     ts.users,
		Colleges:  ts.colleges,
		Events:    ts.events,
		Regs:      ts.regs,
		RDB:       rdb,
		Inv:       utils.NewCacheInvalidator(rdb),
		UploadDir: t.TempDir(),
	})
	ts.engine = engine
	return ts
}

func (ts *testServer) seedUser(t *testing.T, name string, role models.Role, approved bool) models.User {
	t.Helper()
	u := models.User{
		Name:       name,
		Email:      strings.ToLower(name) + "@example.edu",
		Password:   "not-a-real-hash",
		Role:       role,
		IsApproved: approved,
	}
	if err := ts.users.Create(&u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func (ts *testServer) seedCollege(t *testing.T, name string) models.College {
	t.Helper()
	c := models.College{ID: uuid.NewString(), Name: name, Location: "Springfield"}
	if err := ts.colleges.Create(&c); err != nil {
		t.Fatalf("seed college: %v", err)
	}
	return c
}

func (ts *testServer) seedEvent(t *testing.T, e models.Event) models.Event {
	t.Helper()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Date.IsZero() {
		e.Date = time.Now().Add(14 * 24 * time.Hour)
	}
	if e.Deadline.IsZero() {
		e.Deadline = time.Now().Add(7 * 24 * time.Hour)
	}
	if e.EventType == "" {
		e.EventType = models.EventTypeSolo
	}
	if err := ts.events.Create(&e); err != nil {
		t.Fatalf("seed event: %v", err)
	}
	return e
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

func token(t *testing.T, u models.User) string {
	t.Helper()
	tok, err := utils.GenerateToken(u)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return tok
}

func (ts *testServer) do(method, path, body, bearer string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	ts.engine.ServeHTTP(w, req)
	return w
}
