package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"taskmate/internal/models"
	"taskmate/internal/service"
	"taskmate/internal/session"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerUser *models.User
	registerErr  error
	loginUser    *models.User
	loginErr     error
	currentUser  *models.User
	currentErr   error

	registerCalls int
	loginCalls    int
	lastRegister  service.RegisterInput
	lastLogin     service.LoginInput
}

func (m *mockAuth) Register(ctx context.Context, in service.RegisterInput) (*models.User, error) {
	m.registerCalls++
	m.lastRegister = in
	return m.registerUser, m.registerErr
}

func (m *mockAuth) Login(ctx context.Context, in service.LoginInput) (*models.User, error) {
	m.loginCalls++
	m.lastLogin = in
	return m.loginUser, m.loginErr
}

func (m *mockAuth) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	return m.currentUser, m.currentErr
}

type mockTasks struct {
	board      models.Board
	boardErr   error
	createTask *models.Task
	createErr  error
	updateErr  error
	deleteErr  error

	boardCalls  int
	createCalls int
	updateCalls int
	deleteCalls int
	lastUserID  string
	lastTaskID  string
	lastInput   service.TaskInput
}

func (m *mockTasks) Board(ctx context.Context, userID string) (models.Board, error) {
	m.boardCalls++
	m.lastUserID = userID
	return m.board, m.boardErr
}

func (m *mockTasks) Create(ctx context.Context, userID string, in service.TaskInput) (*models.Task, error) {
	m.createCalls++
	m.lastUserID = userID
	m.lastInput = in
	return m.createTask, m.createErr
}

func (m *mockTasks) Update(ctx context.Context, userID, taskID string, in service.TaskInput) error {
	m.updateCalls++
	m.lastUserID = userID
	m.lastTaskID = taskID
	m.lastInput = in
	return m.updateErr
}

func (m *mockTasks) Delete(ctx context.Context, userID, taskID string) error {
	m.deleteCalls++
	m.lastUserID = userID
	m.lastTaskID = taskID
	return m.deleteErr
}

// ---- Helpers ----

func newTestGate(t *testing.T) *session.Gate {
	t.Helper()
	codec, err := session.NewJWTCodec("test-secret", session.DefaultTTL)
	if err != nil {
		t.Fatalf("codec: %v", err)
	}
	return session.NewGate(codec, session.DefaultCookieConfig(false))
}

func newTestRouter(t *testing.T, s *service.Service) (*gin.Engine, *session.Gate) {
	t.Helper()
	gate := newTestGate(t)
	h := NewHandler(s, gate, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes(), gate
}

func sessionCookie(t *testing.T, gate *session.Gate, userID string) *http.Cookie {
	t.Helper()
	c, err := gate.Commit(userID)
	if err != nil {
		t.Fatalf("commit session: %v", err)
	}
	return c
}

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serve(r http.Handler, req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return m
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func httptestRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

func jsonUnmarshal(b []byte, v any) error {
	return json.Unmarshal(b, v)
}
