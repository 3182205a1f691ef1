package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"careplus/internal/auth"
	"careplus/internal/handlers"
	"careplus/internal/models"
	"careplus/internal/queue"
	"careplus/internal/response"
	"careplus/internal/storage"
	"careplus/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "handlers-secret"

type directory struct {
	clinics map[string]*models.Clinic
	err     error
}

func (d *directory) GetClinic(_ context.Context, id string) (*models.Clinic, error) {
	if d.err != nil {
		return nil, d.err
	}
	c, ok := d.clinics[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return c, nil
}

func (d *directory) ListActive(_ context.Context, f storage.ClinicFilter) ([]models.Clinic, error) {
	if d.err != nil {
		return nil, d.err
	}
	var out []models.Clinic
	for _, c := range d.clinics {
		if f.City != "" && !strings.EqualFold(c.City, f.City) {
			continue
		}
		if f.Query != "" && !strings.Contains(strings.ToLower(c.ClinicName), strings.ToLower(f.Query)) {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (d *directory) ListByDoctor(_ context.Context, doctorID string) ([]models.Clinic, error) {
	if d.err != nil {
		return nil, d.err
	}
	var out []models.Clinic
	for _, c := range d.clinics {
		if c.DoctorID == doctorID && c.IsActive {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type recorder struct {
	mu     sync.Mutex
	events []ws.WSMessage
}

func (r *recorder) BroadcastWSMessage(msg ws.WSMessage) {
	r.mu.Lock()
	r.events = append(r.events, msg)
	r.mu.Unlock()
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.EventType)
	}
	return out
}

type failingStore struct{}

var errDown = errors.New("connection refused")

func (failingStore) GetDay(context.Context, storage.DayKey) (*models.QueueDay, error) {
	return nil, errDown
}

func (failingStore) UpdateDay(context.Context, storage.DayKey, func() *models.QueueDay, func(*models.QueueDay) error) (*models.QueueDay, error) {
	return nil, errDown
}

func (failingStore) FindActiveDaysForPatient(context.Context, string, string, string) ([]*models.QueueDay, error) {
	return nil, errDown
}

type env struct {
	router   *gin.Engine
	verifier *auth.Verifier
	events   *recorder
	dir      *directory
}

func newEnv(t *testing.T, store queue.Store) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if store == nil {
		store = storage.NewMemoryStore()
	}
	dir := &directory{clinics: map[string]*models.Clinic{
		"C1": {ID: "C1", DoctorID: "D1", DoctorName: "Dr. Rao", ClinicName: "City Care", City: "Pune", ConsultationFee: 300, IsActive: true},
		"C2": {ID: "C2", DoctorID: "D2", DoctorName: "Dr. Shah", ClinicName: "Lake Clinic", City: "Mumbai", IsActive: true},
	}}

	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	seq := 0
	svc := queue.NewService(store, dir, zap.NewNop(),
		queue.WithLocation(time.UTC),
		queue.WithClock(func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			now = now.Add(time.Second)
			return now
		}),
		queue.WithIDGenerator(func() string {
			mu.Lock()
			defer mu.Unlock()
			seq++
			return fmt.Sprintf("e%d", seq)
		}),
	)

	events := &recorder{}
	verifier := auth.NewVerifier(testSecret)
	hub := ws.NewHub(zap.NewNop())

	r := gin.New()
	r.Use(handlers.RequestLogger(zap.NewNop()))
	handlers.RegisterRoutes(r, handlers.NewQueueHandler(svc, dir, events, zap.NewNop()), verifier, hub.QueueWebSocketHandler)
	return &env{router: r, verifier: verifier, events: events, dir: dir}
}

func (e *env) token(t *testing.T, userID, name, role string) string {
	t.Helper()
	tok, err := e.verifier.Sign(auth.Claims{UserID: userID, Name: name, Role: role, ProfileComplete: true}, time.Hour)
	require.NoError(t, err)
	return tok
}

func (e *env) patient(t *testing.T, id string) string {
	return e.token(t, id, "Patient "+id, auth.RolePatient)
}

func (e *env) doctor(t *testing.T, id string) string {
	return e.token(t, id, "Doctor "+id, auth.RoleDoctor)
}

func (e *env) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[response.ErrorResponse](t, w).Code
}

func (e *env) join(t *testing.T, clinicID, patientID string) response.JoinResponse {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/queues/"+clinicID+"/join", e.patient(t, patientID), nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[response.JoinResponse](t, w)
}
