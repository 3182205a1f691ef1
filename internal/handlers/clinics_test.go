package handlers_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"careplus/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListClinics(t *testing.T) {
	e := newEnv(t, nil)

	w := e.do(t, http.MethodGet, "/api/clinics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Clinic](t, w), 2)

	w = e.do(t, http.MethodGet, "/api/clinics?city=pune", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[[]models.Clinic](t, w)
	require.Len(t, got, 1)
	assert.Equal(t, "C1", got[0].ID)
	assert.Equal(t, 300.0, got[0].ConsultationFee)

	w = e.do(t, http.MethodGet, "/api/clinics?q=nothing", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestGetClinic(t *testing.T) {
	e := newEnv(t, nil)

	w := e.do(t, http.MethodGet, "/api/clinics/C2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Lake Clinic", decode[models.Clinic](t, w).ClinicName)

	w = e.do(t, http.MethodGet, "/api/clinics/C9", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "CLINIC_NOT_FOUND", errorCode(t, w))

	e.dir.err = errors.New("redis and db down")
	w = e.do(t, http.MethodGet, "/api/clinics/C2", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "STORE_UNAVAILABLE", errorCode(t, w))
}

func TestDoctorClinics(t *testing.T) {
	e := newEnv(t, nil)
	e.dir.clinics["C3"] = &models.Clinic{ID: "C3", DoctorID: "D1", ClinicName: "Second Practice", IsActive: true,
		CreatedAt: e.dir.clinics["C1"].CreatedAt.Add(time.Hour)}

	w := e.do(t, http.MethodGet, "/api/doctor/clinics", e.doctor(t, "D1"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[[]models.Clinic](t, w)
	require.Len(t, got, 2)
	assert.Equal(t, "C3", got[0].ID)
	assert.Equal(t, "C1", got[1].ID)

	w = e.do(t, http.MethodGet, "/api/doctor/clinics", e.doctor(t, "D7"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	w = e.do(t, http.MethodGet, "/api/doctor/clinics", e.patient(t, "P1"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN_ROLE", errorCode(t, w))

	e.dir.err = errors.New("db down")
	w = e.do(t, http.MethodGet, "/api/doctor/clinics", e.doctor(t, "D1"), nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
