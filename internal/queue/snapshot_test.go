package queue_test

import (
	"context"
	"testing"
	"time"

	"careplus/internal/models"
	"careplus/internal/queue"
	"careplus/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(id, patient string, seq, pos int, st models.EntryStatus) models.QueueEntry {
	return models.QueueEntry{ID: id, PatientID: patient, PatientName: patient, Seq: seq, Position: pos, Status: st}
}

func TestBuildPatientView_PeopleAheadCountsConsultation(t *testing.T) {
	day := &models.QueueDay{
		ClinicID: "C1",
		Entries: []models.QueueEntry{
			entry("c", "C", 1, 0, models.StatusInConsultation),
			entry("a", "A", 2, 1, models.StatusWaiting),
			entry("b", "B", 3, 2, models.StatusWaiting),
		},
	}

	view, ok := queue.BuildPatientView(day, "B", queue.DefaultServiceMinutes)
	require.True(t, ok)
	assert.Equal(t, 2, view.PeopleAhead)
	assert.Equal(t, 30, view.EstimatedWaitMinutes)
	assert.Equal(t, "0", view.CurrentServingToken)
	assert.Equal(t, 2, view.MyPosition)

	view, ok = queue.BuildPatientView(day, "A", 10)
	require.True(t, ok)
	assert.Equal(t, 1, view.PeopleAhead)
	assert.Equal(t, 10, view.EstimatedWaitMinutes)

	view, ok = queue.BuildPatientView(day, "C", 10)
	require.True(t, ok)
	assert.Equal(t, 0, view.PeopleAhead, "the patient being served has nobody ahead")
}

func TestBuildPatientView_Rows(t *testing.T) {
	day := &models.QueueDay{
		Entries: []models.QueueEntry{
			entry("f", "F", 1, 0, models.StatusFinished),
			entry("b", "B", 2, 2, models.StatusWaiting),
			entry("x", "X", 3, 0, models.StatusCancelled),
			entry("a", "A", 4, 1, models.StatusWaiting),
			entry("c", "C", 5, 0, models.StatusInConsultation),
		},
	}

	view, ok := queue.BuildPatientView(day, "B", 15)
	require.True(t, ok)

	ids := []string{}
	for _, r := range view.Rows {
		ids = append(ids, r.EntryID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
	assert.True(t, view.Rows[0].Serving)
	assert.True(t, view.Rows[2].IsMe)
	assert.False(t, view.Rows[1].IsMe)
	assert.Equal(t, "2", view.Rows[2].Token)
}

func TestBuildPatientView_ServingTokenFallsBackToLowestWaiting(t *testing.T) {
	day := &models.QueueDay{
		Entries: []models.QueueEntry{
			entry("a", "A", 1, 3, models.StatusWaiting),
			entry("b", "B", 2, 2, models.StatusWaiting),
		},
	}
	view, ok := queue.BuildPatientView(day, "A", 15)
	require.True(t, ok)
	assert.Equal(t, "2", view.CurrentServingToken)
	assert.Equal(t, 1, view.PeopleAhead)
}

func TestBuildPatientView_NoActiveEntry(t *testing.T) {
	day := &models.QueueDay{
		Entries: []models.QueueEntry{entry("a", "A", 1, 0, models.StatusFinished)},
	}
	_, ok := queue.BuildPatientView(day, "A", 15)
	assert.False(t, ok)
}

func TestPatientView_PeopleAheadAfterRenumber(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, p := range []string{"C", "A", "B", "X"} {
		_, err := f.svc.Join(ctx, "C1", p, p)
		require.NoError(t, err)
	}
	_, err := f.svc.StartConsultation(ctx, "C1", f.entryOf(t, "C1", "C").ID)
	require.NoError(t, err)
	_, err = f.svc.Finish(ctx, "C1", f.entryOf(t, "C1", "X").ID)
	require.NoError(t, err)

	view, err := f.svc.PatientView(ctx, "C1", "B")
	require.NoError(t, err)
	assert.Equal(t, 2, view.MyPosition)
	assert.Equal(t, 2, view.PeopleAhead)
	assert.Equal(t, 30, view.EstimatedWaitMinutes)
	assert.Len(t, view.Rows, 3)
}

func TestPatientView_AcrossClinicsPicksMostRecent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Join(ctx, "C1", "p1", "Alice")
	require.NoError(t, err)
	_, err = f.svc.Join(ctx, "C2", "p1", "Alice")
	require.NoError(t, err)

	view, err := f.svc.PatientView(ctx, "", "p1")
	require.NoError(t, err)
	assert.Equal(t, "C2", view.ClinicID)

	// Любое изменение в C1 делает её день самым свежим.
	_, err = f.svc.Join(ctx, "C1", "p9", "Zed")
	require.NoError(t, err)

	view, err = f.svc.PatientView(ctx, "", "p1")
	require.NoError(t, err)
	assert.Equal(t, "C1", view.ClinicID)

	view, err = f.svc.PatientView(ctx, "C2", "p1")
	require.NoError(t, err)
	assert.Equal(t, "C2", view.ClinicID)
}

func TestPatientView_NotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.PatientView(ctx, "", "ghost")
	assert.ErrorIs(t, err, queue.ErrNotFound)

	_, err = f.svc.Join(ctx, "C1", "p1", "Alice")
	require.NoError(t, err)
	_, err = f.svc.Finish(ctx, "C1", f.entryOf(t, "C1", "p1").ID)
	require.NoError(t, err)

	_, err = f.svc.PatientView(ctx, "C1", "p1")
	assert.ErrorIs(t, err, queue.ErrNotFound)
}

func TestPatientView_IgnoresClosedDays(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Join(ctx, "C1", "p1", "Alice")
	require.NoError(t, err)

	f.clock.Set(time.Date(2026, 10, 18, 0, 10, 0, 0, time.UTC))
	closed, err := f.store.CloseDaysBefore(ctx, "2026-10-18")
	require.NoError(t, err)
	require.Len(t, closed, 1)

	_, err = f.svc.PatientView(ctx, "", "p1")
	assert.ErrorIs(t, err, queue.ErrNotFound)
}

func TestPatientView_PastDayHiddenBeforeClosing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Join(ctx, "C1", "p1", "Alice")
	require.NoError(t, err)

	// Полночь прошла, а задача закрытия дней ещё не запускалась
	f.clock.Set(time.Date(2026, 10, 18, 0, 1, 0, 0, time.UTC))

	_, err = f.svc.PatientView(ctx, "C1", "p1")
	assert.ErrorIs(t, err, queue.ErrNotFound)
	_, err = f.svc.PatientView(ctx, "", "p1")
	assert.ErrorIs(t, err, queue.ErrNotFound)

	_, err = f.svc.Leave(ctx, "C1", "p1")
	assert.ErrorIs(t, err, queue.ErrNotFound)

	day, err := f.svc.DoctorView(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, "2026-10-18", day.Day)
	assert.Empty(t, day.Entries)

	old, err := f.store.GetDay(ctx, storage.DayKey{ClinicID: "C1", Day: "2026-10-17"})
	require.NoError(t, err)
	assert.True(t, old.IsActive, "the day is still open in storage")
}

func TestDoctorView_EmptyDay(t *testing.T) {
	f := newFixture(t)

	day, err := f.svc.DoctorView(context.Background(), "C1")
	require.NoError(t, err)
	assert.Equal(t, "C1", day.ClinicID)
	assert.Equal(t, "2026-10-17", day.Day)
	assert.NotNil(t, day.Entries)
	assert.Empty(t, day.Entries)

	_, err = f.store.GetDay(context.Background(), f.svc.TodayKey("C1"))
	assert.Error(t, err, "doctor view must not create the day")
}
