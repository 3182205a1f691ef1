package queue

import (
	"context"
	"sort"
	"strconv"
	"time"

	"careplus/internal/models"
)

// NoServingToken показывается, когда никого нет ни на приёме, ни в ожидании.
const NoServingToken = "-"

// Row одна строка живой очереди.
type Row struct {
	EntryID     string             `json:"entry_id"`
	Token       string             `json:"token"`
	PatientName string             `json:"patient_name"`
	Status      models.EntryStatus `json:"status"`
	Serving     bool               `json:"serving"`
	IsMe        bool               `json:"is_me"`
}

// PatientView то, что видит пациент в ожидании.
type PatientView struct {
	ClinicID             string             `json:"clinic_id"`
	DoctorID             string             `json:"doctor_id"`
	Day                  string             `json:"day"`
	EntryID              string             `json:"entry_id"`
	MyPosition           int                `json:"my_position"`
	Status               models.EntryStatus `json:"status"`
	PeopleAhead          int                `json:"people_ahead"`
	EstimatedWaitMinutes int                `json:"estimated_wait_minutes"`
	CurrentServingToken  string             `json:"current_serving_token"`
	Rows                 []Row              `json:"queue"`
	UpdatedAt            time.Time          `json:"updated_at"`
}

// PatientView находит активную запись пациента за сегодня и строит очередь
// вокруг неё. Пустой clinicID означает поиск по всем клиникам, выбирается
// самый свежий день.
func (s *Service) PatientView(ctx context.Context, clinicID, patientID string) (*PatientView, error) {
	days, err := s.store.FindActiveDaysForPatient(ctx, patientID, clinicID, s.TodayKey(clinicID).Day)
	if err != nil {
		return nil, storeError(err)
	}

	var latest *models.QueueDay
	for _, d := range days {
		if latest == nil || d.UpdatedAt.After(latest.UpdatedAt) {
			latest = d
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}

	view, ok := BuildPatientView(latest, patientID, s.serviceMinutes)
	if !ok {
		return nil, ErrNotFound
	}
	return view, nil
}

// BuildPatientView строит представление пациента по дню очереди.
// false, если у пациента нет активной записи в этом дне.
func BuildPatientView(day *models.QueueDay, patientID string, serviceMinutes int) (*PatientView, bool) {
	me := day.ActiveEntryFor(patientID)
	if me == nil {
		return nil, false
	}
	serving := day.InConsultation()

	ahead := 0
	if me.Status == models.StatusWaiting {
		for _, e := range day.Entries {
			if e.ID != me.ID && e.Status == models.StatusWaiting && e.Position < me.Position {
				ahead++
			}
		}
		// Идущий приём всегда впереди, его позиция после перенумерации равна 0.
		if serving != nil {
			ahead++
		}
	}

	return &PatientView{
		ClinicID:             day.ClinicID,
		DoctorID:             day.DoctorID,
		Day:                  day.Day,
		EntryID:              me.ID,
		MyPosition:           me.Position,
		Status:               me.Status,
		PeopleAhead:          ahead,
		EstimatedWaitMinutes: ahead * serviceMinutes,
		CurrentServingToken:  servingToken(day),
		Rows:                 visibleRows(day, patientID),
		UpdatedAt:            day.UpdatedAt,
	}, true
}

func servingToken(day *models.QueueDay) string {
	if e := day.InConsultation(); e != nil {
		return strconv.Itoa(e.Position)
	}
	lowest := 0
	for _, e := range day.Entries {
		if e.Status == models.StatusWaiting && (lowest == 0 || e.Position < lowest) {
			lowest = e.Position
		}
	}
	if lowest == 0 {
		return NoServingToken
	}
	return strconv.Itoa(lowest)
}

// visibleRows: сначала запись на приёме, затем ожидающие по позиции.
func visibleRows(day *models.QueueDay, patientID string) []Row {
	active := make([]models.QueueEntry, 0, len(day.Entries))
	for _, e := range day.Entries {
		if e.Status.Active() {
			active = append(active, e)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		a, b := active[i], active[j]
		if (a.Status == models.StatusInConsultation) != (b.Status == models.StatusInConsultation) {
			return a.Status == models.StatusInConsultation
		}
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		return a.Seq < b.Seq
	})

	rows := make([]Row, 0, len(active))
	for _, e := range active {
		rows = append(rows, Row{
			EntryID:     e.ID,
			Token:       strconv.Itoa(e.Position),
			PatientName: e.PatientName,
			Status:      e.Status,
			Serving:     e.Status == models.StatusInConsultation,
			IsMe:        e.PatientID == patientID,
		})
	}
	return rows
}

// DoctorView полная сегодняшняя очередь клиники. Если никто ещё не записался,
// возвращается пустой несохранённый день.
func (s *Service) DoctorView(ctx context.Context, clinicID string) (*models.QueueDay, error) {
	key := s.TodayKey(clinicID)
	day, err := s.store.GetDay(ctx, key)
	if isMissing(err) {
		return &models.QueueDay{
			ClinicID: clinicID,
			Day:      key.Day,
			Date:     s.Today(),
			IsActive: true,
			Entries:  []models.QueueEntry{},
		}, nil
	}
	if err != nil {
		return nil, storeError(err)
	}
	if day.Entries == nil {
		day.Entries = []models.QueueEntry{}
	}
	return day, nil
}
