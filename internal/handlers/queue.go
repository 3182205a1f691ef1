package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"careplus/internal/auth"
	"careplus/internal/models"
	"careplus/internal/queue"
	"careplus/internal/response"
	"careplus/internal/storage"
	"careplus/internal/ws"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ClinicDirectory источник карточек клиник (только чтение).
type ClinicDirectory interface {
	GetClinic(ctx context.Context, clinicID string) (*models.Clinic, error)
	ListActive(ctx context.Context, f storage.ClinicFilter) ([]models.Clinic, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]models.Clinic, error)
}

// Notifier рассылает события очереди подписчикам.
type Notifier interface {
	BroadcastWSMessage(msg ws.WSMessage)
}

// Действия врача над записью очереди.
const (
	ActionStartConsultation = "start-consultation"
	ActionFinish            = "finish"
	ActionCancel            = "cancel"
)

// selfName заменяет имя пациента в его собственной строке очереди.
const selfName = "You"

type QueueHandler struct {
	svc     *queue.Service
	clinics ClinicDirectory
	notify  Notifier
	log     *zap.Logger
}

func NewQueueHandler(svc *queue.Service, clinics ClinicDirectory, notify Notifier, log *zap.Logger) *QueueHandler {
	return &QueueHandler{svc: svc, clinics: clinics, notify: notify, log: log}
}

// JoinQueueHandler обрабатывает запрос на вступление в очередь
// @Summary		Вступление в очередь
// @Description	Ставит пациента в конец сегодняшней очереди клиники и уведомляет подписчиков
// @Tags			queue
// @Accept			json
// @Produce		json
// @Param			clinicId	path		string					true	"ID клиники"
// @Param			body		body		response.JoinRequest	false	"Имя пациента (по умолчанию из токена)"
// @Security		BearerAuth
// @Success		201	{object}	response.JoinResponse	"Позиция в очереди"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		404	{object}	response.ErrorResponse	"Клиника не найдена (CLINIC_NOT_FOUND)"
// @Failure		409	{object}	response.ErrorResponse	"Уже в очереди (ALREADY_IN_QUEUE)"
// @Failure		503	{object}	response.ErrorResponse	"Хранилище недоступно (STORE_UNAVAILABLE)"
// @Router			/api/queues/{clinicId}/join [post]
func (h *QueueHandler) JoinQueueHandler(c *gin.Context) {
	clinicID := c.Param("clinicId")

	// Тело необязательно, пустое тело даёт io.EOF
	var req response.JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		validationError(c, "Некорректное тело запроса", err)
		return
	}
	name := req.PatientName
	if name == "" {
		name = c.GetString(auth.CtxUserName)
	}
	if name == "" {
		validationError(c, "Не указано имя пациента", nil)
		return
	}

	entry, err := h.svc.JoinEntry(c.Request.Context(), clinicID, c.GetString(auth.CtxUserID), name)
	if err != nil {
		writeQueueError(c, h.log, err)
		return
	}

	h.notify.BroadcastWSMessage(ws.WSMessage{
		EventType: ws.EventPatientJoined,
		ClinicID:  clinicID,
		Data: map[string]interface{}{
			"entry_id": entry.ID,
			"position": entry.Position,
		},
	})

	c.JSON(http.StatusCreated, response.JoinResponse{
		EntryID:  entry.ID,
		Position: entry.Position,
		Day:      h.svc.TodayKey(clinicID).Day,
	})
}

// LeaveQueueHandler обрабатывает запрос на выход из очереди
// @Summary		Выход из очереди
// @Description	Отменяет активную запись пациента и перенумеровывает ожидающих
// @Tags			queue
// @Produce		json
// @Param			clinicId	path	string	true	"ID клиники"
// @Security		BearerAuth
// @Success		200	{object}	response.EntryResponse	"Отменённая запись"
// @Failure		404	{object}	response.ErrorResponse	"Пациент не в очереди (NOT_IN_QUEUE)"
// @Failure		409	{object}	response.ErrorResponse	"Приём уже идёт (INVALID_STATE)"
// @Failure		503	{object}	response.ErrorResponse	"Хранилище недоступно (STORE_UNAVAILABLE)"
// @Router			/api/queues/{clinicId}/leave [post]
func (h *QueueHandler) LeaveQueueHandler(c *gin.Context) {
	clinicID := c.Param("clinicId")

	entry, err := h.svc.Leave(c.Request.Context(), clinicID, c.GetString(auth.CtxUserID))
	if err != nil {
		writeQueueError(c, h.log, err)
		return
	}

	h.notify.BroadcastWSMessage(ws.WSMessage{
		EventType: ws.EventPatientLeft,
		ClinicID:  clinicID,
		Data:      map[string]interface{}{"entry_id": entry.ID},
	})

	c.JSON(http.StatusOK, entryResponse(entry))
}

// MyQueueHandler возвращает позицию пациента в очереди клиники
// @Summary		Моя позиция в очереди клиники
// @Tags			queue
// @Produce		json
// @Param			clinicId	path	string	true	"ID клиники"
// @Security		BearerAuth
// @Success		200	{object}	response.PatientQueueResponse
// @Failure		404	{object}	response.ErrorResponse	"Пациент не в очереди (NOT_IN_QUEUE)"
// @Failure		503	{object}	response.ErrorResponse	"Хранилище недоступно (STORE_UNAVAILABLE)"
// @Router			/api/queues/{clinicId}/me [get]
func (h *QueueHandler) MyQueueHandler(c *gin.Context) {
	h.patientView(c, c.Param("clinicId"))
}

// ActiveQueueHandler ищет активную очередь пациента во всех клиниках
// @Summary		Моя активная очередь
// @Description	Самая свежая активная запись пациента за сегодня в любой клинике
// @Tags			patient
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	response.PatientQueueResponse
// @Failure		404	{object}	response.ErrorResponse	"Пациент не в очереди (NOT_IN_QUEUE)"
// @Failure		503	{object}	response.ErrorResponse	"Хранилище недоступно (STORE_UNAVAILABLE)"
// @Router			/api/patient/queue/active [get]
func (h *QueueHandler) ActiveQueueHandler(c *gin.Context) {
	h.patientView(c, "")
}

func (h *QueueHandler) patientView(c *gin.Context, clinicID string) {
	ctx := c.Request.Context()
	view, err := h.svc.PatientView(ctx, clinicID, c.GetString(auth.CtxUserID))
	if err != nil {
		writeQueueError(c, h.log, err)
		return
	}

	for i := range view.Rows {
		if view.Rows[i].IsMe {
			view.Rows[i].PatientName = selfName
		}
	}

	resp := response.PatientQueueResponse{PatientView: view}
	if clinic, err := h.clinics.GetClinic(ctx, view.ClinicID); err == nil {
		resp.Clinic = &response.ClinicSummary{
			ID:              clinic.ID,
			Name:            clinic.ClinicName,
			DoctorName:      clinic.DoctorName,
			City:            clinic.City,
			ConsultationFee: clinic.ConsultationFee,
		}
	} else {
		h.log.Debug("clinic summary unavailable", zap.String("clinic_id", view.ClinicID), zap.Error(err))
	}
	c.JSON(http.StatusOK, resp)
}

// DoctorQueueHandler возвращает полную сегодняшнюю очередь клиники
// @Summary		Очередь клиники для врача
// @Tags			doctor
// @Produce		json
// @Param			clinicId	path	string	true	"ID клиники"
// @Security		BearerAuth
// @Success		200	{object}	response.DoctorQueueResponse
// @Failure		403	{object}	response.ErrorResponse	"Клиника другого врача (NOT_CLINIC_DOCTOR)"
// @Failure		404	{object}	response.ErrorResponse	"Клиника не найдена (CLINIC_NOT_FOUND)"
// @Failure		503	{object}	response.ErrorResponse	"Хранилище недоступно (STORE_UNAVAILABLE)"
// @Router			/api/queues/{clinicId} [get]
func (h *QueueHandler) DoctorQueueHandler(c *gin.Context) {
	clinicID := c.Param("clinicId")
	if !h.requireOwner(c, clinicID) {
		return
	}

	day, err := h.svc.DoctorView(c.Request.Context(), clinicID)
	if err != nil {
		writeQueueError(c, h.log, err)
		return
	}

	resp := response.DoctorQueueResponse{
		ClinicID: day.ClinicID,
		DoctorID: day.DoctorID,
		Day:      day.Day,
		IsActive: day.IsActive,
		Version:  day.Version,
		Entries:  make([]response.EntryResponse, 0, len(day.Entries)),
	}
	for i := range day.Entries {
		if day.Entries[i].Status == models.StatusWaiting {
			resp.Waiting++
		}
		resp.Entries = append(resp.Entries, entryResponse(&day.Entries[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateEntryHandler переводит запись очереди в новое состояние
// @Summary		Смена статуса записи
// @Description	start-consultation: waiting → in-consultation; finish: → finished с перенумерацией; cancel: waiting → cancelled
// @Tags			doctor
// @Accept			json
// @Produce		json
// @Param			clinicId	path	string						true	"ID клиники"
// @Param			entryId		path	string						true	"ID записи"
// @Param			body		body	response.TransitionRequest	true	"Действие"
// @Security		BearerAuth
// @Success		200	{object}	response.EntryResponse
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		403	{object}	response.ErrorResponse	"Клиника другого врача (NOT_CLINIC_DOCTOR)"
// @Failure		404	{object}	response.ErrorResponse	"Запись не найдена (ENTRY_NOT_FOUND)"
// @Failure		409	{object}	response.ErrorResponse	"Недопустимый переход (INVALID_STATE)"
// @Failure		503	{object}	response.ErrorResponse	"Хранилище недоступно (STORE_UNAVAILABLE)"
// @Router			/api/queues/{clinicId}/entries/{entryId} [put]
func (h *QueueHandler) UpdateEntryHandler(c *gin.Context) {
	clinicID := c.Param("clinicId")
	entryID := c.Param("entryId")

	var req response.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, "Некорректное действие", err)
		return
	}
	if !h.requireOwner(c, clinicID) {
		return
	}

	ctx := c.Request.Context()
	var (
		entry *models.QueueEntry
		event string
		err   error
	)
	switch req.Action {
	case ActionStartConsultation:
		entry, err = h.svc.StartConsultation(ctx, clinicID, entryID)
		event = ws.EventConsultationStarted
	case ActionFinish:
		entry, err = h.svc.Finish(ctx, clinicID, entryID)
		event = ws.EventConsultationFinished
	case ActionCancel:
		entry, err = h.svc.Cancel(ctx, clinicID, entryID)
		event = ws.EventEntryCancelled
	}
	if err != nil {
		writeQueueError(c, h.log, err)
		return
	}

	h.notify.BroadcastWSMessage(ws.WSMessage{
		EventType: event,
		ClinicID:  clinicID,
		Data: map[string]interface{}{
			"entry_id": entry.ID,
			"position": entry.Position,
			"status":   entry.Status,
		},
	})
	c.JSON(http.StatusOK, entryResponse(entry))
}

// requireOwner проверяет, что клиника принадлежит вызывающему врачу.
func (h *QueueHandler) requireOwner(c *gin.Context, clinicID string) bool {
	clinic, err := h.clinics.GetClinic(c.Request.Context(), clinicID)
	if err != nil {
		writeClinicError(c, h.log, err)
		return false
	}
	if clinic.DoctorID != c.GetString(auth.CtxUserID) {
		c.JSON(http.StatusForbidden, response.ErrorResponse{
			Code:    "NOT_CLINIC_DOCTOR",
			Message: "Клиника принадлежит другому врачу",
		})
		return false
	}
	return true
}

func entryResponse(e *models.QueueEntry) response.EntryResponse {
	return response.EntryResponse{
		EntryID:     e.ID,
		PatientID:   e.PatientID,
		PatientName: e.PatientName,
		Position:    e.Position,
		Status:      string(e.Status),
		JoinedAt:    e.JoinedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
