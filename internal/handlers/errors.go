package handlers

import (
	"errors"
	"net/http"

	"careplus/internal/queue"
	"careplus/internal/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type apiError struct {
	status  int
	code    string
	message string
}

var queueErrors = []struct {
	err error
	apiError
}{
	{queue.ErrClinicNotFound, apiError{http.StatusNotFound, "CLINIC_NOT_FOUND", "Клиника не найдена"}},
	{queue.ErrAlreadyQueued, apiError{http.StatusConflict, "ALREADY_IN_QUEUE", "Пациент уже стоит в этой очереди"}},
	{queue.ErrEntryNotFound, apiError{http.StatusNotFound, "ENTRY_NOT_FOUND", "Запись в очереди не найдена"}},
	{queue.ErrInvalidState, apiError{http.StatusConflict, "INVALID_STATE", "Недопустимый переход состояния"}},
	{queue.ErrNotFound, apiError{http.StatusNotFound, "NOT_IN_QUEUE", "Пациент не стоит в очереди"}},
	{queue.ErrStoreUnavailable, apiError{http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Хранилище очереди недоступно"}},
}

// writeQueueError переводит ошибку ядра очереди в ErrorResponse.
func writeQueueError(c *gin.Context, log *zap.Logger, err error) {
	for _, m := range queueErrors {
		if errors.Is(err, m.err) {
			if m.status >= http.StatusInternalServerError {
				log.Error("queue store failure", zap.String("path", c.FullPath()), zap.Error(err))
			}
			c.JSON(m.status, response.ErrorResponse{
				Code:    m.code,
				Message: m.message,
				Details: err.Error(),
			})
			return
		}
	}

	log.Error("unexpected queue error", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, response.ErrorResponse{
		Code:    "INTERNAL_ERROR",
		Message: "Внутренняя ошибка сервера",
	})
}

func validationError(c *gin.Context, message string, err error) {
	resp := response.ErrorResponse{
		Code:    "VALIDATION_ERROR",
		Message: message,
	}
	if err != nil {
		resp.Details = err.Error()
	}
	c.JSON(http.StatusBadRequest, resp)
}
