package handlers

import (
	"errors"
	"net/http"

	"careplus/internal/auth"
	"careplus/internal/models"
	"careplus/internal/response"
	"careplus/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListClinicsHandler поиск активных клиник
// @Summary		Поиск клиник
// @Description	Активные клиники с фильтром по городу и подстроке названия
// @Tags			clinics
// @Produce		json
// @Param			city	query	string	false	"Город"
// @Param			q		query	string	false	"Часть названия клиники"
// @Success		200	{array}		models.Clinic
// @Failure		503	{object}	response.ErrorResponse	"Хранилище недоступно (STORE_UNAVAILABLE)"
// @Router			/api/clinics [get]
func (h *QueueHandler) ListClinicsHandler(c *gin.Context) {
	clinics, err := h.clinics.ListActive(c.Request.Context(), storage.ClinicFilter{
		City:  c.Query("city"),
		Query: c.Query("q"),
	})
	if err != nil {
		writeClinicError(c, h.log, err)
		return
	}
	if clinics == nil {
		clinics = []models.Clinic{}
	}
	c.JSON(http.StatusOK, clinics)
}

// GetClinicHandler карточка клиники
// @Summary		Клиника по ID
// @Tags			clinics
// @Produce		json
// @Param			clinicId	path	string	true	"ID клиники"
// @Success		200	{object}	models.Clinic
// @Failure		404	{object}	response.ErrorResponse	"Клиника не найдена (CLINIC_NOT_FOUND)"
// @Failure		503	{object}	response.ErrorResponse	"Хранилище недоступно (STORE_UNAVAILABLE)"
// @Router			/api/clinics/{clinicId} [get]
func (h *QueueHandler) GetClinicHandler(c *gin.Context) {
	clinic, err := h.clinics.GetClinic(c.Request.Context(), c.Param("clinicId"))
	if err != nil {
		writeClinicError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, clinic)
}

// DoctorClinicsHandler клиники текущего врача
// @Summary		Мои клиники
// @Description	Активные клиники врача из токена, новые первыми
// @Tags			doctor
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}		models.Clinic
// @Failure		503	{object}	response.ErrorResponse	"Хранилище недоступно (STORE_UNAVAILABLE)"
// @Router			/api/doctor/clinics [get]
func (h *QueueHandler) DoctorClinicsHandler(c *gin.Context) {
	clinics, err := h.clinics.ListByDoctor(c.Request.Context(), c.GetString(auth.CtxUserID))
	if err != nil {
		writeClinicError(c, h.log, err)
		return
	}
	if clinics == nil {
		clinics = []models.Clinic{}
	}
	c.JSON(http.StatusOK, clinics)
}

func writeClinicError(c *gin.Context, log *zap.Logger, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "CLINIC_NOT_FOUND",
			Message: "Клиника не найдена",
		})
		return
	}
	log.Error("clinic lookup failed", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusServiceUnavailable, response.ErrorResponse{
		Code:    "STORE_UNAVAILABLE",
		Message: "Справочник клиник недоступен",
		Details: err.Error(),
	})
}
