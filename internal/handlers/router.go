package handlers

import (
	"net/http"

	"careplus/internal/auth"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes подключает API очереди к роутеру.
func RegisterRoutes(r gin.IRouter, h *QueueHandler, verifier *auth.Verifier, stream gin.HandlerFunc) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	clinics := r.Group("/api/clinics")
	{
		clinics.GET("", h.ListClinicsHandler)
		clinics.GET("/:clinicId", h.GetClinicHandler)
	}

	authed := verifier.AuthMiddleware()
	patient := auth.RequireRole(auth.RolePatient)
	doctor := auth.RequireRole(auth.RoleDoctor)

	queues := r.Group("/api/queues")
	{
		queues.GET("/:clinicId/ws", stream)

		queues.POST("/:clinicId/join", authed, patient, h.JoinQueueHandler)
		queues.POST("/:clinicId/leave", authed, patient, h.LeaveQueueHandler)
		queues.GET("/:clinicId/me", authed, patient, h.MyQueueHandler)

		queues.GET("/:clinicId", authed, doctor, h.DoctorQueueHandler)
		queues.PUT("/:clinicId/entries/:entryId", authed, doctor, h.UpdateEntryHandler)
	}

	r.GET("/api/patient/queue/active", authed, patient, h.ActiveQueueHandler)
	r.GET("/api/doctor/clinics", authed, doctor, h.DoctorClinicsHandler)
}
