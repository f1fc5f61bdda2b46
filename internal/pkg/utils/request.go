package utils

import (
	"doccare-service/internal/app/models"
	"doccare-service/internal/pkg/constvars"
	"net/http"
	"strconv"
)

func RequestIDFromRequest(r *http.Request) (string, bool) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	return requestID, ok
}

func ActorFromRequest(r *http.Request) (models.Actor, bool) {
	actor, ok := r.Context().Value(constvars.CONTEXT_ACTOR_KEY).(models.Actor)
	return actor, ok && actor.ID != ""
}

func BuildAppointmentFilterRequest(r *http.Request) models.AppointmentFilter {
	query := r.URL.Query()

	page, err := strconv.Atoi(query.Get("page"))
	if err != nil || page <= 0 {
		page = 1
	}

	pageSize, err := strconv.Atoi(query.Get("page_size"))
	if err != nil || pageSize <= 0 {
		pageSize = 10
	}

	return models.AppointmentFilter{
		Status:   models.AppointmentStatus(query.Get("status")),
		Date:     query.Get("date"),
		Page:     page,
		PageSize: pageSize,
	}
}
