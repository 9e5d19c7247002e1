package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/ShauryaRahlon/Travel-Delite/internal/app"
	"github.com/ShauryaRahlon/Travel-Delite/internal/domain"
)

// AdminCatalogService is the minimal interface needed for catalog administration.
type AdminCatalogService interface {
	CreateExperience(ctx context.Context, in app.CreateExperienceInput) (domain.Experience, error)
	CreateSlot(ctx context.Context, in app.CreateSlotInput) (domain.Slot, error)
}

const maxAdminBody = 1 << 16

// HandleAdminExperiences returns an HTTP handler for POST /api/admin/experiences.
func HandleAdminExperiences(svc AdminCatalogService, logger *log.Logger) http.HandlerFunc {
	logger = orDefault(logger)
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req app.CreateExperienceInput
		if !decodeAdminBody(w, r, &req) {
			return
		}

		exp, err := svc.CreateExperience(r.Context(), req)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, toExperienceResponse(exp))
	}
}

// HandleAdminSlots returns an HTTP handler for
// POST /api/admin/experiences/{id}/slots.
func HandleAdminSlots(svc AdminCatalogService, logger *log.Logger) http.HandlerFunc {
	logger = orDefault(logger)
	return func(w http.ResponseWriter, r *http.Request) {
		experienceID, ok := parseAdminSlotsPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req createSlotRequest
		if !decodeAdminBody(w, r, &req) {
			return
		}

		slot, err := svc.CreateSlot(r.Context(), app.CreateSlotInput{
			ExperienceID: experienceID,
			Date:         req.Date,
			Time:         req.Time,
			TotalTickets: req.TotalTickets,
		})
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, toSlotResponse(slot))
	}
}

type createSlotRequest struct {
	Date         string `json:"date"`
	Time         string `json:"time"`
	TotalTickets int    `json:"totalTickets"`
}

func decodeAdminBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAdminBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return false
	}
	return true
}

func parseAdminSlotsPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 5 {
		return "", false
	}
	if parts[0] != "api" || parts[1] != "admin" || parts[2] != "experiences" || parts[4] != "slots" {
		return "", false
	}
	if parts[3] == "" {
		return "", false
	}
	return parts[3], true
}
