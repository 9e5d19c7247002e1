package http

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/ShauryaRahlon/Travel-Delite/internal/domain"
)

// ExperienceLister is the minimal interface needed to list the catalog.
type ExperienceLister interface {
	ListExperiences(ctx context.Context) ([]domain.Experience, error)
}

// ExperienceGetter is the minimal interface needed to read one experience.
type ExperienceGetter interface {
	GetExperience(ctx context.Context, id string) (domain.Experience, error)
}

// HandleListExperiences returns an HTTP handler for the catalog listing.
func HandleListExperiences(svc ExperienceLister, logger *log.Logger) http.HandlerFunc {
	logger = orDefault(logger)
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		experiences, err := svc.ListExperiences(r.Context())
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		resp := make([]experienceResponse, 0, len(experiences))
		for _, e := range experiences {
			resp = append(resp, toExperienceResponse(e))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleGetExperience returns an HTTP handler for /api/experiences/{id}.
func HandleGetExperience(svc ExperienceGetter, logger *log.Logger) http.HandlerFunc {
	logger = orDefault(logger)
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		id, ok := parseExperiencePath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		exp, err := svc.GetExperience(r.Context(), id)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		resp := experienceDetailResponse{
			experienceResponse: toExperienceResponse(exp),
			Slots:              make([]slotResponse, 0, len(exp.Slots)),
		}
		for _, s := range exp.Slots {
			resp.Slots = append(resp.Slots, toSlotResponse(s))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func parseExperiencePath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 {
		return "", false
	}
	if parts[0] != "api" || parts[1] != "experiences" || parts[2] == "" {
		return "", false
	}
	return parts[2], true
}

func toExperienceResponse(e domain.Experience) experienceResponse {
	return experienceResponse{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Price:       e.Price,
		ImageURL:    e.ImageURL,
	}
}

func toSlotResponse(s domain.Slot) slotResponse {
	return slotResponse{
		ID:               s.ID,
		ExperienceID:     s.ExperienceID,
		Date:             s.Date,
		Time:             s.Time,
		TotalTickets:     s.TotalTickets,
		BookedTickets:    s.BookedTickets,
		AvailableTickets: s.Available(),
	}
}

type experienceResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	ImageURL    string `json:"imageUrl"`
}

type experienceDetailResponse struct {
	experienceResponse
	Slots []slotResponse `json:"slots"`
}

type slotResponse struct {
	ID               string    `json:"id"`
	ExperienceID     string    `json:"experienceId"`
	Date             time.Time `json:"date"`
	Time             string    `json:"time"`
	TotalTickets     int       `json:"totalTickets"`
	BookedTickets    int       `json:"bookedTickets"`
	AvailableTickets int       `json:"availableTickets"`
}

func orDefault(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.Default()
	}
	return logger
}
