package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ShauryaRahlon/Travel-Delite/internal/clock"
	"github.com/ShauryaRahlon/Travel-Delite/internal/domain"
)

type fakeAdminRepo struct {
	createdExperience domain.Experience
	createdSlot       domain.Slot

	createExperienceErr error
	createSlotErr       error
}

func (f *fakeAdminRepo) CreateExperience(ctx context.Context, exp domain.Experience) error {
	f.createdExperience = exp
	return f.createExperienceErr
}

func (f *fakeAdminRepo) CreateSlot(ctx context.Context, slot domain.Slot) error {
	f.createdSlot = slot
	return f.createSlotErr
}

type recordingInvalidator struct {
	ids []string
}

func (r *recordingInvalidator) InvalidateExperience(id string) {
	r.ids = append(r.ids, id)
}

func TestAdminService_CreateExperience(t *testing.T) {
	repo := &fakeAdminRepo{}
	inv := &recordingInvalidator{}
	now := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)
	svc := NewAdminService(repo, inv, clock.NewFixed(now))

	got, err := svc.CreateExperience(context.Background(), CreateExperienceInput{
		Name:     "  Scuba Diving ",
		Price:    1500,
		ImageURL: "https://example.com/scuba.jpg",
	})
	if err != nil {
		t.Fatalf("create experience: %v", err)
	}
	if got.Name != "Scuba Diving" || got.CreatedAt != now || got.ID == "" {
		t.Fatalf("unexpected experience %+v", got)
	}
	if repo.createdExperience.ID != got.ID {
		t.Fatalf("expected repo to receive %s, got %s", got.ID, repo.createdExperience.ID)
	}
	if len(inv.ids) != 1 || inv.ids[0] != got.ID {
		t.Fatalf("expected listing invalidated, got %v", inv.ids)
	}
}

func TestAdminService_CreateExperience_Validates(t *testing.T) {
	tests := []struct {
		name  string
		in    CreateExperienceInput
		field string
	}{
		{name: "missing name", in: CreateExperienceInput{Price: 10}, field: "name"},
		{name: "negative price", in: CreateExperienceInput{Name: "Trek", Price: -1}, field: "price"},
		{name: "bad image url", in: CreateExperienceInput{Name: "Trek", ImageURL: "not a url"}, field: "imageUrl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeAdminRepo{}
			inv := &recordingInvalidator{}
			svc := NewAdminService(repo, inv, clock.NewFixed(time.Now()))

			_, err := svc.CreateExperience(context.Background(), tt.in)
			var verr *domain.ValidationError
			if !errors.As(err, &verr) || !errors.Is(err, domain.ErrValidationFailed) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(verr.Fields) != 1 || verr.Fields[0].Field != tt.field {
				t.Fatalf("expected field %s, got %+v", tt.field, verr.Fields)
			}
			if repo.createdExperience.ID != "" || len(inv.ids) != 0 {
				t.Fatalf("expected no write on invalid input")
			}
		})
	}
}

func TestAdminService_CreateSlot(t *testing.T) {
	t.Run("stores parsed date and invalidates experience", func(t *testing.T) {
		repo := &fakeAdminRepo{}
		inv := &recordingInvalidator{}
		svc := NewAdminService(repo, inv, clock.NewFixed(time.Now()))

		got, err := svc.CreateSlot(context.Background(), CreateSlotInput{
			ExperienceID: testExperienceID,
			Date:         "2025-12-01",
			Time:         "09:00 AM",
			TotalTickets: 8,
		})
		if err != nil {
			t.Fatalf("create slot: %v", err)
		}
		if !got.Date.Equal(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)) || got.BookedTickets != 0 {
			t.Fatalf("unexpected slot %+v", got)
		}
		if repo.createdSlot.ID != got.ID {
			t.Fatalf("expected repo to receive slot %s", got.ID)
		}
		if len(inv.ids) != 1 || inv.ids[0] != testExperienceID {
			t.Fatalf("expected experience invalidated, got %v", inv.ids)
		}
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		repo := &fakeAdminRepo{}
		svc := NewAdminService(repo, &recordingInvalidator{}, clock.NewFixed(time.Now()))

		_, err := svc.CreateSlot(context.Background(), CreateSlotInput{
			ExperienceID: "nope",
			Date:         "12/01/2025",
			TotalTickets: 0,
		})
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected validation error, got %v", err)
		}
		fields := map[string]bool{}
		for _, f := range verr.Fields {
			fields[f.Field] = true
		}
		for _, want := range []string{"experienceId", "date", "time", "totalTickets"} {
			if !fields[want] {
				t.Fatalf("expected %s rejected, got %+v", want, verr.Fields)
			}
		}
	})

	t.Run("rejects times outside the 12-hour display form", func(t *testing.T) {
		for _, slotTime := range []string{"9am", "13:00", "09:00"} {
			repo := &fakeAdminRepo{}
			svc := NewAdminService(repo, &recordingInvalidator{}, clock.NewFixed(time.Now()))

			_, err := svc.CreateSlot(context.Background(), CreateSlotInput{
				ExperienceID: testExperienceID,
				Date:         "2025-12-01",
				Time:         slotTime,
				TotalTickets: 4,
			})
			var verr *domain.ValidationError
			if !errors.As(err, &verr) || verr.Fields[0].Field != "time" {
				t.Fatalf("%q: expected time validation error, got %v", slotTime, err)
			}
			if repo.createdSlot.ID != "" {
				t.Fatalf("%q: expected no write", slotTime)
			}
		}
	})

	t.Run("missing experience is not invalidated", func(t *testing.T) {
		repo := &fakeAdminRepo{createSlotErr: domain.ErrExperienceNotFound}
		inv := &recordingInvalidator{}
		svc := NewAdminService(repo, inv, clock.NewFixed(time.Now()))

		_, err := svc.CreateSlot(context.Background(), CreateSlotInput{
			ExperienceID: testExperienceID,
			Date:         "2025-12-01",
			Time:         "09:00 AM",
			TotalTickets: 1,
		})
		if !errors.Is(err, domain.ErrExperienceNotFound) {
			t.Fatalf("expected ErrExperienceNotFound, got %v", err)
		}
		if len(inv.ids) != 0 {
			t.Fatalf("expected no invalidation, got %v", inv.ids)
		}
	})
}
