package store

import (
	"context"
	"errors"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "test_submissions.db")

	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	cleanup := func() {
		s.Close()
	}

	return s, cleanup
}

func TestNewStore(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	if s == nil {
		t.Fatal("store should not be nil")
	}
	if s.db == nil {
		t.Fatal("db should not be nil")
	}
}

func TestSaveAndGetSubmission(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	sub := Submission{
		Form:  "booking",
		Name:  "Jo",
		Email: "jo@example.com",
		Payload: url.Values{
			"form-name":     {"booking"},
			"walk-times[]":  {"Morning", "Evening"},
			"age-years-q1":  {"3"},
		},
		IP: "203.0.113.10",
	}

	saved, err := s.SaveSubmission(ctx, sub)
	if err != nil {
		t.Fatalf("SaveSubmission failed: %v", err)
	}
	if _, err := uuid.Parse(saved.ID); err != nil {
		t.Errorf("ID %q is not a uuid: %v", saved.ID, err)
	}
	if saved.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	got, err := s.GetSubmission(ctx, saved.ID)
	if err != nil {
		t.Fatalf("GetSubmission failed: %v", err)
	}
	if diff := cmp.Diff(saved, got); diff != "" {
		t.Errorf("submission mismatch (-saved +got):\n%s", diff)
	}
}

func TestGetSubmissionNotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := s.GetSubmission(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListSubmissionsNewestFirst(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, form := range []string{"contact", "booking", "contact"} {
		_, err := s.SaveSubmission(ctx, Submission{
			ID:        form + "-" + string(rune('a'+i)),
			Form:      form,
			Name:      "Jo",
			Payload:   url.Values{},
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("SaveSubmission failed: %v", err)
		}
	}

	all, err := s.ListSubmissions(ctx, "", 0)
	if err != nil {
		t.Fatalf("ListSubmissions failed: %v", err)
	}
	var ids []string
	for _, sub := range all {
		ids = append(ids, sub.ID)
	}
	if diff := cmp.Diff([]string{"contact-c", "booking-b", "contact-a"}, ids); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}

	contacts, err := s.ListSubmissions(ctx, "contact", 1)
	if err != nil {
		t.Fatalf("ListSubmissions failed: %v", err)
	}
	if len(contacts) != 1 || contacts[0].ID != "contact-c" {
		t.Errorf("filtered list = %+v", contacts)
	}

	counts, err := s.CountByForm(ctx)
	if err != nil {
		t.Fatalf("CountByForm failed: %v", err)
	}
	if diff := cmp.Diff(map[string]int{"contact": 2, "booking": 1}, counts); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}
}

func TestDeleteSubmission(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	saved, err := s.SaveSubmission(ctx, Submission{Form: "contact", Name: "Jo", Payload: url.Values{}})
	if err != nil {
		t.Fatalf("SaveSubmission failed: %v", err)
	}
	if err := s.DeleteSubmission(ctx, saved.ID); err != nil {
		t.Fatalf("DeleteSubmission failed: %v", err)
	}
	if _, err := s.GetSubmission(ctx, saved.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected deleted submission to be gone, got %v", err)
	}
	if err := s.DeleteSubmission(ctx, saved.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
}

func TestSaveSubmissionDuplicateID(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	sub := Submission{ID: "fixed", Form: "contact", Payload: url.Values{}}
	if _, err := s.SaveSubmission(ctx, sub); err != nil {
		t.Fatalf("SaveSubmission failed: %v", err)
	}
	if _, err := s.SaveSubmission(ctx, sub); err == nil {
		t.Error("expected duplicate id to fail")
	}
}
