package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/davidjirca/dreamhome/domain"
	"github.com/davidjirca/dreamhome/dto"
)

func TestSavedSearchCreate_Success(t *testing.T) {
	service := NewSavedSearchService(newMockSavedSearchRepository())
	userID := uuid.New()

	search, err := service.Create(context.Background(), userID, dto.SavedSearchCreate{
		Name:    "Apartamente Cluj",
		Filters: json.RawMessage(`{"city":"Cluj-Napoca","min_rooms":"2"}`),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if search.UserID != userID {
		t.Error("saved search must belong to the creating user")
	}
}

func TestSavedSearchCreate_DuplicateName(t *testing.T) {
	service := NewSavedSearchService(newMockSavedSearchRepository())
	userID := uuid.New()

	req := dto.SavedSearchCreate{Name: "Apartamente Cluj", Filters: json.RawMessage(`{}`)}
	if _, err := service.Create(context.Background(), userID, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := service.Create(context.Background(), userID, req)
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected validation error for duplicate name, got %v", err)
	}

	// The same name is fine for a different user.
	if _, err := service.Create(context.Background(), uuid.New(), req); err != nil {
		t.Errorf("expected per-user name scoping, got %v", err)
	}
}

func TestSavedSearchGet_OtherUsersSearchHidden(t *testing.T) {
	service := NewSavedSearchService(newMockSavedSearchRepository())

	search, err := service.Create(context.Background(), uuid.New(), dto.SavedSearchCreate{
		Name:    "Case Brasov",
		Filters: json.RawMessage(`{"city":"Brasov"}`),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = service.Get(context.Background(), search.ID, uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found for another user, got %v", err)
	}
}

func TestSavedSearchDelete(t *testing.T) {
	service := NewSavedSearchService(newMockSavedSearchRepository())
	userID := uuid.New()

	search, err := service.Create(context.Background(), userID, dto.SavedSearchCreate{
		Name:    "Chirii centru",
		Filters: json.RawMessage(`{"listing_type":"rent"}`),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	deleted, err := service.Delete(context.Background(), search.ID, userID)
	if err != nil || !deleted {
		t.Fatalf("expected deletion, got deleted=%v err=%v", deleted, err)
	}

	deleted, err = service.Delete(context.Background(), search.ID, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted {
		t.Error("expected false for an already-deleted search")
	}
}
