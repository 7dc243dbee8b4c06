package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/victor-romero-martinez/api-agendapp/internal/models"
	"github.com/victor-romero-martinez/api-agendapp/internal/repository"
	"gorm.io/gorm"
)

// resolveRequester maps an identity email to its active user row.
func resolveRequester(ctx context.Context, store repository.Store, email string) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, ErrUserNotFound
	}

	user, err := store.Users().FindActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to resolve requester: %w", err)
	}
	return user, nil
}

// requireOwner checks that requesterID owns row id of owned before any mutation.
// It returns missing when the row does not exist and denied when someone else owns it.
func requireOwner(ctx context.Context, store repository.Store, owned repository.Owned, id, requesterID uint64, missing, denied error) error {
	ownerID, err := store.OwnerOf(ctx, owned, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return missing
		}
		return fmt.Errorf("failed to check ownership: %w", err)
	}
	if ownerID != requesterID {
		return denied
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
