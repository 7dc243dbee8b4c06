package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/victor-romero-martinez/api-agendapp/internal/models"
	"github.com/victor-romero-martinez/api-agendapp/internal/repository"
	"gorm.io/datatypes"
)

var (
	ErrOrganizationLength = invalid("Organization must be between 3 and 60 characters.")
	ErrMembersRequired    = invalid("At least one member id is required.")
	ErrInvalidMemberID    = invalid("Member ids must be positive.")
	ErrInvalidTeamAction  = invalid("Action must be add or remove.")
)

// TeamService handles team business logic
type TeamService struct {
	store repository.Store
}

// NewTeamService creates a new TeamService
func NewTeamService(store repository.Store) *TeamService {
	return &TeamService{store: store}
}

// CreateTeamInput represents input for creating a team
type CreateTeamInput struct {
	Organization string
	Members      []uint64
}

// UpdateTeamInput represents a membership change
type UpdateTeamInput struct {
	ID      uint64
	Members []uint64
	Action  models.TeamAction
}

// Get returns the teams created by the requester
func (s *TeamService) Get(ctx context.Context, email string) ([]models.Team, error) {
	author, err := resolveRequester(ctx, s.store, email)
	if err != nil {
		return nil, err
	}

	teams, err := s.store.Teams().ListByAuthor(ctx, author.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

// Create creates a team whose members are all active users
func (s *TeamService) Create(ctx context.Context, input CreateTeamInput, email string) (*models.Team, error) {
	organization := strings.TrimSpace(input.Organization)
	if n := utf8.RuneCountInString(organization); n < 3 || n > 60 {
		return nil, ErrOrganizationLength
	}
	members, err := validateMemberIDs(input.Members)
	if err != nil {
		return nil, err
	}

	var team *models.Team
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		author, err := resolveRequester(ctx, tx, email)
		if err != nil {
			return err
		}
		if err := requireActiveUsers(ctx, tx, members); err != nil {
			return err
		}

		created := &models.Team{
			AuthorID:     author.ID,
			Organization: organization,
			Members:      datatypes.NewJSONSlice(members),
		}
		if err := tx.Teams().Create(ctx, created); err != nil {
			return fmt.Errorf("failed to create team: %w", err)
		}

		team, err = tx.Teams().FindByID(ctx, created.ID)
		if err != nil {
			return fmt.Errorf("failed to reload team: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return team, nil
}

// Update adds members to or removes members from a team created by the requester
func (s *TeamService) Update(ctx context.Context, input UpdateTeamInput, email string) (*models.Team, error) {
	if input.Action != models.TeamActionAdd && input.Action != models.TeamActionRemove {
		return nil, ErrInvalidTeamAction
	}
	given, err := validateMemberIDs(input.Members)
	if err != nil {
		return nil, err
	}

	var team *models.Team
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		author, err := resolveRequester(ctx, tx, email)
		if err != nil {
			return err
		}
		if err := requireOwner(ctx, tx, repository.TeamAuthor, input.ID, author.ID, ErrTeamNotFound, ErrUnauthorized); err != nil {
			return err
		}

		existing, err := tx.Teams().FindByID(ctx, input.ID)
		if err != nil {
			return fmt.Errorf("failed to find team: %w", err)
		}
		current := existing.MemberIDs()

		var members []uint64
		switch input.Action {
		case models.TeamActionAdd:
			if err := requireActiveUsers(ctx, tx, subtractMembers(given, current)); err != nil {
				return err
			}
			members = unionMembers(current, given)
		case models.TeamActionRemove:
			members = subtractMembers(current, given)
		}

		if err := tx.Teams().SetMembers(ctx, existing.ID, members); err != nil {
			return fmt.Errorf("failed to update team members: %w", err)
		}

		team, err = tx.Teams().FindByID(ctx, existing.ID)
		if err != nil {
			return fmt.Errorf("failed to reload team: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return team, nil
}

// Delete removes a team created by the requester
func (s *TeamService) Delete(ctx context.Context, id uint64, email string) (string, error) {
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		author, err := resolveRequester(ctx, tx, email)
		if err != nil {
			return err
		}
		if err := requireOwner(ctx, tx, repository.TeamAuthor, id, author.ID, ErrTeamNotFound, ErrUnauthorized); err != nil {
			return err
		}

		if err := tx.Teams().Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete team: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Deleted successfully team %d.", id), nil
}

// requireActiveUsers fails unless every id names an active user.
func requireActiveUsers(ctx context.Context, store repository.Store, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}

	count, err := store.Users().CountActiveByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to check members: %w", err)
	}
	if count != int64(len(ids)) {
		return ErrTeamMembersNotFound
	}
	return nil
}

// validateMemberIDs rejects empty lists and zero ids, and drops duplicates.
func validateMemberIDs(ids []uint64) ([]uint64, error) {
	if len(ids) == 0 {
		return nil, ErrMembersRequired
	}
	for _, id := range ids {
		if id == 0 {
			return nil, ErrInvalidMemberID
		}
	}
	return distinctMembers(ids), nil
}

// distinctMembers keeps the first occurrence of every id.
func distinctMembers(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// unionMembers returns existing followed by the ids of added not yet present.
func unionMembers(existing, added []uint64) []uint64 {
	combined := make([]uint64, 0, len(existing)+len(added))
	combined = append(combined, existing...)
	combined = append(combined, added...)
	return distinctMembers(combined)
}

// subtractMembers returns the ids of existing that are not in removed.
func subtractMembers(existing, removed []uint64) []uint64 {
	drop := make(map[uint64]struct{}, len(removed))
	for _, id := range removed {
		drop[id] = struct{}{}
	}
	out := make([]uint64, 0, len(existing))
	for _, id := range existing {
		if _, ok := drop[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
