package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/victor-romero-martinez/api-agendapp/internal/auth"
	"github.com/victor-romero-martinez/api-agendapp/internal/constants"
	"github.com/victor-romero-martinez/api-agendapp/internal/logs"
	"github.com/victor-romero-martinez/api-agendapp/internal/models"
	"github.com/victor-romero-martinez/api-agendapp/internal/repository"
	"github.com/victor-romero-martinez/api-agendapp/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrEmailRequired  = invalid("Email is required.")
	ErrPasswordLength = invalid(fmt.Sprintf("Password must be between %d and %d characters.", constants.MinPasswordLength, constants.MaxPasswordLength))
	ErrUserNameLength = invalid("User name must be between 4 and 60 characters.")
)

const DefaultEmailTokenTTL = 24 * time.Hour

// UserService handles registration, authentication and profile changes.
type UserService struct {
	store         repository.Store
	hasher        auth.PasswordHasher
	tokens        *auth.TokenIssuer
	mailer        Mailer
	emailTokenTTL time.Duration
	verifyURL     string
}

// UserServiceOptions tunes the verification flow.
type UserServiceOptions struct {
	EmailTokenTTL time.Duration
	// VerifyURL is the absolute verify endpoint; the token is appended as ?token=.
	VerifyURL string
}

// NewUserService creates a new UserService
func NewUserService(store repository.Store, hasher auth.PasswordHasher, tokens *auth.TokenIssuer, mailer Mailer, opts UserServiceOptions) *UserService {
	if opts.EmailTokenTTL <= 0 {
		opts.EmailTokenTTL = DefaultEmailTokenTTL
	}
	if mailer == nil {
		mailer = NewLogMailer()
	}
	return &UserService{
		store:         store,
		hasher:        hasher,
		tokens:        tokens,
		mailer:        mailer,
		emailTokenTTL: opts.EmailTokenTTL,
		verifyURL:     opts.VerifyURL,
	}
}

// RegisterInput represents the required information to create an account.
type RegisterInput struct {
	Email    string
	Password string
}

// ProfilePatch holds the profile fields to change. Nil fields are left untouched.
type ProfilePatch struct {
	Email       *string
	UserName    *string
	URLImg      *string
	Password    *string
	NewPassword *string
}

// FindAll returns a page of users without their passwords.
func (s *UserService) FindAll(ctx context.Context, params utils.PaginationParams) ([]models.User, int64, error) {
	users, total, err := s.store.Users().List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// FindByEmail returns the user registered under email.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, ErrEmailRequired
	}

	user, err := s.store.Users().FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// Register creates an account, or reactivates a deactivated one when the
// password matches its stored digest.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	email := normalizeEmail(input.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}

	var (
		user         *models.User
		pendingToken string
	)

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		existing, err := tx.Users().FindByEmail(ctx, email)
		switch {
		case err == nil:
			if existing.Active || !s.hasher.Compare(input.Password, existing.Password) {
				return ErrUserExists
			}
			if err := tx.Users().Update(ctx, existing.ID, map[string]interface{}{"active": true}); err != nil {
				return fmt.Errorf("failed to reactivate user: %w", err)
			}
			user, err = tx.Users().FindByID(ctx, existing.ID)
			if err != nil {
				return fmt.Errorf("failed to reload user: %w", err)
			}
			return nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("failed to check email: %w", err)
		}

		digest, err := s.hasher.Hash(input.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		token, err := s.tokens.SignVerification(email, s.emailTokenTTL)
		if err != nil {
			return fmt.Errorf("failed to sign verification token: %w", err)
		}

		created := &models.User{
			Email:      email,
			Password:   digest,
			Role:       models.RoleUser,
			Active:     true,
			Verified:   false,
			TokenEmail: &token,
		}
		if err := tx.Users().Create(ctx, created); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrUserExists
			}
			return fmt.Errorf("failed to create user: %w", err)
		}

		user, err = tx.Users().FindByID(ctx, created.ID)
		if err != nil {
			return fmt.Errorf("failed to reload user: %w", err)
		}
		pendingToken = token
		return nil
	})
	if err != nil {
		return nil, err
	}

	if pendingToken != "" {
		s.sendVerification(ctx, user.Email, pendingToken)
	}

	return user, nil
}

// Authenticate verifies credentials of an active account.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.store.Users().FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !user.Active || !s.hasher.Compare(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// UpdateProfile applies patch to the account identified by identityEmail.
// A new email address is unverified until its verification link is followed.
func (s *UserService) UpdateProfile(ctx context.Context, patch ProfilePatch, identityEmail string) (*models.User, error) {
	if patch.UserName != nil {
		name := strings.TrimSpace(*patch.UserName)
		if n := utf8.RuneCountInString(name); n < 4 || n > 60 {
			return nil, ErrUserNameLength
		}
		patch.UserName = &name
	}
	if patch.URLImg != nil && *patch.URLImg != "" {
		if u, err := url.ParseRequestURI(*patch.URLImg); err != nil || u.Host == "" {
			return nil, invalid("url_img must be an absolute URL.")
		}
	}

	var (
		user         *models.User
		pendingToken string
	)
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		current, err := resolveRequester(ctx, tx, identityEmail)
		if err != nil {
			return err
		}

		fields := map[string]interface{}{}
		if patch.UserName != nil {
			fields["user_name"] = *patch.UserName
		}
		if patch.URLImg != nil {
			fields["url_img"] = *patch.URLImg
		}

		if patch.Email != nil {
			email := normalizeEmail(*patch.Email)
			if email == "" {
				return ErrEmailRequired
			}
			if email != current.Email {
				if _, err := tx.Users().FindByEmail(ctx, email); err == nil {
					return ErrEmailTaken
				} else if !errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("failed to check email: %w", err)
				}
				token, err := s.tokens.SignVerification(email, s.emailTokenTTL)
				if err != nil {
					return fmt.Errorf("failed to sign verification token: %w", err)
				}
				fields["email"] = email
				fields["verified"] = false
				fields["token_email"] = token
				pendingToken = token
			}
		}

		if patch.Password != nil && patch.NewPassword != nil {
			if !s.hasher.Compare(*patch.Password, current.Password) {
				return ErrIncorrectPassword
			}
			if err := validatePassword(*patch.NewPassword); err != nil {
				return err
			}
			digest, err := s.hasher.Hash(*patch.NewPassword)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}
			fields["password"] = digest
		}

		if err := tx.Users().Update(ctx, current.ID, fields); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEmailTaken
			}
			return fmt.Errorf("failed to update user: %w", err)
		}

		user, err = tx.Users().FindByID(ctx, current.ID)
		if err != nil {
			return fmt.Errorf("failed to reload user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if pendingToken != "" {
		s.sendVerification(ctx, user.Email, pendingToken)
	}

	return user, nil
}

// Deactivate soft-deletes account id. Only the account itself or an admin may do so.
func (s *UserService) Deactivate(ctx context.Context, id uint64, identityEmail string) (string, error) {
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		requester, err := resolveRequester(ctx, tx, identityEmail)
		if err != nil {
			return err
		}

		if requester.ID != id {
			if !requester.IsAdmin() {
				return ErrUnauthorized
			}
			target, err := tx.Users().FindByID(ctx, id)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrUserNotFound
				}
				return fmt.Errorf("failed to find user: %w", err)
			}
			if !target.Active {
				return ErrUserNotFound
			}
		}

		if err := tx.Users().Update(ctx, id, map[string]interface{}{"active": false}); err != nil {
			return fmt.Errorf("failed to deactivate user: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Disable successfully id: %d", id), nil
}

// VerifyEmail marks the account behind a pending verification token as verified.
func (s *UserService) VerifyEmail(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.VerifyVerification(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	var user *models.User
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		pending, err := tx.Users().FindByEmailToken(ctx, normalizeEmail(claims.Email), token)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to find user: %w", err)
		}

		if err := tx.Users().Update(ctx, pending.ID, map[string]interface{}{
			"verified":    true,
			"token_email": nil,
		}); err != nil {
			return fmt.Errorf("failed to verify user: %w", err)
		}

		user, err = tx.Users().FindByID(ctx, pending.ID)
		if err != nil {
			return fmt.Errorf("failed to reload user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// IssueSessionToken signs the session token for user.
func (s *UserService) IssueSessionToken(user *models.User) (string, error) {
	return s.tokens.Sign(ClaimsFor(user), 0)
}

// ClaimsFor builds the identity claims of user.
func ClaimsFor(user *models.User) auth.Claims {
	claims := auth.Claims{
		Email: user.Email,
		Role:  string(user.Role),
	}
	if user.UserName != nil {
		claims.UserName = *user.UserName
	}
	if user.URLImg != nil {
		claims.URLImg = *user.URLImg
	}
	return claims
}

func (s *UserService) sendVerification(ctx context.Context, email, token string) {
	link := s.verifyURL + "?token=" + url.QueryEscape(token)
	if err := s.mailer.SendVerification(ctx, email, link); err != nil {
		logs.Logger.WithError(err).WithField("email", email).Warn("failed to send verification email")
	}
}

func validatePassword(password string) error {
	if n := len(password); n < constants.MinPasswordLength || n > constants.MaxPasswordLength {
		return ErrPasswordLength
	}
	return nil
}
