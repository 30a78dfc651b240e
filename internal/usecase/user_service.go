package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/riskibarqy/predipto/internal/domain/user"
)

const maxDisplayNameLength = 50

type UserService struct {
	userRepo user.Repository
	now      func() time.Time
}

func NewUserService(userRepo user.Repository) *UserService {
	return &UserService{
		userRepo: userRepo,
		now:      time.Now,
	}
}

// Register creates the game profile of an authenticated principal. Calling it
// again for the same principal returns the stored profile unchanged.
func (s *UserService) Register(ctx context.Context, principal user.Principal, displayName string) (user.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.Register")
	defer span.End()

	userID := strings.TrimSpace(principal.UserID)
	if userID == "" {
		return user.Profile{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	existing, exists, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return user.Profile{}, fmt.Errorf("get user: %w", err)
	}
	if exists {
		return existing, nil
	}

	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = user.DefaultDisplayName(principal.Email)
	}
	if err := validateDisplayName(displayName); err != nil {
		return user.Profile{}, err
	}

	now := s.now().UTC()
	profile := user.Profile{
		UserID:      userID,
		Email:       strings.TrimSpace(principal.Email),
		DisplayName: displayName,
		TotalPoints: 0,
		IsAdmin:     false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := profile.Validate(); err != nil {
		return user.Profile{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.userRepo.Create(ctx, profile); err != nil {
		return user.Profile{}, fmt.Errorf("create user: %w", err)
	}

	return profile, nil
}

func (s *UserService) Get(ctx context.Context, userID string) (user.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.Get")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return user.Profile{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	profile, exists, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return user.Profile{}, fmt.Errorf("get user: %w", err)
	}
	if !exists {
		return user.Profile{}, fmt.Errorf("%w: user=%s", ErrNotFound, userID)
	}

	return profile, nil
}

func (s *UserService) UpdateDisplayName(ctx context.Context, userID, displayName string) (user.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.UpdateDisplayName")
	defer span.End()

	displayName = strings.TrimSpace(displayName)
	if err := validateDisplayName(displayName); err != nil {
		return user.Profile{}, err
	}

	profile, err := s.Get(ctx, userID)
	if err != nil {
		return user.Profile{}, err
	}
	if profile.DisplayName == displayName {
		return profile, nil
	}

	profile.DisplayName = displayName
	profile.UpdatedAt = s.now().UTC()
	if err := s.userRepo.Update(ctx, profile); err != nil {
		return user.Profile{}, fmt.Errorf("update user: %w", err)
	}

	return profile, nil
}

// IsAdmin reports false for unknown users.
func (s *UserService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	profile, exists, err := s.userRepo.Get(ctx, strings.TrimSpace(userID))
	if err != nil {
		return false, fmt.Errorf("get user: %w", err)
	}
	return exists && profile.IsAdmin, nil
}

func validateDisplayName(value string) error {
	if value == "" {
		return fmt.Errorf("%w: display name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(value) > maxDisplayNameLength {
		return fmt.Errorf("%w: display name must be at most %d characters", ErrInvalidInput, maxDisplayNameLength)
	}
	return nil
}
