// Package profile covers onboarding, preference updates, location updates
// and blocking.
package profile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shyapp/shy-backend/internal/domain"
	"github.com/shyapp/shy-backend/internal/repository"
)

// CreateRequest carries everything onboarding collects. The gin handler
// validates shape; semantic rules (age, counts) are enforced here.
type CreateRequest struct {
	UserID       uuid.UUID
	DisplayName  string
	BirthDate    time.Time
	Gender       domain.Gender
	Intention    domain.Intention
	Bio          *string
	Interests    []string
	Photos       []string
	GenderFilter []string
}

// UpdateRequest uses pointers so absent fields stay untouched.
type UpdateRequest struct {
	DisplayName    *string
	Intention      *domain.Intention
	Bio            *string
	Interests      []string
	Photos         []string
	SearchRadiusKm *int
	MinAgeFilter   *int
	MaxAgeFilter   *int
	GenderFilter   []string
}

type UseCase struct {
	profileRepo repository.ProfileRepository
	blockRepo   repository.BlockRepository
	log         *slog.Logger
	now         func() time.Time
}

func NewUseCase(profileRepo repository.ProfileRepository, blockRepo repository.BlockRepository, log *slog.Logger) *UseCase {
	return &UseCase{
		profileRepo: profileRepo,
		blockRepo:   blockRepo,
		log:         log,
		now:         time.Now,
	}
}

// Create finishes onboarding. The profile id is the authenticated user id,
// so a retried request hits the primary key and comes back as
// domain.ErrProfileExists instead of a second row.
func (uc *UseCase) Create(ctx context.Context, req CreateRequest) (*domain.Profile, error) {
	if err := uc.validateCreate(req); err != nil {
		return nil, err
	}

	p := &domain.Profile{
		ID:                   req.UserID,
		DisplayName:          req.DisplayName,
		BirthDate:            req.BirthDate,
		Gender:               req.Gender,
		Intention:            req.Intention,
		Bio:                  req.Bio,
		Interests:            req.Interests,
		Photos:               req.Photos,
		SearchRadiusKm:       domain.DefaultSearchRadiusKm,
		MinAgeFilter:         domain.MinAge,
		MaxAgeFilter:         domain.MaxAge,
		GenderFilter:         req.GenderFilter,
		IsOnboardingComplete: true,
	}
	if err := uc.profileRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	uc.log.Info("profile created", slog.String("user_id", p.ID.String()))
	return p, nil
}

func (uc *UseCase) validateCreate(req CreateRequest) error {
	if !req.Gender.Valid() {
		return domain.ErrInvalidGender
	}
	if !req.Intention.Valid() {
		return domain.ErrInvalidIntention
	}
	birth := domain.Profile{BirthDate: req.BirthDate}
	if birth.Age(uc.now()) < domain.MinAge {
		return domain.ErrUnderage
	}
	if len(req.Interests) > domain.MaxInterests {
		return domain.ErrTooManyInterests
	}
	if len(req.Photos) == 0 || len(req.Photos) > domain.MaxPhotos {
		return domain.ErrInvalidPhotoCount
	}
	return nil
}

func (uc *UseCase) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	return uc.profileRepo.GetByID(ctx, userID)
}

// Update applies the present fields and persists the whole profile. The
// search radius snaps onto the selectable ladder rather than rejecting
// off-ladder values.
func (uc *UseCase) Update(ctx context.Context, userID uuid.UUID, req UpdateRequest) (*domain.Profile, error) {
	p, err := uc.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	if req.DisplayName != nil {
		p.DisplayName = *req.DisplayName
	}
	if req.Intention != nil {
		if !req.Intention.Valid() {
			return nil, domain.ErrInvalidIntention
		}
		p.Intention = *req.Intention
	}
	if req.Bio != nil {
		p.Bio = req.Bio
	}
	if req.Interests != nil {
		if len(req.Interests) > domain.MaxInterests {
			return nil, domain.ErrTooManyInterests
		}
		p.Interests = req.Interests
	}
	if req.Photos != nil {
		if len(req.Photos) == 0 || len(req.Photos) > domain.MaxPhotos {
			return nil, domain.ErrInvalidPhotoCount
		}
		p.Photos = req.Photos
	}
	if req.SearchRadiusKm != nil {
		p.SearchRadiusKm = domain.SnapSearchRadius(*req.SearchRadiusKm)
	}
	if req.MinAgeFilter != nil {
		p.MinAgeFilter = max(*req.MinAgeFilter, domain.MinAge)
	}
	if req.MaxAgeFilter != nil {
		p.MaxAgeFilter = min(*req.MaxAgeFilter, domain.MaxAge)
	}
	if req.GenderFilter != nil {
		p.GenderFilter = req.GenderFilter
	}

	if err := uc.profileRepo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return p, nil
}

// UpdateLocation stores fresh coordinates, or clears them when the user
// disables location sharing.
func (uc *UseCase) UpdateLocation(ctx context.Context, userID uuid.UUID, enabled bool, lat, lng *float64) error {
	if enabled && (lat == nil || lng == nil) {
		return domain.ErrLocationUnavailable
	}
	if !enabled {
		lat, lng = nil, nil
	}
	if err := uc.profileRepo.UpdateLocation(ctx, userID, enabled, lat, lng); err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	return nil
}

// Block hides both users from each other and tears down any existing
// connection and conversation between them.
func (uc *UseCase) Block(ctx context.Context, blockerID, blockedID uuid.UUID) error {
	if blockerID == blockedID {
		return domain.ErrCannotReactSelf
	}
	if err := uc.blockRepo.Create(ctx, blockerID, blockedID); err != nil {
		return fmt.Errorf("block user: %w", err)
	}
	uc.log.Info("user blocked",
		slog.String("blocker_id", blockerID.String()),
		slog.String("blocked_id", blockedID.String()))
	return nil
}

func (uc *UseCase) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := uc.profileRepo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	uc.log.Info("profile deleted", slog.String("user_id", userID.String()))
	return nil
}
