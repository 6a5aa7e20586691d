// internal/service/profile.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/civicworks/volunteerhub/internal/domain"
	"github.com/civicworks/volunteerhub/internal/model"
	"github.com/civicworks/volunteerhub/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	maxSkills = 50
	maxTags   = 20
)

var phonePattern = regexp.MustCompile(`^[+]?[\d\s\-()]{10,20}$`)

type ProfileService struct {
	repo     repository.ProfileRepositoryIface
	userRepo repository.UserRepositoryIface
	validate *validator.Validate
}

func NewProfileService(repo repository.ProfileRepositoryIface, userRepo repository.UserRepositoryIface) *ProfileService {
	return &ProfileService{
		repo:     repo,
		userRepo: userRepo,
		validate: validator.New(),
	}
}

// AvailabilityWindowInput is one weekly slot, times in minutes since
// midnight.
type AvailabilityWindowInput struct {
	Weekday     int `json:"weekday" validate:"min=0,max=6"`
	StartMinute int `json:"start_minute" validate:"min=0,max=1439"`
	EndMinute   int `json:"end_minute" validate:"min=1,max=1440"`
}

type CreateProfileInput struct {
	DisplayName  string                    `json:"display_name" validate:"required,max=100"`
	Phone        string                    `json:"phone" validate:"omitempty,max=20"`
	Skills       []string                  `json:"skills" validate:"max=50"`
	Tags         []string                  `json:"tags" validate:"max=20"`
	Availability []AvailabilityWindowInput `json:"availability" validate:"dive"`
}

func (s *ProfileService) CreateProfile(ctx context.Context, userID uuid.UUID, input CreateProfileInput) (*model.Profile, error) {
	input.DisplayName = strings.TrimSpace(input.DisplayName)
	input.Phone = strings.TrimSpace(input.Phone)
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}
	if input.Phone != "" && !phonePattern.MatchString(input.Phone) {
		return nil, fmt.Errorf("%w: phone number format is invalid", domain.ErrInvalidInput)
	}

	windows, err := buildWindows(input.Availability)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByUserID(ctx, userID); err == nil {
		return nil, domain.ErrProfileAlreadyExists
	} else if !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, err
	}

	profile := &model.Profile{
		UserID:      userID,
		DisplayName: input.DisplayName,
		Phone:       input.Phone,
		Skills:      model.StringList(input.Skills),
		Tags:        normalizeTags(input.Tags),
	}
	if err := s.repo.Create(ctx, profile); err != nil {
		return nil, err
	}
	if len(windows) > 0 {
		if err := s.repo.ReplaceAvailability(ctx, userID, windows); err != nil {
			return nil, err
		}
		profile.Availability = windows
	}

	slog.Info("created profile", "user_id", userID, "display_name", profile.DisplayName)
	return profile, nil
}

type UpdateProfileInput struct {
	DisplayName  *string                    `json:"display_name" validate:"omitempty,max=100"`
	Phone        *string                    `json:"phone" validate:"omitempty,max=20"`
	Skills       []string                   `json:"skills" validate:"omitempty,max=50"`
	Tags         []string                   `json:"tags" validate:"omitempty,max=20"`
	Availability *[]AvailabilityWindowInput `json:"availability" validate:"omitempty,dive"`
}

func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*model.Profile, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		name := strings.TrimSpace(*input.DisplayName)
		if name == "" {
			return nil, fmt.Errorf("%w: display name cannot be empty", domain.ErrInvalidInput)
		}
		profile.DisplayName = name
	}
	if input.Phone != nil {
		phone := strings.TrimSpace(*input.Phone)
		if phone != "" && !phonePattern.MatchString(phone) {
			return nil, fmt.Errorf("%w: phone number format is invalid", domain.ErrInvalidInput)
		}
		profile.Phone = phone
	}
	if input.Skills != nil {
		profile.Skills = model.StringList(input.Skills)
	}
	if input.Tags != nil {
		profile.Tags = normalizeTags(input.Tags)
	}

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, err
	}

	if input.Availability != nil {
		windows, err := buildWindows(*input.Availability)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceAvailability(ctx, userID, windows); err != nil {
			return nil, err
		}
		profile.Availability = windows
	}

	return profile, nil
}

func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	return s.repo.FindByUserID(ctx, userID)
}

func (s *ProfileService) ListProfiles(ctx context.Context) ([]*model.Profile, error) {
	return s.repo.FindAll(ctx)
}

func (s *ProfileService) DeleteProfile(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.repo.FindByUserID(ctx, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, userID)
}

// AddSkill appends a skill, treating duplicates as a no-op.
func (s *ProfileService) AddSkill(ctx context.Context, userID uuid.UUID, skill string) (*model.Profile, error) {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return nil, fmt.Errorf("%w: skill cannot be empty", domain.ErrInvalidInput)
	}

	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, existing := range profile.Skills {
		if existing == skill {
			return profile, nil
		}
	}
	if len(profile.Skills) >= maxSkills {
		return nil, fmt.Errorf("%w: cannot have more than %d skills", domain.ErrInvalidInput, maxSkills)
	}

	profile.Skills = append(profile.Skills, skill)
	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) RemoveSkill(ctx context.Context, userID uuid.UUID, skill string) (*model.Profile, error) {
	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := profile.Skills[:0]
	for _, existing := range profile.Skills {
		if existing != skill {
			kept = append(kept, existing)
		}
	}
	profile.Skills = kept

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// AddTag appends a lowercased tag, treating duplicates as a no-op.
func (s *ProfileService) AddTag(ctx context.Context, userID uuid.UUID, tag string) (*model.Profile, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return nil, fmt.Errorf("%w: tag cannot be empty", domain.ErrInvalidInput)
	}

	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, existing := range profile.Tags {
		if existing == tag {
			return profile, nil
		}
	}
	if len(profile.Tags) >= maxTags {
		return nil, fmt.Errorf("%w: cannot have more than %d tags", domain.ErrInvalidInput, maxTags)
	}

	profile.Tags = append(profile.Tags, tag)
	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) RemoveTag(ctx context.Context, userID uuid.UUID, tag string) (*model.Profile, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))

	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := profile.Tags[:0]
	for _, existing := range profile.Tags {
		if existing != tag {
			kept = append(kept, existing)
		}
	}
	profile.Tags = kept

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// AddAvailabilityWindow appends one window, rejecting overlap with an
// existing window on the same weekday.
func (s *ProfileService) AddAvailabilityWindow(ctx context.Context, userID uuid.UUID, input AvailabilityWindowInput) (*model.Profile, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}
	if input.StartMinute >= input.EndMinute {
		return nil, fmt.Errorf("%w: availability window must start before it ends", domain.ErrInvalidInput)
	}

	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	window := model.AvailabilityWindow{
		UserID:      userID,
		Weekday:     input.Weekday,
		StartMinute: input.StartMinute,
		EndMinute:   input.EndMinute,
	}
	for _, existing := range profile.Availability {
		if existing.Overlaps(window) {
			return nil, domain.ErrAvailabilityOverlap
		}
	}

	windows := append(profile.Availability, window)
	if err := s.repo.ReplaceAvailability(ctx, userID, windows); err != nil {
		return nil, err
	}
	profile.Availability = windows
	return profile, nil
}

func (s *ProfileService) RemoveAvailabilityWindow(ctx context.Context, userID uuid.UUID, input AvailabilityWindowInput) (*model.Profile, error) {
	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := make([]model.AvailabilityWindow, 0, len(profile.Availability))
	for _, existing := range profile.Availability {
		if existing.Weekday == input.Weekday &&
			existing.StartMinute == input.StartMinute &&
			existing.EndMinute == input.EndMinute {
			continue
		}
		kept = append(kept, existing)
	}

	if err := s.repo.ReplaceAvailability(ctx, userID, kept); err != nil {
		return nil, err
	}
	profile.Availability = kept
	return profile, nil
}

// FindBySkills returns profiles holding any of the given skills,
// compared case-insensitively.
func (s *ProfileService) FindBySkills(ctx context.Context, skills []string) ([]*model.Profile, error) {
	profiles, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]struct{}, len(skills))
	for _, skill := range skills {
		wanted[strings.ToLower(skill)] = struct{}{}
	}

	var matched []*model.Profile
	for _, profile := range profiles {
		for _, skill := range profile.Skills {
			if _, ok := wanted[strings.ToLower(skill)]; ok {
				matched = append(matched, profile)
				break
			}
		}
	}
	return matched, nil
}

// FindByTags returns profiles holding any of the given tags.
func (s *ProfileService) FindByTags(ctx context.Context, tags []string) ([]*model.Profile, error) {
	profiles, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		wanted[strings.ToLower(tag)] = struct{}{}
	}

	var matched []*model.Profile
	for _, profile := range profiles {
		for _, tag := range profile.Tags {
			if _, ok := wanted[strings.ToLower(tag)]; ok {
				matched = append(matched, profile)
				break
			}
		}
	}
	return matched, nil
}

// FindAvailable returns profiles whose availability fully covers the
// given window.
func (s *ProfileService) FindAvailable(ctx context.Context, weekday, startMinute, endMinute int) ([]*model.Profile, error) {
	profiles, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var matched []*model.Profile
	for _, profile := range profiles {
		for _, window := range profile.Availability {
			if window.Weekday == weekday &&
				window.StartMinute <= startMinute &&
				window.EndMinute >= endMinute {
				matched = append(matched, profile)
				break
			}
		}
	}
	return matched, nil
}

func buildWindows(inputs []AvailabilityWindowInput) ([]model.AvailabilityWindow, error) {
	windows := make([]model.AvailabilityWindow, 0, len(inputs))
	for _, in := range inputs {
		if in.Weekday < 0 || in.Weekday > 6 {
			return nil, fmt.Errorf("%w: weekday must be between 0 and 6", domain.ErrInvalidInput)
		}
		if in.StartMinute >= in.EndMinute {
			return nil, fmt.Errorf("%w: availability window must start before it ends", domain.ErrInvalidInput)
		}
		window := model.AvailabilityWindow{
			Weekday:     in.Weekday,
			StartMinute: in.StartMinute,
			EndMinute:   in.EndMinute,
		}
		for _, existing := range windows {
			if existing.Overlaps(window) {
				return nil, domain.ErrAvailabilityOverlap
			}
		}
		windows = append(windows, window)
	}
	return windows, nil
}

func normalizeTags(tags []string) model.StringList {
	out := make(model.StringList, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		out = append(out, tag)
	}
	return out
}
