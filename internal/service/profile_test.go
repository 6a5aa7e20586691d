package service_test

import (
	"context"
	"testing"

	"github.com/civicworks/volunteerhub/internal/domain"
	"github.com/civicworks/volunteerhub/internal/mocks"
	"github.com/civicworks/volunteerhub/internal/model"
	"github.com/civicworks/volunteerhub/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestCreateProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	user := &model.User{ID: userID, Email: "jordan@example.com"}

	t.Run("creates a profile with normalized tags and windows", func(t *testing.T) {
		profileRepo := mocks.NewMockProfileRepositoryIface(ctrl)
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)

		userRepo.EXPECT().FindByID(gomock.Any(), userID).Return(user, nil)
		profileRepo.EXPECT().FindByUserID(gomock.Any(), userID).Return(nil, domain.ErrProfileNotFound)
		profileRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		profileRepo.EXPECT().ReplaceAvailability(gomock.Any(), userID, gomock.Any()).Return(nil)

		svc := service.NewProfileService(profileRepo, userRepo)

		profile, err := svc.CreateProfile(context.Background(), userID, service.CreateProfileInput{
			DisplayName: "  Jordan  ",
			Phone:       "+1 555-123-4567",
			Skills:      []string{"First Aid"},
			Tags:        []string{" Outdoors ", "EXPERIENCE"},
			Availability: []service.AvailabilityWindowInput{
				{Weekday: 5, StartMinute: 540, EndMinute: 720},
			},
		})

		assert.NoError(t, err)
		assert.Equal(t, "Jordan", profile.DisplayName)
		assert.Equal(t, model.StringList{"outdoors", "experience"}, profile.Tags)
		assert.Len(t, profile.Availability, 1)
	})

	t.Run("rejects a malformed phone number", func(t *testing.T) {
		svc := service.NewProfileService(nil, nil)

		_, err := svc.CreateProfile(context.Background(), userID, service.CreateProfileInput{
			DisplayName: "Jordan",
			Phone:       "not-a-phone",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("rejects overlapping availability windows", func(t *testing.T) {
		svc := service.NewProfileService(nil, nil)

		_, err := svc.CreateProfile(context.Background(), userID, service.CreateProfileInput{
			DisplayName: "Jordan",
			Availability: []service.AvailabilityWindowInput{
				{Weekday: 5, StartMinute: 540, EndMinute: 720},
				{Weekday: 5, StartMinute: 700, EndMinute: 800},
			},
		})
		assert.ErrorIs(t, err, domain.ErrAvailabilityOverlap)
	})

	t.Run("rejects an inverted window", func(t *testing.T) {
		svc := service.NewProfileService(nil, nil)

		_, err := svc.CreateProfile(context.Background(), userID, service.CreateProfileInput{
			DisplayName: "Jordan",
			Availability: []service.AvailabilityWindowInput{
				{Weekday: 2, StartMinute: 720, EndMinute: 540},
			},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("refuses a second profile for the same user", func(t *testing.T) {
		profileRepo := mocks.NewMockProfileRepositoryIface(ctrl)
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)

		userRepo.EXPECT().FindByID(gomock.Any(), userID).Return(user, nil)
		profileRepo.EXPECT().FindByUserID(gomock.Any(), userID).
			Return(&model.Profile{UserID: userID}, nil)

		svc := service.NewProfileService(profileRepo, userRepo)

		_, err := svc.CreateProfile(context.Background(), userID, service.CreateProfileInput{
			DisplayName: "Jordan",
		})
		assert.ErrorIs(t, err, domain.ErrProfileAlreadyExists)
	})
}

func TestAddSkill(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	t.Run("appends a new skill", func(t *testing.T) {
		profileRepo := mocks.NewMockProfileRepositoryIface(ctrl)

		profile := &model.Profile{UserID: userID, Skills: model.StringList{"cooking"}}
		profileRepo.EXPECT().FindByUserID(gomock.Any(), userID).Return(profile, nil)
		profileRepo.EXPECT().Update(gomock.Any(), profile).Return(nil)

		svc := service.NewProfileService(profileRepo, nil)

		result, err := svc.AddSkill(context.Background(), userID, "First Aid")
		assert.NoError(t, err)
		assert.Equal(t, model.StringList{"cooking", "First Aid"}, result.Skills)
	})

	t.Run("duplicate skill is a no-op", func(t *testing.T) {
		profileRepo := mocks.NewMockProfileRepositoryIface(ctrl)

		profile := &model.Profile{UserID: userID, Skills: model.StringList{"cooking"}}
		profileRepo.EXPECT().FindByUserID(gomock.Any(), userID).Return(profile, nil)

		svc := service.NewProfileService(profileRepo, nil)

		result, err := svc.AddSkill(context.Background(), userID, "cooking")
		assert.NoError(t, err)
		assert.Equal(t, model.StringList{"cooking"}, result.Skills)
	})

	t.Run("rejects an empty skill", func(t *testing.T) {
		svc := service.NewProfileService(nil, nil)

		_, err := svc.AddSkill(context.Background(), userID, "   ")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestAddTag(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	t.Run("lowercases before comparing", func(t *testing.T) {
		profileRepo := mocks.NewMockProfileRepositoryIface(ctrl)

		profile := &model.Profile{UserID: userID, Tags: model.StringList{"outdoors"}}
		profileRepo.EXPECT().FindByUserID(gomock.Any(), userID).Return(profile, nil)

		svc := service.NewProfileService(profileRepo, nil)

		result, err := svc.AddTag(context.Background(), userID, "OUTDOORS")
		assert.NoError(t, err)
		assert.Equal(t, model.StringList{"outdoors"}, result.Tags)
	})
}

func TestAddAvailabilityWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	t.Run("rejects overlap on the same weekday", func(t *testing.T) {
		profileRepo := mocks.NewMockProfileRepositoryIface(ctrl)

		profileRepo.EXPECT().FindByUserID(gomock.Any(), userID).
			Return(&model.Profile{
				UserID: userID,
				Availability: []model.AvailabilityWindow{
					{UserID: userID, Weekday: 5, StartMinute: 540, EndMinute: 720},
				},
			}, nil)

		svc := service.NewProfileService(profileRepo, nil)

		_, err := svc.AddAvailabilityWindow(context.Background(), userID, service.AvailabilityWindowInput{
			Weekday: 5, StartMinute: 700, EndMinute: 800,
		})
		assert.ErrorIs(t, err, domain.ErrAvailabilityOverlap)
	})

	t.Run("allows the same times on another weekday", func(t *testing.T) {
		profileRepo := mocks.NewMockProfileRepositoryIface(ctrl)

		profileRepo.EXPECT().FindByUserID(gomock.Any(), userID).
			Return(&model.Profile{
				UserID: userID,
				Availability: []model.AvailabilityWindow{
					{UserID: userID, Weekday: 5, StartMinute: 540, EndMinute: 720},
				},
			}, nil)
		profileRepo.EXPECT().ReplaceAvailability(gomock.Any(), userID, gomock.Any()).Return(nil)

		svc := service.NewProfileService(profileRepo, nil)

		result, err := svc.AddAvailabilityWindow(context.Background(), userID, service.AvailabilityWindowInput{
			Weekday: 6, StartMinute: 540, EndMinute: 720,
		})
		assert.NoError(t, err)
		assert.Len(t, result.Availability, 2)
	})
}

func TestFindBySkills(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cookID := uuid.New()
	medicID := uuid.New()

	profileRepo := mocks.NewMockProfileRepositoryIface(ctrl)
	profileRepo.EXPECT().FindAll(gomock.Any()).Return([]*model.Profile{
		{UserID: cookID, Skills: model.StringList{"Cooking"}},
		{UserID: medicID, Skills: model.StringList{"first aid"}},
	}, nil)

	svc := service.NewProfileService(profileRepo, nil)

	matched, err := svc.FindBySkills(context.Background(), []string{"COOKING"})
	assert.NoError(t, err)
	assert.Len(t, matched, 1)
	assert.Equal(t, cookID, matched[0].UserID)
}

func TestFindAvailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	coveredID := uuid.New()
	partialID := uuid.New()

	profileRepo := mocks.NewMockProfileRepositoryIface(ctrl)
	profileRepo.EXPECT().FindAll(gomock.Any()).Return([]*model.Profile{
		{
			UserID: coveredID,
			Availability: []model.AvailabilityWindow{
				{Weekday: 5, StartMinute: 480, EndMinute: 780},
			},
		},
		{
			UserID: partialID,
			Availability: []model.AvailabilityWindow{
				{Weekday: 5, StartMinute: 600, EndMinute: 660},
			},
		},
	}, nil)

	svc := service.NewProfileService(profileRepo, nil)

	// The window must fully cover the requested span.
	matched, err := svc.FindAvailable(context.Background(), 5, 540, 720)
	assert.NoError(t, err)
	assert.Len(t, matched, 1)
	assert.Equal(t, coveredID, matched[0].UserID)
}
