package waitlist

import (
	"context"
	"testing"
	"time"

	"github.com/oneapp-labs/waitlist-api/internal/log"
	"github.com/oneapp-labs/waitlist-api/internal/models"
	apperrors "github.com/oneapp-labs/waitlist-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func notFoundErr() error {
	return apperrors.NewNotFoundError("entrant not found", nil)
}

func TestWaitlistService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockWaitlistRepository(ctrl)
	logger := log.NewLoggerWithJSONOutput()
	service := NewWaitlistService(logger, mockRepo, nil)

	t.Run("successful registration", func(t *testing.T) {
		req := &JoinWaitlistRequest{
			Name:  "Jane Doe",
			Email: "jane@example.com",
		}

		mockRepo.EXPECT().
			FindByEmail(gomock.Any(), "jane@example.com").
			Return(nil, notFoundErr())

		mockRepo.EXPECT().
			RegisterEntrant(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, entrant *models.WaitlistEntrant) (*models.WaitlistEntrant, error) {
				assert.Regexp(t, `^ONE[A-Z0-9]{6}$`, entrant.ReferralCode)
				entrant.WaitlistPosition = 1
				entrant.EarlyAccess = true
				entrant.CreatedAt = time.Now()
				return entrant, nil
			})

		result, err := service.Register(context.Background(), req, SignupMetadata{})

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Equal(t, int64(1), result.WaitlistPosition)
		assert.True(t, result.EarlyAccess)
		assert.Regexp(t, `^ONE[A-Z0-9]{6}$`, result.ReferralCode)
	})

	t.Run("email is normalized before lookup", func(t *testing.T) {
		req := &JoinWaitlistRequest{
			Name:  "Jane Doe",
			Email: "  Jane@Example.COM ",
		}

		mockRepo.EXPECT().
			FindByEmail(gomock.Any(), "jane@example.com").
			Return(nil, notFoundErr())

		mockRepo.EXPECT().
			RegisterEntrant(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, entrant *models.WaitlistEntrant) (*models.WaitlistEntrant, error) {
				assert.Equal(t, "jane@example.com", entrant.Email)
				entrant.WaitlistPosition = 2
				return entrant, nil
			})

		result, err := service.Register(context.Background(), req, SignupMetadata{})

		assert.NoError(t, err)
		assert.Equal(t, "jane@example.com", result.Email)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		req := &JoinWaitlistRequest{
			Name:  "Jane Doe",
			Email: "jane@example.com",
		}

		mockRepo.EXPECT().
			FindByEmail(gomock.Any(), "jane@example.com").
			Return(&models.WaitlistEntrant{Email: "jane@example.com"}, nil)

		result, err := service.Register(context.Background(), req, SignupMetadata{})

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, apperrors.ErrorTypeDuplicateEmail, apperrors.GetErrorType(err))
		assert.Equal(t, 400, apperrors.HTTPStatusCode(err))
	})

	t.Run("unknown referral code rejected before any insert", func(t *testing.T) {
		req := &JoinWaitlistRequest{
			Name:         "Jane Doe",
			Email:        "jane2@example.com",
			ReferralCode: "ONEAAAAAA",
		}

		mockRepo.EXPECT().
			FindByEmail(gomock.Any(), "jane2@example.com").
			Return(nil, notFoundErr())

		mockRepo.EXPECT().
			FindByReferralCode(gomock.Any(), "ONEAAAAAA").
			Return(nil, NewReferralCodeNotFoundError())

		result, err := service.Register(context.Background(), req, SignupMetadata{})

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, apperrors.ErrorTypeInvalidReferralCode, apperrors.GetErrorType(err))
	})

	t.Run("referral code collision retried with fresh code", func(t *testing.T) {
		req := &JoinWaitlistRequest{
			Name:  "Jane Doe",
			Email: "jane3@example.com",
		}

		mockRepo.EXPECT().
			FindByEmail(gomock.Any(), "jane3@example.com").
			Return(nil, notFoundErr())

		var firstCode string
		mockRepo.EXPECT().
			RegisterEntrant(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, entrant *models.WaitlistEntrant) (*models.WaitlistEntrant, error) {
				firstCode = entrant.ReferralCode
				return nil, newReferralCodeConflictError(nil)
			})
		mockRepo.EXPECT().
			RegisterEntrant(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, entrant *models.WaitlistEntrant) (*models.WaitlistEntrant, error) {
				assert.NotEqual(t, firstCode, entrant.ReferralCode)
				entrant.WaitlistPosition = 7
				return entrant, nil
			})

		result, err := service.Register(context.Background(), req, SignupMetadata{})

		assert.NoError(t, err)
		assert.Equal(t, int64(7), result.WaitlistPosition)
	})

	t.Run("persistent collisions exhaust the attempt budget", func(t *testing.T) {
		req := &JoinWaitlistRequest{
			Name:  "Jane Doe",
			Email: "jane4@example.com",
		}

		mockRepo.EXPECT().
			FindByEmail(gomock.Any(), "jane4@example.com").
			Return(nil, notFoundErr())

		mockRepo.EXPECT().
			RegisterEntrant(gomock.Any(), gomock.Any()).
			Return(nil, newReferralCodeConflictError(nil)).
			Times(maxRegisterAttempts)

		result, err := service.Register(context.Background(), req, SignupMetadata{})

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, apperrors.ErrorTypeReferralCodeExhausted, apperrors.GetErrorType(err))
		assert.Equal(t, 500, apperrors.HTTPStatusCode(err))
	})

	t.Run("duplicate email from storage is not retried", func(t *testing.T) {
		req := &JoinWaitlistRequest{
			Name:  "Jane Doe",
			Email: "jane5@example.com",
		}

		mockRepo.EXPECT().
			FindByEmail(gomock.Any(), "jane5@example.com").
			Return(nil, notFoundErr())

		mockRepo.EXPECT().
			RegisterEntrant(gomock.Any(), gomock.Any()).
			Return(nil, NewDuplicateEmailError()).
			Times(1)

		result, err := service.Register(context.Background(), req, SignupMetadata{})

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, apperrors.ErrorTypeDuplicateEmail, apperrors.GetErrorType(err))
	})
}

func TestWaitlistService_GetStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockWaitlistRepository(ctrl)
	logger := log.NewLoggerWithJSONOutput()
	service := NewWaitlistService(logger, mockRepo, nil)

	t.Run("aggregates counts and breakdown", func(t *testing.T) {
		mockRepo.EXPECT().CountEntrants(gomock.Any()).Return(int64(1200), nil)
		mockRepo.EXPECT().CountEarlyAccess(gomock.Any()).Return(int64(1000), nil)
		mockRepo.EXPECT().InterestBreakdown(gomock.Any()).Return(map[string]int64{
			models.InterestShopping: 700,
			models.InterestFood:     300,
			models.InterestAll:      200,
		}, nil)

		stats, err := service.GetStats(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, int64(1200), stats.TotalUsers)
		assert.Equal(t, int64(1000), stats.EarlyAccessUsers)
		assert.Equal(t, int64(0), stats.EarlyAccessSpotsLeft)
		assert.Equal(t, int64(700), stats.InterestStats[models.InterestShopping])
	})

	t.Run("spots left never negative", func(t *testing.T) {
		mockRepo.EXPECT().CountEntrants(gomock.Any()).Return(int64(1500), nil)
		mockRepo.EXPECT().CountEarlyAccess(gomock.Any()).Return(int64(1001), nil)
		mockRepo.EXPECT().InterestBreakdown(gomock.Any()).Return(map[string]int64{}, nil)

		stats, err := service.GetStats(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, int64(0), stats.EarlyAccessSpotsLeft)
	})

	t.Run("repository error surfaces", func(t *testing.T) {
		mockRepo.EXPECT().CountEntrants(gomock.Any()).Return(int64(0), apperrors.NewDatabaseError("database error", nil))

		stats, err := service.GetStats(context.Background())

		assert.Error(t, err)
		assert.Nil(t, stats)
	})
}

func TestWaitlistService_GetReferralStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockWaitlistRepository(ctrl)
	logger := log.NewLoggerWithJSONOutput()
	service := NewWaitlistService(logger, mockRepo, nil)

	referrer := &models.WaitlistEntrant{
		Name:         "Jane Doe",
		ReferralCode: "ONEABC123",
	}

	t.Run("eligible at the reward threshold", func(t *testing.T) {
		mockRepo.EXPECT().FindByReferralCode(gomock.Any(), "ONEABC123").Return(referrer, nil)
		mockRepo.EXPECT().CountReferrals(gomock.Any(), "ONEABC123").Return(int64(5), nil)

		stats, err := service.GetReferralStats(context.Background(), "ONEABC123")

		assert.NoError(t, err)
		assert.Equal(t, "Jane Doe", stats.ReferrerName)
		assert.Equal(t, int64(5), stats.ReferralCount)
		assert.True(t, stats.RewardsEligible)
	})

	t.Run("not eligible below the reward threshold", func(t *testing.T) {
		mockRepo.EXPECT().FindByReferralCode(gomock.Any(), "ONEABC123").Return(referrer, nil)
		mockRepo.EXPECT().CountReferrals(gomock.Any(), "ONEABC123").Return(int64(4), nil)

		stats, err := service.GetReferralStats(context.Background(), "ONEABC123")

		assert.NoError(t, err)
		assert.False(t, stats.RewardsEligible)
	})

	t.Run("unknown code returns not found", func(t *testing.T) {
		mockRepo.EXPECT().FindByReferralCode(gomock.Any(), "ONEZZZZZZ").Return(nil, NewReferralCodeNotFoundError())

		stats, err := service.GetReferralStats(context.Background(), "ONEZZZZZZ")

		assert.Error(t, err)
		assert.Nil(t, stats)
		assert.Equal(t, 404, apperrors.HTTPStatusCode(err))
	})

	t.Run("blank code returns not found without a lookup", func(t *testing.T) {
		stats, err := service.GetReferralStats(context.Background(), "   ")

		assert.Error(t, err)
		assert.Nil(t, stats)
		assert.Equal(t, 404, apperrors.HTTPStatusCode(err))
	})
}

func TestWaitlistService_ListEntrants(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockWaitlistRepository(ctrl)
	logger := log.NewLoggerWithJSONOutput()
	service := NewWaitlistService(logger, mockRepo, nil)

	t.Run("pagination math", func(t *testing.T) {
		entrants := []*models.WaitlistEntrant{
			{Name: "A", WaitlistPosition: 101},
			{Name: "B", WaitlistPosition: 100},
		}

		mockRepo.EXPECT().ListEntrants(gomock.Any(), 3, 50).Return(entrants, int64(101), nil)

		result, err := service.ListEntrants(context.Background(), 3, 50)

		assert.NoError(t, err)
		assert.Len(t, result.Users, 2)
		assert.Equal(t, 3, result.Pagination.Current)
		assert.Equal(t, int64(3), result.Pagination.Pages)
		assert.Equal(t, int64(101), result.Pagination.Total)
	})

	t.Run("defaults applied for out-of-range input", func(t *testing.T) {
		mockRepo.EXPECT().ListEntrants(gomock.Any(), 1, 50).Return(nil, int64(0), nil)

		result, err := service.ListEntrants(context.Background(), 0, -5)

		assert.NoError(t, err)
		assert.Empty(t, result.Users)
		assert.Equal(t, int64(0), result.Pagination.Pages)
	})

	t.Run("limit capped at the maximum page size", func(t *testing.T) {
		mockRepo.EXPECT().ListEntrants(gomock.Any(), 1, 100).Return(nil, int64(0), nil)

		_, err := service.ListEntrants(context.Background(), 1, 5000)

		assert.NoError(t, err)
	})
}
