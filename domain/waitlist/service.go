package waitlist

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/oneapp-labs/waitlist-api/internal/log"
	"github.com/oneapp-labs/waitlist-api/internal/models"
	"github.com/oneapp-labs/waitlist-api/pkg/circuitbreaker"
	"github.com/oneapp-labs/waitlist-api/pkg/constants"
	apperrors "github.com/oneapp-labs/waitlist-api/pkg/errors"
	"github.com/oneapp-labs/waitlist-api/pkg/retry"
)

const (
	statsCacheKey = "waitlist:stats"
	statsCacheTTL = 30 * time.Second
)

// StatsCache is the subset of the application cache the service needs. A nil
// cache disables caching entirely.
type StatsCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

type WaitlistService interface {
	// Register validates business rules, assigns a waitlist position and a
	// unique referral code, and persists the entrant.
	Register(ctx context.Context, req *JoinWaitlistRequest, meta SignupMetadata) (*EntrantSummaryResponse, error)

	// GetStats returns aggregate waitlist statistics.
	GetStats(ctx context.Context) (*WaitlistStatsResponse, error)

	// GetReferralStats returns referral counts and rewards eligibility for a code.
	GetReferralStats(ctx context.Context, code string) (*ReferralStatsResponse, error)

	// ListEntrants returns a page of entrants, newest first.
	ListEntrants(ctx context.Context, page, limit int) (*EntrantListResponse, error)
}

type waitlistService struct {
	logger     *log.Logger
	repository WaitlistRepository
	cache      StatsCache
	breaker    circuitbreaker.CircuitBreaker
}

// NewWaitlistService accepts a nil cache; stats are then always computed from
// storage. The circuit breaker keeps a flapping cache from adding latency to
// every stats read.
func NewWaitlistService(logger *log.Logger, repository WaitlistRepository, cache StatsCache) WaitlistService {
	return &waitlistService{
		logger:     logger,
		repository: repository,
		cache:      cache,
		breaker:    circuitbreaker.NewCircuitBreaker(nil),
	}
}

func (s *waitlistService) Register(ctx context.Context, req *JoinWaitlistRequest, meta SignupMetadata) (*EntrantSummaryResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if req == nil {
		logger.Error("Register received empty request")
		return nil, apperrors.NewInvalidRequestError("request cannot be nil", nil)
	}

	// Emails are unique case-insensitively; normalize before any lookup so the
	// unique index on the lowercase form is authoritative.
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.repository.FindByEmail(ctx, req.Email); err == nil {
		return nil, NewDuplicateEmailError()
	} else if apperrors.GetErrorType(err) != apperrors.ErrorTypeNotFound {
		logger.Error("Failed to check email uniqueness", "error", err)
		return nil, err
	}

	if req.ReferralCode != "" {
		if _, err := s.repository.FindByReferralCode(ctx, req.ReferralCode); err != nil {
			if apperrors.GetErrorType(err) == apperrors.ErrorTypeNotFound {
				return nil, NewInvalidReferralCodeError()
			}
			logger.Error("Failed to resolve referral code", "code", req.ReferralCode, "error", err)
			return nil, err
		}
	}

	entrant := ToEntrantModel(req, meta)

	// Generate a fresh candidate code per attempt; the storage uniqueness
	// constraint decides collisions, we only retry.
	policy := retry.NewFixedDelay(&retry.Config{
		MaxAttempts: maxRegisterAttempts,
		RetryIf:     isRetryableRegisterError,
	})

	var created *models.WaitlistEntrant
	err := policy.Execute(func() error {
		entrant.ReferralCode = NewReferralCode()
		registered, err := s.repository.RegisterEntrant(ctx, entrant)
		if err != nil {
			return err
		}
		created = registered
		return nil
	})

	if err != nil {
		if retry.IsMaxRetriesExceeded(err) {
			logger.Error("Referral code space exhausted", "attempts", maxRegisterAttempts, "error", err)
			return nil, NewReferralCodeExhaustedError(err)
		}
		logger.Error("Failed to register entrant", "error", err)
		return nil, err
	}

	logger.Info("Entrant registered",
		"position", created.WaitlistPosition,
		"early_access", created.EarlyAccess,
		"interest", created.Interest,
	)

	response := ToEntrantSummaryResponse(created)
	return &response, nil
}

func (s *waitlistService) GetStats(ctx context.Context) (*WaitlistStatsResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if cached := s.readCachedStats(ctx); cached != nil {
		return cached, nil
	}

	total, err := s.repository.CountEntrants(ctx)
	if err != nil {
		logger.Error("Failed to count entrants", "error", err)
		return nil, err
	}

	earlyAccess, err := s.repository.CountEarlyAccess(ctx)
	if err != nil {
		logger.Error("Failed to count early access entrants", "error", err)
		return nil, err
	}

	breakdown, err := s.repository.InterestBreakdown(ctx)
	if err != nil {
		logger.Error("Failed to compute interest breakdown", "error", err)
		return nil, err
	}

	spotsLeft := int64(models.EarlyAccessSpots) - earlyAccess
	if spotsLeft < 0 {
		spotsLeft = 0
	}

	stats := &WaitlistStatsResponse{
		TotalUsers:           total,
		EarlyAccessUsers:     earlyAccess,
		EarlyAccessSpotsLeft: spotsLeft,
		InterestStats:        breakdown,
	}

	s.writeCachedStats(ctx, stats)

	return stats, nil
}

func (s *waitlistService) GetReferralStats(ctx context.Context, code string) (*ReferralStatsResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if strings.TrimSpace(code) == "" {
		return nil, NewReferralCodeNotFoundError()
	}

	referrer, err := s.repository.FindByReferralCode(ctx, code)
	if err != nil {
		return nil, err
	}

	referralCount, err := s.repository.CountReferrals(ctx, referrer.ReferralCode)
	if err != nil {
		logger.Error("Failed to count referrals", "code", code, "error", err)
		return nil, err
	}

	return &ReferralStatsResponse{
		ReferrerName:    referrer.Name,
		ReferralCode:    referrer.ReferralCode,
		ReferralCount:   referralCount,
		RewardsEligible: referralCount >= models.ReferralRewardThreshold,
	}, nil
}

func (s *waitlistService) ListEntrants(ctx context.Context, page, limit int) (*EntrantListResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = constants.DefaultPageSize
	}
	if limit > constants.MaxPageSize {
		limit = constants.MaxPageSize
	}

	entrants, total, err := s.repository.ListEntrants(ctx, page, limit)
	if err != nil {
		logger.Error("Failed to list entrants", "page", page, "limit", limit, "error", err)
		return nil, err
	}

	users := make([]EntrantListItem, 0, len(entrants))
	for _, entrant := range entrants {
		users = append(users, ToEntrantListItem(entrant))
	}

	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}

	return &EntrantListResponse{
		Users: users,
		Pagination: PaginationResponse{
			Current: page,
			Pages:   pages,
			Total:   total,
		},
	}, nil
}

func (s *waitlistService) readCachedStats(ctx context.Context) *WaitlistStatsResponse {
	if s.cache == nil {
		return nil
	}

	var payload string
	err := s.breaker.Call(func() error {
		value, err := s.cache.Get(ctx, statsCacheKey)
		if err != nil {
			return err
		}
		payload = value
		return nil
	})
	if err != nil || payload == "" {
		return nil
	}

	var stats WaitlistStatsResponse
	if err := json.Unmarshal([]byte(payload), &stats); err != nil {
		return nil
	}
	return &stats
}

func (s *waitlistService) writeCachedStats(ctx context.Context, stats *WaitlistStatsResponse) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(stats)
	if err != nil {
		return
	}

	// Best effort; a failed cache write never fails the read path.
	_ = s.breaker.Call(func() error {
		return s.cache.Set(ctx, statsCacheKey, string(payload), statsCacheTTL)
	})
}
