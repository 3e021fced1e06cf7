package waitlist

import (
	"crypto/subtle"
	"net/http"
	"strconv"

	"github.com/oneapp-labs/waitlist-api/config/router"
	"github.com/oneapp-labs/waitlist-api/internal/log"
	"github.com/oneapp-labs/waitlist-api/pkg/constants"
	apperrors "github.com/oneapp-labs/waitlist-api/pkg/errors"
	"github.com/oneapp-labs/waitlist-api/pkg/factory"
	"github.com/oneapp-labs/waitlist-api/pkg/utils"
	"gorm.io/gorm"
)

func NewWaitlistController(
	db *gorm.DB,
	logger *log.Logger,
	cache StatsCache,
) *router.RESTController {

	return router.NewVersionedRESTController(
		"WaitlistController",
		"api",
		"/waitlist",
		func(rs *router.RouterService, c *router.RESTController) {
			repository := NewWaitlistRepository(db)
			service := NewWaitlistService(logger, repository, cache)

			// The public join endpoint carries the original marketing-page
			// budget: 10 requests per client address per 15 minutes.
			joinLimiter := factory.NewDefaultRateLimiterFactory(
				constants.SignupRateLimitRequests,
				constants.SignupRateLimitWindow(),
				asFactoryCache(cache),
				logger,
			).CreateRateLimiter()

			rs.AddPostHandler(c, joinLimiter, "/join", joinWaitlistHandler(service))
			rs.AddGetHandler(c, nil, "/stats", getStatsHandler(service))
			rs.AddGetHandler(c, nil, "/referral/:code", getReferralStatsHandler(service))
			rs.AddGetHandler(c, nil, "/users", listEntrantsHandler(service), adminAuthMiddleware())
		},
	)
}

// asFactoryCache adapts the service-level cache to the limiter factory's
// interface without forcing callers to depend on it.
func asFactoryCache(cache StatsCache) factory.Cache {
	if fc, ok := cache.(factory.Cache); ok {
		return fc
	}
	return nil
}

// adminAuthMiddleware gates the entrant listing behind bearer-token equality
// with the configured ADMIN_TOKEN. Comparison is constant-time.
func adminAuthMiddleware() router.MiddlewareFunc {
	return func(c *router.RequestContext) {
		token := utils.GetEnvTrimmed("ADMIN_TOKEN")
		header := c.GetHeader("Authorization")

		if token == "" || subtle.ConstantTimeCompare([]byte(header), []byte("Bearer "+token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, router.UnauthorizedResult("Unauthorized").ToJSON())
			return
		}

		c.Next()
	}
}

func joinWaitlistHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req JoinWaitlistRequest

		if err := ctx.ShouldBindJSON(&req); err != nil {
			logger.Error("Failed to bind join request", "error", err)

			validationErrors := apperrors.FormatValidationErrors(err, &req)
			if len(validationErrors) > 0 {
				return router.ValidationErrorResult(validationErrors)
			}

			return router.BadRequestResult("Invalid request body")
		}

		meta := SignupMetadata{
			IPAddress: ctx.ClientIP(),
			UserAgent: ctx.Request.UserAgent(),
		}

		response, err := service.Register(ctx.Request.Context(), &req, meta)
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
			)
		}

		return router.CreatedResult(response, "Successfully joined waitlist!")
	}
}

func getStatsHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		stats, err := service.GetStats(ctx.Request.Context())
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
			)
		}

		return router.OKResult(stats, "")
	}
}

func getReferralStatsHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		code := ctx.Param("code")

		stats, err := service.GetReferralStats(ctx.Request.Context(), code)
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
			)
		}

		return router.OKResult(stats, "")
	}
}

func listEntrantsHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		page := parseQueryInt(ctx, "page", 1)
		limit := parseQueryInt(ctx, "limit", constants.DefaultPageSize)

		response, err := service.ListEntrants(ctx.Request.Context(), page, limit)
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
			)
		}

		return router.OKResult(response, "")
	}
}

func parseQueryInt(ctx *router.RequestContext, name string, fallback int) int {
	raw := ctx.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
