package waitlist

import (
	"github.com/oneapp-labs/waitlist-api/internal/models"
	"github.com/oneapp-labs/waitlist-api/pkg/constants"
)

type JoinWaitlistRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=50"`
	Email        string `json:"email" binding:"required,email,max=255"`
	Phone        string `json:"phone" binding:"omitempty,min=7,max=20"`
	Interest     string `json:"interest" binding:"omitempty,oneof=shopping food payments all"`
	ReferralCode string `json:"referralCode" binding:"omitempty,len=9,alphanum,startswith=ONE"`
}

// SignupMetadata is captured at the HTTP boundary, not supplied by the client.
type SignupMetadata struct {
	IPAddress    string
	UserAgent    string
	SignupSource string
}

type EntrantSummaryResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	WaitlistPosition int64  `json:"waitlistPosition"`
	EarlyAccess      bool   `json:"earlyAccess"`
	ReferralCode     string `json:"referralCode"`
	JoinDate         string `json:"joinDate"`
}

type WaitlistStatsResponse struct {
	TotalUsers           int64            `json:"totalUsers"`
	EarlyAccessUsers     int64            `json:"earlyAccessUsers"`
	EarlyAccessSpotsLeft int64            `json:"earlyAccessSpotsLeft"`
	InterestStats        map[string]int64 `json:"interestStats"`
}

type ReferralStatsResponse struct {
	ReferrerName    string `json:"referrerName"`
	ReferralCode    string `json:"referralCode"`
	ReferralCount   int64  `json:"referralCount"`
	RewardsEligible bool   `json:"rewardsEligible"`
}

type EntrantListItem struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Interest         string `json:"interest"`
	WaitlistPosition int64  `json:"waitlistPosition"`
	EarlyAccess      bool   `json:"earlyAccess"`
	ReferralCode     string `json:"referralCode"`
	ReferredBy       string `json:"referredBy,omitempty"`
	JoinDate         string `json:"joinDate"`
}

type PaginationResponse struct {
	Current int   `json:"current"`
	Pages   int64 `json:"pages"`
	Total   int64 `json:"total"`
}

type EntrantListResponse struct {
	Users      []EntrantListItem  `json:"users"`
	Pagination PaginationResponse `json:"pagination"`
}

// ========================================
// Mappers
// ========================================

func ToEntrantModel(req *JoinWaitlistRequest, meta SignupMetadata) *models.WaitlistEntrant {
	if req == nil {
		return nil
	}

	interest := req.Interest
	if interest == "" {
		interest = models.InterestAll
	}

	source := meta.SignupSource
	if source == "" {
		source = models.DefaultSignupSource
	}

	return &models.WaitlistEntrant{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Interest:     interest,
		ReferredBy:   req.ReferralCode,
		Subscription: models.SubscriptionFree,
		SignupIP:     meta.IPAddress,
		UserAgent:    meta.UserAgent,
		SignupSource: source,
	}
}

func ToEntrantSummaryResponse(entrant *models.WaitlistEntrant) EntrantSummaryResponse {
	if entrant == nil {
		return EntrantSummaryResponse{}
	}
	return EntrantSummaryResponse{
		ID:               entrant.ID,
		Name:             entrant.Name,
		Email:            entrant.Email,
		WaitlistPosition: entrant.WaitlistPosition,
		EarlyAccess:      entrant.EarlyAccess,
		ReferralCode:     entrant.ReferralCode,
		JoinDate:         entrant.CreatedAt.Format(constants.RFC3339DateTimeFormat),
	}
}

func ToEntrantListItem(entrant *models.WaitlistEntrant) EntrantListItem {
	if entrant == nil {
		return EntrantListItem{}
	}
	return EntrantListItem{
		ID:               entrant.ID,
		Name:             entrant.Name,
		Email:            entrant.Email,
		Interest:         entrant.Interest,
		WaitlistPosition: entrant.WaitlistPosition,
		EarlyAccess:      entrant.EarlyAccess,
		ReferralCode:     entrant.ReferralCode,
		ReferredBy:       entrant.ReferredBy,
		JoinDate:         entrant.CreatedAt.Format(constants.RFC3339DateTimeFormat),
	}
}
