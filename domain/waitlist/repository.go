package waitlist

import (
	"context"
	"errors"
	"strings"

	"github.com/oneapp-labs/waitlist-api/internal/models"
	apperrors "github.com/oneapp-labs/waitlist-api/pkg/errors"
	"gorm.io/gorm"
)

type WaitlistRepository interface {
	// RegisterEntrant assigns the next waitlist position and inserts the
	// entrant as a single atomic step. Concurrent calls never observe the same
	// position: the position is computed and inserted inside one transaction,
	// and a unique constraint on waitlist_position backstops lost-update races
	// by failing the loser, which surfaces as a retryable conflict.
	RegisterEntrant(ctx context.Context, entrant *models.WaitlistEntrant) (*models.WaitlistEntrant, error)
	// FindByEmail retrieves an entrant by email (stored lowercase).
	FindByEmail(ctx context.Context, email string) (*models.WaitlistEntrant, error)
	// FindByReferralCode retrieves the entrant owning a referral code.
	FindByReferralCode(ctx context.Context, code string) (*models.WaitlistEntrant, error)
	// CountEntrants returns the total number of entrants.
	CountEntrants(ctx context.Context) (int64, error)
	// CountEarlyAccess returns the number of entrants holding early access.
	CountEarlyAccess(ctx context.Context) (int64, error)
	// CountReferrals returns how many entrants were referred by the given code.
	CountReferrals(ctx context.Context, code string) (int64, error)
	// InterestBreakdown returns entrant counts grouped by interest.
	InterestBreakdown(ctx context.Context) (map[string]int64, error)
	// ListEntrants returns a page of entrants ordered newest first, plus the
	// total entrant count.
	ListEntrants(ctx context.Context, page, limit int) ([]*models.WaitlistEntrant, int64, error)
}

type waitlistRepository struct {
	db *gorm.DB
}

func NewWaitlistRepository(db *gorm.DB) WaitlistRepository {
	return &waitlistRepository{db: db}
}

func (wr *waitlistRepository) RegisterEntrant(ctx context.Context, entrant *models.WaitlistEntrant) (*models.WaitlistEntrant, error) {
	err := wr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.WaitlistEntrant{}).Count(&count).Error; err != nil {
			return apperrors.NewDatabaseError("failed to count entrants", err)
		}

		entrant.WaitlistPosition = count + 1
		entrant.EarlyAccess = entrant.WaitlistPosition <= models.EarlyAccessSpots

		if err := tx.Create(entrant).Error; err != nil {
			if isDuplicateKey(err) {
				switch conflictColumn(err) {
				case "referral_code":
					return newReferralCodeConflictError(err)
				case "waitlist_position":
					return newPositionConflictError(err)
				}
				// Email is the only uniquely-constrained column the client
				// controls, so an unattributed duplicate lands here too.
				return NewDuplicateEmailError()
			}
			return apperrors.NewDatabaseError("unable to create waitlist entrant", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}
	return entrant, nil
}

func (wr *waitlistRepository) FindByEmail(ctx context.Context, email string) (*models.WaitlistEntrant, error) {
	var entrant models.WaitlistEntrant

	if err := wr.db.WithContext(ctx).Where("email = ?", email).First(&entrant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("entrant not found", err)
		}
		return nil, apperrors.NewDatabaseError("failed to fetch entrant by email", err)
	}

	return &entrant, nil
}

func (wr *waitlistRepository) FindByReferralCode(ctx context.Context, code string) (*models.WaitlistEntrant, error) {
	var entrant models.WaitlistEntrant

	if err := wr.db.WithContext(ctx).Where("referral_code = ?", code).First(&entrant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewReferralCodeNotFoundError()
		}
		return nil, apperrors.NewDatabaseError("failed to fetch entrant by referral code", err)
	}

	return &entrant, nil
}

func (wr *waitlistRepository) CountEntrants(ctx context.Context) (int64, error) {
	var count int64
	if err := wr.db.WithContext(ctx).Model(&models.WaitlistEntrant{}).Count(&count).Error; err != nil {
		return 0, apperrors.NewDatabaseError("failed to count entrants", err)
	}
	return count, nil
}

func (wr *waitlistRepository) CountEarlyAccess(ctx context.Context) (int64, error) {
	var count int64
	if err := wr.db.WithContext(ctx).
		Model(&models.WaitlistEntrant{}).
		Where("early_access = ?", true).
		Count(&count).Error; err != nil {
		return 0, apperrors.NewDatabaseError("failed to count early access entrants", err)
	}
	return count, nil
}

func (wr *waitlistRepository) CountReferrals(ctx context.Context, code string) (int64, error) {
	var count int64
	if err := wr.db.WithContext(ctx).
		Model(&models.WaitlistEntrant{}).
		Where("referred_by = ?", code).
		Count(&count).Error; err != nil {
		return 0, apperrors.NewDatabaseError("failed to count referrals", err)
	}
	return count, nil
}

func (wr *waitlistRepository) InterestBreakdown(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Interest string
		Count    int64
	}

	if err := wr.db.WithContext(ctx).
		Model(&models.WaitlistEntrant{}).
		Select("interest, count(*) as count").
		Group("interest").
		Scan(&rows).Error; err != nil {
		return nil, apperrors.NewDatabaseError("failed to compute interest breakdown", err)
	}

	breakdown := make(map[string]int64, len(rows))
	for _, row := range rows {
		breakdown[row.Interest] = row.Count
	}
	return breakdown, nil
}

func (wr *waitlistRepository) ListEntrants(ctx context.Context, page, limit int) ([]*models.WaitlistEntrant, int64, error) {
	total, err := wr.CountEntrants(ctx)
	if err != nil {
		return nil, 0, err
	}

	var entrants []*models.WaitlistEntrant
	offset := (page - 1) * limit

	if err := wr.db.WithContext(ctx).
		Order("created_at DESC, waitlist_position DESC").
		Limit(limit).
		Offset(offset).
		Find(&entrants).Error; err != nil {
		return nil, 0, apperrors.NewDatabaseError("failed to list entrants", err)
	}

	return entrants, total, nil
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || apperrors.IsDuplicateKeyError(err)
}

// conflictColumn identifies which unique constraint a duplicate-key error hit.
// Both the postgres and sqlite drivers include the column or index name in the
// error message.
func conflictColumn(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "referral_code"):
		return "referral_code"
	case strings.Contains(msg, "waitlist_position"):
		return "waitlist_position"
	case strings.Contains(msg, "email"):
		return "email"
	}
	return ""
}
