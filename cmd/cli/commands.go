package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/oneapp-labs/waitlist-api/domain/waitlist"
	"github.com/oneapp-labs/waitlist-api/internal/models"
	"github.com/oneapp-labs/waitlist-api/pkg/constants"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// PrintWaitlistStats prints signup totals and the per-interest breakdown to
// stdout, intended for quick operational checks.
func PrintWaitlistStats(ctx context.Context, db *gorm.DB) error {
	repository := waitlist.NewWaitlistRepository(db)

	total, err := repository.CountEntrants(ctx)
	if err != nil {
		return err
	}

	earlyAccess, err := repository.CountEarlyAccess(ctx)
	if err != nil {
		return err
	}

	breakdown, err := repository.InterestBreakdown(ctx)
	if err != nil {
		return err
	}

	spotsLeft := int64(models.EarlyAccessSpots) - earlyAccess
	if spotsLeft < 0 {
		spotsLeft = 0
	}

	fmt.Printf("Total signups:        %d\n", total)
	fmt.Printf("Early access holders: %d\n", earlyAccess)
	fmt.Printf("Early access left:    %d\n", spotsLeft)
	fmt.Println()
	fmt.Println("Signups by interest:")

	titleCaser := cases.Title(language.English)
	for _, interest := range []string{
		models.InterestShopping,
		models.InterestFood,
		models.InterestPayments,
		models.InterestAll,
	} {
		fmt.Printf("  %-10s %d\n", titleCaser.String(interest), breakdown[interest])
	}

	return nil
}

// ExportEntrantsCSV streams every entrant to w in waitlist-position order.
func ExportEntrantsCSV(ctx context.Context, db *gorm.DB, w io.Writer) error {
	writer := csv.NewWriter(w)

	header := []string{
		"position", "name", "email", "interest", "referral_code",
		"referred_by", "early_access", "signup_source", "created_at",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	rows, err := db.WithContext(ctx).
		Model(&models.WaitlistEntrant{}).
		Order("waitlist_position ASC").
		Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var entrant models.WaitlistEntrant
		if err := db.ScanRows(rows, &entrant); err != nil {
			return err
		}

		record := []string{
			strconv.FormatInt(entrant.WaitlistPosition, 10),
			entrant.Name,
			entrant.Email,
			entrant.Interest,
			entrant.ReferralCode,
			entrant.ReferredBy,
			strconv.FormatBool(entrant.EarlyAccess),
			entrant.SignupSource,
			entrant.CreatedAt.Format(constants.RFC3339DateTimeFormat),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	writer.Flush()
	return writer.Error()
}
