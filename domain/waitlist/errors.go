package waitlist

import (
	apperrors "github.com/oneapp-labs/waitlist-api/pkg/errors"
)

// NewDuplicateEmailError rejects a signup whose email is already on the list.
func NewDuplicateEmailError() *apperrors.AppError {
	return apperrors.NewAppError(apperrors.ErrorTypeDuplicateEmail, "You are already on our waitlist!", nil)
}

// NewInvalidReferralCodeError rejects a signup referencing a referral code
// that does not belong to any entrant.
func NewInvalidReferralCodeError() *apperrors.AppError {
	return apperrors.NewAppError(apperrors.ErrorTypeInvalidReferralCode, "Invalid referral code", nil)
}

// NewReferralCodeExhaustedError signals that every generated candidate code
// collided with an existing one within the attempt budget.
func NewReferralCodeExhaustedError(err error) *apperrors.AppError {
	return apperrors.NewAppError(apperrors.ErrorTypeReferralCodeExhausted, "Unable to allocate a referral code. Please try again.", err)
}

// NewReferralCodeNotFoundError is returned by referral-stat lookups for
// unknown codes.
func NewReferralCodeNotFoundError() *apperrors.AppError {
	return apperrors.NewNotFoundError("Invalid referral code", nil)
}

func newReferralCodeConflictError(err error) *apperrors.AppError {
	return apperrors.NewConflictError("referral code collision", err)
}

func newPositionConflictError(err error) *apperrors.AppError {
	return apperrors.NewConflictError("waitlist position contention", err)
}

// isRetryableRegisterError reports whether a failed register attempt should be
// retried with a fresh candidate code. Only constraint conflicts on
// referral_code or waitlist_position qualify; a duplicate email is a terminal
// business-rule rejection.
func isRetryableRegisterError(err error) bool {
	return apperrors.GetErrorType(err) == apperrors.ErrorTypeConflict
}
