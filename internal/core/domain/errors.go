package domain

import "errors"

var (
	ErrAuthorizationMissing = errors.New("authorization header missing")
	ErrTokenInvalid         = errors.New("invalid token")
	ErrTokenExpired         = errors.New("token expired")

	ErrUnknownRecipient = errors.New("unknown recipient")
	ErrUserNotFound     = errors.New("user not found")

	ErrCouponIDMissing           = errors.New("coupon id is required")
	ErrCouponNotFound            = errors.New("coupon not found")
	ErrWrongOwner                = errors.New("coupon belongs to another user")
	ErrCouponExpired             = errors.New("coupon has expired")
	ErrCouponNotActive           = errors.New("coupon is no longer active")
	ErrDeleteNotAuthorized       = errors.New("only the recipient may delete a coupon")
	ErrDeleteTerminalUnsupported = errors.New("deleting a finished coupon is not supported")

	ErrInternal = errors.New("internal server error")
)
