package service

import "errors"

// User errors.
var (
	ErrEmailTaken       = errors.New("email already exists")
	ErrUsernameTaken    = errors.New("username already exists")
	ErrInvalidUsername  = errors.New("invalid username")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrPasswordRequired = errors.New("password required")
	ErrUnknownUser      = errors.New("unknown username or email")
	ErrWrongPassword    = errors.New("wrong password")
	ErrUnauthorized     = errors.New("unauthorized")
)

// Offer errors.
var (
	ErrOfferInvalid    = errors.New("offer exceeds limits")
	ErrPictureRequired = errors.New("picture is required")
	ErrOfferNotFound   = errors.New("offer not found")
	ErrInvalidOfferID  = errors.New("invalid offer id")
	ErrNotOwner        = errors.New("not the owner of this offer")
	ErrInvalidQuery    = errors.New("invalid query")
)

// ErrImageHost wraps every failure of the image host.
var ErrImageHost = errors.New("image host failure")
