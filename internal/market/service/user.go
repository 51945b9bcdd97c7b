package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/market/internal/market/domain"
	"github.com/aussiebroadwan/market/internal/market/imagehost"
	"github.com/aussiebroadwan/market/internal/market/metrics"
	"github.com/aussiebroadwan/market/internal/market/store"
	"github.com/aussiebroadwan/market/pkg/cryptox"
	"github.com/aussiebroadwan/market/pkg/slogx"
)

// tokenAttempts bounds retries when a freshly generated token collides with
// an existing one.
const tokenAttempts = 3

type SignupInput struct {
	Email    string
	Username string
	Phone    string
	Password string

	// Picture is the optional avatar.
	Picture *imagehost.File
}

type LoginInput struct {
	Username string
	Email    string
	Password string
}

type UserService struct {
	Store   store.Store
	Images  imagehost.Host
	Metrics *metrics.Metrics
}

// Signup registers a user and returns it with its bearer token.
//
// Uniqueness is checked before field presence so a taken email reports 409
// even when the username is missing. The unique indexes catch the race
// between check and insert.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (u domain.User, err error) {
	defer func() { s.Metrics.Signup(err) }()
	log := slogx.FromContext(ctx)
	users := s.Store.Users()

	// 1. Uniqueness
	if in.Email != "" {
		if err := ensureAbsent(users.GetUserByEmail(ctx, in.Email)); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return domain.User{}, ErrEmailTaken
			}
			return domain.User{}, err
		}
	}
	if in.Username != "" {
		if err := ensureAbsent(users.GetUserByUsername(ctx, in.Username)); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return domain.User{}, ErrUsernameTaken
			}
			return domain.User{}, err
		}
	}

	// 2. Required fields
	switch {
	case in.Username == "":
		return domain.User{}, ErrInvalidUsername
	case in.Email == "":
		return domain.User{}, ErrInvalidEmail
	case in.Password == "":
		return domain.User{}, ErrPasswordRequired
	}

	// 3. Credentials
	salt, err := cryptox.RandomString(cryptox.DefaultStringLength)
	if err != nil {
		return domain.User{}, err
	}
	hash, err := cryptox.HashPassword(in.Password, salt)
	if err != nil {
		return domain.User{}, err
	}

	u = domain.User{
		ID:    s.Store.NewID(),
		Email: in.Email,
		Account: domain.Account{
			Username: in.Username,
			Phone:    in.Phone,
		},
		Hash:      hash,
		Salt:      salt,
		CreatedAt: time.Now().UTC(),
	}

	// 4. Avatar
	if in.Picture != nil {
		img, err := s.Images.Upload(ctx, *in.Picture, imagehost.AvatarFolder)
		s.Metrics.Upload(err)
		if err != nil {
			log.Error("avatar upload failed", slog.Any("error", err))
			return domain.User{}, fmt.Errorf("%w: %w", ErrImageHost, err)
		}
		u.Account.Avatar = &img
	}

	// 5. Persist, regenerating the token on the unlikely collision
	for attempt := 1; ; attempt++ {
		if u.Token, err = cryptox.RandomString(cryptox.DefaultStringLength); err != nil {
			break
		}

		err = users.CreateUser(ctx, u)
		var conflict *store.ConflictError
		if !errors.As(err, &conflict) || conflict.Field != store.FieldToken || attempt == tokenAttempts {
			break
		}
		log.Warn("generated token collided, retrying", slog.Int("attempt", attempt))
	}
	if err != nil {
		s.discardAvatar(ctx, u.Account.Avatar)
		return domain.User{}, mapUserConflict(err)
	}

	log.Info("user signed up",
		slog.String("user_id", u.ID),
		slog.String("username", u.Account.Username),
	)
	return u, nil
}

// Login verifies credentials. Username takes precedence over email.
func (s *UserService) Login(ctx context.Context, in LoginInput) (u domain.User, err error) {
	defer func() { s.Metrics.Login(err) }()
	log := slogx.FromContext(ctx)

	if in.Username != "" {
		u, err = s.Store.Users().GetUserByUsername(ctx, in.Username)
	} else if in.Email != "" {
		u, err = s.Store.Users().GetUserByEmail(ctx, in.Email)
	} else {
		return domain.User{}, ErrUnknownUser
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUnknownUser
		}
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(in.Password, u.Salt, u.Hash); err != nil {
		log.Info("login failed", slog.String("user_id", u.ID))
		return domain.User{}, ErrWrongPassword
	}

	log.Info("user logged in", slog.String("user_id", u.ID))
	return u, nil
}

// ensureAbsent turns a lookup result into ErrAlreadyExists when a record was
// found and nil when it was not.
func ensureAbsent(_ domain.User, err error) error {
	switch {
	case err == nil:
		return store.ErrAlreadyExists
	case errors.Is(err, store.ErrNotFound):
		return nil
	default:
		return err
	}
}

func mapUserConflict(err error) error {
	var conflict *store.ConflictError
	if !errors.As(err, &conflict) {
		return err
	}
	switch conflict.Field {
	case store.FieldEmail:
		return ErrEmailTaken
	case store.FieldUsername:
		return ErrUsernameTaken
	default:
		return err
	}
}

func (s *UserService) discardAvatar(ctx context.Context, img *domain.Image) {
	if img == nil {
		return
	}
	if err := s.Images.Destroy(ctx, img.PublicID); err != nil {
		slogx.FromContext(ctx).Warn("failed to remove orphaned avatar",
			slog.String("public_id", img.PublicID),
			slog.Any("error", err),
		)
	}
}
