package userservice

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/sushihentaime/quillpost/internal/common"
)

var (
	ErrUserNotSynced = errors.New("user profile has not been synced")
)

func NewUserService(db *sql.DB, c *common.Cache, verifier *SessionVerifier) *UserService {
	return &UserService{
		m:        newUserModel(db),
		c:        c,
		verifier: verifier,
	}
}

// Authenticate verifies the session token and resolves the local user. A valid session for an
// external identity that was never synced yields an Identity without a User.
func (s *UserService) Authenticate(ctx context.Context, token string) (*Identity, error) {
	claims, err := s.verifier.Verify(token)
	if err != nil {
		return nil, err
	}

	identity := &Identity{ExternalID: claims.Subject, Claims: claims}

	user, err := s.ResolveUser(ctx, claims.Subject)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotSynced):
			return identity, nil
		default:
			return nil, err
		}
	}

	identity.User = user
	return identity, nil
}

// ResolveUser maps an external identity to its local user record.
func (s *UserService) ResolveUser(ctx context.Context, externalID string) (*User, error) {
	v := common.NewValidator()
	validateExternalID(v, externalID)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	key := common.CacheKeyUserByExternalID(externalID)
	if s.c != nil {
		if cached, ok := s.c.Get(key); ok {
			u := *cached.(*User)
			return &u, nil
		}
	}

	user, err := s.m.getUserByExternalID(ctx, externalID)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			return nil, ErrUserNotSynced
		default:
			return nil, err
		}
	}

	if s.c != nil {
		u := *user
		s.c.Set(key, &u)
	}

	return user, nil
}

// SyncProfile creates or refreshes the local record from the session claims.
func (s *UserService) SyncProfile(ctx context.Context, claims *SessionClaims) (*User, error) {
	if claims == nil {
		return nil, ErrInvalidSession
	}

	u := &User{
		ExternalID:     claims.Subject,
		Name:           strings.TrimSpace(claims.Name),
		Username:       strings.TrimSpace(claims.Username),
		Email:          strings.TrimSpace(claims.Email),
		ProfilePicture: claims.Picture,
	}

	v := common.NewValidator()
	validateExternalID(v, u.ExternalID)
	validateUsername(v, u.Username)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.upsertUser(ctx, u)
	if err != nil {
		return nil, err
	}

	s.c.Invalidate(common.CacheKeyUserByExternalID(user.ExternalID))

	return user, nil
}

func (s *UserService) UpdateBio(ctx context.Context, externalID, bio string) (*User, error) {
	bio = strings.TrimSpace(bio)

	v := common.NewValidator()
	validateExternalID(v, externalID)
	validateBio(v, bio)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.updateBio(ctx, externalID, bio)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			return nil, ErrUserNotSynced
		default:
			return nil, err
		}
	}

	s.c.Invalidate(common.CacheKeyUserByExternalID(externalID))

	return user, nil
}

// GetProfile returns the editable part of the caller's profile.
func (s *UserService) GetProfile(ctx context.Context, externalID string) (*Profile, error) {
	user, err := s.ResolveUser(ctx, externalID)
	if err != nil {
		return nil, err
	}

	return &Profile{Bio: user.Bio, LastSync: user.UpdatedAt}, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id int) (*User, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getUserByID(ctx, id)
}

// LookupRecipient returns the address and display name notifications for userID are sent to.
func (s *UserService) LookupRecipient(ctx context.Context, userID int) (string, string, error) {
	user, err := s.m.getUserByID(ctx, userID)
	if err != nil {
		return "", "", err
	}

	name := user.Name
	if name == "" {
		name = user.Username
	}

	return user.Email, name, nil
}
