package socialservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sushihentaime/quillpost/internal/common"
)

var (
	ErrSelfFollow = errors.New("cannot follow yourself")
)

func NewSocialService(db *sql.DB) *SocialService {
	return &SocialService{m: newSocialModel(db)}
}

func validatePair(v *common.Validator, followerID, followingID int) {
	v.Check(followerID > 0, "follower_id", "must be greater than zero")
	v.Check(followingID > 0, "following_id", "must be greater than zero")
}

// ToggleFollow makes followerID follow followingID, or unfollow if the edge exists.
// It reports whether the edge exists afterwards.
func (s *SocialService) ToggleFollow(ctx context.Context, followerID, followingID int) (bool, error) {
	v := common.NewValidator()
	validatePair(v, followerID, followingID)
	if !v.Valid() {
		return false, v.ValidationError()
	}

	if followerID == followingID {
		return false, ErrSelfFollow
	}

	return s.m.toggleFollow(ctx, followerID, followingID)
}

// IsFollowing has no side effects; a missing edge is not an error.
func (s *SocialService) IsFollowing(ctx context.Context, followerID, followingID int) (bool, error) {
	v := common.NewValidator()
	validatePair(v, followerID, followingID)
	if !v.Valid() {
		return false, v.ValidationError()
	}

	return s.m.edgeExists(ctx, followerID, followingID)
}

func (s *SocialService) CountFollowers(ctx context.Context, userID int) (int, error) {
	v := common.NewValidator()
	v.Check(userID > 0, "user_id", "must be greater than zero")
	if !v.Valid() {
		return 0, v.ValidationError()
	}

	return s.m.countFollowers(ctx, userID)
}

// GetFollowing lists the users userID follows, most recent first.
func (s *SocialService) GetFollowing(ctx context.Context, userID int) ([]Follow, error) {
	v := common.NewValidator()
	v.Check(userID > 0, "user_id", "must be greater than zero")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getFollowing(ctx, userID)
}
