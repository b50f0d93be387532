package socialservice

import (
	"context"
	"database/sql"

	"github.com/sushihentaime/quillpost/internal/common"
	"github.com/sushihentaime/quillpost/internal/userservice"
)

func newSocialModel(db *sql.DB) *SocialModel {
	return &SocialModel{db: db}
}

func (m *SocialModel) toggleFollow(ctx context.Context, followerID, followingID int) (bool, error) {
	followed, err := common.Toggle(ctx, m.db,
		`DELETE FROM followers WHERE follower_id = $1 AND following_id = $2`,
		`INSERT INTO followers (follower_id, following_id) VALUES ($1, $2) ON CONFLICT (follower_id, following_id) DO NOTHING`,
		followerID, followingID)
	if err != nil {
		switch {
		case common.CheckViolation(err, "followers_no_self_follow"):
			return false, ErrSelfFollow
		default:
			return false, err
		}
	}

	return followed, nil
}

func (m *SocialModel) edgeExists(ctx context.Context, followerID, followingID int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM followers WHERE follower_id = $1 AND following_id = $2)`

	var exists bool
	err := m.db.QueryRowContext(ctx, query, followerID, followingID).Scan(&exists)
	return exists, err
}

func (m *SocialModel) countFollowers(ctx context.Context, userID int) (int, error) {
	var count int
	err := m.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM followers WHERE following_id = $1`, userID).Scan(&count)
	return count, err
}

func (m *SocialModel) getFollowing(ctx context.Context, userID int) ([]Follow, error) {
	query := `
		SELECT f.follower_id, f.following_id, f.created_at, u.id, u.name, COALESCE(u.username, ''), u.profile_picture
		FROM followers f
		JOIN users u ON f.following_id = u.id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC, f.following_id DESC`

	rows, err := m.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	following := []Follow{}
	for rows.Next() {
		f := Follow{User: &userservice.Summary{}}
		err := rows.Scan(&f.FollowerID, &f.FollowingID, &f.CreatedAt, &f.User.ID, &f.User.Name, &f.User.Username, &f.User.ProfilePicture)
		if err != nil {
			return nil, err
		}
		following = append(following, f)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return following, nil
}
