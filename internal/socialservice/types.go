package socialservice

import (
	"database/sql"
	"time"

	"github.com/sushihentaime/quillpost/internal/userservice"
)

// Follow is an edge from FollowerID to FollowingID, joined with the followed user's profile.
type Follow struct {
	FollowerID  int                  `json:"follower_id"`
	FollowingID int                  `json:"following_id"`
	CreatedAt   time.Time            `json:"created_at"`
	User        *userservice.Summary `json:"users"`
}

type SocialModel struct {
	db *sql.DB
}

type SocialService struct {
	m *SocialModel
}
