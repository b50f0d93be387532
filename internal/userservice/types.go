package userservice

import (
	"database/sql"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sushihentaime/quillpost/internal/common"
)

var (
	AnonymousIdentity = &Identity{}
)

type UserService struct {
	m        *DBModel
	c        *common.Cache
	verifier *SessionVerifier
}

type DBModel struct {
	db *sql.DB
}

type User struct {
	ID             int       `json:"id"`
	ExternalID     string    `json:"external_id"`
	Name           string    `json:"name"`
	Username       string    `json:"username"`
	Email          string    `json:"-"`
	ProfilePicture string    `json:"profile_picture"`
	Bio            string    `json:"bio"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Summary is the author block embedded in feeds and listings.
type Summary struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profile_picture"`
}

type Profile struct {
	Bio      string    `json:"bio"`
	LastSync time.Time `json:"lastSync"`
}

// SessionClaims are the claims carried by the identity provider's session token. Subject is the external identity.
type SessionClaims struct {
	Name     string `json:"name,omitempty"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Picture  string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// Identity is the result of authenticating a request. User is nil when the external identity
// has a valid session but was never synced to a local record.
type Identity struct {
	ExternalID string
	Claims     *SessionClaims
	User       *User
}

func (i *Identity) IsAnonymous() bool {
	return i == nil || i.ExternalID == ""
}

func (i *Identity) IsSynced() bool {
	return !i.IsAnonymous() && i.User != nil
}

// UserID returns the internal id of the synced user, or zero.
func (i *Identity) UserID() int {
	if !i.IsSynced() {
		return 0
	}
	return i.User.ID
}
