package userservice

import (
	"regexp"

	"github.com/sushihentaime/quillpost/internal/common"
)

var (
	UsernameRX = regexp.MustCompile("^[a-zA-Z0-9_.-]+$")
)

const maxBioLength = 500

// validateUsername accepts an empty handle since the identity provider does not always supply one.
func validateUsername(v *common.Validator, username string) {
	if username == "" {
		return
	}
	v.Check(v.CheckStringLength(username, 3, 50), "username", "must be between 3 and 50 characters long")
	v.Check(UsernameRX.MatchString(username), "username", "must only contain letters, numbers, dots, dashes and underscores")
}

func validateExternalID(v *common.Validator, externalID string) {
	v.Check(externalID != "", "external_id", "must be provided")
}

func validateBio(v *common.Validator, bio string) {
	v.Check(v.CheckStringLength(bio, 0, maxBioLength), "bio", "must not be more than 500 characters long")
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
