package blogservice

import (
	"github.com/sushihentaime/quillpost/internal/common"
)

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
	v.Check(v.CheckStringLength(title, 0, 200), "title", "must not be more than 200 characters long")
}

func validateContent(v *common.Validator, content string) {
	v.Check(content != "", "content", "must be provided")
}

func validateCategory(v *common.Validator, category string) {
	v.Check(category != "", "category", "must be provided")
	v.Check(v.CheckStringLength(category, 0, 50), "category", "must not be more than 50 characters long")
}

func validateStatus(v *common.Validator, status string) {
	v.Check(status != "", "status", "must be provided")
	v.Check(status == "" || common.PermittedValue(status, StatusPublic, StatusPrivate), "status", "must be either public or private")
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
