package dtos

type DeleteDTO struct {
	Return string `form:"return"`
}
