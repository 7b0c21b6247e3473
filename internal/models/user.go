package models

import "github.com/google/uuid"

const (
	StudentRole  = "student"
	EducatorRole = "educator"
)

type User struct {
	ID        uuid.UUID
	Username  string
	Password  string
	Email     string
	AvatarURL string
	Roles     []string
}
