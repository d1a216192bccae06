package model

import (
	"strings"
	"time"
)

// Role identifies what a user may do. Stored lowercase; matched
// case-insensitively at the gate.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// ParseRole normalizes a submitted role string. Returns false for anything
// that is not a known role.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleTeacher:
		return RoleTeacher, true
	case RoleStudent:
		return RoleStudent, true
	}
	return "", false
}

// Matches reports whether r equals other ignoring case.
func (r Role) Matches(other Role) bool {
	return strings.EqualFold(string(r), string(other))
}

// User is a provisioned account. Accounts are immutable after creation.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// LoginForm is the login page payload.
type LoginForm struct {
	Role     string `form:"role" binding:"required"`
	Username string `form:"username" binding:"required,max=60"`
	Password string `form:"password" binding:"required,max=128"`
}
