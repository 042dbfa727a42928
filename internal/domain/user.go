package domain

import "time"

type Role string

const (
	RoleSchool Role = "SCHOOL"
	RoleAdmin  Role = "ADMIN"
)

type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Password   string    `json:"-"`
	Role       Role      `json:"role"`
	SchoolName string    `json:"schoolName"`
	PICName    string    `json:"picName"`
	Phone      string    `json:"phone"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
