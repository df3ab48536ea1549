package model

type UserRole string

const (
	UserRoleDoctor UserRole = "doctor"
	UserRoleNurse  UserRole = "nurse"
	UserRoleAdmin  UserRole = "admin"
)

// User is a member of staff. Doctors are users with role doctor.
type User struct {
	ID         int64    `db:"id" json:"id"`
	Name       string   `db:"name" json:"name"`
	Role       UserRole `db:"role" json:"role"`
	Department string   `db:"department" json:"department"`
	Status     string   `db:"status" json:"status"`
}

func (u *User) IsActiveDoctor() bool {
	return u.Role == UserRoleDoctor && u.Status == "active"
}

// Actor is the resolved caller of a write operation.
type Actor struct {
	ID   int64    `json:"id"`
	Name string   `json:"name"`
	Role UserRole `json:"role"`
}
