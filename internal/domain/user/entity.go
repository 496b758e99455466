package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	id           uuid.UUID
	email        Email
	name         Name
	phone        Phone
	passwordHash string
	role         Role
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(email Email, name Name, passwordHash string, role Role, now time.Time) *User {
	return &User{
		id:           uuid.New(),
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    now,
		updatedAt:    now,
	}
}

func ReconstructUser(id uuid.UUID, email Email, name Name, phone Phone, passwordHash string, role Role, createdAt, updatedAt time.Time) *User {
	return &User{
		id:           id,
		email:        email,
		name:         name,
		phone:        phone,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Email() Email         { return u.email }
func (u *User) Name() Name           { return u.name }
func (u *User) Phone() Phone         { return u.phone }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() Role           { return u.role }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// ProfilePatch holds the self-service fields; nil leaves a field unchanged.
// Email and role are fixed once the account exists.
type ProfilePatch struct {
	Name  *Name
	Phone *Phone
}

func (u *User) UpdateProfile(p ProfilePatch, now time.Time) {
	if p.Name != nil {
		u.name = *p.Name
	}
	if p.Phone != nil {
		u.phone = *p.Phone
	}
	u.updatedAt = now
}
