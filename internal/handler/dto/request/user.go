package request

import (
	"station-booking/internal/domain/user"
	"station-booking/internal/pkg/patch"
)

// UpdateUserRequest accepts email and role only to reject them explicitly.
type UpdateUserRequest struct {
	Name  *string `json:"name" binding:"omitempty,max=100"`
	Phone *string `json:"phone" binding:"omitempty,max=32"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

func (r UpdateUserRequest) IsEmpty() bool {
	return patch.Empty(r.Name, r.Phone, r.Email, r.Role)
}

func (r UpdateUserRequest) ToDomain() (user.ProfilePatch, error) {
	if r.Email != nil || r.Role != nil {
		return user.ProfilePatch{}, user.ErrImmutableField
	}
	var p user.ProfilePatch
	if r.Name != nil {
		n, err := user.NewName(*r.Name)
		if err != nil {
			return user.ProfilePatch{}, err
		}
		p.Name = &n
	}
	if r.Phone != nil {
		ph, err := user.NewPhone(*r.Phone)
		if err != nil {
			return user.ProfilePatch{}, err
		}
		p.Phone = &ph
	}
	return p, nil
}
