package response

import (
	"time"

	"station-booking/internal/domain/user"
	"station-booking/internal/usecase/commands"
	"station-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type AuthResponse struct {
	UserID      uuid.UUID `json:"userId"`
	Role        string    `json:"role"`
	AccessToken string    `json:"accessToken"`
	// seconds
	ExpiresIn int64 `json:"expiresIn"`
}

func FromAuthResult(r *commands.AuthResult) AuthResponse {
	return AuthResponse{
		UserID:      r.UserID,
		Role:        r.Role.String(),
		AccessToken: r.AccessToken,
		ExpiresIn:   int64(r.ExpiresIn.Seconds()),
	}
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func FromUserView(v *queries.UserView) UserResponse {
	var out UserResponse
	_ = copier.Copy(&out, v)
	return out
}

func FromUser(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID(),
		Email:     u.Email().Value(),
		Name:      u.Name().Value(),
		Phone:     u.Phone().Value(),
		Role:      u.Role().String(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}

type UserListResponse struct {
	Items      []UserResponse `json:"items"`
	NextCursor *string        `json:"nextCursor"`
}

func FromUserPage(vs []*queries.UserView, next *queries.Cursor) UserListResponse {
	out := UserListResponse{Items: make([]UserResponse, 0, len(vs))}
	for _, v := range vs {
		out.Items = append(out.Items, FromUserView(v))
	}
	if next != nil {
		out.NextCursor = &next.After
	}
	return out
}
