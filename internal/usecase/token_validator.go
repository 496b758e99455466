package usecase

import (
	"station-booking/internal/domain/user"
	"station-booking/internal/pkg/errs"
	"station-booking/internal/pkg/jwt"

	"github.com/google/uuid"
)

var ErrUnknownRole = errs.New("token carries an unknown role")

// TokenValidator resolves a bearer token to the (subject, role) pair.
type TokenValidator interface {
	ValidateToken(tokenString string) (uuid.UUID, user.Role, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (uuid.UUID, user.Role, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, "", errs.Mark(err, errs.ErrUnauthenticated)
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return uuid.Nil, "", errs.Mark(errs.Wrap(ErrUnknownRole, err.Error()), errs.ErrUnauthenticated)
	}
	if claims.UserID == uuid.Nil {
		return uuid.Nil, "", errs.Mark(jwt.ErrInvalidToken, errs.ErrUnauthenticated)
	}

	return claims.UserID, role, nil
}
