package commands

import (
	"context"
	"log/slog"
	"time"

	"station-booking/internal/domain/user"
	reqdto "station-booking/internal/handler/dto/request"
	"station-booking/internal/infra"
	"station-booking/internal/pkg/clock"
	"station-booking/internal/pkg/errs"
	"station-booking/internal/pkg/jwt"
	"station-booking/internal/pkg/password"
	"station-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errs.New("invalid email or password")
	ErrEmailTaken         = errs.New("email is already registered")
	ErrTokenGeneration    = errs.New("token generation failed")
)

type AuthResult struct {
	UserID      uuid.UUID
	Role        user.Role
	AccessToken string
	ExpiresIn   time.Duration
}

type AuthCommands interface {
	Register(ctx context.Context, req reqdto.RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, req reqdto.LoginRequest) (*AuthResult, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	jwtService *jwt.Service
	hasher     *password.Hasher
	clock      clock.Clock
}

func NewAuthCommands(uow shared.UnitOfWork, jwtService *jwt.Service, hasher *password.Hasher, clk clock.Clock) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		jwtService: jwtService,
		hasher:     hasher,
		clock:      clk,
	}
}

// Register always creates a RoleUser account; administrators are provisioned out of band.
func (a *authCommandsImpl) Register(ctx context.Context, req reqdto.RegisterRequest) (*AuthResult, error) {
	reg, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	hash, err := a.hasher.Hash(reg.Password().Value())
	if err != nil {
		return nil, err
	}

	u := user.NewUser(reg.Email(), reg.Name(), hash, user.RoleUser, a.clock.Now())
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		derr := tx.Users().Create(ctx, u)
		if infra.IsKind(derr, infra.KindDuplicateKey) {
			return errs.Mark(ErrEmailTaken, errs.ErrConflict)
		}
		return shared.MarkRepoErr(derr)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("user registered", "user_id", u.ID())
	return a.issue(u)
}

func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest) (*AuthResult, error) {
	credentials, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(ErrInvalidCredentials, errs.ErrUnauthenticated)
	}

	var found *user.User
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		u, derr := tx.Users().FindByEmail(ctx, credentials.Email())
		if derr != nil {
			return derr
		}
		found = u
		return nil
	})
	if err != nil {
		// unknown email and wrong password are indistinguishable to the caller
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(ErrInvalidCredentials, errs.ErrUnauthenticated)
		}
		return nil, shared.MarkRepoErr(err)
	}

	if err = a.hasher.Compare(found.PasswordHash(), credentials.Password().Value()); err != nil {
		return nil, errs.Mark(ErrInvalidCredentials, errs.ErrUnauthenticated)
	}

	return a.issue(found)
}

func (a *authCommandsImpl) issue(u *user.User) (*AuthResult, error) {
	token, err := a.jwtService.GenerateToken(u.ID(), u.Role())
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	return &AuthResult{
		UserID:      u.ID(),
		Role:        u.Role(),
		AccessToken: token,
		ExpiresIn:   a.jwtService.TokenDuration(),
	}, nil
}
