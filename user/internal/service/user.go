package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/kiranalabs/pos/internal/common"
	"github.com/kiranalabs/pos/internal/config"
	inErrors "github.com/kiranalabs/pos/internal/errors"
	"github.com/kiranalabs/pos/internal/log"
	inOtel "github.com/kiranalabs/pos/internal/otel"
	"github.com/kiranalabs/pos/internal/repository"
	"github.com/kiranalabs/pos/user/pkg/request"
	"github.com/kiranalabs/pos/user/pkg/response"
)

type UserService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	cfg     config.Application
}

func NewUserService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cfg config.Application,
) UserService {
	return UserService{pool: pool, queries: queries, cfg: cfg}
}

// Login checks the password against the stored bcrypt hash and issues a
// bearer token. Both the unknown-user and wrong-password paths surface the
// same error so the response does not leak which half failed.
func (svc UserService) Login(
	c context.Context,
	param request.Login,
) (response.Login, error) {
	c, span := inOtel.Tracer.Start(c, "UserService Login")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Login").
		Str(log.KeyUsername, param.Username).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding user").Logger()
	logger.Info().Msg("finding user")
	user, err := svc.queries.FindUserByUsername(c, param.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = inErrors.ErrPasswordMismatch
		}
		err = fmt.Errorf("failed finding username=%s with error=%w", param.Username, err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Login{}, err
	}
	logger.Info().Msg("found user")

	logger = logger.With().Str(log.KeyProcess, "verifying password").Logger()
	logger.Info().Msg("verifying password")
	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(param.Password))
	if err != nil {
		err = fmt.Errorf("failed verifying password with error=%w", inErrors.ErrPasswordMismatch)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Login{}, err
	}
	logger.Info().Msg("verified password")

	logger = logger.With().Str(log.KeyProcess, "issuing token").Logger()
	logger.Info().Msg("issuing token")
	token, err := common.IssueToken(svc.cfg, user.ID)
	if err != nil {
		err = fmt.Errorf("failed issuing token with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Login{}, err
	}
	logger.Info().Msg("issued token")

	return response.Login{User: user.Response(), Token: token}, nil
}

// ChangePassword verifies the current password before rehashing the new one.
func (svc UserService) ChangePassword(
	c context.Context,
	userID int64,
	param request.ChangePassword,
) (response.User, error) {
	c, span := inOtel.Tracer.Start(c, "UserService ChangePassword")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService ChangePassword").
		Int64(log.KeyUserID, userID).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding user").Logger()
	logger.Info().Msg("finding user")
	user, err := svc.queries.FindUserById(c, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = inErrors.ErrUserNotFound
		}
		err = fmt.Errorf("failed finding userId=%d with error=%w", userID, err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Info().Msg("found user")

	logger = logger.With().Str(log.KeyProcess, "verifying old password").Logger()
	logger.Info().Msg("verifying old password")
	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(param.OldPassword))
	if err != nil {
		err = fmt.Errorf(
			"failed verifying old password with error=%w",
			inErrors.ErrPasswordMismatch,
		)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Info().Msg("verified old password")

	logger = logger.With().Str(log.KeyProcess, "hashing new password").Logger()
	logger.Info().Msg("hashing new password")
	hashed, err := bcrypt.GenerateFromPassword([]byte(param.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		err = fmt.Errorf("failed hashing new password with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Info().Msg("hashed new password")

	logger = logger.With().Str(log.KeyProcess, "updating password").Logger()
	logger.Info().Msg("updating password")
	user, err = svc.queries.UpdateUserPassword(c, repository.UpdateUserPasswordParams{
		ID:       userID,
		Password: string(hashed),
	})
	if err != nil {
		err = fmt.Errorf("failed updating password with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Info().Msg("updated password")

	return user.Response(), nil
}
