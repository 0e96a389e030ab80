package common

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/kiranalabs/pos/internal/common/constants"
	"github.com/kiranalabs/pos/internal/config"
	inErrors "github.com/kiranalabs/pos/internal/errors"
	"github.com/kiranalabs/pos/internal/log"
)

type userId struct{}

func AttachUserIdToContext(c context.Context, id int64) context.Context {
	return context.WithValue(c, userId{}, id)
}

func UserIdFromContext(c context.Context) (int64, error) {
	id, ok := c.Value(userId{}).(int64)
	if !ok {
		return 0, inErrors.ErrTokenInvalid
	}
	return id, nil
}

func IssueToken(cfg config.Application, id int64) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(
		jwt.SigningMethodHS256,
		jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{constants.AudiencePos},
			Issuer:    constants.AppPosService,
			Subject:   strconv.FormatInt(id, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(30 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	)
	return token.SignedString([]byte(cfg.SecretKey))
}

// VerifyToken validates a bearer token and returns the user id carried in its
// subject claim.
func VerifyToken(c context.Context, token string, cfg config.Application) (int64, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "VerifyToken").
		Logger()

	claims := &jwt.RegisteredClaims{}

	logger = logger.With().Str(log.KeyProcess, "parsing claims").Logger()
	jwtToken, err := jwt.ParseWithClaims(token,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			return []byte(cfg.SecretKey), nil
		},
		jwt.WithAudience(constants.AudiencePos),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithIssuer(constants.AppPosService),
	)
	if err != nil {
		err = fmt.Errorf("failed parsing with claims with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return 0, err
	}

	logger = logger.With().Str(log.KeyProcess, "validating token").Logger()
	if !jwtToken.Valid {
		logger.Error().Err(inErrors.ErrTokenInvalid).Msg(inErrors.ErrTokenInvalid.Error())
		return 0, inErrors.ErrTokenInvalid
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		err = fmt.Errorf("failed parsing subject=%s with error=%w", claims.Subject, err)
		logger.Error().Err(err).Msg(err.Error())
		return 0, inErrors.ErrTokenInvalid
	}

	return id, nil
}
