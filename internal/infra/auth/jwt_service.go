package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"midatopay/config"
	"midatopay/internal/domain/entity"
	domainerrors "midatopay/internal/domain/errors"
	"midatopay/internal/domain/service"
	"midatopay/internal/errors"
)

// localClaims is the wire form of a locally issued credential.
type localClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
type jwtService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.JWT.Secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	ttl := cfg.JWT.ExpiresIn
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}

	return &jwtService{
		secret: []byte(cfg.JWT.Secret),
		ttl:    ttl,
		now:    time.Now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}, nil
}

// Generate signs a credential for the user.
func (s *jwtService) Generate(user *entity.User) (string, error) {
	now := s.now()
	claims := localClaims{
		UserID: user.ID.String(),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Verify parses and validates a locally issued credential.
func (s *jwtService) Verify(tokenString string) (*entity.LocalClaims, error) {
	if tokenString == "" {
		return nil, domainerrors.ErrMissingCredential
	}

	claims := &localClaims{}
	token, err := s.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domainerrors.ErrExpiredLocalCredential.WrapMessage(err.Error())
		}

		return nil, domainerrors.ErrInvalidLocalCredential.WrapMessage(err.Error())
	}
	if !token.Valid {
		return nil, domainerrors.ErrInvalidLocalCredential
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, domainerrors.ErrInvalidLocalCredential.WrapMessage("token has no valid userId")
	}

	result := &entity.LocalClaims{
		UserID: userID,
		Email:  claims.Email,
	}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.Time
	}

	return result, nil
}

// TTL returns the configured lifetime of issued credentials.
func (s *jwtService) TTL() time.Duration {
	return s.ttl
}
