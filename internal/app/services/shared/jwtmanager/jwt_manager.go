package jwtmanager

import (
	"context"
	"doccare-service/internal/app/config"
	"doccare-service/internal/app/models"
	"doccare-service/internal/pkg/constvars"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

var (
	ErrTokenRequired = errors.New("token is required")
	ErrInvalidToken  = errors.New("token is invalid or expired")
	ErrInvalidRole   = errors.New("token carries an unknown role")
)

// ActorClaims are the claims of an access token: the subject is the actor id.
type ActorClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager signs and verifies HS256 access tokens identifying an actor.
type JWTManager struct {
	log    *zap.Logger
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

type CreateTokenInput struct {
	Actor models.Actor
	// TTL overrides the configured token lifetime when positive.
	TTL time.Duration
}

type CreateTokenOutput struct {
	Token     string
	ExpiresAt time.Time
}

type VerifyTokenInput struct {
	Token string
}

type VerifyTokenOutput struct {
	Actor     models.Actor
	ExpiresAt time.Time
}

func NewJWTManager(cfg *config.InternalConfig, log *zap.Logger) (*JWTManager, error) {
	secret := strings.TrimSpace(cfg.JWT.Secret)
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}
	ttl := cfg.JWT.TokenTTL()
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &JWTManager{
		log:    log,
		secret: []byte(secret),
		issuer: cfg.JWT.Issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func (j *JWTManager) CreateToken(ctx context.Context, in *CreateTokenInput) (*CreateTokenOutput, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	j.log.Info("JWTManager.CreateToken called", zap.String(constvars.LoggingRequestIDKey, requestID))

	if in == nil || strings.TrimSpace(in.Actor.ID) == "" {
		return nil, fmt.Errorf("actor id is required")
	}
	if !in.Actor.Role.IsValid() {
		return nil, ErrInvalidRole
	}

	ttl := j.ttl
	if in.TTL > 0 {
		ttl = in.TTL
	}
	now := j.now().UTC()
	expiresAt := now.Add(ttl)
	claims := ActorClaims{
		Role: string(in.Actor.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   in.Actor.ID,
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return nil, err
	}
	return &CreateTokenOutput{Token: signed, ExpiresAt: expiresAt}, nil
}

func (j *JWTManager) signingKey(t *jwt.Token) (interface{}, error) {
	if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf(constvars.ErrDevAuthSigningMethod, t.Header["alg"])
	}
	return j.secret, nil
}

// VerifyToken validates signature, expiry and issuer, and returns the actor the token names.
func (j *JWTManager) VerifyToken(ctx context.Context, in *VerifyTokenInput) (*VerifyTokenOutput, error) {
	if in == nil || strings.TrimSpace(in.Token) == "" {
		return nil, ErrTokenRequired
	}

	claims := &ActorClaims{}
	parsed, err := jwt.ParseWithClaims(in.Token, claims, j.signingKey)
	if err != nil || !parsed.Valid {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		j.log.Info("JWTManager.VerifyToken rejected token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, ErrInvalidToken
	}
	if j.issuer != "" && !claims.VerifyIssuer(j.issuer, true) {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	role := models.ActorRole(claims.Role)
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	output := &VerifyTokenOutput{Actor: models.Actor{ID: claims.Subject, Role: role}}
	if claims.ExpiresAt != nil {
		output.ExpiresAt = claims.ExpiresAt.Time
	}
	return output, nil
}
