package authController

import (
	"context"
	"strings"
	"time"

	"fleetdesk/config"
	"fleetdesk/internal/database"
	"fleetdesk/internal/errs"
	. "fleetdesk/internal/models"
	"fleetdesk/internal/repositories"
	"fleetdesk/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	SESSION_CACHE_PREFIX = "session:"
	SESSION_TTL          = 24 * time.Hour
)

// AuthController handles credential checks and bearer-token sessions. Tokens
// are HS256 JWTs whose session id must also be present in the session cache,
// so logout revokes a token before its expiry.
type AuthController struct {
	userRepo repositories.UserRepository
	db       database.DB
	config   config.Config
	log      logger.Logger
}

type AuthControllerInterface interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, token string) error
	ValidateToken(ctx context.Context, token string) (*User, error)
}

type sessionClaims struct {
	jwt.RegisteredClaims
}

func New(
	repos repositories.Repository,
	config config.Config,
	db database.DB,
) AuthControllerInterface {
	return &AuthController{
		userRepo: repos.User,
		db:       db,
		config:   config,
		log:      logger.New("authController"),
	}
}

func (c *AuthController) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	log := c.log.Function("Login")

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, errs.Validation("username and password are required")
	}

	user, err := c.userRepo.GetByUsername(ctx, username)
	if err != nil {
		log.Warn("Login attempt for unknown user", "username", username)
		return nil, errs.Unauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Warn("Login attempt with bad password", "username", username)
		return nil, errs.Unauthorized("invalid credentials")
	}

	sessionID := uuid.New()
	token, err := c.signToken(user.ID, sessionID)
	if err != nil {
		return nil, log.Err("failed to sign session token", err)
	}

	if err := c.storeSession(ctx, sessionID, user.ID); err != nil {
		return nil, log.Err("failed to store session", err)
	}

	log.Info("User logged in", "userID", user.ID, "role", user.Role)

	return &LoginResponse{
		Token: token,
		User:  user.ToProfile(),
	}, nil
}

func (c *AuthController) Logout(ctx context.Context, token string) error {
	log := c.log.Function("Logout")

	claims, err := c.parseToken(token)
	if err != nil {
		return errs.Unauthorized("invalid session token")
	}

	if c.db.Cache.Session != nil {
		err := database.NewCacheBuilder(c.db.Cache.Session, claims.ID).
			WithContext(ctx).
			WithPrefix(SESSION_CACHE_PREFIX).
			Delete()
		if err != nil {
			return log.Err("failed to clear session", err)
		}
	}

	log.Info("User logged out", "sessionID", claims.ID)
	return nil
}

// ValidateToken checks signature, expiry, and session revocation, then
// resolves the bearer to a user.
func (c *AuthController) ValidateToken(ctx context.Context, token string) (*User, error) {
	claims, err := c.parseToken(token)
	if err != nil {
		return nil, errs.Unauthorized("invalid session token")
	}

	if c.db.Cache.Session != nil {
		var storedUserID string
		found, err := database.NewCacheBuilder(c.db.Cache.Session, claims.ID).
			WithContext(ctx).
			WithPrefix(SESSION_CACHE_PREFIX).
			Get(&storedUserID)
		if err != nil || !found {
			return nil, errs.Unauthorized("session expired")
		}
		if storedUserID != claims.Subject {
			return nil, errs.Unauthorized("session mismatch")
		}
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errs.Unauthorized("invalid session token")
	}

	user, err := c.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errs.Unauthorized("unknown user")
	}

	return user, nil
}

func (c *AuthController) signToken(userID, sessionID uuid.UUID) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ID:        sessionID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SESSION_TTL)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(c.config.SessionSecret))
}

func (c *AuthController) parseToken(token string) (*sessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(
		token,
		&sessionClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errs.Unauthorized("unexpected signing method")
			}
			return []byte(c.config.SessionSecret), nil
		},
	)
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return nil, errs.Unauthorized("invalid session token")
	}

	return claims, nil
}

func (c *AuthController) storeSession(ctx context.Context, sessionID, userID uuid.UUID) error {
	if c.db.Cache.Session == nil {
		return nil
	}

	return database.NewCacheBuilder(c.db.Cache.Session, sessionID.String()).
		WithContext(ctx).
		WithPrefix(SESSION_CACHE_PREFIX).
		WithStruct(userID.String()).
		WithTTL(SESSION_TTL).
		Set()
}
