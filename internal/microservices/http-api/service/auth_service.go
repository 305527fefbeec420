package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"yamdb/internal/config"
	"yamdb/internal/mail"
	"yamdb/internal/middleware/auth"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/repository"
	"yamdb/internal/shared"

	"github.com/golang-jwt/jwt/v5"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	codeLength   = 12

	mailSubject = "Код подтверждения"
	mailBody    = "Ваш код подтверждения - %s"

	mailTimeout = 30 * time.Second
)

type AuthService interface {
	Register(ctx context.Context, email string) error
	ObtainToken(ctx context.Context, email, code string) (string, error)
	ValidateToken(tokenString string) (*shared.AuthClaims, error)
}

type authService struct {
	userRepo       repository.UserRepository
	codeRepo       repository.ConfirmationCodeRepository
	mailer         mail.Mailer
	log            *zap.Logger
	jwtSecret      []byte
	accessTokenTTL time.Duration
	now            func() time.Time
	// compareDummy burns one bcrypt comparison on every rejected exchange
	compareDummy func(password string)
}

func NewAuthService(
	userRepo repository.UserRepository,
	codeRepo repository.ConfirmationCodeRepository,
	mailer mail.Mailer,
	cfg *config.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		userRepo:       userRepo,
		codeRepo:       codeRepo,
		mailer:         mailer,
		log:            log,
		jwtSecret:      []byte(cfg.JWTSecret),
		accessTokenTTL: cfg.AccessTokenTTL,
		now:            time.Now,
		compareDummy:   auth.CompareDummy,
	}
}

// Register makes sure a user exists for email and mails it a fresh code.
// Any earlier code of the user stops working.
func (s *authService) Register(ctx context.Context, email string) error {
	user, err := s.findOrCreateUser(ctx, email)
	if err != nil {
		return err
	}

	code, err := gonanoid.Generate(codeAlphabet, codeLength)
	if err != nil {
		return fmt.Errorf("generate confirmation code: %w", err)
	}
	if err := s.codeRepo.Replace(ctx, user.ID, code); err != nil {
		return err
	}

	msg := mail.Message{
		To:      user.Email,
		Subject: mailSubject,
		Body:    fmt.Sprintf(mailBody, code),
	}
	// delivery outcome is not reported to the caller
	go s.deliver(context.WithoutCancel(ctx), msg)
	return nil
}

func (s *authService) findOrCreateUser(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = &models.User{Username: email, Email: email}
	err = s.userRepo.Create(ctx, user)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, err
	}

	// a concurrent request created the same email first, or the email is
	// already someone's username
	user, err = s.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, invalid(ErrUsernameTaken, "email", "A user with that username already exists.")
	}
	return user, err
}

func (s *authService) deliver(ctx context.Context, msg mail.Message) {
	ctx, cancel := context.WithTimeout(ctx, mailTimeout)
	defer cancel()

	if err := s.mailer.Send(ctx, msg); err != nil {
		s.log.Error("confirmation code delivery failed", zap.String("to", msg.To), zap.Error(err))
	}
}

// ObtainToken exchanges a live code for a bearer token and burns the code.
// Every rejection returns ErrAuthenticationFailed after the same bcrypt work.
func (s *authService) ObtainToken(ctx context.Context, email, code string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", s.reject(code)
		}
		return "", err
	}

	stored, err := s.codeRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", s.reject(code)
		}
		return "", err
	}

	match := subtle.ConstantTimeCompare([]byte(stored.Code), []byte(code)) == 1
	if !match || !user.CanAuthenticate() {
		return "", s.reject(code)
	}

	consumed, err := s.codeRepo.Consume(ctx, user.ID, stored.Code)
	if err != nil {
		return "", err
	}
	if !consumed {
		// used or replaced by a concurrent request
		return "", s.reject(code)
	}

	return s.generateAccessToken(user)
}

func (s *authService) reject(code string) error {
	s.compareDummy(code)
	return ErrAuthenticationFailed
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := s.now()
	claims := shared.AuthClaims{
		UserID:   user.ID,
		Username: user.Username,
		Type:     shared.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *authService) ValidateToken(tokenString string) (*shared.AuthClaims, error) {
	claims := &shared.AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return s.jwtSecret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Type != shared.TokenTypeAccess || claims.UserID == "" {
		return nil, errors.New("not an access token")
	}
	return claims, nil
}
