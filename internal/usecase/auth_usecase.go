package usecase

import (
	"context"
	"errors"
	"time"

	"consultation-booking/internal/delivery/dto"
	"consultation-booking/internal/domain/entity"
	"consultation-booking/internal/domain/repository"
	"consultation-booking/internal/infrastructure/cache"
	"consultation-booking/pkg/jwt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*entity.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	// ValidateToken serves the internal validation endpoint. Verified
	// claim sets are cached keyed by the literal token string, with the
	// TTL clamped to the token's remaining validity so an expired token
	// is never served from cache. A revoked-but-unexpired token may
	// still verify for up to one cache TTL window.
	ValidateToken(ctx context.Context, token string) (*dto.ClaimSet, error)
}

type authUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	userRepo   repository.UserRepository
	jwtService *jwt.JWTService
	cache      cache.Store
	cacheTTL   time.Duration
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	jwtService *jwt.JWTService,
	cacheStore cache.Store,
	cacheTTL time.Duration,
) AuthUsecase {
	return &authUsecase{
		db:         db,
		log:        log,
		userRepo:   userRepo,
		jwtService: jwtService,
		cache:      cacheStore,
		cacheTTL:   cacheTTL,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*entity.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Email:    req.Email,
		Password: string(hashedPassword),
	}

	if err := u.userRepo.Create(ctx, u.db, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	return user, nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := u.userRepo.FindByEmail(ctx, u.db, req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := u.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		u.log.Warnf("Failed to generate token: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: token,
		ExpiresIn:   int64(u.jwtService.GetExpiry().Seconds()),
	}, nil
}

func (u *authUsecase) ValidateToken(ctx context.Context, token string) (*dto.ClaimSet, error) {
	cacheKey := cache.TokenKey(token)

	var cached dto.ClaimSet
	if u.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	claims, err := u.jwtService.ValidateToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claimSet := &dto.ClaimSet{
		Sub:   claims.Subject,
		Email: claims.Email,
		Iat:   claims.IssuedAt.Unix(),
		Exp:   claims.ExpiresAt.Unix(),
	}

	ttl := u.cacheTTL
	if remaining := time.Until(claims.ExpiresAt.Time); remaining < ttl {
		ttl = remaining
	}
	if ttl > 0 {
		if err := u.cache.Set(ctx, cacheKey, claimSet, ttl); err != nil {
			return nil, err
		}
	}

	return claimSet, nil
}
