package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/zahid-akhtar7979/wildlife-api/config"
	"github.com/zahid-akhtar7979/wildlife-api/models"
	"github.com/zahid-akhtar7979/wildlife-api/repositories"
)

var (
	errInvalidCredentials = models.ErrorUnauthorized{Kind: models.InvalidCredential, Message: "Invalid credentials"}
	errInvalidToken       = models.ErrorUnauthorized{Kind: models.InvalidCredential, Message: "Invalid token"}
	errExpiredToken       = models.ErrorUnauthorized{Kind: models.ExpiredCredential, Message: "Token expired"}
	errUnknownAccount     = models.ErrorUnauthorized{Kind: models.Unauthenticated, Message: "User not found"}
	errAccountInactive    = models.ErrorForbidden{Message: "Account not approved or disabled"}
)

// Claims is the payload of an issued access token.
type Claims struct {
	UserID uint `json:"userId"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	GetProfile(ctx context.Context, id uint) (*models.AuthUser, error)
	VerifyToken(ctx context.Context, token string) (*models.AuthUser, error)
}

type authService struct {
	userRepo repositories.UserRepository
	jwt      config.JWTConfig
	now      func() time.Time
}

func NewAuthService(userRepo repositories.UserRepository, jwtCfg config.JWTConfig) AuthService {
	return &authService{
		userRepo: userRepo,
		jwt:      jwtCfg,
		now:      time.Now,
	}
}

// Register creates a contributor account that stays locked until an admin
// approves it. No token is issued.
func (s *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	hashed, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
		Role:     models.RoleContributor,
		Approved: false,
		Enabled:  true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errInvalidCredentials
	}

	if !user.CanAuthenticate() {
		return nil, errAccountInactive
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  *models.NewAuthUser(user),
	}, nil
}

func (s *authService) GetProfile(ctx context.Context, id uint) (*models.AuthUser, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.NewAuthUser(user), nil
}

// VerifyToken resolves a bearer token to the account it was issued for and
// applies the enabled/approved gate.
func (s *authService) VerifyToken(ctx context.Context, tokenString string) (*models.AuthUser, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwt.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errExpiredToken
		}
		return nil, errInvalidToken
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, errInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, errUnknownAccount
		}
		return nil, err
	}

	if !user.CanAuthenticate() {
		return nil, errAccountInactive
	}

	return models.NewAuthUser(user), nil
}

func (s *authService) generateToken(user *models.User) (string, error) {
	now := s.now()

	claims := Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Issuer:    s.jwt.Issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwt.Expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwt.Secret)
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
