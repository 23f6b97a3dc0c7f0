package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Sushanth105/busResSys/internal/database"
	"github.com/Sushanth105/busResSys/internal/models"
	"github.com/Sushanth105/busResSys/internal/utils"
	"github.com/Sushanth105/busResSys/pkg/jwt"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Errors surfaced by the auth service
var (
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

// TokenPair holds a freshly issued access/refresh token pair
type TokenPair struct {
	AccessToken  string             `json:"access_token"`
	RefreshToken string             `json:"refresh_token"`
	User         models.UserProfile `json:"user"`
}

// AuthService handles registration, login, and token rotation
type AuthService struct {
	userRepo   *database.UserRepository
	tokenRepo  *database.RefreshTokenRepository
	jwtService *jwt.Service
	bcryptCost int
	logger     *logrus.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo *database.UserRepository,
	tokenRepo *database.RefreshTokenRepository,
	jwtService *jwt.Service,
	bcryptCost int,
	logger *logrus.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates a new user account with a bcrypt-hashed password
func (s *AuthService) Register(req *models.RegisterRequest) (*models.UserProfile, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := models.RoleUser
	if req.Role == string(models.RoleAdmin) {
		role = models.RoleAdmin
	}

	user, err := s.userRepo.CreateUser(req.Name, req.Email, string(hash), role)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("User registered")

	profile := user.Profile()
	return &profile, nil
}

// Login verifies credentials and issues a token pair. The refresh token's
// hash is stored with device info parsed from the User-Agent so only the
// most recently issued token per user remains valid.
func (s *AuthService) Login(email, password, ipAddress, userAgent string) (*TokenPair, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(user, ipAddress, userAgent)
}

// Refresh validates the presented refresh token against the stored hash
// and rotates both tokens.
func (s *AuthService) Refresh(refreshToken, ipAddress, userAgent string) (*TokenPair, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	ok, err := s.tokenRepo.Matches(claims.UserID, refreshToken)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.userRepo.GetUserByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidRefreshToken
	}

	if err := s.tokenRepo.TouchLastUsed(user.ID); err != nil {
		s.logger.WithError(err).Warn("Failed to record refresh token usage")
	}

	return s.issueTokens(user, ipAddress, userAgent)
}

// Logout revokes the stored refresh token for the user
func (s *AuthService) Logout(userID string) error {
	return s.tokenRepo.Revoke(userID)
}

// issueTokens generates a token pair and stores the refresh token hash
func (s *AuthService) issueTokens(user *models.User, ipAddress, userAgent string) (*TokenPair, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	device := utils.ParseUserAgent(userAgent)
	expiresAt := time.Now().Add(s.jwtService.RefreshTokenExpiry())

	err = s.tokenRepo.StoreRefreshToken(
		user.ID, refreshToken,
		device.DeviceType, device.OS, device.Browser, ipAddress, userAgent,
		expiresAt,
	)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.Profile(),
	}, nil
}
