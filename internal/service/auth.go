package service

import (
	"context"
	"errors"

	"dealerdesk-backend/internal/domain"
	"dealerdesk-backend/internal/logger"
	"dealerdesk-backend/internal/repository"
	"dealerdesk-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrEmailTaken           = errors.New("email already registered")
	ErrDealershipNotActive  = errors.New("dealership is not active")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidToken         = errors.New("invalid token")
)

type authService struct {
	profileRepo    repository.ProfileRepository
	dealershipRepo repository.DealershipRepository
	tokens         security.TokenManager
}

func NewAuthService(profileRepo repository.ProfileRepository, dealershipRepo repository.DealershipRepository, tokens security.TokenManager) AuthService {
	return &authService{
		profileRepo:    profileRepo,
		dealershipRepo: dealershipRepo,
		tokens:         tokens,
	}
}

func (s *authService) Signup(ctx context.Context, dealershipCode, name, email, phone, password string) (*domain.Profile, string, string, error) {
	logger.EnterMethod("authService.Signup", "email", email, "dealershipCode", dealershipCode)

	dealership, err := s.dealershipRepo.GetByCode(ctx, dealershipCode)
	if err != nil {
		logger.ExitMethodWithError("authService.Signup", err, "dealershipCode", dealershipCode)
		return nil, "", "", err
	}
	if dealership.Status != domain.DealershipStatusActive {
		return nil, "", "", ErrDealershipNotActive
	}

	if existing, err := s.profileRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, "", "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}

	// First staff member of a dealership becomes its admin.
	role := domain.ProfileRoleEmployee
	existing, err := s.profileRepo.ListByDealership(ctx, dealership.ID)
	if err == nil && len(existing) == 0 {
		role = domain.ProfileRoleAdmin
	}

	profile := &domain.Profile{
		DealershipID: &dealership.ID,
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		logger.ExitMethodWithError("authService.Signup", err, "email", email)
		return nil, "", "", err
	}

	access, refresh, err := s.generateTokens(profile)
	if err != nil {
		return nil, "", "", err
	}

	logger.ExitMethod("authService.Signup", "profileID", profile.ID, "role", role)
	return profile, access, refresh, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.Profile, string, string, error) {
	logger.EnterMethod("authService.Login", "email", email)

	profile, err := s.profileRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	access, refresh, err := s.generateTokens(profile)
	if err != nil {
		return nil, "", "", err
	}

	logger.ExitMethod("authService.Login", "profileID", profile.ID)
	return profile, access, refresh, nil
}

func (s *authService) RefreshToken(ctx context.Context, refresh string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refresh)
	if err != nil {
		return "", "", ErrInvalidToken
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", security.ErrWrongTokenType
	}

	// Re-read the profile so role changes take effect on refresh.
	profile, err := s.profileRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", ErrInvalidToken
	}

	return s.generateTokens(profile)
}

func (s *authService) generateTokens(profile *domain.Profile) (string, string, error) {
	access, err := s.tokens.GenerateAccessToken(profile.ID, profile.Email, profile.Role, profile.DealershipID)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(profile.ID, profile.Email)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
