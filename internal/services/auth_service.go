package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/apperr"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/models"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/repositories"
	"github.com/ahmedhassan0101/multitenant-ecommerce/pkg/payments"
)

// AuthService handles business logic for authentication and seller
// registration.
type AuthService struct {
	userRepo   repositories.UserRepository
	tenantRepo repositories.TenantRepository
	gateway    payments.Gateway
	jwtSecret  []byte
	tokenDurat time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, tenantRepo repositories.TenantRepository, gateway payments.Gateway, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tenantRepo: tenantRepo,
		gateway:    gateway,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
	}
}

// RegisterInput is the data needed to register a buyer, or a seller when the
// store fields are set.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	// StoreName/StoreSlug provision a tenant with a connected payment
	// account at registration time. Both empty means buyer-only account.
	StoreName string
	StoreSlug string
}

// RegisterUser registers a new user, hashes their password and, for
// sellers, provisions the tenant and its connected payment account. It
// returns the created user and a session token.
func (s *AuthService) RegisterUser(input RegisterInput) (*models.User, string, error) {
	if existing, err := s.userRepo.GetByUsername(input.Username); err == nil && existing != nil {
		return nil, "", fmt.Errorf("username %q already taken: %w", input.Username, apperr.ErrConflict)
	}
	if existing, err := s.userRepo.GetByEmail(input.Email); err == nil && existing != nil {
		return nil, "", fmt.Errorf("email %q already registered: %w", input.Email, apperr.ErrConflict)
	}
	if input.StoreSlug != "" {
		if existing, err := s.tenantRepo.GetBySlug(input.StoreSlug); err == nil && existing != nil {
			return nil, "", fmt.Errorf("store slug %q already taken: %w", input.StoreSlug, apperr.ErrConflict)
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: input.Username,
		Email:    input.Email,
		Password: string(hashedPassword),
		Roles:    models.RoleUser,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", fmt.Errorf("failed to register user: %w", err)
	}

	if input.StoreSlug != "" {
		accountID, err := s.gateway.CreateAccount(input.Email)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create payment account: %w", err)
		}
		tenant := &models.Tenant{
			Name:            input.StoreName,
			Slug:            input.StoreSlug,
			StripeAccountID: accountID,
		}
		if err := s.tenantRepo.Create(tenant); err != nil {
			return nil, "", fmt.Errorf("failed to create tenant: %w", err)
		}
		if err := s.userRepo.AttachTenant(user.ID, tenant); err != nil {
			return nil, "", fmt.Errorf("failed to link tenant: %w", err)
		}
		user.Tenants = append(user.Tenants, *tenant)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// LoginUser authenticates a user by email and returns a session token.
func (s *AuthService) LoginUser(email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		// Do not reveal whether the email exists.
		return "", fmt.Errorf("invalid credentials: %w", apperr.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials: %w", apperr.ErrUnauthorized)
	}
	return s.generateToken(user)
}

// Session resolves a token to the authenticated user, owned tenants
// populated.
func (s *AuthService) Session(tokenString string) (*models.User, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return nil, fmt.Errorf("token missing user_id: %w", apperr.ErrUnauthorized)
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("session user no longer exists: %w", apperr.ErrUnauthorized)
		}
		return nil, err
	}
	return user, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if
// valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", apperr.ErrUnauthorized)
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token: %w", apperr.ErrUnauthorized)
}

func (s *AuthService) generateToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(s.tokenDurat).Unix(),
		"iat":      time.Now().Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}
