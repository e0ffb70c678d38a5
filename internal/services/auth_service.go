package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"kirana/internal/models"
	"kirana/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService resolves calling identities. Sign-in normally happens through
// the upstream OAuth broker (the Google sign-in redirect flow terminates
// there); password login exists only for locally provisioned accounts such
// as the bootstrap admin.
type AuthService struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	jwtSecret   []byte
	sessionTTL  time.Duration
	brokerURL   string
	httpClient  *http.Client
}

// NewAuthService creates a new AuthService. brokerURL may be empty, which
// disables the OAuth session exchange.
func NewAuthService(userRepo repositories.UserRepository, sessionRepo repositories.SessionRepository, jwtSecret, brokerURL string, sessionTTL time.Duration) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 7 * 24 * time.Hour
	}
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtSecret:   []byte(jwtSecret),
		sessionTTL:  sessionTTL,
		brokerURL:   brokerURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// SessionTTL returns how long issued sessions live, for cookie max-age.
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}

// brokerSession is the payload returned by the OAuth broker for a completed
// sign-in.
type brokerSession struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// ExchangeSession trades an upstream OAuth session ID for a local session.
// The user is upserted by email: name and picture refresh on every sign-in,
// phone number and address are left alone.
func (s *AuthService) ExchangeSession(sessionID string) (*models.User, string, error) {
	if s.brokerURL == "" {
		return nil, "", fmt.Errorf("auth broker is not configured")
	}

	req, err := http.NewRequest(http.MethodGet, s.brokerURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build broker request: %w", err)
	}
	req.Header.Set("X-Session-ID", sessionID)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to reach auth broker: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("auth broker rejected session: status %d: %w", resp.StatusCode, ErrUnauthorized)
	}

	var payload brokerSession
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, "", fmt.Errorf("failed to decode broker response: %w", err)
	}
	if payload.Email == "" {
		return nil, "", fmt.Errorf("auth broker returned no email: %w", ErrUnauthorized)
	}

	user, err := s.userRepo.GetByEmail(payload.Email)
	switch {
	case err == nil:
		user.Name = payload.Name
		user.Picture = payload.Picture
		if err := s.userRepo.Update(user); err != nil {
			return nil, "", fmt.Errorf("failed to refresh user profile: %w", err)
		}
	case errors.Is(err, repositories.ErrNotFound):
		user = &models.User{
			ID:        models.NewID("user"),
			Email:     payload.Email,
			Name:      payload.Name,
			Picture:   payload.Picture,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, "", fmt.Errorf("failed to create user: %w", err)
		}
	default:
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	token, err := s.createSession(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login authenticates a locally provisioned account by email and password.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		// Do not reveal whether the account exists.
		return nil, "", ErrInvalidCredentials
	}
	if user.PasswordHash == "" {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.createSession(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// createSession stores a session row and returns a signed token carrying the
// session ID. Deleting the row later revokes the token.
func (s *AuthService) createSession(userID string) (string, error) {
	now := time.Now().UTC()
	session := &models.Session{
		ID:        models.NewID("sess"),
		UserID:    userID,
		ExpiresAt: now.Add(s.sessionTTL),
		CreatedAt: now,
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid":     session.ID,
		"user_id": userID,
		"exp":     session.ExpiresAt.Unix(),
		"iat":     now.Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return tokenString, nil
}

// Authenticate resolves a session token to its user. It fails when the
// token does not verify, the session row is gone (logged out) or expired.
func (s *AuthService) Authenticate(tokenString string) (*models.User, error) {
	sessionID, err := s.parseSessionID(tokenString)
	if err != nil {
		return nil, err
	}

	session, err := s.sessionRepo.GetByID(sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session.Expired(time.Now().UTC()) {
		if err := s.sessionRepo.Delete(session.ID); err != nil {
			log.Printf("Failed to drop expired session %s: %v", session.ID, err)
		}
		return nil, ErrUnauthorized
	}

	user, err := s.userRepo.GetByID(session.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// Logout revokes the session behind a token. Unknown or mangled tokens are
// ignored so logout is idempotent.
func (s *AuthService) Logout(tokenString string) error {
	sessionID, err := s.parseSessionID(tokenString)
	if err != nil {
		return nil
	}
	return s.sessionRepo.Delete(sessionID)
}

func (s *AuthService) parseSessionID(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", ErrUnauthorized
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrUnauthorized
	}
	sessionID, _ := claims["sid"].(string)
	if sessionID == "" {
		return "", ErrUnauthorized
	}
	return sessionID, nil
}

// EnsureAdmin provisions (or promotes) the bootstrap admin account from
// configuration. A blank email disables the bootstrap.
func (s *AuthService) EnsureAdmin(email, password string) error {
	if email == "" {
		return nil
	}
	if password == "" {
		return fmt.Errorf("admin bootstrap requires a password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	user, err := s.userRepo.GetByEmail(email)
	switch {
	case err == nil:
		user.IsAdmin = true
		user.PasswordHash = string(hash)
		return s.userRepo.Update(user)
	case errors.Is(err, repositories.ErrNotFound):
		return s.userRepo.Create(&models.User{
			ID:           models.NewID("user"),
			Email:        email,
			Name:         "Store Admin",
			IsAdmin:      true,
			PasswordHash: string(hash),
			CreatedAt:    time.Now().UTC(),
		})
	default:
		return fmt.Errorf("failed to look up admin account: %w", err)
	}
}
