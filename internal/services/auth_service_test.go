package services_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kirana/internal/models"
	"kirana/internal/repositories"
	"kirana/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
)

const testJWTSecret = "test_jwt_secret"

func newAuthService(brokerURL string) (*services.AuthService, *repositories.MockUserRepository, *repositories.MockSessionRepository) {
	userRepo := repositories.NewMockUserRepository()
	sessionRepo := repositories.NewMockSessionRepository()
	service := services.NewAuthService(userRepo, sessionRepo, testJWTSecret, brokerURL, time.Hour)
	return service, userRepo, sessionRepo
}

func TestAuthService_EnsureAdminAndLogin(t *testing.T) {
	service, userRepo, _ := newAuthService("")

	assert.NoError(t, service.EnsureAdmin("admin@example.com", "supersecret"))

	admin, err := userRepo.GetByEmail("admin@example.com")
	assert.NoError(t, err)
	assert.True(t, admin.IsAdmin)
	assert.NotEmpty(t, admin.PasswordHash)

	user, token, err := service.Login("admin@example.com", "supersecret")
	assert.NoError(t, err)
	assert.True(t, user.IsAdmin)
	assert.NotEmpty(t, token)

	resolved, err := service.Authenticate(token)
	assert.NoError(t, err)
	assert.Equal(t, admin.ID, resolved.ID)
}

func TestAuthService_EnsureAdminPromotesExistingUser(t *testing.T) {
	service, userRepo, _ := newAuthService("")

	existing := &models.User{ID: "user_1", Email: "asha@example.com", Name: "Asha"}
	assert.NoError(t, userRepo.Create(existing))

	assert.NoError(t, service.EnsureAdmin("asha@example.com", "supersecret"))

	stored, err := userRepo.GetByID("user_1")
	assert.NoError(t, err)
	assert.True(t, stored.IsAdmin)
	assert.Equal(t, "Asha", stored.Name)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	service, _, _ := newAuthService("")
	assert.NoError(t, service.EnsureAdmin("admin@example.com", "supersecret"))

	_, _, err := service.Login("admin@example.com", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	// Unknown accounts get the same answer as wrong passwords.
	_, _, err = service.Login("nobody@example.com", "supersecret")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthService_AuthenticateGarbageToken(t *testing.T) {
	service, _, _ := newAuthService("")

	_, err := service.Authenticate("not-a-token")
	assert.ErrorIs(t, err, services.ErrUnauthorized)
}

func TestAuthService_LogoutRevokesSession(t *testing.T) {
	service, _, _ := newAuthService("")
	assert.NoError(t, service.EnsureAdmin("admin@example.com", "supersecret"))

	_, token, err := service.Login("admin@example.com", "supersecret")
	assert.NoError(t, err)

	assert.NoError(t, service.Logout(token))

	// The JWT is still within its expiry, but the session row is gone.
	_, err = service.Authenticate(token)
	assert.ErrorIs(t, err, services.ErrUnauthorized)

	// Logging out twice, or with a mangled token, is fine.
	assert.NoError(t, service.Logout(token))
	assert.NoError(t, service.Logout("not-a-token"))
}

func TestAuthService_AuthenticateExpiredSession(t *testing.T) {
	service, userRepo, sessionRepo := newAuthService("")

	user := &models.User{ID: "user_1", Email: "asha@example.com", Name: "Asha"}
	assert.NoError(t, userRepo.Create(user))

	// A session row that expired an hour ago, carried by a JWT whose own
	// expiry is still in the future. The row's expiry wins.
	now := time.Now().UTC()
	session := &models.Session{
		ID:        "sess_expired00000",
		UserID:    user.ID,
		ExpiresAt: now.Add(-time.Hour),
		CreatedAt: now.Add(-2 * time.Hour),
	}
	assert.NoError(t, sessionRepo.Create(session))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid":     session.ID,
		"user_id": user.ID,
		"exp":     now.Add(time.Hour).Unix(),
		"iat":     now.Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	assert.NoError(t, err)

	_, err = service.Authenticate(signed)
	assert.ErrorIs(t, err, services.ErrUnauthorized)

	// The expired row is dropped on first use.
	_, err = sessionRepo.GetByID(session.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestAuthService_ExchangeSession(t *testing.T) {
	broker := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Session-ID") != "upstream-session-id" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"email":"asha@example.com","name":"Asha","picture":"https://example.com/asha.png"}`))
	}))
	defer broker.Close()

	service, userRepo, _ := newAuthService(broker.URL)

	user, token, err := service.ExchangeSession("upstream-session-id")
	assert.NoError(t, err)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.Equal(t, "Asha", user.Name)
	assert.NotEmpty(t, token)

	resolved, err := service.Authenticate(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)

	// A second exchange refreshes name and picture but keeps the contact
	// info the user filled in meanwhile.
	stored, err := userRepo.GetByEmail("asha@example.com")
	assert.NoError(t, err)
	stored.PhoneNumber = "9876543210"
	stored.HomeAddress = "12 Market Road"
	assert.NoError(t, userRepo.Update(stored))

	again, _, err := service.ExchangeSession("upstream-session-id")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
	assert.Equal(t, "9876543210", again.PhoneNumber)
}

func TestAuthService_ExchangeSessionRejected(t *testing.T) {
	broker := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer broker.Close()

	service, _, _ := newAuthService(broker.URL)

	_, _, err := service.ExchangeSession("bogus")
	assert.ErrorIs(t, err, services.ErrUnauthorized)
}

func TestAuthService_ExchangeSessionWithoutBroker(t *testing.T) {
	service, _, _ := newAuthService("")

	_, _, err := service.ExchangeSession("anything")
	assert.Error(t, err)
}
