package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuebase/venue-booking-backend/internal/auth"
	"github.com/venuebase/venue-booking-backend/internal/user"
)

// fakeUserService serves accounts from a map keyed by email.
type fakeUserService struct {
	users    map[string]*user.User
	password string
}

func (f *fakeUserService) Register(_ context.Context, req user.RegisterRequest) (*user.User, error) {
	if _, exists := f.users[req.Email]; exists {
		return nil, user.ErrEmailAlreadyUsed
	}
	u := &user.User{
		ID:        uuid.NewString(),
		TenantID:  req.TenantID,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      user.RoleCustomer,
		IsActive:  true,
	}
	f.users[req.Email] = u
	f.password = req.Password
	return u, nil
}

func (f *fakeUserService) Login(_ context.Context, email, password string) (*user.User, error) {
	u, ok := f.users[email]
	if !ok || password != f.password {
		return nil, user.ErrInvalidCredentials
	}
	return u, nil
}

func (f *fakeUserService) GetByID(_ context.Context, id string) (*user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}

func newAuthRouter() (*gin.Engine, *fakeUserService) {
	gin.SetMode(gin.TestMode)

	svc := &fakeUserService{users: make(map[string]*user.User)}
	jwtManager := auth.NewJWTManager("access", "refresh", time.Minute, time.Hour)
	handler := NewHandler(svc, jwtManager)

	r := gin.New()
	v1 := r.Group("/v1")
	RegisterRoutes(v1, handler, auth.AuthRequired(jwtManager))
	return r, svc
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validRegisterBody() RegisterRequest {
	return RegisterRequest{
		TenantID:  uuid.NewString(),
		Email:     "jamie@example.com",
		Password:  "correct-horse",
		FirstName: "Jamie",
		LastName:  "Doe",
	}
}

func TestRegisterEndpoint(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r, _ := newAuthRouter()

		w := postJSON(r, "/v1/auth/register", validRegisterBody())
		require.Equal(t, http.StatusCreated, w.Code)

		var resp MeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.User.ID)
		assert.Equal(t, "jamie@example.com", resp.User.Email)
	})

	t.Run("binding failures", func(t *testing.T) {
		r, _ := newAuthRouter()

		body := validRegisterBody()
		body.Email = "not-an-email"
		assert.Equal(t, http.StatusBadRequest, postJSON(r, "/v1/auth/register", body).Code)

		body = validRegisterBody()
		body.Password = "short"
		assert.Equal(t, http.StatusBadRequest, postJSON(r, "/v1/auth/register", body).Code)

		body = validRegisterBody()
		body.TenantID = "not-a-uuid"
		assert.Equal(t, http.StatusBadRequest, postJSON(r, "/v1/auth/register", body).Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		r, _ := newAuthRouter()

		require.Equal(t, http.StatusCreated, postJSON(r, "/v1/auth/register", validRegisterBody()).Code)
		assert.Equal(t, http.StatusConflict, postJSON(r, "/v1/auth/register", validRegisterBody()).Code)
	})
}

func TestLoginEndpoint(t *testing.T) {
	r, _ := newAuthRouter()
	require.Equal(t, http.StatusCreated, postJSON(r, "/v1/auth/register", validRegisterBody()).Code)

	t.Run("success returns token pair", func(t *testing.T) {
		w := postJSON(r, "/v1/auth/login", LoginRequest{Email: "jamie@example.com", Password: "correct-horse"})
		require.Equal(t, http.StatusOK, w.Code)

		var resp LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, "jamie@example.com", resp.User.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := postJSON(r, "/v1/auth/login", LoginRequest{Email: "jamie@example.com", Password: "wrong"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed email", func(t *testing.T) {
		w := postJSON(r, "/v1/auth/login", LoginRequest{Email: "not-an-email", Password: "correct-horse"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
