package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jogoo/config"
	"jogoo/internal/models"
	"jogoo/pkg/payment"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type nopProvider struct{}

func (nopProvider) InitiateSTKPush(ctx context.Context, req payment.STKPushRequest) (*payment.STKPushResponse, error) {
	return &payment.STKPushResponse{Raw: []byte(`{}`)}, nil
}

type nopSender struct{}

func (nopSender) Send(ctx context.Context, to, body string) error { return nil }

func testConfig(t *testing.T) *config.Config {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)
	return &config.Config{
		Server: config.ServerConfig{Env: "test"},
		JWT:    config.JWTConfig{Secret: "test-secret", Expiry: time.Hour, Issuer: "jogoo"},
		Admin:  config.AdminConfig{Email: "admin@example.com", PasswordHash: string(hash)},
	}
}

func testEngine(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Donation{}))
	return Setup(testConfig(t), db, nopProvider{}, nopSender{}), db
}

func TestWelcomeRoute(t *testing.T) {
	r, _ := testEngine(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Welcome to Jogoo CBO M-Pesa Donation API")
}

func TestAdminFlow(t *testing.T) {
	r, db := testEngine(t)
	donation := &models.Donation{
		DonorName:         "Jane Doe",
		Phone:             "254712345678",
		Amount:            300,
		CheckoutRequestID: "ws_CO_1",
		Status:            models.DonationStatusPaid,
	}
	require.NoError(t, db.Create(donation).Error)

	// Donations list requires a token.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/donations", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Bad credentials are rejected.
	body, _ := json.Marshal(map[string]string{"email": "admin@example.com", "password": "wrong"})
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Login with the configured credentials.
	body, _ = json.Marshal(map[string]string{"email": "admin@example.com", "password": "hunter22"})
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var loginResp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	require.NotEmpty(t, loginResp.AccessToken)

	// Authenticated listing and totals.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin/donations?status=Paid", nil)
	req.Header.Set("Authorization", "Bearer "+loginResp.AccessToken)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Jane Doe")

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/admin/donations/%d", donation.ID), nil)
	req.Header.Set("Authorization", "Bearer "+loginResp.AccessToken)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ws_CO_1")

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin/donations/totals", nil)
	req.Header.Set("Authorization", "Bearer "+loginResp.AccessToken)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var totals struct {
		PaidCount  int64 `json:"paid_count"`
		PaidAmount int64 `json:"paid_amount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &totals))
	assert.Equal(t, int64(1), totals.PaidCount)
	assert.Equal(t, int64(300), totals.PaidAmount)
}
