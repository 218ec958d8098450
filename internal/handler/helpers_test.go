package handler

import (
	"context"
	"sync"
	"testing"

	"jogoo/internal/models"
	"jogoo/internal/repository"
	"jogoo/pkg/payment"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Donation{}))
	return db
}

func newTestRepo(t *testing.T) (*repository.DonationRepository, *gorm.DB) {
	db := newTestDB(t)
	return repository.NewDonationRepository(db), db
}

// fakeProvider returns a canned response or error instead of calling Daraja.
type fakeProvider struct {
	resp *payment.STKPushResponse
	err  error

	mu       sync.Mutex
	requests []payment.STKPushRequest
}

func (f *fakeProvider) InitiateSTKPush(ctx context.Context, req payment.STKPushRequest) (*payment.STKPushResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

// fakeSender records sent messages and can be told to fail.
type fakeSender struct {
	err error

	mu     sync.Mutex
	sent   []string
	bodies []string
}

func (f *fakeSender) Send(ctx context.Context, to, body string) error {
	f.mu.Lock()
	f.sent = append(f.sent, to)
	f.bodies = append(f.bodies, body)
	f.mu.Unlock()
	return f.err
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}
