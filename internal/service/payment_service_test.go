package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coffeegram/coffee-backend/internal/common"
	"github.com/coffeegram/coffee-backend/internal/domain"
	"github.com/coffeegram/coffee-backend/internal/repository"
)

// fakeGateway issues deterministic session ids without network access
type fakeGateway struct {
	sessions int
}

func (g *fakeGateway) CreateSession(email string, amount int) (string, string, error) {
	g.sessions++
	id := fmt.Sprintf("cs_fake_%d", g.sessions)
	return id, "https://checkout.example/" + id, nil
}

func newPaymentFixture(t *testing.T) (PaymentService, repository.UserRepository) {
	db := newTestDB(t)
	seedUser(t, db, "a@x.com")

	users := repository.NewUserRepository(db)
	svc := NewPaymentService(repository.NewPaymentRepository(db), users, &fakeGateway{})
	return svc, users
}

func TestCheckoutAndComplete(t *testing.T) {
	svc, users := newPaymentFixture(t)
	ctx := context.Background()

	checkout, err := svc.Checkout(ctx, "a@x.com", 10)
	require.NoError(t, err)
	assert.NotEmpty(t, checkout.SessionID)
	assert.NotEmpty(t, checkout.CheckoutURL)

	resp, err := svc.Complete(ctx, "a@x.com", &domain.CompletePaymentRequest{
		SessionID: checkout.SessionID,
		Amount:    10,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCompleted, resp.Status)

	user, err := users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPostQuota+10, user.PostsRemaining)
}

func TestCompleteCreditsOnlyOnce(t *testing.T) {
	svc, users := newPaymentFixture(t)
	ctx := context.Background()

	checkout, err := svc.Checkout(ctx, "a@x.com", 10)
	require.NoError(t, err)

	req := &domain.CompletePaymentRequest{SessionID: checkout.SessionID, Amount: 10}
	_, err = svc.Complete(ctx, "a@x.com", req)
	require.NoError(t, err)

	// a replayed redirect must not credit again
	_, err = svc.Complete(ctx, "a@x.com", req)
	assert.ErrorIs(t, err, common.ErrPaymentCompleted)

	user, err := users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPostQuota+10, user.PostsRemaining)
}

func TestCompleteWithoutPriorCheckout(t *testing.T) {
	svc, users := newPaymentFixture(t)
	ctx := context.Background()

	// webhook-style completion for a session this instance never saw
	resp, err := svc.Complete(ctx, "a@x.com", &domain.CompletePaymentRequest{
		SessionID: "cs_external_1",
		Amount:    5,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCompleted, resp.Status)

	user, err := users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPostQuota+5, user.PostsRemaining)
}

func TestCompleteRejectsForeignSession(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "a@x.com")
	seedUser(t, db, "b@x.com")

	users := repository.NewUserRepository(db)
	svc := NewPaymentService(repository.NewPaymentRepository(db), users, &fakeGateway{})
	ctx := context.Background()

	checkout, err := svc.Checkout(ctx, "a@x.com", 10)
	require.NoError(t, err)

	_, err = svc.Complete(ctx, "b@x.com", &domain.CompletePaymentRequest{
		SessionID: checkout.SessionID,
		Amount:    10,
	})
	assert.ErrorIs(t, err, common.ErrForbidden)
}
