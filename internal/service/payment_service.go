package service

import (
	"context"
	"errors"

	"github.com/coffeegram/coffee-backend/internal/common"
	"github.com/coffeegram/coffee-backend/internal/domain"
	"github.com/coffeegram/coffee-backend/internal/repository"
	"github.com/coffeegram/coffee-backend/pkg/logger"
)

// PaymentService handles post-slot purchases
type PaymentService interface {
	Checkout(ctx context.Context, email string, amount int) (*domain.CheckoutResponse, error)
	Complete(ctx context.Context, email string, req *domain.CompletePaymentRequest) (*domain.PaymentResponse, error)
	History(ctx context.Context, email string) ([]*domain.PaymentResponse, error)
}

type paymentService struct {
	payments repository.PaymentRepository
	users    repository.UserRepository
	gateway  CheckoutGateway
}

// NewPaymentService creates a new payment service
func NewPaymentService(payments repository.PaymentRepository, users repository.UserRepository,
	gateway CheckoutGateway) PaymentService {
	return &paymentService{payments: payments, users: users, gateway: gateway}
}

// Checkout opens a provider session and records the pending payment
func (s *paymentService) Checkout(ctx context.Context, email string, amount int) (*domain.CheckoutResponse, error) {
	sessionID, checkoutURL, err := s.gateway.CreateSession(email, amount)
	if err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		UserEmail: email,
		SessionID: sessionID,
		Amount:    amount,
		Status:    domain.PaymentPending,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	logger.GetLogger().Info().
		Str("email", email).
		Int("amount", amount).
		Msg("checkout session created")

	return &domain.CheckoutResponse{
		SessionID:   sessionID,
		CheckoutURL: checkoutURL,
	}, nil
}

// Complete credits the purchased slots exactly once per session. A
// session seen for the first time here is recorded before crediting,
// so retries and webhook races cannot double-credit.
func (s *paymentService) Complete(ctx context.Context, email string, req *domain.CompletePaymentRequest) (*domain.PaymentResponse, error) {
	payment, err := s.payments.FindBySessionID(ctx, req.SessionID)
	if errors.Is(err, common.ErrNotFound) {
		payment = &domain.Payment{
			UserEmail: email,
			SessionID: req.SessionID,
			Amount:    req.Amount,
			Status:    domain.PaymentPending,
		}
		if cerr := s.payments.Create(ctx, payment); cerr != nil {
			// someone else inserted the session first, reload it
			payment, err = s.payments.FindBySessionID(ctx, req.SessionID)
			if err != nil {
				return nil, err
			}
		}
	} else if err != nil {
		return nil, err
	}

	if payment.UserEmail != email {
		return nil, common.ErrForbidden
	}

	if err := s.payments.Complete(ctx, req.SessionID); err != nil {
		if errors.Is(err, common.ErrPaymentCompleted) {
			return payment.ToResponse(), err
		}
		return nil, err
	}

	if err := s.users.AdjustQuota(ctx, email, payment.Amount); err != nil {
		return nil, err
	}

	logger.GetLogger().Info().
		Str("email", email).
		Str("session_id", req.SessionID).
		Int("amount", payment.Amount).
		Msg("payment completed")

	payment.Status = domain.PaymentCompleted
	return payment.ToResponse(), nil
}

func (s *paymentService) History(ctx context.Context, email string) ([]*domain.PaymentResponse, error) {
	payments, err := s.payments.ListForUser(ctx, email)
	if err != nil {
		return nil, err
	}

	responses := make([]*domain.PaymentResponse, 0, len(payments))
	for _, payment := range payments {
		responses = append(responses, payment.ToResponse())
	}
	return responses, nil
}
