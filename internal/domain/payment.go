package domain

import "time"

// Payment statuses
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
)

// SlotUnitPriceCents is the checkout price per post slot
const SlotUnitPriceCents = 100

// Payment records a post-slot purchase. SessionID is the provider's
// checkout session id; its unique index makes completion idempotent.
type Payment struct {
	ID          uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserEmail   string     `gorm:"column:user_email;index;size:190" json:"user"`
	SessionID   string     `gorm:"column:session_id;uniqueIndex;size:255" json:"session_id"`
	Amount      int        `gorm:"column:amount" json:"amount"`
	Status      string     `gorm:"column:status;default:pending" json:"status"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}

// CheckoutRequest starts a checkout for post slots
type CheckoutRequest struct {
	Amount int `json:"amount" binding:"required,min=1,max=100"`
}

// CheckoutResponse carries the provider redirect URL
type CheckoutResponse struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

// CompletePaymentRequest finalizes a checkout after redirect
type CompletePaymentRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Amount    int    `json:"amount" binding:"required,min=1"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID        uint64 `json:"id"`
	User      string `json:"user"`
	SessionID string `json:"session_id"`
	Amount    int    `json:"amount"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// ToResponse converts Payment to PaymentResponse
func (p *Payment) ToResponse() *PaymentResponse {
	return &PaymentResponse{
		ID:        p.ID,
		User:      p.UserEmail,
		SessionID: p.SessionID,
		Amount:    p.Amount,
		Status:    p.Status,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}
