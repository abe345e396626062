package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPending   = 1
	OrderStatusCancelled = 5
	OrderStatusFailed    = 7
)

type Order struct {
	ID         string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	UserID     string          `gorm:"size:36;index" json:"user_id"`
	OrderCode  string          `gorm:"type:varchar(255);unique;not null" json:"order_code"`
	OrderItems []OrderItem     `json:"items"`
	PromoCode  string          `gorm:"size:50" json:"promo_code,omitempty"`
	Subtotal   decimal.Decimal `gorm:"type:decimal(16,2);" json:"subtotal"`
	TaxAmount  decimal.Decimal `gorm:"type:decimal(16,2);" json:"tax"`
	Shipping   decimal.Decimal `gorm:"type:decimal(16,2);" json:"shipping"`
	Discount   decimal.Decimal `gorm:"type:decimal(16,2);" json:"discount"`
	GrandTotal decimal.Decimal `gorm:"type:decimal(16,2);" json:"total"`
	PaymentURL string          `gorm:"type:text" json:"payment_url"`
	Status     int             `gorm:"default:1" json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}
