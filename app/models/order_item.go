package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItem struct {
	ID          string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	OrderID     string          `gorm:"size:36;index" json:"order_id"`
	ProductID   string          `gorm:"size:36;index" json:"product_id"`
	ProductName string          `gorm:"size:255" json:"product_name"`
	Size        string          `gorm:"size:50" json:"size"`
	Color       string          `gorm:"size:50" json:"color"`
	Qty         int             `json:"qty"`
	Price       decimal.Decimal `gorm:"type:decimal(16,2);" json:"price"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(16,2);" json:"line_total"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if oi.ID == "" {
		oi.ID = uuid.New().String()
	}
	return
}

func NewOrderItem(item CartItem) OrderItem {
	return OrderItem{
		ProductID:   item.ID,
		ProductName: item.Name,
		Size:        item.Variant.Size,
		Color:       item.Variant.Color,
		Qty:         item.Quantity,
		Price:       item.Price,
		LineTotal:   item.LineTotal(),
	}
}
