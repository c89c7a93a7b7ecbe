package orderbook

import "grynvault-backend/internal/domain/order"

type AcceptInput struct {
	OrderID string `json:"-"`
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
}

type AcceptDTO struct {
	Order     order.Order `json:"order"`
	Delivered bool        `json:"delivered"`
}

type RefreshDTO struct {
	Demand int `json:"demand"`
	Supply int `json:"supply"`
}
