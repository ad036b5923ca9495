package entity

import (
	"github.com/shopspring/decimal"
)

// ProductType distinguishes the two catalog lines the store sells.
type ProductType string

const (
	ProductFurniture ProductType = "FURNITURE"
	ProductHomeDeco  ProductType = "HOMEDECO"
)

// Order status strings exactly as the backend stores them.
const (
	OrderToBeShipped = "To Be Ship"
	OrderShipped     = "Shipped"
)

// PaymentPaid is the payment status recorded after a successful gateway capture.
const PaymentPaid = "PAID (Stripe)"

// Product is a read-only snapshot of a catalog item. The backend owns the
// record; a snapshot with Stock == 0 is not purchasable.
type Product struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Type      ProductType     `json:"type"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Stock     int             `json:"stock"`
	ImageURL  string          `json:"image"`
	Category  string          `json:"category"`
	Details   string          `json:"details"`
	Size      string          `json:"size"`
}

// InStock reports whether the product can be added to a cart at all.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// CartEntry is one line of a user's cart as the backend returns it.
// UnitPrice is the server-side price snapshot taken when the entry was added.
type CartEntry struct {
	CartID      int             `json:"cartId"`
	UserID      int             `json:"userId"`
	ProductID   int             `json:"productId"`
	ProductType ProductType     `json:"productType"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image"`
}

// ShippingDetails are collected during checkout. Name and email come from the
// user's profile and are not editable in the flow; phone and address are.
type ShippingDetails struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// Complete reports whether the user-editable fields have been filled in.
func (d ShippingDetails) Complete() bool {
	return d.Phone != "" && d.Address != ""
}

// Order is a persisted order as the backend returns it. The wire format is
// flat and keeps the backend's historical "oder" field spellings.
type Order struct {
	OrderID       int             `json:"orderId"`
	UserID        int             `json:"userId"`
	ProductID     int             `json:"productId"`
	ProductName   string          `json:"productName"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"` // grand total at purchase
	Username      string          `json:"username"`
	Email         string          `json:"email"`
	MobileNumber  string          `json:"mobileNumber"`
	Address       string          `json:"address"`
	OrderType     ProductType     `json:"oderType"`
	OrderStatus   string          `json:"oderStatus"`
	PaymentStatus string          `json:"paymentStatus"`
}

// User is the profile record behind /auth/getUser.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobileNumber"`
	Address      string `json:"address"`
	Role         string `json:"role"`
}
