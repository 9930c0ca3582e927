// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// The order header, its lines, and the embedded billing and shipping addresses map to the
// orders and order_lines tables; client and currency are referenced by foreign key.
package orderrepo

import (
	"time"

	"basket/internal/adapters/out/postgres/catalogrepo"
	"basket/internal/adapters/out/postgres/clientrepo"
	"basket/internal/core/domain/model/kernel"
	"basket/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Version is the optimistic concurrency token.
type OrderDTO struct {
	ID           int64                   `gorm:"primaryKey;autoIncrement"`
	ClientID     int64                   `gorm:"not null;index"`
	Client       clientrepo.ClientDTO    `gorm:"foreignKey:ClientID"`
	CurrencyID   int64                   `gorm:"not null"`
	Currency     catalogrepo.CurrencyDTO `gorm:"foreignKey:CurrencyID"`
	DiscountRate decimal.Decimal         `gorm:"type:numeric(5,4);not null"`
	VatRate      decimal.Decimal         `gorm:"type:numeric(5,4);not null"`
	Status       int                     `gorm:"type:smallint;not null;index"`
	Billing      BillingDTO              `gorm:"embedded;embeddedPrefix:billing_"`
	Shipping     ShippingDTO             `gorm:"embedded;embeddedPrefix:shipping_"`
	Lines        []OrderLineDTO          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Timestamp    time.Time               `gorm:"not null"`
	Version      int                     `gorm:"not null"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO is embedded twice in the orders table.
type AddressDTO struct {
	Country     string `gorm:"type:varchar(2)"`
	State       string `gorm:"type:varchar(255)"`
	City        string `gorm:"type:varchar(255)"`
	Zip         string `gorm:"type:varchar(32)"`
	AddressLine string `gorm:"type:varchar(255)"`
}

// BillingDTO is embedded into OrderDTO with the billing_ prefix.
type BillingDTO struct {
	Address       AddressDTO `gorm:"embedded"`
	PaymentMethod int        `gorm:"type:smallint"`
	Timestamp     time.Time
}

// ShippingDTO is embedded into OrderDTO with the shipping_ prefix.
type ShippingDTO struct {
	Address   AddressDTO `gorm:"embedded"`
	Timestamp time.Time
}

// OrderLineDTO represents one line. A product appears at most once per order.
type OrderLineDTO struct {
	ID           int64           `gorm:"primaryKey;autoIncrement"`
	OrderID      int64           `gorm:"not null;uniqueIndex:idx_order_lines_order_product"`
	ProductCode  string          `gorm:"type:varchar(64);not null;uniqueIndex:idx_order_lines_order_product"`
	Quantity     uint            `gorm:"type:bigint;not null"`
	UnitCost     decimal.Decimal `gorm:"type:numeric(18,4);not null"`
	CurrencyCode string          `gorm:"type:varchar(3);not null"`
	Timestamp    time.Time       `gorm:"not null"`
}

// TableName specifies the database table name for order line entities.
func (OrderLineDTO) TableName() string {
	return "order_lines"
}

// fromDomain converts the order header to its database representation.
// Lines are written separately through explicit intents.
func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:           o.ID(),
		ClientID:     o.Client().ID(),
		CurrencyID:   o.Currency().ID(),
		DiscountRate: o.DiscountRate().Decimal(),
		VatRate:      o.VatRate().Decimal(),
		Status:       int(o.Status()),
		Billing: BillingDTO{
			Address:       addressFromDomain(o.BillingInfo().Address()),
			PaymentMethod: int(o.BillingInfo().PaymentMethod()),
			Timestamp:     o.BillingInfo().Timestamp(),
		},
		Shipping: ShippingDTO{
			Address:   addressFromDomain(o.ShippingInfo().Address()),
			Timestamp: o.ShippingInfo().Timestamp(),
		},
		Timestamp: o.Timestamp(),
		Version:   o.Version(),
	}
}

func lineFromDomain(orderID int64, line *order.OrderLine) OrderLineDTO {
	return OrderLineDTO{
		ID:           line.ID(),
		OrderID:      orderID,
		ProductCode:  line.ProductCode(),
		Quantity:     line.Quantity(),
		UnitCost:     line.UnitCost(),
		CurrencyCode: line.CurrencyCode(),
		Timestamp:    line.Timestamp(),
	}
}

func addressFromDomain(a kernel.Address) AddressDTO {
	return AddressDTO{
		Country:     a.Country(),
		State:       a.State(),
		City:        a.City(),
		Zip:         a.Zip(),
		AddressLine: a.AddressLine(),
	}
}

// toDomain rebuilds the complete aggregate. Client, currency and lines must be preloaded.
func toDomain(dto OrderDTO) (*order.Order, error) {
	owner, err := clientrepo.ToDomain(dto.Client)
	if err != nil {
		return nil, err
	}

	currency, err := catalogrepo.CurrencyToDomain(dto.Currency)
	if err != nil {
		return nil, err
	}

	discount, err := kernel.NewRate("discount rate", dto.DiscountRate)
	if err != nil {
		return nil, err
	}
	vat, err := kernel.NewRate("vat rate", dto.VatRate)
	if err != nil {
		return nil, err
	}

	billingAddress, err := addressToDomain(dto.Billing.Address)
	if err != nil {
		return nil, err
	}
	billing, err := order.NewBillingInfo(billingAddress, order.PaymentMethod(dto.Billing.PaymentMethod), dto.Billing.Timestamp)
	if err != nil {
		return nil, err
	}

	shippingAddress, err := addressToDomain(dto.Shipping.Address)
	if err != nil {
		return nil, err
	}
	shipping, err := order.NewShippingInfo(shippingAddress, dto.Shipping.Timestamp)
	if err != nil {
		return nil, err
	}

	lines := make([]*order.OrderLine, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		line, lineErr := order.RestoreOrderLine(l.ID, l.ProductCode, l.Quantity, l.UnitCost, l.CurrencyCode, l.Timestamp)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(dto.ID, owner, currency, discount, vat, order.Status(dto.Status),
		billing, shipping, lines, dto.Timestamp, dto.Version)
}

func addressToDomain(dto AddressDTO) (kernel.Address, error) {
	return kernel.NewAddress(dto.Country, dto.State, dto.City, dto.Zip, dto.AddressLine)
}
