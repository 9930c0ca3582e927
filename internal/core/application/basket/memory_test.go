package basket_test

import (
	"context"
	"sync"
	"time"

	"basket/internal/core/application/usecases/commands"
	"basket/internal/core/domain/model/catalog"
	"basket/internal/core/domain/model/client"
	"basket/internal/core/domain/model/kernel"
	"basket/internal/core/domain/model/order"
	"basket/internal/core/ports"
	"basket/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// memoryStore is a committed-state store for exercising the service without a database.
// Writes are staged by a unit of work and applied on Commit.
type memoryStore struct {
	mu         sync.Mutex
	nextID     int64
	clients    map[string]*client.Client
	orders     map[int64]orderRow
	lines      map[int64]lineRow
	currencies map[string]catalog.Currency
	products   map[string]catalog.Product
	vat        kernel.Rate
	blockBegin bool
}

type orderRow struct {
	client    *client.Client
	currency  catalog.Currency
	discount  kernel.Rate
	vat       kernel.Rate
	status    order.Status
	billing   order.BillingInfo
	shipping  order.ShippingInfo
	timestamp time.Time
	version   int
}

type lineRow struct {
	orderID   int64
	code      string
	quantity  uint
	unitCost  decimal.Decimal
	currency  string
	timestamp time.Time
}

func newMemoryStore(vat kernel.Rate) *memoryStore {
	return &memoryStore{
		clients:    make(map[string]*client.Client),
		orders:     make(map[int64]orderRow),
		lines:      make(map[int64]lineRow),
		currencies: make(map[string]catalog.Currency),
		products:   make(map[string]catalog.Product),
		vat:        vat,
	}
}

func (s *memoryStore) id() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	return s.nextID
}

func (s *memoryStore) get(id int64) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}

	lines := make([]*order.OrderLine, 0)
	for lineID := int64(1); lineID <= s.nextID; lineID++ {
		l, ok := s.lines[lineID]
		if !ok || l.orderID != id {
			continue
		}
		line, err := order.RestoreOrderLine(lineID, l.code, l.quantity, l.unitCost, l.currency, l.timestamp)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(id, row.client, row.currency, row.discount, row.vat, row.status,
		row.billing, row.shipping, lines, row.timestamp, row.version)
}

func (s *memoryStore) CreateUoW() *memoryUoW {
	return &memoryUoW{store: s}
}

type memoryUoW struct {
	store   *memoryStore
	active  bool
	pending []func()
}

func (u *memoryUoW) Begin(ctx context.Context) error {
	if u.store.blockBegin {
		<-ctx.Done()
		return ctx.Err()
	}
	u.active = true
	return nil
}

func (u *memoryUoW) Commit(context.Context) error {
	if !u.active {
		return errs.NewValueIsInvalidError("transaction")
	}
	u.store.mu.Lock()
	for _, apply := range u.pending {
		apply()
	}
	u.store.mu.Unlock()
	u.pending, u.active = nil, false
	return nil
}

func (u *memoryUoW) Rollback(context.Context) error {
	if !u.active {
		return errs.NewValueIsInvalidError("transaction")
	}
	u.pending, u.active = nil, false
	return nil
}

func (u *memoryUoW) OrderRepository() ports.OrderRepository         { return memoryOrders{u} }
func (u *memoryUoW) OrderLineRepository() ports.OrderLineRepository { return memoryLines{u} }
func (u *memoryUoW) ClientRepository() ports.ClientRepository       { return memoryClients{u} }

type memoryOrders struct{ uow *memoryUoW }

func (r memoryOrders) Add(_ context.Context, o *order.Order) error {
	if err := o.AssignID(r.uow.store.id()); err != nil {
		return err
	}
	row := rowOf(o)
	id := o.ID()
	r.uow.pending = append(r.uow.pending, func() { r.uow.store.orders[id] = row })
	return nil
}

func (r memoryOrders) Update(_ context.Context, o *order.Order) error {
	s := r.uow.store
	s.mu.Lock()
	stored, ok := s.orders[o.ID()]
	s.mu.Unlock()
	if !ok {
		return errs.NewObjectNotFoundError("order", o.ID())
	}
	if stored.version != o.Version() {
		return errs.NewVersionIsInvalidError("order")
	}

	o.BumpVersion()
	row := rowOf(o)
	id := o.ID()
	r.uow.pending = append(r.uow.pending, func() { s.orders[id] = row })
	return nil
}

func (r memoryOrders) Get(_ context.Context, id int64) (*order.Order, error) {
	return r.uow.store.get(id)
}

func (r memoryOrders) GetAll(ctx context.Context) ([]*order.Order, error) {
	return r.GetAllInStatus(ctx, order.Unknown)
}

func (r memoryOrders) GetAllInStatus(_ context.Context, status order.Status) ([]*order.Order, error) {
	r.uow.store.mu.Lock()
	last := r.uow.store.nextID
	r.uow.store.mu.Unlock()

	result := make([]*order.Order, 0)
	for id := int64(1); id <= last; id++ {
		o, err := r.uow.store.get(id)
		if err != nil {
			continue
		}
		if status == order.Unknown || o.Status() == status {
			result = append(result, o)
		}
	}
	return result, nil
}

type memoryLines struct{ uow *memoryUoW }

func (r memoryLines) Add(_ context.Context, orderID int64, line *order.OrderLine) error {
	if err := line.AssignID(r.uow.store.id()); err != nil {
		return err
	}
	r.stage(line, func(lineRow) int64 { return orderID })
	return nil
}

func (r memoryLines) Update(_ context.Context, line *order.OrderLine) error {
	r.stage(line, func(previous lineRow) int64 { return previous.orderID })
	return nil
}

func (r memoryLines) stage(line *order.OrderLine, owner func(previous lineRow) int64) {
	s := r.uow.store
	id := line.ID()
	row := lineRow{
		code:      line.ProductCode(),
		quantity:  line.Quantity(),
		unitCost:  line.UnitCost(),
		currency:  line.CurrencyCode(),
		timestamp: line.Timestamp(),
	}
	r.uow.pending = append(r.uow.pending, func() {
		row.orderID = owner(s.lines[id])
		s.lines[id] = row
	})
}

func (r memoryLines) Delete(_ context.Context, line *order.OrderLine) error {
	s := r.uow.store
	id := line.ID()
	r.uow.pending = append(r.uow.pending, func() { delete(s.lines, id) })
	return nil
}

type memoryClients struct{ uow *memoryUoW }

func (r memoryClients) Add(_ context.Context, c *client.Client) error {
	if err := c.AssignID(r.uow.store.id()); err != nil {
		return err
	}
	s := r.uow.store
	r.uow.pending = append(r.uow.pending, func() { s.clients[c.Code()] = c })
	return nil
}

func (r memoryClients) GetByCode(_ context.Context, code string) (*client.Client, error) {
	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.clients[code]; ok {
		return c, nil
	}
	return nil, errs.NewObjectNotFoundError("client", code)
}

// memoryCatalog serves currencies, products and the VAT setting.
type memoryCatalog struct{ store *memoryStore }

type memoryCurrencies memoryCatalog

func (c memoryCurrencies) GetByCode(_ context.Context, code string) (catalog.Currency, error) {
	if cur, ok := c.store.currencies[code]; ok {
		return cur, nil
	}
	return catalog.Currency{}, errs.NewObjectNotFoundError("currency", code)
}

type memoryProducts memoryCatalog

func (c memoryProducts) GetByCode(_ context.Context, code string) (catalog.Product, error) {
	if p, ok := c.store.products[code]; ok {
		return p, nil
	}
	return catalog.Product{}, errs.NewObjectNotFoundError("product", code)
}

func (c memoryCatalog) VatRate(context.Context) (kernel.Rate, error) {
	return c.store.vat, nil
}

type uowFactory struct{ store *memoryStore }

func (f uowFactory) Create() commands.UoW { return f.store.CreateUoW() }

type orderUoWFactory struct{ store *memoryStore }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.store.CreateUoW() }

func rowOf(o *order.Order) orderRow {
	return orderRow{
		client:    o.Client(),
		currency:  o.Currency(),
		discount:  o.DiscountRate(),
		vat:       o.VatRate(),
		status:    o.Status(),
		billing:   o.BillingInfo(),
		shipping:  o.ShippingInfo(),
		timestamp: o.Timestamp(),
		version:   o.Version(),
	}
}
