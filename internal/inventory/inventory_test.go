package inventory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/furnimart/storefront/internal/backend"
	"github.com/furnimart/storefront/internal/entity"
	"github.com/furnimart/storefront/internal/session"
)

type fakeBackend struct {
	updateErr   error
	fetchErr    error
	serverStock int
	lastUpdate  *entity.Product
}

func (f *fakeBackend) GetProduct(ctx context.Context, id int, productType entity.ProductType) (*entity.Product, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	p := vase()
	p.Stock = f.serverStock
	return &p, nil
}

func (f *fakeBackend) UpdateProduct(ctx context.Context, p entity.Product) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.lastUpdate = &p
	return nil
}

func adminSession() *session.Session {
	return &session.Session{UserID: 1, Username: "admin", Role: session.RoleAdmin}
}

func vase() entity.Product {
	return entity.Product{
		ID:        4,
		Name:      "Brass Vase",
		Type:      entity.ProductHomeDeco,
		UnitPrice: decimal.RequireFromString("1499.99"),
		Stock:     3,
	}
}

func TestAdjustRequiresAdmin(t *testing.T) {
	adj := NewAdjuster(&fakeBackend{}, &session.Session{UserID: 7})
	_, err := adj.Adjust(context.Background(), vase(), 1)
	assert.ErrorIs(t, err, entity.ErrAuthRequired)
}

func TestAdjustWritesFullRecord(t *testing.T) {
	fake := &fakeBackend{}
	adj := NewAdjuster(fake, adminSession())

	got, err := adj.Adjust(context.Background(), vase(), 1)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Product.Stock)
	assert.Equal(t, StateConfirmed, got.State)

	require.NotNil(t, fake.lastUpdate)
	assert.Equal(t, 4, fake.lastUpdate.Stock)
	// The write carries the whole record, not just the stock field.
	assert.Equal(t, "Brass Vase", fake.lastUpdate.Name)
	assert.True(t, fake.lastUpdate.UnitPrice.Equal(vase().UnitPrice))
}

func TestAdjustFloorsAtZero(t *testing.T) {
	fake := &fakeBackend{}
	adj := NewAdjuster(fake, adminSession())

	p := vase()
	p.Stock = 0
	_, err := adj.Adjust(context.Background(), p, -1)
	assert.ErrorIs(t, err, entity.ErrValidation)
	assert.Nil(t, fake.lastUpdate)
}

func TestAdjustReconcilesOnRejection(t *testing.T) {
	fake := &fakeBackend{
		updateErr:   &backend.RejectionError{Code: "09", Message: "stale record"},
		serverStock: 8,
	}
	adj := NewAdjuster(fake, adminSession())

	got, err := adj.Adjust(context.Background(), vase(), 1)
	require.Error(t, err)
	// The server's count replaces the local guess.
	assert.Equal(t, 8, got.Product.Stock)
	assert.Equal(t, StateConfirmed, got.State)
}

func TestAdjustKeepsOriginalWhenReconcileFails(t *testing.T) {
	fake := &fakeBackend{
		updateErr: entity.ErrNetwork,
		fetchErr:  entity.ErrNetwork,
	}
	adj := NewAdjuster(fake, adminSession())

	got, err := adj.Adjust(context.Background(), vase(), 1)
	assert.ErrorIs(t, err, entity.ErrNetwork)
	assert.Equal(t, 3, got.Product.Stock)
}

func TestStage(t *testing.T) {
	staged := Stage(vase(), 2)
	assert.Equal(t, 5, staged.Product.Stock)
	assert.Equal(t, StateOptimistic, staged.State)

	floored := Stage(entity.Product{Stock: 0}, -3)
	assert.Equal(t, 0, floored.Product.Stock)
}
