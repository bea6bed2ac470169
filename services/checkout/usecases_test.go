package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

// fakeProduct é o estado de catálogo usado pelo repositório fake
type fakeProduct struct {
	price decimal.Decimal
	stock int
}

// fakeTx acumula o estado staged da transação; só é aplicado no commit
type fakeTx struct {
	products map[string]fakeProduct
	orders   []Order
}

func (t *fakeTx) tx() pgx.Tx { return nil }

// fakeRepository implementa Repository em memória com semântica transacional:
// mudanças feitas dentro de WithinTx são descartadas quando fn retorna erro
type fakeRepository struct {
	mu       sync.Mutex
	products map[string]fakeProduct
	orders   []Order
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{products: map[string]fakeProduct{}}
}

func (f *fakeRepository) seed(id string, price string, stock int) {
	f.products[id] = fakeProduct{price: decimal.RequireFromString(price), stock: stock}
}

func (f *fakeRepository) WithinTx(ctx context.Context, fn func(tx Tx) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	staged := make(map[string]fakeProduct, len(f.products))
	for id, p := range f.products {
		staged[id] = p
	}
	tx := &fakeTx{products: staged}

	if err := fn(tx); err != nil {
		return err
	}

	f.products = tx.products
	f.orders = append(f.orders, tx.orders...)
	return nil
}

func (f *fakeRepository) GetProductForUpdate(ctx context.Context, tx Tx, productID string) (*ProductSnapshot, error) {
	ft := tx.(*fakeTx)
	p, ok := ft.products[productID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &ProductSnapshot{ID: productID, Price: p.price, Stock: p.stock}, nil
}

func (f *fakeRepository) DecrementStock(ctx context.Context, tx Tx, productID string, quantity int) (bool, error) {
	ft := tx.(*fakeTx)
	p, ok := ft.products[productID]
	if !ok || p.stock < quantity {
		return false, nil
	}
	p.stock -= quantity
	ft.products[productID] = p
	return true, nil
}

func (f *fakeRepository) CreateOrder(ctx context.Context, tx Tx, order *Order) error {
	ft := tx.(*fakeTx)
	ft.orders = append(ft.orders, *order)
	return nil
}

func (f *fakeRepository) ListOrdersByUser(ctx context.Context, userID string) ([]Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []Order
	for _, o := range f.orders {
		if o.UserID == userID {
			result = append(result, o)
		}
	}
	return result, nil
}

func (f *fakeRepository) stockOf(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.products[id].stock
}

func (f *fakeRepository) orderCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.orders)
}

func newTestUseCase(repo Repository) *UseCase {
	return NewUseCase(repo, noop.NewTracerProvider().Tracer("test"))
}

func TestCheckout_Success(t *testing.T) {
	// Arrange
	repo := newFakeRepository()
	repo.seed("P1", "10.00", 5)
	uc := newTestUseCase(repo)

	// Act
	order, err := uc.Checkout(context.Background(), "user-1", []CheckoutItem{
		{ProductID: "P1", Quantity: 3},
	})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, OrderStatusPending, order.Status)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("30.00")),
		"expected total 30.00, got %s", order.Total)
	assert.Equal(t, 2, repo.stockOf("P1"))
	require.Len(t, order.Lines, 1)
	assert.Equal(t, 3, order.Lines[0].Quantity)
	assert.True(t, order.Lines[0].UnitPrice.Equal(decimal.RequireFromString("10.00")))
	assert.Equal(t, 1, repo.orderCount())
}

func TestCheckout_MultipleItemsTotal(t *testing.T) {
	// Arrange
	repo := newFakeRepository()
	repo.seed("P1", "19.99", 10)
	repo.seed("P2", "0.01", 100)
	uc := newTestUseCase(repo)

	// Act
	order, err := uc.Checkout(context.Background(), "user-1", []CheckoutItem{
		{ProductID: "P1", Quantity: 3},
		{ProductID: "P2", Quantity: 7},
	})

	// Assert
	require.NoError(t, err)
	// 3*19.99 + 7*0.01 = 60.04, exato, sem deriva de ponto flutuante
	assert.True(t, order.Total.Equal(decimal.RequireFromString("60.04")),
		"expected total 60.04, got %s", order.Total)

	sum := decimal.Zero
	for _, line := range order.Lines {
		sum = sum.Add(line.Subtotal())
	}
	assert.True(t, order.Total.Equal(sum))
}

func TestCheckout_EmptyItems(t *testing.T) {
	repo := newFakeRepository()
	uc := newTestUseCase(repo)

	order, err := uc.Checkout(context.Background(), "user-1", nil)

	assert.Nil(t, order)
	assert.ErrorIs(t, err, ErrEmptyCheckout)
}

func TestCheckout_InvalidQuantity(t *testing.T) {
	repo := newFakeRepository()
	repo.seed("P1", "10.00", 5)
	uc := newTestUseCase(repo)

	order, err := uc.Checkout(context.Background(), "user-1", []CheckoutItem{
		{ProductID: "P1", Quantity: 0},
	})

	assert.Nil(t, order)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Equal(t, 5, repo.stockOf("P1"), "validation must happen before any store access")
}

func TestCheckout_InsufficientStock(t *testing.T) {
	// Arrange
	repo := newFakeRepository()
	repo.seed("P1", "10.00", 2)
	uc := newTestUseCase(repo)

	// Act
	order, err := uc.Checkout(context.Background(), "user-1", []CheckoutItem{
		{ProductID: "P1", Quantity: 3},
	})

	// Assert
	assert.Nil(t, order)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "P1", stockErr.ProductID)
	assert.Equal(t, 3, stockErr.Requested)
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 2, repo.stockOf("P1"))
	assert.Equal(t, 0, repo.orderCount())
}

func TestCheckout_ProductNotFoundAbortsWholeRequest(t *testing.T) {
	// Arrange: P1 válido, P2 inexistente
	repo := newFakeRepository()
	repo.seed("P1", "10.00", 5)
	uc := newTestUseCase(repo)

	// Act
	order, err := uc.Checkout(context.Background(), "user-1", []CheckoutItem{
		{ProductID: "P1", Quantity: 1},
		{ProductID: "P2", Quantity: 1},
	})

	// Assert: o decremento de P1 não sobrevive ao abort
	assert.Nil(t, order)
	var notFound *ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "P2", notFound.ProductID)
	assert.Equal(t, 5, repo.stockOf("P1"))
	assert.Equal(t, 0, repo.orderCount())
}

func TestCheckout_FirstErrorWins(t *testing.T) {
	// Arrange: dois itens inválidos; apenas o primeiro erro é reportado
	repo := newFakeRepository()
	repo.seed("P2", "5.00", 0)
	uc := newTestUseCase(repo)

	// Act
	_, err := uc.Checkout(context.Background(), "user-1", []CheckoutItem{
		{ProductID: "P1", Quantity: 1}, // inexistente
		{ProductID: "P2", Quantity: 1}, // sem estoque
	})

	// Assert
	var notFound *ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "P1", notFound.ProductID)
}

func TestCheckout_PriceSnapshotImmutable(t *testing.T) {
	// Arrange
	repo := newFakeRepository()
	repo.seed("P1", "10.00", 5)
	uc := newTestUseCase(repo)

	_, err := uc.Checkout(context.Background(), "user-1", []CheckoutItem{
		{ProductID: "P1", Quantity: 2},
	})
	require.NoError(t, err)

	// Act: reprecificação posterior do catálogo
	repo.mu.Lock()
	repo.products["P1"] = fakeProduct{price: decimal.RequireFromString("99.99"), stock: 3}
	repo.mu.Unlock()

	// Assert: o pedido mantém o preço congelado
	orders, err := repo.ListOrdersByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.True(t, orders[0].Lines[0].UnitPrice.Equal(decimal.RequireFromString("10.00")))
	assert.True(t, orders[0].Total.Equal(decimal.RequireFromString("20.00")))
}

func TestCheckout_ConcurrentNoOversell(t *testing.T) {
	// Arrange: estoque 5, 20 compradores concorrentes de 2 unidades cada
	const stock, buyers, qty = 5, 20, 2
	repo := newFakeRepository()
	repo.seed("P1", "10.00", stock)
	uc := newTestUseCase(repo)

	var wg sync.WaitGroup
	errs := make([]error, buyers)

	// Act
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Checkout(context.Background(), "user-1", []CheckoutItem{
				{ProductID: "P1", Quantity: qty},
			})
		}(i)
	}
	wg.Wait()

	// Assert: vencedores * qty nunca excede o estoque inicial
	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var stockErr *InsufficientStockError
		assert.ErrorAs(t, err, &stockErr, "losers must be told InsufficientStock")
	}
	assert.LessOrEqual(t, succeeded*qty, stock)
	assert.Equal(t, stock-succeeded*qty, repo.stockOf("P1"))
	assert.Equal(t, succeeded, repo.orderCount())
}

func TestCheckout_RetryAfterConflictIsSafe(t *testing.T) {
	// Arrange: a primeira transação falha com conflito e não persiste nada;
	// a retentativa verbatim deve funcionar
	repo := newFakeRepository()
	repo.seed("P1", "10.00", 5)
	conflicting := &conflictOnceRepository{fakeRepository: repo}
	uc := newTestUseCase(conflicting)
	items := []CheckoutItem{{ProductID: "P1", Quantity: 3}}

	// Act
	_, err := uc.Checkout(context.Background(), "user-1", items)
	require.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, 5, repo.stockOf("P1"))
	assert.Equal(t, 0, repo.orderCount())

	order, err := uc.Checkout(context.Background(), "user-1", items)

	// Assert
	require.NoError(t, err)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("30.00")))
	assert.Equal(t, 2, repo.stockOf("P1"))
}

// conflictOnceRepository falha o primeiro WithinTx com ErrConflict
type conflictOnceRepository struct {
	*fakeRepository
	failed bool
}

func (c *conflictOnceRepository) WithinTx(ctx context.Context, fn func(tx Tx) error) error {
	if !c.failed {
		c.failed = true
		return ErrConflict
	}
	return c.fakeRepository.WithinTx(ctx, fn)
}

// MockRepository para os testes de ListOrders
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) WithinTx(ctx context.Context, fn func(tx Tx) error) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}

func (m *MockRepository) GetProductForUpdate(ctx context.Context, tx Tx, productID string) (*ProductSnapshot, error) {
	args := m.Called(ctx, tx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ProductSnapshot), args.Error(1)
}

func (m *MockRepository) DecrementStock(ctx context.Context, tx Tx, productID string, quantity int) (bool, error) {
	args := m.Called(ctx, tx, productID, quantity)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) CreateOrder(ctx context.Context, tx Tx, order *Order) error {
	args := m.Called(ctx, tx, order)
	return args.Error(0)
}

func (m *MockRepository) ListOrdersByUser(ctx context.Context, userID string) ([]Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Order), args.Error(1)
}

func TestListOrders(t *testing.T) {
	// Arrange
	mockRepo := new(MockRepository)
	ctx := context.Background()
	expected := []Order{{ID: "order-1", UserID: "user-1"}}
	mockRepo.On("ListOrdersByUser", ctx, "user-1").Return(expected, nil)
	uc := newTestUseCase(mockRepo)

	// Act
	orders, err := uc.ListOrders(ctx, "user-1")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, expected, orders)
	mockRepo.AssertExpectations(t)
}

func TestListOrders_RepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	ctx := context.Background()
	mockRepo.On("ListOrdersByUser", ctx, "user-1").Return(nil, errors.New("boom"))
	uc := newTestUseCase(mockRepo)

	orders, err := uc.ListOrders(ctx, "user-1")

	assert.Error(t, err)
	assert.Nil(t, orders)
	mockRepo.AssertExpectations(t)
}
