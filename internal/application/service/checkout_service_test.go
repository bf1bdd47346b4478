package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wekesa/tillpoint-api/internal/domain/entity"
	"github.com/wekesa/tillpoint-api/internal/domain/enum"
	"github.com/wekesa/tillpoint-api/internal/domain/repository"
	"github.com/wekesa/tillpoint-api/pkg/pagination"
)

// --- fakes ---

type fakeCartStore struct {
	carts map[string]*entity.Cart
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{carts: make(map[string]*entity.Cart)}
}

func (s *fakeCartStore) GetOrCreate(sessionID string) *entity.Cart {
	cart, exists := s.carts[sessionID]
	if !exists {
		cart = entity.NewCart(sessionID)
		s.carts[sessionID] = cart
	}
	return cart
}

func (s *fakeCartStore) Get(sessionID string) (*entity.Cart, bool) {
	cart, exists := s.carts[sessionID]
	return cart, exists
}

func (s *fakeCartStore) Update(sessionID string, fn func(cart *entity.Cart) error) (*entity.Cart, error) {
	cart := s.GetOrCreate(sessionID)
	if err := fn(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *fakeCartStore) Delete(sessionID string) {
	delete(s.carts, sessionID)
}

type quantityUpdate struct {
	ID       uuid.UUID
	Quantity int
}

type fakeProductRepo struct {
	products      map[uuid.UUID]*entity.Product
	updates       []quantityUpdate
	failUpdateFor uuid.UUID
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) CreateBatch(ctx context.Context, products []entity.Product) error {
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var result []entity.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *fakeProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error { return nil }

func (r *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeProductRepo) List(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	var result []entity.Product
	for _, p := range r.products {
		result = append(result, *p)
	}
	return result, int64(len(result)), nil
}

func (r *fakeProductRepo) ListActive(ctx context.Context) ([]entity.Product, error) {
	var result []entity.Product
	for _, p := range r.products {
		if p.IsActive {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *fakeProductRepo) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	if id == r.failUpdateFor {
		return errors.New("database gone")
	}
	r.updates = append(r.updates, quantityUpdate{ID: id, Quantity: quantity})
	if p, ok := r.products[id]; ok {
		p.Quantity = quantity
	}
	return nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer
	created   []*entity.Customer
}

func newFakeCustomerRepo(customers ...*entity.Customer) *fakeCustomerRepo {
	r := &fakeCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
	for _, c := range customers {
		r.customers[c.ID] = c
	}
	return r
}

func (r *fakeCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	r.customers[customer.ID] = customer
	r.created = append(r.created, customer)
	return nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	return r.customers[id], nil
}

func (r *fakeCustomerRepo) Update(ctx context.Context, customer *entity.Customer) error { return nil }

func (r *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeCustomerRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	return nil, 0, nil
}

type fakeDocumentRepo struct {
	created    []*entity.Document
	failCreate bool
}

func (r *fakeDocumentRepo) Create(ctx context.Context, document *entity.Document) error {
	if r.failCreate {
		return errors.New("database gone")
	}
	// Mirror what persistence assigns
	document.ID = uuid.New()
	document.DocumentNo = fmt.Sprintf("RCT-%08d", len(r.created)+1)
	r.created = append(r.created, document)
	return nil
}

func (r *fakeDocumentRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	return nil, nil
}

func (r *fakeDocumentRepo) GetByDocumentNo(ctx context.Context, documentNo string) (*entity.Document, error) {
	for _, d := range r.created {
		if d.DocumentNo == documentNo {
			return d, nil
		}
	}
	return nil, nil
}

func (r *fakeDocumentRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	return nil, nil
}

func (r *fakeDocumentRepo) List(ctx context.Context, params *repository.DocumentFilterParams) ([]entity.Document, int64, error) {
	return nil, 0, nil
}

type fakeTransactionRepo struct {
	created    []*entity.Transaction
	failCreate bool
}

func (r *fakeTransactionRepo) Create(ctx context.Context, transaction *entity.Transaction) error {
	if r.failCreate {
		return errors.New("database gone")
	}
	r.created = append(r.created, transaction)
	return nil
}

func (r *fakeTransactionRepo) List(ctx context.Context, params *repository.TransactionFilterParams) ([]entity.Transaction, int64, error) {
	return nil, 0, nil
}

// --- fixtures ---

type checkoutFixture struct {
	service      *CheckoutService
	carts        *fakeCartStore
	products     *fakeProductRepo
	customers    *fakeCustomerRepo
	documents    *fakeDocumentRepo
	transactions *fakeTransactionRepo
	soda         *entity.Product
	bread        *entity.Product
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()

	soda := testCheckoutProduct("Soda", 1000, 10)  // 10.00 each
	bread := testCheckoutProduct("Bread", 250, 20) // 2.50 each

	f := &checkoutFixture{
		carts:        newFakeCartStore(),
		products:     newFakeProductRepo(soda, bread),
		customers:    newFakeCustomerRepo(),
		documents:    &fakeDocumentRepo{},
		transactions: &fakeTransactionRepo{},
		soda:         soda,
		bread:        bread,
	}
	f.service = NewCheckoutService(
		f.carts,
		f.products,
		f.customers,
		f.documents,
		f.transactions,
		entity.ReceiptHeader{StoreName: "Test Store"},
		"KES",
	)
	return f
}

func testCheckoutProduct(name string, priceCents int64, stock int) *entity.Product {
	return &entity.Product{
		ID:           uuid.New(),
		Name:         name,
		Code:         "PRD-" + name,
		SellingPrice: priceCents,
		Quantity:     stock,
		IsActive:     true,
	}
}

func (f *checkoutFixture) fillCart(t *testing.T, sessionID string, items map[*entity.Product]int) {
	t.Helper()
	_, err := f.carts.Update(sessionID, func(cart *entity.Cart) error {
		for product, qty := range items {
			for i := 0; i < qty; i++ {
				if err := cart.AddProduct(product); err != nil {
					return err
				}
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func allowAll(string) bool { return true }

func denyAll(string) bool { return false }

func cashInput(sessionID string, received string) *CheckoutInput {
	amount := decimal.RequireFromString(received)
	return &CheckoutInput{
		SessionID:      sessionID,
		PaymentMethod:  enum.PaymentCash,
		AmountReceived: &amount,
		CustomerName:   "Walk-in",
		EmployeeName:   "Jane",
		HasPermission:  allowAll,
	}
}

// --- tests ---

func TestCheckoutValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("empty cart is rejected", func(t *testing.T) {
		f := newCheckoutFixture(t)

		_, err := f.service.Checkout(ctx, cashInput("till-1", "100.00"))

		require.EqualError(t, err, "Cart is empty")
		assert.Empty(t, f.products.updates)
		assert.Empty(t, f.documents.created)
	})

	t.Run("invalid payment method is rejected", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.fillCart(t, "till-1", map[*entity.Product]int{f.soda: 1})

		input := cashInput("till-1", "100.00")
		input.PaymentMethod = enum.PaymentMethod("cheque")

		_, err := f.service.Checkout(ctx, input)
		require.EqualError(t, err, "Invalid payment method")
	})

	t.Run("checkout without a customer is rejected", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.fillCart(t, "till-1", map[*entity.Product]int{f.soda: 1})

		input := cashInput("till-1", "100.00")
		input.CustomerName = "   "

		_, err := f.service.Checkout(ctx, input)
		require.EqualError(t, err, "Customer is required")
	})

	t.Run("unknown customer ID is rejected", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.fillCart(t, "till-1", map[*entity.Product]int{f.soda: 1})

		missing := uuid.New()
		input := cashInput("till-1", "100.00")
		input.CustomerID = &missing

		_, err := f.service.Checkout(ctx, input)
		require.EqualError(t, err, "Customer not found")
	})

	t.Run("cash requires an amount received", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.fillCart(t, "till-1", map[*entity.Product]int{f.soda: 1})

		input := cashInput("till-1", "100.00")
		input.AmountReceived = nil

		_, err := f.service.Checkout(ctx, input)
		require.EqualError(t, err, "Amount received is required for cash payments")
	})

	t.Run("cash shortfall blocks checkout and names the amount", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.fillCart(t, "till-1", map[*entity.Product]int{f.soda: 3}) // 30.00

		_, err := f.service.Checkout(ctx, cashInput("till-1", "25.00"))

		require.EqualError(t, err, "Insufficient payment, need 5.00 more")
		assert.Empty(t, f.products.updates, "stock must be untouched before validation passes")
		assert.Empty(t, f.documents.created)
	})

	t.Run("declined cash payment writes nothing, even across retries", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.fillCart(t, "till-1", map[*entity.Product]int{f.soda: 3}) // 30.00

		_, err := f.service.Checkout(ctx, cashInput("till-1", "25.00"))
		require.EqualError(t, err, "Insufficient payment, need 5.00 more")
		assert.Empty(t, f.customers.created, "no ad-hoc customer before preconditions pass")

		// The operator corrects the amount and retries; still short
		_, err = f.service.Checkout(ctx, cashInput("till-1", "29.00"))
		require.Error(t, err)
		assert.Empty(t, f.customers.created)
		assert.Empty(t, f.products.updates)
		assert.Empty(t, f.documents.created)
		assert.Empty(t, f.transactions.created)

		// A sufficient amount finally creates the customer exactly once
		_, err = f.service.Checkout(ctx, cashInput("till-1", "30.00"))
		require.NoError(t, err)
		assert.Len(t, f.customers.created, 1)
	})
}

func TestCheckoutCompletesSale(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)
	f.fillCart(t, "till-1", map[*entity.Product]int{f.soda: 2, f.bread: 4}) // 20.00 + 10.00

	receipt, err := f.service.Checkout(ctx, cashInput("till-1", "50.00"))
	require.NoError(t, err)

	// Stock decremented per line, absolute values
	require.Len(t, f.products.updates, 2)
	byID := map[uuid.UUID]int{}
	for _, u := range f.products.updates {
		byID[u.ID] = u.Quantity
	}
	assert.Equal(t, 8, byID[f.soda.ID])   // 10 - 2
	assert.Equal(t, 16, byID[f.bread.ID]) // 20 - 4

	// Document persisted in cents with its items
	require.Len(t, f.documents.created, 1)
	doc := f.documents.created[0]
	assert.Equal(t, enum.DocumentTypeReceipt, doc.Type)
	assert.Equal(t, enum.DocumentStatusPaid, doc.Status)
	assert.Equal(t, int64(3000), doc.SubTotal)
	assert.Equal(t, int64(3000), doc.Total)
	assert.Equal(t, int64(0), doc.TaxAmount)
	assert.Equal(t, "Jane", doc.SoldBy)
	assert.Len(t, doc.Items, 2)

	// Ad-hoc customer created once
	require.Len(t, f.customers.created, 1)
	assert.Equal(t, "Walk-in", f.customers.created[0].Name)

	// Ledger entry recorded
	require.Len(t, f.transactions.created, 1)
	assert.Equal(t, enum.TransactionTypeSale, f.transactions.created[0].Type)
	assert.Equal(t, doc.Total, f.transactions.created[0].Amount)
	assert.Equal(t, "sales", f.transactions.created[0].Category)

	// Receipt totals and change
	assert.Equal(t, doc.DocumentNo, receipt.DocumentNo)
	assert.InDelta(t, 30.00, receipt.Total, 0.001)
	assert.InDelta(t, 50.00, receipt.AmountReceived, 0.001)
	assert.InDelta(t, 20.00, receipt.ChangeAmount, 0.001)
	assert.Equal(t, "Walk-in", receipt.Customer)
	assert.Equal(t, "Test Store", receipt.Header.StoreName)

	// The cart survives checkout; starting a new sale is a separate action
	cart, ok := f.carts.Get("till-1")
	require.True(t, ok)
	assert.False(t, cart.IsEmpty())
}

func TestCheckoutExistingCustomer(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)

	regular := &entity.Customer{ID: uuid.New(), Name: "Alice"}
	f.customers.customers[regular.ID] = regular

	f.fillCart(t, "till-1", map[*entity.Product]int{f.soda: 1})

	input := cashInput("till-1", "10.00")
	input.CustomerID = &regular.ID
	input.CustomerName = ""

	receipt, err := f.service.Checkout(ctx, input)
	require.NoError(t, err)

	assert.Empty(t, f.customers.created, "no ad-hoc customer should be created")
	assert.Equal(t, "Alice", receipt.Customer)
	require.NotNil(t, f.documents.created[0].CustomerID)
	assert.Equal(t, regular.ID, *f.documents.created[0].CustomerID)
}

func TestCheckoutDiscounts(t *testing.T) {
	ctx := context.Background()

	t.Run("discount applies with permission", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.fillCart(t, "till-1", map[*entity.Product]int{f.soda: 3}) // 30.00

		input := cashInput("till-1", "27.00")
		input.Discount = &DiscountSpec{Type: enum.DiscountPercent, Value: decimal.NewFromInt(10)}

		receipt, err := f.service.Checkout(ctx, input)
		require.NoError(t, err)

		assert.InDelta(t, 3.00, receipt.DiscountAmount, 0.001)
		assert.InDelta(t, 27.00, receipt.Total, 0.001)
		assert.Equal(t, enum.DiscountPercent, receipt.DiscountType)
		assert.Equal(t, int64(2700), f.documents.created[0].Total)
	})

	t.Run("discount is ignored without permission", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.fillCart(t, "till-1", map[*entity.Product]int{f.soda: 3})

		input := cashInput("till-1", "30.00")
		input.HasPermission = denyAll
		input.Discount = &DiscountSpec{Type: enum.DiscountPercent, Value: decimal.NewFromInt(10)}

		receipt, err := f.service.Checkout(ctx, input)
		require.NoError(t, err)

		assert.InDelta(t, 0.0, receipt.DiscountAmount, 0.001)
		assert.InDelta(t, 30.00, receipt.Total, 0.001)
	})
}

func TestCheckoutStockFailureHasNoRollback(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)
	f.fillCart(t, "till-1", map[*entity.Product]int{f.soda: 2, f.bread: 4})
	f.products.failUpdateFor = f.bread.ID

	_, err := f.service.Checkout(ctx, cashInput("till-1", "50.00"))

	require.Error(t, err)
	assert.Equal(t, "Failed to update stock for Bread", err.Error())

	// The soda decrement that succeeded first stays applied
	require.Len(t, f.products.updates, 1)
	assert.Equal(t, f.soda.ID, f.products.updates[0].ID)
	assert.Equal(t, 8, f.soda.Quantity)

	assert.Empty(t, f.documents.created)
	assert.Empty(t, f.transactions.created)
}

func TestCheckoutDocumentFailureLeavesStockDecremented(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)
	f.fillCart(t, "till-1", map[*entity.Product]int{f.soda: 2})
	f.documents.failCreate = true

	_, err := f.service.Checkout(ctx, cashInput("till-1", "50.00"))

	require.EqualError(t, err, "Failed to save the sale record")
	assert.Equal(t, 8, f.soda.Quantity, "stock decrement is not reverted")
	assert.Empty(t, f.transactions.created)
}

func TestCheckoutLedgerFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)
	f.fillCart(t, "till-1", map[*entity.Product]int{f.soda: 1})
	f.transactions.failCreate = true

	receipt, err := f.service.Checkout(ctx, cashInput("till-1", "10.00"))

	require.NoError(t, err, "a failed ledger entry must not fail the checkout")
	require.NotNil(t, receipt)
	require.Len(t, f.documents.created, 1)
	assert.Empty(t, f.transactions.created)
}

func TestCheckoutSnapshotIsStable(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)
	f.fillCart(t, "till-1", map[*entity.Product]int{f.soda: 2})

	receipt, err := f.service.Checkout(ctx, cashInput("till-1", "20.00"))
	require.NoError(t, err)
	require.Len(t, receipt.Items, 1)
	assert.Equal(t, 2, receipt.Items[0].Quantity)
	assert.Equal(t, time.Now().Format("2006-01-02"), receipt.Date[:10])
}
