package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/bookshop/internal/domain"
	"github.com/vladislavdragonenkov/bookshop/internal/storage/memory"
)

type stubLibrary struct {
	book  *domain.BookRecord
	calls int
}

func (s *stubLibrary) GetBookByID(_ context.Context, _ int64) *domain.BookRecord {
	s.calls++
	return s.book
}

type recordingPublisher struct {
	topics []string
	keys   []string
	err    error
}

func (p *recordingPublisher) Publish(topic, key string, _ any) error {
	p.topics = append(p.topics, topic)
	p.keys = append(p.keys, key)
	return p.err
}

func newTestService(library domain.LibraryClient, events domain.EventPublisher) *Service {
	return NewService(
		memory.NewProductRepository(),
		memory.NewOrderRepository(),
		memory.NewOrderItemRepository(),
		library,
		events,
		nil,
	)
}

func TestCreateProductAssignsIdentityAndTimestamps(t *testing.T) {
	svc := newTestService(nil, nil)

	created, err := svc.CreateProduct(CreateProductInput{
		Title:      "Dune",
		PriceMinor: 1999,
		Type:       domain.ProductTypeBook,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())
	require.Equal(t, created.CreatedAt, created.UpdatedAt)

	got, err := svc.GetProduct(created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)
}

func TestCreateProductValidation(t *testing.T) {
	svc := newTestService(nil, nil)

	cases := []struct {
		name  string
		input CreateProductInput
	}{
		{"missing title", CreateProductInput{Type: domain.ProductTypeBook, PriceMinor: 100}},
		{"unknown type", CreateProductInput{Title: "x", Type: "vinyl", PriceMinor: 100}},
		{"negative price", CreateProductInput{Title: "x", Type: domain.ProductTypeBook, PriceMinor: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateProduct(tc.input)
			require.True(t, domain.IsValidation(err), "expected validation error, got %v", err)
		})
	}
}

func TestUpdateProductPreservesIdentity(t *testing.T) {
	svc := newTestService(nil, nil)

	created, err := svc.CreateProduct(CreateProductInput{
		Title:      "Dune",
		PriceMinor: 1999,
		Type:       domain.ProductTypeBook,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(created.ID, UpdateProductInput{
		Title:      "Dune (Deluxe)",
		PriceMinor: 2999,
		Type:       domain.ProductTypeBook,
	})
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, created.CreatedAt, updated.CreatedAt)
	require.Equal(t, "Dune (Deluxe)", updated.Title)
	require.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
}

func TestUpdateProductNotFound(t *testing.T) {
	svc := newTestService(nil, nil)

	_, err := svc.UpdateProduct("missing", UpdateProductInput{
		Title:      "x",
		PriceMinor: 1,
		Type:       domain.ProductTypeBook,
	})
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestDeleteProductIsIdempotent(t *testing.T) {
	svc := newTestService(nil, nil)

	created, err := svc.CreateProduct(CreateProductInput{
		Title:      "Dune",
		PriceMinor: 1999,
		Type:       domain.ProductTypeBook,
	})
	require.NoError(t, err)

	deleted, err := svc.DeleteProduct(created.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	deleted, err = svc.DeleteProduct(created.ID)
	require.NoError(t, err)
	require.False(t, deleted)
}

func TestGetProductWithBookInfoEnrichesOnlyBooks(t *testing.T) {
	bookID := int64(42)
	library := &stubLibrary{book: &domain.BookRecord{ID: 42, Title: "Dune", Author: "Frank Herbert", Year: 1965}}
	svc := newTestService(library, nil)

	book, err := svc.CreateProduct(CreateProductInput{
		Title:         "Dune",
		PriceMinor:    1999,
		Type:          domain.ProductTypeBook,
		LibraryBookID: &bookID,
	})
	require.NoError(t, err)

	gadget, err := svc.CreateProduct(CreateProductInput{
		Title:      "Reading lamp",
		PriceMinor: 4999,
		Type:       domain.ProductTypePhysicalGood,
	})
	require.NoError(t, err)

	_, info, err := svc.GetProductWithBookInfo(context.Background(), book.ID)
	require.NoError(t, err)
	require.NotNil(t, info)
	require.Equal(t, "Frank Herbert", info.Author)

	_, info, err = svc.GetProductWithBookInfo(context.Background(), gadget.ID)
	require.NoError(t, err)
	require.Nil(t, info)
	require.Equal(t, 1, library.calls, "library must not be called for non-book products")
}

func TestGetProductWithBookInfoDegradesWithoutLibrary(t *testing.T) {
	bookID := int64(42)
	svc := newTestService(nil, nil)

	book, err := svc.CreateProduct(CreateProductInput{
		Title:         "Dune",
		PriceMinor:    1999,
		Type:          domain.ProductTypeBook,
		LibraryBookID: &bookID,
	})
	require.NoError(t, err)

	product, info, err := svc.GetProductWithBookInfo(context.Background(), book.ID)
	require.NoError(t, err)
	require.Nil(t, info)
	require.Equal(t, book.ID, product.ID)
}

func TestCreateOrderValidation(t *testing.T) {
	svc := newTestService(nil, nil)

	_, err := svc.CreateOrder(CreateOrderInput{
		UserID: "not-a-uuid",
		Status: domain.OrderStatusPending,
	})
	require.True(t, domain.IsValidation(err), "expected validation error, got %v", err)

	_, err = svc.CreateOrder(CreateOrderInput{
		UserID: "4b4b5f1e-8a24-4c7e-9d25-7f1a4df1c111",
		Status: "shipped",
	})
	require.True(t, domain.IsValidation(err), "expected validation error, got %v", err)
}

func TestOrderLifecycle(t *testing.T) {
	svc := newTestService(nil, nil)

	order, err := svc.CreateOrder(CreateOrderInput{
		UserID:           "4b4b5f1e-8a24-4c7e-9d25-7f1a4df1c111",
		Status:           domain.OrderStatusPending,
		TotalAmountMinor: 1999,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateOrder(order.ID, UpdateOrderInput{
		UserID:           order.UserID,
		Status:           domain.OrderStatusCompleted,
		TotalAmountMinor: 1999,
	})
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusCompleted, updated.Status)

	deleted, err := svc.DeleteOrder(order.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	_, err = svc.GetOrder(order.ID)
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestOrderItemReferencesAreNotChecked(t *testing.T) {
	svc := newTestService(nil, nil)

	// Ссылки на несуществующие заказ и товар допустимы.
	item, err := svc.CreateOrderItem(CreateOrderItemInput{
		OrderID:    "no-such-order",
		ProductID:  "no-such-product",
		Quantity:   2,
		PriceMinor: 1999,
	})
	require.NoError(t, err)

	got, err := svc.GetOrderItem(item.ID)
	require.NoError(t, err)
	require.Equal(t, item, got)
}

func TestDeleteOrderDoesNotCascadeToItems(t *testing.T) {
	svc := newTestService(nil, nil)

	order, err := svc.CreateOrder(CreateOrderInput{
		UserID:           "4b4b5f1e-8a24-4c7e-9d25-7f1a4df1c111",
		Status:           domain.OrderStatusPending,
		TotalAmountMinor: 1999,
	})
	require.NoError(t, err)

	item, err := svc.CreateOrderItem(CreateOrderItemInput{
		OrderID:    order.ID,
		ProductID:  "p-1",
		Quantity:   1,
		PriceMinor: 1999,
	})
	require.NoError(t, err)

	deleted, err := svc.DeleteOrder(order.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	got, err := svc.GetOrderItem(item.ID)
	require.NoError(t, err)
	require.Equal(t, order.ID, got.OrderID)
}

func TestMutationsPublishEvents(t *testing.T) {
	events := &recordingPublisher{}
	svc := newTestService(nil, events)

	product, err := svc.CreateProduct(CreateProductInput{
		Title:      "Dune",
		PriceMinor: 1999,
		Type:       domain.ProductTypeBook,
	})
	require.NoError(t, err)

	_, err = svc.DeleteProduct(product.ID)
	require.NoError(t, err)

	require.Equal(t, []string{"bookshop.product.events", "bookshop.product.events"}, events.topics)
	require.Equal(t, []string{product.ID, product.ID}, events.keys)
}

func TestPublishFailureDoesNotFailMutation(t *testing.T) {
	events := &recordingPublisher{err: errors.New("broker unavailable")}
	svc := newTestService(nil, events)

	_, err := svc.CreateProduct(CreateProductInput{
		Title:      "Dune",
		PriceMinor: 1999,
		Type:       domain.ProductTypeBook,
	})
	require.NoError(t, err)
}
