package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/bookshop/internal/domain"
	"github.com/vladislavdragonenkov/bookshop/internal/service/catalog"
	"github.com/vladislavdragonenkov/bookshop/internal/storage/memory"
)

type stubLibrary struct {
	book  *domain.BookRecord
	delay time.Duration
}

func (s *stubLibrary) GetBookByID(ctx context.Context, _ int64) *domain.BookRecord {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil
		}
	}
	return s.book
}

func newTestSchema(t *testing.T, library domain.LibraryClient) graphql.Schema {
	t.Helper()

	svc := catalog.NewService(
		memory.NewProductRepository(),
		memory.NewOrderRepository(),
		memory.NewOrderItemRepository(),
		library,
		nil,
		nil,
	)
	schema, err := NewSchema(svc)
	require.NoError(t, err)
	return schema
}

func execute(t *testing.T, schema graphql.Schema, query string, variables map[string]any) *graphql.Result {
	t.Helper()

	result := graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  query,
		VariableValues: variables,
		Context:        context.Background(),
	})
	return result
}

func executeOK(t *testing.T, schema graphql.Schema, query string, variables map[string]any) map[string]any {
	t.Helper()

	result := execute(t, schema, query, variables)
	require.Empty(t, result.Errors, "unexpected graphql errors: %v", result.Errors)
	data, ok := result.Data.(map[string]any)
	require.True(t, ok)
	return data
}

const createProductMutation = `
mutation CreateProduct($input: CreateProductInput!) {
	createProduct(input: $input) {
		id
		title
		price
		type
		libraryBookId
	}
}`

func createProduct(t *testing.T, schema graphql.Schema, input map[string]any) map[string]any {
	t.Helper()
	data := executeOK(t, schema, createProductMutation, map[string]any{"input": input})
	product, ok := data["createProduct"].(map[string]any)
	require.True(t, ok)
	return product
}

func TestProductLifecycle(t *testing.T) {
	schema := newTestSchema(t, nil)

	created := createProduct(t, schema, map[string]any{
		"title": "Dune",
		"price": 19.99,
		"type":  "BOOK",
	})
	require.NotEmpty(t, created["id"])
	require.Equal(t, 19.99, created["price"])
	require.Equal(t, "BOOK", created["type"])

	id := created["id"].(string)

	data := executeOK(t, schema, `
		query Product($id: ID!) {
			product(id: $id) { id title price type }
		}`, map[string]any{"id": id})
	product := data["product"].(map[string]any)
	require.Equal(t, "Dune", product["title"])

	data = executeOK(t, schema, `
		mutation UpdateProduct($id: ID!, $input: UpdateProductInput!) {
			updateProduct(id: $id, input: $input) { id title price }
		}`, map[string]any{
		"id":    id,
		"input": map[string]any{"title": "Dune (Deluxe)", "price": 29.99, "type": "BOOK"},
	})
	updated := data["updateProduct"].(map[string]any)
	require.Equal(t, "Dune (Deluxe)", updated["title"])
	require.Equal(t, 29.99, updated["price"])

	data = executeOK(t, schema, `
		mutation DeleteProduct($id: ID!) { deleteProduct(id: $id) }`,
		map[string]any{"id": id})
	require.Equal(t, true, data["deleteProduct"])

	// Повторное удаление возвращает false, а не ошибку.
	data = executeOK(t, schema, `
		mutation DeleteProduct($id: ID!) { deleteProduct(id: $id) }`,
		map[string]any{"id": id})
	require.Equal(t, false, data["deleteProduct"])
}

func TestProductQueryMissingReturnsNull(t *testing.T) {
	schema := newTestSchema(t, nil)

	data := executeOK(t, schema, `
		query { product(id: "missing") { id } }`, nil)
	require.Nil(t, data["product"])
}

func TestCreateProductValidationErrorIsReported(t *testing.T) {
	schema := newTestSchema(t, nil)

	result := execute(t, schema, createProductMutation, map[string]any{
		"input": map[string]any{
			"title": "",
			"price": 10.0,
			"type":  "BOOK",
		},
	})
	require.NotEmpty(t, result.Errors)
	require.Contains(t, result.Errors[0].Message, "title")
}

func TestUpdateMissingReturnsNull(t *testing.T) {
	schema := newTestSchema(t, nil)

	// Обновление несуществующего id отдаёт null без записи в errors.
	data := executeOK(t, schema, `
		mutation UpdateProduct($id: ID!, $input: UpdateProductInput!) {
			updateProduct(id: $id, input: $input) { id }
		}`, map[string]any{
		"id":    "missing",
		"input": map[string]any{"title": "Dune", "price": 19.99, "type": "BOOK"},
	})
	require.Nil(t, data["updateProduct"])

	data = executeOK(t, schema, `
		mutation UpdateOrder($id: ID!, $input: UpdateOrderInput!) {
			updateOrder(id: $id, input: $input) { id }
		}`, map[string]any{
		"id": "missing",
		"input": map[string]any{
			"userId":      "4b4b5f1e-8a24-4c7e-9d25-7f1a4df1c111",
			"status":      "PENDING",
			"totalAmount": 5.0,
		},
	})
	require.Nil(t, data["updateOrder"])

	data = executeOK(t, schema, `
		mutation UpdateItem($id: ID!, $input: UpdateOrderItemInput!) {
			updateOrderItem(id: $id, input: $input) { id }
		}`, map[string]any{
		"id": "missing",
		"input": map[string]any{
			"orderId":   "o-1",
			"productId": "p-1",
			"quantity":  1,
			"price":     1.0,
		},
	})
	require.Nil(t, data["updateOrderItem"])
}

func TestProductWithBookInfo(t *testing.T) {
	library := &stubLibrary{book: &domain.BookRecord{ID: 42, Title: "Dune", Author: "Frank Herbert", Year: 1965}}
	schema := newTestSchema(t, library)

	created := createProduct(t, schema, map[string]any{
		"title":         "Dune",
		"price":         19.99,
		"type":          "BOOK",
		"libraryBookId": 42,
	})

	data := executeOK(t, schema, `
		query ProductWithBook($id: ID!) {
			productWithBookInfo(id: $id) {
				product { id title }
				bookDetails { id title author year }
			}
		}`, map[string]any{"id": created["id"]})

	payload := data["productWithBookInfo"].(map[string]any)
	bookDetails := payload["bookDetails"].(map[string]any)
	require.Equal(t, "Frank Herbert", bookDetails["author"])
	require.Equal(t, 1965, bookDetails["year"])
}

func TestProductWithBookInfoDegradesToNullBook(t *testing.T) {
	// Библиотека отвечает "нет такой книги".
	schema := newTestSchema(t, &stubLibrary{book: nil})

	created := createProduct(t, schema, map[string]any{
		"title":         "Dune",
		"price":         19.99,
		"type":          "BOOK",
		"libraryBookId": 42,
	})

	data := executeOK(t, schema, `
		query ProductWithBook($id: ID!) {
			productWithBookInfo(id: $id) {
				product { title }
				bookDetails { title }
			}
		}`, map[string]any{"id": created["id"]})

	payload := data["productWithBookInfo"].(map[string]any)
	require.NotNil(t, payload["product"])
	require.Nil(t, payload["bookDetails"])
}

func TestOrderAndItemsRoundTrip(t *testing.T) {
	schema := newTestSchema(t, nil)

	data := executeOK(t, schema, `
		mutation CreateOrder($input: CreateOrderInput!) {
			createOrder(input: $input) {
				id userId status totalAmount
			}
		}`, map[string]any{
		"input": map[string]any{
			"userId":      "4b4b5f1e-8a24-4c7e-9d25-7f1a4df1c111",
			"status":      "PENDING",
			"totalAmount": 19.99,
		},
	})
	order := data["createOrder"].(map[string]any)
	require.Equal(t, "PENDING", order["status"])

	data = executeOK(t, schema, `
		mutation CreateItem($input: CreateOrderItemInput!) {
			createOrderItem(input: $input) {
				id orderId quantity price
			}
		}`, map[string]any{
		"input": map[string]any{
			"orderId":   order["id"],
			"productId": "p-1",
			"quantity":  2,
			"price":     9.99,
		},
	})
	item := data["createOrderItem"].(map[string]any)
	require.Equal(t, 2, item["quantity"])
	require.Equal(t, 9.99, item["price"])

	data = executeOK(t, schema, `query { orderItems { id orderId } }`, nil)
	items := data["orderItems"].([]any)
	require.Len(t, items, 1)
}

func TestHTTPHandlerServesQueries(t *testing.T) {
	schema := newTestSchema(t, nil)
	handler := NewHandler(schema, nil, nil)

	body, err := json.Marshal(map[string]any{
		"query": `{ products { id } }`,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var decoded struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	require.NotNil(t, decoded.Data["products"])
}

func TestHTTPHandlerRejectsGet(t *testing.T) {
	schema := newTestSchema(t, nil)
	handler := NewHandler(schema, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/graphql", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
