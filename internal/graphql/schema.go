package graphql

import (
	"errors"
	"math"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/vladislavdragonenkov/bookshop/internal/domain"
	"github.com/vladislavdragonenkov/bookshop/internal/service/catalog"
)

// Представления сущностей для GraphQL-ответов. Цена наружу отдаётся
// десятичным числом с двумя знаками, внутри хранится в минимальных единицах.
type productView struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	Type          string   `json:"type"`
	LibraryBookID *float64 `json:"libraryBookId"`
	CreatedAt     string   `json:"createdAt"`
	UpdatedAt     string   `json:"updatedAt"`
}

type orderView struct {
	ID          string  `json:"id"`
	UserID      string  `json:"userId"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"totalAmount"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

type orderItemView struct {
	ID        string  `json:"id"`
	OrderID   string  `json:"orderId"`
	ProductID string  `json:"productId"`
	Quantity  int32   `json:"quantity"`
	Price     float64 `json:"price"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

type bookView struct {
	ID     float64 `json:"id"`
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Year   int32   `json:"year"`
}

type productWithBookView struct {
	Product     productView `json:"product"`
	BookDetails *bookView   `json:"bookDetails"`
}

func minorToDecimal(minor int64) float64 {
	return float64(minor) / 100
}

func decimalToMinor(price float64) int64 {
	return int64(math.Round(price * 100))
}

func toProductView(p domain.Product) productView {
	view := productView{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       minorToDecimal(p.PriceMinor),
		Type:        string(p.Type),
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
	if p.LibraryBookID != nil {
		id := float64(*p.LibraryBookID)
		view.LibraryBookID = &id
	}
	return view
}

func toOrderView(o domain.Order) orderView {
	return orderView{
		ID:          o.ID,
		UserID:      o.UserID,
		Status:      string(o.Status),
		TotalAmount: minorToDecimal(o.TotalAmountMinor),
		CreatedAt:   o.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   o.UpdatedAt.Format(time.RFC3339),
	}
}

func toOrderItemView(i domain.OrderItem) orderItemView {
	return orderItemView{
		ID:        i.ID,
		OrderID:   i.OrderID,
		ProductID: i.ProductID,
		Quantity:  i.Quantity,
		Price:     minorToDecimal(i.PriceMinor),
		CreatedAt: i.CreatedAt.Format(time.RFC3339),
		UpdatedAt: i.UpdatedAt.Format(time.RFC3339),
	}
}

func toBookView(b *domain.BookRecord) *bookView {
	if b == nil {
		return nil
	}
	return &bookView{
		ID:     float64(b.ID),
		Title:  b.Title,
		Author: b.Author,
		Year:   b.Year,
	}
}

// NewSchema собирает GraphQL-схему каталога поверх прикладного сервиса.
func NewSchema(svc *catalog.Service) (graphql.Schema, error) {
	productTypeEnum := graphql.NewEnum(graphql.EnumConfig{
		Name: "ProductType",
		Values: graphql.EnumValueConfigMap{
			"BOOK":          &graphql.EnumValueConfig{Value: string(domain.ProductTypeBook)},
			"DIGITAL_BOOK":  &graphql.EnumValueConfig{Value: string(domain.ProductTypeDigitalBook)},
			"PHYSICAL_GOOD": &graphql.EnumValueConfig{Value: string(domain.ProductTypePhysicalGood)},
			"DIGITAL_GOOD":  &graphql.EnumValueConfig{Value: string(domain.ProductTypeDigitalGood)},
		},
	})

	orderStatusEnum := graphql.NewEnum(graphql.EnumConfig{
		Name: "OrderStatus",
		Values: graphql.EnumValueConfigMap{
			"PENDING":   &graphql.EnumValueConfig{Value: string(domain.OrderStatusPending)},
			"COMPLETED": &graphql.EnumValueConfig{Value: string(domain.OrderStatusCompleted)},
			"CANCELLED": &graphql.EnumValueConfig{Value: string(domain.OrderStatusCancelled)},
		},
	})

	bookType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Book",
		Fields: graphql.Fields{
			"id":     &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"title":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"author": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"year":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	productType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id":            &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"title":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description":   &graphql.Field{Type: graphql.String},
			"price":         &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"type":          &graphql.Field{Type: graphql.NewNonNull(productTypeEnum)},
			"libraryBookId": &graphql.Field{Type: graphql.Float},
			"createdAt":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"updatedAt":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	productWithBookType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ProductWithBookInfo",
		Fields: graphql.Fields{
			"product":     &graphql.Field{Type: graphql.NewNonNull(productType)},
			"bookDetails": &graphql.Field{Type: bookType},
		},
	})

	orderType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Order",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"userId":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"status":      &graphql.Field{Type: graphql.NewNonNull(orderStatusEnum)},
			"totalAmount": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"createdAt":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"updatedAt":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	orderItemType := graphql.NewObject(graphql.ObjectConfig{
		Name: "OrderItem",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"orderId":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"productId": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"quantity":  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"price":     &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"updatedAt": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(productType))),
				Resolve: func(graphql.ResolveParams) (any, error) {
					products, err := svc.ListProducts()
					if err != nil {
						return nil, err
					}
					views := make([]productView, 0, len(products))
					for _, p := range products {
						views = append(views, toProductView(p))
					}
					return views, nil
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					product, err := svc.GetProduct(stringArg(p, "id"))
					if err != nil {
						return nil, resolveAbsentAsNull(err, domain.ErrProductNotFound)
					}
					return toProductView(product), nil
				},
			},
			"productWithBookInfo": &graphql.Field{
				Type: productWithBookType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					product, book, err := svc.GetProductWithBookInfo(p.Context, stringArg(p, "id"))
					if err != nil {
						return nil, resolveAbsentAsNull(err, domain.ErrProductNotFound)
					}
					return productWithBookView{
						Product:     toProductView(product),
						BookDetails: toBookView(book),
					}, nil
				},
			},
			"book": &graphql.Field{
				Type: bookType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					book := svc.GetBook(p.Context, int64(floatArg(p, "id")))
					if book == nil {
						return nil, nil
					}
					return *toBookView(book), nil
				},
			},
			"orders": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(orderType))),
				Resolve: func(graphql.ResolveParams) (any, error) {
					orders, err := svc.ListOrders()
					if err != nil {
						return nil, err
					}
					views := make([]orderView, 0, len(orders))
					for _, o := range orders {
						views = append(views, toOrderView(o))
					}
					return views, nil
				},
			},
			"order": &graphql.Field{
				Type: orderType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					order, err := svc.GetOrder(stringArg(p, "id"))
					if err != nil {
						return nil, resolveAbsentAsNull(err, domain.ErrOrderNotFound)
					}
					return toOrderView(order), nil
				},
			},
			"orderItems": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(orderItemType))),
				Resolve: func(graphql.ResolveParams) (any, error) {
					items, err := svc.ListOrderItems()
					if err != nil {
						return nil, err
					}
					views := make([]orderItemView, 0, len(items))
					for _, i := range items {
						views = append(views, toOrderItemView(i))
					}
					return views, nil
				},
			},
			"orderItem": &graphql.Field{
				Type: orderItemType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					item, err := svc.GetOrderItem(stringArg(p, "id"))
					if err != nil {
						return nil, resolveAbsentAsNull(err, domain.ErrOrderItemNotFound)
					}
					return toOrderItemView(item), nil
				},
			},
		},
	})

	// Мутации принимают input-объекты: по одному типу на операцию,
	// разбор в типизированные входы каталога идёт через общую карту полей.
	createProductInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name:   "CreateProductInput",
		Fields: productInputFields(productTypeEnum),
	})
	updateProductInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name:   "UpdateProductInput",
		Fields: productInputFields(productTypeEnum),
	})
	createOrderInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name:   "CreateOrderInput",
		Fields: orderInputFields(orderStatusEnum),
	})
	updateOrderInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name:   "UpdateOrderInput",
		Fields: orderInputFields(orderStatusEnum),
	})
	createOrderItemInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name:   "CreateOrderItemInput",
		Fields: orderItemInputFields(),
	})
	updateOrderItemInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name:   "UpdateOrderItemInput",
		Fields: orderItemInputFields(),
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createProduct": &graphql.Field{
				Type: graphql.NewNonNull(productType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createProductInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					product, err := svc.CreateProduct(productInput(inputArg(p)))
					if err != nil {
						return nil, err
					}
					return toProductView(product), nil
				},
			},
			"updateProduct": &graphql.Field{
				// Обновление несуществующего id отдаёт null, а не ошибку.
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateProductInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					in := productInput(inputArg(p))
					product, err := svc.UpdateProduct(stringArg(p, "id"), catalog.UpdateProductInput{
						Title:         in.Title,
						Description:   in.Description,
						PriceMinor:    in.PriceMinor,
						Type:          in.Type,
						LibraryBookID: in.LibraryBookID,
					})
					if err != nil {
						return nil, resolveAbsentAsNull(err, domain.ErrProductNotFound)
					}
					return toProductView(product), nil
				},
			},
			"deleteProduct": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return svc.DeleteProduct(stringArg(p, "id"))
				},
			},
			"createOrder": &graphql.Field{
				Type: graphql.NewNonNull(orderType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createOrderInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					order, err := svc.CreateOrder(orderInput(inputArg(p)))
					if err != nil {
						return nil, err
					}
					return toOrderView(order), nil
				},
			},
			"updateOrder": &graphql.Field{
				Type: orderType,
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateOrderInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					in := orderInput(inputArg(p))
					order, err := svc.UpdateOrder(stringArg(p, "id"), catalog.UpdateOrderInput{
						UserID:           in.UserID,
						Status:           in.Status,
						TotalAmountMinor: in.TotalAmountMinor,
					})
					if err != nil {
						return nil, resolveAbsentAsNull(err, domain.ErrOrderNotFound)
					}
					return toOrderView(order), nil
				},
			},
			"deleteOrder": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return svc.DeleteOrder(stringArg(p, "id"))
				},
			},
			"createOrderItem": &graphql.Field{
				Type: graphql.NewNonNull(orderItemType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createOrderItemInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					item, err := svc.CreateOrderItem(orderItemInput(inputArg(p)))
					if err != nil {
						return nil, err
					}
					return toOrderItemView(item), nil
				},
			},
			"updateOrderItem": &graphql.Field{
				Type: orderItemType,
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateOrderItemInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					in := orderItemInput(inputArg(p))
					item, err := svc.UpdateOrderItem(stringArg(p, "id"), catalog.UpdateOrderItemInput{
						OrderID:    in.OrderID,
						ProductID:  in.ProductID,
						Quantity:   in.Quantity,
						PriceMinor: in.PriceMinor,
					})
					if err != nil {
						return nil, resolveAbsentAsNull(err, domain.ErrOrderItemNotFound)
					}
					return toOrderItemView(item), nil
				},
			},
			"deleteOrderItem": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return svc.DeleteOrderItem(stringArg(p, "id"))
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

// resolveAbsentAsNull переводит "не найдено" в null-результат вместо ошибки.
// Остальные ошибки отдаются в массив errors ответа.
func resolveAbsentAsNull(err, absent error) error {
	if errors.Is(err, absent) {
		return nil
	}
	return err
}

func stringArg(p graphql.ResolveParams, name string) string {
	v, _ := p.Args[name].(string)
	return v
}

func floatArg(p graphql.ResolveParams, name string) float64 {
	switch v := p.Args[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

// inputArg достаёт input-объект мутации; отсутствие отдаёт пустую карту.
func inputArg(p graphql.ResolveParams) map[string]any {
	m, _ := p.Args["input"].(map[string]any)
	return m
}

func stringField(in map[string]any, name string) string {
	v, _ := in[name].(string)
	return v
}

func floatField(in map[string]any, name string) float64 {
	switch v := in[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

func intField(in map[string]any, name string) int {
	switch v := in[name].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

func optionalInt64Field(in map[string]any, name string) *int64 {
	raw, ok := in[name]
	if !ok || raw == nil {
		return nil
	}
	switch v := raw.(type) {
	case float64:
		id := int64(v)
		return &id
	case int:
		id := int64(v)
		return &id
	default:
		return nil
	}
}

// Карты полей строятся заново на каждый input-тип: graphql-go мутирует
// конфигурацию при сборке схемы, делить одну карту между типами нельзя.
func productInputFields(productTypeEnum *graphql.Enum) graphql.InputObjectConfigFieldMap {
	return graphql.InputObjectConfigFieldMap{
		"title":         &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"description":   &graphql.InputObjectFieldConfig{Type: graphql.String},
		"price":         &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
		"type":          &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(productTypeEnum)},
		"libraryBookId": &graphql.InputObjectFieldConfig{Type: graphql.Float},
	}
}

func orderInputFields(orderStatusEnum *graphql.Enum) graphql.InputObjectConfigFieldMap {
	return graphql.InputObjectConfigFieldMap{
		"userId":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"status":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(orderStatusEnum)},
		"totalAmount": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
	}
}

func orderItemInputFields() graphql.InputObjectConfigFieldMap {
	return graphql.InputObjectConfigFieldMap{
		"orderId":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"productId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"quantity":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
		"price":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
	}
}

func productInput(in map[string]any) catalog.CreateProductInput {
	return catalog.CreateProductInput{
		Title:         stringField(in, "title"),
		Description:   stringField(in, "description"),
		PriceMinor:    decimalToMinor(floatField(in, "price")),
		Type:          domain.ProductType(stringField(in, "type")),
		LibraryBookID: optionalInt64Field(in, "libraryBookId"),
	}
}

func orderInput(in map[string]any) catalog.CreateOrderInput {
	return catalog.CreateOrderInput{
		UserID:           stringField(in, "userId"),
		Status:           domain.OrderStatus(stringField(in, "status")),
		TotalAmountMinor: decimalToMinor(floatField(in, "totalAmount")),
	}
}

func orderItemInput(in map[string]any) catalog.CreateOrderItemInput {
	quantity := intField(in, "quantity")
	if quantity > math.MaxInt32 {
		quantity = math.MaxInt32
	}
	return catalog.CreateOrderItemInput{
		OrderID:    stringField(in, "orderId"),
		ProductID:  stringField(in, "productId"),
		Quantity:   int32(quantity),
		PriceMinor: decimalToMinor(floatField(in, "price")),
	}
}
