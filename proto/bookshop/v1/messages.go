package bookshopv1

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// Message — контракт вручную кодируемого wire-сообщения.
type Message interface {
	MarshalWire() ([]byte, error)
	UnmarshalWire(data []byte) error
}

// Кодирование следует proto3-семантике: скалярные поля с нулевым значением
// не пишутся, неизвестные поля при чтении пропускаются. Опциональные поля
// (указатели) пишутся всегда, когда присутствуют.

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendInt64(b []byte, num protowire.Number, v int64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}

func appendInt64Opt(b []byte, num protowire.Number, v *int64) []byte {
	if v == nil {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(*v))
}

func appendInt32(b []byte, num protowire.Number, v int32) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(int64(v)))
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, 1)
}

func appendMessage(b []byte, num protowire.Number, m Message) ([]byte, error) {
	if m == nil {
		return b, nil
	}
	sub, err := m.MarshalWire()
	if err != nil {
		return nil, err
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, sub), nil
}

func consumeString(b []byte) (string, int, error) {
	v, n := protowire.ConsumeString(b)
	if n < 0 {
		return "", 0, protowire.ParseError(n)
	}
	return v, n, nil
}

func consumeVarint(b []byte) (uint64, int, error) {
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, 0, protowire.ParseError(n)
	}
	return v, n, nil
}

func consumeBytes(b []byte) ([]byte, int, error) {
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, 0, protowire.ParseError(n)
	}
	return v, n, nil
}

func skipField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	n := protowire.ConsumeFieldValue(num, typ, b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	return n, nil
}

// Product — товар каталога на wire-уровне.
type Product struct {
	ProductID     string
	Title         string
	Description   string
	PriceMinor    int64
	ProductType   ProductType
	LibraryBookID *int64
	CreatedAtUnix int64
	UpdatedAtUnix int64
}

func (m *Product) MarshalWire() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.ProductID)
	b = appendString(b, 2, m.Title)
	b = appendString(b, 3, m.Description)
	b = appendInt64(b, 4, m.PriceMinor)
	b = appendInt32(b, 5, int32(m.ProductType))
	b = appendInt64Opt(b, 6, m.LibraryBookID)
	b = appendInt64(b, 7, m.CreatedAtUnix)
	b = appendInt64(b, 8, m.UpdatedAtUnix)
	return b, nil
}

func (m *Product) UnmarshalWire(data []byte) error {
	*m = Product{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		var err error
		switch num {
		case 1:
			m.ProductID, n, err = consumeString(b)
		case 2:
			m.Title, n, err = consumeString(b)
		case 3:
			m.Description, n, err = consumeString(b)
		case 4:
			var v uint64
			v, n, err = consumeVarint(b)
			m.PriceMinor = int64(v)
		case 5:
			var v uint64
			v, n, err = consumeVarint(b)
			m.ProductType = ProductType(int32(v))
		case 6:
			var v uint64
			v, n, err = consumeVarint(b)
			id := int64(v)
			m.LibraryBookID = &id
		case 7:
			var v uint64
			v, n, err = consumeVarint(b)
			m.CreatedAtUnix = int64(v)
		case 8:
			var v uint64
			v, n, err = consumeVarint(b)
			m.UpdatedAtUnix = int64(v)
		default:
			n, err = skipField(num, typ, b)
		}
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}

// Order — заказ каталога на wire-уровне.
type Order struct {
	OrderID          string
	UserID           string
	Status           OrderStatus
	TotalAmountMinor int64
	CreatedAtUnix    int64
	UpdatedAtUnix    int64
}

func (m *Order) MarshalWire() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.OrderID)
	b = appendString(b, 2, m.UserID)
	b = appendInt32(b, 3, int32(m.Status))
	b = appendInt64(b, 4, m.TotalAmountMinor)
	b = appendInt64(b, 5, m.CreatedAtUnix)
	b = appendInt64(b, 6, m.UpdatedAtUnix)
	return b, nil
}

func (m *Order) UnmarshalWire(data []byte) error {
	*m = Order{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		var err error
		switch num {
		case 1:
			m.OrderID, n, err = consumeString(b)
		case 2:
			m.UserID, n, err = consumeString(b)
		case 3:
			var v uint64
			v, n, err = consumeVarint(b)
			m.Status = OrderStatus(int32(v))
		case 4:
			var v uint64
			v, n, err = consumeVarint(b)
			m.TotalAmountMinor = int64(v)
		case 5:
			var v uint64
			v, n, err = consumeVarint(b)
			m.CreatedAtUnix = int64(v)
		case 6:
			var v uint64
			v, n, err = consumeVarint(b)
			m.UpdatedAtUnix = int64(v)
		default:
			n, err = skipField(num, typ, b)
		}
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}

// BookInfo — запись внешней библиотеки на wire-уровне.
type BookInfo struct {
	ID     int64
	Title  string
	Author string
	Year   int32
}

func (m *BookInfo) MarshalWire() ([]byte, error) {
	var b []byte
	b = appendInt64(b, 1, m.ID)
	b = appendString(b, 2, m.Title)
	b = appendString(b, 3, m.Author)
	b = appendInt32(b, 4, m.Year)
	return b, nil
}

func (m *BookInfo) UnmarshalWire(data []byte) error {
	*m = BookInfo{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		var err error
		switch num {
		case 1:
			var v uint64
			v, n, err = consumeVarint(b)
			m.ID = int64(v)
		case 2:
			m.Title, n, err = consumeString(b)
		case 3:
			m.Author, n, err = consumeString(b)
		case 4:
			var v uint64
			v, n, err = consumeVarint(b)
			m.Year = int32(int64(v))
		default:
			n, err = skipField(num, typ, b)
		}
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}

// GetProductRequest запрашивает товар по идентификатору.
type GetProductRequest struct {
	ProductID string
}

func (m *GetProductRequest) MarshalWire() ([]byte, error) {
	return appendString(nil, 1, m.ProductID), nil
}

func (m *GetProductRequest) UnmarshalWire(data []byte) error {
	*m = GetProductRequest{}
	return unmarshalSingleString(data, 1, &m.ProductID)
}

// GetProductResponse несёт товар либо структурированную ошибку.
type GetProductResponse struct {
	Product      *Product
	Success      bool
	ErrorCode    ErrorCode
	ErrorMessage string
}

func (m *GetProductResponse) MarshalWire() ([]byte, error) {
	b, err := appendMessage(nil, 1, messageOrNil(m.Product))
	if err != nil {
		return nil, err
	}
	b = appendBool(b, 2, m.Success)
	b = appendInt32(b, 3, int32(m.ErrorCode))
	b = appendString(b, 4, m.ErrorMessage)
	return b, nil
}

func (m *GetProductResponse) UnmarshalWire(data []byte) error {
	*m = GetProductResponse{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		var err error
		switch num {
		case 1:
			var sub []byte
			sub, n, err = consumeBytes(b)
			if err == nil {
				m.Product = new(Product)
				err = m.Product.UnmarshalWire(sub)
			}
		case 2:
			var v uint64
			v, n, err = consumeVarint(b)
			m.Success = v != 0
		case 3:
			var v uint64
			v, n, err = consumeVarint(b)
			m.ErrorCode = ErrorCode(int32(v))
		case 4:
			m.ErrorMessage, n, err = consumeString(b)
		default:
			n, err = skipField(num, typ, b)
		}
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}

// CreateProductRequest создаёт товар через бинарный фронтенд.
type CreateProductRequest struct {
	Title         string
	Description   string
	PriceMinor    int64
	ProductType   ProductType
	LibraryBookID *int64
}

func (m *CreateProductRequest) MarshalWire() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.Title)
	b = appendString(b, 2, m.Description)
	b = appendInt64(b, 3, m.PriceMinor)
	b = appendInt32(b, 4, int32(m.ProductType))
	b = appendInt64Opt(b, 5, m.LibraryBookID)
	return b, nil
}

func (m *CreateProductRequest) UnmarshalWire(data []byte) error {
	*m = CreateProductRequest{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		var err error
		switch num {
		case 1:
			m.Title, n, err = consumeString(b)
		case 2:
			m.Description, n, err = consumeString(b)
		case 3:
			var v uint64
			v, n, err = consumeVarint(b)
			m.PriceMinor = int64(v)
		case 4:
			var v uint64
			v, n, err = consumeVarint(b)
			m.ProductType = ProductType(int32(v))
		case 5:
			var v uint64
			v, n, err = consumeVarint(b)
			id := int64(v)
			m.LibraryBookID = &id
		default:
			n, err = skipField(num, typ, b)
		}
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}

// CreateProductResponse несёт созданный товар либо структурированную ошибку.
type CreateProductResponse struct {
	Product      *Product
	Success      bool
	ErrorCode    ErrorCode
	ErrorMessage string
}

func (m *CreateProductResponse) MarshalWire() ([]byte, error) {
	b, err := appendMessage(nil, 1, messageOrNil(m.Product))
	if err != nil {
		return nil, err
	}
	b = appendBool(b, 2, m.Success)
	b = appendInt32(b, 3, int32(m.ErrorCode))
	b = appendString(b, 4, m.ErrorMessage)
	return b, nil
}

func (m *CreateProductResponse) UnmarshalWire(data []byte) error {
	var resp GetProductResponse
	if err := resp.UnmarshalWire(data); err != nil {
		return err
	}
	*m = CreateProductResponse(resp)
	return nil
}

// GetOrderRequest запрашивает заказ по идентификатору.
type GetOrderRequest struct {
	OrderID string
}

func (m *GetOrderRequest) MarshalWire() ([]byte, error) {
	return appendString(nil, 1, m.OrderID), nil
}

func (m *GetOrderRequest) UnmarshalWire(data []byte) error {
	*m = GetOrderRequest{}
	return unmarshalSingleString(data, 1, &m.OrderID)
}

// GetOrderResponse несёт заказ либо структурированную ошибку.
type GetOrderResponse struct {
	Order        *Order
	Success      bool
	ErrorCode    ErrorCode
	ErrorMessage string
}

func (m *GetOrderResponse) MarshalWire() ([]byte, error) {
	b, err := appendMessage(nil, 1, messageOrNil(m.Order))
	if err != nil {
		return nil, err
	}
	b = appendBool(b, 2, m.Success)
	b = appendInt32(b, 3, int32(m.ErrorCode))
	b = appendString(b, 4, m.ErrorMessage)
	return b, nil
}

func (m *GetOrderResponse) UnmarshalWire(data []byte) error {
	*m = GetOrderResponse{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		var err error
		switch num {
		case 1:
			var sub []byte
			sub, n, err = consumeBytes(b)
			if err == nil {
				m.Order = new(Order)
				err = m.Order.UnmarshalWire(sub)
			}
		case 2:
			var v uint64
			v, n, err = consumeVarint(b)
			m.Success = v != 0
		case 3:
			var v uint64
			v, n, err = consumeVarint(b)
			m.ErrorCode = ErrorCode(int32(v))
		case 4:
			m.ErrorMessage, n, err = consumeString(b)
		default:
			n, err = skipField(num, typ, b)
		}
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}

// CreateOrderRequest создаёт заказ через бинарный фронтенд.
type CreateOrderRequest struct {
	UserID           string
	Status           OrderStatus
	TotalAmountMinor int64
}

func (m *CreateOrderRequest) MarshalWire() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.UserID)
	b = appendInt32(b, 2, int32(m.Status))
	b = appendInt64(b, 3, m.TotalAmountMinor)
	return b, nil
}

func (m *CreateOrderRequest) UnmarshalWire(data []byte) error {
	*m = CreateOrderRequest{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		var err error
		switch num {
		case 1:
			m.UserID, n, err = consumeString(b)
		case 2:
			var v uint64
			v, n, err = consumeVarint(b)
			m.Status = OrderStatus(int32(v))
		case 3:
			var v uint64
			v, n, err = consumeVarint(b)
			m.TotalAmountMinor = int64(v)
		default:
			n, err = skipField(num, typ, b)
		}
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}

// CreateOrderResponse несёт созданный заказ либо структурированную ошибку.
type CreateOrderResponse struct {
	Order        *Order
	Success      bool
	ErrorCode    ErrorCode
	ErrorMessage string
}

func (m *CreateOrderResponse) MarshalWire() ([]byte, error) {
	b, err := appendMessage(nil, 1, messageOrNil(m.Order))
	if err != nil {
		return nil, err
	}
	b = appendBool(b, 2, m.Success)
	b = appendInt32(b, 3, int32(m.ErrorCode))
	b = appendString(b, 4, m.ErrorMessage)
	return b, nil
}

func (m *CreateOrderResponse) UnmarshalWire(data []byte) error {
	var resp GetOrderResponse
	if err := resp.UnmarshalWire(data); err != nil {
		return err
	}
	*m = CreateOrderResponse(resp)
	return nil
}

// GetBookFromLibraryRequest запрашивает книгу во внешней библиотеке.
type GetBookFromLibraryRequest struct {
	BookID int64
}

func (m *GetBookFromLibraryRequest) MarshalWire() ([]byte, error) {
	return appendInt64(nil, 1, m.BookID), nil
}

func (m *GetBookFromLibraryRequest) UnmarshalWire(data []byte) error {
	*m = GetBookFromLibraryRequest{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		var err error
		switch num {
		case 1:
			var v uint64
			v, n, err = consumeVarint(b)
			m.BookID = int64(v)
		default:
			n, err = skipField(num, typ, b)
		}
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}

// GetBookFromLibraryResponse несёт запись книги либо структурированную ошибку.
type GetBookFromLibraryResponse struct {
	Book         *BookInfo
	Success      bool
	ErrorCode    ErrorCode
	ErrorMessage string
}

func (m *GetBookFromLibraryResponse) MarshalWire() ([]byte, error) {
	b, err := appendMessage(nil, 1, messageOrNil(m.Book))
	if err != nil {
		return nil, err
	}
	b = appendBool(b, 2, m.Success)
	b = appendInt32(b, 3, int32(m.ErrorCode))
	b = appendString(b, 4, m.ErrorMessage)
	return b, nil
}

func (m *GetBookFromLibraryResponse) UnmarshalWire(data []byte) error {
	*m = GetBookFromLibraryResponse{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		var err error
		switch num {
		case 1:
			var sub []byte
			sub, n, err = consumeBytes(b)
			if err == nil {
				m.Book = new(BookInfo)
				err = m.Book.UnmarshalWire(sub)
			}
		case 2:
			var v uint64
			v, n, err = consumeVarint(b)
			m.Success = v != 0
		case 3:
			var v uint64
			v, n, err = consumeVarint(b)
			m.ErrorCode = ErrorCode(int32(v))
		case 4:
			m.ErrorMessage, n, err = consumeString(b)
		default:
			n, err = skipField(num, typ, b)
		}
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}

// ValidateProductRequest проверяет существование товара.
type ValidateProductRequest struct {
	ProductID string
}

func (m *ValidateProductRequest) MarshalWire() ([]byte, error) {
	return appendString(nil, 1, m.ProductID), nil
}

func (m *ValidateProductRequest) UnmarshalWire(data []byte) error {
	*m = ValidateProductRequest{}
	return unmarshalSingleString(data, 1, &m.ProductID)
}

// ValidateProductResponse — ответ валидатора.
type ValidateProductResponse struct {
	Valid bool
}

func (m *ValidateProductResponse) MarshalWire() ([]byte, error) {
	return appendBool(nil, 1, m.Valid), nil
}

func (m *ValidateProductResponse) UnmarshalWire(data []byte) error {
	*m = ValidateProductResponse{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		var err error
		switch num {
		case 1:
			var v uint64
			v, n, err = consumeVarint(b)
			m.Valid = v != 0
		default:
			n, err = skipField(num, typ, b)
		}
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}

// unmarshalSingleString разбирает сообщение с единственным строковым полем.
func unmarshalSingleString(data []byte, field protowire.Number, dst *string) error {
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		var err error
		if num == field {
			*dst, n, err = consumeString(b)
		} else {
			n, err = skipField(num, typ, b)
		}
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}

// messageOrNil приводит типизированный nil-указатель к nil-интерфейсу,
// чтобы appendMessage не сериализовал пустое вложенное сообщение.
func messageOrNil[T any, PT interface {
	Message
	*T
}](m PT) Message {
	if m == nil {
		return nil
	}
	return m
}
