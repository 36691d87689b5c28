package grpcsvc

import (
	"fmt"

	"github.com/vladislavdragonenkov/bookshop/internal/domain"
	bookshopv1 "github.com/vladislavdragonenkov/bookshop/proto/bookshop/v1"
)

// Таблицы соответствия wire-кодов и доменных значений. Обе стороны проверяют
// вход: неизвестный код отклоняется, а не пропускается и не переименовывается.

func productTypeFromWire(t bookshopv1.ProductType) (domain.ProductType, error) {
	switch t {
	case bookshopv1.ProductTypeBook:
		return domain.ProductTypeBook, nil
	case bookshopv1.ProductTypeDigitalBook:
		return domain.ProductTypeDigitalBook, nil
	case bookshopv1.ProductTypePhysicalGood:
		return domain.ProductTypePhysicalGood, nil
	case bookshopv1.ProductTypeDigitalGood:
		return domain.ProductTypeDigitalGood, nil
	default:
		return "", fmt.Errorf("unknown product type code %d", int32(t))
	}
}

func productTypeToWire(t domain.ProductType) (bookshopv1.ProductType, error) {
	switch t {
	case domain.ProductTypeBook:
		return bookshopv1.ProductTypeBook, nil
	case domain.ProductTypeDigitalBook:
		return bookshopv1.ProductTypeDigitalBook, nil
	case domain.ProductTypePhysicalGood:
		return bookshopv1.ProductTypePhysicalGood, nil
	case domain.ProductTypeDigitalGood:
		return bookshopv1.ProductTypeDigitalGood, nil
	default:
		return 0, fmt.Errorf("unknown product type %q", string(t))
	}
}

func orderStatusFromWire(s bookshopv1.OrderStatus) (domain.OrderStatus, error) {
	switch s {
	case bookshopv1.OrderStatusPending:
		return domain.OrderStatusPending, nil
	case bookshopv1.OrderStatusCompleted:
		return domain.OrderStatusCompleted, nil
	case bookshopv1.OrderStatusCancelled:
		return domain.OrderStatusCancelled, nil
	default:
		return "", fmt.Errorf("unknown order status code %d", int32(s))
	}
}

func orderStatusToWire(s domain.OrderStatus) (bookshopv1.OrderStatus, error) {
	switch s {
	case domain.OrderStatusPending:
		return bookshopv1.OrderStatusPending, nil
	case domain.OrderStatusCompleted:
		return bookshopv1.OrderStatusCompleted, nil
	case domain.OrderStatusCancelled:
		return bookshopv1.OrderStatusCancelled, nil
	default:
		return 0, fmt.Errorf("unknown order status %q", string(s))
	}
}

func toWireProduct(p domain.Product) (*bookshopv1.Product, error) {
	wireType, err := productTypeToWire(p.Type)
	if err != nil {
		return nil, err
	}
	return &bookshopv1.Product{
		ProductID:     p.ID,
		Title:         p.Title,
		Description:   p.Description,
		PriceMinor:    p.PriceMinor,
		ProductType:   wireType,
		LibraryBookID: p.LibraryBookID,
		CreatedAtUnix: p.CreatedAt.Unix(),
		UpdatedAtUnix: p.UpdatedAt.Unix(),
	}, nil
}

func toWireOrder(o domain.Order) (*bookshopv1.Order, error) {
	wireStatus, err := orderStatusToWire(o.Status)
	if err != nil {
		return nil, err
	}
	return &bookshopv1.Order{
		OrderID:          o.ID,
		UserID:           o.UserID,
		Status:           wireStatus,
		TotalAmountMinor: o.TotalAmountMinor,
		CreatedAtUnix:    o.CreatedAt.Unix(),
		UpdatedAtUnix:    o.UpdatedAt.Unix(),
	}, nil
}

func toWireBook(b *domain.BookRecord) *bookshopv1.BookInfo {
	if b == nil {
		return nil
	}
	return &bookshopv1.BookInfo{
		ID:     b.ID,
		Title:  b.Title,
		Author: b.Author,
		Year:   b.Year,
	}
}
