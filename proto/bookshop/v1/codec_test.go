package bookshopv1

import (
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestProduct_WireRoundTrip(t *testing.T) {
	bookID := int64(42)
	src := Product{
		ProductID:     "product-1",
		Title:         "Мастер и Маргарита",
		Description:   "роман",
		PriceMinor:    1999,
		ProductType:   ProductTypeBook,
		LibraryBookID: &bookID,
		CreatedAtUnix: 1700000000,
		UpdatedAtUnix: 1700000100,
	}

	data, err := src.MarshalWire()
	require.NoError(t, err)

	var dst Product
	require.NoError(t, dst.UnmarshalWire(data))
	require.Equal(t, src, dst)
}

func TestProduct_OptionalLibraryBookID(t *testing.T) {
	// Отсутствующая ссылка не должна материализоваться при чтении.
	src := Product{ProductID: "product-1", Title: "t", ProductType: ProductTypeDigitalGood}

	data, err := src.MarshalWire()
	require.NoError(t, err)

	var dst Product
	require.NoError(t, dst.UnmarshalWire(data))
	require.Nil(t, dst.LibraryBookID)

	// Явный ноль отличим от отсутствия.
	zero := int64(0)
	src.LibraryBookID = &zero
	data, err = src.MarshalWire()
	require.NoError(t, err)
	require.NoError(t, dst.UnmarshalWire(data))
	require.NotNil(t, dst.LibraryBookID)
	require.Equal(t, int64(0), *dst.LibraryBookID)
}

func TestGetProductResponse_ErrorEnvelope(t *testing.T) {
	src := GetProductResponse{
		Success:      false,
		ErrorCode:    ErrorCodeNotFound,
		ErrorMessage: "product not found",
	}

	data, err := src.MarshalWire()
	require.NoError(t, err)

	var dst GetProductResponse
	require.NoError(t, dst.UnmarshalWire(data))
	require.Nil(t, dst.Product)
	require.False(t, dst.Success)
	require.Equal(t, ErrorCodeNotFound, dst.ErrorCode)
	require.Equal(t, "product not found", dst.ErrorMessage)
}

func TestUnmarshal_SkipsUnknownFields(t *testing.T) {
	src := CreateOrderRequest{UserID: "user-1", Status: OrderStatusCompleted, TotalAmountMinor: 500}
	data, err := src.MarshalWire()
	require.NoError(t, err)

	// Поле с незнакомым номером должно пропускаться без ошибки.
	data = protowire.AppendTag(data, 99, protowire.BytesType)
	data = protowire.AppendString(data, "future field")

	var dst CreateOrderRequest
	require.NoError(t, dst.UnmarshalWire(data))
	require.Equal(t, src, dst)
}

func TestCodec_RejectsForeignType(t *testing.T) {
	codec := Codec{}

	_, err := codec.Marshal("not a message")
	require.Error(t, err)

	require.Error(t, codec.Unmarshal(nil, 42))
	require.Equal(t, CodecName, codec.Name())
}

func TestEnumCodes_Stable(t *testing.T) {
	require.Equal(t, []ProductType{0, 1, 2, 3}, ProductTypeValues())
	require.Equal(t, []OrderStatus{0, 1, 2}, OrderStatusValues())

	require.True(t, ProductTypeDigitalGood.IsValid())
	require.False(t, ProductType(99).IsValid())
	require.True(t, OrderStatusCancelled.IsValid())
	require.False(t, OrderStatus(77).IsValid())
}
