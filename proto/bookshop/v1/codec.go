package bookshopv1

import (
	"fmt"

	"google.golang.org/grpc/encoding"
)

// CodecName — content-subtype кодека bookshop в gRPC.
// Клиентские стабы подставляют его автоматически через CallContentSubtype.
const CodecName = "bookshop-wire"

// Codec сериализует wire-сообщения пакета для транспорта gRPC.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	msg, ok := v.(Message)
	if !ok {
		return nil, fmt.Errorf("bookshop codec: cannot marshal %T, want bookshopv1.Message", v)
	}
	return msg.MarshalWire()
}

func (Codec) Unmarshal(data []byte, v any) error {
	msg, ok := v.(Message)
	if !ok {
		return fmt.Errorf("bookshop codec: cannot unmarshal into %T, want bookshopv1.Message", v)
	}
	return msg.UnmarshalWire(data)
}

func (Codec) Name() string { return CodecName }

func init() {
	encoding.RegisterCodec(Codec{})
}
