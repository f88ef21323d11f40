package codec

import (
	"errors"

	"google.golang.org/protobuf/proto"
)

var errNoCtor = errors.New("codec: protobuf codec built without a constructor")

// Protobuf encodes generated messages. Build it with NewProtobuf, passing a
// constructor for the concrete message, e.g. func() *pb.User { return &pb.User{} }.
type Protobuf[T proto.Message] struct {
	new func() T
}

var _ Codec[proto.Message] = Protobuf[proto.Message]{}

func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{new: ctor}
}

func (c Protobuf[T]) Encode(v T) ([]byte, error) {
	return proto.Marshal(v)
}

func (c Protobuf[T]) Decode(b []byte) (T, error) {
	if c.new == nil {
		var zero T
		return zero, errNoCtor
	}
	m := c.new()
	err := proto.Unmarshal(b, m)
	return m, err
}
