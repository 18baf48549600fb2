package connection

// Message is the envelope of every frame on a spectator stream.
type Message[T any] struct {
	Code    uint8    `json:"code"`
	Payload T        `json:"payload,omitempty"`
	Error   *RespErr `json:"error,omitempty"`
}

func NewMessage[T any](code uint8) Message[T] {
	return Message[T]{Code: code}
}

// NewPayloadMessage builds a message carrying payload.
func NewPayloadMessage[T any](code uint8, payload T) Message[T] {
	msg := NewMessage[T](code)
	msg.AddPayload(payload)
	return msg
}

// NewErrorMessage builds a payload-less message describing err.
func NewErrorMessage(code uint8, err error, message string) Message[struct{}] {
	msg := NewMessage[struct{}](code)
	msg.AddError(err.Error(), message)
	return msg
}

func (m *Message[T]) AddPayload(payload T) {
	m.Payload = payload
}

func (m *Message[T]) AddError(errorDetails, message string) {
	m.Error = NewRespErr(errorDetails, message)
}

func (m Message[T]) HasError() bool {
	return m.Error != nil
}
