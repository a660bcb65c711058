package export

import "fmt"

// EncoderError wraps a fatal encoder failure with the operation and
// encoder that produced it.
type EncoderError struct {
	Op      string
	Encoder string
	Err     error
}

func (e *EncoderError) Error() string {
	if e.Encoder != "" {
		return fmt.Sprintf("encoder %s: %s: %v", e.Encoder, e.Op, e.Err)
	}
	return fmt.Sprintf("encoder: %s: %v", e.Op, e.Err)
}

func (e *EncoderError) Unwrap() error {
	return e.Err
}
