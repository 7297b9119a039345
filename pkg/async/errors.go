package async

import (
	"errors"
	"fmt"
)

var ErrPanic = errors.New("async: panic in asynchronous function")

func newPanicError(v any) error {
	if err, ok := v.(error); ok {
		return fmt.Errorf("%w: %w", ErrPanic, err)
	}
	return fmt.Errorf("%w: %v", ErrPanic, v)
}
