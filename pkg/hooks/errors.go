package hooks

import "fmt"

// PanicError is stored in AsyncState.Err when the operation panics.
// Value is what was passed to panic; Stack is the goroutine stack at the
// point of recovery.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("uihooks: operation panicked: %v", e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
