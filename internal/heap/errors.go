package heap

import "fmt"

// Category classifies the three error kinds the heap can raise.
type Category string

const (
	CategoryInvalidFree     Category = "INVALID_FREE"
	CategoryInvalidAccess   Category = "INVALID_ACCESS"
	CategoryUnknownStrategy Category = "UNKNOWN_STRATEGY"
)

// Error is the heap's standardized error shape: a category, a short code,
// a human-readable message, and structured context for the condition that
// produced it. Error does not record a call stack — allocate/free/read/write
// are hot paths invoked in tight loops by design, and every raise site
// already knows exactly which address or strategy is at fault.
type Error struct {
	Category Category
	Code     string
	Message  string
	Context  map[string]interface{}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
}

// Is reports whether target is a *Error with the same Category, so callers
// can write errors.Is(err, heap.ErrInvalidFree(0)) to test the kind of
// failure without caring about the specific address involved.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.Category == other.Category
}

func newError(category Category, code, message string, context map[string]interface{}) *Error {
	return &Error{Category: category, Code: code, Message: message, Context: context}
}

// ErrInvalidFree reports that addr does not name a currently-allocated
// block start: never allocated, already freed, or not a valid start.
func ErrInvalidFree(addr int) *Error {
	return newError(CategoryInvalidFree, "INVALID_FREE",
		fmt.Sprintf("address %d is not a currently allocated block", addr),
		map[string]interface{}{"address": addr})
}

// ErrInvalidAccess reports that addr does not lie within any currently
// allocated block.
func ErrInvalidAccess(addr int) *Error {
	return newError(CategoryInvalidAccess, "INVALID_ACCESS",
		fmt.Sprintf("address %d is not within any allocated block", addr),
		map[string]interface{}{"address": addr})
}

// ErrUnknownStrategy reports that s is not one of the recognised placement
// strategies. This is a programmer error, not a user condition.
func ErrUnknownStrategy(s Strategy) *Error {
	return newError(CategoryUnknownStrategy, "UNKNOWN_STRATEGY",
		fmt.Sprintf("unknown placement strategy: %v", s),
		map[string]interface{}{"strategy": int(s)})
}
