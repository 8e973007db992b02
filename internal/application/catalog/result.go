package catalog

import (
	"fmt"
	"reflect"
)

// NoDataMessage is what every empty or failed result displays as.
const NoDataMessage = "No data available"

// Diagnostic describes a query fault that was absorbed at the query boundary.
type Diagnostic struct {
	Operation string `json:"operation"`
	Message   string `json:"message"`
	Cause     error  `json:"-"`
}

func (d Diagnostic) Error() string {
	if d.Cause == nil {
		return fmt.Sprintf("%s: %s", d.Operation, d.Message)
	}
	return fmt.Sprintf("%s: %s: %v", d.Operation, d.Message, d.Cause)
}

func (d Diagnostic) Unwrap() error { return d.Cause }

// Result is the outcome of a fail-soft query: either data (possibly empty)
// or a Diagnostic. Callers that only display results treat both alike
// through Empty.
type Result[T any] struct {
	data T
	diag *Diagnostic
}

// Ok wraps successfully fetched data.
func Ok[T any](data T) Result[T] {
	return Result[T]{data: data}
}

// Failed wraps an absorbed fault.
func Failed[T any](d Diagnostic) Result[T] {
	return Result[T]{diag: &d}
}

// OK reports whether the query succeeded, regardless of row count.
func (r Result[T]) OK() bool { return r.diag == nil }

// Data returns the fetched data, or the zero value of T for a failed result.
func (r Result[T]) Data() T { return r.data }

// Diagnostic returns the absorbed fault, or nil.
func (r Result[T]) Diagnostic() *Diagnostic { return r.diag }

// Err returns the diagnostic as an error, or nil.
func (r Result[T]) Err() error {
	if r.diag == nil {
		return nil
	}
	return *r.diag
}

// Empty reports whether there is nothing to display: a failure, a nil
// pointer, or an empty slice.
func (r Result[T]) Empty() bool {
	if r.diag != nil {
		return true
	}
	v := reflect.ValueOf(r.data)
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	default:
		return v.IsZero()
	}
}

//Personal.AI order the ending
