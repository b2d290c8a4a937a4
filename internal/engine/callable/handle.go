// Package callable adapts a discovered entry point to the domain.Callable contract.
package callable

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"reflect"

	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/core/ports"
	"go.trai.ch/fuse/internal/engine/entrypoint"
	"go.trai.ch/zerr"
)

var _ domain.Callable = (*Handle)(nil)

// Handle owns a loaded unit and the instance its entry point is bound to.
// Invocations run concurrently; the bound instance is shared between them.
type Handle struct {
	entry  entrypoint.Found
	tracer ports.Tracer
}

// New creates a Handle for entry.
func New(entry entrypoint.Found, tracer ports.Tracer) *Handle {
	return &Handle{entry: entry, tracer: tracer}
}

// Invoke runs the entry point on its own goroutine.
// Conversion failures, returned errors and panics are all reported through the future.
func (h *Handle) Invoke(ctx context.Context, input any) *domain.Future {
	future, resolve := domain.NewPromise()
	go h.run(ctx, input, resolve)
	return future
}

func (h *Handle) run(ctx context.Context, input any, resolve func(any, error)) {
	ctx, span := h.tracer.Start(ctx, "fuse.invoke")
	span.SetAttribute("unit", h.entry.Unit.ID())
	span.SetAttribute("method", h.entry.TypeName+"."+h.entry.MethodName)

	var (
		value any
		err   error
	)
	defer func() {
		span.RecordError(err)
		span.End()
		resolve(value, err)
	}()
	defer func() {
		if r := recover(); r != nil {
			value = nil
			err = zerr.With(zerr.Wrap(domain.ErrInvocationPanicked, fmt.Sprintf("panic: %v", r)), "method", h.entry.MethodName)
		}
	}()

	arg, err := convertInput(input, h.entry.Input)
	if err != nil {
		return
	}

	args := []reflect.Value{arg}
	if h.entry.TakesContext {
		args = []reflect.Value{reflect.ValueOf(&ctx).Elem(), arg}
	}

	out := h.entry.Method.Call(args)
	if errValue := out[1]; !errValue.IsNil() {
		err = errValue.Interface().(error)
		return
	}
	value = out[0].Interface()
}

// convertInput produces a value of type want from input.
// In order: nil becomes the zero value, assignable values pass through,
// numbers are converted, and maps or slices are re-decoded through JSON.
func convertInput(input any, want reflect.Type) (reflect.Value, error) {
	if input == nil {
		return reflect.Zero(want), nil
	}

	v := reflect.ValueOf(input)
	if v.Type().AssignableTo(want) {
		out := reflect.New(want).Elem()
		out.Set(v)
		return out, nil
	}

	if isNumeric(v.Kind()) && isNumeric(want.Kind()) {
		return convertNumber(v, want)
	}

	switch v.Kind() {
	case reflect.Map, reflect.Slice:
		data, err := json.Marshal(input)
		if err != nil {
			return reflect.Value{}, mismatch(v.Type(), want, err)
		}
		target := reflect.New(want)
		if err := json.Unmarshal(data, target.Interface()); err != nil {
			return reflect.Value{}, mismatch(v.Type(), want, err)
		}
		return target.Elem(), nil
	}

	return reflect.Value{}, mismatch(v.Type(), want, nil)
}

// convertNumber converts v to want only when the value survives unchanged.
// Fractional floats never become integers, and values outside want's range are rejected.
func convertNumber(v reflect.Value, want reflect.Type) (reflect.Value, error) {
	target := reflect.New(want).Elem()
	switch {
	case isFloat(v.Kind()):
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			if isFloat(want.Kind()) {
				return v.Convert(want), nil
			}
			return reflect.Value{}, mismatch(v.Type(), want, fmt.Errorf("%v is not a finite number", f))
		}
		if !isFloat(want.Kind()) && f != math.Trunc(f) {
			return reflect.Value{}, mismatch(v.Type(), want, fmt.Errorf("%v has a fractional part", f))
		}
		switch {
		case isFloat(want.Kind()):
			if target.OverflowFloat(f) {
				return reflect.Value{}, overflow(v, want)
			}
		case isSigned(want.Kind()):
			if f < math.MinInt64 || f >= math.MaxInt64 || target.OverflowInt(int64(f)) {
				return reflect.Value{}, overflow(v, want)
			}
		default:
			if f < 0 || f >= math.MaxUint64 || target.OverflowUint(uint64(f)) {
				return reflect.Value{}, overflow(v, want)
			}
		}
	case isSigned(v.Kind()):
		n := v.Int()
		switch {
		case isFloat(want.Kind()):
		case isSigned(want.Kind()):
			if target.OverflowInt(n) {
				return reflect.Value{}, overflow(v, want)
			}
		default:
			if n < 0 || target.OverflowUint(uint64(n)) {
				return reflect.Value{}, overflow(v, want)
			}
		}
	default:
		n := v.Uint()
		switch {
		case isFloat(want.Kind()):
		case isSigned(want.Kind()):
			if n > math.MaxInt64 || target.OverflowInt(int64(n)) {
				return reflect.Value{}, overflow(v, want)
			}
		default:
			if target.OverflowUint(n) {
				return reflect.Value{}, overflow(v, want)
			}
		}
	}
	return v.Convert(want), nil
}

func overflow(v reflect.Value, want reflect.Type) error {
	return mismatch(v.Type(), want, fmt.Errorf("%v overflows %s", v.Interface(), want))
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func isSigned(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func mismatch(have, want reflect.Type, cause error) error {
	msg := fmt.Sprintf("cannot use %s as %s", have, want)
	if cause != nil {
		msg += ": " + cause.Error()
	}
	return zerr.Wrap(domain.ErrInputTypeMismatch, msg)
}
