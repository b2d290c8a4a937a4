// Package entrypoint finds the invocable method of a loaded unit.
package entrypoint

import (
	"context"
	"fmt"
	"go/token"
	"reflect"
	"strings"

	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	contextType = reflect.TypeFor[context.Context]()
	errorType   = reflect.TypeFor[error]()
)

// Discovery is the result of Resolve: either Found or Missing.
type Discovery interface {
	isDiscovery()
}

// Found is a bound entry point ready to be called.
type Found struct {
	// Unit is the loaded unit the method belongs to.
	Unit ports.Unit

	// TypeName is the resolved type name, without package qualifier.
	TypeName string

	// MethodName is the name of the bound method.
	MethodName string

	// Instance is a pointer to a freshly constructed value of the type.
	Instance reflect.Value

	// Method is the method bound to Instance.
	Method reflect.Value

	// Input is the type of the method's value parameter.
	Input reflect.Type

	// Output is the type of the method's value result.
	Output reflect.Type

	// TakesContext reports whether the method's first parameter is a context.Context.
	TakesContext bool
}

// Missing explains why no entry point could be bound.
type Missing struct {
	Err error
}

func (Found) isDiscovery()   {}
func (Missing) isDiscovery() {}

// Resolve binds methodName on a new instance of typeName from unit.
// The type name may carry the "main." qualifier.
// Accepted shapes are func(X) (Y, error) and func(context.Context, X) (Y, error).
func Resolve(unit ports.Unit, typeName, methodName string) Discovery {
	name := strings.TrimPrefix(typeName, "main.")

	typ, ok := unit.LookupType(name)
	if !ok {
		err := zerr.With(zerr.Wrap(domain.ErrTypeNotFound, fmt.Sprintf("type %q", typeName)), "unit", unit.ID())
		return Missing{Err: zerr.With(err, "available", strings.Join(unit.TypeNames(), ", "))}
	}
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	if !token.IsExported(methodName) {
		return Missing{Err: methodError(typeName, methodName, "method is not exported")}
	}

	instance := reflect.New(typ)
	method := instance.MethodByName(methodName)
	if !method.IsValid() {
		return Missing{Err: methodError(typeName, methodName, "no such method")}
	}

	mt := method.Type()
	if mt.IsVariadic() || mt.NumOut() != 2 || mt.Out(1) != errorType {
		return Missing{Err: methodError(typeName, methodName, "signature "+mt.String())}
	}

	found := Found{
		Unit:       unit,
		TypeName:   name,
		MethodName: methodName,
		Instance:   instance,
		Method:     method,
		Output:     mt.Out(0),
	}
	switch {
	case mt.NumIn() == 1:
		found.Input = mt.In(0)
	case mt.NumIn() == 2 && mt.In(0) == contextType:
		found.Input = mt.In(1)
		found.TakesContext = true
	default:
		return Missing{Err: methodError(typeName, methodName, "signature "+mt.String())}
	}
	return found
}

func methodError(typeName, methodName, reason string) error {
	err := zerr.Wrap(domain.ErrMethodNotAccessible, fmt.Sprintf("method %s.%s: %s", typeName, methodName, reason))
	return zerr.With(err, "method", methodName)
}
