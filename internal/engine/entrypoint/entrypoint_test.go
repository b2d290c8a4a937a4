package entrypoint_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/core/ports/mocks"
	"go.trai.ch/fuse/internal/engine/entrypoint"
	"go.uber.org/mock/gomock"
)

type Startup struct{}

func (Startup) Invoke(ctx context.Context, s string) (int, error) { return len(s), nil }

func (*Startup) Plain(n int) (int, error) { return n * 2, nil }

func (Startup) NoError(n int) int { return n }

func (Startup) TooMany(a, b int) (int, error) { return a + b, nil }

func (Startup) Variadic(ns ...int) (int, error) { return len(ns), nil }

func (Startup) unexported(n int) (int, error) { return n, nil } //nolint:unused // checked by name

func newUnit(t *testing.T) *mocks.MockUnit {
	t.Helper()
	unit := mocks.NewMockUnit(gomock.NewController(t))
	unit.EXPECT().ID().Return("u1").AnyTimes()
	unit.EXPECT().TypeNames().Return([]string{"Startup"}).AnyTimes()
	unit.EXPECT().LookupType("Startup").Return(reflect.TypeFor[Startup](), true).AnyTimes()
	unit.EXPECT().LookupType(gomock.Not("Startup")).Return(nil, false).AnyTimes()
	return unit
}

func TestResolve_Found(t *testing.T) {
	unit := newUnit(t)

	for _, typeName := range []string{"Startup", "main.Startup"} {
		discovery := entrypoint.Resolve(unit, typeName, "Invoke")
		found, ok := discovery.(entrypoint.Found)
		require.True(t, ok, "%#v", discovery)

		assert.Equal(t, "Startup", found.TypeName)
		assert.True(t, found.TakesContext)
		assert.Equal(t, reflect.TypeFor[string](), found.Input)
		assert.Equal(t, reflect.TypeFor[int](), found.Output)
		assert.Equal(t, reflect.Pointer, found.Instance.Kind())
	}
}

func TestResolve_PointerReceiver(t *testing.T) {
	found, ok := entrypoint.Resolve(newUnit(t), "Startup", "Plain").(entrypoint.Found)
	require.True(t, ok)

	assert.False(t, found.TakesContext)
	out := found.Method.Call([]reflect.Value{reflect.ValueOf(21)})
	assert.Equal(t, 42, out[0].Interface())
}

func TestResolve_Missing(t *testing.T) {
	tests := []struct {
		name       string
		typeName   string
		methodName string
		want       error
	}{
		{name: "unknown type", typeName: "Other", methodName: "Invoke", want: domain.ErrTypeNotFound},
		{name: "unknown method", typeName: "Startup", methodName: "Run", want: domain.ErrMethodNotAccessible},
		{name: "unexported method", typeName: "Startup", methodName: "unexported", want: domain.ErrMethodNotAccessible},
		{name: "no error result", typeName: "Startup", methodName: "NoError", want: domain.ErrMethodNotAccessible},
		{name: "two value parameters", typeName: "Startup", methodName: "TooMany", want: domain.ErrMethodNotAccessible},
		{name: "variadic", typeName: "Startup", methodName: "Variadic", want: domain.ErrMethodNotAccessible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			discovery := entrypoint.Resolve(newUnit(t), tt.typeName, tt.methodName)
			missing, ok := discovery.(entrypoint.Missing)
			require.True(t, ok, "%#v", discovery)
			assert.ErrorIs(t, missing.Err, tt.want)
		})
	}
}
