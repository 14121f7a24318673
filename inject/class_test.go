package inject_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sghaida/interject/inject"
)

// region is the declaring type shared by every regional service.
type region interface {
	Region() string
}

type euService struct{ name string }

func (s *euService) Region() string { return "eu-" + s.name }

type usService struct{ name string }

func (s *usService) Region() string { return "us-" + s.name }

//
// -----------------------------------------------------------------------------
// Sharing
// -----------------------------------------------------------------------------

// TestClass_SetBeforeGetSkipsProvider verifies a set value is returned without running the provider.
func TestClass_SetBeforeGetSkipsProvider(t *testing.T) {
	t.Parallel()

	reg := inject.NewRegistry()
	called := false
	dep := inject.DeclareClass("service", func(*euService) (string, error) {
		called = true
		return "service", nil
	}, inject.WithRegistry(reg))

	s := &euService{}
	dep.Set(s, "aaa")

	assert.Equal(t, "aaa", dep.MustGet(s))
	assert.False(t, called)
}

// TestClass_SharedAcrossOwners verifies all owners of the declaring type read one cell.
func TestClass_SharedAcrossOwners(t *testing.T) {
	t.Parallel()

	reg := inject.NewRegistry()
	calls := 0
	dep := inject.DeclareClass("client", inject.Value(func(*euService) int {
		calls++
		return calls
	}), inject.WithRegistry(reg))

	a, b := &euService{name: "a"}, &euService{name: "b"}

	assert.Equal(t, 1, dep.MustGet(a))
	assert.Equal(t, 1, dep.MustGet(b))
	assert.Equal(t, 1, calls)

	dep.Set(b, 42)
	assert.Equal(t, 42, dep.MustGet(a))
}

// TestClass_SharedAcrossImplementers verifies a declaration on an interface is shared by every implementer.
func TestClass_SharedAcrossImplementers(t *testing.T) {
	t.Parallel()

	reg := inject.NewRegistry()
	endpoint := inject.DeclareClass("endpoint", inject.Value(func(r region) string {
		return "https://" + r.Region() + ".example.com"
	}), inject.WithRegistry(reg))

	eu, us := &euService{name: "1"}, &usService{name: "1"}

	// first reader computes with its own state
	assert.Equal(t, "https://us-1.example.com", endpoint.MustGet(us))
	assert.Equal(t, "https://us-1.example.com", endpoint.MustGet(eu))

	endpoint.Set(eu, "stub")
	assert.Equal(t, "stub", endpoint.MustGet(us))
	assert.Equal(t, reflect.TypeFor[region](), endpoint.Class())
}

// TestClass_NarrowerTypeGetsOwnCell verifies redeclaring on a narrower type does not share the wider cell.
func TestClass_NarrowerTypeGetsOwnCell(t *testing.T) {
	t.Parallel()

	reg := inject.NewRegistry()
	wide := inject.DeclareClass("endpoint", inject.Const[region]("wide"), inject.WithRegistry(reg))
	narrow := inject.DeclareClass("endpoint", inject.Const[*euService]("narrow"), inject.WithRegistry(reg))

	eu, us := &euService{}, &usService{}
	wide.Set(us, "wide-stub")

	assert.Equal(t, "narrow", narrow.MustGet(eu))
	assert.Equal(t, "wide-stub", wide.MustGet(eu))
	assert.Equal(t, 2, reg.Len())
}

//
// -----------------------------------------------------------------------------
// Redeclaration and reset
// -----------------------------------------------------------------------------

// TestClass_RedeclareResetsValue verifies redeclaring clears the cached value and uses the new provider.
func TestClass_RedeclareResetsValue(t *testing.T) {
	t.Parallel()

	reg := inject.NewRegistry()
	first := inject.DeclareClass("clock", inject.Const[*euService]("first"), inject.WithRegistry(reg))

	s := &euService{}
	assert.Equal(t, "first", first.MustGet(s))
	first.Set(s, "stub")
	assert.True(t, first.IsSet())

	second := inject.DeclareClass("clock", inject.Const[*euService]("second"), inject.WithRegistry(reg))
	assert.False(t, second.IsSet())
	assert.Equal(t, "second", second.MustGet(s))
	assert.Equal(t, 1, reg.Len())
}

// TestClass_RedeclareResetsEarlierHandles verifies handles from earlier declarations see the reset.
func TestClass_RedeclareResetsEarlierHandles(t *testing.T) {
	t.Parallel()

	reg := inject.NewRegistry()
	calls := 0
	old := inject.DeclareClass("clock", inject.Value(func(*euService) int {
		calls++
		return calls
	}), inject.WithRegistry(reg))

	s := &euService{}
	assert.Equal(t, 1, old.MustGet(s))

	_ = inject.DeclareClass("clock", inject.Const[*euService](100), inject.WithRegistry(reg))
	assert.False(t, old.IsSet())

	// the old handle recomputes with its own provider into the shared cell
	assert.Equal(t, 2, old.MustGet(s))
}

// TestClass_RedeclareWithOtherTypeReplacesCell verifies a redeclaration with a new value type starts fresh.
func TestClass_RedeclareWithOtherTypeReplacesCell(t *testing.T) {
	t.Parallel()

	reg := inject.NewRegistry()
	asString := inject.DeclareClass("port", inject.Const[*euService]("8080"), inject.WithRegistry(reg))
	s := &euService{}
	asString.Set(s, "9090")

	asInt := inject.DeclareClass("port", inject.Const[*euService](8080), inject.WithRegistry(reg))
	assert.Equal(t, 8080, asInt.MustGet(s))
	assert.False(t, asString.IsSet())
	assert.Equal(t, 1, reg.Len())
}

// TestClass_RedeclareWithSyncReplacesCell verifies switching sync mode installs a new cell.
func TestClass_RedeclareWithSyncReplacesCell(t *testing.T) {
	t.Parallel()

	reg := inject.NewRegistry()
	plain := inject.DeclareClass("pool", inject.Const[*euService]("plain"), inject.WithRegistry(reg))
	s := &euService{}
	plain.Set(s, "stub")

	synced := inject.DeclareClass("pool", inject.Const[*euService]("synced"),
		inject.WithRegistry(reg), inject.WithSync())
	assert.Equal(t, "synced", synced.MustGet(s))
	assert.False(t, plain.IsSet())
}

// TestRegistry_Reset verifies Reset unsets every cell but keeps declarations.
func TestRegistry_Reset(t *testing.T) {
	t.Parallel()

	reg := inject.NewRegistry()
	a := inject.DeclareClass("a", inject.Const[*euService]("a"), inject.WithRegistry(reg))
	b := inject.DeclareClass("b", inject.Const[region]("b"), inject.WithRegistry(reg))

	s := &euService{}
	a.Set(s, "stub-a")
	b.Set(s, "stub-b")

	reg.Reset()

	assert.False(t, a.IsSet())
	assert.False(t, b.IsSet())
	assert.Equal(t, "a", a.MustGet(s))
	assert.Equal(t, "b", b.MustGet(s))
	assert.True(t, reg.IsDeclared(reflect.TypeFor[*euService](), "a"))
	assert.True(t, reg.IsDeclared(reflect.TypeFor[region](), "b"))
	assert.False(t, reg.IsDeclared(reflect.TypeFor[region](), "a"))
}

//
// -----------------------------------------------------------------------------
// Failure and edge cases
// -----------------------------------------------------------------------------

// TestClass_ProviderFailureIsRetried verifies a failing provider leaves the shared cell unset.
func TestClass_ProviderFailureIsRetried(t *testing.T) {
	t.Parallel()

	reg := inject.NewRegistry()
	boom := errors.New("boom")
	fail := true
	dep := inject.DeclareClass("conn", func(*euService) (string, error) {
		if fail {
			return "", boom
		}
		return "conn", nil
	}, inject.WithRegistry(reg))

	s := &euService{}
	_, err := dep.Get(s)
	require.ErrorIs(t, err, boom)
	assert.False(t, dep.IsSet())
	require.PanicsWithError(t, "boom", func() { dep.MustGet(s) })

	fail = false
	got, err := dep.Get(s)
	require.NoError(t, err)
	assert.Equal(t, "conn", got)
}

// TestClass_ProviderWriteIsOverwritten verifies the provider's return value wins over its own write.
func TestClass_ProviderWriteIsOverwritten(t *testing.T) {
	t.Parallel()

	reg := inject.NewRegistry()
	var dep *inject.ClassDep[*euService, string]
	dep = inject.DeclareClass("service", func(s *euService) (string, error) {
		dep.Set(s, "written inside")
		return "returned", nil
	}, inject.WithRegistry(reg))

	assert.Equal(t, "returned", dep.MustGet(&euService{}))
}

// TestClass_NilProvider verifies a set-only class dependency reports NoProviderError until set.
func TestClass_NilProvider(t *testing.T) {
	t.Parallel()

	reg := inject.NewRegistry()
	dep := inject.DeclareClass[*euService, string]("stubbed", nil, inject.WithRegistry(reg))
	assert.Equal(t, "stubbed", dep.Name())

	_, err := dep.Get(&euService{})
	assert.Equal(t, inject.NoProviderError{Name: "stubbed"}, err)
	assert.EqualError(t, err, `inject: dependency "stubbed" is unset and has no default provider`)
}

// TestClass_DefaultRegistry verifies declarations without WithRegistry land in the default registry.
func TestClass_DefaultRegistry(t *testing.T) {
	t.Parallel()

	type defaultOnly struct{}
	dep := inject.DeclareClass("marker", inject.Const[*defaultOnly]("x"))

	assert.True(t, inject.DefaultRegistry().IsDeclared(reflect.TypeFor[*defaultOnly](), "marker"))
	assert.Equal(t, "x", dep.MustGet(&defaultOnly{}))

	nilReg := inject.DeclareClass("marker-nil", inject.Const[*defaultOnly]("y"), inject.WithRegistry(nil))
	assert.True(t, inject.DefaultRegistry().IsDeclared(reflect.TypeFor[*defaultOnly](), nilReg.Name()))
}
