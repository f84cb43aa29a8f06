package ioc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type testDependency struct {
	name string
}

type testConsumer struct {
	dep *testDependency
}

func TestResolveSingleton(t *testing.T) {
	c := NewNestedContainer(nil)
	c.RegisterSingleton(func() *testDependency {
		return &testDependency{name: "singleton"}
	})

	var first *testDependency
	require.NoError(t, c.Resolve(&first))
	require.Equal(t, "singleton", first.name)

	var second *testDependency
	require.NoError(t, c.Resolve(&second))
	require.Same(t, first, second)
}

func TestResolveFromParent(t *testing.T) {
	parent := NewNestedContainer(nil)
	RegisterInstance(parent, &testDependency{name: "parent"})

	child := NewNestedContainer(parent)
	child.RegisterSingleton(func(dep *testDependency) *testConsumer {
		return &testConsumer{dep: dep}
	})

	var consumer *testConsumer
	require.NoError(t, child.Resolve(&consumer))
	require.Equal(t, "parent", consumer.dep.name)
}

func TestResolveUnregistered(t *testing.T) {
	c := NewNestedContainer(nil)

	var missing *testConsumer
	err := c.Resolve(&missing)
	require.ErrorIs(t, err, ErrResolveInstance)
}

func TestResolveTransient(t *testing.T) {
	c := NewNestedContainer(nil)
	c.RegisterTransient(func() *testDependency {
		return &testDependency{name: "transient"}
	})

	var first *testDependency
	require.NoError(t, c.Resolve(&first))

	var second *testDependency
	require.NoError(t, c.Resolve(&second))
	require.NotSame(t, first, second)
}
