package value_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vesper-lang/vesper/lang/value"
)

func TestCopyStringInterns(t *testing.T) {
	in := value.NewInterner()

	a := in.CopyString("hello")
	b := in.CopyString("hello")
	require.Same(t, a, b, "equal content must resolve to the identical *String")
	require.Equal(t, 1, in.Len())
}

func TestCopyStringDistinctContent(t *testing.T) {
	in := value.NewInterner()

	a := in.CopyString("hello")
	b := in.CopyString("world")
	require.NotSame(t, a, b)
	require.Equal(t, 2, in.Len())
}

func TestTakeStringBehavesLikeCopyString(t *testing.T) {
	in := value.NewInterner()

	a := in.CopyString("hi")
	b := in.TakeString("hi")
	require.Same(t, a, b)
	require.Equal(t, 1, in.Len())
}

func TestStringEqualityIsPointerIdentity(t *testing.T) {
	in := value.NewInterner()

	a := in.CopyString("same")
	b := in.CopyString("same")
	require.True(t, value.Equal(a, b))
}

func TestStringValueMethods(t *testing.T) {
	in := value.NewInterner()
	s := in.CopyString("hi")

	require.Equal(t, "hi", s.String())
	require.Equal(t, "string", s.Type())
	require.Equal(t, `"hi"`, s.Quoted())
}
