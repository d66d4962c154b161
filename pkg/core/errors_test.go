package core

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError_UnwrapsKindAndCause(t *testing.T) {
	cause := errors.New("exit status 1")
	err := Errorf("compile shim", ErrCompilation, "compiling %s", "shim.cpp").Wrap(cause)

	require.True(t, errors.Is(err, ErrCompilation))
	require.True(t, errors.Is(err, cause))
	require.False(t, errors.Is(err, ErrNotFound))
	require.Equal(t, "compile shim: compiling shim.cpp: exit status 1", err.Error())
	require.Equal(t, ErrCompilation, KindOf(err))
}

func TestKindOf_Wrapped(t *testing.T) {
	inner := Errorf("locate", ErrNotFound, "gone").WithReason(ReasonHeadersMissing)
	err := errors.Join(errors.New("context"), inner)

	require.Equal(t, ErrNotFound, KindOf(err))
	require.Equal(t, ReasonHeadersMissing, ReasonOf(err))
	require.Nil(t, KindOf(errors.New("plain")))
	require.Equal(t, ReasonNone, ReasonOf(errors.New("plain")))
}

func TestError_DefaultMessage(t *testing.T) {
	err := &Error{Op: "validate", Kind: ErrCrossCompilation}
	require.Equal(t, "validate: cross-compilation is not supported", err.Error())
}

func TestOSHost(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "libortools.so")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	ok, err := OSHost{}.Exists(file)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = OSHost{}.Exists(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	require.False(t, ok)

	t.Setenv("ORBUILD_TEST_VAR", "")
	_, ok = Getenv(OSHost{}, "ORBUILD_TEST_VAR")
	require.False(t, ok)
	t.Setenv("ORBUILD_TEST_VAR", "x")
	v, ok := Getenv(OSHost{}, "ORBUILD_TEST_VAR")
	require.True(t, ok)
	require.Equal(t, "x", v)
}
