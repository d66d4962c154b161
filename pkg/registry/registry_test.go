package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuiltin_ORTools(t *testing.T) {
	e, err := Builtin().Load("ortools")

	require.NoError(t, err)
	require.Equal(t, "ortools", e.Name)
	require.Equal(t, "ortools", e.HeaderDir)
	require.Equal(t, []string{"ortools", "protobuf"}, e.Libs)
	require.Equal(t, "libortools.so", e.SharedObject())
	require.Equal(t, "or-tools", e.Formula("brew"))
	require.Equal(t, "ortools", e.Formula("apt"))
}

func writeEntry(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, name), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name, "index.toml"), []byte(body), 0644))
}

func TestLoad_FromDisk(t *testing.T) {
	dir := t.TempDir()
	writeEntry(t, dir, "highs", `
libs = ["highs"]
`)

	e, err := New(dir).Load("highs")

	require.NoError(t, err)
	require.Equal(t, "highs", e.Name, "name defaults to the directory")
	require.Equal(t, "highs", e.HeaderDir)
	require.Equal(t, "libhighs.so", e.SharedObject())
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "empty"), 0755))
	writeEntry(t, dir, "broken", `libs = [`)
	writeEntry(t, dir, "nolibs", `name = "nolibs"`)

	r := New(dir)

	_, err := r.Load("missing")
	require.ErrorContains(t, err, "not found")

	_, err = r.Load("empty")
	require.ErrorContains(t, err, "missing index.toml")

	_, err = r.Load("broken")
	require.ErrorContains(t, err, "failed to parse")

	_, err = r.Load("nolibs")
	require.ErrorContains(t, err, "no libs")
}

func TestLookup_FallsBackToBuiltin(t *testing.T) {
	dir := t.TempDir()
	writeEntry(t, dir, "ortools", `
name = "ortools"
libs = ["ortools", "protobuf", "absl_base"]
`)

	e, err := Lookup("ortools", New(dir), Builtin())
	require.NoError(t, err)
	require.Equal(t, []string{"ortools", "protobuf", "absl_base"}, e.Libs, "the on-disk entry shadows the builtin one")

	e, err = Lookup("ortools", New(t.TempDir()), Builtin())
	require.NoError(t, err)
	require.Equal(t, []string{"ortools", "protobuf"}, e.Libs)

	_, err = Lookup("nope", New(t.TempDir()), Builtin())
	require.Error(t, err)
}
