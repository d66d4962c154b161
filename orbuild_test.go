package orbuild

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/orbuild/internal/testutil"
	"github.com/arc-language/orbuild/pkg/core"
	"github.com/arc-language/orbuild/pkg/locate"
	"github.com/arc-language/orbuild/pkg/override"
	"github.com/arc-language/orbuild/pkg/protogen"
	"github.com/arc-language/orbuild/pkg/registry"
)

type fixture struct {
	host     *testutil.FakeHost
	gen      *testutil.Generator
	compiler *testutil.Compiler
	opts     Options
}

func newFixture(t *testing.T, triple string, paths ...string) *fixture {
	t.Helper()
	lib, err := registry.Builtin().Load("ortools")
	require.NoError(t, err)

	return &fixture{
		host:     testutil.NewFakeHost(paths...),
		gen:      &testutil.Generator{},
		compiler: &testutil.Compiler{},
		opts: Options{
			Host:    triple,
			Target:  triple,
			Library: lib,
			Tables:  locate.DefaultTables(),
			Proto: protogen.Request{
				Sources:     []string{"src/cp_model.proto", "src/sat_parameters.proto"},
				IncludeDirs: []string{"src/"},
				OutDir:      "internal/pb",
			},
			ShimSource: "src/cp_sat_wrapper.cpp",
			ShimName:   "cp_sat_wrapper",
			OutDir:     "/work/out",
		},
	}
}

func (f *fixture) run() *Result {
	return New(f.host, f.gen, f.compiler, f.opts).Run(context.Background())
}

func lines(t *testing.T, res *Result) []string {
	t.Helper()
	require.NoError(t, res.Err)
	require.NotNil(t, res.Directives)
	return res.Directives.Lines("build:")
}

func TestRun_HomebrewUnversionedPrefix(t *testing.T) {
	f := newFixture(t, "aarch64-apple-darwin", "/opt/homebrew/opt/or-tools")

	res := f.run()

	require.True(t, res.OK())
	require.Equal(t, "/opt/homebrew/include", res.Location.IncludeDir)
	require.Equal(t, []string{"/opt/homebrew/lib"}, res.Location.LinkSearch)
	require.Len(t, f.compiler.Calls, 1)
	require.Equal(t, []string{"/opt/homebrew/include"}, f.compiler.Calls[0].IncludeDirs)
	require.Equal(t, []string{"-std=c++17", "-DOR_PROTO_DLL="}, f.compiler.Calls[0].Flags)
	require.Equal(t, []string{
		"build:rerun-if-env-changed=LIB_DIR_OVERRIDE",
		"build:rerun-if-env-changed=INCLUDE_DIR_OVERRIDE",
		"build:rerun-if-changed=src/cp_sat_wrapper.cpp",
		"build:link-search=native=/opt/homebrew/lib",
		"build:link-search=native=/work/out",
		"build:link-lib=static=cp_sat_wrapper",
		"build:link-lib=ortools",
		"build:link-lib=protobuf",
	}, lines(t, res))
	require.Equal(t, "c++", res.Directives.CXXRuntime)
}

func TestRun_LinuxLib64(t *testing.T) {
	f := newFixture(t, "x86_64-unknown-linux-gnu", "/usr/lib64/libortools.so", "/usr/include/ortools")

	res := f.run()

	require.True(t, res.OK())
	require.Equal(t, "/usr/include", res.Location.IncludeDir)
	require.Equal(t, []string{"/usr/lib64"}, res.Location.LinkSearch)
	require.Contains(t, lines(t, res), "build:link-search=native=/usr/lib64")
	require.Equal(t, "stdc++", res.Directives.CXXRuntime)
}

func TestRun_PartialOverride(t *testing.T) {
	f := newFixture(t, "x86_64-unknown-linux-gnu", "/usr/lib/libortools.so", "/usr/include/ortools")
	f.host.Setenv(override.EnvLibDir, "/opt/ortools/lib")

	res := f.run()

	require.True(t, errors.Is(res.Err, ErrConfiguration))
	require.Equal(t, StageLocateLibrary, res.Failed)
	require.Nil(t, res.Directives)
	require.Zero(t, f.host.ProbeCount())
	require.Empty(t, f.compiler.Calls)
}

func TestRun_FullOverrideSkipsDiscovery(t *testing.T) {
	f := newFixture(t, "x86_64-pc-windows-msvc")
	f.host.Setenv(override.EnvLibDir, "/opt/ortools/lib").Setenv(override.EnvIncludeDir, "/opt/ortools/include")

	res := f.run()

	require.True(t, res.OK(), "an override bypasses the unsupported-platform check")
	require.Equal(t, "/opt/ortools/include", res.Location.IncludeDir)
	require.Zero(t, f.host.ProbeCount())
	require.Contains(t, lines(t, res), "build:link-search=native=/opt/ortools/lib")
}

func TestRun_UnsupportedFamily(t *testing.T) {
	f := newFixture(t, "x86_64-unknown-freebsd", "/usr/lib/libortools.so", "/usr/include/ortools")

	res := f.run()

	require.True(t, errors.Is(res.Err, ErrUnsupportedPlatform))
	require.Contains(t, res.Err.Error(), "x86_64-unknown-freebsd")
	require.Zero(t, f.host.ProbeCount())
	require.Equal(t, StageLocateLibrary, res.Failed)
}

func TestRun_CrossCompilation(t *testing.T) {
	f := newFixture(t, "aarch64-apple-darwin", "/opt/homebrew/opt/or-tools")
	f.opts.Host = "x86_64-unknown-linux-gnu"

	res := f.run()

	require.True(t, errors.Is(res.Err, ErrCrossCompilation))
	require.Equal(t, StageValidate, res.Failed)
	require.Equal(t, []Stage{StageValidate}, res.Ran)
	require.Empty(t, f.gen.Calls, "schema generation must not run")
	require.Zero(t, f.host.ProbeCount(), "discovery must not run")
	require.Nil(t, res.Directives)
}

func TestRun_MalformedTarget(t *testing.T) {
	f := newFixture(t, "not-a")

	res := f.run()

	require.True(t, errors.Is(res.Err, ErrUnsupportedPlatform))
	require.Equal(t, StageValidate, res.Failed)
	require.Empty(t, f.gen.Calls)
}

func TestRun_SchemaFailureStopsBeforeDiscovery(t *testing.T) {
	f := newFixture(t, "x86_64-unknown-linux-gnu", "/usr/lib/libortools.so", "/usr/include/ortools")
	f.gen.Err = errors.New("protoc: exit status 1")

	res := f.run()

	require.True(t, errors.Is(res.Err, ErrSchemaGeneration))
	require.Equal(t, StageGenerateSchema, res.Failed)
	require.Len(t, f.gen.Calls, 1)
	require.Equal(t, []string{"src/cp_model.proto", "src/sat_parameters.proto"}, f.gen.Calls[0].Sources)
	require.Zero(t, f.host.ProbeCount())
	require.Empty(t, f.compiler.Calls)
}

func TestRun_CompilationFailure(t *testing.T) {
	f := newFixture(t, "x86_64-unknown-linux-gnu", "/usr/lib/libortools.so", "/usr/include/ortools")
	f.compiler.Err = errors.New("c++: exit status 1")

	res := f.run()

	require.True(t, errors.Is(res.Err, ErrCompilation))
	require.Equal(t, StageCompileShim, res.Failed)
	require.Nil(t, res.Directives)
}

func TestRun_HeadersMissing(t *testing.T) {
	f := newFixture(t, "x86_64-unknown-linux-gnu", "/usr/local/lib/libortools.so")

	res := f.run()

	require.True(t, errors.Is(res.Err, ErrNotFound))
	require.Equal(t, core.ReasonHeadersMissing, core.ReasonOf(res.Err))
	require.Empty(t, f.compiler.Calls)
}

func TestRun_DocsBuildSkipsCompilation(t *testing.T) {
	for _, key := range DocsEnv {
		t.Run(key, func(t *testing.T) {
			f := newFixture(t, "x86_64-unknown-linux-gnu", "/usr/lib/libortools.so", "/usr/include/ortools")
			f.host.Setenv(key, "1")

			res := f.run()

			require.True(t, res.OK())
			require.Empty(t, f.compiler.Calls)
			require.Nil(t, res.Archive)
			require.Equal(t, []string{
				"build:rerun-if-env-changed=LIB_DIR_OVERRIDE",
				"build:rerun-if-env-changed=INCLUDE_DIR_OVERRIDE",
				"build:link-search=native=/usr/lib",
				"build:link-lib=ortools",
				"build:link-lib=protobuf",
			}, lines(t, res))
		})
	}

	f := newFixture(t, "x86_64-unknown-linux-gnu", "/usr/lib/libortools.so", "/usr/include/ortools")
	f.opts.SkipNative = true
	require.True(t, f.run().OK())
	require.Empty(t, f.compiler.Calls)
}

func TestRun_StageOrder(t *testing.T) {
	f := newFixture(t, "x86_64-unknown-linux-gnu", "/usr/lib/libortools.so", "/usr/include/ortools")

	res := f.run()

	require.Equal(t, []Stage{
		StageValidate,
		StageGenerateSchema,
		StageLocateLibrary,
		StageCompileShim,
		StageEmitDirectives,
	}, res.Ran)
	require.Equal(t, StageNone, res.Failed)
}

func TestRun_Deterministic(t *testing.T) {
	render := func() []byte {
		f := newFixture(t, "x86_64-unknown-linux-gnu", "/usr/local/lib64/libortools.so", "/usr/lib/libortools.so", "/usr/local/include/ortools")
		var buf bytes.Buffer
		require.NoError(t, Emit(&buf, f.run(), core.DefaultConfig()))
		return buf.Bytes()
	}

	first := render()
	assert.Equal(t, first, render())
	assert.NotEmpty(t, first)
}

func TestEmit_FailureWritesOneDiagnostic(t *testing.T) {
	f := newFixture(t, "x86_64-unknown-linux-gnu")

	res := f.run()
	var buf bytes.Buffer
	err := Emit(&buf, res, core.DefaultConfig())

	require.True(t, errors.Is(err, ErrNotFound))
	out := strings.TrimSpace(buf.String())
	require.Equal(t, 1, strings.Count(buf.String(), "\n"))
	require.True(t, strings.HasPrefix(out, "build:error="))
	require.NotContains(t, out, "link-lib")
	require.Contains(t, out, "LIB_DIR_OVERRIDE")
}

func TestEmit_Cgo(t *testing.T) {
	f := newFixture(t, "x86_64-unknown-linux-gnu", "/usr/lib/libortools.so", "/usr/include/ortools")
	cfg := core.DefaultConfig()
	cfg.Format = "cgo"
	cfg.CgoFile = filepath.Join(t.TempDir(), "cpsat", "cgo_flags.go")

	var buf bytes.Buffer
	require.NoError(t, Emit(&buf, f.run(), cfg))

	require.Empty(t, buf.String())
	data, err := os.ReadFile(cfg.CgoFile)
	require.NoError(t, err)
	require.Contains(t, string(data), "package cpsat")
	require.Contains(t, string(data), "-L/usr/lib -L/work/out -lcp_sat_wrapper -lortools -lprotobuf -lstdc++")
}

func TestLocate_Standalone(t *testing.T) {
	f := newFixture(t, "aarch64-apple-darwin", "/opt/homebrew/opt/or-tools@9.14")

	loc, err := New(f.host, f.gen, f.compiler, f.opts).Locate()

	require.NoError(t, err)
	require.Equal(t, "homebrew", loc.Source)
	require.Empty(t, f.gen.Calls)
}

func TestNewFromConfig(t *testing.T) {
	h := testutil.NewFakeHost().
		Setenv("TARGET", "x86_64-unknown-linux-gnu").
		Setenv("HOST", "x86_64-unknown-linux-gnu").
		Setenv("CXX", "clang++")
	cfg := core.DefaultConfig()

	orch, err := NewFromConfig(cfg, h, Setup{})

	require.NoError(t, err)
	require.Equal(t, "x86_64-unknown-linux-gnu", orch.opts.Target)
	require.Equal(t, []string{"ortools", "protobuf"}, orch.opts.Library.Libs)
	require.Equal(t, cfg.Proto.Sources, orch.opts.Proto.Sources)

	cfg.Library = "does-not-exist"
	_, err = NewFromConfig(cfg, h, Setup{})
	require.ErrorContains(t, err, "loading library descriptor")
}
