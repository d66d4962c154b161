// pkg/platform/detect.go
package platform

import (
	"fmt"
	"runtime"

	"github.com/arc-language/orbuild/pkg/core"
)

const (
	// EnvHost and EnvTarget name the variables a build driver sets
	EnvHost   = "HOST"
	EnvTarget = "TARGET"
)

// Detect returns the triple of the running machine
func Detect() (Triple, error) {
	return fromGo(runtime.GOOS, runtime.GOARCH)
}

func fromGo(goos, goarch string) (Triple, error) {
	var arch string
	switch goarch {
	case "amd64":
		arch = "x86_64"
	case "arm64":
		arch = "aarch64"
	case "386":
		arch = "i686"
	case "arm":
		arch = "armv7"
	default:
		arch = goarch
	}

	switch goos {
	case "darwin":
		return Parse(arch + "-apple-darwin")
	case "linux":
		return Parse(arch + "-unknown-linux-gnu")
	case "windows":
		return Parse(arch + "-pc-windows-msvc")
	default:
		return Parse(fmt.Sprintf("%s-unknown-%s", arch, goos))
	}
}

// Resolve reads the host and target triples without parsing them. An explicit
// value wins, then the HOST/TARGET variables, then the running machine.
func Resolve(h core.Host, host, target string) (string, string, error) {
	pick := func(explicit, key string) (string, error) {
		if explicit != "" {
			return explicit, nil
		}
		if v, ok := core.Getenv(h, key); ok {
			return v, nil
		}
		t, err := Detect()
		if err != nil {
			return "", fmt.Errorf("detecting %s: %w", key, err)
		}
		return t.String(), nil
	}

	ht, err := pick(host, EnvHost)
	if err != nil {
		return "", "", err
	}
	tt, err := pick(target, EnvTarget)
	if err != nil {
		return "", "", err
	}
	return ht, tt, nil
}
