// pkg/platform/triple.go
package platform

import (
	"fmt"
	"strings"
)

// Family groups triples that share a discovery strategy
type Family string

const (
	FamilyDarwin  Family = "darwin"
	FamilyLinux   Family = "linux-gnu"
	FamilyUnknown Family = "unknown"
)

// Triple identifies the architecture, vendor, OS and ABI of a build target
type Triple struct {
	Arch   string // x86_64, aarch64
	Vendor string // apple, unknown, pc
	OS     string // darwin, linux, windows
	ABI    string // gnu, musl, msvc (may be empty)

	raw string
}

// Parse splits a triple of the form arch-vendor-os[-abi]
func Parse(s string) (Triple, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, "-")
	if len(parts) < 3 || len(parts) > 4 {
		return Triple{}, fmt.Errorf("malformed target triple %q: want arch-vendor-os[-abi]", s)
	}
	for _, p := range parts {
		if p == "" {
			return Triple{}, fmt.Errorf("malformed target triple %q: empty component", s)
		}
	}

	t := Triple{
		Arch:   parts[0],
		Vendor: parts[1],
		OS:     parts[2],
		raw:    s,
	}
	if len(parts) == 4 {
		t.ABI = parts[3]
	}
	return t, nil
}

// MustParse is Parse for literals known to be valid
func MustParse(s string) Triple {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// String returns the triple exactly as it was given
func (t Triple) String() string {
	if t.raw != "" {
		return t.raw
	}
	if t.ABI == "" {
		return fmt.Sprintf("%s-%s-%s", t.Arch, t.Vendor, t.OS)
	}
	return fmt.Sprintf("%s-%s-%s-%s", t.Arch, t.Vendor, t.OS, t.ABI)
}

// Family classifies the triple for discovery. Linux covers every glibc ABI
// variant (gnu, gnueabihf, gnux32) on the unknown vendor.
func (t Triple) Family() Family {
	switch {
	case t.Vendor == "apple" && t.OS == "darwin":
		return FamilyDarwin
	case t.Vendor == "unknown" && t.OS == "linux" && strings.HasPrefix(t.ABI, "gnu"):
		return FamilyLinux
	default:
		return FamilyUnknown
	}
}
