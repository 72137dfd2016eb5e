// Package facts models the host facts the resolver branches on and loads
// them from fact files or from the local host.
package facts

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"
)

// Kernel is the value of the kernel fact.
type Kernel string

// Known kernels.
const (
	KernelLinux Kernel = "Linux"
	KernelSunOS Kernel = "SunOS"
)

// OSFamily is the value of the osfamily fact. Unknown families are kept verbatim.
type OSFamily string

// Known OS families.
const (
	FamilyRedHat  OSFamily = "RedHat"
	FamilyDebian  OSFamily = "Debian"
	FamilySuse    OSFamily = "Suse"
	FamilySolaris OSFamily = "Solaris"
)

var (
	knownKernels  = []Kernel{KernelLinux, KernelSunOS}
	knownFamilies = []OSFamily{FamilyRedHat, FamilyDebian, FamilySuse, FamilySolaris}
	fold          = cases.Fold()
)

// Facts is the read-only input describing a host.
type Facts struct {
	Kernel         Kernel   `yaml:"kernel" json:"kernel"`
	OSFamily       OSFamily `yaml:"osfamily" json:"osfamily"`
	OSMajorRelease string   `yaml:"operatingsystemmajrelease,omitempty" json:"operatingsystemmajrelease,omitempty"`
	KernelRelease  string   `yaml:"kernelrelease,omitempty" json:"kernelrelease,omitempty"`
	Domain         string   `yaml:"domain,omitempty" json:"domain,omitempty"`
}

// document is the on-disk fact layout. It accepts the legacy flat fact
// names as well as the structured os hash.
type document struct {
	Kernel                    string `yaml:"kernel"`
	OSFamily                  string `yaml:"osfamily"`
	OperatingSystemMajRelease string `yaml:"operatingsystemmajrelease"`
	OperatingSystemRelease    string `yaml:"operatingsystemrelease"`
	KernelRelease             string `yaml:"kernelrelease"`
	Domain                    string `yaml:"domain"`
	OS                        struct {
		Family  string `yaml:"family"`
		Release struct {
			Major string `yaml:"major"`
		} `yaml:"release"`
	} `yaml:"os"`
}

// Decode parses a YAML or JSON fact document. Scalars keep their literal
// text, so an unquoted kernelrelease of 5.10 stays "5.10".
func Decode(data []byte) (Facts, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Facts{}, fmt.Errorf("decoding facts: %w", err)
	}

	family := doc.OSFamily
	if family == "" {
		family = doc.OS.Family
	}

	major := firstNonEmpty(doc.OperatingSystemMajRelease, doc.OS.Release.Major, doc.OperatingSystemRelease)

	return Facts{
		Kernel:         CanonicalKernel(doc.Kernel),
		OSFamily:       CanonicalFamily(family),
		OSMajorRelease: major,
		KernelRelease:  strings.TrimSpace(doc.KernelRelease),
		Domain:         strings.TrimSpace(doc.Domain),
	}, nil
}

// Load reads and decodes a fact file.
func Load(path string) (Facts, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is operator supplied
	if err != nil {
		return Facts{}, fmt.Errorf("reading facts file: %w", err)
	}
	return Decode(data)
}

// CanonicalKernel maps a kernel name onto its canonical spelling.
func CanonicalKernel(value string) Kernel {
	value = strings.TrimSpace(value)
	for _, k := range knownKernels {
		if fold.String(value) == fold.String(string(k)) {
			return k
		}
	}
	return Kernel(value)
}

// CanonicalFamily maps an OS family name onto its canonical spelling.
func CanonicalFamily(value string) OSFamily {
	value = strings.TrimSpace(value)
	for _, f := range knownFamilies {
		if fold.String(value) == fold.String(string(f)) {
			return f
		}
	}
	return OSFamily(value)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
