package facts

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/trly/nisclient/internal/execx"
	"github.com/trly/nisclient/internal/log"
)

// DefaultOSReleasePath is where Linux distributions describe themselves.
const DefaultOSReleasePath = "/etc/os-release"

// os-release IDs mapped to the family they belong to.
var familyIDs = map[string]OSFamily{
	"rhel":      FamilyRedHat,
	"centos":    FamilyRedHat,
	"fedora":    FamilyRedHat,
	"rocky":     FamilyRedHat,
	"almalinux": FamilyRedHat,
	"ol":        FamilyRedHat,
	"amzn":      FamilyRedHat,
	"debian":    FamilyDebian,
	"ubuntu":    FamilyDebian,
	"suse":      FamilySuse,
	"opensuse":  FamilySuse,
	"sles":      FamilySuse,
	"sled":      FamilySuse,
}

// Detector gathers facts from the local host.
type Detector struct {
	runner        execx.Runner
	logger        log.Logger
	osReleasePath string
}

// DetectorOption customises a Detector.
type DetectorOption func(*Detector)

// WithOSReleasePath overrides the os-release location.
func WithOSReleasePath(path string) DetectorOption {
	return func(d *Detector) {
		d.osReleasePath = path
	}
}

// NewDetector creates a Detector using runner for host probes.
func NewDetector(runner execx.Runner, logger log.Logger, opts ...DetectorOption) *Detector {
	d := &Detector{
		runner:        runner,
		logger:        logger,
		osReleasePath: DefaultOSReleasePath,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect probes the host. The kernel facts are mandatory; the domain is
// left empty when the host has no fully qualified name.
func (d *Detector) Detect(ctx context.Context) (Facts, error) {
	kernel, err := d.runner.Output(ctx, "uname", "-s")
	if err != nil {
		return Facts{}, fmt.Errorf("detecting kernel: %w", err)
	}
	release, err := d.runner.Output(ctx, "uname", "-r")
	if err != nil {
		return Facts{}, fmt.Errorf("detecting kernel release: %w", err)
	}

	f := Facts{
		Kernel:        CanonicalKernel(kernel),
		KernelRelease: release,
	}

	switch f.Kernel {
	case KernelLinux:
		family, major, err := d.readOSRelease()
		if err != nil {
			return Facts{}, err
		}
		f.OSFamily = family
		f.OSMajorRelease = major
	case KernelSunOS:
		f.OSFamily = FamilySolaris
	}

	f.Domain = d.detectDomain(ctx)

	d.logger.Debug("Detected host facts",
		"kernel", f.Kernel,
		"osfamily", f.OSFamily,
		"major", f.OSMajorRelease,
		"kernelrelease", f.KernelRelease,
		"domain", f.Domain)

	return f, nil
}

func (d *Detector) readOSRelease() (OSFamily, string, error) {
	cfg, err := ini.Load(d.osReleasePath)
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", d.osReleasePath, err)
	}

	section := cfg.Section(ini.DefaultSection)
	id := strings.ToLower(section.Key("ID").String())
	candidates := append([]string{id}, strings.Fields(strings.ToLower(section.Key("ID_LIKE").String()))...)

	family := OSFamily("")
	for _, candidate := range candidates {
		if f, ok := familyIDs[candidate]; ok {
			family = f
			break
		}
		if strings.HasPrefix(candidate, "opensuse") {
			family = FamilySuse
			break
		}
	}
	if family == "" {
		family = CanonicalFamily(section.Key("NAME").String())
	}

	return family, majorRelease(id, section.Key("VERSION_ID").String()), nil
}

// majorRelease mirrors how release majors are reported per distribution:
// Ubuntu keeps its YY.MM release, everything else keeps the first component.
func majorRelease(id, versionID string) string {
	if id == "ubuntu" {
		return versionID
	}
	major, _, _ := strings.Cut(versionID, ".")
	return major
}

func (d *Detector) detectDomain(ctx context.Context) string {
	fqdn, err := d.runner.Output(ctx, "hostname", "-f")
	if err != nil {
		d.logger.Debug("Unable to determine fully qualified hostname", "error", err)
		return ""
	}
	_, domain, found := strings.Cut(fqdn, ".")
	if !found {
		return ""
	}
	return domain
}
