package profile

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/trly/nisclient/internal/facts"
)

const (
	solaris10Release = "5.10"
	solaris11Release = "5.11"

	// Ubuntu renamed the client package and service to nis as of 16.04.
	debianNISRelease = "16.04"

	ypbind = "ypbind"
	nis    = "nis"
)

// base holds the fixed part of each profile.
var base = map[Tag]Profile{
	RedHat: {
		Tag:             RedHat,
		Packages:        []string{ypbind},
		Service:         ypbind,
		NISDomainScript: true,
		BindCommand:     "ypdomainname",
	},
	Debian: {
		Tag:               Debian,
		Packages:          []string{ypbind},
		Service:           ypbind,
		RPCBind:           true,
		DefaultDomainFile: true,
		BindCommand:       "ypdomainname",
	},
	Suse: {
		Tag:               Suse,
		Packages:          []string{ypbind},
		Service:           ypbind,
		RPCBind:           true,
		DefaultDomainFile: true,
		BindCommand:       "ypdomainname",
	},
	Solaris10: {
		Tag:               Solaris10,
		Packages:          []string{"SUNWnisr", "SUNWnisu"},
		Service:           "nis/client",
		DefaultDomainFile: true,
		YPServersTree:     true,
		BindCommand:       "domainname",
	},
	Solaris11: {
		Tag:               Solaris11,
		Packages:          []string{"system/network/nis"},
		Service:           "nis/client",
		DefaultDomainFile: true,
		YPServersTree:     true,
		BindCommand:       "domainname",
	},
}

// Lookup returns the fixed profile for tag, without any release dependent
// adjustments.
func Lookup(tag Tag) (Profile, bool) {
	p, ok := base[tag]
	if !ok {
		return Profile{}, false
	}
	p.Packages = slices.Clone(p.Packages)
	return p, true
}

// Classifier maps facts onto a Profile.
type Classifier struct {
	rpcbindReleases []string
}

// Option customises a Classifier.
type Option func(*Classifier)

// WithRPCBindReleases sets the RedHat major releases whose ypbind requires rpcbind.
func WithRPCBindReleases(releases ...string) Option {
	return func(c *Classifier) {
		c.rpcbindReleases = slices.Clone(releases)
	}
}

// NewClassifier creates a Classifier. By default EL 6 and 7 require rpcbind.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{rpcbindReleases: []string{"6", "7"}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify selects the profile for f or returns an *UnsupportedPlatformError.
func (c *Classifier) Classify(f facts.Facts) (Profile, error) {
	switch f.Kernel {
	case facts.KernelLinux:
		return c.classifyLinux(f)
	case facts.KernelSunOS:
		return classifySunOS(f)
	default:
		return Profile{}, unsupportedKernel(string(f.Kernel))
	}
}

func (c *Classifier) classifyLinux(f facts.Facts) (Profile, error) {
	switch f.OSFamily {
	case facts.FamilyRedHat:
		p, _ := Lookup(RedHat)
		p.RPCBind = slices.Contains(c.rpcbindReleases, f.OSMajorRelease)
		return p, nil
	case facts.FamilySuse:
		p, _ := Lookup(Suse)
		return p, nil
	case facts.FamilyDebian:
		p, _ := Lookup(Debian)
		if debianUsesNIS(f.OSMajorRelease) {
			p.Packages = []string{nis}
			p.Service = nis
		}
		return p, nil
	default:
		return Profile{}, unsupportedFamily(string(f.Kernel), string(f.OSFamily))
	}
}

func classifySunOS(f facts.Facts) (Profile, error) {
	var tag Tag
	switch f.KernelRelease {
	case solaris10Release:
		tag = Solaris10
	case solaris11Release:
		tag = Solaris11
	default:
		return Profile{}, unsupportedSunOS(string(f.Kernel), string(f.OSFamily), f.KernelRelease)
	}
	if f.OSFamily != facts.FamilySolaris {
		return Profile{}, unsupportedSunOSFamily(string(f.Kernel), string(f.OSFamily))
	}
	p, _ := Lookup(tag)
	return p, nil
}

// debianUsesNIS reports whether release ships the client as "nis". Releases
// that do not parse as versions keep the historical ypbind naming.
func debianUsesNIS(release string) bool {
	v, err := parseRelease(release)
	if err != nil {
		return false
	}
	threshold, err := parseRelease(debianNISRelease)
	if err != nil {
		return false
	}
	return !v.LessThan(threshold)
}

// parseRelease reads a dotted numeric release such as "16.04" or "10".
// Each segment is converted to an integer first because distribution
// releases carry zero padded minors that strict semver rejects.
func parseRelease(release string) (*semver.Version, error) {
	parts := strings.Split(release, ".")
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("release %q is not numeric", release)
		}
		parts[i] = strconv.Itoa(n)
	}
	return semver.NewVersion(strings.Join(parts, "."))
}
