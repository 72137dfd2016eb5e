// Package profile classifies host facts into the NIS client profile that
// drives resource emission.
package profile

import (
	"fmt"
	"slices"
	"strings"
)

// Tag identifies a supported platform profile.
type Tag int

// Supported profiles.
const (
	RedHat Tag = iota + 1
	Debian
	Suse
	Solaris10
	Solaris11
)

// String returns the profile name.
func (t Tag) String() string {
	switch t {
	case RedHat:
		return "RedHat"
	case Debian:
		return "Debian"
	case Suse:
		return "Suse"
	case Solaris10:
		return "Solaris10"
	case Solaris11:
		return "Solaris11"
	default:
		return fmt.Sprintf("Tag(%d)", int(t))
	}
}

// MarshalText renders the tag by name.
func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// IsSolaris reports whether the profile targets the SunOS kernel.
func (t Tag) IsSolaris() bool {
	return t == Solaris10 || t == Solaris11
}

// Profile is the immutable outcome of classification.
type Profile struct {
	Tag Tag `yaml:"tag" json:"tag"`
	// Packages are the default package names, in install order.
	Packages []string `yaml:"packages" json:"packages"`
	// Service is the default service name.
	Service string `yaml:"service" json:"service"`
	// RPCBind is set when ypbind needs the external rpcbind service.
	RPCBind bool `yaml:"rpcbind" json:"rpcbind"`
	// DefaultDomainFile is set when /etc/defaultdomain carries the domain.
	DefaultDomainFile bool `yaml:"defaultDomainFile" json:"defaultDomainFile"`
	// NISDomainScript is set when NISDOMAIN is kept in /etc/sysconfig/network.
	NISDomainScript bool `yaml:"nisDomainScript" json:"nisDomainScript"`
	// YPServersTree is set when servers are listed under /var/yp/binding.
	YPServersTree bool `yaml:"ypserversTree" json:"ypserversTree"`
	// BindCommand is the utility that binds the running system to a domain.
	BindCommand string `yaml:"bindCommand" json:"bindCommand"`
}

// DefaultPackages returns a copy of the default package names.
func (p Profile) DefaultPackages() []string {
	return slices.Clone(p.Packages)
}

// UnsupportedPlatformError reports a fact combination the classifier does not know.
type UnsupportedPlatformError struct {
	Kernel        string
	OSFamily      string
	KernelRelease string
	// Supported lists the values that would have been accepted.
	Supported []string
	message   string
}

// Error implements the error interface.
func (e *UnsupportedPlatformError) Error() string {
	return e.message
}

func unsupportedKernel(kernel string) *UnsupportedPlatformError {
	return &UnsupportedPlatformError{
		Kernel:    kernel,
		Supported: []string{"Linux", "SunOS"},
		message:   fmt.Sprintf("nisclient is only supported on Linux and SunOS kernels. Detected kernel is <%s>.", kernel),
	}
}

func unsupportedFamily(kernel, family string) *UnsupportedPlatformError {
	return &UnsupportedPlatformError{
		Kernel:    kernel,
		OSFamily:  family,
		Supported: []string{"Debian", "RedHat", "Suse"},
		message:   fmt.Sprintf("nisclient supports osfamilies Debian, RedHat, and Suse on the Linux kernel. Detected osfamily is <%s>.", family),
	}
}

func unsupportedSunOS(kernel, family, release string) *UnsupportedPlatformError {
	supported := []string{solaris10Release, solaris11Release}
	return &UnsupportedPlatformError{
		Kernel:        kernel,
		OSFamily:      family,
		KernelRelease: release,
		Supported:     supported,
		message:       fmt.Sprintf("nisclient supports SunOS %s. Detected kernelrelease is <%s>.", strings.Join(supported, " and "), release),
	}
}

func unsupportedSunOSFamily(kernel, family string) *UnsupportedPlatformError {
	return &UnsupportedPlatformError{
		Kernel:    kernel,
		OSFamily:  family,
		Supported: []string{"Solaris"},
		message:   fmt.Sprintf("nisclient supports the Solaris osfamily on the SunOS kernel. Detected osfamily is <%s>.", family),
	}
}
