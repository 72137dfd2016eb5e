// Package params turns untyped user parameters into a validated, typed
// Parameters value.
package params

import (
	"slices"
	"sort"
	"strings"
)

// Parameter names as accepted at the input boundary.
const (
	NameDomainName    = "domainname"
	NameServer        = "server"
	NameBroadcast     = "broadcast"
	NamePackageName   = "package_name"
	NamePackageEnsure = "package_ensure"
	NameServiceName   = "service_name"
	NameServiceEnsure = "service_ensure"
)

// Default parameter values.
const (
	DefaultServer        = "127.0.0.1"
	DefaultPackageEnsure = "installed"
)

// order is the fixed order parameters are checked in, so the first
// reported error does not depend on map iteration.
var order = []string{
	NameDomainName,
	NameServer,
	NameBroadcast,
	NamePackageName,
	NamePackageEnsure,
	NameServiceName,
	NameServiceEnsure,
}

// ServiceEnsure is the desired run state of the NIS client service.
type ServiceEnsure string

// Supported service states.
const (
	ServiceRunning ServiceEnsure = "running"
	ServiceStopped ServiceEnsure = "stopped"
)

// Enable reports whether the service should start at boot.
func (s ServiceEnsure) Enable() bool {
	return s == ServiceRunning
}

// Parameters is the typed, validated parameter set. Empty PackageNames
// and ServiceName select the platform defaults.
type Parameters struct {
	DomainName    string        `yaml:"domainname" json:"domainname"`
	Server        string        `yaml:"server" json:"server"`
	Broadcast     bool          `yaml:"broadcast" json:"broadcast"`
	PackageNames  []string      `yaml:"package_name,omitempty" json:"package_name,omitempty"`
	PackageEnsure string        `yaml:"package_ensure" json:"package_ensure"`
	ServiceName   string        `yaml:"service_name,omitempty" json:"service_name,omitempty"`
	ServiceEnsure ServiceEnsure `yaml:"service_ensure" json:"service_ensure"`
}

// Defaults carries the fact-derived parameter defaults.
type Defaults struct {
	// DomainName is normally the host's domain fact.
	DomainName string
}

// New returns the parameter defaults for the given fact-derived values.
func New(d Defaults) Parameters {
	return Parameters{
		DomainName:    d.DomainName,
		Server:        DefaultServer,
		PackageEnsure: DefaultPackageEnsure,
		ServiceEnsure: ServiceRunning,
	}
}

// Parse applies raw over the defaults. Every supplied value must match its
// declared type exactly; unknown names and explicit nulls are rejected.
// The first violation is returned as a *ValidationError.
func Parse(raw map[string]any, d Defaults) (Parameters, error) {
	p := New(d)

	unknown := make([]string, 0)
	for name := range raw {
		if !slices.Contains(order, name) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return Parameters{}, &ValidationError{
			Parameter: unknown[0],
			Expected:  "one of " + strings.Join(order, ", "),
			Value:     raw[unknown[0]],
			unknown:   true,
		}
	}

	for _, name := range order {
		value, ok := raw[name]
		if !ok {
			continue
		}
		if err := p.set(name, value); err != nil {
			return Parameters{}, err
		}
	}

	if err := p.Validate(); err != nil {
		return Parameters{}, err
	}
	return p, nil
}

func (p *Parameters) set(name string, value any) error {
	var err error
	switch name {
	case NameDomainName:
		p.DomainName, err = fqdnValue(name, value)
	case NameServer:
		p.Server, err = hostValue(name, value)
	case NameBroadcast:
		p.Broadcast, err = boolValue(name, value)
	case NamePackageName:
		p.PackageNames, err = stringOrListValue(name, value)
	case NamePackageEnsure:
		p.PackageEnsure, err = nonEmptyString(name, value)
	case NameServiceName:
		p.ServiceName, err = nonEmptyString(name, value)
	case NameServiceEnsure:
		p.ServiceEnsure, err = serviceEnsureValue(name, value)
	}
	return err
}

// Validate checks the typed parameters against the same rules Parse applies.
func (p Parameters) Validate() error {
	if p.DomainName == "" {
		return &ValidationError{Parameter: NameDomainName, Expected: "a fully qualified domain name; none given and no domain fact available", Value: p.DomainName}
	}
	if _, err := fqdnValue(NameDomainName, p.DomainName); err != nil {
		return err
	}
	if _, err := hostValue(NameServer, p.Server); err != nil {
		return err
	}
	for _, pkg := range p.PackageNames {
		if err := checkString(NamePackageName, pkg); err != nil {
			return err
		}
	}
	if hasDuplicate(p.PackageNames) {
		return &ValidationError{Parameter: NamePackageName, Expected: expectStringOrList, Value: p.PackageNames}
	}
	if err := checkString(NamePackageEnsure, p.PackageEnsure); err != nil {
		return err
	}
	if p.ServiceName != "" {
		if err := checkString(NameServiceName, p.ServiceName); err != nil {
			return err
		}
	}
	if _, err := serviceEnsureValue(NameServiceEnsure, string(p.ServiceEnsure)); err != nil {
		return err
	}
	return nil
}
