package resolver

import (
	"path"
	"slices"

	"github.com/trly/nisclient/internal/params"
	"github.com/trly/nisclient/internal/profile"
	"github.com/trly/nisclient/internal/resource"
)

// Stable resource identifiers.
const (
	ServiceTitle         = "nis_service"
	SetNISDomainTitle    = "set_nisdomain"
	ChangeNISDomainTitle = "change_nisdomain"
	RPCBindClass         = "rpcbind"
)

// Managed paths.
const (
	YPConfPath        = "/etc/yp.conf"
	DefaultDomainPath = "/etc/defaultdomain"
	NetworkConfigPath = "/etc/sysconfig/network"
	YPDir             = "/var/yp"
	BindingDir        = "/var/yp/binding"
	YPServersFile     = "ypservers"
)

const (
	fileMode = "0644"
	dirMode  = "0755"
)

// execPath is the search path every exec runs with.
var execPath = []string{"/bin", "/usr/bin", "/sbin", "/usr/sbin"}

// ExecPath returns the exec search path.
func ExecPath() []string {
	return slices.Clone(execPath)
}

// Emit builds the resource set for a classified profile. It performs no
// I/O and returns the same set for the same inputs.
func Emit(prof profile.Profile, p params.Parameters) (*resource.Set, error) {
	e := &emitter{
		set:     resource.NewSet(),
		profile: prof,
		params:  p,
	}

	if prof.RPCBind {
		e.set.Include(RPCBindClass)
	}

	var err error
	if prof.YPServersTree {
		err = e.solaris()
	} else {
		err = e.linux()
	}
	if err != nil {
		return nil, err
	}
	return e.set, nil
}

type emitter struct {
	set     *resource.Set
	profile profile.Profile
	params  params.Parameters
}

func (e *emitter) linux() error {
	packages, err := e.packages()
	if err != nil {
		return err
	}

	domain := e.params.DomainName
	bind := e.bindExec()

	conf := resource.NewFile(YPConfPath, YPConf(domain, e.params.Server, e.params.Broadcast), fileMode)
	conf.Require = packages
	conf.Notify = []resource.Ref{bind.Ref()}

	if err := e.set.Add(conf); err != nil {
		return err
	}
	if e.profile.DefaultDomainFile {
		if err := e.set.Add(e.defaultDomain()); err != nil {
			return err
		}
	}
	if err := e.set.Add(bind); err != nil {
		return err
	}
	if e.profile.NISDomainScript {
		if err := e.set.Add(e.nisDomainExecs()...); err != nil {
			return err
		}
	}
	return e.set.Add(e.service())
}

func (e *emitter) solaris() error {
	packages, err := e.packages()
	if err != nil {
		return err
	}

	domain := e.params.DomainName
	domainDir := path.Join(BindingDir, domain)
	bind := e.bindExec()

	ypDir := resource.NewDirectory(YPDir, dirMode)
	ypDir.Require = packages

	bindingDir := resource.NewDirectory(BindingDir, dirMode)
	bindingDir.Require = []resource.Ref{ypDir.Ref()}

	dir := resource.NewDirectory(domainDir, dirMode)
	dir.Require = []resource.Ref{bindingDir.Ref()}

	servers := resource.NewFile(path.Join(domainDir, YPServersFile), YPServers(e.params.Server), fileMode)
	servers.Require = []resource.Ref{dir.Ref()}
	servers.Notify = []resource.Ref{bind.Ref()}

	if err := e.set.Add(ypDir, bindingDir, dir, servers); err != nil {
		return err
	}
	if e.profile.DefaultDomainFile {
		if err := e.set.Add(e.defaultDomain()); err != nil {
			return err
		}
	}
	if err := e.set.Add(bind); err != nil {
		return err
	}
	return e.set.Add(e.service())
}

// packages declares the package resources and returns their refs.
func (e *emitter) packages() ([]resource.Ref, error) {
	names := e.params.PackageNames
	if len(names) == 0 {
		names = e.profile.DefaultPackages()
	}

	refs := make([]resource.Ref, 0, len(names))
	for _, name := range names {
		pkg := resource.NewPackage(name, e.params.PackageEnsure)
		if err := e.set.Add(pkg); err != nil {
			return nil, err
		}
		refs = append(refs, pkg.Ref())
	}
	return refs, nil
}

func (e *emitter) bindExec() *resource.Exec {
	cmd := e.profile.BindCommand
	bind := resource.NewExec(cmd, cmd+" "+e.params.DomainName, ExecPath())
	bind.RefreshOnly = true
	bind.Notify = []resource.Ref{resource.ServiceRef(ServiceTitle)}
	return bind
}

func (e *emitter) defaultDomain() *resource.File {
	return resource.NewFile(DefaultDomainPath, DefaultDomain(e.params.DomainName), fileMode)
}

// nisDomainExecs keep a NISDOMAIN line in the network config: the first
// appends it when missing, the second rewrites a stale one.
func (e *emitter) nisDomainExecs() []resource.Resource {
	domain := e.params.DomainName

	set := resource.NewExec(SetNISDomainTitle,
		"echo NISDOMAIN="+domain+" >> "+NetworkConfigPath, ExecPath())
	set.Unless = "grep ^NISDOMAIN " + NetworkConfigPath

	change := resource.NewExec(ChangeNISDomainTitle,
		"sed -i 's/^NISDOMAIN.*/NISDOMAIN="+domain+"/' "+NetworkConfigPath, ExecPath())
	change.Unless = "grep ^NISDOMAIN=" + domain + " " + NetworkConfigPath
	change.OnlyIf = "grep ^NISDOMAIN " + NetworkConfigPath

	return []resource.Resource{set, change}
}

func (e *emitter) service() *resource.Service {
	name := e.params.ServiceName
	if name == "" {
		name = e.profile.Service
	}

	ensure := e.params.ServiceEnsure
	svc := resource.NewService(ServiceTitle, name, string(ensure), ensure.Enable())
	if e.profile.RPCBind {
		svc.Require = []resource.Ref{resource.ClassRef(RPCBindClass)}
	}
	return svc
}
