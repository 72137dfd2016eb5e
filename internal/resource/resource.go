// Package resource models the declarative resource set handed to the
// convergence engine.
package resource

import "fmt"

// Kind is the resource type.
type Kind string

// Resource kinds. Class refers to an external collaborator that is only
// included, never managed here.
const (
	KindPackage Kind = "Package"
	KindFile    Kind = "File"
	KindExec    Kind = "Exec"
	KindService Kind = "Service"
	KindClass   Kind = "Class"
)

// Ref identifies a resource as Kind[Title].
type Ref struct {
	Kind  Kind
	Title string
}

// String renders the reference as Kind[Title].
func (r Ref) String() string {
	return fmt.Sprintf("%s[%s]", r.Kind, r.Title)
}

// MarshalText implements encoding.TextMarshaler.
func (r Ref) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// PackageRef references a package by name.
func PackageRef(name string) Ref { return Ref{Kind: KindPackage, Title: name} }

// FileRef references a file by path.
func FileRef(path string) Ref { return Ref{Kind: KindFile, Title: path} }

// ExecRef references an exec by title.
func ExecRef(title string) Ref { return Ref{Kind: KindExec, Title: title} }

// ServiceRef references a service by title.
func ServiceRef(title string) Ref { return Ref{Kind: KindService, Title: title} }

// ClassRef references an included class.
func ClassRef(name string) Ref { return Ref{Kind: KindClass, Title: name} }

// Links are the ordering edges of a resource. Require orders the resource
// after the referenced ones; Notify orders it before them and refreshes
// them when it changes.
type Links struct {
	Require []Ref `yaml:"require,omitempty" json:"require,omitempty"`
	Notify  []Ref `yaml:"notify,omitempty" json:"notify,omitempty"`
}

// Resource is one declared unit of desired state.
type Resource interface {
	Ref() Ref
	Edges() Links
}

// FileEnsure is the desired state of a path.
type FileEnsure string

// Path states.
const (
	EnsureFile      FileEnsure = "file"
	EnsureDirectory FileEnsure = "directory"
)

// Package is a package to install or remove.
type Package struct {
	Type   Kind   `yaml:"type" json:"type"`
	Name   string `yaml:"name" json:"name"`
	Ensure string `yaml:"ensure" json:"ensure"`
	Links  `yaml:",inline"`
}

// NewPackage declares a package.
func NewPackage(name, ensure string) *Package {
	return &Package{Type: KindPackage, Name: name, Ensure: ensure}
}

// Ref implements Resource.
func (p *Package) Ref() Ref { return PackageRef(p.Name) }

// Edges implements Resource.
func (p *Package) Edges() Links { return p.Links }

// File is a regular file or directory with exact content and ownership.
type File struct {
	Type    Kind       `yaml:"type" json:"type"`
	Path    string     `yaml:"path" json:"path"`
	Ensure  FileEnsure `yaml:"ensure" json:"ensure"`
	Content string     `yaml:"content,omitempty" json:"content,omitempty"`
	Owner   string     `yaml:"owner" json:"owner"`
	Group   string     `yaml:"group" json:"group"`
	Mode    string     `yaml:"mode" json:"mode"`
	Links   `yaml:",inline"`
}

// NewFile declares a root owned regular file.
func NewFile(path, content, mode string) *File {
	return &File{Type: KindFile, Path: path, Ensure: EnsureFile, Content: content, Owner: "root", Group: "root", Mode: mode}
}

// NewDirectory declares a root owned directory.
func NewDirectory(path, mode string) *File {
	return &File{Type: KindFile, Path: path, Ensure: EnsureDirectory, Owner: "root", Group: "root", Mode: mode}
}

// Ref implements Resource.
func (f *File) Ref() Ref { return FileRef(f.Path) }

// Edges implements Resource.
func (f *File) Edges() Links { return f.Links }

// Exec is a command run by the convergence engine. With RefreshOnly it
// only runs when one of the resources notifying it changed; Unless and
// OnlyIf are guard commands evaluated before running.
type Exec struct {
	Type        Kind     `yaml:"type" json:"type"`
	Title       string   `yaml:"title" json:"title"`
	Command     string   `yaml:"command" json:"command"`
	Path        []string `yaml:"path" json:"path"`
	RefreshOnly bool     `yaml:"refreshonly,omitempty" json:"refreshonly,omitempty"`
	Unless      string   `yaml:"unless,omitempty" json:"unless,omitempty"`
	OnlyIf      string   `yaml:"onlyif,omitempty" json:"onlyif,omitempty"`
	Links       `yaml:",inline"`
}

// NewExec declares a command.
func NewExec(title, command string, path []string) *Exec {
	return &Exec{Type: KindExec, Title: title, Command: command, Path: path}
}

// Ref implements Resource.
func (e *Exec) Ref() Ref { return ExecRef(e.Title) }

// Edges implements Resource.
func (e *Exec) Edges() Links { return e.Links }

// Service is a system service and its boot-time enablement.
type Service struct {
	Type   Kind   `yaml:"type" json:"type"`
	Title  string `yaml:"title" json:"title"`
	Name   string `yaml:"name" json:"name"`
	Ensure string `yaml:"ensure" json:"ensure"`
	Enable bool   `yaml:"enable" json:"enable"`
	Links  `yaml:",inline"`
}

// NewService declares a service.
func NewService(title, name, ensure string, enable bool) *Service {
	return &Service{Type: KindService, Title: title, Name: name, Ensure: ensure, Enable: enable}
}

// Ref implements Resource.
func (s *Service) Ref() Ref { return ServiceRef(s.Title) }

// Edges implements Resource.
func (s *Service) Edges() Links { return s.Links }
