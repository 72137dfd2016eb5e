package resource

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dominikbraun/graph"
)

// Set is an ordered collection of resources plus the external classes
// they depend on.
type Set struct {
	Includes  []string   `yaml:"includes,omitempty" json:"includes,omitempty"`
	Resources []Resource `yaml:"resources" json:"resources"`

	index map[Ref]int
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{
		Includes:  []string{},
		Resources: []Resource{},
		index:     make(map[Ref]int),
	}
}

// Add appends resources. Identities must be unique within the set.
func (s *Set) Add(resources ...Resource) error {
	for _, r := range resources {
		ref := r.Ref()
		if _, exists := s.index[ref]; exists {
			return fmt.Errorf("duplicate declaration: %s is already declared", ref)
		}
		s.index[ref] = len(s.Resources)
		s.Resources = append(s.Resources, r)
	}
	return nil
}

// Include declares a dependency on an external class.
func (s *Set) Include(class string) {
	if !slices.Contains(s.Includes, class) {
		s.Includes = append(s.Includes, class)
	}
}

// IncludesClass reports whether class is included.
func (s *Set) IncludesClass(class string) bool {
	return slices.Contains(s.Includes, class)
}

// Lookup returns the resource declared as ref.
func (s *Set) Lookup(ref Ref) (Resource, bool) {
	i, ok := s.index[ref]
	if !ok {
		return nil, false
	}
	return s.Resources[i], true
}

// Len returns the number of resources.
func (s *Set) Len() int {
	return len(s.Resources)
}

// Packages returns the package resources in declaration order.
func (s *Set) Packages() []*Package { return ofType[*Package](s) }

// Files returns the file and directory resources in declaration order.
func (s *Set) Files() []*File { return ofType[*File](s) }

// Execs returns the exec resources in declaration order.
func (s *Set) Execs() []*Exec { return ofType[*Exec](s) }

// Services returns the service resources in declaration order.
func (s *Set) Services() []*Service { return ofType[*Service](s) }

func ofType[T Resource](s *Set) []T {
	out := make([]T, 0)
	for _, r := range s.Resources {
		if typed, ok := r.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}

// Graph builds the dependency graph. An edge A -> B means A is applied
// before B. Dangling references and cycles are errors.
func (s *Set) Graph() (graph.Graph[string, Ref], error) {
	g := graph.New(Ref.String, graph.Directed(), graph.Acyclic(), graph.PreventCycles())

	for _, class := range s.Includes {
		if err := g.AddVertex(ClassRef(class)); err != nil {
			return nil, fmt.Errorf("adding %s: %w", ClassRef(class), err)
		}
	}
	for _, r := range s.Resources {
		if err := g.AddVertex(r.Ref()); err != nil {
			return nil, fmt.Errorf("adding %s: %w", r.Ref(), err)
		}
	}

	for _, r := range s.Resources {
		self := r.Ref()
		links := r.Edges()
		for _, dep := range links.Require {
			if err := addEdge(g, dep, self); err != nil {
				return nil, fmt.Errorf("%s requires %s: %w", self, dep, err)
			}
		}
		for _, target := range links.Notify {
			if err := addEdge(g, self, target); err != nil {
				return nil, fmt.Errorf("%s notifies %s: %w", self, target, err)
			}
		}
	}

	return g, nil
}

func addEdge(g graph.Graph[string, Ref], from, to Ref) error {
	err := g.AddEdge(from.String(), to.String())
	switch {
	case err == nil, errors.Is(err, graph.ErrEdgeAlreadyExists):
		return nil
	case errors.Is(err, graph.ErrVertexNotFound):
		return fmt.Errorf("reference to undeclared resource")
	case errors.Is(err, graph.ErrEdgeCreatesCycle):
		return fmt.Errorf("dependency cycle")
	default:
		return err
	}
}

// Order returns the resource references in a stable dependency order:
// ties keep declaration order, included classes come first.
func (s *Set) Order() ([]Ref, error) {
	g, err := s.Graph()
	if err != nil {
		return nil, err
	}

	position := make(map[string]int, len(s.Includes)+len(s.Resources))
	for i, class := range s.Includes {
		position[ClassRef(class).String()] = i
	}
	for i, r := range s.Resources {
		position[r.Ref().String()] = len(s.Includes) + i
	}

	hashes, err := graph.StableTopologicalSort(g, func(a, b string) bool {
		return position[a] < position[b]
	})
	if err != nil {
		return nil, fmt.Errorf("ordering resources: %w", err)
	}

	refs := make([]Ref, 0, len(hashes))
	for _, h := range hashes {
		ref, err := g.Vertex(h)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// Validate checks edge integrity, acyclicity and that exactly one service
// is declared.
func (s *Set) Validate() error {
	if _, err := s.Graph(); err != nil {
		return err
	}
	if n := len(s.Services()); n != 1 {
		return fmt.Errorf("resource set must declare exactly one service, found %d", n)
	}
	return nil
}
