// Package resolver turns host facts and user parameters into the resource
// set that configures an NIS client.
package resolver

import (
	"fmt"

	"github.com/trly/nisclient/internal/facts"
	"github.com/trly/nisclient/internal/log"
	"github.com/trly/nisclient/internal/params"
	"github.com/trly/nisclient/internal/profile"
	"github.com/trly/nisclient/internal/resource"
)

// Resolver validates parameters, classifies the platform and emits the
// resource set. It holds no state beyond its collaborators.
type Resolver struct {
	classifier *profile.Classifier
	logger     log.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithClassifier replaces the default classifier.
func WithClassifier(c *profile.Classifier) Option {
	return func(r *Resolver) {
		r.classifier = c
	}
}

// New creates a Resolver.
func New(logger log.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		classifier: profile.NewClassifier(),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve parses raw parameters against the fact defaults and emits the
// resource set. Nothing is returned on error.
func (r *Resolver) Resolve(f facts.Facts, raw map[string]any) (*resource.Set, error) {
	p, err := params.Parse(raw, params.Defaults{DomainName: f.Domain})
	if err != nil {
		return nil, err
	}
	return r.ResolveParameters(f, p)
}

// ResolveParameters emits the resource set for already typed parameters.
func (r *Resolver) ResolveParameters(f facts.Facts, p params.Parameters) (*resource.Set, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	prof, err := r.classifier.Classify(f)
	if err != nil {
		return nil, err
	}

	logger := r.logger.With("profile", prof.Tag.String())
	logger.Debug("Resolved platform profile",
		"packages", prof.Packages,
		"service", prof.Service,
		"rpcbind", prof.RPCBind)

	set, err := Emit(prof, p)
	if err != nil {
		return nil, fmt.Errorf("emitting resources for %s: %w", prof.Tag, err)
	}
	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("invalid resource set for %s: %w", prof.Tag, err)
	}

	logger.Debug("Emitted resource set", "resources", set.Len())
	return set, nil
}
