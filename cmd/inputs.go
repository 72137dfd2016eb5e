package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/trly/nisclient/internal/facts"
	"github.com/trly/nisclient/internal/params"
	"github.com/trly/nisclient/internal/resource"
)

// inputOptions are the fact and parameter sources shared by the commands
// that resolve a resource set.
type inputOptions struct {
	FactsFile     string
	Detect        bool
	ParamsFile    string
	DomainName    string
	Server        string
	Broadcast     bool
	PackageNames  []string
	PackageEnsure string
	ServiceName   string
	ServiceEnsure string
}

// paramFlags maps parameter flags onto parameter names.
var paramFlags = []struct {
	flag  string
	param string
}{
	{"domainname", params.NameDomainName},
	{"server", params.NameServer},
	{"broadcast", params.NameBroadcast},
	{"package-name", params.NamePackageName},
	{"package-ensure", params.NamePackageEnsure},
	{"service-name", params.NameServiceName},
	{"service-ensure", params.NameServiceEnsure},
}

func addFactsFlags(cmd *cobra.Command, opts *inputOptions) {
	cmd.Flags().StringVar(&opts.FactsFile, "facts", "", "Path to a YAML or JSON facts file")
	cmd.Flags().BoolVar(&opts.Detect, "detect", false, "Detect facts from the local host")
	cmd.MarkFlagsMutuallyExclusive("facts", "detect")
}

func addInputFlags(cmd *cobra.Command, opts *inputOptions) {
	addFactsFlags(cmd, opts)

	f := cmd.Flags()
	f.StringVar(&opts.ParamsFile, "params", "", "Path to a YAML or JSON parameters file")
	f.StringVar(&opts.DomainName, "domainname", "", "NIS domain name (defaults to the domain fact)")
	f.StringVar(&opts.Server, "server", "", "NIS server host or address")
	f.BoolVar(&opts.Broadcast, "broadcast", false, "Locate the NIS server by broadcast")
	f.StringSliceVar(&opts.PackageNames, "package-name", nil, "Override the client package names (repeatable)")
	f.StringVar(&opts.PackageEnsure, "package-ensure", "", "Desired package state")
	f.StringVar(&opts.ServiceName, "service-name", "", "Override the client service name")
	f.StringVar(&opts.ServiceEnsure, "service-ensure", "", "Desired service state (running, stopped)")
}

// loadFacts reads facts from the facts file, the configured facts file or
// the local host.
func (o *inputOptions) loadFacts(ctx context.Context, app *App) (facts.Facts, error) {
	if o.Detect {
		return app.Detector.Detect(ctx)
	}

	path := o.FactsFile
	if path == "" {
		path = app.Config.FactsFile
	}
	if path == "" {
		return facts.Facts{}, errors.New("no facts given: use --facts FILE or --detect")
	}

	app.Logger.Debug("Loading facts", "path", path)
	return facts.Load(path)
}

// loadParams merges the parameters file with explicitly set parameter
// flags. Flags win.
func (o *inputOptions) loadParams(cmd *cobra.Command, app *App) (map[string]any, error) {
	raw := make(map[string]any)

	path := o.ParamsFile
	if path == "" {
		path = app.Config.ParamsFile
	}
	if path != "" {
		app.Logger.Debug("Loading parameters", "path", path)
		data, err := os.ReadFile(path) //nolint:gosec // Path is supplied by the operator
		if err != nil {
			return nil, fmt.Errorf("reading params file: %w", err)
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decoding params file: %w", err)
		}
		if raw == nil {
			raw = make(map[string]any)
		}
	}

	values := map[string]any{
		params.NameDomainName:    o.DomainName,
		params.NameServer:        o.Server,
		params.NameBroadcast:     o.Broadcast,
		params.NamePackageName:   o.PackageNames,
		params.NamePackageEnsure: o.PackageEnsure,
		params.NameServiceName:   o.ServiceName,
		params.NameServiceEnsure: o.ServiceEnsure,
	}
	for _, pf := range paramFlags {
		if cmd.Flags().Changed(pf.flag) {
			raw[pf.param] = values[pf.param]
		}
	}

	return raw, nil
}

// resolve loads facts and parameters and resolves the resource set.
func (o *inputOptions) resolve(cmd *cobra.Command, app *App) (*resource.Set, error) {
	f, err := o.loadFacts(cmd.Context(), app)
	if err != nil {
		return nil, err
	}

	raw, err := o.loadParams(cmd, app)
	if err != nil {
		return nil, err
	}

	return app.Resolver.Resolve(f, raw)
}
