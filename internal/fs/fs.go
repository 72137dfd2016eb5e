// Package fs stages the file resources of a resource set under a root
// directory so they can be inspected without touching the host.
package fs

import (
	"crypto/sha1" //nolint:gosec // Not used for security purposes, just content comparison
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/trly/nisclient/internal/config"
	"github.com/trly/nisclient/internal/log"
	"github.com/trly/nisclient/internal/resource"
)

const backupTimeFormat = "20060102150405"

// Status describes what happened to a staged path.
type Status string

// Path outcomes.
const (
	StatusCreated   Status = "created"
	StatusUpdated   Status = "updated"
	StatusUnchanged Status = "unchanged"
)

// Change records the outcome for one file resource.
type Change struct {
	Path   string `yaml:"path" json:"path"`
	Status Status `yaml:"status" json:"status"`
	Backup string `yaml:"backup,omitempty" json:"backup,omitempty"`
}

// Result summarizes a Materialize run.
type Result struct {
	Created   int      `yaml:"created" json:"created"`
	Updated   int      `yaml:"updated" json:"updated"`
	Unchanged int      `yaml:"unchanged" json:"unchanged"`
	DryRun    bool     `yaml:"dryRun" json:"dryRun"`
	Changes   []Change `yaml:"changes" json:"changes"`
}

func (r *Result) record(c Change) {
	switch c.Status {
	case StatusCreated:
		r.Created++
	case StatusUpdated:
		r.Updated++
	case StatusUnchanged:
		r.Unchanged++
	}
	r.Changes = append(r.Changes, c)
}

// Options control a Materialize run.
type Options struct {
	Root   string
	DryRun bool
	Backup bool
}

// Service writes file resources to disk.
type Service struct {
	configProvider config.Provider
	logger         log.Logger
	now            func() time.Time
}

// NewService creates a new filesystem service with the given config provider.
func NewService(configProvider config.Provider) *Service {
	return NewServiceWithLogger(configProvider, log.NewLogger(configProvider.GetConfig().Verbose))
}

// NewServiceWithLogger creates a new filesystem service with explicit logger injection.
func NewServiceWithLogger(configProvider config.Provider, logger log.Logger) *Service {
	return &Service{
		configProvider: configProvider,
		logger:         logger,
		now:            time.Now,
	}
}

// DefaultOptions returns the options configured for this service.
func (s *Service) DefaultOptions() Options {
	cfg := s.configProvider.GetConfig()
	return Options{
		Root:   cfg.RenderRoot,
		Backup: cfg.Backup,
	}
}

// Materialize writes every File resource of set under opts.Root in
// dependency order. Packages, execs and services are not applied.
func (s *Service) Materialize(set *resource.Set, opts Options) (*Result, error) {
	if opts.Root == "" {
		return nil, errors.New("render root must not be empty")
	}

	order, err := set.Order()
	if err != nil {
		return nil, fmt.Errorf("ordering resources: %w", err)
	}

	result := &Result{DryRun: opts.DryRun, Changes: make([]Change, 0)}
	for _, ref := range order {
		if ref.Kind != resource.KindFile {
			continue
		}
		r, _ := set.Lookup(ref)
		file, ok := r.(*resource.File)
		if !ok {
			continue
		}

		var change Change
		switch file.Ensure {
		case resource.EnsureDirectory:
			change, err = s.stageDirectory(file, opts)
		default:
			change, err = s.stageFile(file, opts)
		}
		if err != nil {
			return nil, err
		}
		result.record(change)
	}

	s.logger.Info("Staged file resources",
		"root", opts.Root,
		"created", result.Created,
		"updated", result.Updated,
		"unchanged", result.Unchanged,
		"dryRun", opts.DryRun)

	return result, nil
}

// TargetPath maps a managed path under root.
func TargetPath(root, path string) string {
	return filepath.Join(root, filepath.FromSlash(path))
}

func (s *Service) stageDirectory(file *resource.File, opts Options) (Change, error) {
	target := TargetPath(opts.Root, file.Path)
	mode, err := parseMode(file.Mode)
	if err != nil {
		return Change{}, fmt.Errorf("%s: %w", file.Ref(), err)
	}

	info, err := os.Stat(target)
	switch {
	case err == nil && info.IsDir():
		if info.Mode().Perm() == mode {
			s.logger.Debug("Directory unchanged, skipping", "path", target)
			return Change{Path: file.Path, Status: StatusUnchanged}, nil
		}
		if !opts.DryRun {
			if err := os.Chmod(target, mode); err != nil {
				return Change{}, fmt.Errorf("failed to set mode on %s: %w", target, err)
			}
		}
		return Change{Path: file.Path, Status: StatusUpdated}, nil
	case err == nil:
		return Change{}, fmt.Errorf("%s exists and is not a directory", target)
	case !errors.Is(err, os.ErrNotExist):
		return Change{}, fmt.Errorf("failed to stat %s: %w", target, err)
	}

	s.logger.Debug("Creating directory", "path", target, "mode", file.Mode)
	if !opts.DryRun {
		if err := os.MkdirAll(target, mode); err != nil {
			return Change{}, fmt.Errorf("failed to create directory %s: %w", target, err)
		}
		if err := os.Chmod(target, mode); err != nil {
			return Change{}, fmt.Errorf("failed to set mode on %s: %w", target, err)
		}
	}
	return Change{Path: file.Path, Status: StatusCreated}, nil
}

func (s *Service) stageFile(file *resource.File, opts Options) (Change, error) {
	target := TargetPath(opts.Root, file.Path)
	mode, err := parseMode(file.Mode)
	if err != nil {
		return Change{}, fmt.Errorf("%s: %w", file.Ref(), err)
	}

	info, statErr := os.Stat(target)
	exists := statErr == nil
	if statErr != nil && !errors.Is(statErr, os.ErrNotExist) {
		return Change{}, fmt.Errorf("failed to stat %s: %w", target, statErr)
	}
	if exists && info.IsDir() {
		return Change{}, fmt.Errorf("%s exists and is a directory", target)
	}

	if exists && !s.HasChanged(target, file.Content) && info.Mode().Perm() == mode {
		s.logger.Debug("File unchanged, skipping", "path", target)
		return Change{Path: file.Path, Status: StatusUnchanged}, nil
	}

	change := Change{Path: file.Path, Status: StatusCreated}
	if exists {
		change.Status = StatusUpdated
	}
	if opts.DryRun {
		return change, nil
	}

	if exists && opts.Backup {
		backup, err := s.backup(target)
		if err != nil {
			return Change{}, err
		}
		change.Backup = backup
	}

	if err := s.WriteFile(target, file.Content, mode); err != nil {
		return Change{}, err
	}
	return change, nil
}

func (s *Service) backup(target string) (string, error) {
	existing, err := os.ReadFile(target) //nolint:gosec // Path is rooted under the render root
	if err != nil {
		return "", fmt.Errorf("failed to read %s for backup: %w", target, err)
	}

	backup := target + "." + s.now().Format(backupTimeFormat)
	if err := os.WriteFile(backup, existing, 0600); err != nil {
		return "", fmt.Errorf("failed to write backup %s: %w", backup, err)
	}
	s.logger.Debug("Backed up previous content", "path", target, "backup", backup)
	return backup, nil
}

// HasChanged reports whether path is missing or its content hash differs
// from content.
func (s *Service) HasChanged(path, content string) bool {
	existing, err := os.ReadFile(path) //nolint:gosec // Path is rooted under the render root
	if err != nil {
		return true
	}

	oldHash := fmt.Sprintf("%x", GetContentHash(string(existing)))
	newHash := fmt.Sprintf("%x", GetContentHash(content))
	s.logger.Debug("Content hash comparison", "path", path, "existing", oldHash, "new", newHash)

	return oldHash != newHash
}

// WriteFile writes content to path with mode, creating parent directories.
func (s *Service) WriteFile(path, content string, mode os.FileMode) error {
	s.logger.Debug("Writing file", "path", path, "mode", fmt.Sprintf("%04o", mode))

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create parent directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	// WriteFile keeps the mode of an existing file and is subject to umask.
	if err := os.Chmod(path, mode); err != nil {
		return fmt.Errorf("failed to set mode on %s: %w", path, err)
	}
	return nil
}

// GetContentHash calculates a SHA1 hash for content change tracking.
func GetContentHash(content string) []byte {
	hash := sha1.New() //nolint:gosec // Not used for security purposes, just for content tracking
	hash.Write([]byte(content))
	return hash.Sum(nil)
}

func parseMode(mode string) (os.FileMode, error) {
	v, err := strconv.ParseUint(mode, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid file mode %q: %w", mode, err)
	}
	return os.FileMode(v).Perm(), nil
}
