package manager

import (
	"strings"

	"github.com/pion/logging"
	"github.com/spf13/afero"

	"github.com/backkem/aclgroups/pkg/aclstore"
	"github.com/backkem/aclgroups/pkg/directory"
	"github.com/backkem/aclgroups/pkg/naming"
)

// Target is the filesystem object an operation acts on. Name feeds the
// group name composition and defaults to the leaf of Path.
type Target struct {
	Path string
	Name string
}

// NewTarget builds a target from a path, deriving the object name from
// the last path element. Both separators are understood so callers can
// pass Windows paths on any platform.
func NewTarget(path string) Target {
	return Target{Path: path, Name: leafName(path)}
}

func leafName(path string) string {
	trimmed := strings.TrimRight(path, "\\/")
	if trimmed == "" {
		return path
	}
	if i := strings.LastIndexAny(trimmed, "\\/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

// Status of one group in an audit record.
type Status string

const (
	StatusCreated    Status = "Created"
	StatusDeleted    Status = "Deleted"
	StatusFailed     Status = "Failed"
	StatusRolledBack Status = "RolledBack"
)

// GroupRecord is one audit line returned by group lifecycle and
// composite operations.
type GroupRecord struct {
	Name        string
	Description string
	Status      Status
	Err         error
}

// Manager composes group names and delegates to the collaborators.
type Manager struct {
	dir   directory.Directory
	store aclstore.Store
	conv  naming.Convention
	fs    afero.Fs
	log   logging.LeveledLogger

	logDir   string
	rollback bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithConvention sets the naming convention. Default is
// ("AclGroup", "-").
func WithConvention(c naming.Convention) Option {
	return func(m *Manager) {
		m.conv = c
	}
}

// WithFilesystem sets the filesystem used for tree traversal and log
// output. Default is the OS filesystem.
func WithFilesystem(fs afero.Fs) Option {
	return func(m *Manager) {
		m.fs = fs
	}
}

// WithLoggerFactory sets the logger factory diagnostic output goes
// through. Default is the pion default factory.
func WithLoggerFactory(f logging.LoggerFactory) Option {
	return func(m *Manager) {
		m.log = f.NewLogger("aclgroups")
	}
}

// WithLogDir sets the directory discovery log files are written to.
// Default is the current directory.
func WithLogDir(dir string) Option {
	return func(m *Manager) {
		m.logDir = dir
	}
}

// WithRollback makes Install reverse completed steps when a later step
// fails. Default is off, matching the historic fire-and-report
// behavior.
func WithRollback(enabled bool) Option {
	return func(m *Manager) {
		m.rollback = enabled
	}
}

// New creates a manager over the given collaborators. Nil collaborators
// fall back to the in-memory implementations, which is only useful in
// tests.
func New(dir directory.Directory, store aclstore.Store, opts ...Option) *Manager {
	m := &Manager{
		dir:    dir,
		store:  store,
		conv:   naming.Default(),
		fs:     afero.NewOsFs(),
		logDir: ".",
	}
	if m.dir == nil {
		m.dir = directory.NewMemory()
	}
	if m.store == nil {
		m.store = aclstore.NewMemory()
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.log == nil {
		m.log = logging.NewDefaultLoggerFactory().NewLogger("aclgroups")
	}
	return m
}

// Convention returns the manager's naming convention.
func (m *Manager) Convention() naming.Convention {
	return m.conv
}
