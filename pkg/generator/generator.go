// Package generator runs a key generation pass: it walks the planned slots,
// generates a keypair for each, derives the identity material and writes the
// key files.
//
// Runs are sequential and stop at the first error. Files written before the
// failure stay on disk; the tool is meant to be re-run from scratch.
package generator

import (
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/DeBrosOfficial/keygen/pkg/errors"
	"github.com/DeBrosOfficial/keygen/pkg/keys"
	"github.com/DeBrosOfficial/keygen/pkg/logging"
	"github.com/DeBrosOfficial/keygen/pkg/metrics"
)

const (
	dirPerm  = 0o755
	filePerm = 0o600
)

// Deps are the collaborators a Generator needs.
type Deps struct {
	Fs      afero.Fs
	Keys    *keys.Generator
	Logger  *logging.ColoredLogger
	Metrics *metrics.Metrics
}

// Generator produces node and validator key sets.
type Generator struct {
	fs      afero.Fs
	keys    *keys.Generator
	logger  *logging.ColoredLogger
	metrics *metrics.Metrics
}

// New creates a Generator. Fs and Keys are required.
func New(deps Deps) (*Generator, error) {
	if deps.Fs == nil {
		return nil, errors.NewInternalError("generator requires a filesystem", nil)
	}
	if deps.Keys == nil {
		return nil, errors.NewInternalError("generator requires a key generator", nil)
	}
	if deps.Logger == nil {
		deps.Logger = logging.NewNop()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}
	return &Generator{
		fs:      deps.Fs,
		keys:    deps.Keys,
		logger:  deps.Logger,
		metrics: deps.Metrics,
	}, nil
}

func (g *Generator) mkdir(dir string) error {
	if err := g.fs.MkdirAll(dir, dirPerm); err != nil {
		return errors.NewFilesystemError("mkdir", dir, err)
	}
	return nil
}

func (g *Generator) writeFile(path string, data []byte) error {
	if err := afero.WriteFile(g.fs, path, data, filePerm); err != nil {
		return errors.NewFilesystemError("write", path, err)
	}
	g.metrics.FilesWritten.Inc()
	g.logger.ComponentDebug(logging.ComponentStorage, "wrote key file",
		zap.String("path", path),
		zap.Int("bytes", len(data)),
	)
	return nil
}

func joinPath(dir, name string) string {
	return filepath.Join(dir, name)
}
