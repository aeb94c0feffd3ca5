// Package stager materializes a self-contained distribution tree for a
// desktop application: the binary, its transitive shared-library
// closure, theme assets, translations and the installer script.
package stager

import (
	"os"
	"path/filepath"

	"github.com/alexflint/go-filemutex"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/winstage/winstage/internal/imports"
	"github.com/winstage/winstage/internal/resolver"
	"github.com/winstage/winstage/pkg/artifact"
	"github.com/winstage/winstage/pkg/log"
	"github.com/winstage/winstage/util/archiveutil"
	"github.com/winstage/winstage/util/fileutil"
)

type Stager struct {
	opts *Opts
}

func New(opts *Opts) *Stager {
	return &Stager{opts: opts}
}

func (s *Stager) Stage() error {
	err := os.MkdirAll(s.opts.DistDir, 0o755)
	if err != nil {
		return errors.WithStack(err)
	}

	// Concurrent runs targeting the same distribution directory would
	// corrupt each other's trees, so the directory is locked for the
	// whole run. The lock file lives next to the directory to keep it
	// out of the staged tree.
	mutex, err := filemutex.New(s.opts.DistDir + ".lock")
	if err != nil {
		return errors.WithStack(err)
	}
	err = mutex.Lock()
	if err != nil {
		return errors.WithStack(err)
	}
	defer func() {
		err := mutex.Unlock()
		if err != nil {
			log.Warnf("Failed to unlock %s.lock: %v", s.opts.DistDir, err)
		}
	}()

	if s.opts.RuntimeArchive != "" {
		err = s.extractRuntimeArchive()
		if err != nil {
			return err
		}
	}

	binary, err := s.stageBinary()
	if err != nil {
		return err
	}

	err = s.resolveLibraries(binary)
	if err != nil {
		return err
	}

	// Themes and locales land in disjoint subtrees of share/, so they
	// can be staged concurrently.
	var group errgroup.Group
	group.Go(s.stageThemes)
	group.Go(s.stageLocales)
	err = group.Wait()
	if err != nil {
		return err
	}

	if !s.opts.SkipIconCache {
		err = s.updateIconCaches()
		if err != nil {
			return err
		}
	}

	err = s.writeSettingsIni()
	if err != nil {
		return err
	}

	installerScript, err := s.writeInstallerScript()
	if err != nil {
		return err
	}
	log.Infof("Generated installer script: %s", fileutil.PrettifyPath(installerScript))

	if s.opts.BuildInstaller {
		err = s.buildInstaller(installerScript)
		if err != nil {
			return err
		}
	}

	if s.opts.OutputPath != "" {
		err = s.store()
		if err != nil {
			return err
		}
	}

	return nil
}

// extractRuntimeArchive unpacks the configured runtime archive into the
// system root, creating it if necessary.
func (s *Stager) extractRuntimeArchive() error {
	err := os.MkdirAll(s.opts.SystemRoot, 0o755)
	if err != nil {
		return errors.WithStack(err)
	}
	log.Infof("Extracting %s into %s", s.opts.RuntimeArchive, fileutil.PrettifyPath(s.opts.SystemRoot))
	return archiveutil.ExtractTarGz(s.opts.RuntimeArchive, s.opts.SystemRoot)
}

// stageBinary copies the application binary into the distribution
// tree's bin directory and returns the staged path.
func (s *Stager) stageBinary() (string, error) {
	binDir := filepath.Join(s.opts.DistDir, "bin")
	err := os.MkdirAll(binDir, 0o755)
	if err != nil {
		return "", errors.WithStack(err)
	}

	target := filepath.Join(binDir, filepath.Base(s.opts.Binary))
	log.Debugf("Staging binary %s", fileutil.PrettifyPath(target))
	err = fileutil.CopyFile(s.opts.Binary, target)
	if err != nil {
		return "", err
	}
	return target, nil
}

func (s *Stager) resolveLibraries(binary string) error {
	inspector := s.opts.Inspector
	if inspector == nil {
		inspector = imports.NewInspector()
	}

	r, err := resolver.New(&resolver.Options{
		SystemRoot:   s.opts.SystemRoot,
		Inspector:    inspector,
		ExcludedLibs: s.opts.ExcludedLibs,
	})
	if err != nil {
		return err
	}

	err = r.Resolve(binary)
	if err != nil {
		return err
	}
	log.Infof("Resolved %d shared libraries", len(r.Copied()))
	return nil
}

// store packs the finished distribution tree into a .tar.gz archive.
func (s *Stager) store() error {
	archive, err := os.Create(s.opts.OutputPath)
	if err != nil {
		return errors.Wrap(err, "failed to create distribution archive")
	}
	defer archive.Close()

	archiveWriter := artifact.NewArchiveWriter(archive)
	err = archiveWriter.WriteDir(".", s.opts.DistDir)
	if err != nil {
		return errors.Wrap(err, "failed to write distribution archive")
	}
	err = archiveWriter.Close()
	if err != nil {
		return err
	}
	log.Successf("Successfully created archive: %s", s.opts.OutputPath)
	return nil
}
