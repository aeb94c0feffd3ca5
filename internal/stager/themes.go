package stager

import (
	"path/filepath"

	"github.com/otiai10/copy"
	"github.com/pkg/errors"

	"github.com/winstage/winstage/internal/cmdutils"
	"github.com/winstage/winstage/pkg/deps"
	"github.com/winstage/winstage/pkg/log"
	"github.com/winstage/winstage/util/executil"
	"github.com/winstage/winstage/util/fileutil"
)

// stageThemes copies the configured GUI themes and icon themes from
// the system root into the distribution tree.
func (s *Stager) stageThemes() error {
	for _, theme := range s.opts.Themes {
		err := s.stageAssetDir(filepath.Join("share", "themes", theme))
		if err != nil {
			return err
		}
	}
	for _, theme := range s.opts.IconThemes {
		err := s.stageAssetDir(filepath.Join("share", "icons", theme))
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Stager) stageAssetDir(relPath string) error {
	source := filepath.Join(s.opts.SystemRoot, relPath)
	if !fileutil.IsDir(source) {
		return errors.Errorf("asset directory not found under system root: %s", relPath)
	}

	target := filepath.Join(s.opts.DistDir, relPath)
	log.Debugf("Staging %s", relPath)
	err := copy.Copy(source, target)
	if err != nil {
		return errors.Wrapf(err, "failed to stage %s", relPath)
	}
	return nil
}

// updateIconCaches regenerates the icon cache of every staged icon
// theme, so the packaged application doesn't scan the theme directory
// at every start. Skipped with a warning when the updater is not
// installed.
func (s *Stager) updateIconCaches() error {
	if len(s.opts.IconThemes) == 0 {
		return nil
	}
	if !deps.Installed(deps.IconCacheUpdate) {
		log.Warnf("%s is not installed, the staged icon themes will have no icon cache", deps.IconCacheUpdate)
		return nil
	}

	for _, theme := range s.opts.IconThemes {
		themeDir := filepath.Join(s.opts.DistDir, "share", "icons", theme)
		cmd := executil.Command(string(deps.IconCacheUpdate), "-f", "-t", themeDir)
		err := cmd.Run()
		if err != nil {
			return cmdutils.WrapExecError(err, cmd.Cmd)
		}
	}
	return nil
}
