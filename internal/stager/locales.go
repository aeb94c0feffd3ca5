package stager

import (
	"os"
	"path/filepath"

	"github.com/mattn/go-zglob"
	"github.com/pkg/errors"

	"github.com/winstage/winstage/pkg/log"
	"github.com/winstage/winstage/util/fileutil"
)

// stageLocales copies the message catalogs of the configured text
// domains for every configured locale into the distribution tree.
// Text domains may contain glob patterns (e.g. "gtk30*" to pick up
// gtk30.mo and gtk30-properties.mo). Locales without any matching
// catalog are staged empty with a warning, missing translations are
// not fatal.
func (s *Stager) stageLocales() error {
	for _, locale := range s.opts.Locales {
		staged := 0
		for _, domain := range s.opts.TextDomains {
			pattern := filepath.Join(s.opts.SystemRoot, "share", "locale", locale, "LC_MESSAGES", domain+".mo")
			matches, err := zglob.Glob(pattern)
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return errors.WithStack(err)
			}

			for _, match := range matches {
				relPath, err := filepath.Rel(s.opts.SystemRoot, match)
				if err != nil {
					return errors.WithStack(err)
				}
				target := filepath.Join(s.opts.DistDir, relPath)
				err = os.MkdirAll(filepath.Dir(target), 0o755)
				if err != nil {
					return errors.WithStack(err)
				}
				err = fileutil.CopyFile(match, target)
				if err != nil {
					return err
				}
				staged++
			}
		}

		if staged == 0 {
			log.Warnf("No message catalogs found for locale %s", locale)
		} else {
			log.Debugf("Staged %d message catalogs for locale %s", staged, locale)
		}
	}
	return nil
}
