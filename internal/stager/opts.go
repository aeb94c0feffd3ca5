package stager

import (
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver"
	"github.com/pkg/errors"
	"golang.org/x/text/language"

	"github.com/winstage/winstage/internal/cmdutils"
	"github.com/winstage/winstage/internal/resolver"
	"github.com/winstage/winstage/pkg/log"
	"github.com/winstage/winstage/util/fileutil"
	"github.com/winstage/winstage/util/sliceutil"
)

type Opts struct {
	AppName           string   `mapstructure:"app-name"`
	AppVersion        string   `mapstructure:"app-version"`
	SystemRoot        string   `mapstructure:"system-root"`
	DistDir           string   `mapstructure:"dist-dir"`
	Themes            []string `mapstructure:"themes"`
	IconThemes        []string `mapstructure:"icon-themes"`
	Locales           []string `mapstructure:"locales"`
	TextDomains       []string `mapstructure:"textdomains"`
	ExcludedLibs      []string `mapstructure:"exclude-libs"`
	RuntimeArchive    string   `mapstructure:"runtime-archive"`
	InstallerTemplate string   `mapstructure:"installer-template"`
	SkipIconCache     bool     `mapstructure:"skip-icon-cache"`
	BuildInstaller    bool     `mapstructure:"build-installer"`

	// Fields which are not configurable via viper (i.e. via
	// winstage.yaml and WINSTAGE_* environment variables), by setting
	// mapstructure:"-"
	Binary     string `mapstructure:"-"`
	OutputPath string `mapstructure:"-"`

	// Inspector overrides the import table inspector, used by tests
	Inspector resolver.Inspector `mapstructure:"-"`
}

func (opts *Opts) Validate() error {
	var err error

	if opts.Binary == "" {
		msg := "A <binary> argument must be provided"
		return cmdutils.WrapIncorrectUsageError(errors.New(msg))
	}
	opts.Binary, err = filepath.Abs(opts.Binary)
	if err != nil {
		return errors.WithStack(err)
	}
	exists, err := fileutil.Exists(opts.Binary)
	if err != nil {
		return err
	}
	if !exists {
		err = errors.Errorf("binary does not exist: %s", opts.Binary)
		log.Error(err, err.Error())
		return cmdutils.ErrSilent
	}

	if opts.SystemRoot == "" {
		msg := "Flag \"system-root\" must be set"
		return cmdutils.WrapIncorrectUsageError(errors.New(msg))
	}
	opts.SystemRoot, err = filepath.Abs(opts.SystemRoot)
	if err != nil {
		return errors.WithStack(err)
	}
	// Without a runtime archive to extract, the system root must
	// already exist
	if opts.RuntimeArchive == "" && !fileutil.IsDir(opts.SystemRoot) {
		err = errors.Errorf("system root does not exist: %s", opts.SystemRoot)
		log.Error(err, err.Error())
		return cmdutils.ErrSilent
	}

	if opts.DistDir == "" {
		opts.DistDir = "dist"
	}
	opts.DistDir, err = filepath.Abs(opts.DistDir)
	if err != nil {
		return errors.WithStack(err)
	}

	if opts.AppName == "" {
		base := filepath.Base(opts.Binary)
		opts.AppName = strings.TrimSuffix(base, filepath.Ext(base))
	}

	if opts.AppVersion == "" {
		opts.AppVersion = "0.0.0"
	}
	version, err := semver.NewVersion(opts.AppVersion)
	if err != nil {
		err = errors.Wrapf(err, "invalid app version %q", opts.AppVersion)
		log.Error(err, err.Error())
		return cmdutils.ErrSilent
	}
	opts.AppVersion = version.String()

	opts.Themes = sliceutil.RemoveDuplicates(opts.Themes)
	opts.IconThemes = sliceutil.RemoveDuplicates(opts.IconThemes)
	opts.Locales = sliceutil.RemoveDuplicates(opts.Locales)
	opts.TextDomains = sliceutil.RemoveDuplicates(opts.TextDomains)

	// Locale directories use underscore separators (de, fr_FR), BCP 47
	// wants hyphens
	for _, locale := range opts.Locales {
		_, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
		if err != nil {
			err = errors.Wrapf(err, "invalid locale %q", locale)
			log.Error(err, err.Error())
			return cmdutils.ErrSilent
		}
	}

	if len(opts.TextDomains) == 0 && len(opts.Locales) > 0 {
		opts.TextDomains = []string{strings.ToLower(opts.AppName)}
	}

	if opts.RuntimeArchive != "" {
		exists, err := fileutil.Exists(opts.RuntimeArchive)
		if err != nil {
			return err
		}
		if !exists {
			err = errors.Errorf("runtime archive does not exist: %s", opts.RuntimeArchive)
			log.Error(err, err.Error())
			return cmdutils.ErrSilent
		}
	}

	if opts.InstallerTemplate != "" {
		exists, err := fileutil.Exists(opts.InstallerTemplate)
		if err != nil {
			return err
		}
		if !exists {
			err = errors.Errorf("installer template does not exist: %s", opts.InstallerTemplate)
			log.Error(err, err.Error())
			return cmdutils.ErrSilent
		}
	}

	return nil
}
