package stager

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/pkg/errors"

	"github.com/winstage/winstage/internal/cmdutils"
	"github.com/winstage/winstage/pkg/deps"
	"github.com/winstage/winstage/pkg/log"
	"github.com/winstage/winstage/util/executil"
)

//go:embed installer.nsi.tmpl
var defaultInstallerTemplate string

type installerTemplateData struct {
	AppName    string
	AppVersion string
	ExeName    string
	DistDir    string
}

// writeInstallerScript renders the NSIS installer script next to the
// distribution directory and returns its path. A custom template can
// be provided via the installer-template setting.
func (s *Stager) writeInstallerScript() (string, error) {
	templateText := defaultInstallerTemplate
	if s.opts.InstallerTemplate != "" {
		content, err := os.ReadFile(s.opts.InstallerTemplate)
		if err != nil {
			return "", errors.WithStack(err)
		}
		templateText = string(content)
	}

	tmpl, err := template.New("installer").Parse(templateText)
	if err != nil {
		return "", errors.Wrap(err, "failed to parse installer template")
	}

	scriptPath := filepath.Join(filepath.Dir(s.opts.DistDir),
		fmt.Sprintf("%s-%s-installer.nsi", s.opts.AppName, s.opts.AppVersion))
	script, err := os.Create(scriptPath)
	if err != nil {
		return "", errors.WithStack(err)
	}

	err = tmpl.Execute(script, &installerTemplateData{
		AppName:    s.opts.AppName,
		AppVersion: s.opts.AppVersion,
		ExeName:    filepath.Base(s.opts.Binary),
		DistDir:    s.opts.DistDir,
	})
	if err != nil {
		script.Close()
		return "", errors.Wrap(err, "failed to render installer template")
	}

	err = script.Close()
	if err != nil {
		return "", errors.WithStack(err)
	}
	return scriptPath, nil
}

// buildInstaller compiles the rendered installer script with makensis.
func (s *Stager) buildInstaller(scriptPath string) error {
	err := deps.Check([]deps.Key{deps.MakeNSIS})
	if err != nil {
		log.Error(err)
		return cmdutils.ErrSilent
	}

	cmd := executil.Command(string(deps.MakeNSIS), scriptPath)
	cmd.Dir = filepath.Dir(scriptPath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	err = cmd.Run()
	if err != nil {
		return cmdutils.WrapExecError(err, cmd.Cmd)
	}
	return nil
}

// writeSettingsIni writes the GTK settings file which selects the
// staged theme and icon theme for the packaged application.
func (s *Stager) writeSettingsIni() error {
	settingsDir := filepath.Join(s.opts.DistDir, "etc", "gtk-3.0")
	err := os.MkdirAll(settingsDir, 0o755)
	if err != nil {
		return errors.WithStack(err)
	}

	content := "[Settings]\n"
	if len(s.opts.Themes) > 0 {
		content += fmt.Sprintf("gtk-theme-name = %s\n", s.opts.Themes[0])
	}
	if len(s.opts.IconThemes) > 0 {
		content += fmt.Sprintf("gtk-icon-theme-name = %s\n", s.opts.IconThemes[0])
	}

	settingsPath := filepath.Join(settingsDir, "settings.ini")
	log.Debugf("Writing %s", settingsPath)
	err = os.WriteFile(settingsPath, []byte(content), 0o644)
	if err != nil {
		return errors.WithStack(err)
	}
	return nil
}
