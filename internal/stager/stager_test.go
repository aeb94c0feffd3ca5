package stager

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/winstage/winstage/pkg/artifact"
)

func packDir(t *testing.T, dir, archivePath string) {
	t.Helper()
	archive, err := os.Create(archivePath)
	require.NoError(t, err)
	writer := artifact.NewArchiveWriter(archive)
	require.NoError(t, writer.WriteDir(".", dir))
	require.NoError(t, writer.Close())
	require.NoError(t, archive.Close())
}

type stubInspector struct {
	deps map[string][]string
}

func (i *stubInspector) ListDeclaredDependencies(path string) ([]string, error) {
	return i.deps[filepath.Base(path)], nil
}

// newTestSystemRoot builds a system root with one library, one theme,
// one icon theme and one German message catalog.
func newTestSystemRoot(t *testing.T) string {
	t.Helper()
	systemRoot := t.TempDir()

	files := map[string]string{
		"bin/libphoto.dll":                        "library",
		"share/themes/Adwaita/gtk-3.0/gtk.css":    "css",
		"share/icons/Adwaita/index.theme":         "theme index",
		"share/locale/de/LC_MESSAGES/photofix.mo": "catalog",
	}
	for rel, content := range files {
		path := filepath.Join(systemRoot, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return systemRoot
}

func newTestOpts(t *testing.T, systemRoot string) *Opts {
	t.Helper()
	workDir := t.TempDir()
	binary := filepath.Join(workDir, "photofix.exe")
	require.NoError(t, os.WriteFile(binary, []byte("binary"), 0o755))

	return &Opts{
		AppVersion: "1.2.3",
		SystemRoot: systemRoot,
		DistDir:    filepath.Join(workDir, "dist"),
		Binary:     binary,
		Themes:     []string{"Adwaita"},
		IconThemes: []string{"Adwaita"},
		Locales:    []string{"de"},
		// The updater is not expected to be installed on build hosts
		// running the tests
		SkipIconCache: true,
		Inspector: &stubInspector{deps: map[string][]string{
			"photofix.exe": {"KERNEL32.dll", "libphoto.dll"},
		}},
	}
}

func TestStage(t *testing.T) {
	systemRoot := newTestSystemRoot(t)
	opts := newTestOpts(t, systemRoot)
	require.NoError(t, opts.Validate())

	err := New(opts).Stage()
	require.NoError(t, err)

	// Binary and resolved closure
	assert.FileExists(t, filepath.Join(opts.DistDir, "bin", "photofix.exe"))
	assert.FileExists(t, filepath.Join(opts.DistDir, "bin", "libphoto.dll"))
	assert.NoFileExists(t, filepath.Join(opts.DistDir, "bin", "KERNEL32.dll"))

	// Theme assets
	assert.FileExists(t, filepath.Join(opts.DistDir, "share", "themes", "Adwaita", "gtk-3.0", "gtk.css"))
	assert.FileExists(t, filepath.Join(opts.DistDir, "share", "icons", "Adwaita", "index.theme"))

	// Locales
	assert.FileExists(t, filepath.Join(opts.DistDir, "share", "locale", "de", "LC_MESSAGES", "photofix.mo"))

	// Settings and installer script
	settings, err := os.ReadFile(filepath.Join(opts.DistDir, "etc", "gtk-3.0", "settings.ini"))
	require.NoError(t, err)
	assert.Contains(t, string(settings), "gtk-theme-name = Adwaita")

	scriptPath := filepath.Join(filepath.Dir(opts.DistDir), "photofix-1.2.3-installer.nsi")
	script, err := os.ReadFile(scriptPath)
	require.NoError(t, err)
	assert.Contains(t, string(script), `!define APP_NAME "photofix"`)
	assert.Contains(t, string(script), `!define APP_VERSION "1.2.3"`)
	assert.Contains(t, string(script), `!define APP_EXE "photofix.exe"`)
}

func TestStage_WithOutputArchive(t *testing.T) {
	systemRoot := newTestSystemRoot(t)
	opts := newTestOpts(t, systemRoot)
	opts.OutputPath = filepath.Join(t.TempDir(), "photofix.tar.gz")
	require.NoError(t, opts.Validate())

	err := New(opts).Stage()
	require.NoError(t, err)
	assert.FileExists(t, opts.OutputPath)
}

func TestStage_MissingTheme(t *testing.T) {
	systemRoot := newTestSystemRoot(t)
	opts := newTestOpts(t, systemRoot)
	opts.Themes = []string{"HighContrast"}
	require.NoError(t, opts.Validate())

	err := New(opts).Stage()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HighContrast")
}

func TestStage_MissingLocaleIsNotFatal(t *testing.T) {
	systemRoot := newTestSystemRoot(t)
	opts := newTestOpts(t, systemRoot)
	opts.Locales = []string{"fr"}
	require.NoError(t, opts.Validate())

	err := New(opts).Stage()
	require.NoError(t, err)
	assert.NoDirExists(t, filepath.Join(opts.DistDir, "share", "locale", "fr"))
}

func TestStage_RuntimeArchive(t *testing.T) {
	// Pack a minimal runtime, then stage against a system root that
	// only exists inside the archive
	packedRoot := newTestSystemRoot(t)
	archivePath := filepath.Join(t.TempDir(), "runtime.tar.gz")
	packDir(t, packedRoot, archivePath)

	opts := newTestOpts(t, filepath.Join(t.TempDir(), "systemroot"))
	opts.RuntimeArchive = archivePath
	require.NoError(t, opts.Validate())

	err := New(opts).Stage()
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(opts.DistDir, "bin", "libphoto.dll"))
}
