package stager

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/winstage/winstage/internal/cmdutils"
)

func validOpts(t *testing.T) *Opts {
	t.Helper()
	workDir := t.TempDir()
	binary := filepath.Join(workDir, "photofix.exe")
	require.NoError(t, os.WriteFile(binary, []byte("binary"), 0o755))
	systemRoot := filepath.Join(workDir, "systemroot")
	require.NoError(t, os.MkdirAll(systemRoot, 0o755))

	return &Opts{
		Binary:     binary,
		SystemRoot: systemRoot,
		DistDir:    filepath.Join(workDir, "dist"),
	}
}

func TestValidate_Defaults(t *testing.T) {
	opts := validOpts(t)
	opts.DistDir = ""
	opts.Locales = []string{"de", "de", "fr_FR"}

	require.NoError(t, opts.Validate())

	assert.Equal(t, "photofix", opts.AppName)
	assert.Equal(t, "0.0.0", opts.AppVersion)
	assert.True(t, filepath.IsAbs(opts.DistDir))
	assert.Equal(t, "dist", filepath.Base(opts.DistDir))
	assert.Equal(t, []string{"de", "fr_FR"}, opts.Locales)
	// Default text domain is derived from the app name
	assert.Equal(t, []string{"photofix"}, opts.TextDomains)
}

func TestValidate_NormalizesVersion(t *testing.T) {
	opts := validOpts(t)
	opts.AppVersion = "1.2"
	require.NoError(t, opts.Validate())
	assert.Equal(t, "1.2.0", opts.AppVersion)
}

func TestValidate_InvalidVersion(t *testing.T) {
	opts := validOpts(t)
	opts.AppVersion = "not-a-version"
	err := opts.Validate()
	assert.ErrorIs(t, err, cmdutils.ErrSilent)
}

func TestValidate_InvalidLocale(t *testing.T) {
	opts := validOpts(t)
	opts.Locales = []string{"no_such_locale_tag_!"}
	err := opts.Validate()
	assert.ErrorIs(t, err, cmdutils.ErrSilent)
}

func TestValidate_MissingBinary(t *testing.T) {
	opts := validOpts(t)
	opts.Binary = ""
	err := opts.Validate()
	assert.ErrorIs(t, err, cmdutils.ErrIncorrectUsage)

	opts = validOpts(t)
	opts.Binary = filepath.Join(t.TempDir(), "missing.exe")
	err = opts.Validate()
	assert.ErrorIs(t, err, cmdutils.ErrSilent)
}

func TestValidate_MissingSystemRoot(t *testing.T) {
	opts := validOpts(t)
	opts.SystemRoot = ""
	err := opts.Validate()
	assert.ErrorIs(t, err, cmdutils.ErrIncorrectUsage)

	opts = validOpts(t)
	opts.SystemRoot = filepath.Join(t.TempDir(), "missing")
	err = opts.Validate()
	assert.ErrorIs(t, err, cmdutils.ErrSilent)
}

func TestValidate_SystemRootMayBeMissingWithRuntimeArchive(t *testing.T) {
	opts := validOpts(t)
	archivePath := filepath.Join(t.TempDir(), "runtime.tar.gz")
	packDir(t, t.TempDir(), archivePath)
	opts.SystemRoot = filepath.Join(t.TempDir(), "missing")
	opts.RuntimeArchive = archivePath
	assert.NoError(t, opts.Validate())
}
