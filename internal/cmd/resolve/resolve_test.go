package resolve

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/winstage/winstage/internal/cmdutils"
	"github.com/winstage/winstage/internal/imports"
	"github.com/winstage/winstage/pkg/log"
)

var testOut io.ReadWriter

func TestMain(m *testing.M) {
	// capture log output
	testOut = bytes.NewBuffer([]byte{})
	oldOut := log.Output
	log.Output = testOut
	viper.Set("verbose", true)

	m.Run()

	log.Output = oldOut
}

func TestResolveCmd_MissingArgs(t *testing.T) {
	_, err := cmdutils.ExecuteCommand(t, New(), os.Stdin, t.TempDir())
	require.Error(t, err)
}

func TestResolveCmd_SubjectDoesNotExist(t *testing.T) {
	systemRoot := t.TempDir()
	subject := filepath.Join(t.TempDir(), "missing.exe")

	_, err := cmdutils.ExecuteCommand(t, New(), os.Stdin, systemRoot, subject)
	require.Error(t, err)
	assert.ErrorIs(t, err, cmdutils.ErrIncorrectUsage)
}

func TestResolveCmd_MalformedSubject(t *testing.T) {
	systemRoot := t.TempDir()
	subject := filepath.Join(t.TempDir(), "app.exe")
	require.NoError(t, os.WriteFile(subject, []byte("not a binary"), 0o755))

	_, err := cmdutils.ExecuteCommand(t, New(), os.Stdin, systemRoot, subject)
	require.Error(t, err)

	var malformedErr *imports.MalformedArtifactError
	assert.ErrorAs(t, err, &malformedErr)
}
