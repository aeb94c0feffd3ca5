package stage

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

func TestStageCmd_MissingArgs(t *testing.T) {
	_, err := cmdutils.ExecuteCommand(t, New(), os.Stdin)
	require.Error(t, err)
}

func TestStageCmd_MissingSystemRoot(t *testing.T) {
	binary := filepath.Join(t.TempDir(), "photofix.exe")
	require.NoError(t, os.WriteFile(binary, []byte("binary"), 0o755))

	_, err := cmdutils.ExecuteCommand(t, New(), os.Stdin, binary)
	require.Error(t, err)
	assert.ErrorIs(t, err, cmdutils.ErrIncorrectUsage)
}

func TestStageCmd_BinaryDoesNotExist(t *testing.T) {
	binary := filepath.Join(t.TempDir(), "missing.exe")

	_, err := cmdutils.ExecuteCommand(t, New(), os.Stdin, binary,
		"--system-root", t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, cmdutils.ErrSilent)
}
