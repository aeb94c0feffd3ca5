package imports

import (
	"debug/elf"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListDeclaredDependencies_MalformedArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-binary.dll")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o644))

	inspector := NewInspector()
	_, err := inspector.ListDeclaredDependencies(path)
	require.Error(t, err)

	var malformedErr *MalformedArtifactError
	require.ErrorAs(t, err, &malformedErr)
	assert.Equal(t, path, malformedErr.Path)
}

func TestListDeclaredDependencies_Missing(t *testing.T) {
	inspector := NewInspector()
	_, err := inspector.ListDeclaredDependencies(filepath.Join(t.TempDir(), "missing.exe"))

	var malformedErr *MalformedArtifactError
	require.ErrorAs(t, err, &malformedErr)
}

func TestListDeclaredDependencies_ELF(t *testing.T) {
	executable, err := os.Executable()
	require.NoError(t, err)
	if f, err := elf.Open(executable); err != nil {
		t.Skipf("test executable is not an ELF binary: %v", err)
	} else {
		f.Close()
	}

	inspector := NewInspector()
	libs, err := inspector.ListDeclaredDependencies(executable)
	require.NoError(t, err)
	// Statically linked test binaries declare no dependencies, so only
	// check that every returned entry is a bare name.
	for _, lib := range libs {
		assert.Equal(t, filepath.Base(lib), lib)
	}
}
