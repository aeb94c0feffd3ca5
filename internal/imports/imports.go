// Package imports reads the shared library names a binary declares in
// its import table.
package imports

import (
	"debug/elf"
	"debug/pe"
	"fmt"
	"strings"
)

// MalformedArtifactError is returned when a file cannot be inspected
// for dependencies because it is not a recognizable binary.
type MalformedArtifactError struct {
	Path string
	Err  error
}

func (e *MalformedArtifactError) Error() string {
	return fmt.Sprintf("%s is not an inspectable binary: %v", e.Path, e.Err)
}

func (e *MalformedArtifactError) Unwrap() error {
	return e.Err
}

// Inspector lists declared dependencies of PE binaries, with an ELF
// fallback so that staging pipelines can be exercised with host-built
// binaries.
type Inspector struct{}

func NewInspector() *Inspector {
	return &Inspector{}
}

// ListDeclaredDependencies returns the library names declared by the
// binary at path, in declaration order of the import table.
func (i *Inspector) ListDeclaredDependencies(path string) ([]string, error) {
	peFile, peErr := pe.Open(path)
	if peErr == nil {
		defer peFile.Close()
		return peImportedLibraries(peFile, path)
	}

	elfFile, elfErr := elf.Open(path)
	if elfErr == nil {
		defer elfFile.Close()
		libs, err := elfFile.ImportedLibraries()
		if err != nil {
			return nil, &MalformedArtifactError{Path: path, Err: err}
		}
		return libs, nil
	}

	return nil, &MalformedArtifactError{Path: path, Err: peErr}
}

// peImportedLibraries derives the imported library list from the
// imported symbols, because (*pe.File).ImportedLibraries is not
// implemented in the standard library. The symbol table is grouped by
// library, so deduplicating while keeping the first occurrence
// preserves the declaration order.
func peImportedLibraries(peFile *pe.File, path string) ([]string, error) {
	symbols, err := peFile.ImportedSymbols()
	if err != nil {
		return nil, &MalformedArtifactError{Path: path, Err: err}
	}

	var libs []string
	seen := make(map[string]struct{})
	for _, symbol := range symbols {
		// Symbols have the form "GetProcAddress:KERNEL32.dll"
		idx := strings.LastIndex(symbol, ":")
		if idx == -1 {
			continue
		}
		lib := symbol[idx+1:]
		if _, exists := seen[lib]; exists {
			continue
		}
		seen[lib] = struct{}{}
		libs = append(libs, lib)
	}
	return libs, nil
}
