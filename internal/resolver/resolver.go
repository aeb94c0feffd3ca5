// Package resolver computes the transitive shared-library closure of a
// binary and materializes it next to the binary, so that the staged
// distribution tree is self-contained at launch time.
package resolver

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/winstage/winstage/pkg/log"
	"github.com/winstage/winstage/util/fileutil"
)

// Inspector extracts the ordered list of shared library names declared
// in a binary's import table.
type Inspector interface {
	ListDeclaredDependencies(path string) ([]string, error)
}

type Options struct {
	// SystemRoot is the root of the tree containing the full set of
	// installable libraries for the target platform. It is only read
	// from, never written to.
	SystemRoot string
	// LibDirs are the subdirectories of SystemRoot which are searched
	// recursively for library candidates. Defaults to "bin" and "lib",
	// which is where MSYS2-style runtimes keep their DLLs.
	LibDirs []string
	// Inspector reads import tables. Must not be nil.
	Inspector Inspector
	// ExcludedLibs are library names excluded from resolution in
	// addition to the built-in base-OS set.
	ExcludedLibs []string
}

type Resolver struct {
	opts     *Options
	excluded map[string]struct{}
	copied   []string
}

func New(opts *Options) (*Resolver, error) {
	if opts.SystemRoot == "" {
		return nil, errors.New("no system root specified")
	}
	if opts.Inspector == nil {
		return nil, errors.New("no import table inspector specified")
	}
	if len(opts.LibDirs) == 0 {
		opts.LibDirs = []string{"bin", "lib"}
	}

	excluded := make(map[string]struct{})
	for _, name := range opts.ExcludedLibs {
		excluded[strings.ToLower(name)] = struct{}{}
	}

	return &Resolver{opts: opts, excluded: excluded}, nil
}

// Resolve copies every shared library which is transitively required by
// subject, but not part of the base OS, into the subject's directory.
// The subject itself is expected to be in place already.
//
// A library is considered resolved as soon as a file with its name
// exists in the subject's directory. Since every recursion step targets
// the same directory, this check also terminates cyclic import graphs:
// the second visit of a library finds the file from the first visit.
//
// On failure, every frame removes the copy it created before
// propagating the error, so a retry of the whole top-level call
// re-attempts the failed branch instead of treating it as resolved.
// Sibling libraries which were fully resolved before the failure stay
// in place.
func (r *Resolver) Resolve(subject string) error {
	deps, err := r.opts.Inspector.ListDeclaredDependencies(subject)
	if err != nil {
		return err
	}

	targetDir := filepath.Dir(subject)
	for _, name := range deps {
		if r.isExcluded(name) {
			log.Debugf("Skipping base-OS library %s", name)
			continue
		}

		targetPath := filepath.Join(targetDir, name)
		exists, err := fileutil.Exists(targetPath)
		if err != nil {
			return err
		}
		if exists {
			// Already materialized, either by an earlier run or by
			// another branch of this resolution.
			continue
		}

		candidate, err := r.findLibrary(name, subject)
		if err != nil {
			return err
		}

		log.Debugf("Copying %s to %s", candidate, fileutil.PrettifyPath(targetPath))
		err = fileutil.CopyFile(candidate, targetPath)
		if err != nil {
			return errors.Wrapf(err, "failed to materialize %s", name)
		}
		r.copied = append(r.copied, targetPath)

		err = r.Resolve(targetPath)
		if err != nil {
			removeErr := os.Remove(targetPath)
			if removeErr != nil {
				return &RollbackError{
					Cause:     err,
					DeleteErr: removeErr,
					Path:      targetPath,
				}
			}
			r.dropCopied(targetPath)
			return err
		}
	}

	return nil
}

// Copied returns the paths of all library copies performed so far, in
// the order they were performed. Copies which were rolled back are not
// included.
func (r *Resolver) Copied() []string {
	return r.copied
}

func (r *Resolver) isExcluded(name string) bool {
	if IsSystemLibrary(name) {
		return true
	}
	_, excluded := r.excluded[strings.ToLower(name)]
	return excluded
}

// findLibrary searches the library directories under the system root
// for a file named name. When multiple candidates exist, the
// lexicographically smallest path wins, so that the choice does not
// depend on directory traversal order.
func (r *Resolver) findLibrary(name, subject string) (string, error) {
	var candidates []string
	for _, libDir := range r.opts.LibDirs {
		root := filepath.Join(r.opts.SystemRoot, libDir)
		if !fileutil.IsDir(root) {
			continue
		}
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return errors.WithStack(err)
			}
			if d.IsDir() || !fileutil.IsSharedLibrary(d.Name()) {
				return nil
			}
			if strings.EqualFold(d.Name(), name) {
				candidates = append(candidates, path)
			}
			return nil
		})
		if err != nil {
			return "", err
		}
	}

	if len(candidates) == 0 {
		return "", &DependencyNotFoundError{Name: name, Subject: subject}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return filepath.ToSlash(candidates[i]) < filepath.ToSlash(candidates[j])
	})
	if len(candidates) > 1 {
		log.Debugf("Multiple candidates for %s, using %s", name, candidates[0])
	}
	return candidates[0], nil
}

func (r *Resolver) dropCopied(path string) {
	for i := len(r.copied) - 1; i >= 0; i-- {
		if r.copied[i] == path {
			r.copied = append(r.copied[:i], r.copied[i+1:]...)
			return
		}
	}
}
