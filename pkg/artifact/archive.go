package artifact

import (
	"archive/tar"
	"compress/gzip"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/winstage/winstage/pkg/log"
	"github.com/winstage/winstage/util/fileutil"
)

// ArchiveWriter creates the gzip-compressed tar archive of a staged
// distribution tree.
type ArchiveWriter struct {
	*tar.Writer
	manifest   map[string]string
	gzipWriter *gzip.Writer
}

func NewArchiveWriter(w io.Writer) *ArchiveWriter {
	gzipWriter := gzip.NewWriter(w)
	return &ArchiveWriter{
		Writer:     tar.NewWriter(gzipWriter),
		manifest:   make(map[string]string),
		gzipWriter: gzipWriter,
	}
}

// Close closes the tar writer and the gzip writer. It does not close
// the underlying io.Writer.
func (w *ArchiveWriter) Close() error {
	var err error
	err = w.Writer.Close()
	if err != nil {
		return errors.WithStack(err)
	}
	err = w.gzipWriter.Close()
	if err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// WriteFile writes the contents of sourcePath to the archive, with the
// filename archivePath (so when the archive is extracted, the file will
// be created at archivePath). Symlinks will be followed.
func (w *ArchiveWriter) WriteFile(archivePath string, sourcePath string) error {
	if fileutil.IsDir(sourcePath) {
		return errors.Errorf("file is a directory: %s", sourcePath)
	}
	return w.writeFileOrEmptyDir(archivePath, sourcePath)
}

// writeFileOrEmptyDir does the same as WriteFile but doesn't return an
// error when passed a directory. If passed a directory, it creates an
// empty directory at archivePath.
func (w *ArchiveWriter) writeFileOrEmptyDir(archivePath string, sourcePath string) error {
	existingAbsPath, conflict := w.manifest[archivePath]
	if conflict {
		if existingAbsPath == sourcePath {
			log.Debugf("Skipping file %q, was already added to the archive", sourcePath)
			return nil
		}
		return errors.Errorf("archive path %q has two source files: %q and %q", archivePath, existingAbsPath, sourcePath)
	}

	f, err := os.Open(sourcePath)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return errors.WithStack(err)
	}

	// Since os.File.Stat() follows symlinks, info will not be of type symlink
	// at this point - no need to pass in a non-empty value for link.
	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return errors.WithStack(err)
	}
	header.Name = filepath.ToSlash(archivePath)
	err = w.WriteHeader(header)
	if err != nil {
		return errors.WithStack(err)
	}

	if info.IsDir() {
		return nil
	}
	if !info.Mode().IsRegular() {
		return errors.Errorf("not a regular file: %s", sourcePath)
	}

	_, err = io.Copy(w.Writer, f)
	if err != nil {
		return errors.Wrapf(err, "failed to add file to archive: %s", sourcePath)
	}

	w.manifest[archivePath] = sourcePath
	return nil
}

// WriteDir traverses sourceDir recursively and writes all regular files
// and symlinks to the archive, below archiveBasePath.
func (w *ArchiveWriter) WriteDir(archiveBasePath string, sourceDir string) error {
	return filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return errors.WithStack(err)
		}
		archivePath := filepath.Join(archiveBasePath, relPath)

		// MSYS2-style runtime trees contain symlinks, preserve them
		// instead of duplicating their targets
		if fileutil.IsSymlink(path) {
			return w.writeSymlink(archivePath, path)
		}

		// There is no harm in creating tar entries for empty directories, even though they are not necessary.
		return w.writeFileOrEmptyDir(archivePath, path)
	})
}

func (w *ArchiveWriter) writeSymlink(archivePath string, sourcePath string) error {
	existingAbsPath, conflict := w.manifest[archivePath]
	if conflict {
		if existingAbsPath == sourcePath {
			return nil
		}
		return errors.Errorf("archive path %q has two source files: %q and %q", archivePath, existingAbsPath, sourcePath)
	}

	info, err := os.Lstat(sourcePath)
	if err != nil {
		return errors.WithStack(err)
	}
	link, err := os.Readlink(sourcePath)
	if err != nil {
		return errors.WithStack(err)
	}

	header, err := tar.FileInfoHeader(info, link)
	if err != nil {
		return errors.WithStack(err)
	}
	header.Name = filepath.ToSlash(archivePath)
	err = w.WriteHeader(header)
	if err != nil {
		return errors.WithStack(err)
	}

	w.manifest[archivePath] = sourcePath
	return nil
}

func (w *ArchiveWriter) HasFileEntry(archivePath string) bool {
	_, exists := w.manifest[archivePath]
	return exists
}
