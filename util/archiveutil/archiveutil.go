package archiveutil

import (
	"archive/tar"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Untar extracts the tar archive read from r into dir. Regular files,
// directories and symlinks are supported. Entries which would end up
// outside dir are rejected.
func Untar(r io.Reader, dir string) error {
	tarReader := tar.NewReader(r)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.WithStack(err)
		}

		target, err := safeJoin(dir, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			err = os.MkdirAll(target, os.FileMode(header.Mode).Perm())
			if err != nil {
				return errors.WithStack(err)
			}
		case tar.TypeReg:
			err = os.MkdirAll(filepath.Dir(target), 0o755)
			if err != nil {
				return errors.WithStack(err)
			}
			f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, os.FileMode(header.Mode).Perm())
			if err != nil {
				return errors.WithStack(err)
			}
			_, err = io.Copy(f, tarReader) //nolint:gosec
			if err != nil {
				f.Close()
				return errors.Wrapf(err, "failed to extract %s", header.Name)
			}
			err = f.Close()
			if err != nil {
				return errors.WithStack(err)
			}
		case tar.TypeSymlink:
			err = os.MkdirAll(filepath.Dir(target), 0o755)
			if err != nil {
				return errors.WithStack(err)
			}
			err = os.Symlink(header.Linkname, target)
			if err != nil {
				return errors.WithStack(err)
			}
		default:
			return errors.Errorf("unsupported tar entry type %d: %s", header.Typeflag, header.Name)
		}
	}
}

// ExtractTarGz extracts the gzip-compressed tar archive at archivePath
// into dir.
func ExtractTarGz(archivePath, dir string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	gzipReader, err := gzip.NewReader(f)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", archivePath)
	}
	defer gzipReader.Close()

	return Untar(gzipReader, dir)
}

func safeJoin(dir, name string) (string, error) {
	target := filepath.Join(dir, filepath.FromSlash(name))
	rel, err := filepath.Rel(dir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Errorf("archive entry escapes the target directory: %s", name)
	}
	return target, nil
}
