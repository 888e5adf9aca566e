package archive

import (
	"archive/tar"
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/DonovanMods/modkit/internal/domain"
)

// extract7zTimeout is the maximum time allowed for 7z extraction (corrupted archives or hangs).
const extract7zTimeout = 5 * time.Minute

// Extract unpacks the archive at path into destDir.
// Entries that would land outside destDir fail the extraction.
func (l *Lister) Extract(ctx context.Context, path, destDir string) error {
	format := l.DetectFormat(path)
	if format == FormatUnknown {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedArchive, filepath.Ext(path))
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("creating destination directory: %w", err)
	}

	switch format {
	case FormatZip:
		return extractZip(ctx, path, destDir)
	case FormatTar, FormatTarGz, FormatTarZst:
		return extractTar(ctx, path, format, destDir)
	default:
		return l.extract7z(ctx, path, destDir)
	}
}

// sanitizePath joins name onto destDir, refusing names that escape it ("zip slip")
func sanitizePath(destDir, name string) (string, error) {
	clean, ok := cleanEntry(name)
	if !ok {
		return "", fmt.Errorf("path traversal detected: %s", name)
	}
	return filepath.Join(destDir, clean), nil
}

func extractZip(ctx context.Context, path, destDir string) (err error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("opening zip: %w", err)
	}
	defer func() {
		if cerr := r.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing zip: %w", cerr)
		}
	}()

	for _, f := range r.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := extractZipFile(f, destDir); err != nil {
			return err
		}
	}
	return nil
}

func extractZipFile(f *zip.File, destDir string) (err error) {
	destPath, err := sanitizePath(destDir, f.Name)
	if err != nil {
		return err
	}
	if f.FileInfo().IsDir() {
		return os.MkdirAll(destPath, 0755)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening file %s in archive: %w", f.Name, err)
	}
	defer func() {
		if cerr := rc.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing archive entry %s: %w", f.Name, cerr)
		}
	}()

	return writeFile(destPath, rc, f.Mode())
}

func extractTar(ctx context.Context, path string, format Format, destDir string) error {
	tr, closeFn, err := tarStream(path, format)
	if err != nil {
		return err
	}
	defer closeFn()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading tar: %w", err)
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			destPath, err := sanitizePath(destDir, hdr.Name)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(destPath, 0755); err != nil {
				return fmt.Errorf("creating directory %s: %w", destPath, err)
			}
		case tar.TypeReg:
			destPath, err := sanitizePath(destDir, hdr.Name)
			if err != nil {
				return err
			}
			if err := writeFile(destPath, tr, hdr.FileInfo().Mode()); err != nil {
				return err
			}
		}
		// Links are not extracted
	}
}

// writeFile copies r to destPath, creating parent directories
func writeFile(destPath string, r io.Reader, mode os.FileMode) (err error) {
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", destPath, err)
	}

	out, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm()|0200)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", destPath, err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing file %s: %w", destPath, cerr)
		}
	}()

	if _, err = io.Copy(out, r); err != nil {
		return fmt.Errorf("writing file %s: %w", destPath, err)
	}
	return nil
}

// extract7z extracts .7z and .rar archives using the system 7z command
func (l *Lister) extract7z(ctx context.Context, path, destDir string) error {
	if _, err := exec.LookPath(l.sevenZip); err != nil {
		return fmt.Errorf("7z command not found: install p7zip-full to extract .7z and .rar files")
	}

	ctx, cancel := context.WithTimeout(ctx, extract7zTimeout)
	defer cancel()

	// -y: assume yes to all queries; -o: output directory (no space between -o and path)
	cmd := exec.CommandContext(ctx, l.sevenZip, "x", "-y", "-o"+destDir, path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("7z extraction timed out after %v", extract7zTimeout)
		}
		return fmt.Errorf("7z extraction failed: %w\nOutput: %s", err, string(output))
	}
	return nil
}
