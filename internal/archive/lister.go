// Package archive lists and unpacks mod archives.
package archive

import (
	"archive/tar"
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/DonovanMods/modkit/internal/domain"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Format identifies how an archive is read
type Format string

const (
	FormatUnknown Format = ""
	FormatZip     Format = "zip"
	Format7z      Format = "7z"
	FormatRar     Format = "rar"
	FormatTar     Format = "tar"
	FormatTarGz   Format = "tar.gz"
	FormatTarZst  Format = "tar.zst"
	FormatDir     Format = "dir"
)

// list7zTimeout is the maximum time allowed for a 7z listing (corrupted archives or hangs).
const list7zTimeout = 2 * time.Minute

// Lister produces the file listing handed to installers.
// Paths use the platform separator and directory entries end with it.
type Lister struct {
	sevenZip string // 7z executable name
}

// NewLister creates a new Lister
func NewLister() *Lister {
	return &Lister{sevenZip: "7z"}
}

// DetectFormat returns the archive format based on filename extension
func (l *Lister) DetectFormat(filename string) Format {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return FormatTarGz
	case strings.HasSuffix(lower, ".tar.zst"), strings.HasSuffix(lower, ".tzst"):
		return FormatTarZst
	}

	switch filepath.Ext(lower) {
	case ".zip":
		return FormatZip
	case ".7z":
		return Format7z
	case ".rar":
		return FormatRar
	case ".tar":
		return FormatTar
	default:
		return FormatUnknown
	}
}

// CanList returns true if the lister can handle the given filename
func (l *Lister) CanList(filename string) bool {
	return l.DetectFormat(filename) != FormatUnknown
}

// List returns the entries of the archive (or directory) at path in archive order.
// Entries that would escape the archive root are dropped and duplicates are removed.
func (l *Lister) List(ctx context.Context, path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	format := FormatDir
	if !info.IsDir() {
		format = l.DetectFormat(path)
	}

	var entries []entry
	switch format {
	case FormatDir:
		entries, err = listDir(path)
	case FormatZip:
		entries, err = listZip(path)
	case FormatTar, FormatTarGz, FormatTarZst:
		entries, err = listTar(path, format)
	case Format7z, FormatRar:
		entries, err = l.list7z(ctx, path)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedArchive, filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	return normalize(entries), nil
}

type entry struct {
	name  string // Slash or platform separated name as stored in the archive
	isDir bool
}

// normalize converts entries to platform paths, marks directories and removes
// unsafe or duplicate entries
func normalize(entries []entry) []string {
	seen := make(map[string]bool, len(entries))
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		name, ok := cleanEntry(e.name)
		if !ok {
			continue
		}
		if e.isDir {
			name += string(os.PathSeparator)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		files = append(files, name)
	}
	return files
}

// cleanEntry rejects absolute entries and entries containing parent traversal ("zip slip")
func cleanEntry(name string) (string, bool) {
	name = filepath.FromSlash(strings.ReplaceAll(name, "\\", "/"))
	if name == "" || filepath.IsAbs(name) {
		return "", false
	}
	clean := filepath.Clean(name)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(os.PathSeparator)) {
		return "", false
	}
	return clean, true
}

func listDir(root string) ([]entry, error) {
	var entries []entry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		entries = append(entries, entry{name: relPath, isDir: d.IsDir()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing directory: %w", err)
	}
	return entries, nil
}

func listZip(path string) (entries []entry, err error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening zip: %w", err)
	}
	defer func() {
		if cerr := r.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing zip: %w", cerr)
		}
	}()

	for _, f := range r.File {
		entries = append(entries, entry{name: f.Name, isDir: f.FileInfo().IsDir()})
	}
	return entries, nil
}

// tarStream opens path and returns a reader over its (decompressed) tar stream
func tarStream(path string, format Format) (*tar.Reader, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening tar: %w", err)
	}

	var src io.Reader = f
	closeFn := func() { _ = f.Close() }
	switch format {
	case FormatTarGz:
		gz, err := gzip.NewReader(f)
		if err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		src = gz
		closeFn = func() { _ = gz.Close(); _ = f.Close() }
	case FormatTarZst:
		dec, err := zstd.NewReader(f)
		if err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("opening zstd stream: %w", err)
		}
		src = dec
		closeFn = func() { dec.Close(); _ = f.Close() }
	}

	return tar.NewReader(src), closeFn, nil
}

func listTar(path string, format Format) ([]entry, error) {
	tr, closeFn, err := tarStream(path, format)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	var entries []entry
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading tar: %w", err)
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			entries = append(entries, entry{name: hdr.Name, isDir: true})
		case tar.TypeReg, tar.TypeSymlink, tar.TypeLink:
			entries = append(entries, entry{name: hdr.Name})
		}
	}
	return entries, nil
}

// list7z lists archives using the system 7z command.
// This handles .7z and .rar files. A timeout prevents hangs on corrupted archives.
func (l *Lister) list7z(ctx context.Context, path string) ([]entry, error) {
	if _, err := exec.LookPath(l.sevenZip); err != nil {
		return nil, fmt.Errorf("7z command not found: install p7zip-full to list .7z and .rar files")
	}

	ctx, cancel := context.WithTimeout(ctx, list7zTimeout)
	defer cancel()

	// -slt: technical listing with one "Key = Value" block per entry
	cmd := exec.CommandContext(ctx, l.sevenZip, "l", "-slt", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("7z listing timed out after %v", list7zTimeout)
		}
		return nil, fmt.Errorf("7z listing failed: %w\nOutput: %s", err, string(output))
	}

	return parse7zListing(string(output)), nil
}

// parse7zListing parses the output of "7z l -slt". Entry blocks follow a line of dashes.
func parse7zListing(output string) []entry {
	var entries []entry
	var current *entry
	inEntries := false

	flush := func() {
		if current != nil && current.name != "" {
			entries = append(entries, *current)
		}
		current = nil
	}

	for _, line := range strings.Split(strings.ReplaceAll(output, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if !inEntries {
			inEntries = strings.HasPrefix(line, "----------")
			continue
		}
		if line == "" {
			flush()
			continue
		}

		key, value, ok := strings.Cut(line, " = ")
		if !ok {
			continue
		}
		if current == nil {
			current = &entry{}
		}
		switch key {
		case "Path":
			current.name = value
		case "Folder":
			current.isDir = value == "+"
		case "Attributes":
			if strings.HasPrefix(value, "D") {
				current.isDir = true
			}
		}
	}
	flush()

	return entries
}
