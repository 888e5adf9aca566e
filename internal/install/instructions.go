package install

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/DonovanMods/modkit/internal/domain"
)

// ReservedSuffix marks a mod package as a patch package for the game's mod loader
const ReservedSuffix = "_P"

// TopLevelRoot is the root of an archive; files under it are copied verbatim
const TopLevelRoot = "."

// NormalizeExt lowercases an extension and ensures it starts with a dot.
// An empty extension falls back to DefaultModFileExt.
func NormalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return domain.DefaultModFileExt
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// HasExt reports whether path has the given (normalized) extension, ignoring case
func HasExt(path, ext string) bool {
	return strings.ToLower(filepath.Ext(path)) == ext
}

// IsDirEntry reports whether a listed path is a directory marker
func IsDirEntry(path string) bool {
	return strings.HasSuffix(path, string(os.PathSeparator))
}

// parentDir returns the directory containing path, treating directory markers
// as the directory itself rather than their own contents.
func parentDir(path string) string {
	trimmed := strings.TrimRight(path, string(os.PathSeparator))
	if trimmed == "" {
		return path
	}
	return filepath.Dir(trimmed)
}

// SuffixModFile inserts ReservedSuffix before the mod extension when missing.
// Applying it twice yields the same name.
func SuffixModFile(name, modFileExt string) string {
	ext := filepath.Ext(name)
	if !strings.EqualFold(ext, modFileExt) {
		return name
	}
	stem := strings.TrimSuffix(name, ext)
	if strings.HasSuffix(stem, ReservedSuffix) {
		return name
	}
	return stem + ReservedSuffix + ext
}

// BuildFlatInstructions builds copy instructions for the files directly inside root.
// Directory markers are skipped and include, when non-nil, filters further.
// Destinations are relative to root; files under TopLevelRoot keep their path.
func BuildFlatInstructions(modFileExt string, files []string, root string, include func(string) bool) []domain.Instruction {
	modFileExt = NormalizeExt(modFileExt)

	var instructions []domain.Instruction
	for _, file := range files {
		if IsDirEntry(file) || filepath.Dir(file) != root {
			continue
		}
		if include != nil && !include(file) {
			continue
		}

		destination := file
		if root != TopLevelRoot {
			destination = filepath.Base(file)
		}
		destination = SuffixModFile(destination, modFileExt)

		instructions = append(instructions, domain.Copy(file, destination))
	}
	return instructions
}
