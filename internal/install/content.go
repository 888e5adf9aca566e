package install

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/DonovanMods/modkit/internal/domain"

	"github.com/charmbracelet/log"
)

// FilterFileList returns the files under root, skipping directory markers
func FilterFileList(files []string, root string) []string {
	var filtered []string
	for _, file := range files {
		if IsDirEntry(file) {
			continue
		}
		if root == TopLevelRoot || strings.HasPrefix(file, root+string(os.PathSeparator)) {
			filtered = append(filtered, file)
		}
	}
	return filtered
}

// MapCopyInstructions maps files to copy instructions relative to root
func MapCopyInstructions(files []string, root string, progress ProgressFunc) []domain.Instruction {
	instructions := make([]domain.Instruction, 0, len(files))
	for idx, file := range files {
		if progress != nil {
			progress(float64(idx) / float64(len(files)) * 100)
		}
		destination := file
		if root != TopLevelRoot {
			destination = strings.TrimPrefix(file, root+string(os.PathSeparator))
		}
		instructions = append(instructions, domain.Copy(file, destination))
	}
	return instructions
}

// ContentInstaller is the simple installer for packaged-asset games: the directory
// of the first mod file becomes the root and everything beneath it is installed.
type ContentInstaller struct {
	gameID         string
	modFileExt     string
	enableFallback bool
	logger         *log.Logger
}

// NewContentInstaller creates a content installer for gameID.
// With enableFallback, archives without a mod file are copied verbatim instead of failing.
func NewContentInstaller(gameID string, enableFallback bool, logger *log.Logger) *ContentInstaller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &ContentInstaller{
		gameID:         gameID,
		modFileExt:     domain.DefaultModFileExt,
		enableFallback: enableFallback,
		logger:         logger,
	}
}

// WithModFileExt sets the mod package extension
func (c *ContentInstaller) WithModFileExt(ext string) *ContentInstaller {
	c.modFileExt = NormalizeExt(ext)
	return c
}

// TestSupported accepts archives for the configured game that contain a mod
// file and do not ship a FOMOD installer
func (c *ContentInstaller) TestSupported(files []string, gameID string) domain.SupportedResult {
	supported := gameID == c.gameID
	if supported {
		supported = false
		for _, file := range files {
			if HasExt(file, c.modFileExt) {
				supported = true
				break
			}
		}
	}
	if supported && IsFomod(files) {
		supported = false
	}
	return domain.SupportedResult{Supported: supported, RequiredFiles: []string{}}
}

// Install builds copy instructions for the content beneath the first mod file's directory
func (c *ContentInstaller) Install(ctx context.Context, files []string, destinationPath, gameID string, progress ProgressFunc) (*domain.InstallResult, error) {
	c.logger.Debug("running content installer", "game", gameID, "destination", destinationPath)

	for _, file := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if !HasExt(file, c.modFileExt) {
			continue
		}

		// Found a mod file, so disregard anything outside of its directory
		root := filepath.Dir(file)
		filtered := FilterFileList(files, root)
		c.logger.Debug("filtered extraneous files", "root", root, "candidates", len(filtered))
		return &domain.InstallResult{Instructions: MapCopyInstructions(filtered, root, progress)}, nil
	}

	if !c.enableFallback {
		c.logger.Error("couldn't find reliable root indicator in file list, failing installation")
		return nil, fmt.Errorf("could not determine root of mod package: %w", domain.ErrNoReliableRoot)
	}

	c.logger.Warn("couldn't find reliable root indicator in file list, falling back to basic installation")
	return &domain.InstallResult{Instructions: MapCopyInstructions(FilterFileList(files, TopLevelRoot), TopLevelRoot, progress)}, nil
}
