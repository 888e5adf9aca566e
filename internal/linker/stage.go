package linker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/DonovanMods/modkit/internal/domain"

	"golang.org/x/sync/errgroup"
)

// maxParallel bounds concurrent file operations while staging
const maxParallel = 4

// StageResult is what Stage placed in the staging directory
type StageResult struct {
	Files      []string       // Destinations relative to the staging directory, in instruction order
	Attributes map[string]any // Attribute instructions, later keys overriding earlier ones
}

// Stage applies copy instructions with sources relative to srcRoot and
// destinations relative to destRoot. Attribute instructions are collected,
// not written. Destinations that would escape destRoot are rejected before
// anything is written.
func Stage(ctx context.Context, l Linker, srcRoot, destRoot string, instructions []domain.Instruction) (*StageResult, error) {
	result := &StageResult{Files: []string{}, Attributes: map[string]any{}}

	type op struct{ src, dst string }
	var ops []op
	byDst := map[string]int{}
	for _, inst := range instructions {
		if !inst.IsCopy() {
			result.Attributes[inst.Key] = inst.Value
			continue
		}
		dst, err := within(destRoot, inst.Destination)
		if err != nil {
			return nil, err
		}
		src, err := within(srcRoot, inst.Source)
		if err != nil {
			return nil, err
		}
		// Later instructions for the same destination win
		if idx, ok := byDst[dst]; ok {
			ops[idx].src = src
			continue
		}
		byDst[dst] = len(ops)
		ops = append(ops, op{src: src, dst: dst})
		result.Files = append(result.Files, filepath.Clean(inst.Destination))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for _, o := range ops {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := l.Link(o.src, o.dst); err != nil {
				return fmt.Errorf("staging %s: %w", o.dst, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

// Unstage removes the files a previous Stage placed in destRoot
func Unstage(l Linker, destRoot string, instructions []domain.Instruction) error {
	for _, inst := range instructions {
		if !inst.IsCopy() {
			continue
		}
		dst, err := within(destRoot, inst.Destination)
		if err != nil {
			return err
		}
		if err := l.Unlink(dst); err != nil {
			return fmt.Errorf("unstaging %s: %w", dst, err)
		}
	}
	return nil
}

// within joins rel onto root, rejecting absolute paths and parent traversal
func within(root, rel string) (string, error) {
	clean := filepath.Clean(rel)
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("path escapes %s: %s", root, rel)
	}
	return filepath.Join(root, clean), nil
}
