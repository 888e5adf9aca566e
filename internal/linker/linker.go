// Package linker materializes copy instructions in a staging directory.
package linker

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Method is how a staged file refers to its source
type Method int

const (
	MethodCopy Method = iota
	MethodSymlink
	MethodHardlink
)

func (m Method) String() string {
	switch m {
	case MethodSymlink:
		return "symlink"
	case MethodHardlink:
		return "hardlink"
	default:
		return "copy"
	}
}

// ParseMethod converts a string to a Method, defaulting to copy
func ParseMethod(s string) Method {
	switch strings.ToLower(s) {
	case "symlink":
		return MethodSymlink
	case "hardlink":
		return MethodHardlink
	default:
		return MethodCopy
	}
}

// Linker places a single source file at a destination
type Linker interface {
	Link(src, dst string) error
	Unlink(dst string) error
	Method() Method
}

// New creates a linker for the given method
func New(method Method) Linker {
	switch method {
	case MethodSymlink:
		return symlinkLinker{}
	case MethodHardlink:
		return hardlinkLinker{}
	default:
		return copyLinker{}
	}
}

// prepare creates the destination directory and removes whatever is at dst
func prepare(dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("creating destination dir: %w", err)
	}
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing existing file: %w", err)
	}
	return nil
}

func unlink(dst string) error {
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing file: %w", err)
	}
	return nil
}

type symlinkLinker struct{}

func (symlinkLinker) Link(src, dst string) error {
	if err := prepare(dst); err != nil {
		return err
	}
	abs, err := filepath.Abs(src)
	if err != nil {
		return fmt.Errorf("resolving source: %w", err)
	}
	if err := os.Symlink(abs, dst); err != nil {
		return fmt.Errorf("creating symlink: %w", err)
	}
	return nil
}

// Unlink removes dst only if it is a symlink
func (symlinkLinker) Unlink(dst string) error {
	info, err := os.Lstat(dst)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Already removed
		}
		return fmt.Errorf("checking file: %w", err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return fmt.Errorf("not a symlink: %s", dst)
	}
	return unlink(dst)
}

func (symlinkLinker) Method() Method { return MethodSymlink }

type hardlinkLinker struct{}

func (hardlinkLinker) Link(src, dst string) error {
	if err := prepare(dst); err != nil {
		return err
	}
	if err := os.Link(src, dst); err != nil {
		return fmt.Errorf("creating hardlink: %w", err)
	}
	return nil
}

func (hardlinkLinker) Unlink(dst string) error { return unlink(dst) }

func (hardlinkLinker) Method() Method { return MethodHardlink }

type copyLinker struct{}

func (copyLinker) Link(src, dst string) (err error) {
	if err := prepare(dst); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing destination: %w", cerr)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copying file: %w", err)
	}
	return nil
}

func (copyLinker) Unlink(dst string) error { return unlink(dst) }

func (copyLinker) Method() Method { return MethodCopy }
