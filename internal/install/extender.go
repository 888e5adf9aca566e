package install

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/DonovanMods/modkit/internal/domain"
)

// ExtenderFunc generates additional instructions after the user's file selection.
// instructions holds the instructions compiled so far, files holds every file passed
// to the installer.
type ExtenderFunc func(ctx context.Context, instructions []domain.Instruction, files []string, modName string) ([]domain.Instruction, error)

// Extender is a post-processing step with an optional gate on host state
type Extender struct {
	Name      string
	Predicate func(State) bool // nil always applies
	Generate  ExtenderFunc
}

// Applies reports whether the extender should run for the given state
func (e Extender) Applies(state State) bool {
	return e.Predicate == nil || e.Predicate(state)
}

// FeatureEnabled gates an extender on a profile feature
func FeatureEnabled(key string) func(State) bool {
	return func(s State) bool { return s.FeatureEnabled(key) }
}

// runExtenders appends the output of every applicable extender in registration order
func runExtenders(ctx context.Context, extenders []Extender, state State, base []domain.Instruction, files []string, modName string) ([]domain.Instruction, error) {
	instructions := base
	for _, ext := range extenders {
		if ext.Generate == nil || !ext.Applies(state) {
			continue
		}
		extra, err := ext.Generate(ctx, instructions, files, modName)
		if err != nil {
			return nil, fmt.Errorf("extender %s: %w", ext.Name, err)
		}
		instructions = append(instructions, extra...)
	}
	return instructions, nil
}

// DefaultInstalledPaksKey is the attribute that lists installed mod packages
const DefaultInstalledPaksKey = "installedPaks"

// InstalledPaksAttribute records the destinations of installed mod packages as an attribute.
// Suffixes are stripped so the attribute holds the package names as authored.
func InstalledPaksAttribute(modFileExt, key string) ExtenderFunc {
	modFileExt = NormalizeExt(modFileExt)
	if key == "" {
		key = DefaultInstalledPaksKey
	}
	return func(_ context.Context, instructions []domain.Instruction, _ []string, _ string) ([]domain.Instruction, error) {
		paks := []string{}
		for _, inst := range instructions {
			if !inst.IsCopy() || !HasExt(inst.Destination, modFileExt) {
				continue
			}
			ext := filepath.Ext(inst.Destination)
			name := strings.TrimSuffix(filepath.Base(inst.Destination), ext)
			paks = append(paks, strings.TrimSuffix(name, ReservedSuffix))
		}
		return []domain.Instruction{domain.Attribute(key, paks)}, nil
	}
}

// StaticAttributes always emits the given attributes
func StaticAttributes(attributes map[string]any) ExtenderFunc {
	return func(context.Context, []domain.Instruction, []string, string) ([]domain.Instruction, error) {
		return ToInstructions(attributes), nil
	}
}

// ToInstructions converts a map to attribute instructions ordered by key
func ToInstructions(attributes map[string]any) []domain.Instruction {
	keys := make([]string, 0, len(attributes))
	for k := range attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	instructions := make([]domain.Instruction, 0, len(keys))
	for _, k := range keys {
		instructions = append(instructions, domain.Attribute(k, attributes[k]))
	}
	return instructions
}

// ModName derives the mod name from the host's staging destination
func ModName(destinationPath string) string {
	return strings.TrimSuffix(filepath.Base(destinationPath), ".installing")
}
