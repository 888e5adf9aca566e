package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/DonovanMods/modkit/internal/domain"
	"github.com/DonovanMods/modkit/internal/install"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// InstallersFileName is the per-game installer definitions file in the config directory
const InstallersFileName = "installers.yaml"

// InstallerConfig is the YAML representation of an installer for one game
type InstallerConfig struct {
	ID            string               `yaml:"-"`
	Name          string               `yaml:"name"`
	ModFileExt    string               `yaml:"mod_file_ext,omitempty"`
	RootWarnLimit int                  `yaml:"root_warn_limit,omitempty"`
	Messages      MessagesConfig       `yaml:"messages,omitempty"`
	Compatibility *CompatibilityConfig `yaml:"compatibility,omitempty"`
	Support       SupportConfig        `yaml:"support,omitempty"`
	Extenders     ExtendersConfig      `yaml:"extenders,omitempty"`
	Roots         []RootRuleConfig     `yaml:"roots,omitempty"`
}

// MessagesConfig overrides dialog texts. multiple_roots accepts {count} and {roots}.
type MessagesConfig struct {
	MultipleFiles   string `yaml:"multiple_files,omitempty"`
	MultipleRoots   string `yaml:"multiple_roots,omitempty"`
	LargeModWarning string `yaml:"large_mod_warning,omitempty"`
}

// CompatibilityConfig describes a pattern-based compatibility test
type CompatibilityConfig struct {
	RejectFiles  []string `yaml:"reject_files,omitempty"`
	ConfirmFiles []string `yaml:"confirm_files,omitempty"`
	Message      string   `yaml:"message,omitempty"`
	ShortMessage string   `yaml:"short_message,omitempty"`
}

// SupportConfig lists support checks
type SupportConfig struct {
	RequireAny   []string `yaml:"require_any,omitempty"`
	ExcludeFomod bool     `yaml:"exclude_fomod,omitempty"`
}

// ExtendersConfig lists instruction extenders
type ExtendersConfig struct {
	InstalledPaks *InstalledPaksConfig `yaml:"installed_paks,omitempty"`
	Attributes    map[string]any       `yaml:"attributes,omitempty"`
}

// InstalledPaksConfig enables the installed mod files attribute.
// When Feature is set the extender only runs if that host feature is enabled.
type InstalledPaksConfig struct {
	Feature   string `yaml:"feature,omitempty"`
	Attribute string `yaml:"attribute,omitempty"`
}

// RootRuleConfig is a RootFinder rule. Exactly one of File or Folder is set.
type RootRuleConfig struct {
	File       string `yaml:"file,omitempty"`
	Folder     string `yaml:"folder,omitempty"`
	IgnoreCase bool   `yaml:"ignore_case,omitempty"`
	UseParent  bool   `yaml:"use_parent,omitempty"`
}

// InstallersFile is the top-level installers.yaml structure
type InstallersFile struct {
	Installers map[string]InstallerConfig `yaml:"installers"`
}

// LoadInstallers reads installer definitions from the config directory
func LoadInstallers(configDir string) (map[string]*InstallerConfig, error) {
	installers, err := LoadInstallersFile(filepath.Join(configDir, InstallersFileName))
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]*InstallerConfig), nil
	}
	return installers, err
}

// LoadInstallersFile reads installer definitions from an explicit path
func LoadInstallersFile(path string) (map[string]*InstallerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}

	var file InstallersFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}

	installers := make(map[string]*InstallerConfig, len(file.Installers))
	for id, cfg := range file.Installers {
		cfg.ID = id
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		installers[id] = &cfg
	}

	return installers, nil
}

// SaveInstaller adds or updates an installer in installers.yaml
func SaveInstaller(configDir string, cfg *InstallerConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	installers, err := LoadInstallers(configDir)
	if err != nil {
		return err
	}
	installers[cfg.ID] = cfg

	file := InstallersFile{Installers: make(map[string]InstallerConfig, len(installers))}
	for id, c := range installers {
		file.Installers[id] = *c
	}

	data, err := yaml.Marshal(&file)
	if err != nil {
		return fmt.Errorf("marshaling installers: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	if err := os.WriteFile(filepath.Join(configDir, InstallersFileName), data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", InstallersFileName, err)
	}

	return nil
}

// Lookup returns the installer for gameID
func Lookup(installers map[string]*InstallerConfig, gameID string) (*InstallerConfig, error) {
	cfg, ok := installers[gameID]
	if !ok {
		return nil, fmt.Errorf("%s: %w", gameID, domain.ErrGameNotFound)
	}
	return cfg, nil
}

// SortedIDs returns installer IDs in lexical order
func SortedIDs(installers map[string]*InstallerConfig) []string {
	return slices.Sorted(maps.Keys(installers))
}

// Validate checks the installer definition for errors
func (c *InstallerConfig) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("installer without id: %w", domain.ErrInvalidConfig)
	}
	for i, r := range c.Roots {
		if (r.File == "") == (r.Folder == "") {
			return fmt.Errorf("installer %s: root rule %d needs exactly one of file or folder: %w", c.ID, i+1, domain.ErrInvalidConfig)
		}
	}
	if c.Compatibility != nil {
		for _, p := range append(slices.Clone(c.Compatibility.RejectFiles), c.Compatibility.ConfirmFiles...) {
			if _, err := filepath.Match(p, ""); err != nil {
				return fmt.Errorf("installer %s: pattern %q: %w", c.ID, p, domain.ErrInvalidConfig)
			}
		}
	}
	return nil
}

// Game returns the game described by the installer
func (c *InstallerConfig) Game() domain.Game {
	game := domain.Game{
		ID:            c.ID,
		Name:          c.Name,
		ModFileExt:    install.NormalizeExt(c.ModFileExt),
		RootWarnLimit: c.RootWarnLimit,
	}
	if game.RootWarnLimit == 0 {
		game.RootWarnLimit = domain.DefaultRootWarnLimit
	}
	return game
}

// Builder returns an installer builder populated from the definition
func (c *InstallerConfig) Builder(logger *log.Logger) *install.Builder {
	b := install.NewBuilder(c.ID).
		WithModFileExt(c.ModFileExt).
		WithRootWarnLimit(c.RootWarnLimit).
		WithLogger(logger)

	msgs := install.Messages{
		MultipleFiles:   c.Messages.MultipleFiles,
		LargeModWarning: c.Messages.LargeModWarning,
	}
	if c.Messages.MultipleRoots != "" {
		msgs.MultipleRoots = install.RootsTemplate(c.Messages.MultipleRoots)
	}
	b.UseCustomMessages(msgs)

	if c.Compatibility != nil {
		b.AddCompatibilityTest(install.CompatibilityTest{
			Test:         install.PatternTest(c.Compatibility.RejectFiles, c.Compatibility.ConfirmFiles),
			Message:      c.Compatibility.Message,
			ShortMessage: c.Compatibility.ShortMessage,
		})
	}

	if c.Support.ExcludeFomod {
		b.AddSupportedCheck(install.ExcludeFomod())
	}
	if len(c.Support.RequireAny) > 0 {
		b.AddSupportedCheck(install.RequireAny(c.Support.RequireAny...))
	}

	if paks := c.Extenders.InstalledPaks; paks != nil {
		var predicate func(install.State) bool
		if paks.Feature != "" {
			predicate = install.FeatureEnabled(paks.Feature)
		}
		b.AddExtender("installed-paks", install.InstalledPaksAttribute(c.ModFileExt, paks.Attribute), predicate)
	}
	if len(c.Extenders.Attributes) > 0 {
		b.AddExtender("attributes", install.StaticAttributes(c.Extenders.Attributes), nil)
	}

	return b
}

// RootFinder returns a RootFinder populated from the root rules
func (c *InstallerConfig) RootFinder() *install.RootFinder {
	f := install.NewRootFinder()
	for _, r := range c.Roots {
		if r.File != "" {
			f.AddFileRoot(r.File, r.IgnoreCase, r.UseParent)
		} else {
			f.AddFolderRoot(r.Folder, r.IgnoreCase, r.UseParent)
		}
	}
	return f
}
