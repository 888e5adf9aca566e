// Package install resolves which files of a mod archive to install and where,
// asking the user to choose when the archive holds more than one candidate root.
package install

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/DonovanMods/modkit/internal/domain"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// LargeModFileLimit is the mod file count above which the user is asked to confirm
const LargeModFileLimit = 100

// ProgressFunc reports install progress as a percentage
type ProgressFunc func(percent float64)

// Config is the installer configuration assembled by Builder. It is never
// mutated after Build.
type Config struct {
	GameID              string
	ModFileExt          string // Normalized, e.g. ".pak"
	RootWarnLimit       int    // 0 disables the root count warning
	Messages            Messages
	Compatibility       *CompatibilityTest
	SupportChecks       []SupportCheck
	Extenders           []Extender
	StrictRequiredFiles bool // Accumulate required files from support checks
}

// Installer resolves which files of an archive to install and where.
// It must be attached to a host with Configure before use.
type Installer struct {
	cfg    Config
	host   Host
	logger *log.Logger
}

// Configure returns a copy of the installer attached to host
func (i *Installer) Configure(host Host) *Installer {
	c := *i
	c.host = host
	return &c
}

// Configured reports whether the installer has a host
func (i *Installer) Configured() bool {
	return i.host != nil
}

// Config returns a copy of the installer configuration
func (i *Installer) Config() Config {
	cfg := i.cfg
	cfg.SupportChecks = slices.Clone(i.cfg.SupportChecks)
	cfg.Extenders = slices.Clone(i.cfg.Extenders)
	return cfg
}

// TestSupported reports whether this installer handles files for gameID.
// An unconfigured installer reports unsupported rather than failing.
// Support checks run concurrently; the first failure aborts the call.
func (i *Installer) TestSupported(ctx context.Context, files []string, gameID string) (domain.SupportedResult, error) {
	if i.host == nil {
		i.logger.Warn("advanced installer has not been configured, bailing out")
		return domain.SupportedResult{Supported: false, RequiredFiles: []string{}}, nil
	}
	state := i.host.State()
	i.logger.Debug("testing mod files for advanced installer", "files", len(files), "targetGame", i.cfg.GameID)

	required := []string{}
	supported := gameID == i.cfg.GameID && slices.ContainsFunc(files, i.isModFile)

	if len(i.cfg.SupportChecks) > 0 {
		results := make([]domain.SupportedResult, len(i.cfg.SupportChecks))
		g, gctx := errgroup.WithContext(ctx)
		for idx, check := range i.cfg.SupportChecks {
			g.Go(func() error {
				res, err := check.CheckSupport(gctx, files, gameID, state)
				if err != nil {
					return fmt.Errorf("support check %d: %w", idx+1, err)
				}
				results[idx] = res
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return domain.SupportedResult{}, err
		}

		for _, res := range results {
			supported = supported && res.Supported
			// Required files are only reported in strict mode
			if i.cfg.StrictRequiredFiles {
				required = append(required, res.RequiredFiles...)
			}
		}
	}

	return domain.SupportedResult{Supported: supported, RequiredFiles: required}, nil
}

// AdvancedInstall resolves the mod root(s) in files and returns the instructions to install them.
// The user may be prompted to confirm large mods and to choose between candidate roots or files.
// Cancellation by the user returns an error wrapping domain.ErrUserCanceled.
func (i *Installer) AdvancedInstall(ctx context.Context, files []string, destinationPath, gameID string, progress ProgressFunc) (*domain.InstallResult, error) {
	if i.host == nil {
		return nil, domain.ErrNotConfigured
	}
	report := func(p float64) {
		if progress != nil {
			progress(p)
		}
	}

	// Keep descending until we find a reliable indicator of the mod root
	var modFiles []string
	for _, file := range files {
		if i.isModFile(file) {
			modFiles = append(modFiles, file)
		}
	}
	roots := GroupBy(modFiles, filepath.Dir)
	report(10)

	if err := i.checkCompatibility(ctx, files, destinationPath); err != nil {
		return nil, err
	}
	if err := i.confirmLargeMod(ctx, len(modFiles), roots.Len()); err != nil {
		return nil, err
	}
	i.logger.Debug("separated mod roots", "game", gameID, "roots", roots.Keys())
	report(30)

	var instructions []domain.Instruction
	var err error
	keys := roots.Keys()
	switch {
	case len(keys) == 0:
		i.logger.Warn("couldn't find reliable root indicator in file list")
		return nil, domain.ErrNoReliableRoot
	case len(keys) == 1 && len(roots.Get(keys[0])) > 1:
		instructions, err = i.installMultipleModArchive(ctx, keys, roots, files)
	case len(keys) == 1:
		instructions = i.buildFlat(files, keys[0], nil)
	default:
		instructions, err = i.installFromMultiplePaths(ctx, roots, files)
	}
	if err != nil {
		return nil, err
	}
	report(80)

	instructions, err = runExtenders(ctx, i.cfg.Extenders, i.host.State(), instructions, files, ModName(destinationPath))
	if err != nil {
		return nil, err
	}
	if instructions == nil {
		instructions = []domain.Instruction{}
	}
	report(100)

	return &domain.InstallResult{Instructions: instructions}, nil
}

func (i *Installer) isModFile(file string) bool {
	return HasExt(file, i.cfg.ModFileExt)
}

func (i *Installer) buildFlat(files []string, root string, include func(string) bool) []domain.Instruction {
	i.logger.Debug("building installer instructions", "root", root)
	instructions := BuildFlatInstructions(i.cfg.ModFileExt, files, root, include)
	for _, inst := range instructions {
		if filepath.Base(inst.Source) != filepath.Base(inst.Destination) {
			i.logger.Debug("detected non-suffixed mod file", "destination", inst.Destination)
		}
	}
	return instructions
}

func (i *Installer) checkCompatibility(ctx context.Context, files []string, destinationPath string) error {
	compat := i.cfg.Compatibility
	if compat == nil || compat.Test == nil {
		return nil
	}

	switch compat.Test(files, destinationPath) {
	case domain.VerdictProceedWithWarning:
		choice, err := i.host.Ask(ctx, Prompt{
			Type:    DialogError,
			Title:   "Incompatible mod structure",
			Text:    compat.Message,
			Actions: []string{ActionCancelInstall, ActionContinueUnsupported},
		})
		if err != nil {
			return fmt.Errorf("compatibility prompt: %w", err)
		}
		if choice.Action != ActionContinueUnsupported {
			return domain.ErrIncompatibleStructure
		}
		msg := compat.ShortMessage
		if msg == "" {
			msg = defaultWarnMessage
		}
		i.host.Notify(Notification{Type: NotifyWarning, Title: "Installed incompatible mod", Message: msg})
	case domain.VerdictReject:
		msg := compat.Message
		if msg == "" {
			msg = defaultRejectMessage
		}
		return fmt.Errorf("mod failed compatibility check: %s: %w", msg, domain.ErrIncompatibleStructure)
	}
	return nil
}

func (i *Installer) confirmLargeMod(ctx context.Context, modFiles, roots int) error {
	limit := i.cfg.RootWarnLimit
	if modFiles <= LargeModFileLimit && (limit <= 0 || roots <= limit) {
		return nil
	}

	choice, err := i.host.Ask(ctx, Prompt{
		Type:    DialogInfo,
		Title:   "Large mod detected!",
		Text:    i.cfg.Messages.LargeModWarning,
		Actions: []string{ActionCancel, ActionContinue},
	})
	if err != nil {
		return fmt.Errorf("large mod prompt: %w", err)
	}
	if choice.Action == ActionCancel {
		return fmt.Errorf("large mod install: %w", domain.ErrUserCanceled)
	}
	return nil
}

// installFromMultiplePaths asks which of several candidate roots to install
func (i *Installer) installFromMultiplePaths(ctx context.Context, roots *RootGroups, files []string) ([]domain.Instruction, error) {
	keys := roots.Keys()
	checkboxes := make([]Checkbox, 0, len(keys))
	for _, k := range keys {
		checkboxes = append(checkboxes, Checkbox{
			ID:   k,
			Text: fmt.Sprintf("%s (%d files)", k, len(roots.Get(k))),
		})
	}
	prompt := Prompt{
		Type:       DialogQuestion,
		Title:      "Multiple mod files detected",
		Text:       i.cfg.Messages.MultipleRoots(keys),
		Checkboxes: checkboxes,
		Actions:    []string{ActionCancel, ActionInstallSelected, ActionInstallAll},
	}

	choice, err := i.host.Ask(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("multiple roots prompt: %w", err)
	}

	switch choice.Action {
	case ActionInstallAll:
		var instructions []domain.Instruction
		for _, k := range keys {
			instructions = append(instructions, i.buildFlat(files, k, nil)...)
		}
		return instructions, nil
	case ActionInstallSelected:
		return i.installMultipleModArchive(ctx, choice.Selected(prompt), roots, files)
	default:
		return nil, errMultiplePathsCanceled()
	}
}

// installMultipleModArchive installs the selected roots, asking which files to
// keep when any selected root holds more than one mod file
func (i *Installer) installMultipleModArchive(ctx context.Context, selections []string, roots *RootGroups, files []string) ([]domain.Instruction, error) {
	var candidates []string
	multiple := false
	for _, k := range selections {
		rootFiles := roots.Get(k)
		if len(rootFiles) > 1 {
			multiple = true
		}
		candidates = append(candidates, rootFiles...)
	}

	var include func(string) bool
	if multiple {
		checkboxes := make([]Checkbox, 0, len(candidates))
		for _, c := range candidates {
			checkboxes = append(checkboxes, Checkbox{ID: c, Text: c, Value: true})
		}
		prompt := Prompt{
			Type:       DialogQuestion,
			Title:      "Multiple mod files detected",
			Text:       i.cfg.Messages.MultipleFiles,
			Checkboxes: checkboxes,
			Actions:    []string{ActionCancel, ActionInstallSelected},
		}

		choice, err := i.host.Ask(ctx, prompt)
		if err != nil {
			return nil, fmt.Errorf("multiple files prompt: %w", err)
		}
		if choice.Action != ActionInstallSelected {
			return nil, errMultiplePathsCanceled()
		}

		// Files share a directory, so selections match on base name
		chosen := make(map[string]bool)
		for _, s := range choice.Selected(prompt) {
			chosen[filepath.Base(s)] = true
		}
		include = func(file string) bool { return chosen[filepath.Base(file)] }
	}

	var instructions []domain.Instruction
	for _, k := range selections {
		instructions = append(instructions, i.buildFlat(files, k, include)...)
	}
	return instructions, nil
}

func errMultiplePathsCanceled() error {
	return fmt.Errorf("%w: %w", domain.ErrUserCanceled, domain.ErrMultipleModPaths)
}
