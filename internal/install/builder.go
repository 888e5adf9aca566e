package install

import (
	"io"
	"slices"

	"github.com/DonovanMods/modkit/internal/domain"

	"github.com/charmbracelet/log"
)

// Builder assembles an Installer configuration
type Builder struct {
	gameID        string
	modFileExt    string
	rootWarnLimit int
	messages      Messages
	compat        *CompatibilityTest
	supportChecks []SupportCheck
	extenders     []Extender
	strict        bool
	logger        *log.Logger
}

// NewBuilder creates a builder for gameID with a .pak extension and a root warning limit of 9
func NewBuilder(gameID string) *Builder {
	return &Builder{
		gameID:        gameID,
		modFileExt:    domain.DefaultModFileExt,
		rootWarnLimit: domain.DefaultRootWarnLimit,
	}
}

// WithModFileExt sets the mod package extension
func (b *Builder) WithModFileExt(ext string) *Builder {
	b.modFileExt = NormalizeExt(ext)
	return b
}

// WithRootWarnLimit sets the number of candidate roots above which the user is warned.
// Zero keeps the default; a negative limit disables the warning.
func (b *Builder) WithRootWarnLimit(limit int) *Builder {
	switch {
	case limit == 0:
		b.rootWarnLimit = domain.DefaultRootWarnLimit
	case limit < 0:
		b.rootWarnLimit = 0
	default:
		b.rootWarnLimit = limit
	}
	return b
}

// AddCompatibilityTest sets the compatibility test, replacing any earlier one
func (b *Builder) AddCompatibilityTest(test CompatibilityTest) *Builder {
	b.compat = &test
	return b
}

// AddExtender adds an instruction extender. Extenders run after the user has
// chosen what to install. A nil predicate always applies.
func (b *Builder) AddExtender(name string, generate ExtenderFunc, predicate func(State) bool) *Builder {
	b.extenders = append(b.extenders, Extender{Name: name, Predicate: predicate, Generate: generate})
	return b
}

// AddSupportedCheck adds a check run by TestSupported
func (b *Builder) AddSupportedCheck(check SupportCheck) *Builder {
	b.supportChecks = append(b.supportChecks, check)
	return b
}

// UseCustomMessages sets the dialog texts; empty fields keep their defaults
func (b *Builder) UseCustomMessages(messages Messages) *Builder {
	b.messages = messages
	return b
}

// WithStrictRequiredFiles makes TestSupported accumulate required files from support checks
func (b *Builder) WithStrictRequiredFiles(strict bool) *Builder {
	b.strict = strict
	return b
}

// WithLogger sets the logger used for installer diagnostics
func (b *Builder) WithLogger(logger *log.Logger) *Builder {
	b.logger = logger
	return b
}

// Build creates the installer. Later builder calls do not affect it.
func (b *Builder) Build() *Installer {
	logger := b.logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var compat *CompatibilityTest
	if b.compat != nil {
		c := *b.compat
		compat = &c
	}

	return &Installer{
		cfg: Config{
			GameID:              b.gameID,
			ModFileExt:          b.modFileExt,
			RootWarnLimit:       b.rootWarnLimit,
			Messages:            b.messages.withDefaults(),
			Compatibility:       compat,
			SupportChecks:       slices.Clone(b.supportChecks),
			Extenders:           slices.Clone(b.extenders),
			StrictRequiredFiles: b.strict,
		},
		logger: logger.With("installer", b.gameID),
	}
}
