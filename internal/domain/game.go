package domain

// DefaultModFileExt is the packaged-asset extension used when none is configured
const DefaultModFileExt = ".pak"

// DefaultRootWarnLimit is the number of candidate roots above which the user is warned
const DefaultRootWarnLimit = 9

// Game describes a game an installer is registered for
type Game struct {
	ID            string // Unique slug, e.g., "palworld"
	Name          string // Display name
	ModFileExt    string // Mod package extension, e.g., ".pak"
	RootWarnLimit int    // Root count above which the user is warned (0 disables)
}

// DisplayName returns the game name, falling back to its ID
func (g *Game) DisplayName() string {
	if g.Name != "" {
		return g.Name
	}
	return g.ID
}
