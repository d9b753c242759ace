package types

// Config holds the settings shared by the CLI, the controller and the
// history backend.
type Config struct {
	Backend        string   `json:"backend" yaml:"backend"`
	DataDir        string   `json:"data_dir" yaml:"data_dir"`
	AssetsDir      string   `json:"assets_dir" yaml:"assets_dir"`
	Puzzles        []string `json:"puzzles" yaml:"puzzles"`
	AnimationScale float64  `json:"animation_scale" yaml:"animation_scale"`
	PreloadWorkers int      `json:"preload_workers" yaml:"preload_workers"`
	LogLevel       string   `json:"log_level" yaml:"log_level"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// DefaultPuzzles is the picture catalogue shipped with the game.
var DefaultPuzzles = []string{"miyajima", "himeji", "nara", "kiyomizu"}

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

var knownLogLevels = map[string]bool{
	"":      true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.AnimationScale < 0 {
		return ErrAnimationScaleInvalid
	}
	if c.PreloadWorkers < 0 {
		return ErrPreloadWorkersInvalid
	}
	if !knownLogLevels[c.LogLevel] {
		return ErrLogLevelUnknown
	}
	seen := make(map[string]bool, len(c.Puzzles))
	for _, p := range c.Puzzles {
		if p == "" || p == "intro" || seen[p] {
			return ErrPuzzleNameInvalid
		}
		seen[p] = true
	}
	return nil
}
