// Package preload lists the image assets a session needs and checks that
// they can be read before the first game starts.
package preload

import (
	"fmt"
	"path"

	"github.com/aiham/dymaxion/pkg/types"
)

// IntroPuzzle is the tile set shown behind the about screen. It has no
// background image.
const IntroPuzzle = "intro"

// MenuButtons are the menu button images. Each also has an _over variant.
var MenuButtons = []string{"new_game", "shuffle", "quit", "about", "en", "ja"}

// Asset is one image the session loads.
type Asset struct {
	ID   string `json:"id"`
	Path string `json:"path"`
}

// TilePath is the image path of tile id in puzzle.
func TilePath(puzzle string, id types.Slot) string {
	return path.Join("img", "puzzles", puzzle, fmt.Sprintf("%d.png", id))
}

// Manifest returns every asset for the given puzzles in load order: the
// tiles of each puzzle and of the intro set, each puzzle's background, the
// menu buttons with their _over variants, and the logo.
func Manifest(puzzles []string) []Asset {
	var assets []Asset
	for _, p := range append(append([]string(nil), puzzles...), IntroPuzzle) {
		for _, id := range types.AllSlots() {
			assets = append(assets, Asset{
				ID:   fmt.Sprintf("%s_%d", p, id),
				Path: TilePath(p, id),
			})
		}
		if p != IntroPuzzle {
			assets = append(assets, Asset{
				ID:   p + "_bg",
				Path: path.Join("img", "puzzles", p, "bg.png"),
			})
		}
	}

	buttons := append([]string(nil), MenuButtons...)
	for _, b := range MenuButtons {
		buttons = append(buttons, b+"_over")
	}
	for _, b := range buttons {
		assets = append(assets, Asset{ID: b, Path: path.Join("img", "menu", b+".png")})
	}

	return append(assets, Asset{ID: "logo", Path: path.Join("img", "logo.png")})
}
