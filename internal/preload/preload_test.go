package preload

import (
	"context"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiham/dymaxion/pkg/types"
)

func TestManifest(t *testing.T) {
	assets := Manifest([]string{"nara", "himeji"})

	// 3 tile sets, 2 backgrounds, 12 menu images, 1 logo.
	want := 3*types.SlotCount + 2 + 2*len(MenuButtons) + 1
	require.Len(t, assets, want)

	byID := make(map[string]string, len(assets))
	for _, a := range assets {
		_, dup := byID[a.ID]
		require.False(t, dup, "duplicate asset id %s", a.ID)
		byID[a.ID] = a.Path
	}

	tests := []struct {
		id   string
		path string
	}{
		{"nara_1", "img/puzzles/nara/1.png"},
		{"himeji_23", "img/puzzles/himeji/23.png"},
		{"intro_7", "img/puzzles/intro/7.png"},
		{"nara_bg", "img/puzzles/nara/bg.png"},
		{"shuffle", "img/menu/shuffle.png"},
		{"ja_over", "img/menu/ja_over.png"},
		{"logo", "img/logo.png"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.path, byID[tt.id])
		})
	}

	assert.NotContains(t, byID, "intro_bg")
	assert.Equal(t, "logo", assets[len(assets)-1].ID)
}

func TestManifestDoesNotAliasInput(t *testing.T) {
	puzzles := make([]string, 1, 4)
	puzzles[0] = "nara"
	Manifest(puzzles)
	assert.Equal(t, []string{"nara"}, puzzles)
	assert.Empty(t, puzzles[:2][1], "intro must not be written into the caller's backing array")
}

func fullFS(assets []Asset) fstest.MapFS {
	fsys := fstest.MapFS{}
	for _, a := range assets {
		fsys[a.Path] = &fstest.MapFile{Data: []byte("png")}
	}
	return fsys
}

func TestLoadAll(t *testing.T) {
	assets := Manifest([]string{"nara"})

	var (
		mu    sync.Mutex
		calls int
		last  [3]int
	)
	l := &Loader{
		FS:      fullFS(assets),
		Workers: 3,
		Progress: func(loaded, failed, total int) {
			mu.Lock()
			defer mu.Unlock()
			calls++
			assert.Equal(t, calls, loaded+failed, "progress counts grow by one")
			last = [3]int{loaded, failed, total}
		},
	}

	report, err := l.Load(context.Background(), assets)
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Equal(t, len(assets), report.Total)
	assert.Equal(t, len(assets), report.Loaded)
	assert.Equal(t, len(assets), calls)
	assert.Equal(t, [3]int{len(assets), 0, len(assets)}, last)
}

func TestLoadFailuresStillComplete(t *testing.T) {
	assets := Manifest([]string{"nara"})
	fsys := fullFS(assets)
	delete(fsys, "img/logo.png")
	delete(fsys, "img/puzzles/nara/5.png")
	fsys["img/menu/about.png"] = &fstest.MapFile{}

	report, err := (&Loader{FS: fsys}).Load(context.Background(), assets)
	require.NoError(t, err)
	assert.False(t, report.OK())
	assert.Equal(t, len(assets)-3, report.Loaded)

	require.Len(t, report.Failures, 3)
	ids := []string{report.Failures[0].Asset.ID, report.Failures[1].Asset.ID, report.Failures[2].Asset.ID}
	assert.Equal(t, []string{"about", "logo", "nara_5"}, ids)
	assert.Contains(t, report.Failures[0].Err, ErrEmptyAsset.Error())
}

func TestLoadRejectsBadAssetLists(t *testing.T) {
	l := &Loader{FS: fstest.MapFS{}}

	_, err := l.Load(context.Background(), nil)
	assert.ErrorIs(t, err, types.ErrEmptyTaskSet)

	dup := []Asset{{ID: "logo", Path: "img/logo.png"}, {ID: "logo", Path: "img/logo.png"}}
	_, err = l.Load(context.Background(), dup)
	assert.ErrorIs(t, err, types.ErrDuplicateTaskID)
}

func TestLoadCancelled(t *testing.T) {
	assets := Manifest(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := (&Loader{FS: fullFS(assets), Workers: 1}).Load(ctx, assets)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, len(assets), report.Total)
	assert.Equal(t, report.Total, report.Loaded+len(report.Failures))
}
