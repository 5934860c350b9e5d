package presets

import (
	"testing"

	"github.com/yuya-fujimoto/fomu.cli/internal/tracks"
)

func TestGet_KnownAndUnknown(t *testing.T) {
	p := Get("focus")
	if p == nil {
		t.Fatal("focus preset missing")
	}
	if len(p.Pools) == 0 {
		t.Error("focus preset has no pools")
	}
	if Get("doom-metal") != nil {
		t.Error("unknown preset resolved")
	}
}

func TestNames_MatchesAll(t *testing.T) {
	names := Names()
	if len(names) != len(All) {
		t.Fatalf("Names returned %d entries, want %d", len(names), len(All))
	}
	for i, n := range names {
		if n != All[i].Name {
			t.Errorf("Names[%d] = %q, want %q", i, n, All[i].Name)
		}
	}
}

func TestAll_PresetsResolveToTracks(t *testing.T) {
	for _, p := range All {
		if got := tracks.ByPools(p.Pools); len(got) == 0 {
			t.Errorf("preset %q resolves to zero catalog tracks", p.Name)
		}
	}
}
