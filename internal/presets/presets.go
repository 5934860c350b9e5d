// Package presets maps session moods to track pools.
package presets

import "github.com/yuya-fujimoto/fomu.cli/internal/tracks"

// Preset names a listening mood and the pools it draws tracks from.
// Pool order matters: earlier pools are downloaded first.
type Preset struct {
	Name  string
	Pools []tracks.Pool
}

// All lists every preset in display order.
var All = []Preset{
	{Name: "focus", Pools: []tracks.Pool{tracks.Atmospheric, tracks.CalmFocus}},
	{Name: "deep", Pools: []tracks.Pool{tracks.CalmFocus, tracks.Atmospheric}},
	{Name: "creative", Pools: []tracks.Pool{tracks.Atmospheric, tracks.GentleMovement}},
	{Name: "flow", Pools: []tracks.Pool{tracks.CalmFocus, tracks.Atmospheric}},
	{Name: "relax", Pools: []tracks.Pool{tracks.CalmFocus}},
	{Name: "morning", Pools: []tracks.Pool{tracks.GentleMovement, tracks.Atmospheric}},
}

// Get returns the preset with the given name, or nil.
func Get(name string) *Preset {
	for i := range All {
		if All[i].Name == name {
			return &All[i]
		}
	}
	return nil
}

// Names returns the preset names in display order.
func Names() []string {
	out := make([]string, len(All))
	for i, p := range All {
		out[i] = p.Name
	}
	return out
}
