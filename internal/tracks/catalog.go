// Package tracks holds the Scott Buckley catalog, the on-disk track
// store, and the downloader that fills it.
package tracks

// Pool groups catalog tracks by mood.
type Pool int

const (
	CalmFocus Pool = iota
	Atmospheric
	GentleMovement
)

// String returns the pool name used in logs.
func (p Pool) String() string {
	switch p {
	case CalmFocus:
		return "calm-focus"
	case Atmospheric:
		return "atmospheric"
	case GentleMovement:
		return "gentle-movement"
	}
	return "unknown"
}

// Track describes one catalog entry. All tracks are Scott Buckley
// compositions released under CC-BY 4.0.
type Track struct {
	Name        string
	Slug        string
	Pool        Pool
	DownloadURL string
}

// Filename returns the track's file name inside the tracks directory.
func (t *Track) Filename() string {
	return t.Slug + ".mp3"
}

// Catalog lists every known track, grouped by pool.
var Catalog = []Track{
	{
		Name:        "Permafrost",
		Slug:        "permafrost",
		Pool:        CalmFocus,
		DownloadURL: "https://www.scottbuckley.com.au/library/wp-content/uploads/2022/08/Permafrost.mp3",
	},
	{
		Name:        "Petrichor",
		Slug:        "petrichor",
		Pool:        CalmFocus,
		DownloadURL: "https://www.scottbuckley.com.au/library/wp-content/uploads/2019/05/sb_petrichor.mp3",
	},
	{
		Name:        "Borealis",
		Slug:        "borealis",
		Pool:        CalmFocus,
		DownloadURL: "https://www.scottbuckley.com.au/library/wp-content/uploads/2019/09/sb_borealis.mp3",
	},
	{
		Name:        "She Moved Mountains",
		Slug:        "she-moved-mountains",
		Pool:        CalmFocus,
		DownloadURL: "https://www.scottbuckley.com.au/library/wp-content/uploads/2014/07/sb_shemovedmountains.mp3",
	},
	{
		Name:        "Reverie",
		Slug:        "reverie",
		Pool:        CalmFocus,
		DownloadURL: "https://www.scottbuckley.com.au/library/wp-content/uploads/2020/03/sb_reverie.mp3",
	},
	{
		Name:        "Cobalt",
		Slug:        "cobalt",
		Pool:        CalmFocus,
		DownloadURL: "https://www.scottbuckley.com.au/library/wp-content/uploads/2017/11/sb_cobalt.mp3",
	},
	{
		Name:        "Life Is",
		Slug:        "life-is",
		Pool:        CalmFocus,
		DownloadURL: "https://www.scottbuckley.com.au/library/wp-content/uploads/2017/10/sb_lifeis.mp3",
	},
	{
		Name:        "Shadows and Dust",
		Slug:        "shadows-and-dust",
		Pool:        Atmospheric,
		DownloadURL: "https://www.scottbuckley.com.au/library/wp-content/uploads/2023/11/ShadowsAndDust.mp3",
	},
	{
		Name:        "Decoherence",
		Slug:        "decoherence",
		Pool:        Atmospheric,
		DownloadURL: "https://www.scottbuckley.com.au/library/wp-content/uploads/2022/03/sb_decoherence.mp3",
	},
	{
		Name:        "Aurora",
		Slug:        "aurora",
		Pool:        Atmospheric,
		DownloadURL: "https://www.scottbuckley.com.au/library/wp-content/uploads/2021/10/Aurora.mp3",
	},
	{
		Name:        "Hymn to the Dawn",
		Slug:        "hymn-to-the-dawn",
		Pool:        Atmospheric,
		DownloadURL: "https://www.scottbuckley.com.au/library/wp-content/uploads/2022/11/HymnToTheDawn.mp3",
	},
	{
		Name:        "Cirrus",
		Slug:        "cirrus",
		Pool:        Atmospheric,
		DownloadURL: "https://www.scottbuckley.com.au/library/wp-content/uploads/2023/03/Cirrus.mp3",
	},
	{
		Name:        "Meanwhile",
		Slug:        "meanwhile",
		Pool:        Atmospheric,
		DownloadURL: "https://www.scottbuckley.com.au/library/wp-content/uploads/2025/01/Meanwhile.mp3",
	},
	{
		Name:        "Cicadas",
		Slug:        "cicadas",
		Pool:        GentleMovement,
		DownloadURL: "https://www.scottbuckley.com.au/library/wp-content/uploads/2023/12/Cicadas.mp3",
	},
	{
		Name:        "Effervescence",
		Slug:        "effervescence",
		Pool:        GentleMovement,
		DownloadURL: "https://www.scottbuckley.com.au/library/wp-content/uploads/2023/07/Effervescence.mp3",
	},
	{
		Name:        "Golden Hour",
		Slug:        "golden-hour",
		Pool:        GentleMovement,
		DownloadURL: "https://www.scottbuckley.com.au/library/wp-content/uploads/2023/02/GoldenHour.mp3",
	},
	{
		Name:        "Castles in the Sky",
		Slug:        "castles-in-the-sky",
		Pool:        GentleMovement,
		DownloadURL: "https://www.scottbuckley.com.au/library/wp-content/uploads/2021/11/sb_castlesinthesky.mp3",
	},
	{
		Name:        "First Snow",
		Slug:        "first-snow",
		Pool:        GentleMovement,
		DownloadURL: "https://www.scottbuckley.com.au/library/wp-content/uploads/2022/12/FirstSnow.mp3",
	},
	{
		Name:        "Snowfall",
		Slug:        "snowfall",
		Pool:        GentleMovement,
		DownloadURL: "https://www.scottbuckley.com.au/library/wp-content/uploads/2018/12/sb_snowfall.mp3",
	},
}

// ByPools returns catalog tracks whose pool is in pools, in catalog order.
func ByPools(pools []Pool) []*Track {
	var out []*Track
	for i := range Catalog {
		for _, p := range pools {
			if Catalog[i].Pool == p {
				out = append(out, &Catalog[i])
				break
			}
		}
	}
	return out
}
