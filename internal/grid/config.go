package grid

const (
	// DefaultPageSize is used when Config.PageSize is not positive.
	DefaultPageSize = 50
	// DefaultSearchPlaceholder is shown in an empty search box.
	DefaultSearchPlaceholder = "Search..."
)

// Region names a part of the rendered grid that can take a style override.
type Region string

const (
	RegionHeader   Region = "header"
	RegionRow      Region = "row"
	RegionSelected Region = "selected"
	RegionCounter  Region = "counter"
	RegionPager    Region = "pager"
	RegionSearch   Region = "search"
)

// Config holds per-instance grid options. Boolean options are phrased so the
// zero value is the default (search enabled, counter shown).
type Config struct {
	PageSize            int
	DisableGlobalSearch bool
	HideCounter         bool
	SearchPlaceholder   string
	// KeyAccessor, when set, fills Row.Key from the source record.
	KeyAccessor string
	// Styles maps a region to a style token (typically a color) understood
	// by the renderer.
	Styles map[Region]string
}

func (c Config) withDefaults() Config {
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.SearchPlaceholder == "" {
		c.SearchPlaceholder = DefaultSearchPlaceholder
	}
	return c
}

// Normalized returns c with defaults applied.
func (c Config) Normalized() Config { return c.withDefaults() }

// Style returns the override token for region, if any.
func (c Config) Style(region Region) (string, bool) {
	tok, ok := c.Styles[region]
	return tok, ok && tok != ""
}
