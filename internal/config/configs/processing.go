package configs

// Processing holds the knobs of the matching and rewriting engine. The
// source/medium values are the defaults required for TikTok traffic; the
// campaign parameters always take the row's campaign name and are not
// configurable.
type Processing struct {
	// StrictDuplicateKeys makes a run fail fast when two tag records share a
	// composite key. When false (the default) the later record wins.
	StrictDuplicateKeys bool `env:"STRICT_DUPLICATE_KEYS" envDefault:"false"`

	UTMSource string `env:"UTM_SOURCE" envDefault:"tiktok"`
	UTMMedium string `env:"UTM_MEDIUM" envDefault:"paid"`
	TFSource  string `env:"TF_SOURCE" envDefault:"tiktok"`
	TFMedium  string `env:"TF_MEDIUM" envDefault:"paid_social"`
}
