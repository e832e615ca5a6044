package color

const (
	// ── Foreground (status text) ──────────────────────────────────────────
	CoralRed     = "\033[38;2;240;100;90m"   // error prefix
	DeepLavender = "\033[38;2;100;80;180m"   // deep lavender
	FoamWhite    = "\033[38;2;245;255;255m"  // sea foam, nearly white
	KrakenPurple = "\033[38;2;90;70;150m"    // dark mystic purple
	LightCyan    = "\033[38;2;224;255;255m"  // very pale cyan
	SlateGray    = "\033[38;2;112;128;144m"  // foggy gray

	// ── Bright (result highlights) ────────────────────────────────────────
	BrightLime      = "\033[38;2;180;255;100m" // neon‐lime
	BrightOrange    = "\033[38;2;255;165;0m"   // vivid orange
	NeonAzure       = "\033[38;2;0;255;255m"   // vibrant azure
	RadiantAmethyst = "\033[38;2;204;153;255m" // glowing purple/pink

	AnsiReset = "\033[0m"
)
