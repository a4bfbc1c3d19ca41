package version

// Build metadata injected via -ldflags; the defaults cover local runs.
var (
	Version = "dev"
	Commit  = "none"
	Date    = ""
	Dirty   = "false"
)
