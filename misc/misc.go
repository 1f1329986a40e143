// Package misc provides build identification for the program.
package misc

// Set at build time via -ldflags "-X cssel/misc.version=... -X cssel/misc.gitHash=...".
var (
	appName = "cssel"
	version = "dev"
	gitHash = "unknown"
)

func GetAppName() string { return appName }

func GetVersion() string { return version }

func GetGitHash() string { return gitHash }
