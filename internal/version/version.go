// Package version holds build metadata for the ember cli.
// The variables are overridden at build time via -ldflags "-X ...".
package version

import (
	"strings"

	"github.com/fatih/color"
)

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
	dimColor   = color.New(color.Faint)
)

// Colored renders Version with each numeric part in its own colour.
// fatih/color honours NO_COLOR and --color, so the result may be plain.
func Colored() string {
	core, suffix, _ := strings.Cut(Version, "-")
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	out := majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}

// Line is the full `ember version` output line.
func Line() string {
	var b strings.Builder
	b.WriteString("ember ")
	b.WriteString(Colored())
	var meta []string
	if GitCommit != "" {
		commit := GitCommit
		if len(commit) > 12 {
			commit = commit[:12]
		}
		meta = append(meta, "commit "+commit)
	}
	if BuildDate != "" {
		meta = append(meta, "built "+BuildDate)
	}
	if len(meta) > 0 {
		b.WriteString(" ")
		b.WriteString(dimColor.Sprint("(" + strings.Join(meta, ", ") + ")"))
	}
	return b.String()
}
