package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "ohmlab", displayVersion(version))
	},
}

// displayVersion canonicalizes release versions ("1.2" becomes "v1.2.0") and
// passes anything else, such as "(devel)", through unchanged.
func displayVersion(v string) string {
	tagged := v
	if len(tagged) > 0 && tagged[0] != 'v' {
		tagged = "v" + tagged
	}
	if !semver.IsValid(tagged) {
		return v
	}
	return semver.Canonical(tagged)
}
