package main

import (
	"cmp"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version information set at build time via ldflags.
var (
	version = ""
	commit  = ""
	date    = ""
)

// versionInfo describes the running binary.
type versionInfo struct {
	Version   string
	Commit    string
	Date      string
	GoVersion string
}

// currentVersion resolves the version fields.
// Priority: ldflags > debug.ReadBuildInfo > "(devel)" / "unknown"
func currentVersion() versionInfo {
	info := versionInfo{
		Version:   version,
		Commit:    commit,
		Date:      date,
		GoVersion: runtime.Version(),
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		info.Version = cmp.Or(info.Version, bi.Main.Version)
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				info.Commit = cmp.Or(info.Commit, shortRevision(s.Value))
			case "vcs.time":
				info.Date = cmp.Or(info.Date, s.Value)
			}
		}
	}

	info.Version = cmp.Or(info.Version, "(devel)")
	info.Commit = cmp.Or(info.Commit, "unknown")
	info.Date = cmp.Or(info.Date, "unknown")
	return info
}

func shortRevision(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

// getVersion returns the version string used by the root command.
func getVersion() string {
	return currentVersion().Version
}

func (v versionInfo) print(out io.Writer) {
	fmt.Fprintf(out, "portfolio version %s\n", v.Version)
	fmt.Fprintf(out, "  commit: %s\n", v.Commit)
	fmt.Fprintf(out, "  built:  %s\n", v.Date)
	fmt.Fprintf(out, "  go:     %s\n", v.GoVersion)
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print the version, commit hash, build date and Go version of portfolio.

With --short only the version is printed, for use in scripts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			short, err := cmd.Flags().GetBool("short")
			if err != nil {
				return err
			}
			info := currentVersion()
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), info.Version)
				return nil
			}
			info.print(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().BoolP("short", "s", false, "Print only the version")

	return cmd
}
