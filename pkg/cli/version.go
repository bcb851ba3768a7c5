package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// version metadata populated via -ldflags at build time
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "keygen %s", Version)
			if Commit != "" {
				fmt.Fprintf(out, " (commit %s)", Commit)
			}
			if Date != "" {
				fmt.Fprintf(out, " built %s", Date)
			}
			fmt.Fprintf(out, " %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
