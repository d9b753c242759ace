package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

const modulePath = "github.com/aiham/dymaxion"

// Version is set at build time with -ldflags "-X github.com/aiham/dymaxion/internal/cli.Version=...".
var Version = "dev"

type versionInfo struct {
	Version string `json:"version"`
	Module  string `json:"module"`
	Go      string `json:"go"`
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the dymaxion version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := versionInfo{Version: Version, Module: modulePath, Go: runtime.Version()}
			if a.flags.jsonMode {
				return writeJSON(cmd, info)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "dymaxion %s\nmodule: %s\n", info.Version, info.Module)
			return nil
		},
	}
}
