package internal

import (
	"fmt"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/avbuild/avbuild/internal/catalog"
	"github.com/avbuild/avbuild/internal/probe"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Probe every catalog feature and report availability",
	Args:  cobra.NoArgs,
	RunE:  runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	prober := probe.NewEnv()
	for _, spec := range catalog.Builtin().Specs() {
		result := prober.Probe(cmd.Context(), spec)
		if result.Available {
			color.Success.Printf("%-16s ok\n", spec.Name)
		} else {
			color.Warn.Printf("%-16s ", spec.Name)
			fmt.Println(result.Reason)
		}
	}
	return nil
}
