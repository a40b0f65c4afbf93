package internal

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avbuild/avbuild/internal/catalog"
)

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "List the feature catalog",
	Long: `Features lists every feature avbuild knows about: its tier (default or
opt-in), how it is detected and which configure flags it emits.`,
	Args: cobra.NoArgs,
	Run:  runFeatures,
}

func init() {
	rootCmd.AddCommand(featuresCmd)
}

func runFeatures(cmd *cobra.Command, args []string) {
	for _, spec := range catalog.Builtin().Specs() {
		tier := "opt-in"
		if spec.Default {
			tier = "default"
		}
		detect := spec.Strategy.String()
		if spec.Target != "" {
			detect += " " + spec.Target
		}
		fmt.Printf("%-16s %-8s %-28s %s\n", spec.Name, tier, detect, strings.Join(spec.Flags, " "))
	}
}
