package internal

import (
	"github.com/spf13/cobra"

	"github.com/avbuild/avbuild/internal/catalog"
	"github.com/avbuild/avbuild/internal/probe"
	"github.com/avbuild/avbuild/internal/resolve"
)

var resolveTarget targetFlags
var resolveJSON bool

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve configure flags for the current environment",
	Long: `Resolve probes the environment for the requested features and prints the
configure flags a build would use, together with what was included,
skipped or unknown. Nothing is built.`,
	Args: cobra.NoArgs,
	RunE: runResolve,
}

func init() {
	resolveTarget.register(resolveCmd)
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	req, _, err := resolveTarget.request(cmd)
	if err != nil {
		return err
	}

	resolver := resolve.New(catalog.Builtin(), probe.NewEnv())
	report, err := resolver.Resolve(cmd.Context(), req)
	if err != nil {
		return err
	}

	if resolveJSON {
		return printReportJSON(report)
	}
	printReport(report)
	return nil
}
