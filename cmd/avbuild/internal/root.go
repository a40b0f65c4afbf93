package internal

import (
	"os"

	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "avbuild",
	Short: "avbuild compiles FFmpeg from source",
	Long: `avbuild compiles the FFmpeg media toolkit from source. It probes the
build environment for optional codec libraries, resolves the requested
feature set into configure flags for the target platform, and falls back
to a minimal built-in-codecs configuration if the full one is rejected.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetOutputLevel(log.Ldebug)
		} else {
			log.SetOutputLevel(log.Lwarn)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
