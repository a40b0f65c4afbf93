package internal

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gookit/color"

	"github.com/avbuild/avbuild/internal/resolve"
)

// printReport renders a resolution report for the operator. The four sets
// come out in catalog order, so two runs in the same environment print
// identically.
func printReport(report *resolve.Report) {
	color.Bold.Println("configure flags:")
	for _, f := range report.EnabledFlags {
		fmt.Println("  " + f)
	}

	printSet(color.Success, "included", report.Included, nil)
	printSet(color.Warn, "skipped (missing)", report.SkippedMissing, report.Reasons)
	printSet(color.Comment, "skipped (not requested)", report.SkippedUnrequested, nil)
	printSet(color.Danger, "unknown (not in catalog)", report.UnknownRequested, nil)
}

func printSet(theme *color.Theme, label string, names []string, reasons map[string]string) {
	if len(names) == 0 {
		return
	}
	theme.Printf("%s (%d):\n", label, len(names))
	for _, name := range names {
		if reason := reasons[name]; reason != "" {
			fmt.Printf("  %-16s %s\n", name, reason)
		} else {
			fmt.Println("  " + name)
		}
	}
}

func printReportJSON(report *resolve.Report) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
