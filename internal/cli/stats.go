package cli

import (
	"fmt"
	"io"

	"github.com/rumsan/docsctl/internal/metrics"
)

// printStats displays request statistics collected during the command.
func printStats(w io.Writer, snap metrics.Snapshot) {
	fmt.Fprintf(w, "\nRequest Statistics\n")
	fmt.Fprintf(w, "═══════════════════════════════════════\n")
	fmt.Fprintf(w, "Elapsed: %.1f seconds\n", snap.UptimeSeconds)

	if len(snap.Operations) == 0 {
		fmt.Fprintf(w, "No requests made.\n")
		return
	}
	for _, op := range snap.Operations {
		fmt.Fprintf(w, "\n%s:\n", op.Name)
		printOpStats(w, op)
	}
}

// printOpStats displays timing statistics for an operation.
func printOpStats(w io.Writer, op metrics.OperationSnapshot) {
	fmt.Fprintf(w, "  Calls: %d, Failures: %d, Total: %dms\n", op.Count, op.Failures, op.TotalTimeMs)
	fmt.Fprintf(w, "  Time: avg %.1fms, min %dms, max %dms\n",
		op.AvgTimeMs, op.MinTimeMs, op.MaxTimeMs)
}
