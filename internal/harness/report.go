package harness

import (
	"fmt"
	"io"
)

// writeResults prints one line per result in sorted order, then a
// blank separator line. The layout is fixed: variant name padded to 50
// columns, dtype, size padded to 4, duration in microseconds, and
// throughput in GB/s, both with two decimals.
func writeResults(w io.Writer, results []ProfileResult) {
	for _, r := range results {
		fmt.Fprintf(w, "%-50s %s size=%-4d %.2f us %.2f GB/s\n",
			r.Variant, r.DType, r.Size, r.Duration.Seconds()*1e6, r.Throughput)
	}
	fmt.Fprintln(w)
}
