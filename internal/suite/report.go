package suite

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
)

func WriteTable(r *Report, w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\n=== Parse Suite: %s ===\n\n", r.SuiteName)

	header := []string{"Case", "Mode", "Status", "Nodes", "Output"}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))

	for _, res := range r.Results {
		status := "OK"
		if !res.Passed() {
			status = "FAIL"
		}
		row := []string{res.CaseID, string(res.Mode), status, strconv.Itoa(res.Nodes), res.Output}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "Passed: %d/%d\n", r.Passed(), len(r.Results))

	for _, res := range r.Results {
		for _, f := range res.Failures {
			fmt.Fprintf(tw, "  %s: %s\n", res.CaseID, f)
		}
	}

	tw.Flush()
}
