package route

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/mvoelker/tourmaline/pkg/tsp"
)

// RenderText produces a plain-text summary of the solution, suitable for
// writing next to the graphical artifacts or piping into other tools.
func RenderText(inst *tsp.Instance, sol *tsp.Solution) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Instance: %s (%d cities)\n", inst.Name, inst.Dim())
	fmt.Fprintf(&buf, "Minimum cost: %s\n", formatDistance(sol.Cost))
	fmt.Fprintf(&buf, "Optimal path: %s\n", sol.Tour.Format(inst.Labels))
	buf.WriteString("Legs:\n")
	for _, leg := range sol.Legs {
		fmt.Fprintf(&buf, "  %s -> %s: %s\n",
			inst.Label(leg.From), inst.Label(leg.To), formatDistance(leg.Distance))
	}
	return buf.Bytes()
}

// formatDistance prints distances without a forced decimal tail: 80, not
// 80.000000.
func formatDistance(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
