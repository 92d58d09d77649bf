package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/flowkit/flowkit/pkg/def"
	"github.com/flowkit/flowkit/pkg/fbp"
	"github.com/flowkit/flowkit/pkg/observability"
)

// nodeCount tolerates the nil graph returned by failed loads.
func nodeCount(g *fbp.Graph) int {
	if g == nil {
		return 0
	}
	return len(g.Nodes())
}

// newInfoCmd creates the info command.
func newInfoCmd() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "info <definition>",
		Short: "Load a flow definition and print its structure",
		Long: `Load a flow definition and print its structure.

Reads a JSON definition file and lists the graph's processes, connections
and initial packets. Files with the .fbp extension require an external
flow-language parser and are rejected by the CLI.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			observability.Loader().OnLoadStart(ctx, args[0])
			start := time.Now()
			g, err := def.LoadFile(args[0], nil)
			observability.Loader().OnLoadComplete(ctx, args[0], nodeCount(g), time.Since(start), err)
			if err != nil {
				return err
			}
			logger.Debug("loaded definition", "path", args[0])

			if interactive {
				return browseGraph(g)
			}

			fmt.Println(StyleTitle.Render(g.Name))
			printKeyValue("processes", strconv.Itoa(len(g.Nodes())))
			printKeyValue("connections", strconv.Itoa(len(g.Edges())))
			printKeyValue("initializers", strconv.Itoa(len(g.Initializers())))
			fmt.Println()

			for _, n := range g.Nodes() {
				line := fmt.Sprintf("%s (%s)", n.ID, n.Component)
				if n.Display != nil {
					line += fmt.Sprintf(" @ %d,%d", n.Display.X, n.Display.Y)
				}
				printInfo("%s", line)
			}
			for _, e := range g.Edges() {
				printDetail("%s.%s %s %s.%s", e.From.Node, e.From.Port, iconArrow, e.To.Node, e.To.Port)
			}
			for _, in := range g.Initializers() {
				printDetail("%v %s %s.%s", in.Data, iconArrow, in.To.Node, in.To.Port)
			}

			if err := g.Validate(); err != nil {
				printError("validation: %s", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse processes interactively")
	return cmd
}
