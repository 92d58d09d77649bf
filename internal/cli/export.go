package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/flowkit/flowkit/pkg/cache"
	"github.com/flowkit/flowkit/pkg/def"
	ferrors "github.com/flowkit/flowkit/pkg/errors"
	"github.com/flowkit/flowkit/pkg/fbp"
	"github.com/flowkit/flowkit/pkg/observability"
	"github.com/flowkit/flowkit/pkg/render"
)

// artifactTTL bounds how long rendered SVG/PNG artifacts stay cached.
const artifactTTL = 7 * 24 * time.Hour

// newExportCmd creates the export command.
func newExportCmd(configPath *string) *cobra.Command {
	var (
		format  string
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "export <definition>",
		Short: "Convert a flow definition to another format",
		Long: `Convert a flow definition to another format.

Formats:
  json   canonical JSON definition (written as <output>.json)
  dot    Graphviz DOT text
  yuml   yUML diagram notation
  svg    rendered SVG (via Graphviz)
  png    rendered PNG (via Graphviz)

SVG and PNG artifacts are cached locally; use --no-cache to force a
fresh render.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			observability.Loader().OnLoadStart(ctx, args[0])
			start := time.Now()
			g, err := def.LoadFile(args[0], nil)
			observability.Loader().OnLoadComplete(ctx, args[0], nodeCount(g), time.Since(start), err)
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			switch format {
			case "json":
				path := output
				if path == "" {
					path = g.Name
				}
				written, err := def.Save(g, path)
				if err != nil {
					return err
				}
				prog.done("Exported JSON")
				printFile(written)
				return nil

			case "dot":
				return writeText(render.ToDOT(g), output)

			case "yuml":
				return writeText(render.ToYUML(g), output)

			case "svg", "png":
				if output == "" {
					output = g.Name + "." + format
				}
				data, cached, err := renderArtifact(ctx, cfg, g, format, noCache)
				if err != nil {
					return err
				}
				if err := os.WriteFile(output, data, 0644); err != nil {
					return fmt.Errorf("write %s: %w", output, err)
				}
				if cached {
					prog.done("Rendered " + format + " (cached)")
				} else {
					prog.done("Rendered " + format)
				}
				printFile(output)
				return nil

			default:
				return ferrors.New(ferrors.ErrCodeInvalidFormat, "unknown format %q", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, dot, yuml, svg, png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default derived from the graph name)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render artifact cache")

	return cmd
}

// writeText writes text output to a file, or stdout when no path is given.
func writeText(text, output string) error {
	if output == "" {
		fmt.Print(text)
		if len(text) > 0 && text[len(text)-1] != '\n' {
			fmt.Println()
		}
		return nil
	}
	if err := os.WriteFile(output, []byte(text), 0644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printFile(output)
	return nil
}

// renderArtifact renders the graph as svg or png, consulting the artifact
// cache first. The boolean reports whether the result was a cache hit.
func renderArtifact(ctx context.Context, cfg Config, g *fbp.Graph, format string, noCache bool) ([]byte, bool, error) {
	c, err := openCache(ctx, cfg, noCache)
	if err != nil {
		return nil, false, err
	}
	defer c.Close()

	key := cache.ArtifactKey(render.ToDOT(g), format)
	if data, hit, err := c.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	spinner := newSpinnerWithContext(ctx, "Rendering "+format+"...")
	spinner.Start()

	observability.Render().OnRenderStart(ctx, format)
	start := time.Now()
	var data []byte
	if format == "svg" {
		data, err = render.RenderSVG(g)
	} else {
		data, err = render.RenderPNG(g)
	}
	observability.Render().OnRenderComplete(ctx, format, len(data), time.Since(start), err)
	spinner.Stop()

	if err != nil {
		return nil, false, ferrors.Wrap(ferrors.ErrCodeRender, err, "render %s", format)
	}

	if err := c.Set(ctx, key, data, artifactTTL); err == nil {
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return data, false, nil
}
