package commands

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"git.home.luguber.info/inful/doccatalog/internal/aggregate"
	"git.home.luguber.info/inful/doccatalog/internal/content"
)

// AggregateCmd implements the 'aggregate' command.
type AggregateCmd struct {
	Format string `short:"f" help:"Output format" enum:"text,json" default:"text"`
}

type componentVersionSummary struct {
	Name           string            `json:"name"`
	Version        string            `json:"version"`
	Title          string            `json:"title"`
	DisplayVersion string            `json:"displayVersion,omitempty"`
	Prerelease     string            `json:"prerelease,omitempty"`
	StartPage      string            `json:"startPage,omitempty"`
	Nav            []string          `json:"nav,omitempty"`
	Files          int               `json:"files"`
	Origins        []*content.Origin `json:"origins"`
}

func (a *AggregateCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	defer root.WriteMetrics(g)
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	cvs, err := AggregateContent(ctx, cfg, g.Recorder)
	if err != nil {
		return err
	}

	summaries := make([]componentVersionSummary, 0, len(cvs))
	for _, cv := range cvs {
		summaries = append(summaries, summarize(cv))
	}
	if a.Format == "json" {
		return writeJSON(g.Out, summaries)
	}

	tw := tabwriter.NewWriter(g.Out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "COMPONENT\tVERSION\tTITLE\tFILES\tORIGINS")
	for _, s := range summaries {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", s.Name, displayVersion(s.Version), s.Title, s.Files, describeOrigins(s.Origins))
	}
	return tw.Flush()
}

func summarize(cv *aggregate.ComponentVersion) componentVersionSummary {
	return componentVersionSummary{
		Name:           cv.Name,
		Version:        cv.Version,
		Title:          cv.Title,
		DisplayVersion: cv.DisplayVersion,
		Prerelease:     cv.Prerelease,
		StartPage:      cv.StartPage,
		Nav:            cv.Nav,
		Files:          len(cv.Files),
		Origins:        cv.Origins,
	}
}

func describeOrigins(origins []*content.Origin) string {
	parts := make([]string, 0, len(origins))
	for _, o := range origins {
		part := o.URL + "@" + o.RefName
		if o.Worktree {
			part += " <worktree>"
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ", ")
}

func displayVersion(v string) string {
	if v == "" {
		return "~"
	}
	return v
}
