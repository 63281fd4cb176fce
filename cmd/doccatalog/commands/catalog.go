package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"git.home.luguber.info/inful/doccatalog/internal/catalog"
	"git.home.luguber.info/inful/doccatalog/internal/content"
	"git.home.luguber.info/inful/doccatalog/internal/foundation/errors"
)

// CatalogCmd implements the 'catalog' command.
type CatalogCmd struct {
	Format     string `short:"f" help:"Output format" enum:"text,json" default:"text"`
	Family     string `help:"Only list files of this family (page, partial, image, attachment, example, navigation)"`
	Component  string `help:"Only list files of this component"`
	Version    string `name:"component-version" help:"Only list files of this component version"`
	Module     string `help:"Only list files of this module"`
	Components bool   `help:"List components and their versions instead of files"`
}

func (c *CatalogCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	defer root.WriteMetrics(g)
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	if c.Family != "" && !content.Family(c.Family).Valid() {
		return errors.ValidationError(fmt.Sprintf("unknown family %q", c.Family)).Build()
	}
	cat, err := BuildCatalog(ctx, cfg, g.Recorder)
	if err != nil {
		return err
	}
	if c.Components {
		return c.listComponents(g, cat)
	}

	files := cat.FindBy(content.Selector{
		Component: c.Component,
		Version:   c.Version,
		Module:    c.Module,
		Family:    content.Family(c.Family),
	})
	if c.Format == "json" {
		return writeJSON(g.Out, files)
	}

	tw := tabwriter.NewWriter(g.Out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tPATH\tURL")
	for _, f := range files {
		url := "-"
		if f.Pub != nil {
			url = f.Pub.URL
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Src.Key(), f.Path, url)
	}
	return tw.Flush()
}

func (c *CatalogCmd) listComponents(g *Global, cat *catalog.Catalog) error {
	components := cat.GetComponents()
	if c.Format == "json" {
		return writeJSON(g.Out, components)
	}

	tw := tabwriter.NewWriter(g.Out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "COMPONENT\tVERSION\tTITLE\tURL")
	for _, comp := range components {
		for _, v := range comp.Versions {
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", comp.Name, displayVersion(v.Version), v.Title, v.URL)
		}
	}
	return tw.Flush()
}
