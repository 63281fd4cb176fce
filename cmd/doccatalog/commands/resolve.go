package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/doccatalog/internal/content"
	"git.home.luguber.info/inful/doccatalog/internal/foundation/errors"
	"git.home.luguber.info/inful/doccatalog/internal/resource"
)

// ResolveCmd implements the 'resolve' command.
type ResolveCmd struct {
	References []string `arg:"" help:"References to resolve, e.g. 2.0@comp:mod:page$foo.adoc"`
	Format     string   `short:"f" help:"Output format" enum:"text,json" default:"text"`
	Component  string   `name:"context-component" help:"Component of the referencing file"`
	Version    string   `name:"context-version" help:"Version of the referencing file"`
	Module     string   `name:"context-module" help:"Module of the referencing file" default:"ROOT"`
	Family     string   `help:"Family assumed when a reference names none" enum:"page,partial,image,attachment,example,navigation" default:"page"`
}

type resolution struct {
	Reference string        `json:"reference"`
	ID        string        `json:"id,omitempty"`
	Found     bool          `json:"found"`
	File      *content.File `json:"file,omitempty"`
}

func (r *ResolveCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	defer root.WriteMetrics(g)
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	cat, err := BuildCatalog(ctx, cfg, g.Recorder)
	if err != nil {
		return err
	}
	resolver, err := resource.NewResolver(cat, 0)
	if err != nil {
		return errors.InternalError("create reference resolver").WithCause(err).Build()
	}

	refCtx := resource.Context{Component: r.Component, Version: r.Version, Module: r.Module, Family: content.FamilyPage}
	opts := resource.Options{DefaultFamily: content.Family(r.Family)}

	results := make([]resolution, 0, len(r.References))
	for _, spec := range r.References {
		ref, err := resolver.Parse(spec, refCtx, opts)
		if err != nil {
			return err
		}
		f := resolver.Lookup(ref)
		res := resolution{Reference: spec, Found: f != nil, File: f}
		if f != nil {
			res.ID = f.Src.Key().String()
		}
		results = append(results, res)
	}

	if r.Format == "json" {
		return writeJSON(g.Out, results)
	}
	for _, res := range results {
		switch {
		case !res.Found:
			_, _ = fmt.Fprintf(g.Out, "%s\t<unresolved>\n", res.Reference)
		case res.File.Pub != nil:
			_, _ = fmt.Fprintf(g.Out, "%s\t%s\t%s\n", res.Reference, res.ID, res.File.Pub.URL)
		default:
			_, _ = fmt.Fprintf(g.Out, "%s\t%s\n", res.Reference, res.ID)
		}
	}
	return nil
}
