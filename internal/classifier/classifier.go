// Package classifier assigns aggregated files to families and builds the
// content catalog.
//
// Classification is driven by a fixed directory grammar rooted at
// modules/<module>/. Files outside the grammar are dropped. Publishable
// families get an output location and a publication URL derived from the
// configured HTML extension style.
package classifier

import (
	"fmt"
	"log/slog"
	"path"

	"git.home.luguber.info/inful/doccatalog/internal/aggregate"
	"git.home.luguber.info/inful/doccatalog/internal/catalog"
	"git.home.luguber.info/inful/doccatalog/internal/config"
	"git.home.luguber.info/inful/doccatalog/internal/content"
	"git.home.luguber.info/inful/doccatalog/internal/logfields"
	"git.home.luguber.info/inful/doccatalog/internal/metrics"
	"git.home.luguber.info/inful/doccatalog/internal/resource"
	"git.home.luguber.info/inful/doccatalog/internal/versioning"
)

const (
	stageClassify    = "classify"
	defaultStartPage = "index.adoc"
)

// Options controls classification.
type Options struct {
	Style config.HTMLExtensionStyle
	// SiteURL, when set, is prefixed to publication URLs to form absolute URLs.
	SiteURL    string
	Comparator versioning.Comparator
	Recorder   metrics.Recorder
}

// OptionsFromConfig derives classification options from a playbook.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{Style: cfg.URLs.HTMLExtensionStyle, SiteURL: cfg.Site.URL}
}

// ClassifyContent classifies the files of every component version and
// returns the populated catalog. Files are classified in place.
func ClassifyContent(cvs []*aggregate.ComponentVersion, opts Options) (cat *catalog.Catalog, err error) {
	recorder := metrics.Or(opts.Recorder)
	done := metrics.Timer(recorder, stageClassify)
	defer func() { done(err) }()

	if opts.Style == "" {
		opts.Style = config.HTMLExtensionDefault
	}
	var catOpts []catalog.Option
	if opts.Comparator != nil {
		catOpts = append(catOpts, catalog.WithComparator(opts.Comparator))
	}
	cat = catalog.New(catOpts...)

	perFamily := make(map[content.Family]int)
	for _, cv := range cvs {
		for _, f := range cv.Files {
			if !classifyFile(f, cv, opts) {
				slog.Debug("Ignoring file outside content grammar",
					logfields.Component(cv.Name),
					logfields.Version(cv.Version),
					logfields.Path(f.Path))
				continue
			}
			if err := cat.AddFile(f); err != nil {
				return nil, err
			}
			perFamily[f.Src.Family]++
		}
		if err := registerStartPage(cat, cv, opts); err != nil {
			return nil, err
		}
	}

	for _, family := range content.Families {
		if n := perFamily[family]; n > 0 {
			recorder.AddCatalogFiles(string(family), n)
		}
	}
	slog.Info("Content classified",
		logfields.Stage(stageClassify),
		slog.Int("component_versions", len(cvs)),
		logfields.Count(cat.Size()))
	return cat, nil
}

// classifyFile fills the identity and publication fields of f. It reports
// false when the file belongs to no family.
func classifyFile(f *content.File, cv *aggregate.ComponentVersion, opts Options) bool {
	part := PartitionPath(f.Path, cv.Nav)
	if part.Ignored() {
		return false
	}

	src := &f.Src
	src.Component = cv.Name
	src.Version = cv.Version
	src.Module = part.Module
	src.Family = part.Family
	src.Relative = part.Relative
	src.Basename = path.Base(part.Relative)
	src.Stem, src.Extname = content.SplitName(src.Basename)
	if src.MediaType == "" {
		src.MediaType = f.MediaType
	}

	switch {
	case part.Family == content.FamilyNavigation:
		f.Nav = &content.NavInfo{Index: part.NavIndex}
		f.Pub = ComputePub(src, nil, opts.Style, opts.SiteURL)
	case part.Family.Publishable():
		f.Out = ComputeOut(src, opts.Style)
		f.Pub = ComputePub(src, f.Out, opts.Style, opts.SiteURL)
	}
	return true
}

// registerStartPage resolves the component version's start page and
// registers the version with its URL. A start page that cannot be found
// falls back to the version's index URL.
func registerStartPage(cat *catalog.Catalog, cv *aggregate.ComponentVersion, opts Options) error {
	spec := cv.StartPage
	if spec == "" {
		spec = defaultStartPage
	}
	ctx := resource.Context{Component: cv.Name, Version: cv.Version, Module: content.RootModule, Family: content.FamilyPage}

	var url string
	page, err := resource.Resolve(cat, spec, ctx, resource.Options{
		DefaultFamily: content.FamilyPage,
		Permitted:     []content.Family{content.FamilyPage},
	})
	switch {
	case err != nil:
		slog.Warn("Start page reference is invalid",
			logfields.Component(cv.Name),
			logfields.Version(cv.Version),
			slog.String("start_page", spec),
			logfields.Error(err))
	case page == nil && cv.StartPage != "":
		slog.Warn("Start page not found",
			logfields.Component(cv.Name),
			logfields.Version(cv.Version),
			slog.String("start_page", spec))
	case page != nil:
		url = page.Pub.URL
	}
	if url == "" {
		url = indexURL(cv, opts)
	}

	registered, err := cat.RegisterComponentVersion(cv.Name, cv.Version, cv.Title, url)
	if err != nil {
		return fmt.Errorf("register %s@%s: %w", cv.Version, cv.Name, err)
	}
	registered.DisplayVersion = cv.DisplayVersion
	registered.Prerelease = cv.Prerelease
	return nil
}

// indexURL is the URL the ROOT index page of cv would be published at.
func indexURL(cv *aggregate.ComponentVersion, opts Options) string {
	src := &content.Src{
		Component: cv.Name,
		Version:   cv.Version,
		Module:    content.RootModule,
		Family:    content.FamilyPage,
		Relative:  defaultStartPage,
		Basename:  defaultStartPage,
		Stem:      "index",
		Extname:   ".adoc",
	}
	return ComputePub(src, ComputeOut(src, opts.Style), opts.Style, "").URL
}
