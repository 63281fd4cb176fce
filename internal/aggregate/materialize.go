package aggregate

import (
	"log/slog"
	"path"

	"git.home.luguber.info/inful/doccatalog/internal/content"
	"git.home.luguber.info/inful/doccatalog/internal/git"
	"git.home.luguber.info/inful/doccatalog/internal/logfields"
)

// ComponentVersion is a component version assembled from one or more refs.
// Before merging it holds the files of a single ref.
type ComponentVersion struct {
	Name           string
	Version        string
	Title          string
	DisplayVersion string
	StartPage      string
	Prerelease     string
	Nav            []string
	Files          []*content.File
	// Origins lists every ref that contributed files, in processing order.
	Origins []*content.Origin
}

// MaterializeOptions carry the per-source settings for one ref.
type MaterializeOptions struct {
	StartPath string
	Remote    string
	EditURL   bool
}

// Materialize reads the files of ref and builds its component version
// fragment. The checked-out branch of a local working repository is read
// from the working directory so uncommitted changes are included.
func Materialize(h *git.Handle, ref git.Ref, opts MaterializeOptions) (*ComponentVersion, error) {
	startPath := cleanPath(opts.StartPath)
	worktree := ref.IsHead && !h.Bare && !h.Remote

	var (
		files        []*content.File
		worktreePath string
		err          error
	)
	if worktree {
		files, worktreePath, err = git.ReadWorktree(h, startPath)
	} else {
		files, err = git.ReadTree(h, ref, startPath)
	}
	if err != nil {
		return nil, err
	}

	origin := &content.Origin{
		Type:      "git",
		URL:       git.ResolveRemoteURL(h, opts.Remote),
		RefName:   ref.Name,
		RefType:   ref.Type,
		StartPath: startPath,
		Worktree:  worktree,
	}
	if origin.RefType == "" {
		origin.RefType = content.RefTypeBranch
	}
	if worktree {
		origin.WorktreePath = worktreePath
	}
	if opts.EditURL {
		origin.EditURLPattern = EditURLPattern(origin)
	}
	loc := Location{URL: origin.URL, RefName: ref.Name, RefType: origin.RefType, StartPath: startPath, Worktree: worktree}

	descriptorIdx := -1
	for i, f := range files {
		if f.Path == DescriptorFilename {
			descriptorIdx = i
			break
		}
	}
	if descriptorIdx < 0 {
		return nil, &DescriptorMissingError{Location: loc}
	}
	desc, err := ParseDescriptor(files[descriptorIdx].Contents, loc)
	if err != nil {
		return nil, err
	}
	files = append(files[:descriptorIdx], files[descriptorIdx+1:]...)

	for _, f := range files {
		stampFile(f, origin, startPath)
	}

	slog.Debug("Materialized component version",
		logfields.Component(desc.Name),
		logfields.Version(desc.Version),
		logfields.URL(origin.URL),
		logfields.Ref(ref.Name),
		logfields.Count(len(files)))

	return &ComponentVersion{
		Name:           desc.Name,
		Version:        desc.Version,
		Title:          desc.Title,
		DisplayVersion: desc.DisplayVersion,
		StartPage:      desc.StartPage,
		Prerelease:     desc.Prerelease,
		Nav:            desc.Nav,
		Files:          files,
		Origins:        []*content.Origin{origin},
	}, nil
}

func stampFile(f *content.File, origin *content.Origin, startPath string) {
	mt := content.MediaTypeOf(f.Path, f.Contents)
	f.MediaType = mt
	f.Src.MediaType = mt
	f.Src.Origin = origin
	f.Src.EditURL = origin.EditURL(f.Path)
	f.Src.Abspath = path.Join(startPath, f.Path)
}

func cleanPath(p string) string {
	if p == "" {
		return ""
	}
	p = path.Clean("/" + p)
	if p == "/" {
		return ""
	}
	return p[1:]
}
