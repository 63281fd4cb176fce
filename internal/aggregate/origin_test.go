package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"git.home.luguber.info/inful/doccatalog/internal/content"
)

func TestEditURLPattern(t *testing.T) {
	tests := []struct {
		name   string
		origin content.Origin
		want   string
	}{
		{
			name:   "github branch",
			origin: content.Origin{URL: "https://github.com/acme/docs.git", RefName: "main", RefType: content.RefTypeBranch, StartPath: "docs"},
			want:   "https://github.com/acme/docs/edit/main/docs/%s",
		},
		{
			name:   "github tag",
			origin: content.Origin{URL: "https://github.com/acme/docs", RefName: "v1.0", RefType: content.RefTypeTag},
			want:   "https://github.com/acme/docs/blob/v1.0/%s",
		},
		{
			name:   "gitlab subgroup",
			origin: content.Origin{URL: "https://gitlab.com/acme/team/docs.git", RefName: "main", RefType: content.RefTypeBranch},
			want:   "https://gitlab.com/acme/team/docs/-/edit/main/%s",
		},
		{
			name:   "bitbucket branch",
			origin: content.Origin{URL: "https://bitbucket.org/acme/docs", RefName: "main", RefType: content.RefTypeBranch},
			want:   "https://bitbucket.org/acme/docs/src/main/%s?mode=edit",
		},
		{
			name:   "codeberg branch",
			origin: content.Origin{URL: "https://codeberg.org/acme/docs", RefName: "main", RefType: content.RefTypeBranch},
			want:   "https://codeberg.org/acme/docs/_edit/main/%s",
		},
		{
			name:   "pagure",
			origin: content.Origin{URL: "https://pagure.io/docs", RefName: "main", RefType: content.RefTypeBranch},
			want:   "https://pagure.io/docs/blob/main/f/%s",
		},
		{
			name:   "worktree",
			origin: content.Origin{URL: "/srv/docs", RefName: "main", StartPath: "docs", Worktree: true, WorktreePath: "/srv/docs"},
			want:   "file:///srv/docs/docs/%s",
		},
		{
			name:   "unknown host",
			origin: content.Origin{URL: "https://git.example.com/acme/docs.git", RefName: "main"},
			want:   "",
		},
		{
			name:   "local path",
			origin: content.Origin{URL: "/srv/docs", RefName: "main"},
			want:   "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EditURLPattern(&tt.origin))
		})
	}
}

func TestOriginEditURL(t *testing.T) {
	o := &content.Origin{URL: "https://github.com/acme/docs.git", RefName: "main", RefType: content.RefTypeBranch, StartPath: "docs"}
	o.EditURLPattern = EditURLPattern(o)
	assert.Equal(t, "https://github.com/acme/docs/edit/main/docs/modules/ROOT/pages/index.adoc",
		o.EditURL("modules/ROOT/pages/index.adoc"))
}
