package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"Stage", KeyStage, "aggregate", Stage("aggregate")},
		{"Repository", KeyRepo, "repo1", Repository("repo1")},
		{"URL", KeyURL, "http://example", URL("http://example")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"Name", KeyName, "n", Name("n")},
		{"Ref", KeyRef, "main", Ref("main")},
		{"RefType", KeyRefType, "branch", RefType("branch")},
		{"Component", KeyComponent, "the-component", Component("the-component")},
		{"Version", KeyVersion, "1.0", Version("1.0")},
		{"Module", KeyModule, "ROOT", Module("ROOT")},
		{"Family", KeyFamily, "page", Family("page")},
		{"File", KeyFile, "index.adoc", File("index.adoc")},
		{"StartPath", KeyStartPath, "docs", StartPath("docs")},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			// Key drift would break log ingestion schemas.
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if tc.attr.Value.String() != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %s", tc.name, tc.attrVal, tc.attr.Value.String())
		}
	}
}

func TestErrorHelper(t *testing.T) {
	if got := Error(nil); got.Value.String() != "" {
		t.Fatalf("nil error should render empty, got %q", got.Value.String())
	}
	if got := Error(errors.New("boom")); got.Key != KeyError || got.Value.String() != "boom" {
		t.Fatalf("unexpected attr %v", got)
	}
	if got := Count(3); got.Value.Int64() != 3 {
		t.Fatalf("unexpected count %v", got)
	}
}
