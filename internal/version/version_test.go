package version

import (
	"testing"

	"github.com/fatih/color"
)

func withBuildInfo(t *testing.T, version, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = version, commit, date
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})
}

func TestLine(t *testing.T) {
	cases := []struct {
		version, commit, date string
		want                  string
	}{
		{"0.1.0-dev", "", "", "cminus 0.1.0-dev"},
		{"1.2.3", "abc123", "", "cminus 1.2.3 (commit abc123)"},
		{"1.2.3", "abc123", "2024-01-15", "cminus 1.2.3 (commit abc123, built 2024-01-15)"},
		{"1.2.3", "", "2024-01-15", "cminus 1.2.3 (built 2024-01-15)"},
	}
	for _, tc := range cases {
		withBuildInfo(t, tc.version, tc.commit, tc.date)
		if got := Line(false); got != tc.want {
			t.Fatalf("Line() = %q, want %q", got, tc.want)
		}
	}
}

func TestColoredKeepsText(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	for _, v := range []string{"0.1.0-dev", "1.2.3", "1.0.0-rc.1", "weird"} {
		withBuildInfo(t, v, "", "")
		if got := Colored(); got != v {
			t.Fatalf("Colored() = %q, want %q", got, v)
		}
	}
}

func TestColoredAddsEscapes(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = prev })

	withBuildInfo(t, "1.2.3", "", "")
	if got := Colored(); got == "1.2.3" {
		t.Fatalf("expected colored output")
	}
}
