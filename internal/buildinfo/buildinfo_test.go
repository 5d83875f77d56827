package buildinfo

import "testing"

func stamp(t *testing.T, version, commit, date, vcsRev, vcsTime string) {
	t.Helper()
	oldV, oldC, oldD, oldVCS := Version, Commit, Date, vcs
	t.Cleanup(func() { Version, Commit, Date, vcs = oldV, oldC, oldD, oldVCS })
	Version, Commit, Date = version, commit, date
	vcs = func() (string, string) { return vcsRev, vcsTime }
}

func TestShort(t *testing.T) {
	tests := []struct {
		version, commit, vcsRev, want string
	}{
		{"dev", "", "", "dev"},
		{"dev", "abc123", "", "abc123"},
		{"v1.2.0", "abc123", "", "v1.2.0"},
		{"", "", "", "dev"},
		{"dev", "", "0123456789abcdef0123", "0123456789ab"},
	}
	for _, tt := range tests {
		stamp(t, tt.version, tt.commit, "", tt.vcsRev, "")
		if got := Short(); got != tt.want {
			t.Fatalf("Short() with %q/%q/%q = %q, want %q", tt.version, tt.commit, tt.vcsRev, got, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	stamp(t, "v0.3.0", "", "", "", "")
	if got, want := String(), "v0.3.0 (commit unknown, built unknown)"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}

	stamp(t, "v0.3.0", "feed", "", "cafe", "2024-12-31T23:59:00Z")
	if got, want := String(), "v0.3.0 (commit feed, built 2024-12-31T23:59:00Z)"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
