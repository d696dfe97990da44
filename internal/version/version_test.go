package version

import (
	"runtime/debug"
	"testing"
)

func TestFromBuildSettings(t *testing.T) {
	savedV, savedC := Version, Commit
	defer func() { Version, Commit = savedV, savedC }()

	tests := []struct {
		name        string
		settings    []debug.BuildSetting
		wantVersion string
		wantCommit  string
	}{
		{
			name: "clean checkout",
			settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "0123456789abcdef"},
				{Key: "vcs.time", Value: "2026-03-14T09:26:53Z"},
				{Key: "vcs.modified", Value: "false"},
			},
			wantVersion: "dev-20260314",
			wantCommit:  "0123456",
		},
		{
			name: "dirty tree",
			settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "abc"},
				{Key: "vcs.modified", Value: "true"},
			},
			wantVersion: "",
			wantCommit:  "abc-dirty",
		},
		{
			name:        "no vcs",
			wantVersion: "",
			wantCommit:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, Commit = "", ""
			fromBuildSettings(tt.settings)
			if Version != tt.wantVersion || Commit != tt.wantCommit {
				t.Errorf("got %q/%q, want %q/%q", Version, Commit, tt.wantVersion, tt.wantCommit)
			}
		})
	}
}

func TestFromBuildSettingsKeepsStamped(t *testing.T) {
	savedV, savedC := Version, Commit
	defer func() { Version, Commit = savedV, savedC }()

	Version, Commit = "v0.3.0", "feedbee"
	fromBuildSettings([]debug.BuildSetting{{Key: "vcs.revision", Value: "0123456789"}})
	if Full() != "v0.3.0 (commit: feedbee)" {
		t.Errorf("Full() = %q", Full())
	}
}
