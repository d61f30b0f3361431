package buildinfo_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdelazizMoustafa10m/tealog/internal/buildinfo"
)

func TestGetInfo_DefaultValues(t *testing.T) {
	t.Parallel()

	info := buildinfo.GetInfo()
	assert.Equal(t, buildinfo.Info{Version: "dev", Commit: "unknown", Date: "unknown"}, info)
}

func TestInfoString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		info buildinfo.Info
		want string
	}{
		{
			name: "defaults",
			info: buildinfo.Info{Version: "dev", Commit: "unknown", Date: "unknown"},
			want: "tealog vdev (commit: unknown, built: unknown)",
		},
		{
			name: "release",
			info: buildinfo.Info{Version: "1.2.0", Commit: "a1b2c3d", Date: "2026-02-17T10:00:00Z"},
			want: "tealog v1.2.0 (commit: a1b2c3d, built: 2026-02-17T10:00:00Z)",
		},
		{
			name: "git describe",
			info: buildinfo.Info{Version: "1.2.0-14-gabcdef0-dirty", Commit: "abcdef0", Date: "2026-01-15T08:30:00Z"},
			want: "tealog v1.2.0-14-gabcdef0-dirty (commit: abcdef0, built: 2026-01-15T08:30:00Z)",
		},
		{
			name: "zero value",
			want: "tealog v (commit: , built: )",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.info.String())
		})
	}
}

func TestInfoJSON(t *testing.T) {
	t.Parallel()

	info := buildinfo.Info{Version: "1.2.0", Commit: "a1b2c3d", Date: "2026-02-17T10:00:00Z"}

	data, err := json.Marshal(info)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"1.2.0","commit":"a1b2c3d","date":"2026-02-17T10:00:00Z"}`, string(data))
}
