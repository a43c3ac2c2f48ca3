package yamlconfig

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/vk/pycacher/internal/config"
)

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	two := 2

	testCases := []struct {
		name      string
		content   string
		want      *config.Model
		expectErr bool
	}{
		{
			name: "all fields",
			content: `
source: $HOME/lib
destination: ${HOME}/out
strip: lexical
log_level: warn
log_format: text
compiler:
  python: python3
  optimize: 2
`,
			want: &config.Model{
				SourceRoot: "/home/dev/lib",
				DestRoot:   "/home/dev/out",
				StripMode:  "lexical",
				LogLevel:   "warn",
				LogFormat:  "text",
				Compiler:   &config.Compiler{Python: "python3", Optimize: &two},
			},
		},
		{
			name:    "empty document",
			content: "",
			want:    &config.Model{},
		},
		{
			name:    "comments only",
			content: "# nothing here\n",
			want:    &config.Model{},
		},
		{
			name:      "unknown key",
			content:   "workers: 4\n",
			expectErr: true,
		},
		{
			name:      "wrong type",
			content:   "compiler:\n  optimize: high\n",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			path := filepath.Join(t.TempDir(), "pycacher.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o644))
			loader := &Loader{Getenv: func(k string) string {
				if k == "HOME" {
					return "/home/dev"
				}
				return ""
			}}

			// --- Act ---
			got, err := loader.Load(context.Background(), path)

			// --- Assert ---
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Model mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoader_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to read YAML file")
}
