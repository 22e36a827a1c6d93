package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBranch(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		referer string
		want    *string
	}{
		{name: "query wins over referer", query: "dev", referer: "https://github.com/ovh/cds/tree/main", want: ptr("dev")},
		{name: "tree referer", referer: "https://example/TEST/wf1/tree/main", want: ptr("main")},
		{name: "tree referer keeps slashes", referer: "https://github.com/ovh/cds/tree/feat/badge", want: ptr("feat/badge")},
		{name: "src referer trims trailing slash", referer: "https://bitbucket.org/team/repo/src/develop/", want: ptr("develop")},
		{name: "src referer without slash", referer: "https://bitbucket.org/team/repo/src/develop", want: ptr("develop")},
		{name: "tree takes precedence over src", referer: "https://host/src/x/tree/main", want: ptr("main")},
		{name: "empty tree remainder", referer: "https://github.com/ovh/cds/tree/"},
		{name: "empty src remainder", referer: "https://bitbucket.org/team/repo/src/"},
		{name: "unrelated referer", referer: "https://example.com/dashboard"},
		{name: "nothing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveBranch(tt.query, tt.referer)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func ptr(s string) *string {
	return &s
}
