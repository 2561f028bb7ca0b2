package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsFundingRelated(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		want        bool
	}{
		{
			name:  "raises in title",
			title: "Zypp Electric raises $3M to expand EV fleet",
			want:  true,
		},
		{
			name:        "funding in description",
			title:       "Startup news roundup",
			description: "The company announced a funding round led by Accel.",
			want:        true,
		},
		{
			name:  "series keyword case-insensitive",
			title: "Acme closes SERIES B",
			want:  true,
		},
		{
			name:  "crore amount",
			title: "Healthtech startup bags Rs 40 crore",
			want:  true,
		},
		{
			name:  "currency symbol",
			title: "Acme lands $10 million from investors",
			want:  true,
		},
		{
			name:        "unrelated article",
			title:       "New phone launches next week",
			description: "Hands-on with the latest flagship.",
			want:        false,
		},
		{
			name: "empty input",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFundingRelated(tt.title, tt.description))
		})
	}
}
