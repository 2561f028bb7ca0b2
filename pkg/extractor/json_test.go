package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{
			name:  "bare object",
			input: `{"company": "Zypp"}`,
			want:  `{"company": "Zypp"}`,
			ok:    true,
		},
		{
			name:  "markdown code fence",
			input: "Here is the data:\n```json\n{\"company\": \"Zypp\"}\n```\n",
			want:  `{"company": "Zypp"}`,
			ok:    true,
		},
		{
			name:  "prose before and after",
			input: `Sure! The extracted fields are {"company": "Acme", "amount": "$3M"} as requested.`,
			want:  `{"company": "Acme", "amount": "$3M"}`,
			ok:    true,
		},
		{
			name:  "nested object",
			input: `{"company": "Acme", "meta": {"round": "Seed"}}`,
			want:  `{"company": "Acme", "meta": {"round": "Seed"}}`,
			ok:    true,
		},
		{
			name:  "brace inside string",
			input: `{"description": "uses {braces} internally", "company": "Acme"}`,
			want:  `{"description": "uses {braces} internally", "company": "Acme"}`,
			ok:    true,
		},
		{
			name:  "no object",
			input: "I could not extract anything.",
			ok:    false,
		},
		{
			name:  "unbalanced",
			input: `{"company": "Acme"`,
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := firstJSONObject(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
