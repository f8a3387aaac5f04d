package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nationalmap/px3-catalog-server/internal/schema"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name: "valid document",
			input: `{
				"services": {"a": {"url": "https://gis.example.com/a", "type": "tiled"}},
				"serviceGroups": {"base": ["a"]},
				"mapConfig": {"fullExtentId": "world", "backgroundMaps": [{"serviceGroupId": "base"}]}
			}`,
		},
		{
			name:  "empty document",
			input: `{}`,
		},
		{
			name:  "unknown sections allowed",
			input: `{"futureSection": {"anything": true}}`,
		},
		{
			name:    "service missing url",
			input:   `{"services": {"a": {"type": "tiled"}}}`,
			wantErr: "does not match the catalog schema",
		},
		{
			name:    "service with unknown type",
			input:   `{"services": {"a": {"url": "https://x", "type": "wms"}}}`,
			wantErr: "does not match the catalog schema",
		},
		{
			name:    "service group not an array",
			input:   `{"serviceGroups": {"base": {"a": 1}}}`,
			wantErr: "does not match the catalog schema",
		},
		{
			name:    "background map missing group id",
			input:   `{"mapConfig": {"backgroundMaps": [{"displayName": "Base"}]}}`,
			wantErr: "does not match the catalog schema",
		},
		{
			name:    "not JSON",
			input:   `services:`,
			wantErr: "not valid JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := schema.Validate([]byte(tt.input))
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
