package capabilities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nationalmap/px3-catalog-server/pkg/capabilities"
)

func TestParseDocument(t *testing.T) {
	t.Parallel()

	t.Run("valid document", func(t *testing.T) {
		t.Parallel()

		body := []byte(`{
			"currentVersion": 10.05,
			"fullExtent": {"xmin": -180, "ymin": -90, "xmax": 180, "ymax": 90},
			"spatialReference": {"wkid": 4326},
			"documentInfo": {"Title": "World Topography"},
			"tileInfo": {
				"cols": 256, "rows": 256, "dpi": 96,
				"origin": {"x": -180, "y": 90},
				"lods": [{"level": 0, "scale": 500000, "resolution": 132.29}]
			},
			"layers": [{"id": 0, "name": "Cities", "minScale": 250000, "maxScale": 0}]
		}`)

		caps, err := capabilities.ParseDocument(body)
		require.NoError(t, err)

		assert.InDelta(t, 10.05, caps.CurrentVersion, 0)
		require.NotNil(t, caps.FullExtent)
		assert.InDelta(t, -180, caps.FullExtent.XMin, 0)
		require.NotNil(t, caps.SpatialReference)
		assert.Equal(t, 4326, caps.SpatialReference.WKID)
		require.NotNil(t, caps.DocumentInfo)
		assert.Equal(t, "World Topography", caps.DocumentInfo.Title)
		require.NotNil(t, caps.TileInfo)
		require.Len(t, caps.TileInfo.LODs, 1)
		assert.InDelta(t, 500000, caps.TileInfo.LODs[0].Scale, 0)
		require.Len(t, caps.Layers, 1)
		assert.Equal(t, "Cities", caps.Layers[0].Name)
	})

	t.Run("embedded error payload", func(t *testing.T) {
		t.Parallel()

		body := []byte(`{"error": {"code": 499, "message": "Token Required"}}`)

		caps, err := capabilities.ParseDocument(body)
		require.Error(t, err)
		assert.Nil(t, caps)

		var svcErr *capabilities.ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, 499, svcErr.Code)
		assert.Equal(t, "Token Required", svcErr.Message)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		t.Parallel()

		caps, err := capabilities.ParseDocument([]byte("<html>not json</html>"))
		require.Error(t, err)
		assert.Nil(t, caps)
		assert.Contains(t, err.Error(), "not valid JSON")
	})

	t.Run("minimal document", func(t *testing.T) {
		t.Parallel()

		caps, err := capabilities.ParseDocument([]byte(`{}`))
		require.NoError(t, err)

		assert.Nil(t, caps.FullExtent)
		assert.Nil(t, caps.TileInfo)
		assert.Empty(t, caps.Layers)
	})
}
