package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexio-dev/lexio/db"
	"github.com/lexio-dev/lexio/internal/models"
)

func TestCreateMetadataInvalidObject(t *testing.T) {
	r := setupRouter(t, "")

	w := doJSON(t, r, http.MethodPost, "/metadata", map[string]interface{}{
		"object_id": 9999,
		"key":       "k",
		"value":     "v",
	}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "invalid_object", errorCode(t, w))
}

func TestCreateMetadataIdempotent(t *testing.T) {
	r := setupRouter(t, "")

	objectID := createBareObject(t, r, "obj")

	first := doJSON(t, r, http.MethodPost, "/metadata", map[string]interface{}{
		"object_id": objectID,
		"key":       "color",
		"value":     "red",
	}, "")
	require.Equal(t, http.StatusOK, first.Code, first.Body.String())

	// Same (key, object) with a different value: silently ignored, the
	// stored value survives.
	second := doJSON(t, r, http.MethodPost, "/metadata", map[string]interface{}{
		"object_id": objectID,
		"key":       "color",
		"value":     "blue",
	}, "")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "red", decodeBody(t, second)["value"])

	var count int64
	require.NoError(t, db.DB.Model(&models.MetadataEntry{}).
		Where("object_id = ?", objectID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateMetadataMissingKey(t *testing.T) {
	r := setupRouter(t, "")

	objectID := createBareObject(t, r, "obj")

	w := doJSON(t, r, http.MethodPost, "/metadata", map[string]interface{}{
		"object_id": objectID,
		"value":     "v",
	}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestSameKeyOnDifferentObjects(t *testing.T) {
	r := setupRouter(t, "")

	firstID := createBareObject(t, r, "first")
	secondID := createBareObject(t, r, "second")

	for _, objectID := range []uint{firstID, secondID} {
		w := doJSON(t, r, http.MethodPost, "/metadata", map[string]interface{}{
			"object_id": objectID,
			"key":       "shared",
			"value":     "v",
		}, "")
		require.Equal(t, http.StatusOK, w.Code)
	}

	var count int64
	require.NoError(t, db.DB.Model(&models.MetadataEntry{}).
		Where("key = ?", "shared").Count(&count).Error)
	assert.Equal(t, int64(2), count)
}
