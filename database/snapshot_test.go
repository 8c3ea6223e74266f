package database_test

import (
	"encoding/json"
	"testing"

	"storefront-service/database"
	"storefront-service/models"

	"github.com/stretchr/testify/assert"
)

func TestDecodeSnapshotRoundTrip(t *testing.T) {
	cart := models.NewCart("s1")
	cart.Add(models.Product{
		ID:    "p1",
		Name:  models.LocalizedText{"en": "Eggs", "fr": "Oeufs"},
		Price: 3.20,
		Stock: 12,
		Vendor: &models.Vendor{
			ID: "farm-a", Name: "Farm A", City: "Lyon",
		},
	}, 2)

	data, err := json.Marshal(cart)
	assert.NoError(t, err)

	decoded, err := database.DecodeSnapshot(data, "s1")
	assert.NoError(t, err)
	assert.Equal(t, 2, decoded.Count())
	assert.Equal(t, "Oeufs", decoded.Lines[0].Name.Get("fr"))
	assert.Equal(t, models.VendorPopulated, decoded.Lines[0].Vendor.Kind)
}

func TestDecodeSnapshotRejectsCorruptData(t *testing.T) {
	_, err := database.DecodeSnapshot([]byte("{not json"), "s1")
	assert.Error(t, err)
}

func TestDecodeSnapshotNormalizesNilLines(t *testing.T) {
	cart, err := database.DecodeSnapshot([]byte(`{"session_id":"old"}`), "s1")
	assert.NoError(t, err)
	assert.NotNil(t, cart.Lines)
	assert.Equal(t, "s1", cart.SessionID, "stored session is overridden by the key owner")
	assert.True(t, cart.IsEmpty())
}
