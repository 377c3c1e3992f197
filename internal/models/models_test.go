package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRarity(t *testing.T) {
	for _, r := range Rarities() {
		parsed, err := ParseRarity(string(r))
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
	}

	_, err := ParseRarity("Legendary")
	assert.Error(t, err)
	_, err = ParseRarity("covert")
	assert.Error(t, err, "tiers are case-sensitive on the wire")
}

func TestRarityNextCycles(t *testing.T) {
	assert.Equal(t, RarityConsumer, Rarity("").Next())
	assert.Equal(t, RarityMilSpec, RarityIndustrial.Next())
	assert.Equal(t, RarityConsumer, RarityContraband.Next())

	seen := map[Rarity]bool{}
	r := RarityConsumer
	for i := 0; i < len(rarities); i++ {
		seen[r] = true
		r = r.Next()
	}
	assert.Len(t, seen, 7)
}

func TestRarityUnmarshal(t *testing.T) {
	var skin Skin
	err := json.Unmarshal([]byte(`{"id":"1","rarity":"Covert"}`), &skin)
	require.NoError(t, err)
	assert.Equal(t, RarityCovert, skin.Rarity)

	err = json.Unmarshal([]byte(`{"id":"1","rarity":""}`), &skin)
	require.NoError(t, err)
	assert.Equal(t, Rarity(""), skin.Rarity)

	err = json.Unmarshal([]byte(`{"id":"1","rarity":"Mythical"}`), &skin)
	require.NoError(t, err)
	assert.Equal(t, Rarity("Mythical"), skin.Rarity)
	assert.False(t, skin.Rarity.Valid())
	assert.Error(t, skin.Draft().Validate())
}

func TestDraftValidate(t *testing.T) {
	draft := SkinDraft{
		Name:   "M4A4 | Asiimov",
		Weapon: "M4A4",
		Rarity: RarityCovert,
		Price:  45890,
	}
	assert.NoError(t, draft.Validate())

	t.Run("missing rarity", func(t *testing.T) {
		d := draft
		d.Rarity = ""
		violations := Violations(d.Validate())
		require.Len(t, violations, 1)
		assert.Equal(t, "rarity", violations[0].Field)
		assert.Equal(t, "required", violations[0].Violation)
	})

	t.Run("unknown rarity", func(t *testing.T) {
		d := draft
		d.Rarity = "Exotic"
		violations := Violations(d.Validate())
		require.Len(t, violations, 1)
		assert.Equal(t, "rarity", violations[0].Violation)
	})

	t.Run("negative price and no name", func(t *testing.T) {
		d := draft
		d.Name = ""
		d.Price = -1
		violations := Violations(d.Validate())
		require.Len(t, violations, 2)
		fields := []string{violations[0].Field, violations[1].Field}
		assert.ElementsMatch(t, []string{"name", "price"}, fields)
	})

	t.Run("float value is not validated", func(t *testing.T) {
		d := draft
		d.FloatValue = 3.5
		assert.NoError(t, d.Validate())
	})
}

func TestDraftRoundTrip(t *testing.T) {
	skin := Skin{
		ID:          "1",
		Name:        "AK-47 | Redline",
		Weapon:      "AK-47",
		Rarity:      RarityClassified,
		Wear:        "Field-Tested",
		Price:       15420,
		ImageURL:    "https://cdn.example/ak.png",
		FloatValue:  0.28,
		OwnerName:   "Admin",
		IsAvailable: true,
		Stickers:    []string{"Crown (Foil)"},
	}
	assert.Equal(t, skin, skin.Draft().Skin("1"))

	draft := skin.Draft()
	draft.Stickers[0] = "changed"
	assert.Equal(t, "Crown (Foil)", skin.Stickers[0], "draft must not alias the record")
}

func TestTradeStatusValidation(t *testing.T) {
	assert.NoError(t, Validate.Struct(TradeStatusUpdate{ID: "t1", Status: TradeAccepted}))
	assert.Error(t, Validate.Struct(TradeStatusUpdate{ID: "t1", Status: "done"}))
	assert.Error(t, Validate.Struct(TradeStatusUpdate{Status: TradeAccepted}))
}

func TestViolationsNonValidationError(t *testing.T) {
	assert.Nil(t, Violations(nil))
	v := Violations(assert.AnError)
	require.Len(t, v, 1)
	assert.Empty(t, v[0].Field)
}
