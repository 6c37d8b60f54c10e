package services_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"production-ledger/src/models"
	"production-ledger/src/services"
)

func TestWeighingConversion(t *testing.T) {
	t.Run("SC1: kg unit uses net weight directly", func(t *testing.T) {
		item := models.InventoryItem{Unit: models.UnitKG}

		result, err := services.ConvertWeighing(dec("12500"), dec("9500"), item)
		assert.NoError(t, err)
		assertDecimal(t, "3000", result.Quantity)
		assertDecimal(t, "3000", result.NetKg)
	})

	t.Run("SC2: ton unit divides net by 1000", func(t *testing.T) {
		item := models.InventoryItem{Unit: models.UnitTon}

		result, err := services.ConvertWeighing(dec("12500"), dec("9500"), item)
		assert.NoError(t, err)
		assertDecimal(t, "3", result.Quantity)
		assert.Equal(t, models.UnitTon, result.Unit)
		assert.NotEmpty(t, result.Derivation)
	})

	t.Run("SC3: m³ unit applies declared density", func(t *testing.T) {
		// 2400 kg/m³ ⇒ 2.4 ton/m³; 3000 kg = 3 ton ⇒ 1.25 m³
		item := models.InventoryItem{Unit: models.UnitM3, Weight: decPtr("2400")}

		result, err := services.ConvertWeighing(dec("12500"), dec("9500"), item)
		assert.NoError(t, err)
		assertDecimal(t, "1.25", result.Quantity)
	})

	t.Run("SC4: m³ unit without declared weight defaults density to 1", func(t *testing.T) {
		item := models.InventoryItem{Unit: models.UnitM3}

		result, err := services.ConvertWeighing(dec("12500"), dec("9500"), item)
		assert.NoError(t, err)
		assertDecimal(t, "3", result.Quantity)
	})

	t.Run("SC5: quantity is rounded to 3 decimal places", func(t *testing.T) {
		item := models.InventoryItem{Unit: models.UnitTon}

		// net = 1234.5678 kg ⇒ 1.2345678 ton ⇒ 1.235
		result, err := services.ConvertWeighing(dec("1234.5678"), dec("0"), item)
		assert.NoError(t, err)
		assertDecimal(t, "1.235", result.Quantity)
	})

	t.Run("SC6: gross equal to tare is rejected", func(t *testing.T) {
		item := models.InventoryItem{Unit: models.UnitTon}

		_, err := services.ConvertWeighing(dec("9500"), dec("9500"), item)
		assert.ErrorIs(t, err, models.ErrInvalidWeighing)
	})

	t.Run("SC7: gross below tare is rejected", func(t *testing.T) {
		item := models.InventoryItem{Unit: models.UnitTon}

		_, err := services.ConvertWeighing(dec("9000"), dec("9500"), item)
		assert.ErrorIs(t, err, models.ErrInvalidWeighing)
	})

	t.Run("SC8: unsupported unit is rejected", func(t *testing.T) {
		item := models.InventoryItem{Unit: models.UnitUN}

		_, err := services.ConvertWeighing(dec("12500"), dec("9500"), item)
		assert.True(t, errors.Is(err, models.ErrUnsupportedUnit))
	})
}
