package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"production-ledger/src/models"
	"production-ledger/src/services"
)

func setupBritagem(t *testing.T, env *testEnv) (rock, gravel1, gravel0 models.InventoryItem, formula models.ProductionFormula) {
	t.Helper()
	rock = env.mustCreateItem(t, "Pedra Bruta", models.UnitTon, "500", "40", nil)
	gravel1 = env.mustCreateItem(t, "Brita 1", models.UnitTon, "0", "95", nil)
	gravel0 = env.mustCreateItem(t, "Brita 0", models.UnitTon, "0", "105", nil)

	formula = env.Production.CreateFormula(services.CreateFormulaRequest{
		Name: "Britagem padrão",
		Type: models.FormulaBritagem,
		Ingredients: []models.FormulaIngredient{
			{ProductID: rock.ID, Qty: dec("1"), Unit: models.UnitTon},
		},
		Outputs: []models.FormulaOutput{
			{ProductID: gravel1.ID, Percentage: dec("60")},
			{ProductID: gravel0.ID, Percentage: dec("30")},
		},
	})
	return rock, gravel1, gravel0, formula
}

func TestProductionStart(t *testing.T) {
	t.Run("SC1: britagem deducts only the primary input 1:1", func(t *testing.T) {
		env := newTestEnv(false)
		rock, _, _, formula := setupBritagem(t, env)

		order := env.mustCreateOrder(t, "OP-001", formula.ID, "100")

		started, err := env.Production.Start(order.ID)
		assert.NoError(t, err)
		assert.Equal(t, models.OrderEmProducao, started.Status)
		assert.Equal(t, 10, started.Progress)
		assert.True(t, started.RawMaterialsDeducted)

		current, _ := env.Stock.GetItem(rock.ID)
		assertDecimal(t, "400", current.Quantity)
	})

	t.Run("SC2: composicao deducts every ingredient scaled by batch size", func(t *testing.T) {
		env := newTestEnv(false)
		cement := env.mustCreateItem(t, "Cimento", models.UnitKG, "1000", "1", nil)
		sand := env.mustCreateItem(t, "Areia", models.UnitM3, "100", "80", nil)
		concrete := env.mustCreateItem(t, "Concreto", models.UnitM3, "0", "350", nil)

		formula := env.Production.CreateFormula(services.CreateFormulaRequest{
			Name: "Concreto usinado",
			Type: models.FormulaComposicao,
			Ingredients: []models.FormulaIngredient{
				{ProductID: cement.ID, Qty: dec("300"), Unit: models.UnitKG},
				{ProductID: sand.ID, Qty: dec("0.5"), Unit: models.UnitM3},
			},
			OutputProductID: concrete.ID,
		})

		order := env.mustCreateOrder(t, "OP-002", formula.ID, "2")

		_, err := env.Production.Start(order.ID)
		assert.NoError(t, err)

		c, _ := env.Stock.GetItem(cement.ID)
		s, _ := env.Stock.GetItem(sand.ID)
		assertDecimal(t, "400", c.Quantity) // 1000 - 300*2
		assertDecimal(t, "99", s.Quantity)  // 100 - 0.5*2
	})

	t.Run("SC3: repeated start deducts raw materials exactly once", func(t *testing.T) {
		env := newTestEnv(false)
		rock, _, _, formula := setupBritagem(t, env)

		order := env.mustCreateOrder(t, "OP-003", formula.ID, "100")

		_, err := env.Production.Start(order.ID)
		assert.NoError(t, err)
		again, err := env.Production.Start(order.ID)
		assert.NoError(t, err)
		assert.True(t, again.RawMaterialsDeducted)

		current, _ := env.Stock.GetItem(rock.ID)
		assertDecimal(t, "400", current.Quantity, "second start must not touch stock")
	})

	t.Run("SC4: missing formula skips deduction but still transitions", func(t *testing.T) {
		env := newTestEnv(false)
		order := env.mustCreateOrder(t, "OP-004", "missing", "100")

		started, err := env.Production.Start(order.ID)
		assert.ErrorIs(t, err, models.ErrFormulaNotFound)
		assert.Equal(t, models.OrderEmProducao, started.Status)
		assert.False(t, started.RawMaterialsDeducted)
	})

	t.Run("SC5: strict mode refuses a batch the stock cannot cover", func(t *testing.T) {
		env := newTestEnv(true)
		rock, _, _, formula := setupBritagem(t, env)

		order := env.mustCreateOrder(t, "OP-005", formula.ID, "600")

		_, err := env.Production.Start(order.ID)
		assert.ErrorIs(t, err, models.ErrInsufficientStock)

		// Nothing consumed, order untouched.
		current, _ := env.Stock.GetItem(rock.ID)
		assertDecimal(t, "500", current.Quantity)
		kept, _ := env.Production.GetOrder(order.ID)
		assert.Equal(t, models.OrderPlanejado, kept.Status)
		assert.False(t, kept.RawMaterialsDeducted)
	})
}

func TestProductionComplete(t *testing.T) {
	t.Run("SC6: britagem splits yield by output percentage", func(t *testing.T) {
		env := newTestEnv(false)
		_, gravel1, gravel0, formula := setupBritagem(t, env)

		order := env.mustCreateOrder(t, "OP-010", formula.ID, "100")
		env.Production.Start(order.ID)
		env.Production.SendToQuality(order.ID)

		completed, err := env.Production.Complete(order.ID)
		assert.NoError(t, err)
		assert.Equal(t, models.OrderFinalizado, completed.Status)
		assert.Equal(t, 100, completed.Progress)

		g1, _ := env.Stock.GetItem(gravel1.ID)
		g0, _ := env.Stock.GetItem(gravel0.ID)
		assertDecimal(t, "60", g1.Quantity)
		assertDecimal(t, "30", g0.Quantity)
		// 10% modeled loss: total yield 90 out of 100, order quantity unchanged.
		assertDecimal(t, "100", completed.Quantity)
	})

	t.Run("SC7: composicao credits the single output 1:1", func(t *testing.T) {
		env := newTestEnv(false)
		water := env.mustCreateItem(t, "Água", models.UnitL, "1000", "0", nil)
		mortar := env.mustCreateItem(t, "Argamassa", models.UnitKG, "0", "2", nil)

		formula := env.Production.CreateFormula(services.CreateFormulaRequest{
			Name: "Argamassa",
			Type: models.FormulaComposicao,
			Ingredients: []models.FormulaIngredient{
				{ProductID: water.ID, Qty: dec("10"), Unit: models.UnitL},
			},
			OutputProductID: mortar.ID,
		})

		order := env.mustCreateOrder(t, "OP-011", formula.ID, "40")
		env.Production.Start(order.ID)

		_, err := env.Production.Complete(order.ID)
		assert.NoError(t, err)

		m, _ := env.Stock.GetItem(mortar.ID)
		assertDecimal(t, "40", m.Quantity)
	})

	t.Run("SC8: repeated complete credits yield exactly once", func(t *testing.T) {
		env := newTestEnv(false)
		_, gravel1, _, formula := setupBritagem(t, env)

		order := env.mustCreateOrder(t, "OP-012", formula.ID, "100")
		env.Production.Start(order.ID)

		_, err := env.Production.Complete(order.ID)
		assert.NoError(t, err)

		_, err = env.Production.Complete(order.ID)
		assert.ErrorIs(t, err, models.ErrOrderFinalized)

		g1, _ := env.Stock.GetItem(gravel1.ID)
		assertDecimal(t, "60", g1.Quantity, "double complete must not double-credit")
	})

	t.Run("SC9: complete is rejected from Planejado", func(t *testing.T) {
		env := newTestEnv(false)
		_, _, _, formula := setupBritagem(t, env)

		order := env.mustCreateOrder(t, "OP-013", formula.ID, "10")

		_, err := env.Production.Complete(order.ID)
		assert.ErrorIs(t, err, models.ErrInvalidTransition)
	})
}

func TestProductionLifecycle(t *testing.T) {
	t.Run("SC10: quality stage sets progress 90 without stock effect", func(t *testing.T) {
		env := newTestEnv(false)
		rock, _, _, formula := setupBritagem(t, env)

		order := env.mustCreateOrder(t, "OP-020", formula.ID, "50")
		env.Production.Start(order.ID)
		before, _ := env.Stock.GetItem(rock.ID)

		staged, err := env.Production.SendToQuality(order.ID)
		assert.NoError(t, err)
		assert.Equal(t, models.OrderQualidade, staged.Status)
		assert.Equal(t, 90, staged.Progress)

		after, _ := env.Stock.GetItem(rock.ID)
		assert.True(t, before.Quantity.Equal(after.Quantity))
	})

	t.Run("SC11: quality tests accumulate and never gate completion", func(t *testing.T) {
		env := newTestEnv(false)
		_, _, _, formula := setupBritagem(t, env)

		order := env.mustCreateOrder(t, "OP-021", formula.ID, "10")
		env.Production.Start(order.ID)

		_, err := env.Production.AddQualityTest(order.ID, models.QualityTest{
			Name: "Granulometria", Result: models.TestReprovado,
		})
		assert.NoError(t, err)

		completed, err := env.Production.Complete(order.ID)
		assert.NoError(t, err)
		assert.Equal(t, models.OrderFinalizado, completed.Status)
		assert.Len(t, completed.QualityTests, 1)
	})

	t.Run("SC12: pause and cancel only from non-terminal states", func(t *testing.T) {
		env := newTestEnv(false)
		_, _, _, formula := setupBritagem(t, env)

		order := env.mustCreateOrder(t, "OP-022", formula.ID, "10")

		paused, err := env.Production.Pause(order.ID)
		assert.NoError(t, err)
		assert.Equal(t, models.OrderPausado, paused.Status)

		cancelled, err := env.Production.Cancel(order.ID)
		assert.NoError(t, err)
		assert.Equal(t, models.OrderCancelado, cancelled.Status)

		_, err = env.Production.Pause(order.ID)
		assert.ErrorIs(t, err, models.ErrInvalidTransition)
	})

	t.Run("SC16: start cannot pull a quality-stage order back to the floor", func(t *testing.T) {
		env := newTestEnv(false)
		rock, _, _, formula := setupBritagem(t, env)

		order := env.mustCreateOrder(t, "OP-023", formula.ID, "50")
		env.Production.Start(order.ID)
		env.Production.SendToQuality(order.ID)

		_, err := env.Production.Start(order.ID)
		assert.ErrorIs(t, err, models.ErrInvalidTransition)

		staged, _ := env.Production.GetOrder(order.ID)
		assert.Equal(t, models.OrderQualidade, staged.Status)
		assert.Equal(t, 90, staged.Progress)

		current, _ := env.Stock.GetItem(rock.ID)
		assertDecimal(t, "450", current.Quantity, "rejected start must not touch stock")
	})

	t.Run("SC17: a paused order resumes without a second deduction", func(t *testing.T) {
		env := newTestEnv(false)
		rock, _, _, formula := setupBritagem(t, env)

		order := env.mustCreateOrder(t, "OP-024", formula.ID, "50")
		env.Production.Start(order.ID)
		env.Production.Pause(order.ID)

		resumed, err := env.Production.Start(order.ID)
		assert.NoError(t, err)
		assert.Equal(t, models.OrderEmProducao, resumed.Status)

		current, _ := env.Stock.GetItem(rock.ID)
		assertDecimal(t, "450", current.Quantity)
	})

	t.Run("SC18: a non-positive batch size is rejected at creation", func(t *testing.T) {
		env := newTestEnv(false)
		_, _, _, formula := setupBritagem(t, env)

		_, err := env.Production.CreateOrder(services.CreateOrderRequest{
			OrderNumber: "OP-025", FormulaID: formula.ID, Quantity: dec("-100"),
		})
		assert.ErrorIs(t, err, models.ErrInvalidQuantity)

		_, err = env.Production.CreateOrder(services.CreateOrderRequest{
			OrderNumber: "OP-026", FormulaID: formula.ID, Quantity: dec("0"),
		})
		assert.ErrorIs(t, err, models.ErrInvalidQuantity)
		assert.Empty(t, env.Production.ListOrders())
	})
}

func TestProductionDelete(t *testing.T) {
	t.Run("SC13: planned order with no stock effects may be deleted", func(t *testing.T) {
		env := newTestEnv(false)
		_, _, _, formula := setupBritagem(t, env)

		order := env.mustCreateOrder(t, "OP-030", formula.ID, "10")

		assert.NoError(t, env.Production.Delete(order.ID))
		_, err := env.Production.GetOrder(order.ID)
		assert.ErrorIs(t, err, models.ErrOrderNotFound)
	})

	t.Run("SC14: started order cannot be deleted", func(t *testing.T) {
		env := newTestEnv(false)
		_, _, _, formula := setupBritagem(t, env)

		order := env.mustCreateOrder(t, "OP-031", formula.ID, "10")
		env.Production.Start(order.ID)

		err := env.Production.Delete(order.ID)
		assert.ErrorIs(t, err, models.ErrOrderHasStockEffects)
	})

	t.Run("SC15: finalized order cannot be deleted", func(t *testing.T) {
		env := newTestEnv(false)
		_, _, _, formula := setupBritagem(t, env)

		order := env.mustCreateOrder(t, "OP-032", formula.ID, "10")
		env.Production.Start(order.ID)
		env.Production.Complete(order.ID)

		err := env.Production.Delete(order.ID)
		assert.ErrorIs(t, err, models.ErrOrderHasStockEffects)
	})
}
