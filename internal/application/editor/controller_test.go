package editor_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/factuurr/internal/application/dto"
	"github.com/jhoicas/factuurr/internal/application/editor"
	"github.com/jhoicas/factuurr/internal/domain"
	"github.com/jhoicas/factuurr/internal/domain/entity"
	"github.com/jhoicas/factuurr/internal/domain/money"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func newController(t *testing.T) *editor.Controller {
	t.Helper()
	n := 0
	return editor.New(editor.Options{
		NewID: func() string { n++; return fmt.Sprintf("id-%d", n) },
		Now:   func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) },
	})
}

func ptr[T any](v T) *T { return &v }

func num(s string) *dto.NumericText { v := dto.NumericText(s); return &v }

func rates(doc entity.Document) []int {
	out := make([]int, 0, len(doc.Items))
	for _, it := range doc.Items {
		out = append(out, it.VATRate)
	}
	return out
}

// ── Estado inicial ────────────────────────────────────────────────────────────

func TestNew_ValoresIniciales(t *testing.T) {
	c := newController(t)
	assert.Equal(t, entity.VariantInvoice, c.ActiveVariant())

	inv := c.Active()
	assert.Equal(t, "2024-001", inv.Number)
	assert.Equal(t, "2024-03-01", inv.Date)
	require.NotNil(t, inv.Invoice)
	assert.Equal(t, "2024-03-15", inv.Invoice.DueDate)
	assert.Equal(t, "BE XX XXXX XXXX XXXX", inv.Invoice.BankAccount)
	assert.Equal(t, entity.DefaultSender(), inv.Sender)
	assert.Empty(t, inv.Client.Name)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, 21, inv.Items[0].VATRate)
	require.NoError(t, inv.Validate())

	quo, err := c.Document(entity.VariantQuotation)
	require.NoError(t, err)
	assert.Equal(t, "OFF-2024-001", quo.Number)
	require.NotNil(t, quo.Quotation)
	assert.Nil(t, quo.Invoice)
	assert.Equal(t, "2024-03-31", quo.Quotation.ValidUntil)
	assert.Equal(t, "Deze offerte is 30 dagen geldig.", quo.Notes)
}

// ── Líneas ────────────────────────────────────────────────────────────────────

func TestAddItem_ValoresPorDefecto(t *testing.T) {
	c := newController(t)
	item := c.AddItem()

	assert.NotEmpty(t, item.ID)
	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(1)))
	assert.True(t, item.UnitPrice.IsZero())
	assert.Equal(t, 21, item.VATRate)
	assert.Len(t, c.Active().Items, 2)
}

func TestAddItem_DocumentoExentoUsaTipoCero(t *testing.T) {
	c := newController(t)
	c.SetVATExempt(true)
	assert.Equal(t, 0, c.AddItem().VATRate)
}

func TestAddItem_IDsUnicos(t *testing.T) {
	c := newController(t)
	seen := map[string]bool{}
	for _, it := range c.Active().Items {
		seen[it.ID] = true
	}
	for i := 0; i < 10; i++ {
		id := c.AddItem().ID
		assert.False(t, seen[id], "id repetido %s", id)
		seen[id] = true
	}
}

func TestUpdateItem_SaneaNumeros(t *testing.T) {
	c := newController(t)
	id := c.Active().Items[0].ID

	require.NoError(t, c.UpdateItem(id, dto.ItemPatch{
		Name:      ptr("Webdesign"),
		Quantity:  num("abc"),
		UnitPrice: num("-5"),
	}))
	it := c.Active().Items[0]
	assert.Equal(t, "Webdesign", it.Name)
	assert.True(t, it.Quantity.IsZero(), "texto no numérico → 0")
	assert.True(t, it.UnitPrice.IsZero(), "negativo → 0")

	require.NoError(t, c.UpdateItem(id, dto.ItemPatch{Quantity: num("2,5"), UnitPrice: num("100")}))
	it = c.Active().Items[0]
	assert.True(t, it.Quantity.Equal(decimal.RequireFromString("2.5")))
	assert.True(t, it.UnitPrice.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "Omschrijving van de uitgevoerde werken", it.Description, "los campos ausentes no cambian")
}

func TestUpdateItem_ExponenteNoDesbordaTotales(t *testing.T) {
	c := newController(t)
	id := c.Active().Items[0].ID

	require.NoError(t, c.UpdateItem(id, dto.ItemPatch{Quantity: num("1e400"), UnitPrice: num("1")}))
	it := c.Active().Items[0]
	assert.True(t, it.Quantity.IsZero(), "notación exponencial → 0")
	assert.Equal(t, "€\u00a00,00", money.FormatCurrency(money.Compute(c.Active().Items).Total))

	require.NoError(t, c.UpdateItem(id, dto.ItemPatch{Quantity: num("1"), UnitPrice: num("1e30000000")}))
	it = c.Active().Items[0]
	assert.True(t, it.UnitPrice.IsZero())
	assert.Equal(t, "€\u00a00,00", money.FormatCurrency(money.Compute(c.Active().Items).Total))
}

func TestUpdateItem_TipoNoPermitidoNoAplicaNada(t *testing.T) {
	c := newController(t)
	id := c.Active().Items[0].ID

	err := c.UpdateItem(id, dto.ItemPatch{Name: ptr("x"), VATRate: ptr(19)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	it := c.Active().Items[0]
	assert.Equal(t, "Dienstverlening", it.Name)
	assert.Equal(t, 21, it.VATRate)
}

func TestUpdateItem_IDDesconocidoEsNoOp(t *testing.T) {
	c := newController(t)
	before := c.Active()
	require.NoError(t, c.UpdateItem("no-existe", dto.ItemPatch{Name: ptr("x")}))
	assert.Equal(t, before, c.Active())
}

func TestUpdateItem_ExentoFuerzaTipoCero(t *testing.T) {
	c := newController(t)
	c.SetVATExempt(true)
	id := c.Active().Items[0].ID
	require.NoError(t, c.UpdateItem(id, dto.ItemPatch{VATRate: ptr(6)}))
	assert.Equal(t, 0, c.Active().Items[0].VATRate)
}

func TestRemoveItem_UltimaLineaEsNoOp(t *testing.T) {
	c := newController(t)
	only := c.Active().Items[0]

	assert.False(t, c.RemoveItem(only.ID))
	items := c.Active().Items
	require.Len(t, items, 1)
	assert.Equal(t, only, items[0])
}

func TestRemoveItem_ConservaOrden(t *testing.T) {
	c := newController(t)
	first := c.Active().Items[0].ID
	second := c.AddItem().ID
	third := c.AddItem().ID

	assert.True(t, c.RemoveItem(second))
	assert.False(t, c.RemoveItem("no-existe"))

	items := c.Active().Items
	require.Len(t, items, 2)
	assert.Equal(t, first, items[0].ID)
	assert.Equal(t, third, items[1].ID)
}

// ── Exención de BTW ───────────────────────────────────────────────────────────

// Al desactivar la exención los tipos anteriores no se recuperan (comportamiento conocido).
func TestSetVATExempt_NoRestauraTipos(t *testing.T) {
	c := newController(t)
	second := c.AddItem().ID
	require.NoError(t, c.UpdateItem(second, dto.ItemPatch{VATRate: ptr(6)}))
	assert.Equal(t, []int{21, 6}, rates(c.Active()))

	c.SetVATExempt(true)
	doc := c.Active()
	assert.True(t, doc.VATExempt)
	assert.Equal(t, []int{0, 0}, rates(doc))
	for _, amount := range money.VATBreakdown(doc.Items) {
		assert.True(t, amount.IsZero())
	}

	c.SetVATExempt(false)
	doc = c.Active()
	assert.False(t, doc.VATExempt)
	assert.Equal(t, []int{0, 0}, rates(doc), "los tipos siguen en 0 tras desactivar")
}

// ── Emisor / cliente / cabecera ───────────────────────────────────────────────

func TestUpdateSenderYClient(t *testing.T) {
	c := newController(t)
	c.UpdateSender(dto.PartyPatch{Name: ptr("Syra BV"), Email: ptr("")})
	c.UpdateClient(dto.PartyPatch{Name: ptr("Klant NV"), VATNumber: ptr("BE 0123.456.789")})

	doc := c.Active()
	assert.Equal(t, "Syra BV", doc.Sender.Name)
	assert.Empty(t, doc.Sender.Email)
	assert.Equal(t, "Adresregel 1", doc.Sender.Address)
	assert.Equal(t, "Klant NV", doc.Client.Name)
	assert.Equal(t, "BE 0123.456.789", doc.Client.VATNumber)
}

func TestUpdateFields_PorVariante(t *testing.T) {
	c := newController(t)
	require.NoError(t, c.UpdateFields(dto.FieldsPatch{
		Number: ptr("2024-002"), BankAccount: ptr("BE68 5390 0754 7034"), BIC: ptr("GKCCBEBB"),
	}))
	inv := c.Active()
	assert.Equal(t, "2024-002", inv.Number)
	assert.Equal(t, "GKCCBEBB", inv.Invoice.BIC)

	err := c.UpdateFields(dto.FieldsPatch{Number: ptr("x"), ValidUntil: ptr("2024-12-31")})
	assert.ErrorIs(t, err, domain.ErrVariantMismatch)
	assert.Equal(t, "2024-002", c.Active().Number, "un parche rechazado no aplica nada")

	require.NoError(t, c.SetActiveVariant(entity.VariantQuotation))
	assert.ErrorIs(t, c.UpdateFields(dto.FieldsPatch{BIC: ptr("X")}), domain.ErrVariantMismatch)
	require.NoError(t, c.UpdateFields(dto.FieldsPatch{ValidUntil: ptr("2024-12-31")}))
	assert.Equal(t, "2024-12-31", c.Active().Quotation.ValidUntil)
}

// ── Cambio de variante ────────────────────────────────────────────────────────

func TestSetActiveVariant_CopiaComunesSinContaminar(t *testing.T) {
	c := newController(t)
	c.UpdateSender(dto.PartyPatch{Name: ptr("Syra BV")})
	c.UpdateClient(dto.PartyPatch{Name: ptr("Klant NV")})
	second := c.AddItem().ID
	require.NoError(t, c.UpdateItem(second, dto.ItemPatch{Name: ptr("Hosting"), UnitPrice: num("15")}))
	require.NoError(t, c.UpdateFields(dto.FieldsPatch{BankAccount: ptr("BE68 5390 0754 7034"), BIC: ptr("GKCCBEBB"), Notes: ptr("Bedankt")}))
	invoiceBefore := c.Active()

	require.NoError(t, c.SetActiveVariant(entity.VariantQuotation))
	quo := c.Active()
	assert.Equal(t, entity.VariantQuotation, quo.Variant())
	assert.Equal(t, invoiceBefore.Sender, quo.Sender)
	assert.Equal(t, invoiceBefore.Client, quo.Client)
	assert.Equal(t, invoiceBefore.Items, quo.Items)
	assert.Equal(t, "Bedankt", quo.Notes)
	assert.Equal(t, "OFF-2024-001", quo.Number, "el número propio se conserva")
	assert.Nil(t, quo.Invoice, "sin IBAN/BIC/voorwaarden en la offerte")

	// Editar la offerte no toca la factura guardada.
	require.NoError(t, c.UpdateFields(dto.FieldsPatch{ValidUntil: ptr("2025-01-01")}))
	require.NoError(t, c.UpdateItem(second, dto.ItemPatch{Name: ptr("Hosting+")}))

	require.NoError(t, c.SetActiveVariant(entity.VariantInvoice))
	inv := c.Active()
	assert.Equal(t, invoiceBefore.Sender, inv.Sender)
	assert.Equal(t, invoiceBefore.Client, inv.Client)
	assert.Equal(t, invoiceBefore.VATExempt, inv.VATExempt)
	assert.Equal(t, "Hosting+", inv.Items[1].Name, "las líneas vuelven desde la offerte")
	assert.Equal(t, "GKCCBEBB", inv.Invoice.BIC)
	assert.Equal(t, "BE68 5390 0754 7034", inv.Invoice.BankAccount)
	assert.Nil(t, inv.Quotation)
}

func TestSetActiveVariant_CopiaExencion(t *testing.T) {
	c := newController(t)
	c.SetVATExempt(true)
	require.NoError(t, c.SetActiveVariant(entity.VariantQuotation))
	doc := c.Active()
	assert.True(t, doc.VATExempt)
	assert.Equal(t, []int{0}, rates(doc))
}

func TestSetActiveVariant_MismaVarianteEsNoOp(t *testing.T) {
	c := newController(t)
	quoBefore, err := c.Document(entity.VariantQuotation)
	require.NoError(t, err)

	c.UpdateSender(dto.PartyPatch{Name: ptr("Syra BV")})
	require.NoError(t, c.SetActiveVariant(entity.VariantInvoice))

	quoAfter, err := c.Document(entity.VariantQuotation)
	require.NoError(t, err)
	assert.Equal(t, quoBefore, quoAfter)
}

func TestSetActiveVariant_Desconocida(t *testing.T) {
	c := newController(t)
	assert.ErrorIs(t, c.SetActiveVariant("creditnota"), domain.ErrInvalidVariant)
	assert.Equal(t, entity.VariantInvoice, c.ActiveVariant())
}

// Las copias devueltas no comparten memoria con la sesión.
func TestActive_DevuelveCopia(t *testing.T) {
	c := newController(t)
	doc := c.Active()
	doc.Items[0].Name = "mutado"
	doc.Invoice.BIC = "mutado"
	assert.Equal(t, "Dienstverlening", c.Active().Items[0].Name)
	assert.Empty(t, c.Active().Invoice.BIC)
}

func TestReplaceSenderYSetLogo(t *testing.T) {
	c := newController(t)
	c.ReplaceSender(entity.Party{Name: "Nieuw"})
	c.SetLogo("data:image/png;base64,AAAA")
	s := c.Active().Sender
	assert.Equal(t, "Nieuw", s.Name)
	assert.Empty(t, s.Address)
	assert.Equal(t, "data:image/png;base64,AAAA", s.LogoURL)
}

// Operaciones concurrentes sobre la misma sesión quedan serializadas (go test -race).
func TestController_Concurrente(t *testing.T) {
	c := newController(t)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			it := c.AddItem()
			_ = c.UpdateItem(it.ID, dto.ItemPatch{UnitPrice: num("10")})
			_ = money.Total(c.Active().Items)
		}()
	}
	wg.Wait()
	assert.Len(t, c.Active().Items, 21)
}
