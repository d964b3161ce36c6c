// Package editor mantiene la sesión de edición: una factura y una offerte en
// paralelo, la variante activa y las transiciones de estado que aplica el usuario.
//
// Cada operación toma el mutex completo, de modo que ningún lector (vista previa,
// exportación) observa una actualización a medias.
package editor

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/factuurr/internal/application/dto"
	"github.com/jhoicas/factuurr/internal/domain"
	"github.com/jhoicas/factuurr/internal/domain/entity"
	"github.com/jhoicas/factuurr/internal/domain/money"
)

const dateLayout = "2006-01-02"

// Options dependencias y parámetros del controlador. Los campos vacíos toman valores por defecto.
type Options struct {
	NewID     func() string    // generador de IDs de sesión (por defecto uuid)
	Now       func() time.Time // reloj para las fechas iniciales
	DueDays   int              // días hasta el vencimiento de una factura
	ValidDays int              // días de validez de una offerte
}

// Controller dueño de los dos documentos de la sesión.
type Controller struct {
	mu     sync.Mutex
	newID  func() string
	docs   map[entity.Variant]*entity.Document
	active entity.Variant
}

// New construye la sesión con una factura activa y una offerte, ambas con valores iniciales.
func New(opts Options) *Controller {
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.DueDays <= 0 {
		opts.DueDays = 14
	}
	if opts.ValidDays <= 0 {
		opts.ValidDays = 30
	}

	c := &Controller{newID: opts.NewID, active: entity.VariantInvoice}
	now := opts.Now()
	date := now.Format(dateLayout)

	invoice := c.newDocument("2024-001", date)
	invoice.Invoice = &entity.InvoiceTerms{
		DueDate:           now.AddDate(0, 0, opts.DueDays).Format(dateLayout),
		PaymentConditions: fmt.Sprintf("Binnen %d dagen na factuurdatum.", opts.DueDays),
		BankAccount:       "BE XX XXXX XXXX XXXX",
	}

	quotation := c.newDocument("OFF-2024-001", date)
	quotation.Notes = fmt.Sprintf("Deze offerte is %d dagen geldig.", opts.ValidDays)
	quotation.Quotation = &entity.QuotationTerms{
		ValidUntil: now.AddDate(0, 0, opts.ValidDays).Format(dateLayout),
	}

	c.docs = map[entity.Variant]*entity.Document{
		entity.VariantInvoice:   invoice,
		entity.VariantQuotation: quotation,
	}
	return c
}

func (c *Controller) newDocument(number, date string) *entity.Document {
	return &entity.Document{
		ID:     c.newID(),
		Number: number,
		Date:   date,
		Sender: entity.DefaultSender(),
		Client: entity.DefaultClient(),
		Items: []entity.LineItem{{
			ID:          c.newID(),
			Name:        "Dienstverlening",
			Description: "Omschrijving van de uitgevoerde werken",
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   decimal.Zero,
			VATRate:     entity.DefaultVATRate,
		}},
	}
}

// current devuelve el documento activo. Se llama con el mutex tomado.
func (c *Controller) current() *entity.Document {
	return c.docs[c.active]
}

// ── Lecturas ──────────────────────────────────────────────────────────────────

// ActiveVariant devuelve la variante en edición.
func (c *Controller) ActiveVariant() entity.Variant {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Active devuelve una copia del documento activo.
func (c *Controller) Active() entity.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current().Clone()
}

// Document devuelve una copia del documento de la variante indicada.
func (c *Controller) Document(v entity.Variant) (entity.Document, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	doc, ok := c.docs[v]
	if !ok {
		return entity.Document{}, fmt.Errorf("%w: %q", domain.ErrInvalidVariant, v)
	}
	return doc.Clone(), nil
}

// ── Transiciones ──────────────────────────────────────────────────────────────

// SetActiveVariant cambia de variante copiando los campos comunes (emisor, cliente,
// líneas, exención, notas y fecha) del documento activo al de destino. Número y
// campos propios del destino se conservan. Sin efecto si la variante ya está activa.
func (c *Controller) SetActiveVariant(v entity.Variant) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	dst, ok := c.docs[v]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrInvalidVariant, v)
	}
	if v == c.active {
		return nil
	}
	src := c.current()
	dst.Sender = src.Sender
	dst.Client = src.Client
	dst.Items = append([]entity.LineItem(nil), src.Items...)
	dst.VATExempt = src.VATExempt
	dst.Notes = src.Notes
	dst.Date = src.Date
	c.active = v
	return nil
}

// AddItem añade una línea vacía al final del documento activo y la devuelve.
func (c *Controller) AddItem() entity.LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc := c.current()
	rate := entity.DefaultVATRate
	if doc.VATExempt {
		rate = 0
	}
	item := entity.LineItem{
		ID:        c.newID(),
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: decimal.Zero,
		VATRate:   rate,
	}
	doc.Items = append(doc.Items, item)
	return item
}

// UpdateItem aplica el parche a la línea id del documento activo. Cantidades y
// precios se sanean (nunca fallan); un tipo de BTW fuera del conjunto permitido
// devuelve ErrInvalidInput sin aplicar nada. En documentos exentos el tipo queda en 0.
// Un id desconocido no tiene efecto.
func (c *Controller) UpdateItem(id string, patch dto.ItemPatch) error {
	if patch.VATRate != nil && !entity.IsAllowedVATRate(*patch.VATRate) {
		return fmt.Errorf("%w: tipo de BTW %d no permitido", domain.ErrInvalidInput, *patch.VATRate)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	doc := c.current()
	for i := range doc.Items {
		it := &doc.Items[i]
		if it.ID != id {
			continue
		}
		if patch.Name != nil {
			it.Name = *patch.Name
		}
		if patch.Description != nil {
			it.Description = *patch.Description
		}
		if patch.Quantity != nil {
			it.Quantity = money.ParseAmount(string(*patch.Quantity))
		}
		if patch.UnitPrice != nil {
			it.UnitPrice = money.ParseAmount(string(*patch.UnitPrice))
		}
		if patch.VATRate != nil {
			it.VATRate = *patch.VATRate
		}
		if doc.VATExempt {
			it.VATRate = 0
		}
		return nil
	}
	return nil
}

// RemoveItem elimina la línea id salvo que sea la única del documento.
// Devuelve true si se eliminó.
func (c *Controller) RemoveItem(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc := c.current()
	if len(doc.Items) <= 1 {
		return false
	}
	for i := range doc.Items {
		if doc.Items[i].ID == id {
			doc.Items = append(doc.Items[:i:i], doc.Items[i+1:]...)
			return true
		}
	}
	return false
}

// SetVATExempt marca el documento activo como exento. Al activarlo todas las
// líneas pasan a 0%; al desactivarlo los tipos anteriores NO se restauran.
func (c *Controller) SetVATExempt(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc := c.current()
	doc.VATExempt = enabled
	if !enabled {
		return
	}
	for i := range doc.Items {
		doc.Items[i].VATRate = 0
	}
}

// UpdateSender mezcla los campos presentes en el emisor del documento activo.
func (c *Controller) UpdateSender(patch dto.PartyPatch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	applyParty(&c.current().Sender, patch)
}

// UpdateClient mezcla los campos presentes en el cliente del documento activo.
func (c *Controller) UpdateClient(patch dto.PartyPatch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	applyParty(&c.current().Client, patch)
}

// ReplaceSender sustituye el emisor completo (importación de configuración).
func (c *Controller) ReplaceSender(sender entity.Party) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current().Sender = sender
}

// SetLogo guarda el handle del logo en el emisor del documento activo.
func (c *Controller) SetLogo(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current().Sender.LogoURL = url
}

// UpdateFields aplica los campos de cabecera. Si el parche toca un campo que no
// existe en la variante activa devuelve ErrVariantMismatch y no aplica nada.
func (c *Controller) UpdateFields(patch dto.FieldsPatch) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc := c.current()
	invoiceOnly := patch.DueDate != nil || patch.PaymentConditions != nil || patch.BankAccount != nil || patch.BIC != nil
	if invoiceOnly && doc.Invoice == nil {
		return fmt.Errorf("%w: vervaldatum, betalingsvoorwaarden, IBAN en BIC solo existen en facturas", domain.ErrVariantMismatch)
	}
	if patch.ValidUntil != nil && doc.Quotation == nil {
		return fmt.Errorf("%w: geldig tot solo existe en offertes", domain.ErrVariantMismatch)
	}

	setString(&doc.Number, patch.Number)
	setString(&doc.Date, patch.Date)
	setString(&doc.Notes, patch.Notes)
	if doc.Invoice != nil {
		setString(&doc.Invoice.DueDate, patch.DueDate)
		setString(&doc.Invoice.PaymentConditions, patch.PaymentConditions)
		setString(&doc.Invoice.BankAccount, patch.BankAccount)
		setString(&doc.Invoice.BIC, patch.BIC)
	}
	if doc.Quotation != nil {
		setString(&doc.Quotation.ValidUntil, patch.ValidUntil)
	}
	return nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func applyParty(p *entity.Party, patch dto.PartyPatch) {
	setString(&p.Name, patch.Name)
	setString(&p.Address, patch.Address)
	setString(&p.Zip, patch.Zip)
	setString(&p.City, patch.City)
	setString(&p.Country, patch.Country)
	setString(&p.VATNumber, patch.VATNumber)
	setString(&p.Email, patch.Email)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
