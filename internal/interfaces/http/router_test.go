package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/factuurr/internal/application/dto"
	"github.com/jhoicas/factuurr/internal/application/editor"
	"github.com/jhoicas/factuurr/internal/application/export"
	"github.com/jhoicas/factuurr/internal/application/render"
	"github.com/jhoicas/factuurr/internal/application/settings"
	"github.com/jhoicas/factuurr/internal/domain/entity"
	"github.com/jhoicas/factuurr/internal/infrastructure/html"
	"github.com/jhoicas/factuurr/internal/infrastructure/logo"
	apphttp "github.com/jhoicas/factuurr/internal/interfaces/http"
	"github.com/jhoicas/factuurr/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// stubGenerator devuelve un PDF mínimo; si block no es nil espera a que se cierre.
type stubGenerator struct {
	started chan struct{}
	block   chan struct{}
}

func (g *stubGenerator) GeneratePDF(_ context.Context, _ render.Layout) ([]byte, error) {
	if g.block != nil {
		close(g.started)
		<-g.block
	}
	return []byte("%PDF-1.3 stub"), nil
}

type testEnv struct {
	app    *fiber.App
	editor *editor.Controller
	gen    *stubGenerator
}

func buildTestApp(t *testing.T) *testEnv {
	t.Helper()
	n := 0
	ctrl := editor.New(editor.Options{
		NewID: func() string { n++; return "id-" + string(rune('0'+n)) },
		Now:   func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) },
	})
	preview, err := html.NewPreviewRenderer()
	require.NoError(t, err)

	gen := &stubGenerator{}
	log := logger.Nop()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Editor:   ctrl,
		Export:   export.NewPDFUseCase(gen, log),
		Settings: settings.NewUseCase(ctrl, log),
		Logo:     settings.NewLogoUseCase(ctrl, logo.NewEncoder(480, 240), 1<<20, log),
		Preview:  preview,
		Log:      log,
		AppName:  "factuurr-test",
	})
	return &testEnv{app: app, editor: ctrl, gen: gen}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) upload(t *testing.T, path string, content []byte) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", "upload.bin")
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func assertError(t *testing.T, resp *http.Response, status int, code string) {
	t.Helper()
	assert.Equal(t, status, resp.StatusCode)
	assert.Equal(t, code, decode[dto.ErrorResponse](t, resp).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesión y documento
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	env := buildTestApp(t)
	resp := env.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[map[string]string](t, resp)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "factuurr-test", body["service"])
}

func TestSession_EstadoInicial(t *testing.T) {
	env := buildTestApp(t)
	resp := env.do(t, http.MethodGet, "/api/session", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	s := decode[dto.SessionResponse](t, resp)
	assert.Equal(t, entity.VariantInvoice, s.ActiveVariant)
	assert.Equal(t, "2024-001", s.Document.Number)
	require.NotNil(t, s.Document.Invoice)
	assert.Equal(t, "2024-03-15", s.Document.Invoice.DueDate)
	require.Len(t, s.Document.Items, 1)
	assert.True(t, s.Totals.Total.IsZero())
}

func TestSession_CambioDeVariante(t *testing.T) {
	env := buildTestApp(t)

	resp := env.do(t, http.MethodPut, "/api/session/variant", dto.SetVariantRequest{Variant: "quotation"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	s := decode[dto.SessionResponse](t, resp)
	assert.Equal(t, entity.VariantQuotation, s.ActiveVariant)
	assert.Equal(t, "OFF-2024-001", s.Document.Number)
	assert.Nil(t, s.Document.Invoice)

	resp = env.do(t, http.MethodPut, "/api/session/variant", dto.SetVariantRequest{Variant: "creditnota"})
	assertError(t, resp, http.StatusBadRequest, "INVALID_VARIANT")
}

func TestItems_CicloCompleto(t *testing.T) {
	env := buildTestApp(t)

	resp := env.do(t, http.MethodPost, "/api/document/items", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	item := decode[entity.LineItem](t, resp)
	assert.Equal(t, entity.DefaultVATRate, item.VATRate)

	resp = env.do(t, http.MethodPatch, "/api/document/items/"+item.ID, map[string]any{
		"quantity": "2,5", "unitPrice": 100, "vatRate": 6,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	s := decode[dto.SessionResponse](t, resp)
	assert.Equal(t, "250", s.Totals.Subtotal.String())
	assert.Equal(t, "265", s.Totals.Total.String())
	require.Len(t, s.Totals.VAT, 2)
	assert.Equal(t, 6, s.Totals.VAT[0].Rate, "tipos en orden ascendente")
	assert.Equal(t, 21, s.Totals.VAT[1].Rate)

	resp = env.do(t, http.MethodPatch, "/api/document/items/"+item.ID, map[string]any{"vatRate": 7})
	assertError(t, resp, http.StatusBadRequest, "VALIDATION")

	resp = env.do(t, http.MethodDelete, "/api/document/items/"+item.ID, nil)
	assert.True(t, decode[dto.RemoveItemResponse](t, resp).Removed)

	last := env.editor.Active().Items[0].ID
	resp = env.do(t, http.MethodDelete, "/api/document/items/"+last, nil)
	assert.False(t, decode[dto.RemoveItemResponse](t, resp).Removed, "la última línea no se elimina")
}

func TestDocument_CampoDeOtraVariante(t *testing.T) {
	env := buildTestApp(t)

	resp := env.do(t, http.MethodPatch, "/api/document", map[string]string{"number": "2024-099", "validUntil": "2024-04-01"})
	assertError(t, resp, http.StatusUnprocessableEntity, "VARIANT_MISMATCH")
	assert.Equal(t, "2024-001", env.editor.Active().Number, "no se aplica nada")

	resp = env.do(t, http.MethodPatch, "/api/document", map[string]string{"number": "2024-099"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2024-099", env.editor.Active().Number)
}

func TestDocument_ExencionYPartes(t *testing.T) {
	env := buildTestApp(t)

	resp := env.do(t, http.MethodPut, "/api/document/vat-exempt", dto.SetVATExemptRequest{Enabled: true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	s := decode[dto.SessionResponse](t, resp)
	assert.True(t, s.Document.VATExempt)
	assert.Equal(t, 0, s.Document.Items[0].VATRate)

	resp = env.do(t, http.MethodPatch, "/api/document/client", map[string]string{"name": "Klant NV", "vatNumber": "BE 0999"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	client := decode[entity.Party](t, resp)
	assert.Equal(t, "Klant NV", client.Name)
	assert.Equal(t, "België", client.Country)

	resp = env.do(t, http.MethodGet, "/api/document/layout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	l := decode[render.Layout](t, resp)
	assert.Equal(t, render.ExemptionNotice, l.ExemptionNotice)
	assert.Contains(t, l.Client.Lines, "BTW: BE 0999")
}

func TestDocument_CuerpoInvalido(t *testing.T) {
	env := buildTestApp(t)
	req := httptest.NewRequest(http.MethodPatch, "/api/document/sender", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assertError(t, resp, http.StatusBadRequest, "INVALID_BODY")
}

// ──────────────────────────────────────────────────────────────────────────────
// Exportación, configuración, logo y vista previa
// ──────────────────────────────────────────────────────────────────────────────

func TestExport_PDF(t *testing.T) {
	env := buildTestApp(t)
	resp := env.do(t, http.MethodGet, "/api/export/pdf", nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `filename="factuur_2024_001.pdf"`)
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestExport_EnCursoDevuelve409(t *testing.T) {
	env := buildTestApp(t)
	env.gen.started = make(chan struct{})
	env.gen.block = make(chan struct{})

	first := make(chan int, 1)
	go func() {
		resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/api/export/pdf", nil), -1)
		if err != nil {
			first <- 0
			return
		}
		resp.Body.Close()
		first <- resp.StatusCode
	}()
	<-env.gen.started

	resp := env.do(t, http.MethodGet, "/api/export/pdf", nil)
	assertError(t, resp, http.StatusConflict, "EXPORT_IN_PROGRESS")

	close(env.gen.block)
	assert.Equal(t, http.StatusOK, <-first)
}

func TestSettings_ExportImport(t *testing.T) {
	env := buildTestApp(t)
	env.do(t, http.MethodPatch, "/api/document/sender", map[string]string{"name": "Studio Noord"}).Body.Close()

	resp := env.do(t, http.MethodGet, "/api/settings/export", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "factuurr_instellingen_studio_noord.json")
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	other := buildTestApp(t)
	resp = other.upload(t, "/api/settings/import", data)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	assert.Equal(t, env.editor.Active().Sender, other.editor.Active().Sender)
}

func TestSettings_ImportMalFormado(t *testing.T) {
	env := buildTestApp(t)
	before := env.editor.Active().Sender

	req := httptest.NewRequest(http.MethodPost, "/api/settings/import", strings.NewReader(`{"name": `))
	req.Header.Set("Content-Type", "application/json")
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)

	assertError(t, resp, http.StatusBadRequest, "INVALID_SETTINGS")
	assert.Equal(t, before, env.editor.Active().Sender)
}

func TestLogo_Subida(t *testing.T) {
	env := buildTestApp(t)
	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 10, 10))))

	resp := env.upload(t, "/api/document/logo", img.Bytes())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[map[string]string](t, resp)
	assert.True(t, strings.HasPrefix(body["logoUrl"], logo.PNGPrefix))
	assert.Equal(t, body["logoUrl"], env.editor.Active().Sender.LogoURL)

	resp = env.upload(t, "/api/document/logo", []byte("geen afbeelding"))
	assertError(t, resp, http.StatusBadRequest, "UNSUPPORTED_IMAGE")
}

func TestPreview_HTML(t *testing.T) {
	env := buildTestApp(t)
	for _, path := range []string{"/", "/preview"} {
		resp := env.do(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		assert.Contains(t, string(body), "<h1>FACTUUR</h1>")
	}
}
