package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/bills-api/internal/application/billing"
	"github.com/avolkov/bills-api/internal/application/dto"
	"github.com/avolkov/bills-api/internal/application/importer"
	"github.com/avolkov/bills-api/internal/domain/entity"
	"github.com/avolkov/bills-api/internal/domain/repository"
	"github.com/avolkov/bills-api/internal/infrastructure/snapshot"
	httpRouter "github.com/avolkov/bills-api/internal/interfaces/http"
	"github.com/avolkov/bills-api/pkg/logger"
)

type memAggStore struct {
	agg *entity.Aggregate
}

func (m *memAggStore) Save(_ context.Context, agg *entity.Aggregate) error {
	m.agg = agg
	return nil
}

func (m *memAggStore) Load(_ context.Context) (*entity.Aggregate, error) {
	return m.agg, nil
}

type memPrefStore struct {
	prefs entity.StoredPreferences
}

func (m *memPrefStore) Save(_ context.Context, p *entity.StoredPreferences) error {
	m.prefs = *p
	return nil
}

func (m *memPrefStore) Load(_ context.Context) (*entity.StoredPreferences, error) {
	p := m.prefs
	return &p, nil
}

type nopRenderer struct{}

func (nopRenderer) RenderPage(_ context.Context, page *billing.ReceiptPage) (billing.Page, error) {
	return page, nil
}

func (nopRenderer) BuildDocument(_ context.Context, pages []billing.Page) ([]byte, error) {
	return []byte("pdf"), nil
}

type nopArtifacts struct{}

func (nopArtifacts) PageCount(string) (int, bool, error) { return 0, false, nil }
func (nopArtifacts) Write(string, []byte) error          { return nil }

func newTestApp(store repository.AggregateRepository) *fiber.App {
	prefs := &memPrefStore{}
	calc := billing.NewCalculator()
	r := nopRenderer{}
	documentUC := billing.NewDocumentUseCase(
		store, prefs, calc, billing.NewPayloadEncoder(),
		r, r, nopArtifacts{},
		billing.NewPrintStateTracker(store),
		billing.DocumentConfig{OutputDir: "/out", Workers: 1, Timeout: time.Second},
		logger.Nop(),
	)

	app := fiber.New()
	httpRouter.Router(app, httpRouter.RouterDeps{
		ImportUC:    importer.NewUseCase(store, logger.Nop()),
		DocumentUC:  documentUC,
		Calculator:  calc,
		Aggregates:  store,
		Preferences: prefs,
	})
	return app
}

const miniExport = `{
  "BeginDate": "2024-03-01",
  "EndDate": "2024-03-31",
  "OrganizationId": "org-77",
  "ServiceObjects": {"10": {"Name": "Содержание жилья"}},
  "Errors": [],
  "Accounts": {
    "acc-1": {
      "HouseInfoId": 5, "AddressName": "ул. Ленина, 1", "FlatNumber": 1,
      "OwnerSurname": "Иванов", "OwnerName": "Иван", "OwnerMiddleName": "Иванович",
      "TotalArea": 44.5, "LodgerCount": 2, "AccountNumber": 1001,
      "SerivceCollections": [
        {"Services": [{"ServiceId": 10, "ChargeSum": 100.00, "RecalculationSum": 5.50}]}
      ],
      "IsAccountClosed": false, "IsHouseClosed": false
    }
  }
}`

func TestImportThenListHouses(t *testing.T) {
	store := &memAggStore{}
	app := newTestApp(store)

	req := httptest.NewRequest("POST", "/api/v1/import", strings.NewReader(miniExport))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var summary dto.ImportSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	assert.Equal(t, 1, summary.Houses)
	assert.Equal(t, 1, summary.Accounts)
	assert.Equal(t, "Март 2024 г.", summary.Period)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/houses/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var list dto.HouseListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list.Houses, 1)
	assert.Equal(t, "ул. Ленина, 1", list.Houses[0].Address)
	assert.Equal(t, 1, list.Stats.UnprintedHouses)
	assert.Equal(t, "01.03.2024", list.Stats.BeginDate)
}

func TestHouseAccountsPreview(t *testing.T) {
	store := &memAggStore{}
	app := newTestApp(store)

	req := httptest.NewRequest("POST", "/api/v1/import", strings.NewReader(miniExport))
	req.Header.Set("Content-Type", "application/json")
	_, err := app.Test(req)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/houses/5/accounts", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var preview dto.HouseAccountsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&preview))
	require.Len(t, preview.Accounts, 1)
	assert.Equal(t, "105.50", preview.Accounts[0].Total)
	require.Len(t, preview.Accounts[0].Lines, 1)
	assert.Equal(t, "Содержание жилья", preview.Accounts[0].Lines[0].ServiceName)
}

func TestGenerateWithoutDataConflicts(t *testing.T) {
	app := newTestApp(&memAggStore{})

	req := httptest.NewRequest("POST", "/api/v1/documents", strings.NewReader(`{"houseIds":["5"]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestGenerateDocuments(t *testing.T) {
	store := &memAggStore{}
	app := newTestApp(store)

	req := httptest.NewRequest("POST", "/api/v1/import", strings.NewReader(miniExport))
	req.Header.Set("Content-Type", "application/json")
	_, err := app.Test(req)
	require.NoError(t, err)

	req = httptest.NewRequest("POST", "/api/v1/documents", strings.NewReader(`{"houseIds":["5"]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.GenerateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Results, 1)
	assert.Equal(t, "assembled", out.Results[0].Status)
	assert.True(t, store.agg.Houses["5"].Printed)
}

func TestPreferencesRoundTrip(t *testing.T) {
	app := newTestApp(&memAggStore{})

	body := `{"output":"/mnt/receipts","recipient":{"name":"ООО УК Волна","inn":"7701234567","bik":"044525225","calc_acc":"40702810900000001234","corr_acc":"30101810400000000225","bank":"ПАО Сбербанк"}}`
	req := httptest.NewRequest("PUT", "/api/v1/preferences", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/preferences", nil))
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"output":"/mnt/receipts"`)
	assert.Contains(t, string(data), `"inn":"7701234567"`)
}

func TestCorruptSnapshotDegradesToNoData(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "account.data"), []byte("{corrupt"), 0o644))
	app := newTestApp(snapshot.NewAggregateStore(dir))

	// The listing stays usable: empty, not a server error.
	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/houses/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list dto.HouseListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Empty(t, list.Houses)

	// The corruption message is readable on the errors tab.
	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/errors", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var errList dto.ErrorListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errList))
	require.Equal(t, 1, errList.Count)
	assert.Contains(t, errList.Errors[0], "snapshot is corrupt")

	// Account preview and generation behave as if no data were loaded.
	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/houses/5/accounts", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	req := httptest.NewRequest("POST", "/api/v1/documents", strings.NewReader(`{"houseIds":["5"]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// A fresh import replaces the corrupt snapshot and recovers the service.
	req = httptest.NewRequest("POST", "/api/v1/import", strings.NewReader(miniExport))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/houses/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Len(t, list.Houses, 1)
}

func TestErrorListEmptyWithoutData(t *testing.T) {
	app := newTestApp(&memAggStore{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/errors", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.ErrorListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Zero(t, out.Count)
	assert.Empty(t, out.Errors)
}
