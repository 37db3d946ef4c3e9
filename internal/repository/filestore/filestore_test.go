package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"equipment-rental-manager/internal/domain"
	"equipment-rental-manager/internal/inventory"
	"equipment-rental-manager/internal/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockLocation
type MockLocation struct {
	mock.Mock
	name string
}

func (m *MockLocation) Name() string { return m.name }
func (m *MockLocation) ReadFile(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
func (m *MockLocation) WriteFile(ctx context.Context, key string, data []byte) error {
	args := m.Called(ctx, key, data)
	return args.Error(0)
}
func (m *MockLocation) FileExists(ctx context.Context, key string) (bool, int64, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

func localDirs(t *testing.T, names ...string) []storage.Location {
	root := t.TempDir()
	locs := make([]storage.Location, 0, len(names))
	for _, n := range names {
		locs = append(locs, storage.NewLocalDirectory(n, filepath.Join(root, n), time.Second))
	}
	return locs
}

func sample() domain.Database {
	cost := decimal.RequireFromString("35.50")
	db := domain.NewDatabase()
	db.Settings.BusinessName = "Rentas del Norte"
	db.Settings.NextInvoiceNumber = 1003
	db.Clients = []domain.Client{{ID: 1, Name: "Ana", Phone: "555"}}
	db.Equipment = []domain.Equipment{{ID: 1, Name: "Drill", PricePerHour: decimal.RequireFromString("10.5"), PricePerDay: decimal.NewFromInt(50), Stock: 8, AvailableStock: 8}}
	db.Rentals = []domain.Rental{{
		ID: 1, Folio: 1002, ClientID: 1, RentalType: domain.RentalTypeDay,
		StartDate:  time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		ReturnDate: time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC),
		Status:     domain.RentalStatusActive, Total: decimal.NewFromInt(300),
		Details:    []domain.RentalDetail{{EquipmentID: 1, Quantity: 2, UnitPrice: decimal.NewFromInt(50), Subtotal: decimal.NewFromInt(300)}},
	}}
	db.Maintenance = []domain.MaintenanceRecord{{ID: 1, MaintenanceDraft: domain.MaintenanceDraft{
		EquipmentID: 1, Quantity: 3, Reason: "Chuck", StartDate: "2024-01-02", Status: domain.MaintenanceStatusInMaintenance, Cost: &cost,
	}}}
	return db
}

func canonical(t *testing.T, db domain.Database) string {
	data, err := json.Marshal(db)
	require.NoError(t, err)
	return string(data)
}

func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(localDirs(t, "app-data", "app-local-data", "documents"), "")

	db := sample()
	require.NoError(t, store.Save(ctx, db))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, canonical(t, inventory.Reconcile(db)), canonical(t, loaded))
	assert.Equal(t, 5, loaded.Equipment[0].AvailableStock)
}

func TestFileStore_PrettyPrinted(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(localDirs(t, "app-data"), "")
	require.NoError(t, store.Save(ctx, sample()))

	raw, err := store.ReadRaw(ctx)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  \"settings\": {")
	assert.Contains(t, string(raw), `"pricePerHour": 10.5`)
}

func TestFileStore_LoadCreatesDefault(t *testing.T) {
	ctx := context.Background()
	locs := localDirs(t, "app-data", "app-local-data")
	store := NewFileStore(locs, "")

	db, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultNextInvoiceNumber, db.Settings.NextInvoiceNumber)
	assert.Empty(t, db.Equipment)

	exists, _, err := locs[0].FileExists(ctx, DefaultFileName)
	require.NoError(t, err)
	assert.True(t, exists, "default document is written to the primary location")
}

func TestFileStore_LoadFallsBack(t *testing.T) {
	ctx := context.Background()
	locs := localDirs(t, "app-data", "app-local-data", "documents")
	require.NoError(t, locs[0].WriteFile(ctx, DefaultFileName, []byte("{not json")))
	require.NoError(t, locs[2].WriteFile(ctx, DefaultFileName, []byte(`{"settings":{"businessName":"From docs"},"equipment":[{"id":1,"name":"Saw","stock":4}]}`)))

	db, err := NewFileStore(locs, "").Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "From docs", db.Settings.BusinessName)
	assert.Equal(t, domain.DefaultNextInvoiceNumber, db.Settings.NextInvoiceNumber)
	assert.Equal(t, domain.LanguageSpanish, db.Settings.Language)
	assert.Equal(t, 4, db.Equipment[0].AvailableStock)
	assert.NotNil(t, db.Rentals)
}

func TestFileStore_LoadKeepsUnparseableDocument(t *testing.T) {
	ctx := context.Background()
	locs := localDirs(t, "app-data", "app-local-data", "documents")
	doc := []byte(`{"settings":{"nextInvoiceNumber":2000},"equipment":[{"id":1,"name":"Saw","stock":"4"}]}`)
	require.NoError(t, locs[0].WriteFile(ctx, DefaultFileName, doc))

	_, err := NewFileStore(locs, "").Load(ctx)

	var se *domain.StorageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "load", se.Op)
	assert.Len(t, se.Attempts, 3)

	onDisk, err := locs[0].ReadFile(ctx, DefaultFileName)
	require.NoError(t, err)
	assert.Equal(t, doc, onDisk, "unparseable document is left untouched")
	for _, loc := range locs[1:] {
		exists, _, err := loc.FileExists(ctx, DefaultFileName)
		require.NoError(t, err)
		assert.False(t, exists)
	}
}

func TestFileStore_LoadUnreadableDoesNotCreateDefault(t *testing.T) {
	ctx := context.Background()
	primary := &MockLocation{name: "app-data"}
	primary.On("ReadFile", ctx, DefaultFileName).Return(nil, errors.New("permission denied"))
	secondary := &MockLocation{name: "documents"}
	secondary.On("ReadFile", ctx, DefaultFileName).Return(nil, storage.ErrNotExist)

	_, err := NewFileStore([]storage.Location{primary, secondary}, "").Load(ctx)

	assert.True(t, domain.IsStorage(err))
	primary.AssertNotCalled(t, "WriteFile", mock.Anything, mock.Anything, mock.Anything)
	secondary.AssertNotCalled(t, "WriteFile", mock.Anything, mock.Anything, mock.Anything)
}

func TestFileStore_WriteRawPrimaryOnly(t *testing.T) {
	ctx := context.Background()
	primary := &MockLocation{name: "app-data"}
	primary.On("WriteFile", ctx, DefaultFileName, mock.Anything).Return(errors.New("read-only"))
	secondary := &MockLocation{name: "documents"}

	err := NewFileStore([]storage.Location{primary, secondary}, "").WriteRaw(ctx, []byte(`{}`))

	var se *domain.StorageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "import", se.Op)
	secondary.AssertNotCalled(t, "WriteFile", mock.Anything, mock.Anything, mock.Anything)
}

func TestFileStore_SaveFallsBack(t *testing.T) {
	ctx := context.Background()
	primary := &MockLocation{name: "app-data"}
	primary.On("WriteFile", ctx, DefaultFileName, mock.Anything).Return(errors.New("permission denied"))
	secondary := &MockLocation{name: "app-local-data"}
	secondary.On("WriteFile", ctx, DefaultFileName, mock.Anything).Return(nil)
	third := &MockLocation{name: "documents"}

	err := NewFileStore([]storage.Location{primary, secondary, third}, "").Save(ctx, sample())
	assert.NoError(t, err)
	primary.AssertExpectations(t)
	secondary.AssertExpectations(t)
	third.AssertNotCalled(t, "WriteFile", mock.Anything, mock.Anything, mock.Anything)
}

func TestFileStore_SaveAllFail(t *testing.T) {
	ctx := context.Background()
	original := errors.New("disk full")
	primary := &MockLocation{name: "app-data"}
	primary.On("WriteFile", ctx, DefaultFileName, mock.Anything).Return(original)
	secondary := &MockLocation{name: "documents"}
	secondary.On("WriteFile", ctx, DefaultFileName, mock.Anything).Return(errors.New("read-only"))

	err := NewFileStore([]storage.Location{primary, secondary}, "").Save(ctx, sample())

	var se *domain.StorageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "save", se.Op)
	assert.Len(t, se.Attempts, 2)
	assert.ErrorIs(t, err, original)
}

func TestFileStore_LoadDefaultSaveFails(t *testing.T) {
	ctx := context.Background()
	only := &MockLocation{name: "app-data"}
	only.On("ReadFile", ctx, DefaultFileName).Return(nil, storage.ErrNotExist)
	only.On("WriteFile", ctx, DefaultFileName, mock.Anything).Return(errors.New("denied"))

	_, err := NewFileStore([]storage.Location{only}, "").Load(ctx)
	assert.True(t, domain.IsStorage(err))
}

func TestFileStore_RawImportExport(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(localDirs(t, "app-data"), "custom.json")
	doc := []byte(`{"settings":{"id":1,"nextInvoiceNumber":2000,"language":"en"}}`)

	require.NoError(t, store.WriteRaw(ctx, doc))
	raw, err := store.ReadRaw(ctx)
	require.NoError(t, err)
	assert.Equal(t, doc, raw)

	db, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2000, db.Settings.NextInvoiceNumber)
}

func TestFileStore_ReadRawMissing(t *testing.T) {
	_, err := NewFileStore(localDirs(t, "a", "b"), "").ReadRaw(context.Background())
	var se *domain.StorageError
	require.True(t, errors.As(err, &se))
	assert.Len(t, se.Attempts, 2)
	assert.ErrorIs(t, err, storage.ErrNotExist)
}
