package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"equipment-rental-manager/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const storedDocument = `{"settings":{"id":1,"businessName":"Rentas","nextInvoiceNumber":1005,"language":"en"},
"equipment":[{"id":1,"name":"Drill","pricePerHour":10,"pricePerDay":50,"stock":6,"availableStock":6}],
"maintenance":[{"id":1,"equipmentId":1,"quantity":2,"reason":"Chuck","startDate":"2024-03-01","status":"In Maintenance"}]}`

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestDocumentStore_Load(t *testing.T) {
	db, mock := newMock(t)
	store := NewDocumentStore(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT body, revision FROM rental_documents WHERE id = \\$1").
			WithArgs(DocumentID).
			WillReturnRows(sqlmock.NewRows([]string{"body", "revision"}).AddRow([]byte(storedDocument), 7))

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1005, loaded.Settings.NextInvoiceNumber)
		assert.Equal(t, 4, loaded.Equipment[0].AvailableStock)
		assert.NotNil(t, loaded.Rentals)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Creates default when missing", func(t *testing.T) {
		mock.ExpectQuery("SELECT body, revision FROM rental_documents").
			WithArgs(DocumentID).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectExec("INSERT INTO rental_documents").
			WithArgs(DocumentID, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultNextInvoiceNumber, loaded.Settings.NextInvoiceNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Query error", func(t *testing.T) {
		mock.ExpectQuery("SELECT body, revision FROM rental_documents").
			WithArgs(DocumentID).
			WillReturnError(errors.New("connection refused"))

		_, err := store.Load(ctx)
		assert.True(t, domain.IsStorage(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Corrupt body", func(t *testing.T) {
		mock.ExpectQuery("SELECT body, revision FROM rental_documents").
			WithArgs(DocumentID).
			WillReturnRows(sqlmock.NewRows([]string{"body", "revision"}).AddRow([]byte("{"), 2))

		_, err := store.Load(ctx)
		assert.True(t, domain.IsStorage(err))
	})
}

func TestDocumentStore_Save(t *testing.T) {
	db, mock := newMock(t)
	store := NewDocumentStore(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT body, revision FROM rental_documents").
		WithArgs(DocumentID).
		WillReturnRows(sqlmock.NewRows([]string{"body", "revision"}).AddRow([]byte(storedDocument), 3))
	loaded, err := store.Load(ctx)
	require.NoError(t, err)

	t.Run("Success bumps revision", func(t *testing.T) {
		mock.ExpectExec("UPDATE rental_documents SET body = \\$1, revision = revision \\+ 1").
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), DocumentID, 3).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE rental_documents").
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), DocumentID, 4).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, store.Save(ctx, loaded))
		require.NoError(t, store.Save(ctx, loaded))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Conflict", func(t *testing.T) {
		mock.ExpectExec("UPDATE rental_documents").
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), DocumentID, 5).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := store.Save(ctx, loaded)
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Exec error", func(t *testing.T) {
		mock.ExpectExec("UPDATE rental_documents").
			WillReturnError(errors.New("disk full"))

		err := store.Save(ctx, loaded)
		assert.True(t, domain.IsStorage(err))
	})
}

func TestDocumentStore_Raw(t *testing.T) {
	db, mock := newMock(t)
	store := NewDocumentStore(db)
	ctx := context.Background()

	t.Run("WriteRaw upserts", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO rental_documents (.+) ON CONFLICT \\(id\\) DO UPDATE").
			WithArgs(DocumentID, []byte(storedDocument), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, store.WriteRaw(ctx, []byte(storedDocument)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ReadRaw returns body", func(t *testing.T) {
		mock.ExpectQuery("SELECT body, revision FROM rental_documents").
			WithArgs(DocumentID).
			WillReturnRows(sqlmock.NewRows([]string{"body", "revision"}).AddRow([]byte(storedDocument), 9))

		data, err := store.ReadRaw(ctx)
		require.NoError(t, err)
		assert.JSONEq(t, storedDocument, string(data))
	})

	t.Run("ReadRaw missing", func(t *testing.T) {
		mock.ExpectQuery("SELECT body, revision FROM rental_documents").
			WithArgs(DocumentID).
			WillReturnError(sql.ErrNoRows)

		_, err := store.ReadRaw(ctx)
		assert.True(t, domain.IsStorage(err))
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestEnsureSchema(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS rental_documents").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, EnsureSchema(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}
