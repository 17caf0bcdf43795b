package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/warehouse-inbound/internal/note/export"
	"github.com/tair/warehouse-inbound/internal/note/ledger"
	"github.com/tair/warehouse-inbound/internal/note/repository"
	"github.com/tair/warehouse-inbound/internal/note/usecase/command"
	"github.com/tair/warehouse-inbound/internal/note/usecase/query"
	"github.com/tair/warehouse-inbound/pkg/kvstore"
)

// fakeAdjuster accepts everything unless told to reject a product.
type fakeAdjuster struct {
	mu     sync.Mutex
	failOn string
	calls  int
}

func (f *fakeAdjuster) Adjust(ctx context.Context, productID string, delta int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn != "" && productID == f.failOn {
		return &ledger.AdjustmentError{ProductID: productID, Detail: "insufficient quantity"}
	}
	f.calls++
	return nil
}

// fakeBlobStore hands back a canned URL instead of talking to real storage.
type fakeBlobStore struct{}

func (fakeBlobStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	return nil
}

func (fakeBlobStore) SignedURL(key string, expires time.Duration) (string, error) {
	return "https://storage.example.com/" + key, nil
}

// The handler registers its Prometheus collectors globally, so the whole
// package shares one instance.
var (
	setupOnce    sync.Once
	testRouter   *mux.Router
	testAdjuster *fakeAdjuster
)

func router(t *testing.T) *mux.Router {
	t.Helper()
	setupOnce.Do(func() {
		repo := repository.NewKVNoteRepository(kvstore.NewMemoryStore())
		testAdjuster = &fakeAdjuster{failOn: "rejected-product"}
		exporter := export.NewExporter(fakeBlobStore{})

		handler := NewNoteHandlerWithDI(
			command.NewCreateNoteHandler(repo, testAdjuster, nil),
			command.NewUpdateNoteHandler(repo, testAdjuster, nil),
			command.NewDeleteNoteHandler(repo, testAdjuster, nil),
			query.NewGetNoteHandler(repo),
			query.NewListNotesHandler(repo),
			repo,
			exporter,
		)

		testRouter = mux.NewRouter()
		handler.RegisterRoutes(testRouter)
		handler.RegisterHealthCheck(testRouter)
	})
	return testRouter
}

func doJSON(t *testing.T, method, path string, payload any) (*httptest.ResponseRecorder, Response) {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router(t).ServeHTTP(rec, req)

	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec, resp
}

func createNote(t *testing.T, products []map[string]any) string {
	t.Helper()
	rec, resp := doJSON(t, http.MethodPost, "/api/notes", map[string]any{
		"Date":     "2026-08-15",
		"Products": products,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var note struct {
		NoteID string `json:"NoteID"`
	}
	require.NoError(t, json.Unmarshal(data, &note))
	require.NotEmpty(t, note.NoteID)
	return note.NoteID
}

// TestCreateNoteEndpoint verifies a valid create answers 201 with the
// generated NoteID.
func TestCreateNoteEndpoint(t *testing.T) {
	noteID := createNote(t, []map[string]any{
		{"ProductID": "a", "Quantity": 5},
	})

	rec, _ := doJSON(t, http.MethodGet, "/api/notes/"+noteID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

// TestCreateNoteEndpoint_ValidationBatch verifies 400 with every message.
func TestCreateNoteEndpoint_ValidationBatch(t *testing.T) {
	rec, resp := doJSON(t, http.MethodPost, "/api/notes", map[string]any{
		"Products": []map[string]any{
			{"ProductID": "a", "Quantity": 0},
		},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp.Errors, "Date is required")
	assert.Contains(t, resp.Errors, "Invalid quantity for product a. Quantity must be greater than 0.")
}

// TestCreateNoteEndpoint_BadBody verifies malformed JSON answers 400.
func TestCreateNoteEndpoint_BadBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/notes", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	router(t).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestUpdateNoteEndpoint_Missing verifies an unknown note answers 404.
func TestUpdateNoteEndpoint_Missing(t *testing.T) {
	rec, resp := doJSON(t, http.MethodPut, "/api/notes/ghost", map[string]any{
		"Products": []map[string]any{
			{"ProductID": "a", "Quantity": 1},
		},
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Note not found", resp.Error)
}

// TestUpdateNoteEndpoint_RejectedAdjustment verifies a ledger rejection
// surfaces as 400 with the product detail.
func TestUpdateNoteEndpoint_RejectedAdjustment(t *testing.T) {
	noteID := createNote(t, []map[string]any{
		{"ProductID": "b", "Quantity": 2},
	})

	rec, resp := doJSON(t, http.MethodPut, "/api/notes/"+noteID, map[string]any{
		"Products": []map[string]any{
			{"ProductID": "rejected-product", "Quantity": 9},
		},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp.Error, "failed to update product rejected-product")
}

// TestDeleteNoteEndpoint verifies delete answers 200 and the note goes.
func TestDeleteNoteEndpoint(t *testing.T) {
	noteID := createNote(t, []map[string]any{
		{"ProductID": "c", "Quantity": 4},
	})

	rec, _ := doJSON(t, http.MethodDelete, "/api/notes/"+noteID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, http.MethodGet, "/api/notes/"+noteID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// TestExportNoteEndpoint verifies export answers with a download URL.
func TestExportNoteEndpoint(t *testing.T) {
	noteID := createNote(t, []map[string]any{
		{"ProductID": "d", "Quantity": 1},
	})

	rec, resp := doJSON(t, http.MethodGet, "/api/notes/"+noteID+"/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var payload struct {
		URL string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.Equal(t, "https://storage.example.com/note_"+noteID+".xlsx", payload.URL)
}

// TestExportNoteEndpoint_Missing verifies exporting an unknown note is 404.
func TestExportNoteEndpoint_Missing(t *testing.T) {
	rec, _ := doJSON(t, http.MethodGet, "/api/notes/ghost/export", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// TestListNotesEndpoint verifies the listing envelope.
func TestListNotesEndpoint(t *testing.T) {
	createNote(t, []map[string]any{
		{"ProductID": "e", "Quantity": 2},
	})

	rec, resp := doJSON(t, http.MethodGet, "/api/notes", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var listing struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(data, &listing))
	assert.GreaterOrEqual(t, listing.Total, 1)
}

// TestHealthEndpoint verifies the health probe answers 200.
func TestHealthEndpoint(t *testing.T) {
	rec, resp := doJSON(t, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
}
