package export

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tair/warehouse-inbound/internal/note/domain"
)

// TestRenderXLSX verifies the fixed layout: header rows, blank separator,
// column headers, then one row per line item in list order.
func TestRenderXLSX(t *testing.T) {
	note := &domain.InboundNote{
		NoteID: "n-42",
		Date:   "2026-08-15",
		Products: []domain.LineItem{
			{ProductID: "b", Quantity: 3},
			{ProductID: "a", Quantity: 5},
		},
	}

	data, err := RenderXLSX(note)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(0)
	cell := func(ref string) string {
		v, err := f.GetCellValue(sheet, ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "NoteID", cell("A1"))
	assert.Equal(t, "n-42", cell("B1"))
	assert.Equal(t, "Date", cell("A2"))
	assert.Equal(t, "2026-08-15", cell("B2"))
	assert.Empty(t, cell("A3"), "row 3 separates the header from the items")
	assert.Equal(t, "ProductID", cell("A4"))
	assert.Equal(t, "Quantity", cell("B4"))

	// Items keep submission order, no sorting
	assert.Equal(t, "b", cell("A5"))
	assert.Equal(t, "3", cell("B5"))
	assert.Equal(t, "a", cell("A6"))
	assert.Equal(t, "5", cell("B6"))
}

// fakeBlobStore captures the upload and hands back a canned URL.
type fakeBlobStore struct {
	key         string
	contentType string
	data        []byte
	ttl         time.Duration
}

func (f *fakeBlobStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	f.key = key
	f.data = data
	f.contentType = contentType
	return nil
}

func (f *fakeBlobStore) SignedURL(key string, expires time.Duration) (string, error) {
	f.ttl = expires
	return "https://storage.example.com/" + key + "?sig=abc", nil
}

// TestExporter verifies the artifact key, content type and link TTL.
func TestExporter(t *testing.T) {
	blobs := &fakeBlobStore{}
	exporter := NewExporter(blobs)

	note := &domain.InboundNote{
		NoteID:   "n-42",
		Date:     "2026-08-15",
		Products: []domain.LineItem{{ProductID: "a", Quantity: 5}},
	}

	url, err := exporter.Export(context.Background(), note)
	require.NoError(t, err)

	assert.Equal(t, "note_n-42.xlsx", blobs.key)
	assert.Equal(t, xlsxContentType, blobs.contentType)
	assert.NotEmpty(t, blobs.data)
	assert.Equal(t, time.Hour, blobs.ttl)
	assert.Equal(t, "https://storage.example.com/note_n-42.xlsx?sig=abc", url)
}
