package export

import (
	"context"
	"fmt"
	"time"

	"github.com/tair/warehouse-inbound/internal/note/domain"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	// Download links expire after one hour
	urlTTL = time.Hour
)

// Exporter renders notes to spreadsheets and publishes them to blob storage.
type Exporter struct {
	blobs BlobStore
}

// NewExporter creates a new exporter
func NewExporter(blobs BlobStore) *Exporter {
	return &Exporter{blobs: blobs}
}

// Export renders the note, uploads it under note_{NoteID}.xlsx and returns a
// time-limited download URL.
func (e *Exporter) Export(ctx context.Context, note *domain.InboundNote) (string, error) {
	data, err := RenderXLSX(note)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("note_%s.xlsx", note.NoteID)
	if err := e.blobs.Upload(ctx, key, data, xlsxContentType); err != nil {
		return "", err
	}

	return e.blobs.SignedURL(key, urlTTL)
}
