package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tair/warehouse-inbound/internal/note/domain"
)

// RenderXLSX renders a note as a spreadsheet with a fixed layout: NoteID and
// Date header rows, a blank separator row, the ProductID/Quantity column
// headers, then one row per line item in list order.
func RenderXLSX(note *domain.InboundNote) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	f.SetCellValue(sheet, "A1", "NoteID")
	f.SetCellValue(sheet, "B1", note.NoteID)
	f.SetCellValue(sheet, "A2", "Date")
	f.SetCellValue(sheet, "B2", note.Date)

	// Row 3 stays blank
	f.SetCellValue(sheet, "A4", "ProductID")
	f.SetCellValue(sheet, "B4", "Quantity")

	row := 5
	for _, item := range note.Products {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), item.ProductID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), item.Quantity)
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write spreadsheet: %w", err)
	}
	return buf.Bytes(), nil
}
