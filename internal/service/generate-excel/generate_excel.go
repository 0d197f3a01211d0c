package generate_excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"bms-board/internal/storage"
)

type WorklistSource interface {
	Worklist(ctx context.Context, staff string) ([]storage.AggregatedRow, []storage.AttributedRow, error)
}

type GenerateExcelService struct {
	source WorklistSource
}

func NewGenerateService(source WorklistSource) *GenerateExcelService {
	return &GenerateExcelService{source: source}
}

// GenerateExcel renders the staff member's current worklist as an xlsx
// document, one row per merged original order.
func (g *GenerateExcelService) GenerateExcel(ctx context.Context, staff string) ([]byte, error) {
	rows, _, err := g.source.Worklist(ctx, staff)
	if err != nil {
		return nil, fmt.Errorf("fetch worklist: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "AS 관리"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	wrapStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})

	headers := []string{"AS 번호", "접수일", "구분", "AS 상세 분류", "원주문번호", "AS/피팅 사유", "고객명"}
	for i, name := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, name)
	}

	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheet, "A1", lastHeader, headerStyle)

	for rowIdx, r := range rows {
		rowNum := rowIdx + 2
		f.SetCellValue(sheet, cellName(1, rowNum), r.ServiceCode)
		f.SetCellValue(sheet, cellName(2, rowNum), r.Received)
		f.SetCellValue(sheet, cellName(3, rowNum), r.Category)
		f.SetCellValue(sheet, cellName(4, rowNum), r.Class)
		f.SetCellValue(sheet, cellName(5, rowNum), r.OrigCode)
		f.SetCellValue(sheet, cellName(6, rowNum), r.Reason)
		f.SetCellValue(sheet, cellName(7, rowNum), r.Customer)
	}

	if len(rows) > 0 {
		lastCell, _ := excelize.CoordinatesToCellName(len(headers), len(rows)+1)
		f.SetCellStyle(sheet, "A2", lastCell, wrapStyle)
	}

	// merged classifications and reasons are multi-line
	f.SetColWidth(sheet, "A", "B", 14)
	f.SetColWidth(sheet, "C", "C", 12)
	f.SetColWidth(sheet, "D", "D", 28)
	f.SetColWidth(sheet, "E", "E", 14)
	f.SetColWidth(sheet, "F", "F", 48)
	f.SetColWidth(sheet, "G", "G", 12)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}

	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	return cell
}
