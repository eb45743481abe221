package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportService 报价单导出
type ExportService struct {
	transformerSvc *TransformerService
}

// NewExportService 创建导出服务
func NewExportService(transformerSvc *TransformerService) *ExportService {
	return &ExportService{transformerSvc: transformerSvc}
}

var quoteLineHeaders = []string{"Item", "Detail", "Unit Price", "Qty / Weight (kg)", "Cost"}

// ExportQuote 导出变压器报价单为xlsx，返回文件对象和建议文件名
func (s *ExportService) ExportQuote(ctx context.Context, id int64) (*excelize.File, string, error) {
	detail, err := s.transformerSvc.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheet := "Quote"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	// 报价单头
	f.SetCellValue(sheet, "A1", "Transformer")
	f.SetCellValue(sheet, "B1", detail.Name)
	f.SetCellValue(sheet, "A2", "Shape")
	f.SetCellValue(sheet, "B2", detail.Type)
	row := 3
	if detail.Customer != nil {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Customer")
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), detail.Customer.Name)
		row++
	}
	row++

	// 明细表头
	for i, h := range quoteLineHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := fmt.Sprintf("%s%d", col, row)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}
	row++

	// 铁芯段
	if detail.SquareCore != nil {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Lamination")
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), detail.SquareCore.LaminationName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), detail.SquareCore.LaminationPricePerKg)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), detail.SquareCore.LaminationWeightKg)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), detail.SquareCore.LaminationCost)
		row++
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Core")
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), detail.SquareCore.CoreName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), detail.SquareCore.CorePrice)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), 1)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), detail.SquareCore.CorePrice)
		row++
	}
	if detail.RoundCore != nil {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Round core")
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), detail.RoundCore.PricePerKg)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), detail.RoundCore.WeightKg)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), detail.RoundCore.Cost)
		row++
	}

	// 线圈
	for _, w := range detail.Windings {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("Winding (%s)", w.Role))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), w.SpecName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), w.PricePerKg)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), w.WeightKg)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), w.Cost)
		row++
	}

	// 配件
	for _, a := range detail.Accessories {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Accessory")
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), a.Name)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), a.UnitPrice)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), a.Quantity)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), a.Cost)
		row++
	}

	// 合计，直接用落库的快照值
	row++
	totalCell := fmt.Sprintf("A%d", row)
	f.SetCellValue(sheet, totalCell, "Total")
	f.SetCellStyle(sheet, totalCell, totalCell, boldStyle)
	f.SetCellValue(sheet, fmt.Sprintf("E%d", row), detail.TotalCost)

	filename := fmt.Sprintf("quote-%d.xlsx", detail.ID)
	return f, filename, nil
}
