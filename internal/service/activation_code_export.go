package service

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/actcode-admin/internal/models"
	"github.com/actcode-admin/internal/repository"

	"github.com/xuri/excelize/v2"
)

const exportSheetName = "激活码数据"

// 导出列定义，顺序即表格列顺序。
var exportColumns = []struct {
	Header string
	Width  float64
}{
	{"激活码", 20},
	{"类型", 12},
	{"导入时间", 12},
	{"已激活", 8},
	{"激活时间", 12},
	{"已退款", 8},
	{"退款时间", 12},
	{"退款原因", 20},
	{"已收回", 8},
	{"收回时间", 12},
}

// ExportResult 导出结果：base64 编码的 xlsx 内容、行数与文件名。
type ExportResult struct {
	Data     string `json:"data"`
	Count    int    `json:"count"`
	Filename string `json:"filename"`
}

// Export 导出激活码数据为 xlsx。
// 只读视图：按数据日期、导入时间倒序，不改变任何持久状态。
func (s *ActivationCodeService) Export(startDate, endDate string) (*ExportResult, error) {
	from, err := parseDateValue(startDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	to, err := parseDateValue(endDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	records, err := s.repo.ListForExport(repository.ActivationCodeExportFilter{
		DataDateFrom: from,
		DataDateTo:   to,
	})
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return nil, err
	}

	headers := make([]interface{}, 0, len(exportColumns))
	for i, col := range exportColumns {
		headers = append(headers, col.Header)
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(exportSheetName, name, name, col.Width); err != nil {
			return nil, err
		}
	}
	if err := f.SetSheetRow(exportSheetName, "A1", &headers); err != nil {
		return nil, err
	}

	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := exportRow(record)
		if err := f.SetSheetRow(exportSheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	return &ExportResult{
		Data:     base64.StdEncoding.EncodeToString(buf.Bytes()),
		Count:    len(records),
		Filename: fmt.Sprintf("激活码数据_%s.xlsx", time.Now().Format("2006-01-02")),
	}, nil
}

func exportRow(record models.ActivationCode) []interface{} {
	return []interface{}{
		record.Code,
		fmt.Sprintf("%d天KEY", record.Type),
		formatExportDate(&record.ImportedAt),
		formatExportBool(record.Activated),
		formatExportDate(record.ActivatedAt),
		formatExportBool(record.Refunded),
		formatExportDate(record.RefundedAt),
		stringValue(record.RefundNote),
		formatExportBool(record.Revoked),
		formatExportDate(record.RevokedAt),
	}
}

// formatExportDate 仅输出日期部分，空时间输出空串。
func formatExportDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatExportBool(v bool) string {
	if v {
		return "是"
	}
	return "否"
}

func stringValue(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
