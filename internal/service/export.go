package service

import (
	"context"
	"fmt"

	"restaurant-ordering/internal/domain"

	"github.com/xuri/excelize/v2"
)

const revenueSheet = "Revenue"

// ExportReport renders the per-restaurant revenue report as an XLSX
// workbook with a totals row, for the admin spreadsheet download.
func (s *RevenueService) ExportReport(ctx context.Context) ([]byte, error) {
	report, err := s.Report(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", revenueSheet)

	headers := []string{
		"Restaurant", "Orders", "Gross Revenue", "Avg Order Value", "Unique Customers",
		"Commission", "Service Fees", "Delivery Profit", "Platform Profit",
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, err
	}

	moneyFmt := "$#,##0.00"
	moneyStyle, err := f.NewStyle(&excelize.Style{
		CustomNumFmt: &moneyFmt,
	})
	if err != nil {
		return nil, err
	}

	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(revenueSheet, cell, header)
		f.SetCellStyle(revenueSheet, cell, cell, headerStyle)
	}

	totals := domain.RevenueRow{}
	for i, row := range report {
		values := []interface{}{
			row.RestaurantName,
			row.TotalOrders,
			row.GrossRevenue.InexactFloat64(),
			row.AvgOrderValue.InexactFloat64(),
			row.UniqueCustomers,
			row.Commission.InexactFloat64(),
			row.ServiceFees.InexactFloat64(),
			row.DeliveryProfit.InexactFloat64(),
			row.PlatformProfit.InexactFloat64(),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(revenueSheet, cell, value)
		}

		totals.TotalOrders += row.TotalOrders
		totals.GrossRevenue = totals.GrossRevenue.Add(row.GrossRevenue)
		totals.Commission = totals.Commission.Add(row.Commission)
		totals.ServiceFees = totals.ServiceFees.Add(row.ServiceFees)
		totals.DeliveryProfit = totals.DeliveryProfit.Add(row.DeliveryProfit)
		totals.PlatformProfit = totals.PlatformProfit.Add(row.PlatformProfit)
	}

	totalRow := len(report) + 2
	totalValues := []interface{}{
		"TOTAL",
		totals.TotalOrders,
		totals.GrossRevenue.InexactFloat64(),
		nil,
		nil,
		totals.Commission.InexactFloat64(),
		totals.ServiceFees.InexactFloat64(),
		totals.DeliveryProfit.InexactFloat64(),
		totals.PlatformProfit.InexactFloat64(),
	}
	for col, value := range totalValues {
		if value == nil {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(col+1, totalRow)
		f.SetCellValue(revenueSheet, cell, value)
		f.SetCellStyle(revenueSheet, cell, cell, headerStyle)
	}

	// Money columns C through I.
	if err := f.SetColStyle(revenueSheet, "C:D", moneyStyle); err != nil {
		return nil, err
	}
	if err := f.SetColStyle(revenueSheet, "F:I", moneyStyle); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(revenueSheet, "A", "A", 28); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(revenueSheet, "B", "I", 16); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write revenue workbook: %w", err)
	}
	return buf.Bytes(), nil
}
