// Package exports renders reports as xlsx workbooks for download.
package exports

import (
	"fmt"
	"io"

	"github.com/medilinkhq/pharmacy_backend/models"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

// WritePurchaseReport streams the purchase report as an xlsx workbook. One
// row per line item so quantities and unit prices survive the export.
func WritePurchaseReport(w io.Writer, report *models.PurchaseReport) error {
	f := excelize.NewFile()
	defer f.Close()

	headings := []string{"Invoice", "Date", "SupplierId", "ProductId", "Quantity", "UnitPrice", "LineTotal", "PaymentStatus"}
	col := 'A'
	for _, h := range headings {
		f.SetCellValue(sheetName, string(col)+"1", h)
		col++
	}

	rowNo := 2
	for _, p := range report.Purchases {
		for _, item := range p.Items {
			f.SetCellValue(sheetName, "A"+fmt.Sprint(rowNo), p.InvoiceNumber)
			f.SetCellValue(sheetName, "B"+fmt.Sprint(rowNo), p.PurchaseDate.Format("2006-01-02"))
			f.SetCellValue(sheetName, "C"+fmt.Sprint(rowNo), p.SupplierId)
			f.SetCellValue(sheetName, "D"+fmt.Sprint(rowNo), item.ProductId)
			f.SetCellValue(sheetName, "E"+fmt.Sprint(rowNo), item.Quantity)
			f.SetCellValue(sheetName, "F"+fmt.Sprint(rowNo), item.UnitPrice.String())
			f.SetCellValue(sheetName, "G"+fmt.Sprint(rowNo), item.TotalPrice.String())
			f.SetCellValue(sheetName, "H"+fmt.Sprint(rowNo), string(p.PaymentStatus))
			rowNo++
		}
	}

	rowNo++
	f.SetCellValue(sheetName, "A"+fmt.Sprint(rowNo), "TotalPurchases")
	f.SetCellValue(sheetName, "B"+fmt.Sprint(rowNo), report.Summary.TotalPurchases)
	rowNo++
	f.SetCellValue(sheetName, "A"+fmt.Sprint(rowNo), "TotalAmount")
	f.SetCellValue(sheetName, "B"+fmt.Sprint(rowNo), report.Summary.TotalAmount.String())
	rowNo++
	f.SetCellValue(sheetName, "A"+fmt.Sprint(rowNo), "AveragePurchaseValue")
	f.SetCellValue(sheetName, "B"+fmt.Sprint(rowNo), report.Summary.AveragePurchaseValue.String())

	return f.Write(w)
}

// WriteSalesReport streams the sales report as an xlsx workbook, one row per
// line item.
func WriteSalesReport(w io.Writer, report *models.SalesReport) error {
	f := excelize.NewFile()
	defer f.Close()

	headings := []string{"Invoice", "Date", "Customer", "Product", "Quantity", "UnitPrice", "LineTotal", "PaymentStatus"}
	col := 'A'
	for _, h := range headings {
		f.SetCellValue(sheetName, string(col)+"1", h)
		col++
	}

	rowNo := 2
	for _, s := range report.Sales {
		for _, item := range s.Items {
			f.SetCellValue(sheetName, "A"+fmt.Sprint(rowNo), s.InvoiceNumber)
			f.SetCellValue(sheetName, "B"+fmt.Sprint(rowNo), s.SaleDate.Format("2006-01-02"))
			f.SetCellValue(sheetName, "C"+fmt.Sprint(rowNo), s.CustomerName)
			f.SetCellValue(sheetName, "D"+fmt.Sprint(rowNo), item.Product.Name)
			f.SetCellValue(sheetName, "E"+fmt.Sprint(rowNo), item.Quantity)
			f.SetCellValue(sheetName, "F"+fmt.Sprint(rowNo), item.UnitPrice.String())
			f.SetCellValue(sheetName, "G"+fmt.Sprint(rowNo), item.TotalPrice.String())
			f.SetCellValue(sheetName, "H"+fmt.Sprint(rowNo), string(s.PaymentStatus))
			rowNo++
		}
	}

	rowNo++
	f.SetCellValue(sheetName, "A"+fmt.Sprint(rowNo), "TotalSales")
	f.SetCellValue(sheetName, "B"+fmt.Sprint(rowNo), report.Summary.TotalSales)
	rowNo++
	f.SetCellValue(sheetName, "A"+fmt.Sprint(rowNo), "TotalRevenue")
	f.SetCellValue(sheetName, "B"+fmt.Sprint(rowNo), report.Summary.TotalRevenue.String())
	rowNo++
	f.SetCellValue(sheetName, "A"+fmt.Sprint(rowNo), "AverageOrderValue")
	f.SetCellValue(sheetName, "B"+fmt.Sprint(rowNo), report.Summary.AverageOrderValue.String())

	return f.Write(w)
}
