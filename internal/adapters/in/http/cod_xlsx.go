package http

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

const codSheet = "COD"

var codHeaders = []string{
	"Kind", "Reference", "Collected", "Transferred", "Outstanding",
	"Collected at", "Last transfer", "Transfers", "Settled",
}

// writeCODReportXLSX writes one row per line and a totals row.
func writeCODReportXLSX(w io.Writer, report CODReport) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), codSheet); err != nil {
		return err
	}

	for i, h := range codHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err = f.SetCellValue(codSheet, cell, h); err != nil {
			return err
		}
	}

	row := 2
	for _, l := range report.Lines {
		lastTransfer := ""
		if l.LastTransferAt != nil {
			lastTransfer = l.LastTransferAt.Format(time.RFC3339)
		}
		values := []any{
			l.RefKind, l.RefID, l.Collected, l.Transferred, l.Outstanding,
			l.CollectedAt.Format(time.RFC3339), lastTransfer, l.Transfers, l.Settled,
		}
		if err := f.SetSheetRow(codSheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return err
		}
		row++
	}

	totals := []any{"TOTAL", "", report.TotalCollected, report.TotalTransferred, report.TotalOutstanding}
	if err := f.SetSheetRow(codSheet, fmt.Sprintf("A%d", row), &totals); err != nil {
		return err
	}

	return f.Write(w)
}
