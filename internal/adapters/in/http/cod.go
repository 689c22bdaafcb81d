package http

import (
	"fmt"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/cod"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func codReference(c echo.Context) (cod.Reference, error) {
	rawKind, err := pathString(c, "refKind")
	if err != nil {
		return cod.Reference{}, err
	}
	kind, err := cod.ParseRefKind(rawKind)
	if err != nil {
		return cod.Reference{}, err
	}
	id, err := pathString(c, "refId")
	if err != nil {
		return cod.Reference{}, err
	}
	if kind == cod.RefAttempt {
		attemptID, parseErr := kernel.UUIDFromString(id)
		if parseErr != nil {
			return cod.Reference{}, parseErr
		}
		return cod.AttemptRef(attemptID), nil
	}
	return cod.BatchRef(id), nil
}

// RecordCollection handles POST /api/v1/cod/{refKind}/{refId}/collections.
func (s *Server) RecordCollection(c echo.Context) error {
	ref, err := codReference(c)
	if err != nil {
		return err
	}
	var req MoneyRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	amount, err := kernel.NewMoney(req.Amount)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRecordCollectionCommand(ref, amount, timeOr(req.At, time.Now().UTC()))
	if err != nil {
		return err
	}
	record, err := s.h.RecordCollection.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, codRecordFromDomain(record))
}

// RecordTransfer handles POST /api/v1/cod/{refKind}/{refId}/transfers.
func (s *Server) RecordTransfer(c echo.Context) error {
	ref, err := codReference(c)
	if err != nil {
		return err
	}
	var req MoneyRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	amount, err := kernel.NewMoney(req.Amount)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRecordTransferCommand(ref, amount, timeOr(req.At, time.Time{}))
	if err != nil {
		return err
	}
	record, err := s.h.RecordTransfer.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, codRecordFromDomain(record))
}

// CODReport handles GET /api/v1/cod/report. The period defaults to the last
// 30 days; ?format=xlsx returns a spreadsheet instead of JSON.
func (s *Server) CODReport(c echo.Context) error {
	now := time.Now().UTC()
	to, err := queryTime(c, "to", now)
	if err != nil {
		return err
	}
	from, err := queryTime(c, "from", to.AddDate(0, 0, -30))
	if err != nil {
		return err
	}
	query, err := queries.NewCODReportQuery(from, to, c.QueryParam("outstanding") == "true")
	if err != nil {
		return err
	}

	view, err := s.h.CODReport.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	report := codReportFromView(view)

	if c.QueryParam("format") != "xlsx" {
		return c.JSON(http.StatusOK, report)
	}

	filename := fmt.Sprintf("cod-report-%s-%s.xlsx", from.Format("20060102"), to.Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	c.Response().Header().Set(echo.HeaderContentType, xlsxContentType)
	c.Response().WriteHeader(http.StatusOK)
	return writeCODReportXLSX(c.Response(), report)
}
