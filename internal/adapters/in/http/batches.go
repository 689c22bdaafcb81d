package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/batch"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/principal"

	"github.com/labstack/echo/v4"
)

// SuggestBatch handles GET /api/v1/customers/{customerId}/batch-suggestions.
func (s *Server) SuggestBatch(c echo.Context) error {
	customerID, err := pathUUID(c, "customerId")
	if err != nil {
		return err
	}
	query, err := queries.NewSuggestBatchQuery(customerID)
	if err != nil {
		return err
	}

	views, err := s.h.SuggestBatch.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, attemptsFromViews(views))
}

// CreateBatch handles POST /api/v1/batches. The caller becomes the batch owner.
func (s *Server) CreateBatch(c echo.Context) error {
	var req CreateBatchRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewCreateBatchCommand(req.OrderIDs, caller(c).ID, req.Note)
	if err != nil {
		return err
	}
	b, err := s.h.CreateBatch.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, batchFromDomain(b))
}

// ListBatches handles GET /api/v1/batches. Staff see their own batches; an
// admin sees every batch or filters by staffId.
func (s *Server) ListBatches(c echo.Context) error {
	staffID, err := queryUUID(c, "staffId")
	if err != nil {
		return err
	}
	if p := caller(c); p.Role != principal.RoleAdmin {
		staffID = &p.ID
	}
	var status *batch.Status
	if raw := c.QueryParam("status"); raw != "" {
		parsed, parseErr := batch.ParseStatus(raw)
		if parseErr != nil {
			return parseErr
		}
		status = &parsed
	}
	limit, offset, err := queryPage(c)
	if err != nil {
		return err
	}

	query, err := queries.NewListBatchesQuery(staffID, status, limit, offset)
	if err != nil {
		return err
	}
	views, err := s.h.ListBatches.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, batchesFromViews(views))
}

// GetBatch handles GET /api/v1/batches/{batchCode}.
func (s *Server) GetBatch(c echo.Context) error {
	code, err := pathString(c, "batchCode")
	if err != nil {
		return err
	}
	query, err := queries.NewGetBatchQuery(code)
	if err != nil {
		return err
	}

	view, err := s.h.GetBatch.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, batchFromView(view))
}

// PickupBatch handles POST /api/v1/batches/{batchCode}/pickup.
func (s *Server) PickupBatch(c echo.Context) error {
	code, err := pathString(c, "batchCode")
	if err != nil {
		return err
	}
	cmd, err := commands.NewPickupBatchCommand(code, caller(c).ID)
	if err != nil {
		return err
	}

	res, err := s.h.PickupBatch.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	members := make([]Attempt, 0, len(res.Members))
	for _, a := range res.Members {
		members = append(members, attemptFromDomain(a))
	}
	return c.JSON(http.StatusOK, PickupResponse{Batch: batchFromDomain(res.Batch), Members: members})
}

// BulkUpdateBatch handles POST /api/v1/batches/{batchCode}/bulk-update. It
// answers 200 with per-member results even when some members were rejected.
func (s *Server) BulkUpdateBatch(c echo.Context) error {
	code, err := pathString(c, "batchCode")
	if err != nil {
		return err
	}
	var req BulkUpdateRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	updates := make([]commands.MemberUpdate, 0, len(req.Updates))
	for _, u := range req.Updates {
		target, parseErr := shipment.ParseStatus(u.Status)
		if parseErr != nil {
			return parseErr
		}
		payload, payloadErr := u.payload()
		if payloadErr != nil {
			return payloadErr
		}
		updates = append(updates, commands.MemberUpdate{OrderID: u.OrderID, Target: target, Payload: payload})
	}

	cmd, err := commands.NewBulkUpdateBatchCommand(code, caller(c).ID, updates)
	if err != nil {
		return err
	}
	res, err := s.h.BulkUpdateBatch.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, bulkUpdateFromResult(res))
}

// CompleteBatch handles POST /api/v1/batches/{batchCode}/complete.
func (s *Server) CompleteBatch(c echo.Context) error {
	code, err := pathString(c, "batchCode")
	if err != nil {
		return err
	}
	var req CompleteBatchRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	total, err := kernel.NewMoney(req.TotalCODAmount)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCompleteBatchCommand(code, caller(c).ID, batch.Completion{
		Photos:         req.Photos,
		Note:           req.Note,
		CODCollected:   req.CODCollected,
		TotalCODAmount: total,
	})
	if err != nil {
		return err
	}
	b, err := s.h.CompleteBatch.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, batchFromDomain(b))
}
