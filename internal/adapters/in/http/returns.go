package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/principal"

	"github.com/labstack/echo/v4"
)

// OpenReturnRequest handles POST /api/v1/return-requests for the calling customer.
func (s *Server) OpenReturnRequest(c echo.Context) error {
	var req OpenReturnRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewOpenReturnRequestCommand(req.OrderID, caller(c).ID, returns.Reason(req.Reason), req.Detail, req.Evidence)
	if err != nil {
		return err
	}
	r, err := s.h.OpenReturnRequest.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, returnRequestFromDomain(r))
}

// GetReturnRequest handles GET /api/v1/return-requests/{id}. Customers only
// see their own requests.
func (s *Server) GetReturnRequest(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetReturnRequestQuery(id)
	if err != nil {
		return err
	}

	view, err := s.h.GetReturnRequest.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	p := caller(c)
	if p.Role == principal.RoleCustomer && !view.CustomerID.IsEqual(p.ID) {
		return errs.NewObjectNotFoundError("return request", id)
	}

	return c.JSON(http.StatusOK, returnRequestFromView(view))
}

// ListReturnRequests handles GET /api/v1/return-requests. Customers list their
// own requests; staff and admins filter by customerId and status, so
// status=PENDING is the review queue.
func (s *Server) ListReturnRequests(c echo.Context) error {
	customerID, err := queryUUID(c, "customerId")
	if err != nil {
		return err
	}
	if p := caller(c); p.Role == principal.RoleCustomer {
		customerID = &p.ID
	}
	var status *returns.Status
	if raw := c.QueryParam("status"); raw != "" {
		parsed, parseErr := returns.ParseStatus(raw)
		if parseErr != nil {
			return parseErr
		}
		status = &parsed
	}
	limit, offset, err := queryPage(c)
	if err != nil {
		return err
	}

	query, err := queries.NewListReturnRequestsQuery(customerID, status, limit, offset)
	if err != nil {
		return err
	}
	views, err := s.h.ListReturnRequests.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, returnRequestsFromViews(views))
}

// ReviewReturnRequest handles POST /api/v1/return-requests/{id}/review.
func (s *Server) ReviewReturnRequest(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req ReviewReturnRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewReviewReturnRequestCommand(id, returns.Decision(req.Decision), caller(c).ID, req.Note)
	if err != nil {
		return err
	}
	r, err := s.h.ReviewReturnRequest.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, returnRequestFromDomain(r))
}

// AssignReturnRequest handles POST /api/v1/return-requests/{id}/assign. Staff
// assign themselves; an admin may name the staff member.
func (s *Server) AssignReturnRequest(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req AssignReturnRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	p := caller(c)
	staffID := p.ID
	if req.StaffID != nil && p.Role == principal.RoleAdmin {
		staffID = *req.StaffID
	}

	cmd, err := commands.NewAssignReturnRequestCommand(id, staffID)
	if err != nil {
		return err
	}
	r, err := s.h.AssignReturnRequest.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, returnRequestFromDomain(r))
}

// CompleteReturnRequest handles POST /api/v1/return-requests/{id}/complete.
func (s *Server) CompleteReturnRequest(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req CompleteReturnRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewCompleteReturnRequestCommand(id, caller(c).ID, req.Note, req.Photos)
	if err != nil {
		return err
	}
	r, err := s.h.CompleteReturnRequest.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, returnRequestFromDomain(r))
}

// CancelReturnRequest handles POST /api/v1/return-requests/{id}/cancel for the owning customer.
func (s *Server) CancelReturnRequest(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewCancelReturnRequestCommand(id, caller(c).ID)
	if err != nil {
		return err
	}
	r, err := s.h.CancelReturnRequest.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, returnRequestFromDomain(r))
}
