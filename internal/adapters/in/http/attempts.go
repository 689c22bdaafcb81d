package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/labstack/echo/v4"
)

const defaultPageSize = 50

// ListAvailableAttempts handles GET /api/v1/attempts/available.
func (s *Server) ListAvailableAttempts(c echo.Context) error {
	limit, offset, err := queryPage(c)
	if err != nil {
		return err
	}
	query, err := queries.NewListAvailableAttemptsQuery(limit, offset)
	if err != nil {
		return err
	}

	views, err := s.h.ListAvailableAttempts.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, attemptsFromViews(views))
}

// ListMyAttempts handles GET /api/v1/attempts/mine: the calling staff
// member's deliveries, optionally only the ones still in flight.
func (s *Server) ListMyAttempts(c echo.Context) error {
	active, err := queryBool(c, "active", false)
	if err != nil {
		return err
	}
	limit, offset, err := queryPage(c)
	if err != nil {
		return err
	}
	query, err := queries.NewListAttemptsByStaffQuery(caller(c).ID, active, limit, offset)
	if err != nil {
		return err
	}

	views, err := s.h.ListAttemptsByStaff.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, attemptsFromViews(views))
}

// ClaimAttempt handles POST /api/v1/attempts/{attemptId}/claim for the calling staff member.
func (s *Server) ClaimAttempt(c echo.Context) error {
	attemptID, err := pathUUID(c, "attemptId")
	if err != nil {
		return err
	}
	cmd, err := commands.NewClaimAttemptCommand(attemptID, caller(c).ID)
	if err != nil {
		return err
	}

	a, err := s.h.ClaimAttempt.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, attemptFromDomain(a))
}

// TransitionAttempt handles POST /api/v1/attempts/{attemptId}/transition.
func (s *Server) TransitionAttempt(c echo.Context) error {
	attemptID, err := pathUUID(c, "attemptId")
	if err != nil {
		return err
	}
	var req TransitionRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	target, err := shipment.ParseStatus(req.Status)
	if err != nil {
		return err
	}
	payload, err := req.payload()
	if err != nil {
		return err
	}

	cmd, err := commands.NewTransitionAttemptCommand(attemptID, caller(c).ID, target, payload)
	if err != nil {
		return err
	}
	a, err := s.h.TransitionAttempt.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, attemptFromDomain(a))
}

// CancelAttempt handles POST /api/v1/attempts/{attemptId}/cancel.
func (s *Server) CancelAttempt(c echo.Context) error {
	attemptID, err := pathUUID(c, "attemptId")
	if err != nil {
		return err
	}
	var req CancelAttemptRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewCancelAttemptCommand(attemptID, req.Reason)
	if err != nil {
		return err
	}
	a, err := s.h.CancelAttempt.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, attemptFromDomain(a))
}
