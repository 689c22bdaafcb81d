package http

import (
	"net/http"

	"fulfillment/internal/pkg/principal"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Register mounts the ops endpoints and the /api/v1 routes on e.
func (s *Server) Register(e *echo.Echo, verifier principal.Verifier, doc *openapi3.T) error {
	spec, err := doc.MarshalJSON()
	if err != nil {
		return err
	}
	registerSwaggerDoc(spec)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/openapi.json", func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, spec)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	var (
		checkout = RequireRole(principal.RoleCheckout)
		staff    = RequireRole(principal.RoleStaff)
		customer = RequireRole(principal.RoleCustomer)
		admin    = RequireRole(principal.RoleAdmin)
		anyone   = RequireRole(principal.RoleStaff, principal.RoleCustomer, principal.RoleCheckout)
		people   = RequireRole(principal.RoleStaff, principal.RoleCustomer)
	)

	api := e.Group("/api/v1", Authenticate(verifier))

	api.POST("/orders", s.RegisterOrder, checkout)
	api.GET("/orders/:orderId", s.GetOrder, anyone)
	api.POST("/orders/:orderId/attempts", s.OpenAttempt, staff)

	api.GET("/attempts/available", s.ListAvailableAttempts, staff)
	api.GET("/attempts/mine", s.ListMyAttempts, staff)
	api.POST("/attempts/:attemptId/claim", s.ClaimAttempt, staff)
	api.POST("/attempts/:attemptId/transition", s.TransitionAttempt, staff)
	api.POST("/attempts/:attemptId/cancel", s.CancelAttempt, staff)

	api.GET("/customers/:customerId/batch-suggestions", s.SuggestBatch, staff)
	api.POST("/batches", s.CreateBatch, staff)
	api.GET("/batches", s.ListBatches, staff)
	api.GET("/batches/:batchCode", s.GetBatch, staff)
	api.POST("/batches/:batchCode/pickup", s.PickupBatch, staff)
	api.POST("/batches/:batchCode/bulk-update", s.BulkUpdateBatch, staff)
	api.POST("/batches/:batchCode/complete", s.CompleteBatch, staff)

	api.POST("/cod/:refKind/:refId/collections", s.RecordCollection, staff)
	api.POST("/cod/:refKind/:refId/transfers", s.RecordTransfer, staff)
	api.GET("/cod/report", s.CODReport, admin)

	api.POST("/return-requests", s.OpenReturnRequest, customer)
	api.GET("/return-requests", s.ListReturnRequests, people)
	api.GET("/return-requests/:id", s.GetReturnRequest, people)
	api.POST("/return-requests/:id/review", s.ReviewReturnRequest, admin)
	api.POST("/return-requests/:id/assign", s.AssignReturnRequest, staff)
	api.POST("/return-requests/:id/complete", s.CompleteReturnRequest, staff)
	api.POST("/return-requests/:id/cancel", s.CancelReturnRequest, customer)

	api.POST("/photos", s.UploadPhoto, people)

	return nil
}
