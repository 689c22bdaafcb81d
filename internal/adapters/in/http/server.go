// Package http is the REST adapter of the fulfillment service. Routes decode
// and validate the request, build a command or query, run its handler and
// map the result; errors are rendered by NewErrorHandler.
package http

import (
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"
)

// Handlers groups the use cases the server exposes.
type Handlers struct {
	// Command handlers
	RegisterOrder         commands.RegisterOrderCommandHandler
	OpenAttempt           commands.OpenAttemptCommandHandler
	ClaimAttempt          commands.ClaimAttemptCommandHandler
	TransitionAttempt     commands.TransitionAttemptCommandHandler
	CancelAttempt         commands.CancelAttemptCommandHandler
	CreateBatch           commands.CreateBatchCommandHandler
	PickupBatch           commands.PickupBatchCommandHandler
	BulkUpdateBatch       commands.BulkUpdateBatchCommandHandler
	CompleteBatch         commands.CompleteBatchCommandHandler
	RecordCollection      commands.RecordCollectionCommandHandler
	RecordTransfer        commands.RecordTransferCommandHandler
	OpenReturnRequest     commands.OpenReturnRequestCommandHandler
	ReviewReturnRequest   commands.ReviewReturnRequestCommandHandler
	AssignReturnRequest   commands.AssignReturnRequestCommandHandler
	CompleteReturnRequest commands.CompleteReturnRequestCommandHandler
	CancelReturnRequest   commands.CancelReturnRequestCommandHandler

	// Query handlers
	GetOrder              queries.GetOrderQueryHandler
	ListAvailableAttempts queries.ListAvailableAttemptsQueryHandler
	ListAttemptsByStaff   queries.ListAttemptsByStaffQueryHandler
	SuggestBatch          queries.SuggestBatchQueryHandler
	GetBatch              queries.GetBatchQueryHandler
	ListBatches           queries.ListBatchesQueryHandler
	CODReport             queries.CODReportQueryHandler
	GetReturnRequest      queries.GetReturnRequestQueryHandler
	ListReturnRequests    queries.ListReturnRequestsQueryHandler
}

// Server coordinates between HTTP routes and application use cases.
type Server struct {
	h             Handlers
	photos        ports.PhotoStorage
	maxPhotoBytes int64
}

func NewServer(h Handlers, photos ports.PhotoStorage, maxPhotoBytes int64) *Server {
	return &Server{h: h, photos: photos, maxPhotoBytes: maxPhotoBytes}
}
