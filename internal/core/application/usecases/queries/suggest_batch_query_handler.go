package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/services"
)

// CustomerAttempts reads the non-terminal attempts of a customer.
// ports.ShippingAttemptRepository satisfies it.
type CustomerAttempts interface {
	ListByCustomer(ctx context.Context, customerID kernel.UUID) ([]*shipment.Attempt, error)
}

// SuggestBatchQueryHandler applies the batch planner's eligibility rule to
// the customer's attempts, so suggestions and createBatch never disagree.
type SuggestBatchQueryHandler struct {
	attempts CustomerAttempts
	planner  services.BatchPlanner
}

func NewSuggestBatchQueryHandler(attempts CustomerAttempts) SuggestBatchQueryHandler {
	return SuggestBatchQueryHandler{attempts: attempts, planner: services.NewBatchPlanner()}
}

func (h SuggestBatchQueryHandler) Handle(ctx context.Context, query SuggestBatchQuery) ([]AttemptView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	attempts, err := h.attempts.ListByCustomer(ctx, query.CustomerID())
	if err != nil {
		return nil, err
	}

	suggested := h.planner.Suggest(attempts)
	views := make([]AttemptView, 0, len(suggested))
	for _, a := range suggested {
		views = append(views, attemptView(a))
	}
	return views, nil
}

func attemptView(a *shipment.Attempt) AttemptView {
	return AttemptView{
		ID:                a.ID(),
		OrderID:           a.OrderID(),
		CustomerID:        a.CustomerID(),
		Assignee:          a.Assignee(),
		Status:            a.Status().String(),
		DeclaredTotal:     a.DeclaredTotal().Amount(),
		CODCollected:      a.CODCollected(),
		CollectedAmount:   a.CollectedAmount().Amount(),
		CODCollectedAt:    a.CODCollectedAt(),
		CODTransferredAt:  a.CODTransferredAt(),
		Note:              a.Note(),
		UnexpectedCase:    a.UnexpectedCase(),
		ProofPictures:     a.ProofPictures(),
		BatchCode:         a.BatchCode(),
		EstimatedDelivery: a.EstimatedDelivery(),
		DeliveredAt:       a.DeliveredAt(),
		CreatedAt:         a.CreatedAt(),
		UpdatedAt:         a.UpdatedAt(),
	}
}
