// Package queries contains the read side: each query returns a read model
// built with raw SQL over the tables written by the postgres adapters, so
// reads never load or lock aggregates.
package queries

import (
	"database/sql"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/batch"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// AttemptView is one shipping attempt as shown to staff and customers.
type AttemptView struct {
	ID                kernel.UUID
	OrderID           kernel.UUID
	CustomerID        kernel.UUID
	Assignee          *kernel.UUID
	Status            string
	DeclaredTotal     int64
	CODCollected      bool
	CollectedAmount   int64
	CODCollectedAt    *time.Time
	CODTransferredAt  *time.Time
	Note              string
	UnexpectedCase    string
	ProofPictures     []string
	BatchCode         string
	EstimatedDelivery *time.Time
	DeliveredAt       *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

const attemptColumns = `
	a.id,
	a.order_id,
	a.customer_id,
	a.assignee,
	a.status,
	a.declared_total,
	a.cod_collected,
	a.collected_amount,
	a.cod_collected_at,
	a.cod_transferred_at,
	COALESCE(a.note, ''),
	COALESCE(a.unexpected_case, ''),
	a.proof_pictures,
	COALESCE(a.batch_code, ''),
	a.estimated_delivery,
	a.delivered_at,
	a.created_at,
	a.updated_at`

func scanAttempts(rows *sql.Rows) ([]AttemptView, error) {
	defer rows.Close()

	attempts := make([]AttemptView, 0)
	for rows.Next() {
		var (
			view                    AttemptView
			id, orderID, customerID uuid.UUID
			assignee                *uuid.UUID
			status                  int
			pictures                pq.StringArray
		)
		if err := rows.Scan(
			&id,
			&orderID,
			&customerID,
			&assignee,
			&status,
			&view.DeclaredTotal,
			&view.CODCollected,
			&view.CollectedAmount,
			&view.CODCollectedAt,
			&view.CODTransferredAt,
			&view.Note,
			&view.UnexpectedCase,
			&pictures,
			&view.BatchCode,
			&view.EstimatedDelivery,
			&view.DeliveredAt,
			&view.CreatedAt,
			&view.UpdatedAt,
		); err != nil {
			return nil, err
		}

		var err error
		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if view.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		if view.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
			return nil, err
		}
		if view.Assignee, err = kernel.UUIDFromOptional(assignee); err != nil {
			return nil, err
		}
		view.Status = shipment.Status(status).String()
		view.ProofPictures = append([]string{}, pictures...)
		attempts = append(attempts, view)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return attempts, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// BatchView is a batch header. MemberIDs keep the batch order.
type BatchView struct {
	Code             string
	StaffID          kernel.UUID
	CustomerID       kernel.UUID
	Status           string
	Note             string
	CompletionNote   string
	CompletionPhotos []string
	CODCollected     bool
	TotalCODAmount   int64
	CreatedAt        time.Time
	PickedUpAt       *time.Time
	CompletedAt      *time.Time
	MemberIDs        []kernel.UUID
}

const batchColumns = `
	b.code,
	b.staff_id,
	b.customer_id,
	b.status,
	COALESCE(b.note, ''),
	COALESCE(b.completion_note, ''),
	b.completion_photos,
	b.cod_collected,
	b.total_cod_amount,
	b.created_at,
	b.picked_up_at,
	b.completed_at,
	b.members`

func scanBatch(row rowScanner) (BatchView, error) {
	var (
		view            BatchView
		staff, customer uuid.UUID
		status          int
		photos, members pq.StringArray
	)
	if err := row.Scan(
		&view.Code,
		&staff,
		&customer,
		&status,
		&view.Note,
		&view.CompletionNote,
		&photos,
		&view.CODCollected,
		&view.TotalCODAmount,
		&view.CreatedAt,
		&view.PickedUpAt,
		&view.CompletedAt,
		&members,
	); err != nil {
		return BatchView{}, err
	}

	var err error
	if view.StaffID, err = kernel.UUIDFromBytes(staff[:]); err != nil {
		return BatchView{}, err
	}
	if view.CustomerID, err = kernel.UUIDFromBytes(customer[:]); err != nil {
		return BatchView{}, err
	}
	view.MemberIDs = make([]kernel.UUID, 0, len(members))
	for _, raw := range members {
		id, parseErr := kernel.UUIDFromString(raw)
		if parseErr != nil {
			return BatchView{}, parseErr
		}
		view.MemberIDs = append(view.MemberIDs, id)
	}
	view.Status = batch.Status(status).String()
	view.CompletionPhotos = append([]string{}, photos...)
	return view, nil
}

// ReturnRequestView is one return request as shown to customers, reviewers
// and the staff member handling the pickup.
type ReturnRequestView struct {
	ID                  kernel.UUID
	OrderID             kernel.UUID
	AttemptID           kernel.UUID
	CustomerID          kernel.UUID
	Reason              string
	Detail              string
	Evidence            []string
	Status              string
	ReviewerID          *kernel.UUID
	ReviewNote          string
	ReviewedAt          *time.Time
	AssigneeID          *kernel.UUID
	AssignedAt          *time.Time
	CompletionNote      string
	CompletionPhotos    []string
	WarehouseReceivedAt *time.Time
	CancelledAt         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

const returnRequestColumns = `
	r.id,
	r.order_id,
	r.attempt_id,
	r.customer_id,
	r.reason,
	COALESCE(r.detail, ''),
	r.evidence,
	r.status,
	r.reviewer_id,
	COALESCE(r.review_note, ''),
	r.reviewed_at,
	r.assignee_id,
	r.assigned_at,
	COALESCE(r.completion_note, ''),
	r.completion_photos,
	r.warehouse_received_at,
	r.cancelled_at,
	r.created_at,
	r.updated_at`

func scanReturnRequest(row rowScanner) (ReturnRequestView, error) {
	var (
		view                               ReturnRequestView
		id, orderID, attemptID, customerID uuid.UUID
		reviewer, assignee                 *uuid.UUID
		evidence, completionPhotos         pq.StringArray
		status                             int
	)
	if err := row.Scan(
		&id,
		&orderID,
		&attemptID,
		&customerID,
		&view.Reason,
		&view.Detail,
		&evidence,
		&status,
		&reviewer,
		&view.ReviewNote,
		&view.ReviewedAt,
		&assignee,
		&view.AssignedAt,
		&view.CompletionNote,
		&completionPhotos,
		&view.WarehouseReceivedAt,
		&view.CancelledAt,
		&view.CreatedAt,
		&view.UpdatedAt,
	); err != nil {
		return ReturnRequestView{}, err
	}

	var err error
	for _, pair := range []struct {
		dst *kernel.UUID
		raw uuid.UUID
	}{
		{&view.ID, id},
		{&view.OrderID, orderID},
		{&view.AttemptID, attemptID},
		{&view.CustomerID, customerID},
	} {
		if *pair.dst, err = kernel.UUIDFromBytes(pair.raw[:]); err != nil {
			return ReturnRequestView{}, err
		}
	}
	if view.ReviewerID, err = kernel.UUIDFromOptional(reviewer); err != nil {
		return ReturnRequestView{}, err
	}
	if view.AssigneeID, err = kernel.UUIDFromOptional(assignee); err != nil {
		return ReturnRequestView{}, err
	}
	view.Status = returns.Status(status).String()
	view.Evidence = append([]string{}, evidence...)
	view.CompletionPhotos = append([]string{}, completionPhotos...)
	return view, nil
}

func scanReturnRequests(rows *sql.Rows) ([]ReturnRequestView, error) {
	defer rows.Close()

	requests := make([]ReturnRequestView, 0)
	for rows.Next() {
		view, err := scanReturnRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, view)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
