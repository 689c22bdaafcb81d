package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/batch"
	"fulfillment/internal/core/domain/model/cod"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/core/domain/model/shipment"
)

// Requests. Amounts are integer minor currency units.

type LineItemRequest struct {
	ProductID string `json:"productId" validate:"required,max=64"`
	Quantity  int    `json:"quantity" validate:"gte=1"`
	UnitPrice int64  `json:"unitPrice" validate:"gte=0"`
}

type RegisterOrderRequest struct {
	ID           kernel.UUID       `json:"id"`
	CustomerID   kernel.UUID       `json:"customerId"`
	ContactPhone string            `json:"contactPhone" validate:"omitempty,e164"`
	Status       string            `json:"status" validate:"required"`
	Reason       string            `json:"reason" validate:"max=500"`
	ProcessedBy  *kernel.UUID      `json:"processedBy"`
	Items        []LineItemRequest `json:"items" validate:"required,min=1,dive"`
}

type OpenAttemptRequest struct {
	EstimatedDelivery *time.Time `json:"estimatedDelivery"`
}

type TransitionRequest struct {
	Status          string   `json:"status" validate:"required"`
	Note            string   `json:"note" validate:"max=1000"`
	UnexpectedCase  string   `json:"unexpectedCase" validate:"max=500"`
	CODCollected    bool     `json:"codCollected"`
	CollectedAmount int64    `json:"collectedAmount" validate:"gte=0"`
	ProofPictures   []string `json:"proofPictures" validate:"max=10,dive,url"`
}

func (r TransitionRequest) payload() (shipment.Payload, error) {
	amount, err := kernel.NewMoney(r.CollectedAmount)
	if err != nil {
		return shipment.Payload{}, err
	}
	return shipment.Payload{
		Note:            r.Note,
		UnexpectedCase:  r.UnexpectedCase,
		CODCollected:    r.CODCollected,
		CollectedAmount: amount,
		ProofPictures:   r.ProofPictures,
	}, nil
}

type CancelAttemptRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type CreateBatchRequest struct {
	OrderIDs []kernel.UUID `json:"orderIds" validate:"required,min=1,max=50"`
	Note     string        `json:"note" validate:"max=1000"`
}

type MemberUpdateRequest struct {
	OrderID kernel.UUID `json:"orderId"`
	TransitionRequest
}

type BulkUpdateRequest struct {
	Updates []MemberUpdateRequest `json:"updates" validate:"required,min=1,dive"`
}

type CompleteBatchRequest struct {
	Photos         []string `json:"photos" validate:"max=10,dive,url"`
	Note           string   `json:"note" validate:"max=1000"`
	CODCollected   bool     `json:"codCollected"`
	TotalCODAmount int64    `json:"totalCodAmount" validate:"gte=0"`
}

type MoneyRequest struct {
	Amount int64      `json:"amount" validate:"gt=0"`
	At     *time.Time `json:"at"`
}

type OpenReturnRequest struct {
	OrderID  kernel.UUID `json:"orderId"`
	Reason   string      `json:"reason" validate:"required"`
	Detail   string      `json:"detail" validate:"max=2000"`
	Evidence []string    `json:"evidence" validate:"max=10,dive,url"`
}

type ReviewReturnRequest struct {
	Decision string `json:"decision" validate:"required,oneof=APPROVE REJECT"`
	Note     string `json:"note" validate:"max=1000"`
}

type AssignReturnRequest struct {
	StaffID *kernel.UUID `json:"staffId"`
}

type CompleteReturnRequest struct {
	Note   string   `json:"note" validate:"required,max=1000"`
	Photos []string `json:"photos" validate:"max=10,dive,url"`
}

// Responses.

type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message"`
}

type LineItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

type Attempt struct {
	ID                kernel.UUID  `json:"id"`
	OrderID           kernel.UUID  `json:"orderId"`
	CustomerID        kernel.UUID  `json:"customerId"`
	Assignee          *kernel.UUID `json:"assignee,omitempty"`
	Status            string       `json:"status"`
	DeclaredTotal     int64        `json:"declaredTotal"`
	CODCollected      bool         `json:"codCollected"`
	CollectedAmount   int64        `json:"collectedAmount"`
	CODCollectedAt    *time.Time   `json:"codCollectedAt,omitempty"`
	CODTransferredAt  *time.Time   `json:"codTransferredAt,omitempty"`
	Note              string       `json:"note,omitempty"`
	UnexpectedCase    string       `json:"unexpectedCase,omitempty"`
	ProofPictures     []string     `json:"proofPictures"`
	BatchCode         string       `json:"batchCode,omitempty"`
	EstimatedDelivery *time.Time   `json:"estimatedDelivery,omitempty"`
	DeliveredAt       *time.Time   `json:"deliveredAt,omitempty"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
}

type Order struct {
	ID             kernel.UUID     `json:"id"`
	CustomerID     kernel.UUID     `json:"customerId"`
	ContactPhone   string          `json:"contactPhone,omitempty"`
	Status         string          `json:"status"`
	Total          int64           `json:"total"`
	UpstreamReason string          `json:"upstreamReason,omitempty"`
	ProcessedBy    *kernel.UUID    `json:"processedBy,omitempty"`
	ReturnedAt     *time.Time      `json:"returnedAt,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	Items          []LineItem      `json:"items"`
	Attempts       []Attempt       `json:"attempts,omitempty"`
	ReturnRequests []ReturnRequest `json:"returnRequests,omitempty"`
}

type Batch struct {
	Code             string        `json:"code"`
	StaffID          kernel.UUID   `json:"staffId"`
	CustomerID       kernel.UUID   `json:"customerId"`
	Status           string        `json:"status"`
	Note             string        `json:"note,omitempty"`
	CompletionNote   string        `json:"completionNote,omitempty"`
	CompletionPhotos []string      `json:"completionPhotos"`
	CODCollected     bool          `json:"codCollected"`
	TotalCODAmount   int64         `json:"totalCodAmount"`
	CreatedAt        time.Time     `json:"createdAt"`
	PickedUpAt       *time.Time    `json:"pickedUpAt,omitempty"`
	CompletedAt      *time.Time    `json:"completedAt,omitempty"`
	MemberIDs        []kernel.UUID `json:"memberIds,omitempty"`
	Members          []Attempt     `json:"members,omitempty"`
}

type MemberResult struct {
	OrderID   kernel.UUID  `json:"orderId"`
	AttemptID *kernel.UUID `json:"attemptId,omitempty"`
	Status    string       `json:"status,omitempty"`
	Error     *Error       `json:"error,omitempty"`
}

type BulkUpdateResponse struct {
	Batch   Batch          `json:"batch"`
	Results []MemberResult `json:"results"`
	Failed  int            `json:"failed"`
}

type PickupResponse struct {
	Batch   Batch     `json:"batch"`
	Members []Attempt `json:"members"`
}

type Transfer struct {
	ID            kernel.UUID `json:"id"`
	Amount        int64       `json:"amount"`
	TransferredAt time.Time   `json:"transferredAt"`
}

type CODRecord struct {
	RefKind     string     `json:"refKind"`
	RefID       string     `json:"refId"`
	Collected   int64      `json:"collected"`
	CollectedAt *time.Time `json:"collectedAt,omitempty"`
	Transferred int64      `json:"transferred"`
	Outstanding int64      `json:"outstanding"`
	Settled     bool       `json:"settled"`
	Transfers   []Transfer `json:"transfers"`
}

type CODReportLine struct {
	RefKind        string     `json:"refKind"`
	RefID          string     `json:"refId"`
	Collected      int64      `json:"collected"`
	Transferred    int64      `json:"transferred"`
	Outstanding    int64      `json:"outstanding"`
	CollectedAt    time.Time  `json:"collectedAt"`
	LastTransferAt *time.Time `json:"lastTransferAt,omitempty"`
	Transfers      int        `json:"transfers"`
	Settled        bool       `json:"settled"`
}

type CODReport struct {
	From             time.Time       `json:"from"`
	To               time.Time       `json:"to"`
	Lines            []CODReportLine `json:"lines"`
	TotalCollected   int64           `json:"totalCollected"`
	TotalTransferred int64           `json:"totalTransferred"`
	TotalOutstanding int64           `json:"totalOutstanding"`
}

type ReturnRequest struct {
	ID                  kernel.UUID  `json:"id"`
	OrderID             kernel.UUID  `json:"orderId"`
	AttemptID           kernel.UUID  `json:"attemptId"`
	CustomerID          kernel.UUID  `json:"customerId"`
	Reason              string       `json:"reason"`
	Detail              string       `json:"detail,omitempty"`
	Evidence            []string     `json:"evidence"`
	Status              string       `json:"status"`
	ReviewerID          *kernel.UUID `json:"reviewerId,omitempty"`
	ReviewNote          string       `json:"reviewNote,omitempty"`
	ReviewedAt          *time.Time   `json:"reviewedAt,omitempty"`
	AssigneeID          *kernel.UUID `json:"assigneeId,omitempty"`
	CompletionNote      string       `json:"completionNote,omitempty"`
	CompletionPhotos    []string     `json:"completionPhotos,omitempty"`
	WarehouseReceivedAt *time.Time   `json:"warehouseReceivedAt,omitempty"`
	CreatedAt           time.Time    `json:"createdAt"`
	UpdatedAt           time.Time    `json:"updatedAt"`
}

type Photo struct {
	URI string `json:"uri"`
}

// Mappers.

func orderFromDomain(o *order.Order) Order {
	items := make([]LineItem, 0, len(o.Items()))
	for _, it := range o.Items() {
		items = append(items, LineItem{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: it.UnitPrice.Amount()})
	}
	return Order{
		ID:             o.ID(),
		CustomerID:     o.CustomerID(),
		ContactPhone:   o.ContactPhone(),
		Status:         o.Status().String(),
		Total:          o.Total().Amount(),
		UpstreamReason: o.UpstreamReason(),
		ProcessedBy:    o.ProcessedBy(),
		ReturnedAt:     o.ReturnedAt(),
		CreatedAt:      o.CreatedAt(),
		UpdatedAt:      o.UpdatedAt(),
		Items:          items,
	}
}

func orderFromView(v queries.GetOrderQueryResponse) Order {
	items := make([]LineItem, 0, len(v.Items))
	for _, it := range v.Items {
		items = append(items, LineItem(it))
	}
	attempts := make([]Attempt, 0, len(v.Attempts))
	for _, a := range v.Attempts {
		attempts = append(attempts, attemptFromView(a))
	}
	return Order{
		ID:             v.ID,
		CustomerID:     v.CustomerID,
		ContactPhone:   v.ContactPhone,
		Status:         v.Status,
		Total:          v.Total,
		UpstreamReason: v.UpstreamReason,
		ProcessedBy:    v.ProcessedBy,
		ReturnedAt:     v.ReturnedAt,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
		Items:          items,
		Attempts:       attempts,
		ReturnRequests: returnRequestsFromViews(v.ReturnRequests),
	}
}

func attemptFromDomain(a *shipment.Attempt) Attempt {
	return Attempt{
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
		ProofPictures:     nonNil(a.ProofPictures()),
		BatchCode:         a.BatchCode(),
		EstimatedDelivery: a.EstimatedDelivery(),
		DeliveredAt:       a.DeliveredAt(),
		CreatedAt:         a.CreatedAt(),
		UpdatedAt:         a.UpdatedAt(),
	}
}

func attemptFromView(v queries.AttemptView) Attempt {
	a := Attempt(v)
	a.ProofPictures = nonNil(a.ProofPictures)
	return a
}

func attemptsFromViews(views []queries.AttemptView) []Attempt {
	out := make([]Attempt, 0, len(views))
	for _, v := range views {
		out = append(out, attemptFromView(v))
	}
	return out
}

func batchFromDomain(b *batch.Batch) Batch {
	return Batch{
		Code:             b.Code(),
		StaffID:          b.StaffID(),
		CustomerID:       b.CustomerID(),
		Status:           b.Status().String(),
		Note:             b.Note(),
		CompletionNote:   b.CompletionNote(),
		CompletionPhotos: nonNil(b.CompletionPhotos()),
		CODCollected:     b.CODCollected(),
		TotalCODAmount:   b.TotalCODAmount().Amount(),
		CreatedAt:        b.CreatedAt(),
		PickedUpAt:       b.PickedUpAt(),
		CompletedAt:      b.CompletedAt(),
		MemberIDs:        b.Members(),
	}
}

func batchFromView(v queries.GetBatchQueryResponse) Batch {
	b := batchHeaderFromView(v.BatchView)
	b.Members = attemptsFromViews(v.Members)
	return b
}

func batchHeaderFromView(v queries.BatchView) Batch {
	return Batch{
		Code:             v.Code,
		StaffID:          v.StaffID,
		CustomerID:       v.CustomerID,
		Status:           v.Status,
		Note:             v.Note,
		CompletionNote:   v.CompletionNote,
		CompletionPhotos: nonNil(v.CompletionPhotos),
		CODCollected:     v.CODCollected,
		TotalCODAmount:   v.TotalCODAmount,
		CreatedAt:        v.CreatedAt,
		PickedUpAt:       v.PickedUpAt,
		CompletedAt:      v.CompletedAt,
		MemberIDs:        v.MemberIDs,
	}
}

func batchesFromViews(views []queries.BatchView) []Batch {
	out := make([]Batch, 0, len(views))
	for _, v := range views {
		out = append(out, batchHeaderFromView(v))
	}
	return out
}

func bulkUpdateFromResult(r commands.BulkUpdateResult) BulkUpdateResponse {
	results := make([]MemberResult, 0, len(r.Results))
	for _, m := range r.Results {
		res := MemberResult{OrderID: m.OrderID, AttemptID: m.AttemptID}
		if m.Err != nil {
			e := errorBody(m.Err)
			res.Error = &e
		} else {
			res.Status = m.Status.String()
		}
		results = append(results, res)
	}
	return BulkUpdateResponse{Batch: batchFromDomain(r.Batch), Results: results, Failed: r.Failed()}
}

func codRecordFromDomain(r *cod.Record) CODRecord {
	transfers := make([]Transfer, 0, len(r.Transfers()))
	for _, t := range r.Transfers() {
		transfers = append(transfers, Transfer{ID: t.ID, Amount: t.Amount.Amount(), TransferredAt: t.TransferredAt})
	}
	return CODRecord{
		RefKind:     string(r.Ref().Kind),
		RefID:       r.Ref().ID,
		Collected:   r.Collected().Amount(),
		CollectedAt: r.CollectedAt(),
		Transferred: r.Transferred().Amount(),
		Outstanding: r.Outstanding().Amount(),
		Settled:     r.IsSettled(),
		Transfers:   transfers,
	}
}

func codReportFromView(v queries.CODReportQueryResponse) CODReport {
	lines := make([]CODReportLine, 0, len(v.Lines))
	for _, l := range v.Lines {
		lines = append(lines, CODReportLine(l))
	}
	return CODReport{
		From:             v.From,
		To:               v.To,
		Lines:            lines,
		TotalCollected:   v.TotalCollected,
		TotalTransferred: v.TotalTransferred,
		TotalOutstanding: v.TotalOutstanding,
	}
}

func returnRequestFromDomain(r *returns.Request) ReturnRequest {
	return ReturnRequest{
		ID:                  r.ID(),
		OrderID:             r.OrderID(),
		AttemptID:           r.AttemptID(),
		CustomerID:          r.CustomerID(),
		Reason:              string(r.Reason()),
		Detail:              r.Detail(),
		Evidence:            nonNil(r.Evidence()),
		Status:              r.Status().String(),
		ReviewerID:          r.ReviewerID(),
		ReviewNote:          r.ReviewNote(),
		ReviewedAt:          r.ReviewedAt(),
		AssigneeID:          r.AssigneeID(),
		CompletionNote:      r.CompletionNote(),
		CompletionPhotos:    r.CompletionPhotos(),
		WarehouseReceivedAt: r.WarehouseReceivedAt(),
		CreatedAt:           r.CreatedAt(),
		UpdatedAt:           r.UpdatedAt(),
	}
}

func returnRequestFromView(v queries.ReturnRequestView) ReturnRequest {
	return ReturnRequest{
		ID:                  v.ID,
		OrderID:             v.OrderID,
		AttemptID:           v.AttemptID,
		CustomerID:          v.CustomerID,
		Reason:              v.Reason,
		Detail:              v.Detail,
		Evidence:            nonNil(v.Evidence),
		Status:              v.Status,
		ReviewerID:          v.ReviewerID,
		ReviewNote:          v.ReviewNote,
		ReviewedAt:          v.ReviewedAt,
		AssigneeID:          v.AssigneeID,
		CompletionNote:      v.CompletionNote,
		CompletionPhotos:    v.CompletionPhotos,
		WarehouseReceivedAt: v.WarehouseReceivedAt,
		CreatedAt:           v.CreatedAt,
		UpdatedAt:           v.UpdatedAt,
	}
}

func returnRequestsFromViews(views []queries.ReturnRequestView) []ReturnRequest {
	out := make([]ReturnRequest, 0, len(views))
	for _, v := range views {
		out = append(out, returnRequestFromView(v))
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
