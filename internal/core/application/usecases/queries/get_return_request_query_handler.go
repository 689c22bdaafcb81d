package queries

import (
	"context"

	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetReturnRequestQueryHandler struct {
	db *gorm.DB
}

func NewGetReturnRequestQueryHandler(db *gorm.DB) GetReturnRequestQueryHandler {
	return GetReturnRequestQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound for an unknown request.
func (h GetReturnRequestQueryHandler) Handle(ctx context.Context, query GetReturnRequestQuery) (ReturnRequestView, error) {
	if err := query.Validate(); err != nil {
		return ReturnRequestView{}, err
	}

	view, err := scanReturnRequest(h.db.WithContext(ctx).Raw(`
		SELECT `+returnRequestColumns+`
		FROM return_requests r
		WHERE r.id = ?
	`, query.ID().Bytes()).Row())
	if err != nil {
		if isNoRows(err) {
			return ReturnRequestView{}, errs.NewObjectNotFoundError("return request", query.ID())
		}
		return ReturnRequestView{}, err
	}
	return view, nil
}
