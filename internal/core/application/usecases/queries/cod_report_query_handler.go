package queries

import (
	"context"

	"gorm.io/gorm"
)

type CODReportQueryHandler struct {
	db *gorm.DB
}

func NewCODReportQueryHandler(db *gorm.DB) CODReportQueryHandler {
	return CODReportQueryHandler{db: db}
}

// Handle returns lines ordered by collection time.
func (h CODReportQueryHandler) Handle(ctx context.Context, query CODReportQuery) (CODReportQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CODReportQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			r.ref_kind,
			r.ref_id,
			r.collected,
			COALESCE(SUM(t.amount), 0)::bigint AS transferred,
			r.collected_at,
			MAX(t.transferred_at) AS last_transfer_at,
			COUNT(t.id) AS transfers
		FROM cod_records r
		LEFT JOIN cod_transfers t ON t.record_id = r.id
		WHERE r.collected_at >= ? AND r.collected_at < ?
		GROUP BY r.id
		HAVING NOT ? OR r.collected > COALESCE(SUM(t.amount), 0)
		ORDER BY r.collected_at, r.ref_kind, r.ref_id
	`, query.From(), query.To(), query.OnlyOutstanding()).Rows()
	if err != nil {
		return CODReportQueryResponse{}, err
	}
	defer rows.Close()

	response := CODReportQueryResponse{From: query.From(), To: query.To(), Lines: make([]CODReportLine, 0)}
	for rows.Next() {
		var line CODReportLine
		if err = rows.Scan(
			&line.RefKind,
			&line.RefID,
			&line.Collected,
			&line.Transferred,
			&line.CollectedAt,
			&line.LastTransferAt,
			&line.Transfers,
		); err != nil {
			return CODReportQueryResponse{}, err
		}
		line.Outstanding = line.Collected - line.Transferred
		line.Settled = line.Outstanding == 0

		response.TotalCollected += line.Collected
		response.TotalTransferred += line.Transferred
		response.TotalOutstanding += line.Outstanding
		response.Lines = append(response.Lines, line)
	}

	if err = rows.Err(); err != nil {
		return CODReportQueryResponse{}, err
	}
	return response, nil
}
