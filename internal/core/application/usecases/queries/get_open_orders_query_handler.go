package queries

import (
	"context"

	"github.com/u44592/hni/internal/core/domain/model/kernel"
	"github.com/u44592/hni/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOpenOrdersQueryHandler reads the orders tables directly, bypassing the
// domain repositories.
type GetOpenOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetOpenOrdersQueryHandler(db *gorm.DB) GetOpenOrdersQueryHandler {
	return GetOpenOrdersQueryHandler{db: db}
}

func (h GetOpenOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOpenOrdersQuery,
) ([]GetOpenOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetOpenOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.user_id,
			o.created_at,
			o.location_name,
			o.location_address1,
			COALESCE(string_agg(i.menu_item_name, ', ' ORDER BY i.position), '') AS items,
			o.subtotal_cents,
			o.status
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
		WHERE o.status <> ?
		GROUP BY o.id
		ORDER BY o.created_at, o.id
	`, int(order.Closed)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetOpenOrdersQueryResponse
		var id, userID uuid.UUID
		var subtotalCents int64
		var status int

		err = rows.Scan(
			&id,
			&userID,
			&resp.CreatedAt,
			&resp.LocationName,
			&resp.LocationAddress1,
			&resp.Items,
			&subtotalCents,
			&status,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID

		owner, ownerErr := kernel.UUIDFromBytes(userID[:])
		if ownerErr != nil {
			return nil, ownerErr
		}
		resp.UserID = owner

		subtotal, moneyErr := kernel.NewMoney(subtotalCents)
		if moneyErr != nil {
			return nil, moneyErr
		}
		resp.Subtotal = subtotal

		resp.Status = order.Status(status)
		if statusErr := resp.Status.Validate(); statusErr != nil {
			return nil, statusErr
		}

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
