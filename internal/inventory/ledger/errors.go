package ledger

import (
	"fmt"

	"sarpras-backend/internal/platform/apierr"
)

// InsufficientStockError: 出庫・貸出で在庫がマイナスになる場合
type InsufficientStockError struct {
	Kind      Kind
	ItemID    int64
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	switch e.Kind {
	case Equipment:
		return fmt.Sprintf("Stok tidak cukup. Sisa %d", e.Available)
	default:
		return fmt.Sprintf("Stok tidak cukup! Sisa stok: %d", e.Available)
	}
}

func (e *InsufficientStockError) ErrorCode() apierr.Code { return apierr.CodeInsufficientStock }
