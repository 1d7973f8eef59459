package loans

import "time"

// 貸出登録リクエスト
// quantity は binding を付けない（0 や負数は service が固有メッセージで弾く）
type CreateLoanRequest struct {
	ItemID   int64  `json:"item_id" binding:"required,gt=0"`
	Borrower string `json:"borrower" binding:"required,max=200"`
	Quantity int    `json:"quantity"`
	// "2006-01-02" 形式（DATE）
	DueOn *string `json:"due_on,omitempty"`
	Note  *string `json:"note,omitempty"`
}

type LoanResponse struct {
	ID         int64      `json:"id"`
	ULID       string     `json:"ulid"`
	ItemID     int64      `json:"item_id"`
	ItemCode   string     `json:"item_code"`
	ItemName   string     `json:"item_name"`
	Borrower   string     `json:"borrower"`
	Quantity   int        `json:"quantity"`
	Status     Status     `json:"status"`
	LoanedAt   time.Time  `json:"loaned_at"`
	DueOn      *string    `json:"due_on,omitempty"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
	LentBy     *string    `json:"lent_by,omitempty"`
	ReturnedBy *string    `json:"returned_by,omitempty"`
	Note       *string    `json:"note,omitempty"`
}

func toResponse(l *Loan) LoanResponse {
	r := LoanResponse{
		ID:       l.ID,
		ULID:     l.ULID,
		ItemID:   l.ItemID,
		ItemCode: l.ItemCode,
		ItemName: l.ItemName,
		Borrower: l.Borrower,
		Quantity: l.Quantity,
		Status:   l.Status,
		LoanedAt: l.LoanedAt,
	}
	if l.DueOn.Valid {
		v := l.DueOn.Time.Format(dateLayout)
		r.DueOn = &v
	}
	if l.ReturnedAt.Valid {
		v := l.ReturnedAt.Time
		r.ReturnedAt = &v
	}
	r.LentBy = nullToPtr(l.LentBy)
	r.ReturnedBy = nullToPtr(l.ReturnedBy)
	r.Note = nullToPtr(l.Note)
	return r
}
