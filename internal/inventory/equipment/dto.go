package equipment

import "time"

// ===== Requests =====

type CreateItemRequest struct {
	Code            string  `json:"code" binding:"required,max=50"`
	Name            string  `json:"name" binding:"required,max=200"`
	Unit            string  `json:"unit,omitempty" binding:"max=50"`
	Quantity        int     `json:"quantity" binding:"gte=0"`
	Condition       string  `json:"condition,omitempty" binding:"max=100"`
	AcquisitionYear int     `json:"acquisition_year,omitempty" binding:"gte=0"`
	Room            *string `json:"room,omitempty"`
}

// quantity は更新不可（ledger 経由のみ）
type UpdateItemRequest struct {
	Name            *string `json:"name,omitempty" binding:"omitempty,min=1,max=200"`
	Unit            *string `json:"unit,omitempty" binding:"omitempty,min=1,max=50"`
	Condition       *string `json:"condition,omitempty" binding:"omitempty,max=100"`
	AcquisitionYear *int    `json:"acquisition_year,omitempty" binding:"omitempty,gte=0"`
	Room            *string `json:"room,omitempty"`
}

// ===== Responses =====

type ItemResponse struct {
	ID              int64     `json:"id"`
	Code            string    `json:"code"`
	Name            string    `json:"name"`
	Unit            string    `json:"unit"`
	Quantity        int       `json:"quantity"`
	Condition       string    `json:"condition"`
	AcquisitionYear int       `json:"acquisition_year,omitempty"`
	Room            *string   `json:"room,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func toResponse(it *Item) ItemResponse {
	r := ItemResponse{
		ID:              it.ID,
		Code:            it.Code,
		Name:            it.Name,
		Unit:            it.Unit,
		Quantity:        it.Quantity,
		Condition:       it.Condition,
		AcquisitionYear: it.AcquisitionYear,
		CreatedAt:       it.CreatedAt,
	}
	if it.Room.Valid {
		v := it.Room.String
		r.Room = &v
	}
	return r
}
