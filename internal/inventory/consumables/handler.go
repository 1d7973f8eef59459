package consumables

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sarpras-backend/internal/platform/apierr"
	"sarpras-backend/internal/platform/auth"
)

type Handler struct{ svc *Service }

func RegisterRoutes(read, write gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	// 品目（BHP）
	read.GET("/consumables", h.ListItems)
	read.GET("/consumables/:id", h.GetItem)
	read.GET("/consumables/:id/history", h.ItemHistory)
	write.POST("/consumables", h.CreateItem)
	write.PUT("/consumables/:id", h.UpdateItem)
	write.POST("/consumables/import", h.Import)

	// 入出庫
	write.POST("/consumables/inbound", h.RecordInbound)
	write.POST("/consumables/outbound", h.RecordOutbound)
	read.GET("/consumables/transactions", h.ListTransactions)
}

// ===== items =====

//	@Summary		Create consumable item
//	@Tags			consumables
//	@Accept			json
//	@Produce		json
//	@Param			request	body	CreateItemRequest	true	"item"
//	@Success		201	{object}	ItemResponse
//	@Failure		400	{object}	apierr.ErrorDTO
//	@Failure		401	{object}	apierr.ErrorDTO
//	@Failure		409	{object}	apierr.ErrorDTO
//	@Security		Bearer
//	@Router			/consumables [post]
func (h *Handler) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "invalid json or missing required fields"))
		return
	}
	res, err := h.svc.CreateItem(c.Request.Context(), req)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.Header("Location", c.FullPath()+"/"+strconv.FormatInt(res.ID, 10))
	c.JSON(http.StatusCreated, res)
}

//	@Summary		Get consumable item
//	@Tags			consumables
//	@Produce		json
//	@Param			id	path	int	true	"item id"
//	@Success		200	{object}	ItemResponse
//	@Failure		400	{object}	apierr.ErrorDTO
//	@Failure		404	{object}	apierr.ErrorDTO
//	@Router			/consumables/{id} [get]
func (h *Handler) GetItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	res, err := h.svc.GetItem(c.Request.Context(), id)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

//	@Summary		List consumable items
//	@Tags			consumables
//	@Produce		json
//	@Param			q	query	string	false	"name or code contains"
//	@Param			empty	query	bool	false	"only out of stock"
//	@Param			limit	query	int	false	"page size (max 500)"
//	@Param			offset	query	int	false	"offset"
//	@Success		200	{object}	map[string]any
//	@Failure		500	{object}	apierr.ErrorDTO
//	@Router			/consumables [get]
func (h *Handler) ListItems(c *gin.Context) {
	p := parsePage(c)
	onlyEmpty := c.Query("empty") == "true" || c.Query("empty") == "1"
	items, total, err := h.svc.ListItems(c.Request.Context(), c.Query("q"), onlyEmpty, p)
	if err != nil {
		writeErr(c, err)
		return
	}
	p = normalizePage(p)
	next := p.Offset + p.Limit
	if next >= int(total) {
		next = 0
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": total, "next_offset": next})
}

//	@Summary		Update name / unit
//	@Tags			consumables
//	@Accept			json
//	@Produce		json
//	@Param			id	path	int	true	"item id"
//	@Param			request	body	UpdateItemRequest	true	"fields to change"
//	@Success		200	{object}	ItemResponse
//	@Failure		400	{object}	apierr.ErrorDTO
//	@Failure		401	{object}	apierr.ErrorDTO
//	@Failure		404	{object}	apierr.ErrorDTO
//	@Security		Bearer
//	@Router			/consumables/{id} [put]
func (h *Handler) UpdateItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.UpdateItem(c.Request.Context(), id, req)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

//	@Summary		Inbound / outbound history with totals
//	@Tags			consumables
//	@Produce		json
//	@Param			id	path	int	true	"item id"
//	@Success		200	{object}	HistoryResponse
//	@Failure		400	{object}	apierr.ErrorDTO
//	@Failure		404	{object}	apierr.ErrorDTO
//	@Router			/consumables/{id}/history [get]
func (h *Handler) ItemHistory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	res, err := h.svc.ItemHistory(c.Request.Context(), id)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

//	@Summary		Bulk import consumables (.csv / .xlsx)
//	@Tags			consumables
//	@Accept			mpfd
//	@Produce		json
//	@Param			file	formData	file	true	"spreadsheet"
//	@Success		200	{object}	importer.Result
//	@Failure		400	{object}	apierr.ErrorDTO
//	@Failure		401	{object}	apierr.ErrorDTO
//	@Security		Bearer
//	@Router			/consumables/import [post]
func (h *Handler) Import(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "file is required"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeErr(c, err)
		return
	}
	defer f.Close()

	res, err := h.svc.Import(c.Request.Context(), fh.Filename, f)
	if err != nil {
		writeErr(c, err)
		return
	}
	log.Printf("[INFO] consumable import %s: total=%d ok=%d ng=%d", fh.Filename, res.Total, res.OKCount, res.NGCount)
	c.JSON(http.StatusOK, res)
}

// ===== movements =====

//	@Summary		Record stock in
//	@Tags			consumables
//	@Accept			json
//	@Produce		json
//	@Param			request	body	InboundRequest	true	"inbound"
//	@Success		201	{object}	MovementResponse
//	@Failure		400	{object}	apierr.ErrorDTO
//	@Failure		401	{object}	apierr.ErrorDTO
//	@Failure		404	{object}	apierr.ErrorDTO
//	@Security		Bearer
//	@Router			/consumables/inbound [post]
func (h *Handler) RecordInbound(c *gin.Context) {
	var req InboundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "invalid json or missing required fields"))
		return
	}
	res, err := h.svc.RecordInbound(c.Request.Context(), req, auth.OperatorID(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

//	@Summary		Record stock out
//	@Tags			consumables
//	@Accept			json
//	@Produce		json
//	@Param			request	body	OutboundRequest	true	"outbound"
//	@Success		201	{object}	MovementResponse
//	@Failure		400	{object}	apierr.ErrorDTO
//	@Failure		401	{object}	apierr.ErrorDTO
//	@Failure		404	{object}	apierr.ErrorDTO
//	@Failure		409	{object}	apierr.ErrorDTO
//	@Security		Bearer
//	@Router			/consumables/outbound [post]
func (h *Handler) RecordOutbound(c *gin.Context) {
	var req OutboundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "invalid json or missing required fields"))
		return
	}
	res, err := h.svc.RecordOutbound(c.Request.Context(), req, auth.OperatorID(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// GET /consumables/transactions?direction=in|out&item_id=&year=&month=
//
//	@Summary		Movement log
//	@Tags			consumables
//	@Produce		json
//	@Param			direction	query	string	false	"direction"	Enums(in, out)
//	@Param			item_id	query	int	false	"item id"
//	@Param			year	query	int	false	"year"
//	@Param			month	query	int	false	"month"
//	@Param			limit	query	int	false	"page size (max 500)"
//	@Param			offset	query	int	false	"offset"
//	@Success		200	{object}	ListResult
//	@Failure		400	{object}	apierr.ErrorDTO
//	@Router			/consumables/transactions [get]
func (h *Handler) ListTransactions(c *gin.Context) {
	var f MovementFilter
	if v := c.Query("direction"); v != "" {
		d := Direction(v)
		if d != DirectionIn && d != DirectionOut {
			c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "direction must be in or out"))
			return
		}
		f.Direction = &d
	}
	if v := c.Query("item_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "item_id must be a number"))
			return
		}
		f.ItemID = &id
	}
	f.Year = parseIntDefault(c.Query("year"), 0)
	f.Month = parseIntDefault(c.Query("month"), 0)

	res, err := h.svc.ListTransactions(c.Request.Context(), f, parsePage(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ---------- helpers ----------

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "id must be a positive number"))
		return 0, false
	}
	return id, true
}

func parsePage(c *gin.Context) Page {
	return Page{
		Limit:  parseIntDefault(c.Query("limit"), 50),
		Offset: parseIntDefault(c.Query("offset"), 0),
	}
}

func parseIntDefault(s string, d int) int {
	if s == "" {
		return d
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return v
}

func writeErr(c *gin.Context, err error) {
	status := apierr.ToHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, apierr.FromErr(err))
}
