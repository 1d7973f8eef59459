package equipment

import (
	"bytes"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"sarpras-backend/internal/inventory/importer"
	"sarpras-backend/internal/platform/apierr"
)

type Handler struct{ svc *Service }

// read は公開、write は RequireAuth 済みグループ
func RegisterRoutes(read, write gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	read.GET("/equipment", h.ListItems)
	read.GET("/equipment/summary", h.Summary)
	read.GET("/equipment/export", h.Export)
	read.GET("/equipment/:id", h.GetItem)

	write.POST("/equipment", h.CreateItem)
	write.PUT("/equipment/:id", h.UpdateItem)
	write.DELETE("/equipment/:id", h.DeleteItem)
	write.POST("/equipment/import", h.Import)
}

//	@Summary		Create equipment item
//	@Tags			equipment
//	@Accept			json
//	@Produce		json
//	@Param			request	body	CreateItemRequest	true	"item"
//	@Success		201	{object}	ItemResponse
//	@Failure		400	{object}	apierr.ErrorDTO
//	@Failure		401	{object}	apierr.ErrorDTO
//	@Failure		409	{object}	apierr.ErrorDTO
//	@Security		Bearer
//	@Router			/equipment [post]
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

//	@Summary		Get equipment item
//	@Tags			equipment
//	@Produce		json
//	@Param			id	path	int	true	"item id"
//	@Success		200	{object}	ItemResponse
//	@Failure		400	{object}	apierr.ErrorDTO
//	@Failure		404	{object}	apierr.ErrorDTO
//	@Router			/equipment/{id} [get]
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

//	@Summary		List equipment items
//	@Tags			equipment
//	@Produce		json
//	@Param			q	query	string	false	"name or code contains"
//	@Param			condition	query	string	false	"condition"
//	@Param			limit	query	int	false	"page size (max 500)"
//	@Param			offset	query	int	false	"offset"
//	@Param			order	query	string	false	"asc or desc"
//	@Success		200	{object}	map[string]any
//	@Failure		500	{object}	apierr.ErrorDTO
//	@Router			/equipment [get]
func (h *Handler) ListItems(c *gin.Context) {
	q := ItemQuery{Q: c.Query("q"), Condition: c.Query("condition")}
	p := Page{
		Limit:  atoiDef(c.Query("limit"), 50),
		Offset: atoiDef(c.Query("offset"), 0),
		Order:  strings.ToLower(c.DefaultQuery("order", "asc")),
	}
	items, total, err := h.svc.ListItems(c.Request.Context(), q, p)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": total, "next_offset": nextOffset(total, p)})
}

//	@Summary		Update equipment details (not quantity)
//	@Tags			equipment
//	@Accept			json
//	@Produce		json
//	@Param			id	path	int	true	"item id"
//	@Param			request	body	UpdateItemRequest	true	"fields to change"
//	@Success		200	{object}	ItemResponse
//	@Failure		400	{object}	apierr.ErrorDTO
//	@Failure		401	{object}	apierr.ErrorDTO
//	@Failure		404	{object}	apierr.ErrorDTO
//	@Security		Bearer
//	@Router			/equipment/{id} [put]
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

//	@Summary		Delete equipment item without loan history
//	@Tags			equipment
//	@Produce		json
//	@Param			id	path	int	true	"item id"
//	@Success		200	{object}	map[string]string
//	@Failure		400	{object}	apierr.ErrorDTO
//	@Failure		401	{object}	apierr.ErrorDTO
//	@Failure		404	{object}	apierr.ErrorDTO
//	@Failure		409	{object}	apierr.ErrorDTO
//	@Security		Bearer
//	@Router			/equipment/{id} [delete]
func (h *Handler) DeleteItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteItem(c.Request.Context(), id); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

//	@Summary		Totals per item name
//	@Tags			equipment
//	@Produce		json
//	@Success		200	{object}	map[string]any
//	@Failure		500	{object}	apierr.ErrorDTO
//	@Router			/equipment/summary [get]
func (h *Handler) Summary(c *gin.Context) {
	rows, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": rows})
}

// GET /equipment/export?format=xlsx|csv
//
//	@Summary		Export equipment list (KIB B)
//	@Tags			equipment
//	@Produce		octet-stream
//	@Param			format	query	string	false	"xlsx or csv"	Enums(xlsx, csv)
//	@Success		200	{file}	file
//	@Failure		400	{object}	apierr.ErrorDTO
//	@Router			/equipment/export [get]
func (h *Handler) Export(c *gin.Context) {
	format := strings.ToLower(c.DefaultQuery("format", "xlsx"))
	if format != "xlsx" && format != "csv" {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "format must be xlsx or csv"))
		return
	}

	sheet, err := h.svc.Export(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}

	var (
		buf         bytes.Buffer
		contentType string
	)
	if format == "csv" {
		err = importer.WriteCSV(&buf, sheet)
		contentType = "text/csv; charset=utf-8"
	} else {
		err = importer.WriteXLSX(&buf, sheet)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	if err != nil {
		writeErr(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="kib_b_peralatan.`+format+`"`)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// multipart/form-data の file フィールド（.csv / .xlsx）
//
//	@Summary		Bulk import equipment (.csv / .xlsx)
//	@Tags			equipment
//	@Accept			mpfd
//	@Produce		json
//	@Param			file	formData	file	true	"spreadsheet"
//	@Success		200	{object}	importer.Result
//	@Failure		400	{object}	apierr.ErrorDTO
//	@Failure		401	{object}	apierr.ErrorDTO
//	@Security		Bearer
//	@Router			/equipment/import [post]
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
	log.Printf("[INFO] equipment import %s: total=%d ok=%d ng=%d", fh.Filename, res.Total, res.OKCount, res.NGCount)
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

func writeErr(c *gin.Context, err error) {
	status := apierr.ToHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, apierr.FromErr(err))
}

func atoiDef(s string, d int) int {
	if s == "" {
		return d
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return v
}

func nextOffset(total int64, p Page) int {
	limit := p.Limit
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	next := p.Offset + limit
	if next >= int(total) {
		return 0
	}
	return next
}
