package loans

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"sarpras-backend/internal/platform/apierr"
	"sarpras-backend/internal/platform/auth"
)

type Handler struct{ svc *Service }

func RegisterRoutes(read, write gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	// 貸出
	write.POST("/loans", h.CreateLoan)
	read.GET("/loans", h.ListLoans)
	// 返却待ち一覧
	read.GET("/loans/outstanding", h.ListOutstanding)
	read.GET("/loans/:id", h.GetLoan)

	// 返却（何度送っても1回分しか戻らない）
	write.POST("/loans/:id/return", h.ReturnLoan)
}

// ---------- handlers ----------

//	@Summary		Borrow equipment
//	@Tags			loans
//	@Accept			json
//	@Produce		json
//	@Param			request	body	CreateLoanRequest	true	"loan"
//	@Success		201	{object}	LoanResponse
//	@Failure		400	{object}	apierr.ErrorDTO
//	@Failure		401	{object}	apierr.ErrorDTO
//	@Failure		404	{object}	apierr.ErrorDTO
//	@Failure		409	{object}	apierr.ErrorDTO
//	@Failure		503	{object}	apierr.ErrorDTO
//	@Security		Bearer
//	@Router			/loans [post]
func (h *Handler) CreateLoan(c *gin.Context) {
	var req CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "invalid json or missing required fields"))
		return
	}

	res, err := h.svc.CreateLoan(c.Request.Context(), req, auth.OperatorID(c))
	if err != nil {
		writeErr(c, err)
		return
	}

	c.Header("Location", c.FullPath()+"/"+res.ULID)
	c.JSON(http.StatusCreated, res)
}

//	@Summary		Return loan (idempotent)
//	@Tags			loans
//	@Produce		json
//	@Param			id	path	int	true	"loan id"
//	@Success		200	{object}	LoanResponse
//	@Failure		400	{object}	apierr.ErrorDTO
//	@Failure		401	{object}	apierr.ErrorDTO
//	@Failure		404	{object}	apierr.ErrorDTO
//	@Security		Bearer
//	@Router			/loans/{id}/return [post]
func (h *Handler) ReturnLoan(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "id must be a positive number"))
		return
	}

	res, err := h.svc.ReturnLoan(c.Request.Context(), id, auth.OperatorID(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

//	@Summary		Get loan by id or ULID
//	@Tags			loans
//	@Produce		json
//	@Param			id	path	string	true	"loan id or ULID"
//	@Success		200	{object}	LoanResponse
//	@Failure		404	{object}	apierr.ErrorDTO
//	@Router			/loans/{id} [get]
func (h *Handler) GetLoan(c *gin.Context) {
	res, err := h.svc.GetLoan(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

//	@Summary		List loans
//	@Tags			loans
//	@Produce		json
//	@Param			status	query	string	false	"status"	Enums(borrowed, returned)
//	@Param			borrower	query	string	false	"borrower contains"
//	@Param			item_id	query	int	false	"item id"
//	@Param			limit	query	int	false	"page size (max 500)"
//	@Param			offset	query	int	false	"offset"
//	@Success		200	{object}	ListResult
//	@Failure		400	{object}	apierr.ErrorDTO
//	@Router			/loans [get]
func (h *Handler) ListLoans(c *gin.Context) {
	f, ok := parseFilter(c)
	if !ok {
		return
	}
	res, err := h.svc.ListLoans(c.Request.Context(), f, parsePage(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

//	@Summary		Loans not yet returned
//	@Tags			loans
//	@Produce		json
//	@Param			borrower	query	string	false	"borrower contains"
//	@Param			item_id	query	int	false	"item id"
//	@Param			limit	query	int	false	"page size (max 500)"
//	@Param			offset	query	int	false	"offset"
//	@Success		200	{object}	ListResult
//	@Failure		400	{object}	apierr.ErrorDTO
//	@Router			/loans/outstanding [get]
func (h *Handler) ListOutstanding(c *gin.Context) {
	f, ok := parseFilter(c)
	if !ok {
		return
	}
	res, err := h.svc.ListOutstanding(c.Request.Context(), f, parsePage(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ---------- helpers ----------

func parseFilter(c *gin.Context) (LoanFilter, bool) {
	f := LoanFilter{Borrower: c.Query("borrower")}
	if v := c.Query("status"); v != "" {
		st := Status(strings.ToLower(v))
		if st != StatusBorrowed && st != StatusReturned {
			c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "status must be borrowed or returned"))
			return f, false
		}
		f.Status = &st
	}
	if v := c.Query("item_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "item_id must be a number"))
			return f, false
		}
		f.ItemID = &id
	}
	return f, true
}

func parsePage(c *gin.Context) Page {
	return Page{
		Limit:  parseIntDefault(c.Query("limit"), 50),
		Offset: parseIntDefault(c.Query("offset"), 0),
		Order:  c.DefaultQuery("order", "desc"),
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
