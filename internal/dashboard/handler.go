package dashboard

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sarpras-backend/internal/platform/apierr"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	r.GET("/summary", h.Summary)
}

// GET /summary?year=2024
//
//	@Summary		Dashboard figures
//	@Tags			dashboard
//	@Produce		json
//	@Param			year	query	int	false	"year for monthly loan counts (default: current year)"
//	@Success		200	{object}	Summary
//	@Failure		400	{object}	apierr.ErrorDTO
//	@Router			/summary [get]
func (h *Handler) Summary(c *gin.Context) {
	year := 0
	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "year must be a number"))
			return
		}
		year = y
	}

	res, err := h.svc.Summary(c.Request.Context(), year)
	if err != nil {
		status := apierr.ToHTTPStatus(err)
		if status >= http.StatusInternalServerError {
			log.Printf("[ERROR] dashboard summary: %v", err)
		}
		c.JSON(status, apierr.FromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}
