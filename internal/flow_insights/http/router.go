package http

import "github.com/gin-gonic/gin"

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/sankey", h.SankeyUpload)
	rg.POST("/sankey-raw", h.SankeyRaw)
	rg.GET("/placeholder", h.Placeholder)
}
