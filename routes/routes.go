package routes

import (
	"net/http"

	"medibook/handlers"
	"medibook/utils"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all endpoints for the booking workflow engine.
func RegisterRoutes(r *gin.Engine, wf *handlers.WorkflowHandler, cat *handlers.CatalogHandler) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})

	workflow := r.Group("/api/workflow")
	{
		workflow.POST("/session", wf.StartWorkflow)
		workflow.PUT("/session/:sessionID/field", wf.SetField)
		workflow.POST("/session/:sessionID/next", wf.GoNext)
		workflow.POST("/session/:sessionID/back", wf.GoBack)
		workflow.POST("/session/:sessionID/jump", wf.JumpTo)
		workflow.POST("/session/:sessionID/location", wf.RequestLocation)
		workflow.POST("/session/:sessionID/submit", wf.Submit)
		workflow.DELETE("/session/:sessionID", wf.Cancel)
	}

	catalog := r.Group("/api/catalog")
	{
		catalog.GET("/providers", cat.ListProviders)
		catalog.GET("/slots", cat.ListSlots)
		catalog.GET("/payment-methods", cat.ListPaymentMethods)
	}
}
