package handlers

import "github.com/gin-gonic/gin"

// Register mounts the record and geocode routes under api.
func (h *PropertyHandler) Register(api *gin.RouterGroup) {
	address := api.Group("/address")
	{
		address.GET("", h.ListAddresses)
		address.POST("", h.CreateAddress)
		address.DELETE("", h.ClearAddresses)
		address.POST("/batch", h.IngestBatch)
		address.POST("/upload", h.UploadFile)
		address.GET("/view", h.GetView)
		address.GET("/:id", h.GetAddress)
		address.GET("/:id/detail", h.GetAddressDetail)
		address.DELETE("/:id", h.DeleteAddress)
	}
	api.GET("/geocode/:id", h.Geocode)
}
