package handlers

import (
	"fmt"
	"net/http"

	apperrors "geocortex/internal/errors"
	"geocortex/internal/models"
	"geocortex/internal/projector"
	"geocortex/internal/services"
	"geocortex/internal/tabular"
	"geocortex/internal/transformers"

	"github.com/gin-gonic/gin"
)

type PropertyHandler struct {
	propertyService  *services.PropertyService
	ingestionService *services.IngestionService
	geocodeService   *services.GeocodeService
	maxUploadBytes   int64
}

func NewPropertyHandler(
	propertyService *services.PropertyService,
	ingestionService *services.IngestionService,
	geocodeService *services.GeocodeService,
	maxUploadBytes int64,
) *PropertyHandler {
	return &PropertyHandler{
		propertyService:  propertyService,
		ingestionService: ingestionService,
		geocodeService:   geocodeService,
		maxUploadBytes:   maxUploadBytes,
	}
}

func invalidBody(err error) error {
	return fmt.Errorf("%w: %v", apperrors.ErrInvalidParameters, err)
}

// CreateAddress godoc
// @Summary Store one property record
// @Description Normalizes a raw row and stores it. The address comes from "address" or "Lot Number / Address"; coordinates from lat/Latitude/latitude and lon/Longitude/longitude.
// @Tags Addresses
// @Accept json
// @Produce json
// @Param record body object true "Raw row"
// @Success 201 {object} object
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /address [post]
func (h *PropertyHandler) CreateAddress(c *gin.Context) {
	var row models.RawRow
	if err := c.ShouldBindJSON(&row); err != nil {
		_ = c.Error(invalidBody(err))
		return
	}
	record, err := h.propertyService.CreateRecord(c.Request.Context(), row)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// ListAddresses godoc
// @Summary List every stored record
// @Description Returns all records in insertion order.
// @Tags Addresses
// @Produce json
// @Success 200 {array} object
// @Failure 500 {object} map[string]interface{}
// @Router /address [get]
func (h *PropertyHandler) ListAddresses(c *gin.Context) {
	records, err := h.propertyService.ListRecords(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	if records == nil {
		records = []*models.PropertyRecord{}
	}
	c.JSON(http.StatusOK, records)
}

// GetAddress godoc
// @Summary Get one record
// @Tags Addresses
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} object
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /address/{id} [get]
func (h *PropertyHandler) GetAddress(c *gin.Context) {
	record, err := h.propertyService.GetRecord(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// GetAddressDetail godoc
// @Summary Get the labelled detail view of one record
// @Tags Addresses
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} projector.Detail
// @Failure 404 {object} map[string]interface{}
// @Router /address/{id}/detail [get]
func (h *PropertyHandler) GetAddressDetail(c *gin.Context) {
	record, err := h.propertyService.GetRecord(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, projector.DetailOf(record))
}

// DeleteAddress godoc
// @Summary Delete one record
// @Description Reports 1 when a record was removed and 0 when none matched.
// @Tags Addresses
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} map[string]int
// @Failure 500 {object} map[string]interface{}
// @Router /address/{id} [delete]
func (h *PropertyHandler) DeleteAddress(c *gin.Context) {
	n, err := h.propertyService.DeleteRecord(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

// ClearAddresses godoc
// @Summary Delete every record
// @Tags Addresses
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 500 {object} map[string]interface{}
// @Router /address [delete]
func (h *PropertyHandler) ClearAddresses(c *gin.Context) {
	if _, err := h.propertyService.ClearRecords(c.Request.Context()); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// IngestBatch godoc
// @Summary Store many raw rows
// @Description Rows are stored one at a time in order. Failures are reported per 1-based row and do not stop the batch.
// @Tags Addresses
// @Accept json
// @Produce json
// @Param rows body []object true "Raw rows"
// @Success 200 {object} models.BatchResult
// @Failure 400 {object} map[string]interface{}
// @Router /address/batch [post]
func (h *PropertyHandler) IngestBatch(c *gin.Context) {
	var rows []models.RawRow
	if err := c.ShouldBindJSON(&rows); err != nil {
		_ = c.Error(invalidBody(err))
		return
	}
	c.JSON(http.StatusOK, h.ingestionService.Ingest(c.Request.Context(), rows))
}

// UploadFile godoc
// @Summary Ingest a CSV or XLSX file
// @Description The first row is the header. Rows without any address column are dropped before ingestion.
// @Tags Addresses
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV or XLSX file"
// @Success 200 {object} models.UploadResult
// @Failure 400 {object} map[string]interface{}
// @Router /address/upload [post]
func (h *PropertyHandler) UploadFile(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}
	header, err := c.FormFile("file")
	if err != nil {
		_ = c.Error(invalidBody(err))
		return
	}
	file, err := header.Open()
	if err != nil {
		_ = c.Error(invalidBody(err))
		return
	}
	defer file.Close()

	sheet, err := tabular.Read(header.Filename, file)
	if err != nil {
		_ = c.Error(invalidBody(err))
		return
	}
	kept, dropped := tabular.FilterAddressRows(sheet, transformers.DefaultFieldSources.Address)

	result := h.ingestionService.Ingest(c.Request.Context(), kept.Rows)
	result.RenumberRejections(kept.Line)

	c.JSON(http.StatusOK, &models.UploadResult{
		Filename:    header.Filename,
		Rows:        len(sheet.Rows),
		Dropped:     len(dropped),
		DroppedRows: dropped,
		Result:      result,
	})
}

// GetView godoc
// @Summary Map markers, viewport and list rows for every record
// @Tags Addresses
// @Produce json
// @Success 200 {object} projector.View
// @Failure 500 {object} map[string]interface{}
// @Router /address/view [get]
func (h *PropertyHandler) GetView(c *gin.Context) {
	records, err := h.propertyService.ListRecords(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, projector.Project(records))
}

// Geocode godoc
// @Summary Geocode the stored address of a record
// @Description Proxies the address to Nominatim and returns its candidates unvalidated.
// @Tags Geocode
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} models.GeocodeResponse
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /geocode/{id} [get]
func (h *PropertyHandler) Geocode(c *gin.Context) {
	resp, err := h.geocodeService.GeocodeRecord(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
