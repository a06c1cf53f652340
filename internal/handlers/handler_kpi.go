package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/teamops_backend/internal/core/ports/services"
	"github.com/SscSPs/teamops_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// kpiHandler handles HTTP requests related to KPIs and their recorded values.
type kpiHandler struct {
	kpiService portssvc.KpiSvcFacade
}

func newKpiHandler(ks portssvc.KpiSvcFacade) *kpiHandler {
	return &kpiHandler{kpiService: ks}
}

func registerKpiRoutes(rg *gin.RouterGroup, kpiService portssvc.KpiSvcFacade) {
	h := newKpiHandler(kpiService)

	kpis := rg.Group("/kpis")
	{
		kpis.GET("", h.listKpis)
		kpis.POST("", h.createKpi)
		kpis.GET("/:id", h.getKpi)
		kpis.PUT("/:id", h.updateKpi)
		kpis.DELETE("/:id", h.deleteKpi)

		values := kpis.Group("/:id/values")
		{
			values.GET("", h.listValues)
			values.POST("", h.createValue)
			values.PUT("/:valueId", h.updateValue)
			values.DELETE("/:valueId", h.deleteValue)
		}
	}
}

// listKpis godoc
// @Summary List KPIs
// @Description Lists the KPIs the caller created or whose project the caller is involved with, newest first.
// @Tags kpis
// @Produce json
// @Param type query string false "Filter by type" Enums(NUMERIC, PERCENTAGE, CURRENCY, BOOLEAN)
// @Param isActive query bool false "Filter by active flag"
// @Param projectId query string false "Filter by project"
// @Param search query string false "Matches name or description"
// @Success 200 {object} dto.SuccessResponse{data=object{kpis=[]dto.KpiResponse}}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /kpis [get]
func (h *kpiHandler) listKpis(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}
	var params dto.ListKpisParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	kpis, err := h.kpiService.ListKpis(c.Request.Context(), principal, params.ToKpiFilter())
	if err != nil {
		respondError(c, err, "Failed to retrieve KPIs")
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("KPIs retrieved successfully", gin.H{"kpis": dto.ToKpiResponses(kpis)}))
}

// getKpi godoc
// @Summary Get a KPI by ID
// @Tags kpis
// @Produce json
// @Param id path string true "KPI ID"
// @Success 200 {object} dto.SuccessResponse{data=object{kpi=dto.KpiResponse}}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /kpis/{id} [get]
func (h *kpiHandler) getKpi(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}

	kpi, err := h.kpiService.GetKpiByID(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve KPI")
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("KPI retrieved successfully", gin.H{"kpi": dto.ToKpiResponse(kpi)}))
}

// createKpi godoc
// @Summary Create a KPI
// @Description Administrators and managers only. Attaching to a project requires stewardship of that project.
// @Tags kpis
// @Accept json
// @Produce json
// @Param kpi body dto.CreateKpiRequest true "KPI details"
// @Success 201 {object} dto.SuccessResponse{data=object{kpi=dto.KpiResponse}}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Security BearerAuth
// @Router /kpis [post]
func (h *kpiHandler) createKpi(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}
	var req dto.CreateKpiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	kpi, err := h.kpiService.CreateKpi(c.Request.Context(), principal, req)
	if err != nil {
		respondError(c, err, "Failed to create KPI")
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse("KPI created successfully", gin.H{"kpi": dto.ToKpiResponse(kpi)}))
}

// updateKpi godoc
// @Summary Update a KPI
// @Tags kpis
// @Accept json
// @Produce json
// @Param id path string true "KPI ID"
// @Param kpi body dto.UpdateKpiRequest true "Fields to update"
// @Success 200 {object} dto.SuccessResponse{data=object{kpi=dto.KpiResponse}}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /kpis/{id} [put]
func (h *kpiHandler) updateKpi(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}
	var req dto.UpdateKpiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	kpi, err := h.kpiService.UpdateKpi(c.Request.Context(), principal, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update KPI")
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("KPI updated successfully", gin.H{"kpi": dto.ToKpiResponse(kpi)}))
}

// deleteKpi godoc
// @Summary Delete a KPI
// @Description Recorded values are removed with the KPI.
// @Tags kpis
// @Produce json
// @Param id path string true "KPI ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /kpis/{id} [delete]
func (h *kpiHandler) deleteKpi(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}

	if err := h.kpiService.DeleteKpi(c.Request.Context(), principal, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete KPI")
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("KPI deleted successfully", nil))
}

// listValues godoc
// @Summary List recorded values of a KPI
// @Description Values are ordered by date, newest first. Pass nextToken from a previous page to continue.
// @Tags kpis
// @Produce json
// @Param id path string true "KPI ID"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.SuccessResponse{data=dto.KpiValuePageResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /kpis/{id}/values [get]
func (h *kpiHandler) listValues(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}
	var params dto.ListKpiValuesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.kpiService.ListKpiValues(c.Request.Context(), principal, c.Param("id"), params)
	if err != nil {
		respondError(c, err, "Failed to retrieve KPI values")
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("KPI values retrieved successfully", dto.ToKpiValuePageResponse(page)))
}

// createValue godoc
// @Summary Record a KPI value
// @Description Any user who can read the KPI may record a value.
// @Tags kpis
// @Accept json
// @Produce json
// @Param id path string true "KPI ID"
// @Param value body dto.CreateKpiValueRequest true "Value"
// @Success 201 {object} dto.SuccessResponse{data=object{kpiValue=dto.KpiValueResponse}}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /kpis/{id}/values [post]
func (h *kpiHandler) createValue(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}
	var req dto.CreateKpiValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	value, err := h.kpiService.CreateKpiValue(c.Request.Context(), principal, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to create KPI value")
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse("KPI value created successfully", gin.H{"kpiValue": dto.ToKpiValueResponse(value)}))
}

// updateValue godoc
// @Summary Update a recorded KPI value
// @Description The recorder of a value may always change it, as may stewards of the KPI.
// @Tags kpis
// @Accept json
// @Produce json
// @Param id path string true "KPI ID"
// @Param valueId path string true "Value ID"
// @Param value body dto.UpdateKpiValueRequest true "Fields to update"
// @Success 200 {object} dto.SuccessResponse{data=object{kpiValue=dto.KpiValueResponse}}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /kpis/{id}/values/{valueId} [put]
func (h *kpiHandler) updateValue(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}
	var req dto.UpdateKpiValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	value, err := h.kpiService.UpdateKpiValue(c.Request.Context(), principal, c.Param("id"), c.Param("valueId"), req)
	if err != nil {
		respondError(c, err, "Failed to update KPI value")
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("KPI value updated successfully", gin.H{"kpiValue": dto.ToKpiValueResponse(value)}))
}

// deleteValue godoc
// @Summary Delete a recorded KPI value
// @Tags kpis
// @Produce json
// @Param id path string true "KPI ID"
// @Param valueId path string true "Value ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /kpis/{id}/values/{valueId} [delete]
func (h *kpiHandler) deleteValue(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}

	if err := h.kpiService.DeleteKpiValue(c.Request.Context(), principal, c.Param("id"), c.Param("valueId")); err != nil {
		respondError(c, err, "Failed to delete KPI value")
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("KPI value deleted successfully", nil))
}
