package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/salonfin/backend/internal/application/catalog"
)

// CatalogHandler handles material and service endpoints
type CatalogHandler struct {
	BaseHandler
	catalog CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalog CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListMaterials godoc
//
//	@Summary	List materials with their unit cost
//	@Tags		materials
//	@Produce	json
//	@Security	BearerAuth
//	@Router		/materials [get]
func (h *CatalogHandler) ListMaterials(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	materials, err := h.catalog.ListMaterials(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, materials)
}

// CreateMaterial godoc
//
//	@Summary	Add a material
//	@Tags		materials
//	@Accept		json
//	@Param		request	body	catalog.SaveMaterialRequest	true	"Request body"
//	@Produce	json
//	@Security	BearerAuth
//	@Router		/materials [post]
func (h *CatalogHandler) CreateMaterial(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req catalogapp.SaveMaterialRequest
	if !h.bindJSON(c, &req) {
		return
	}
	material, err := h.catalog.CreateMaterial(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, material)
}

// UpdateMaterial godoc
//
//	@Summary	Replace a material's batch data
//	@Tags		materials
//	@Param		id	path	string	true	"Material ID"	format(uuid)
//	@Accept		json
//	@Param		request	body	catalog.SaveMaterialRequest	true	"Request body"
//	@Produce	json
//	@Security	BearerAuth
//	@Router		/materials/{id} [put]
func (h *CatalogHandler) UpdateMaterial(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req catalogapp.SaveMaterialRequest
	if !h.bindJSON(c, &req) {
		return
	}
	material, err := h.catalog.UpdateMaterial(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, material)
}

// DeleteMaterial godoc
//
//	@Summary	Delete a material
//	@Tags		materials
//	@Param		id	path	string	true	"Material ID"	format(uuid)
//	@Produce	json
//	@Security	BearerAuth
//	@Router		/materials/{id} [delete]
func (h *CatalogHandler) DeleteMaterial(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.catalog.DeleteMaterial(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListServices godoc
//
//	@Summary	List priced services
//	@Tags		services
//	@Produce	json
//	@Security	BearerAuth
//	@Router		/services [get]
func (h *CatalogHandler) ListServices(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	services, err := h.catalog.ListServices(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, services)
}

// GetService godoc
//
//	@Summary	Get a service
//	@Tags		services
//	@Param		id	path	string	true	"Service ID"	format(uuid)
//	@Produce	json
//	@Security	BearerAuth
//	@Router		/services/{id} [get]
func (h *CatalogHandler) GetService(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	service, err := h.catalog.GetService(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, service)
}

// CreateService godoc
//
//	@Summary	Add a service, pricing it with the current parameters
//	@Tags		services
//	@Accept		json
//	@Param		request	body	catalog.SaveServiceRequest	true	"Request body"
//	@Produce	json
//	@Security	BearerAuth
//	@Router		/services [post]
func (h *CatalogHandler) CreateService(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req catalogapp.SaveServiceRequest
	if !h.bindJSON(c, &req) {
		return
	}
	service, err := h.catalog.CreateService(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, service)
}

// UpdateService godoc
//
//	@Summary	Replace a service and re-price it
//	@Tags		services
//	@Param		id	path	string	true	"Service ID"	format(uuid)
//	@Accept		json
//	@Param		request	body	catalog.SaveServiceRequest	true	"Request body"
//	@Produce	json
//	@Security	BearerAuth
//	@Router		/services/{id} [put]
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req catalogapp.SaveServiceRequest
	if !h.bindJSON(c, &req) {
		return
	}
	service, err := h.catalog.UpdateService(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, service)
}

// DeleteService godoc
//
//	@Summary	Delete a service
//	@Tags		services
//	@Param		id	path	string	true	"Service ID"	format(uuid)
//	@Produce	json
//	@Security	BearerAuth
//	@Router		/services/{id} [delete]
func (h *CatalogHandler) DeleteService(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.catalog.DeleteService(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Analyze godoc
//
//	@Summary	Frozen pricing next to costs at the current rates
//	@Tags		services
//	@Param		id	path	string	true	"Service ID"	format(uuid)
//	@Produce	json
//	@Security	BearerAuth
//	@Router		/services/{id}/analysis [get]
func (h *CatalogHandler) Analyze(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	analysis, err := h.catalog.Analyze(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, analysis)
}

// RecalculateLine godoc
//
//	@Summary	Re-derive a material line's cost from the current material price
//	@Tags		services
//	@Accept		json
//	@Param		request	body	catalog.UpdateLineRequest	true	"Request body"
//	@Produce	json
//	@Security	BearerAuth
//	@Router		/services/lines/recalculate [post]
func (h *CatalogHandler) RecalculateLine(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req catalogapp.UpdateLineRequest
	if !h.bindJSON(c, &req) {
		return
	}
	line, err := h.catalog.UpdateLine(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, line)
}
