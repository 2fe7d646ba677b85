package api

import (
	"errors"   // Error matching
	"fmt"      // Cache key formatting
	"net/http" // HTTP status codes
	"net/url"  // Query encoding for cache keys

	"asset_inventory/internal/apperr" // Error taxonomy
	"asset_inventory/internal/domain" // Domain models
	"asset_inventory/internal/store"  // Persistence

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

const (
	msgInvalidAssetID   = "ID de asset no válido."
	msgAssetNotFound    = "Asset no encontrado."
	msgAssetChanged     = "El asset fue modificado por otra solicitud, por favor intenta nuevamente."
	msgAssetsFetchError = "No se pudo recuperar los assets."
	msgAssetFetchError  = "Fallo al obtener el asset, por favor intenta nuevamente más tarde."
	msgAssetCreateError = "No se pudo crear el asset."
	msgAssetUpdateError = "Fallo al guardar el asset actualizado, por favor intenta nuevamente más tarde."
	msgAssetDeleteError = "No se pudo eliminar el asset."
)

// AssetRequest is the body of create and of the full-replace update
type AssetRequest struct {
	Description      string  `json:"description" binding:"required,max=255"`        // What the asset is
	Category         string  `json:"category" binding:"required,max=120"`           // Inventory category
	AssignedEmployee *string `json:"assigned_employee" binding:"omitempty,max=255"` // Optional assignee
	AssignedDate     *Date   `json:"assigned_date"`                                 // Optional assignment date
}

// AssetListResponse is one page of assets
type AssetListResponse struct {
	Assets      []domain.Asset `json:"assets"`      // Assets on this page
	TotalPages  int            `json:"totalPages"`  // ceil(total / limit)
	CurrentPage int            `json:"currentPage"` // Requested page
}

// ListAssetsHandler returns assets filtered by description and category substrings
func ListAssetsHandler(assets store.Assets, lc ListCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		p := parsePagination(c) // page and limit from the query
		description := c.Query("description")
		category := c.Query("category")
		filters := url.Values{"description": {description}, "category": {category}}
		query := fmt.Sprintf("page=%d:limit=%d:%s", p.Page, p.Limit, filters.Encode())

		var resp AssetListResponse
		key, hit := lc.load(ctx, assetsNamespace, query, &resp)
		if hit {
			c.JSON(http.StatusOK, resp) // Serve cached page
			return
		}
		list, total, err := assets.List(ctx, store.AssetFilter{
			Description: description,
			Category:    category,
			Page:        p.window(),
		})
		if err != nil {
			fail(c, apperr.Internal(msgAssetsFetchError, err))
			return
		}
		resp = AssetListResponse{Assets: list, TotalPages: p.totalPages(total), CurrentPage: p.Page}
		lc.save(ctx, key, resp)
		c.JSON(http.StatusOK, resp)
	}
}

// GetAssetHandler returns a single asset
func GetAssetHandler(assets store.Assets) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c, msgInvalidAssetID) // Check the id format before the lookup
		if err != nil {
			fail(c, err)
			return
		}
		asset, err := assets.GetByID(c.Request.Context(), id)
		if err != nil {
			fail(c, assetStoreError(err, msgAssetFetchError))
			return
		}
		c.JSON(http.StatusOK, gin.H{"asset": asset})
	}
}

// CreateAssetHandler adds an asset to the inventory
func CreateAssetHandler(assets store.Assets, lc ListCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var req AssetRequest // Bind JSON request to struct
		if err := bindJSON(c, &req); err != nil {
			fail(c, err)
			return
		}
		asset := domain.Asset{
			Description:      req.Description,
			Category:         req.Category,
			AssignedEmployee: req.AssignedEmployee,
			AssignedDate:     req.AssignedDate.timePtr(),
		}
		if err := assets.Create(ctx, &asset); err != nil {
			fail(c, apperr.Internal(msgAssetCreateError, err))
			return
		}
		lc.invalidate(ctx, assetsNamespace)
		logrus.WithFields(logrus.Fields{
			"asset_id": asset.ID,
			"category": asset.Category,
		}).Info("Asset created")
		c.JSON(http.StatusCreated, gin.H{"asset": asset})
	}
}

// UpdateAssetHandler replaces all editable fields of an asset
func UpdateAssetHandler(assets store.Assets, lc ListCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		id, err := parseID(c, msgInvalidAssetID)
		if err != nil {
			fail(c, err)
			return
		}
		var req AssetRequest // Bind JSON request to struct
		if err := bindJSON(c, &req); err != nil {
			fail(c, err)
			return
		}
		asset, err := assets.GetByID(ctx, id)
		if err != nil {
			fail(c, assetStoreError(err, msgAssetUpdateError))
			return
		}
		// Absent optional fields are cleared
		asset.Description = req.Description
		asset.Category = req.Category
		asset.AssignedEmployee = req.AssignedEmployee
		asset.AssignedDate = req.AssignedDate.timePtr()
		if err := assets.Update(ctx, &asset); err != nil {
			fail(c, assetStoreError(err, msgAssetUpdateError))
			return
		}
		lc.invalidate(ctx, assetsNamespace)
		logrus.WithField("asset_id", asset.ID).Info("Asset updated")
		c.JSON(http.StatusOK, gin.H{"asset": asset})
	}
}

// DeleteAssetHandler removes an asset
func DeleteAssetHandler(assets store.Assets, lc ListCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		id, err := parseID(c, msgInvalidAssetID)
		if err != nil {
			fail(c, err)
			return
		}
		if err := assets.Delete(ctx, id); err != nil {
			fail(c, assetStoreError(err, msgAssetDeleteError))
			return
		}
		lc.invalidate(ctx, assetsNamespace)
		logrus.WithField("asset_id", id).Info("Asset deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Asset eliminado exitosamente."})
	}
}

// assetStoreError maps store sentinels onto client-facing errors
func assetStoreError(err error, internalMsg string) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return apperr.NotFound(msgAssetNotFound)
	case errors.Is(err, store.ErrStale):
		return apperr.Stale(msgAssetChanged)
	default:
		return apperr.Internal(internalMsg, err)
	}
}
