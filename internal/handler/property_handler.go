package handler

import (
	"errors"
	"net/http"
	"strings"

	"facturacion-service/internal/model"
	"facturacion-service/internal/store"
	"facturacion-service/pkg/logger"
	"facturacion-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// PropertyRequest defines the structure for property creation requests
type PropertyRequest struct {
	Address     string  `json:"address"`
	Area        float64 `json:"area_m2"`
	Description string  `json:"description"`
	Operation   string  `json:"operation"`
	Status      string  `json:"status"`
	Price       float64 `json:"price"`
}

// ListProperties handles retrieving all properties
func (h *Handler) ListProperties(c echo.Context) error {
	log := logger.FromContext(c)

	properties, err := h.store.ListProperties()
	if err != nil {
		log.Error("Failed to list properties", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve properties",
		})
	}

	log.Info("Properties retrieved", zap.Int("count", len(properties)))
	return c.JSON(http.StatusOK, properties)
}

// CreateProperty handles creating a new property
func (h *Handler) CreateProperty(c echo.Context) error {
	log := logger.FromContext(c)

	var req PropertyRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	req.Address = strings.TrimSpace(req.Address)
	if req.Address == "" || req.Area == 0 || req.Price == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "address, area_m2 and price are required",
		})
	}

	if req.Operation == "" {
		req.Operation = model.OperationRental
	}
	if req.Status == "" {
		req.Status = model.StatusAvailable
	}

	property := model.Property{
		Address:     req.Address,
		Area:        req.Area,
		Description: req.Description,
		Operation:   req.Operation,
		Status:      req.Status,
		Price:       req.Price,
	}

	if err := h.store.CreateProperty(&property); err != nil {
		log.Error("Failed to create property", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create property",
		})
	}

	prometheus.RecordEntityOperation("property", "create")
	log.Info("Property created",
		zap.Uint("property_id", property.ID),
		zap.String("address", property.Address))
	return c.JSON(http.StatusCreated, property)
}

// DeleteProperty handles deleting a property without contracts
func (h *Handler) DeleteProperty(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid id"})
	}

	if err := h.store.DeleteProperty(id); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Property not found"})
		case errors.Is(err, store.ErrReferential):
			log.Warn("Property delete blocked by contracts", zap.Uint("property_id", id))
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Cannot delete: property is referenced by a contract",
			})
		default:
			log.Error("Failed to delete property", zap.Uint("property_id", id), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "Failed to delete property",
			})
		}
	}

	prometheus.RecordEntityOperation("property", "delete")
	log.Info("Property deleted", zap.Uint("property_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Property deleted successfully"})
}
