package handler

import (
	"errors"
	"net/http"
	"time"

	"facturacion-service/internal/model"
	"facturacion-service/internal/store"
	"facturacion-service/pkg/logger"
	"facturacion-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ContractRequest defines the structure for contract creation requests
type ContractRequest struct {
	ClientID   uint   `json:"client_id"`
	PropertyID uint   `json:"property_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Type       string `json:"type"`
}

// ListContracts handles retrieving all contracts with client and property data
func (h *Handler) ListContracts(c echo.Context) error {
	log := logger.FromContext(c)

	rows, err := h.store.ListContractsJoined()
	if err != nil {
		log.Error("Failed to list contracts", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve contracts",
		})
	}

	payload := make([]echo.Map, 0, len(rows))
	for _, row := range rows {
		payload = append(payload, echo.Map{
			"id":         row.ID,
			"client":     row.Client,
			"property":   row.Property,
			"start_date": row.StartDate.Format(dateLayout),
			"type":       row.Type,
		})
	}

	log.Info("Contracts retrieved", zap.Int("count", len(rows)))
	return c.JSON(http.StatusOK, payload)
}

// CreateContract handles creating a new contract
func (h *Handler) CreateContract(c echo.Context) error {
	log := logger.FromContext(c)

	var req ContractRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if req.ClientID == 0 || req.PropertyID == 0 || req.StartDate == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "client_id, property_id and start_date are required",
		})
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "start_date must be yyyy-mm-dd",
		})
	}
	var endDate *time.Time
	if req.EndDate != "" {
		parsed, err := parseDate(req.EndDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "end_date must be yyyy-mm-dd",
			})
		}
		endDate = &parsed
	}

	if req.Type == "" {
		req.Type = model.OperationRental
	}

	contract := model.Contract{
		ClientID:   req.ClientID,
		PropertyID: req.PropertyID,
		StartDate:  startDate,
		EndDate:    endDate,
		Type:       req.Type,
	}

	if err := h.store.CreateContract(&contract); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("Contract references a missing parent", zap.Error(err))
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		}
		log.Error("Failed to create contract", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create contract",
		})
	}

	prometheus.RecordEntityOperation("contract", "create")
	log.Info("Contract created",
		zap.Uint("contract_id", contract.ID),
		zap.Uint("client_id", contract.ClientID),
		zap.Uint("property_id", contract.PropertyID))
	return c.JSON(http.StatusCreated, contract)
}

// DeleteContract handles deleting a contract without invoices
func (h *Handler) DeleteContract(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid id"})
	}

	if err := h.store.DeleteContract(id); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Contract not found"})
		case errors.Is(err, store.ErrReferential):
			log.Warn("Contract delete blocked by invoices", zap.Uint("contract_id", id))
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Cannot delete: contract has associated invoices",
			})
		default:
			log.Error("Failed to delete contract", zap.Uint("contract_id", id), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "Failed to delete contract",
			})
		}
	}

	prometheus.RecordEntityOperation("contract", "delete")
	log.Info("Contract deleted", zap.Uint("contract_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Contract deleted successfully"})
}
