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

// ClientRequest defines the structure for client creation requests
type ClientRequest struct {
	DNI     string `json:"dni"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Email   string `json:"email"`
}

// ListClients handles retrieving all clients
func (h *Handler) ListClients(c echo.Context) error {
	log := logger.FromContext(c)

	clients, err := h.store.ListClients()
	if err != nil {
		log.Error("Failed to list clients", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve clients",
		})
	}

	log.Info("Clients retrieved", zap.Int("count", len(clients)))
	return c.JSON(http.StatusOK, clients)
}

// CreateClient handles creating a new client
func (h *Handler) CreateClient(c echo.Context) error {
	log := logger.FromContext(c)

	var req ClientRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	req.DNI = strings.TrimSpace(req.DNI)
	req.Name = strings.TrimSpace(req.Name)
	req.Surname = strings.TrimSpace(req.Surname)
	req.Email = strings.TrimSpace(req.Email)

	if req.DNI == "" || req.Name == "" || req.Surname == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "dni, name and surname are required",
		})
	}
	if req.Email != "" && (!strings.Contains(req.Email, "@") || !strings.Contains(req.Email, ".")) {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid email",
		})
	}

	client := model.Client{
		DNI:     req.DNI,
		Name:    req.Name,
		Surname: req.Surname,
		Phone:   strings.TrimSpace(req.Phone),
		Address: strings.TrimSpace(req.Address),
		Email:   req.Email,
	}

	if err := h.store.CreateClient(&client); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			log.Warn("Client with this DNI already exists", zap.String("dni", req.DNI))
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "DNI is already registered",
			})
		}
		log.Error("Failed to create client", zap.String("dni", req.DNI), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create client",
		})
	}

	prometheus.RecordEntityOperation("client", "create")
	log.Info("Client created",
		zap.Uint("client_id", client.ID),
		zap.String("dni", client.DNI))
	return c.JSON(http.StatusCreated, client)
}

// DeleteClient handles deleting a client without contracts
func (h *Handler) DeleteClient(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid id"})
	}

	if err := h.store.DeleteClient(id); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Client not found"})
		case errors.Is(err, store.ErrReferential):
			log.Warn("Client delete blocked by contracts", zap.Uint("client_id", id))
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Cannot delete: client has associated contracts",
			})
		default:
			log.Error("Failed to delete client", zap.Uint("client_id", id), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "Failed to delete client",
			})
		}
	}

	prometheus.RecordEntityOperation("client", "delete")
	log.Info("Client deleted", zap.Uint("client_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Client deleted successfully"})
}
