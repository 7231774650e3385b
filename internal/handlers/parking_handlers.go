package handlers

import (
	"net/http"

	"github.com/upark/upark-api/internal/constants"
	"github.com/upark/upark-api/internal/models"
	"github.com/upark/upark-api/internal/utils"
)

// ParkingHandler handles the /api/parkings resource
type ParkingHandler struct {
	parkingService ParkingServiceInterface
}

// NewParkingHandler creates a new ParkingHandler
func NewParkingHandler(parkingService ParkingServiceInterface) *ParkingHandler {
	return &ParkingHandler{parkingService: parkingService}
}

// ListParkings returns every parking lot
func (h *ParkingHandler) ListParkings(w http.ResponseWriter, r *http.Request) {
	items, err := h.parkingService.ListParkings(r.Context())
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, items)
}

// GetParking returns a single parking lot
func (h *ParkingHandler) GetParking(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	item, err := h.parkingService.GetParking(r.Context(), id)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, item)
}

// CreateParking stores a new lot; is_active defaults to true
func (h *ParkingHandler) CreateParking(w http.ResponseWriter, r *http.Request) {
	var input models.ParkingInput
	if err := utils.DecodeAndValidate(r, &input); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	item, err := h.parkingService.CreateParking(r.Context(), &input)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusCreated, item)
}

// UpdateParking overwrites a lot and refreshes updated_at
func (h *ParkingHandler) UpdateParking(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var input models.ParkingInput
	if err := utils.DecodeAndValidate(r, &input); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	item, err := h.parkingService.UpdateParking(r.Context(), id, &input)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, item)
}

// DeleteParking removes a lot
func (h *ParkingHandler) DeleteParking(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.parkingService.DeleteParking(r.Context(), id); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.Message(w, http.StatusOK, constants.MsgParkingDeleted)
}
