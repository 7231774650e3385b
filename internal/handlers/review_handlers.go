package handlers

import (
	"net/http"

	"github.com/upark/upark-api/internal/constants"
	"github.com/upark/upark-api/internal/models"
	"github.com/upark/upark-api/internal/utils"
)

// ReviewHandler handles the /api/reviews resource
type ReviewHandler struct {
	reviewService ReviewServiceInterface
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService ReviewServiceInterface) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// ListReviews returns every review, unfiltered
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	items, err := h.reviewService.ListReviews(r.Context())
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, items)
}

// GetReview returns a single review
func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	item, err := h.reviewService.GetReview(r.Context(), id)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, item)
}

// CreateReview stores a review of a parking lot by a user
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var input models.ReviewCreate
	if err := utils.DecodeAndValidate(r, &input); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	item, err := h.reviewService.CreateReview(r.Context(), &input)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusCreated, item)
}

// UpdateReview overwrites rating and comment. created_at is refreshed by the store.
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var input models.ReviewUpdate
	if err := utils.DecodeAndValidate(r, &input); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	item, err := h.reviewService.UpdateReview(r.Context(), id, &input)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, item)
}

// DeleteReview removes a review
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.reviewService.DeleteReview(r.Context(), id); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.Message(w, http.StatusOK, constants.MsgReviewDeleted)
}
