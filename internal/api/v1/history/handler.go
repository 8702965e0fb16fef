package history

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mortan11/app-prompts/internal/models"
	"github.com/mortan11/app-prompts/internal/services"
	"github.com/mortan11/app-prompts/internal/utils"
)

// ListHistory godoc
// @Summary List interaction history
// @Description List the current user's interactions, newest first, with their prompts
// @Tags history
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=[]models.Interaction}
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /history [get]
func ListHistory(c *gin.Context) {
	userID := currentUserID(c)

	interactions, err := services.ListInteractions(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("History retrieved successfully", interactions))
}

// RateInteraction godoc
// @Summary Rate an interaction inline
// @Description Rate one interaction by id. Responds with the ok/error contract of the inline flow.
// @Tags history
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Interaction ID"
// @Param request body InlineRateRequest true "Inline Rate Request"
// @Success 200 {object} InlineRateResponse
// @Failure 400 {object} InlineRateError
// @Failure 404 {object} InlineRateError
// @Router /history/rate/{id} [post]
func RateInteraction(c *gin.Context) {
	userID := currentUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, InlineRateError{OK: false, Error: "interaction not found"})
		return
	}

	var req InlineRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, InlineRateError{OK: false, Error: "invalid request body"})
		return
	}

	summary, err := services.RateInteraction(userID, uint(id), req.Rating)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInteractionNotFound), errors.Is(err, services.ErrPromptNotFound):
			c.JSON(http.StatusNotFound, InlineRateError{OK: false, Error: err.Error()})
		case errors.Is(err, services.ErrRatingRequired), errors.Is(err, services.ErrRatingInvalid):
			c.JSON(http.StatusBadRequest, InlineRateError{OK: false, Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, InlineRateError{OK: false, Error: "failed to record rating"})
		}
		return
	}

	c.JSON(http.StatusOK, InlineRateResponse{
		OK:            true,
		InteractionID: summary.InteractionID,
		Rating:        summary.Rating,
		PromptAvg:     summary.PromptAvg,
		PromptCount:   summary.PromptCount,
	})
}

// ExportHistoryCSV godoc
// @Summary Export interaction history as CSV
// @Description Download the current user's history as historial.csv
// @Tags history
// @Produce text/csv
// @Security ApiKeyAuth
// @Success 200 {string} string "CSV file"
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /history/export/csv [get]
func ExportHistoryCSV(c *gin.Context) {
	userID := currentUserID(c)

	var buf bytes.Buffer
	if err := services.ExportHistoryCSV(&buf, userID); err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	c.Header("Content-Disposition", "attachment; filename=historial.csv")
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// BulkDelete godoc
// @Summary Bulk delete interactions
// @Description Delete the given interactions. Ids that do not exist or belong to another user are ignored.
// @Tags history
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body BulkDeleteRequest true "Bulk Delete Request"
// @Success 200 {object} utils.Response{data=BulkDeleteResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /history/delete [post]
func BulkDelete(c *gin.Context) {
	userID := currentUserID(c)

	var req BulkDeleteRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	deleted, err := services.DeleteInteractions(userID, req.IDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Interactions deleted", BulkDeleteResponse{Deleted: deleted}))
}

func currentUserID(c *gin.Context) uint {
	user, _ := c.Get("user")
	u := user.(models.User)
	return u.ID
}
