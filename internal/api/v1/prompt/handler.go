package prompt

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mortan11/app-prompts/internal/models"
	"github.com/mortan11/app-prompts/internal/services"
	"github.com/mortan11/app-prompts/internal/utils"
)

// ListPrompts godoc
// @Summary List prompts
// @Description List the current user's prompts with optional title search and sorting
// @Tags prompts
// @Produce json
// @Security ApiKeyAuth
// @Param q query string false "Case-insensitive title substring"
// @Param sort query string false "Sort key: name, created_desc, updated_desc (default), rating_desc, rating_asc"
// @Success 200 {object} utils.Response{data=[]models.Prompt}
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /prompts [get]
func ListPrompts(c *gin.Context) {
	userID := currentUserID(c)
	sort := c.DefaultQuery("sort", services.SortUpdatedDesc)
	q := c.Query("q")

	prompts, err := services.ListPrompts(userID, sort, q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompts retrieved successfully", prompts))
}

// CreatePrompt godoc
// @Summary Create a prompt
// @Description Create a prompt template with declared field types
// @Tags prompts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body PromptRequest true "Create Prompt Request"
// @Success 201 {object} utils.Response{data=models.Prompt}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /prompts [post]
func CreatePrompt(c *gin.Context) {
	userID := currentUserID(c)

	var req PromptRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	p, err := services.CreatePrompt(userID, req.Title, req.Description, req.Template, models.StringMap(req.FieldTypes))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Prompt created successfully", p))
}

// GetPrompt godoc
// @Summary Get a prompt
// @Description Get one of the current user's prompts by id
// @Tags prompts
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Prompt ID"
// @Success 200 {object} utils.Response{data=models.Prompt}
// @Failure 401 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /prompts/{id} [get]
func GetPrompt(c *gin.Context) {
	userID := currentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	p, err := services.GetPrompt(id, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt retrieved successfully", p))
}

// UpdatePrompt godoc
// @Summary Update a prompt
// @Description Update one of the current user's prompts
// @Tags prompts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Prompt ID"
// @Param request body PromptRequest true "Update Prompt Request"
// @Success 200 {object} utils.Response{data=models.Prompt}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /prompts/{id} [put]
func UpdatePrompt(c *gin.Context) {
	userID := currentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req PromptRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	p, err := services.UpdatePrompt(id, userID, req.Title, req.Description, req.Template, models.StringMap(req.FieldTypes))
	if err != nil {
		if errors.Is(err, services.ErrPromptNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt updated successfully", p))
}

// DeletePrompt godoc
// @Summary Delete a prompt
// @Description Delete one of the current user's prompts. Its interactions remain in the history.
// @Tags prompts
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Prompt ID"
// @Success 200 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /prompts/{id} [delete]
func DeletePrompt(c *gin.Context) {
	userID := currentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := services.DeletePrompt(id, userID); err != nil {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt deleted successfully", nil))
}

// GetPromptFields godoc
// @Summary Get a prompt's fields
// @Description List the template's placeholder names, in template order
// @Tags prompts
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Prompt ID"
// @Success 200 {object} utils.Response{data=FieldsResponse}
// @Failure 401 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /prompts/{id}/fields [get]
func GetPromptFields(c *gin.Context) {
	userID := currentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	p, err := services.GetPrompt(id, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt fields retrieved successfully", FieldsResponse{
		Fields: services.ExtractFields(p.Template),
	}))
}

// ExecutePrompt godoc
// @Summary Execute a prompt
// @Description Validate the submitted values, fill the template, call the completion API and record the interaction
// @Tags prompts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Prompt ID"
// @Param request body ExecuteRequest true "Execute Request"
// @Success 200 {object} utils.Response{data=ExecuteResponse}
// @Failure 401 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 422 {object} utils.Response{data=ValidationFailure}
// @Failure 502 {object} utils.Response
// @Router /prompts/{id}/execute [post]
func ExecutePrompt(c *gin.Context) {
	userID := currentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req ExecuteRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	result, err := services.ExecutePrompt(c.Request.Context(), userID, id, models.StringMap(req.Values), req.Model)
	if err != nil {
		var validationErr *services.FieldValidationError
		switch {
		case errors.As(err, &validationErr):
			c.JSON(http.StatusUnprocessableEntity, utils.Response{
				Status:  http.StatusUnprocessableEntity,
				Message: "Field validation failed",
				Data: ValidationFailure{
					Errors: validationErr.Messages,
					Values: req.Values,
				},
			})
		case errors.Is(err, services.ErrPromptNotFound):
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
		default:
			c.JSON(http.StatusBadGateway, utils.NewErrorResponse(http.StatusBadGateway, "Completion request failed"))
		}
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt executed successfully", ExecuteResponse{
		InteractionID:  result.Interaction.ID,
		FilledTemplate: result.FilledTemplate,
		Result:         result.Interaction.Result,
		Values:         req.Values,
	}))
}

// RatePrompt godoc
// @Summary Rate a prompt
// @Description Rate an interaction on this prompt. Without an interaction id the user's most recent interaction is rated. A blank rating is a no-op.
// @Tags prompts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Prompt ID"
// @Param request body RateRequest true "Rate Request"
// @Success 200 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /prompts/{id}/rate [post]
func RatePrompt(c *gin.Context) {
	userID := currentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req RateRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := services.RatePrompt(userID, id, req.Rating, req.InteractionID); err != nil {
		if errors.Is(err, services.ErrPromptNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Rating recorded", nil))
}

func currentUserID(c *gin.Context) uint {
	user, _ := c.Get("user")
	u := user.(models.User)
	return u.ID
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "invalid id"))
		return 0, false
	}
	return uint(id), true
}
