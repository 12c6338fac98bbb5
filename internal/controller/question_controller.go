package controller

import (
	"strconv"

	"treasure_hunt_backend/internal/service"
	"treasure_hunt_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// QuestionController is the admin question bank CRUD surface. Create and
// update take multipart forms because questions can carry an image.
type QuestionController struct {
	Questions *service.QuestionService
}

func NewQuestionController(questions *service.QuestionService) *QuestionController {
	return &QuestionController{Questions: questions}
}

func (c *QuestionController) bindInput(ctx *gin.Context) (service.QuestionInput, bool) {
	points, err := strconv.Atoi(ctx.PostForm("points"))
	if err != nil {
		util.BadRequest(ctx, "points must be a number")
		return service.QuestionInput{}, false
	}

	image, err := ctx.FormFile("image")
	if err != nil {
		image = nil
	}

	return service.QuestionInput{
		Text:          ctx.PostForm("question"),
		Points:        points,
		RequiresImage: ctx.PostForm("requires_image") == "true",
		IsBonus:       ctx.PostForm("is_bonus") == "true",
		Image:         image,
	}, true
}

// List godoc
// @Summary List all questions
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]interface{}
// @Router /questions [get]
func (c *QuestionController) List(ctx *gin.Context) {
	questions, err := c.Questions.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"questions": questions})
}

// Create godoc
// @Summary Create a question
// @Tags questions
// @Accept mpfd
// @Produce json
// @Security ApiKeyAuth
// @Param question formData string true "prompt text"
// @Param points formData int true "point value, positive"
// @Param requires_image formData bool false "submissions must attach an image"
// @Param is_bonus formData bool false "bonus-track question"
// @Param image formData file false "prompt image"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /questions [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	input, ok := c.bindInput(ctx)
	if !ok {
		return
	}

	question, err := c.Questions.Create(ctx.Request.Context(), input)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"question": question})
}

// Update godoc
// @Summary Edit a question
// @Description Point snapshots on already submitted answers are unaffected.
// @Tags questions
// @Accept mpfd
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /questions/{id} [put]
func (c *QuestionController) Update(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	input, ok := c.bindInput(ctx)
	if !ok {
		return
	}

	question, err := c.Questions.Update(ctx.Request.Context(), uint(id), input)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"question": question})
}

// Delete godoc
// @Summary Delete a question with no submitted answers
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{} "question has answers"
// @Router /questions/{id} [delete]
func (c *QuestionController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	if err := c.Questions.Delete(uint(id)); err != nil {
		util.DomainError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
