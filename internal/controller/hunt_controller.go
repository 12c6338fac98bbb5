package controller

import (
	"strconv"

	"treasure_hunt_backend/internal/service"
	"treasure_hunt_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// HuntController is the participant-facing flow: fetch the current question
// and submit an answer for it.
type HuntController struct {
	Sequencer *service.SequencerService
	Answers   *service.AnswerService
}

func NewHuntController(sequencer *service.SequencerService, answers *service.AnswerService) *HuntController {
	return &HuntController{
		Sequencer: sequencer,
		Answers:   answers,
	}
}

// CurrentQuestion godoc
// @Summary Get the caller's next unanswered question
// @Description Repeated calls without a submission return the same question.
// @Description With ?bonus=true the bonus pool is served instead, provided a
// @Description milestone slot is open.
// @Tags hunt
// @Produce json
// @Security ApiKeyAuth
// @Param bonus query bool false "serve from the bonus pool"
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{} "bonus not unlocked"
// @Router /current-question [get]
func (c *HuntController) CurrentQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	wantBonus := ctx.Query("bonus") == "true"

	next, err := c.Sequencer.Next(claims.UserID, wantBonus)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}

	if next.Completed {
		util.Success(ctx, gin.H{
			"completed":      true,
			"isBonus":        wantBonus,
			"questionNumber": next.Number,
			"totalQuestions": next.Total,
			"bonusAvailable": next.BonusAvailable,
		})
		return
	}

	util.Success(ctx, gin.H{
		"question":       next.Question,
		"questionNumber": next.Number,
		"totalQuestions": next.Total,
		"bonusAvailable": next.BonusAvailable,
	})
}

// SubmitAnswer godoc
// @Summary Submit an answer for a question
// @Description Multipart form: text_answer and/or image. Exactly one answer
// @Description per question per team; a duplicate submit returns 409.
// @Tags hunt
// @Accept mpfd
// @Produce json
// @Security ApiKeyAuth
// @Param questionId path int true "question id"
// @Param text_answer formData string false "text answer"
// @Param image formData file false "image answer"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{} "empty answer or missing required image"
// @Failure 409 {object} map[string]interface{} "already answered"
// @Router /submit/{questionId} [post]
func (c *HuntController) SubmitAnswer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	questionID, err := strconv.ParseUint(ctx.Param("questionId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	text := ctx.PostForm("text_answer")

	image, err := ctx.FormFile("image")
	if err != nil {
		image = nil
	}

	answer, err := c.Answers.Submit(ctx.Request.Context(), claims.UserID, uint(questionID), text, image)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"answerId": answer.ID})
}
