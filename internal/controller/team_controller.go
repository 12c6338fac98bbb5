package controller

import (
	"strconv"

	"treasure_hunt_backend/internal/service"
	"treasure_hunt_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// TeamController serves the admin roster, the review queue and the
// leaderboard the clients poll.
type TeamController struct {
	Scoreboard *service.ScoreboardService
	Answers    *service.AnswerService
}

func NewTeamController(scoreboard *service.ScoreboardService, answers *service.AnswerService) *TeamController {
	return &TeamController{
		Scoreboard: scoreboard,
		Answers:    answers,
	}
}

// GetTeams godoc
// @Summary List registered teams with submission counts
// @Tags teams
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]interface{}
// @Router /teams [get]
func (c *TeamController) GetTeams(ctx *gin.Context) {
	teams, err := c.Scoreboard.Teams()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"teams": teams})
}

// GetResults godoc
// @Summary Ranked leaderboard over accepted answers
// @Description Safe to poll; responses may lag review decisions by the
// @Description configured cache TTL but never show a partial review.
// @Tags teams
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]interface{}
// @Router /teams/results [get]
func (c *TeamController) GetResults(ctx *gin.Context) {
	results, err := c.Scoreboard.Results(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"results": results})
}

// GetTeamAnswers godoc
// @Summary A team's submissions for review
// @Tags teams
// @Produce json
// @Security ApiKeyAuth
// @Param username path string true "team username"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /teams/{username}/answers [get]
func (c *TeamController) GetTeamAnswers(ctx *gin.Context) {
	answers, err := c.Answers.ListByUsername(ctx.Param("username"))
	if err != nil {
		util.DomainError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"answers": answers})
}

type ReviewRequest struct {
	IsAccepted *bool `json:"is_accepted" binding:"required"`
}

// ReviewAnswer godoc
// @Summary Accept or reject a pending answer
// @Description Exactly-once: of two concurrent reviews one succeeds and the
// @Description other gets 409, and accepted points are credited once.
// @Tags teams
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param username path string true "team username"
// @Param answerId path int true "answer id"
// @Param body body ReviewRequest true "verdict"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{} "already reviewed"
// @Router /teams/{username}/answers/{answerId}/review [post]
func (c *TeamController) ReviewAnswer(ctx *gin.Context) {
	answerID, err := strconv.ParseUint(ctx.Param("answerId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid answer id")
		return
	}

	var req ReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answer, err := c.Answers.Review(uint(answerID), *req.IsAccepted)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"answer": answer})
}
