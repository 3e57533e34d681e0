package controller

import (
	"learnai_backend/internal/service"
	"learnai_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RecommendationController struct {
	RecommendationService *service.RecommendationService
	FeedbackService       *service.FeedbackService
}

func NewRecommendationController(recommendationService *service.RecommendationService, feedbackService *service.FeedbackService) *RecommendationController {
	return &RecommendationController{
		RecommendationService: recommendationService,
		FeedbackService:       feedbackService,
	}
}

// GetRecommendations godoc
// @Summary 个性化课程推荐
// @Description 根据学习画像对课程打分排序；未登录时返回空列表且 hasSession 为 false
// @Tags 推荐
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=util.SessionResponse{items=[]model.RecommendationResult}} "成功"
// @Router /api/recommendations [get]
func (c *RecommendationController) GetRecommendations(ctx *gin.Context) {
	results, hasSession, err := c.RecommendationService.GetRecommendations(ctx.Request.Context(), util.GetSessionFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, util.SessionResponse{HasSession: hasSession, Items: results})
}

// GetFeedback godoc
// @Summary 学习反馈
// @Description 根据学习进度和最近活动生成建议；未登录时返回空列表且 hasSession 为 false
// @Tags 推荐
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=util.SessionResponse{items=[]model.FeedbackItem}} "成功"
// @Router /api/feedback [get]
func (c *RecommendationController) GetFeedback(ctx *gin.Context) {
	items, hasSession, err := c.FeedbackService.GetFeedback(ctx.Request.Context(), util.GetSessionFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, util.SessionResponse{HasSession: hasSession, Items: items})
}
