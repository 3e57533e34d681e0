package controller

import (
	"strconv"

	"learnai_backend/internal/model"
	"learnai_backend/internal/service"
	"learnai_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ActivityController struct {
	TrackingService *service.TrackingService
}

func NewActivityController(trackingService *service.TrackingService) *ActivityController {
	return &ActivityController{TrackingService: trackingService}
}

// swagger:model RecordActivityRequest
type RecordActivityRequest struct {
	Type    model.ActivityType    `json:"type" binding:"required"`
	Details model.ActivityDetails `json:"details"`
}

// RecordActivity godoc
// @Summary 记录学习活动
// @Description 追加一条学习活动并同步更新学习进度
// @Tags 学习进度
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body RecordActivityRequest true "活动"
// @Success 201 {object} util.Response{data=model.Activity} "记录成功"
// @Failure 400 {object} util.Response "参数错误"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/activities [post]
func (c *ActivityController) RecordActivity(ctx *gin.Context) {
	var req RecordActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	activity, ok, err := c.TrackingService.Record(ctx.Request.Context(), util.GetSessionFromContext(ctx), req.Type, req.Details)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if !ok {
		util.Unauthorized(ctx)
		return
	}
	util.Created(ctx, activity)
}

// RecentActivities godoc
// @Summary 最近活动
// @Description 按时间倒序返回最近的学习活动
// @Tags 学习进度
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "条数，默认10"
// @Success 200 {object} util.Response{data=[]model.Activity} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/activities/recent [get]
func (c *ActivityController) RecentActivities(ctx *gin.Context) {
	limit := util.DefaultRecentLimit
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			util.BadRequest(ctx, "limit must be an integer")
			return
		}
		limit = n
	}

	activities, ok, err := c.TrackingService.RecentActivities(ctx.Request.Context(), util.GetSessionFromContext(ctx), limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if !ok {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, activities)
}

// GetProgress godoc
// @Summary 学习进度统计
// @Tags 学习进度
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.ProgressStats} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/progress [get]
func (c *ActivityController) GetProgress(ctx *gin.Context) {
	stats, ok, err := c.TrackingService.Stats(ctx.Request.Context(), util.GetSessionFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	if !ok {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, stats)
}

// WeeklyProgress godoc
// @Summary 最近7天学习情况
// @Description 按星期分组的课时、测验和学习时长，chart 为周一到周日的序列
// @Tags 学习进度
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.WeeklyProgress} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/progress/weekly [get]
func (c *ActivityController) WeeklyProgress(ctx *gin.Context) {
	weekly, ok, err := c.TrackingService.WeeklyProgress(ctx.Request.Context(), util.GetSessionFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	if !ok {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, weekly)
}
