package controller

import (
	"learnai_backend/internal/model"
	"learnai_backend/internal/service"
	"learnai_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	ProfileService *service.ProfileService
}

func NewProfileController(profileService *service.ProfileService) *ProfileController {
	return &ProfileController{ProfileService: profileService}
}

// UpdateProfile godoc
// @Summary 更新学习画像
// @Description 只更新请求中出现的字段
// @Tags 学习画像
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ProfilePatch true "画像字段"
// @Success 200 {object} util.Response{data=model.UserProfile} "成功"
// @Failure 400 {object} util.Response "参数错误"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/user/profile [put]
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	var patch service.ProfilePatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	user, ok, err := c.ProfileService.UpdateProfile(ctx.Request.Context(), util.GetSessionFromContext(ctx), patch)
	c.respondUser(ctx, user, ok, err)
}

// AdaptProfile godoc
// @Summary 根据学习数据调整画像
// @Description contentTypeUsage 中次数最多的类型成为偏好；测验均分和完成课程数决定技能等级（只升不降）
// @Tags 学习画像
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body model.ActivityData true "学习数据"
// @Success 200 {object} util.Response{data=model.UserProfile} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/profile/adapt [post]
func (c *ProfileController) AdaptProfile(ctx *gin.Context) {
	var data model.ActivityData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	user, ok, err := c.ProfileService.Adapt(ctx.Request.Context(), util.GetSessionFromContext(ctx), data)
	c.respondUser(ctx, user, ok, err)
}

// RefreshProfile godoc
// @Summary 根据活动记录刷新画像
// @Tags 学习画像
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.UserProfile} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/profile/refresh [post]
func (c *ProfileController) RefreshProfile(ctx *gin.Context) {
	user, ok, err := c.ProfileService.Refresh(ctx.Request.Context(), util.GetSessionFromContext(ctx))
	c.respondUser(ctx, user, ok, err)
}

// Insights godoc
// @Summary 学习行为分析
// @Description 最近30天的内容偏好、学习节奏与测验表现
// @Tags 学习画像
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.BehaviorInsights} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/profile/insights [get]
func (c *ProfileController) Insights(ctx *gin.Context) {
	insights, ok, err := c.ProfileService.Insights(ctx.Request.Context(), util.GetSessionFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	if !ok {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, insights)
}

func (c *ProfileController) respondUser(ctx *gin.Context, user model.User, ok bool, err error) {
	if err != nil {
		respondError(ctx, err)
		return
	}
	if !ok {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, user.Profile())
}
