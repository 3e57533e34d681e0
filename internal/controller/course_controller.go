package controller

import (
	"learnai_backend/internal/model"
	"learnai_backend/internal/service"
	"learnai_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService   *service.CourseService
	TrackingService *service.TrackingService
}

func NewCourseController(courseService *service.CourseService, trackingService *service.TrackingService) *CourseController {
	return &CourseController{CourseService: courseService, TrackingService: trackingService}
}

// ListCourses godoc
// @Summary 课程列表
// @Description 返回课程目录，可按分类过滤或按关键字搜索
// @Tags 课程
// @Produce json
// @Param category query string false "分类（不区分大小写）"
// @Param q query string false "搜索关键字，匹配标题、描述和主题"
// @Success 200 {object} util.Response{data=[]model.Course} "成功"
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	var (
		courses []model.Course
		err     error
	)
	if category := ctx.Query("category"); category != "" {
		courses, err = c.CourseService.ByCategory(ctx.Request.Context(), category)
	} else {
		courses, err = c.CourseService.Search(ctx.Request.Context(), ctx.Query("q"))
	}
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// GetCourse godoc
// @Summary 课程详情
// @Tags 课程
// @Produce json
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response{data=model.Course} "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	course, err := c.CourseService.ByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// Enroll godoc
// @Summary 报名课程
// @Description 记录 course_enrolled 活动，重复报名返回 409
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Success 201 {object} util.Response{data=model.Activity} "报名成功"
// @Failure 401 {object} util.Response "未授权"
// @Failure 404 {object} util.Response "课程不存在"
// @Failure 409 {object} util.Response "已报名"
// @Router /api/courses/{id}/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	activity, ok, err := c.TrackingService.Enroll(ctx.Request.Context(), util.GetSessionFromContext(ctx), ctx.Param("id"))
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
