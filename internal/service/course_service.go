package service

import (
	"context"
	"fmt"
	"os"
	"strings"

	"learnai_backend/internal/config"
	"learnai_backend/internal/model"
	"learnai_backend/internal/repository"
	"learnai_backend/pkg/logger"
	"learnai_backend/pkg/storage"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type CourseService struct {
	Store      *storage.Store
	CourseRepo *repository.CourseRepository
	Cfg        *config.Config
}

func NewCourseService(store *storage.Store, courseRepo *repository.CourseRepository, cfg *config.Config) *CourseService {
	return &CourseService{Store: store, CourseRepo: courseRepo, Cfg: cfg}
}

type seedFile struct {
	Courses []model.Course `yaml:"courses"`
}

// LoadSeedCourses 读取 YAML 种子文件，path 为空时返回内置课程
func LoadSeedCourses(path string) ([]model.Course, error) {
	courses := defaultCourses()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
		var f seedFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse seed file: %w", err)
		}
		courses = f.Courses
	}
	return prepareSeed(courses)
}

func prepareSeed(courses []model.Course) ([]model.Course, error) {
	out := make([]model.Course, 0, len(courses))
	seen := make(map[string]bool, len(courses))
	for _, c := range courses {
		if strings.TrimSpace(c.Title) == "" {
			return nil, fmt.Errorf("seed course %q has no title", c.ID)
		}
		if c.ID == "" {
			c.ID = "course_" + slug.Make(c.Title)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("duplicate seed course id %q", c.ID)
		}
		seen[c.ID] = true
		if level, ok := model.ParseLevel(string(c.Level)); ok {
			c.Level = level
		}
		out = append(out, c.Normalize())
	}
	return out, nil
}

// Seed 仅在存储中没有课程时写入种子数据
func (s *CourseService) Seed(ctx context.Context) error {
	return s.Store.Atomically(func() error {
		existing, err := s.CourseRepo.All(ctx)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return nil
		}

		courses, err := LoadSeedCourses(s.Cfg.Catalog.SeedFile)
		if err != nil {
			return err
		}
		if err := s.CourseRepo.SaveAll(ctx, courses); err != nil {
			return err
		}
		logger.Log.Info("Course catalog seeded", zap.Int("count", len(courses)))
		return nil
	})
}

func (s *CourseService) All(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	err := s.Store.Atomically(func() error {
		var err error
		courses, err = s.CourseRepo.All(ctx)
		return err
	})
	if courses == nil {
		courses = []model.Course{}
	}
	return courses, err
}

func (s *CourseService) ByID(ctx context.Context, id string) (model.Course, error) {
	var course model.Course
	err := s.Store.Atomically(func() error {
		var err error
		course, err = s.CourseRepo.FindByID(ctx, id)
		return err
	})
	return course, err
}

// ByCategory 分类名不区分大小写
func (s *CourseService) ByCategory(ctx context.Context, category string) ([]model.Course, error) {
	return s.filter(ctx, func(c model.Course) bool {
		return strings.EqualFold(c.Category, strings.TrimSpace(category))
	})
}

// Search 在标题、描述和主题中做不区分大小写的子串匹配，空查询返回全部
func (s *CourseService) Search(ctx context.Context, query string) ([]model.Course, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.All(ctx)
	}
	return s.filter(ctx, func(c model.Course) bool {
		if strings.Contains(strings.ToLower(c.Title), q) || strings.Contains(strings.ToLower(c.Description), q) {
			return true
		}
		for _, t := range c.Topics {
			if strings.Contains(strings.ToLower(t), q) {
				return true
			}
		}
		return false
	})
}

func (s *CourseService) filter(ctx context.Context, keep func(model.Course) bool) ([]model.Course, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Course, 0, len(all))
	for _, c := range all {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out, nil
}
