package service

import "learnai_backend/internal/model"

// defaultCourses 未配置种子文件时使用的内置课程
func defaultCourses() []model.Course {
	return []model.Course{
		{
			ID:          "course_ml",
			Title:       "Machine Learning Fundamentals",
			Description: "Learn the basics of ML, including supervised and unsupervised learning, neural networks, and practical applications.",
			Category:    "Data Science",
			Level:       "Intermediate",
			Duration:    "40 hours",
			Lessons:     15,
			Enrolled:    1250,
			Rating:      4.8,
			Progress:    65,
			Topics:      []string{"Supervised Learning", "Unsupervised Learning", "Neural Networks", "Model Evaluation"},
		},
		{
			ID:          "course_web",
			Title:       "Modern Web Development",
			Description: "Master HTML5, CSS3, JavaScript, and React to build responsive, interactive web applications.",
			Category:    "Web Development",
			Level:       "Beginner",
			Duration:    "35 hours",
			Lessons:     20,
			Enrolled:    2100,
			Rating:      4.9,
			Progress:    30,
			Topics:      []string{"HTML5 & CSS3", "JavaScript ES6+", "React Fundamentals", "State Management"},
		},
		{
			ID:          "course_data",
			Title:       "Data Science with Python",
			Description: "Comprehensive guide to data analysis, visualization, and machine learning using Python.",
			Category:    "Data Science",
			Level:       "Intermediate",
			Duration:    "50 hours",
			Lessons:     25,
			Enrolled:    980,
			Rating:      4.7,
			Topics:      []string{"Pandas", "NumPy", "Matplotlib", "Scikit-learn"},
		},
		{
			ID:          "course_cloud",
			Title:       "Cloud Computing Essentials",
			Description: "Understand cloud architecture, AWS services, and deployment strategies for modern applications.",
			Category:    "Cloud Computing",
			Level:       "Beginner",
			Duration:    "30 hours",
			Lessons:     18,
			Enrolled:    760,
			Rating:      4.6,
			Topics:      []string{"AWS Basics", "Cloud Architecture", "Serverless", "DevOps"},
		},
		{
			ID:          "course_ai",
			Title:       "AI for Business Applications",
			Description: "Learn how to implement AI solutions in real-world business scenarios and drive innovation.",
			Category:    "Artificial Intelligence",
			Level:       "Advanced",
			Duration:    "45 hours",
			Lessons:     22,
			Enrolled:    540,
			Rating:      4.8,
			Topics:      []string{"AI Strategy", "NLP", "Computer Vision", "Ethics"},
		},
		{
			ID:          "course_mobile",
			Title:       "React Native Development",
			Description: "Build cross-platform mobile applications using React Native and best practices.",
			Category:    "Mobile Development",
			Level:       "Intermediate",
			Duration:    "38 hours",
			Lessons:     19,
			Enrolled:    890,
			Rating:      4.7,
			Topics:      []string{"React Native Basics", "Navigation", "API Integration", "Publishing"},
		},
	}
}
