package model

// swagger:model Course
type Course struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Category    string   `json:"category" yaml:"category"`
	Level       Level    `json:"level" yaml:"level"`
	Duration    string   `json:"duration" yaml:"duration"`
	Lessons     int      `json:"lessons" yaml:"lessons"`
	Enrolled    int      `json:"enrolled" yaml:"enrolled"`
	Rating      float64  `json:"rating" yaml:"rating"`     // 0-5
	Progress    float64  `json:"progress" yaml:"progress"` // 0-100，演示字段
	Topics      []string `json:"topics" yaml:"topics"`
}

// Normalize 将评分和进度限制在合法范围内
func (c Course) Normalize() Course {
	c.Rating = clamp(c.Rating, 0, 5)
	c.Progress = clamp(c.Progress, 0, 100)
	if c.Enrolled < 0 {
		c.Enrolled = 0
	}
	if c.Topics == nil {
		c.Topics = []string{}
	}
	return c
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
