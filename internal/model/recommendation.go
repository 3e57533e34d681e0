package model

// swagger:model FactorScore
type FactorScore struct {
	Name   FactorName `json:"name"`
	Score  float64    `json:"score"`  // 0-1
	Weight float64    `json:"weight"` // 权重之和为 100
}

// RecommendationResult 每次请求重新计算，不做持久化
// swagger:model RecommendationResult
type RecommendationResult struct {
	Course  Course        `json:"course"`
	Score   float64       `json:"score"`
	Factors []FactorScore `json:"factors"`
	Reasons []string      `json:"reasons"`
}
