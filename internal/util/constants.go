package util

// gin.Context 中的键
const (
	ContextClaims  = "user"
	ContextSession = "session"
)

const DefaultRecentLimit = 10
