package contextkeys

type contextKey string

const (
	// DBContextKey holds the *gorm.DB (pool or transaction) for a request.
	DBContextKey = contextKey("db")

	// Gin keys set by the auth guard.
	UserIDKey = "userID"
	RoleKey   = "role"
	UserKey   = "user"
)
