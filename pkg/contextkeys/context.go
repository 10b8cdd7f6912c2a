package contextkeys

// Custom key type avoids collisions with other packages writing to the context.
type contextKey string

const (
	// DBContextKey carries the *gorm.DB handle (pool or transaction)
	// injected per request by middleware.DBMiddleware.
	DBContextKey contextKey = "db"
)
