package constants

type ContextKey string

const (
	LoggerKey      ContextKey = "logger"
	RequestStart   ContextKey = "requestStart"
	RequestID      ContextKey = "requestID"
	ParamsKey      ContextKey = "params"
	LocalizerKey   ContextKey = "localizer"
	LocaleKey      ContextKey = "locale"
	PageContextKey ContextKey = "pageContext"
)
