package constant

const (
	// DefaultSessionTitle is the placeholder title a session carries until the
	// first user message renames it.
	DefaultSessionTitle = "New Chat"

	// SessionTitleMaxLen is the prefix of the first message used for auto-titling.
	SessionTitleMaxLen = 50

	DefaultLanguage = "Auto-detect"
	DefaultModel    = "Mistral"
)
