package contextkeys

type contextKey string

// SessionUserKey - ключ, под которым claims сессии лежат в контексте запроса.
const SessionUserKey contextKey = "sessionUser"
