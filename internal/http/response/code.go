package response

const (
	CodeOK           = 0
	CodeBadRequest   = 400
	CodeUnauthorized = 401
	CodeNotFound     = 404
	CodeInternal     = 500
	// CodeSyncFailed 远端同步失败（本地意图保留，可重试）
	CodeSyncFailed = 502
)
