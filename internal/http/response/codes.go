package response

const (
	CodeOK    = 0
	CodeError = -1
)

const (
	MsgSuccess = "请求成功"
	MsgError   = "服务器异常，请稍后再试"
)
