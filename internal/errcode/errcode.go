package errcode

// 错误码约定：
// - 0：无错误
// - 4xxx：可恢复错误（例如对象缺失，流程可继续）
// - 5xxx：系统错误（存储或编码失败）
const (
	OK              = 0
	ResourceMissing = 4004
	SystemError     = 5000
)
