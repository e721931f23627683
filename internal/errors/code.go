package errors

// 权益服务错误码定义
// 错误码格式：SSMMEE (6位数字)，其中 SS=14 表示 entitlement-service
// 模块划分：
//   01: 套餐模块
//   02: 配额模块
//   03: 进度模块
//   04: 成就模块
//   05: 用户模块

// 套餐模块 (140100-140199)
const (
	// ErrCodePlanNotFound 套餐不存在错误
	ErrCodePlanNotFound = 140101
	// ErrCodeUnknownFeature 功能开关名称不在封闭枚举内
	ErrCodeUnknownFeature = 140102
)

// 配额模块 (140200-140299)
const (
	// ErrCodeQuotaExceeded 当日配额已用尽
	ErrCodeQuotaExceeded = 140201
	// ErrCodeQuotaReservationConflict 配额预占竞争失败, 调用方应重试
	ErrCodeQuotaReservationConflict = 140202
)

// 进度模块 (140300-140399)
const (
	// ErrCodeInvalidAmount 经验值增量非正数
	ErrCodeInvalidAmount = 140301
	// ErrCodeConcurrentUpdateConflict 乐观更新竞争失败, 调用方应重试
	ErrCodeConcurrentUpdateConflict = 140302
)

// 成就模块 (140400-140499)
const (
	// ErrCodeAchievementNotFound 成就不存在错误
	ErrCodeAchievementNotFound = 140401
)

// 用户模块 (140500-140599)
const (
	// ErrCodeUserNotFound 用户不存在错误
	ErrCodeUserNotFound = 140501
)
