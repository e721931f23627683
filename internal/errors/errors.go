package errors

import (
	"strconv"

	kerrors "github.com/go-kratos/kratos/v2/errors"
)

// 错误 reason 标识 (跨语言/跨服务稳定, 供调用方匹配)
const (
	ReasonPlanNotFound             = "PLAN_NOT_FOUND"
	ReasonUnknownFeature           = "UNKNOWN_FEATURE"
	ReasonQuotaExceeded            = "QUOTA_EXCEEDED"
	ReasonQuotaReservationConflict = "QUOTA_RESERVATION_CONFLICT"
	ReasonInvalidAmount            = "INVALID_AMOUNT"
	ReasonConcurrentUpdateConflict = "CONCURRENT_UPDATE_CONFLICT"
	ReasonAchievementNotFound      = "ACHIEVEMENT_NOT_FOUND"
	ReasonUserNotFound             = "USER_NOT_FOUND"
)

// ErrPlanNotFound 套餐不存在
func ErrPlanNotFound(planID string) *kerrors.Error {
	return kerrors.New(ErrCodePlanNotFound, ReasonPlanNotFound, "plan not found: "+planID)
}

// ErrUnknownFeature 功能开关名称不合法 (拒绝而非静默返回 false)
func ErrUnknownFeature(name string) *kerrors.Error {
	return kerrors.New(ErrCodeUnknownFeature, ReasonUnknownFeature, "unknown feature flag: "+name)
}

// ErrQuotaExceeded 当日配额已用尽
func ErrQuotaExceeded(limit, used int) *kerrors.Error {
	e := kerrors.New(ErrCodeQuotaExceeded, ReasonQuotaExceeded, "daily action quota exceeded")
	return e.WithMetadata(map[string]string{
		"limit": strconv.Itoa(limit),
		"used":  strconv.Itoa(used),
	})
}

// ErrQuotaReservationConflict 配额预占竞争失败
func ErrQuotaReservationConflict() *kerrors.Error {
	return kerrors.New(ErrCodeQuotaReservationConflict, ReasonQuotaReservationConflict, "quota reservation lost a race, retry")
}

// ErrInvalidAmount 经验值增量非正数
func ErrInvalidAmount(amount int64) *kerrors.Error {
	e := kerrors.New(ErrCodeInvalidAmount, ReasonInvalidAmount, "experience award amount must be positive")
	return e.WithMetadata(map[string]string{"amount": strconv.FormatInt(amount, 10)})
}

// ErrConcurrentUpdateConflict 并发更新竞争失败
func ErrConcurrentUpdateConflict() *kerrors.Error {
	return kerrors.New(ErrCodeConcurrentUpdateConflict, ReasonConcurrentUpdateConflict, "concurrent update lost a race, retry")
}

// ErrUserNotFound 用户不存在
func ErrUserNotFound(userID string) *kerrors.Error {
	return kerrors.New(ErrCodeUserNotFound, ReasonUserNotFound, "user not found: "+userID)
}

// IsInvalidAmount 判断是否为非法经验值增量错误
func IsInvalidAmount(err error) bool {
	return kerrors.Reason(err) == ReasonInvalidAmount
}

// IsUnknownFeature 判断是否为非法功能开关错误
func IsUnknownFeature(err error) bool {
	return kerrors.Reason(err) == ReasonUnknownFeature
}

// IsQuotaExceeded 判断是否为配额用尽错误
func IsQuotaExceeded(err error) bool {
	return kerrors.Reason(err) == ReasonQuotaExceeded
}

// IsQuotaReservationConflict 判断是否为配额预占冲突错误
func IsQuotaReservationConflict(err error) bool {
	return kerrors.Reason(err) == ReasonQuotaReservationConflict
}

// IsConcurrentUpdateConflict 判断是否为并发更新冲突错误
func IsConcurrentUpdateConflict(err error) bool {
	return kerrors.Reason(err) == ReasonConcurrentUpdateConflict
}

// IsUserNotFound 判断是否为用户不存在错误
func IsUserNotFound(err error) bool {
	return kerrors.Reason(err) == ReasonUserNotFound
}
