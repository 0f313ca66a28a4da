package issue

import (
	"time"
)

// DefaultFinePerDay 默认每日罚款（整数货币单位）
const DefaultFinePerDay int64 = 10

const day = 24 * time.Hour

// FinePolicy 逾期罚款策略
// 按逾期天数线性计费，不足一天按一天计算，不设上限
type FinePolicy struct {
	RatePerDay int64
}

// NewFinePolicy 创建罚款策略，rate<=0时使用默认费率
func NewFinePolicy(rate int64) FinePolicy {
	if rate <= 0 {
		rate = DefaultFinePerDay
	}
	return FinePolicy{RatePerDay: rate}
}

// ComputeFine 计算罚款
// returned <= due 时为0；否则为 ceil((returned-due)/24h) * RatePerDay
// 两个时间先截断到毫秒，与存储精度一致
func (p FinePolicy) ComputeFine(due, returned time.Time) int64 {
	elapsed := returned.Truncate(time.Millisecond).Sub(due.Truncate(time.Millisecond))
	if elapsed <= 0 {
		return 0
	}
	days := int64(elapsed / day)
	if elapsed%day != 0 {
		days++
	}
	return days * p.RatePerDay
}
