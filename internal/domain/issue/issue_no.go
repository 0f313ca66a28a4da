package issue

import (
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"
)

// issueSeq 进程内递增序号，起始值随机，避免多实例在同一毫秒生成相同后缀
var issueSeq = uint32(rand.Intn(1000))

// GenerateIssueNumber 生成借阅编号
// 格式：ISS- + 毫秒时间戳 + 3位序号
// 示例：ISS-1699248000123042
// 同一进程同一毫秒内的前1000次借出不会重复，跨实例冲突由唯一索引兜底
func GenerateIssueNumber(now time.Time) string {
	seq := atomic.AddUint32(&issueSeq, 1) % 1000
	return fmt.Sprintf("ISS-%d%03d", now.UnixMilli(), seq)
}
