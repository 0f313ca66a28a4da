package member

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateMemberNumber 生成会员号
// 格式：MEM + 毫秒时间戳 + 3位随机数，示例：MEM1699248000123042
func GenerateMemberNumber() string {
	return fmt.Sprintf("MEM%d%03d", time.Now().UnixMilli(), rand.Intn(1000))
}
