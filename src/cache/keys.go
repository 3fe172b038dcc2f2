package cache

import (
	"fmt"
	"strings"
)

// 集合统计与地板价使用独立的缓存命名空间:
// 二者的 key 构成和 payload 形状不同, 即使源于同一集合也不能共享条目

// GenCollectionStatsKey 生成集合统计缓存 Key
// Key 格式: cache:project:chain:stats:identifier
func GenCollectionStatsKey(project, chain, identifier string) string {
	return fmt.Sprintf("cache:%s:%s:stats:%s", strings.ToLower(project), strings.ToLower(chain), strings.ToLower(identifier))
}

// GenFloorPriceKey 生成地板价缓存 Key
// Key 格式: cache:project:chain:floor:identifier:marketplace
func GenFloorPriceKey(project, chain, identifier, marketplace string) string {
	return fmt.Sprintf("cache:%s:%s:floor:%s:%s", strings.ToLower(project), strings.ToLower(chain), strings.ToLower(identifier), strings.ToLower(marketplace))
}
