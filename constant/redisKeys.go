package constant

// Redis Key 相关常量 (导出)
const (
	// ArticleViewBloomPrefix 是文章浏览记录 Bloom Filter 的 Key 前缀。
	// 每篇文章会有一个对应的 Bloom Filter Key，用于判断某个访问者
	// 在防刷窗口内是否已经浏览过该文章。
	// 示例 Key: "article_view_bloom:123" (其中 123 是 articleID)
	// Redis 类型: String (由 RedisBloom 模块管理)
	ArticleViewBloomPrefix = "article_view_bloom:"

	// ArticleViewCountPrefix 是文章浏览量计数器的 Key 前缀。
	// 每篇文章会有一个对应的 String 类型的 Key，用于原子性计数。
	// 示例 Key: "article_view_count:123"
	// Redis 类型: String，示例值: "58"
	ArticleViewCountPrefix = "article_view_count:"
)
