package ziptable

// 内置数据：科罗拉多州若干邮编；未配置外部数据源时使用
var builtin = map[string]string{
	"81611": "Aspen, Colorado",
	"81411": "Bedrock, Colorado",
	"80908": "Black Forest, Colorado",
	"80301": "Boulder, Colorado",
	"81127": "Chimney Rock, Colorado",
	"80901": "Colorado Springs, Colorado",
	"81223": "Cotopaxi, Colorado",
	"80201": "Denver, Colorado",
	"81657": "Vail, Colorado",
	"80435": "Keystone, Colorado",
	"80536": "Virginia Dale, Colorado",
}

// Default：返回内置表的独立副本
func Default() *Table { return New(builtin) }
