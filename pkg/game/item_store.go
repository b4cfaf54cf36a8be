package game

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/decker502/lootfeed/pkg/parser"
	"github.com/decker502/lootfeed/pkg/quality"
	"gopkg.in/yaml.v3"
)

// ItemRecord 物品数据库中的一条记录
type ItemRecord struct {
	ID      int    `yaml:"id"`      // 物品 ID
	Name    string `yaml:"name"`    // 显示名称
	Icon    string `yaml:"icon"`    // 图标标识
	Quality int    `yaml:"quality"` // 品质等级
}

// ItemDatabase 物品数据库文件结构
type ItemDatabase struct {
	Items []ItemRecord `yaml:"items"`
}

// linkIDPattern 从物品链接中提取裸数字 ID
var linkIDPattern = regexp.MustCompile(`\|Hitem:(\d+)`)

// ItemStore 物品数据查询协作方
//
// 实现 parser.ItemResolver。按链接查询只命中链接缓存（模拟
// 客户端尚未缓存该链接的情形）；解析器在链接未命中时回退到
// 按裸 ID 查询数据库。
type ItemStore struct {
	byID   map[int]parser.ItemInfo    // 数据库：ID → 物品数据
	byLink map[string]parser.ItemInfo // 链接缓存：完整链接 → 物品数据
}

// NewItemStore 创建空的物品数据存储
func NewItemStore() *ItemStore {
	return &ItemStore{
		byID:   make(map[int]parser.ItemInfo),
		byLink: make(map[string]parser.ItemInfo),
	}
}

// LoadDatabase 从 YAML 文件加载物品数据库
//
// 参数：
//   - path: 数据库文件路径
//
// 返回：
//   - error: 如果读取或解析失败返回错误
func (s *ItemStore) LoadDatabase(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read item database: %w", err)
	}

	var db ItemDatabase
	if err := yaml.Unmarshal(data, &db); err != nil {
		return fmt.Errorf("failed to parse item database: %w", err)
	}

	for _, rec := range db.Items {
		s.byID[rec.ID] = parser.ItemInfo{
			Name:    rec.Name,
			Icon:    rec.Icon,
			Quality: quality.Tier(rec.Quality),
		}
	}
	return nil
}

// AddItem 向数据库添加一条物品记录
func (s *ItemStore) AddItem(id int, info parser.ItemInfo) {
	s.byID[id] = info
}

// Count 返回数据库中的物品数量
func (s *ItemStore) Count() int {
	return len(s.byID)
}

// ResolveLink 按完整物品链接查询
//
// 只命中链接缓存；未缓存的链接返回 miss，由调用方回退到
// ResolveID 做第二次查询。
func (s *ItemStore) ResolveLink(link string) (parser.ItemInfo, bool) {
	info, ok := s.byLink[link]
	return info, ok
}

// ResolveID 按裸数字 ID 查询数据库
func (s *ItemStore) ResolveID(id int) (parser.ItemInfo, bool) {
	info, ok := s.byID[id]
	return info, ok
}

// WarmLink 预热链接缓存
//
// 从链接中提取裸 ID，查到数据后记入链接缓存；
// 之后对同一链接的 ResolveLink 直接命中。
//
// 返回：
//   - bool: 是否成功预热（链接格式错误或数据库无此物品时为 false）
func (s *ItemStore) WarmLink(link string) bool {
	m := linkIDPattern.FindStringSubmatch(link)
	if m == nil {
		return false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return false
	}
	info, ok := s.byID[id]
	if !ok {
		return false
	}
	s.byLink[link] = info
	return true
}
