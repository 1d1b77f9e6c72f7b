// Package leveling 积分到等级、段位与称号的换算
package leveling

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"teamforge/pkg/constants"
)

// Result 换算结果
type Result struct {
	Level    int    `json:"level"`
	Position string `json:"position"`
}

// Compute level = floor(points/50); 0-4 beginner, 5-8 intermediate, 9+ mentor
func Compute(points int) Result {
	if points < 0 {
		points = 0
	}
	level := points / constants.PointsPerLevel
	return Result{Level: level, Position: PositionFor(level)}
}

// PositionFor 等级对应段位
func PositionFor(level int) string {
	switch {
	case level <= 4:
		return constants.PositionBeginner
	case level <= 8:
		return constants.PositionIntermediate
	default:
		return constants.PositionMentor
	}
}

// Badge 等级称号表项
type Badge struct {
	Level      int     `yaml:"level" json:"level"`
	XPRequired int     `yaml:"xp_required" json:"xp_required"`
	Badge      *string `yaml:"badge" json:"badge"`
}

//go:embed badges.yaml
var badgesYAML []byte

var (
	catalogOnce sync.Once
	catalog     []Badge
	catalogErr  error
)

// LoadCatalog 解析称号表, 按等级升序
func LoadCatalog(data []byte) ([]Badge, error) {
	var doc struct {
		Levels []Badge `yaml:"levels"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("解析称号表失败: %w", err)
	}
	sort.SliceStable(doc.Levels, func(i, j int) bool {
		return doc.Levels[i].Level < doc.Levels[j].Level
	})
	return doc.Levels, nil
}

// Catalog 内置称号表
func Catalog() ([]Badge, error) {
	catalogOnce.Do(func() {
		catalog, catalogErr = LoadCatalog(badgesYAML)
	})
	if catalogErr != nil {
		return nil, catalogErr
	}
	out := make([]Badge, len(catalog))
	copy(out, catalog)
	return out, nil
}

// BadgeFor 不超过 level 的最近一个称号, 没有时返回空串
func BadgeFor(level int) string {
	badges, err := Catalog()
	if err != nil {
		return ""
	}
	name := ""
	for _, b := range badges {
		if b.Level > level {
			break
		}
		if b.Badge != nil {
			name = *b.Badge
		}
	}
	return name
}
