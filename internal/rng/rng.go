// Package rng 提供以字符串为种子的确定性伪随机数生成器（Mulberry32）
//
// 同一个种子在任何平台上都会产生完全相同的序列，所有谜题生成器都依赖这一点来保证
// 同一天、同一难度得到同一道题目
package rng

import (
	"math"
	"unicode/utf16"
)

type RNG struct {
	state uint32
}

func New(seed string) *RNG {
	return &RNG{state: hashCode(seed)}
}

// hashCode 是按 UTF-16 码元计算的 31 倍字符串哈希，结果截断为 int32 后取绝对值
// math.MinInt32 取绝对值后仍是它本身，按 uint32 解释时与 2^31 等价
func hashCode(s string) uint32 {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(c)
	}
	if h < 0 {
		h = -h
	}
	return uint32(h)
}

// Next 返回 [0, 1) 区间内的浮点数
func (r *RNG) Next() float64 {
	r.state += 0x6D2B79F5
	s := r.state
	t := (s ^ s>>15) * (1 | s)
	t = (t + (t^t>>7)*(61|t)) ^ t
	return float64(t^t>>14) / 4294967296
}

// IntN 返回 [min, max] 闭区间内的整数
func (r *RNG) IntN(min, max int) int {
	return int(math.Floor(r.Next()*float64(max-min+1))) + min
}

func (r *RNG) Float(min, max float64) float64 {
	return r.Next()*(max-min) + min
}

// Shuffle 使用 Fisher-Yates 洗牌算法原地打乱，从末尾开始，每一步消耗一次 IntN(0, i)
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.IntN(0, i)
		swap(i, j)
	}
}

func Pick[T any](r *RNG, items []T) T {
	return items[r.IntN(0, len(items)-1)]
}
