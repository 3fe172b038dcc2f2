package utils

import "math"

// Min 返回两个整数中的较小值
func Min(x, y int) int {
	if x > y {
		return y
	}
	return x
}

// Max 返回两个 int64 整数中的较大值
func Max(x, y int64) int64 {
	if x < y {
		return y
	}
	return x
}

// Mean 计算浮点数切片的算术平均值
// 空切片返回 0
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Stdev 计算浮点数切片的总体标准差
// 少于 2 个样本返回 0
func Stdev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := Mean(values)
	var sum float64
	for _, v := range values {
		sum += (v - mean) * (v - mean)
	}
	return math.Sqrt(sum / float64(len(values)))
}
