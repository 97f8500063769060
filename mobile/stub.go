//go:build !mobile

// 普通构建下 mobile 包只有这个占位函数，
// 射击场的移动端入口在 mobile.go 中，需要 -tags mobile
package mobile

// Dummy 占位导出函数
func Dummy() {}
