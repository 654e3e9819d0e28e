//go:build highs_cgo

package main

import "github.com/bartolsthoorn/highslp/highs"

func defaultEngine() highs.Engine {
	return highs.NativeEngine{}
}
