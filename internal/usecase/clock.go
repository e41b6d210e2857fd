package usecase

import "time"

// 現在の時間
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// SystemClock は実時間を返す
func SystemClock() Clock { return systemClock{} }
