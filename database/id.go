package database

import "github.com/google/uuid"

func newID() string {
	return uuid.NewString()
}

// IsValidID 检查 ID 是否为合法 UUID，非法 ID 直接视为不存在
func IsValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
