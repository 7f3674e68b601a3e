package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// TeamSessionKey returns the cache key holding a team's active session JTI
func (r *CacheKeyStruct) TeamSessionKey(teamID string) string {
	return fmt.Sprintf("login:%s", teamID)
}

// WrittenRoundMarkKey returns the cache key marking a team's written-round submission
func (r *CacheKeyStruct) WrittenRoundMarkKey(teamID string, round int) string {
	return fmt.Sprintf("team:%s:round:%d:submitted", teamID, round)
}

var CacheKey = NewCacheKeyStruct()
