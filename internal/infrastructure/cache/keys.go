package cache

import (
	"encoding/json"
	"fmt"
)

// Key conventions shared by every cached read path:
//   <entity>:<id>          direct lookups
//   <entity>:all:<params>  list queries, params JSON-serialized so every
//                          distinct filter/page combination gets its own entry
//   auth:token:<raw>       verified claim sets keyed by the literal token

func EntityKey(entity, id string) string {
	return fmt.Sprintf("%s:%s", entity, id)
}

func ListKey(entity string, params interface{}) string {
	serialized, err := json.Marshal(params)
	if err != nil {
		// params are plain filter structs; marshaling them cannot fail
		// at runtime, but a stable fallback beats a panic.
		return fmt.Sprintf("%s:all:%v", entity, params)
	}
	return fmt.Sprintf("%s:all:%s", entity, serialized)
}

func TokenKey(token string) string {
	return fmt.Sprintf("auth:token:%s", token)
}
