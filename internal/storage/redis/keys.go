package redis

import (
	"fmt"

	"github.com/solhaven/astrocade/internal/model"
)

// Key prefix for all player data
const keyPrefix = "astrocade"

// playerKey returns the Redis key for a PlayerRecord
func playerKey(id model.Identity) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}
