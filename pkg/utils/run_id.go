package utils

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// GenerateRunID creates a short, human-readable id for one engine run.
// Format: {operation}-g{game}-{8charHexUUID}
//
// Example:
//   - Input: operation="turn", game=3
//   - Output: "turn-g3-a3f8e2b1"
func GenerateRunID(operation string, game int) string {
	return operation + "-g" + strconv.Itoa(game) + "-" + generateShortUUID()
}

// RunOperation returns the operation prefix of a run id, or "" when the id
// does not follow the GenerateRunID format
func RunOperation(runID string) string {
	parts := strings.Split(runID, "-")
	if len(parts) != 3 || !strings.HasPrefix(parts[1], "g") {
		return ""
	}
	return parts[0]
}

// generateShortUUID creates an 8-character hex string from a UUID.
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
