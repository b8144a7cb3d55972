package utils

import (
	"os"
	"strings"

	"github.com/google/uuid"
)

func StringInSlice(a string, list []string) bool {
	for _, b := range list {
		if b == a {
			return true
		}
	}
	return false
}

// JoinRemotePath joins path segments onto a remote root such as
// "latch:///dir" without collapsing the scheme's slashes.
func JoinRemotePath(root string, segments ...string) string {
	joined := strings.TrimRight(root, "/")
	for _, s := range segments {
		s = strings.Trim(s, "/")
		if s == "" {
			continue
		}
		joined = joined + "/" + s
	}
	return joined
}

func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func IsValidUUID(u string) bool {
	_, err := uuid.Parse(u)
	return err == nil
}
