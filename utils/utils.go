package utils

import (
	"crypto/rand"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/datazip-inc/maxwell-launcher/logger"
	"github.com/oklog/ulid"
)

var (
	ulidMutex = sync.Mutex{}
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

func ExistInArray[T ~string | int | int8 | int16 | int32 | int64 | float32 | float64](set []T, value T) bool {
	_, found := ArrayContains(set, func(elem T) bool {
		return elem == value
	})

	return found
}

func ArrayContains[T any](set []T, match func(elem T) bool) (int, bool) {
	for idx, elem := range set {
		if match(elem) {
			return idx, true
		}
	}

	return -1, false
}

// SortedKeys returns the keys of m in ascending order
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return keys
}

// CheckIfFilesExists returns an error naming the first path that cannot be stat'ed
func CheckIfFilesExists(files ...string) error {
	for _, file := range files {
		_, err := os.Stat(file)
		if os.IsNotExist(err) {
			return fmt.Errorf("%s does not exist: %s", file, err)
		} else if err != nil {
			return fmt.Errorf("failed to stat %s: %s", file, err)
		}
	}

	return nil
}

func ULID() string {
	return genULID(time.Now())
}

func genULID(t time.Time) string {
	ulidMutex.Lock()
	defer ulidMutex.Unlock()
	newUlid, err := ulid.New(ulid.Timestamp(t), entropy)
	if err != nil {
		logger.Fatalf("failed to generate ulid: %s", err)
	}
	return newUlid.String()
}

// ConvertToString renders a decoded JSON value as a flag value.
// Numbers decoded with UseNumber keep their literal text; null becomes the empty string.
func ConvertToString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// SplitAndTrim splits a comma separated list, dropping blank entries
func SplitAndTrim(list string) []string {
	parts := []string{}
	for _, part := range strings.Split(list, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}

	return parts
}
