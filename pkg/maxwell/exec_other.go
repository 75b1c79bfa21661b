//go:build !unix

package maxwell

import (
	"io/fs"
)

func execProcess(_ string, _, _ []string) error {
	return ErrExecUnsupported
}

func isExecutable(info fs.FileInfo) bool {
	return info.Mode().IsRegular()
}
