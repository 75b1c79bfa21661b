//go:build unix

package maxwell

import (
	"io/fs"
	"syscall"
)

func execProcess(path string, argv, env []string) error {
	return syscall.Exec(path, argv, env)
}

func isExecutable(info fs.FileInfo) bool {
	return info.Mode().Perm()&0o111 != 0
}
