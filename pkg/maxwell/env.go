package maxwell

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	JavaHomeEnv = "JAVA_HOME"
	PathEnv     = "PATH"
)

// SetJavaEnvironment points JAVA_HOME at javaHome and puts its bin directory first on PATH.
// bin/maxwell is a shell script that looks java up through both.
func SetJavaEnvironment(javaHome string) error {
	if err := os.Setenv(JavaHomeEnv, javaHome); err != nil {
		return fmt.Errorf("failed to set %s: %s", JavaHomeEnv, err)
	}

	path := prependPath(filepath.Join(javaHome, "bin"), os.Getenv(PathEnv))
	if err := os.Setenv(PathEnv, path); err != nil {
		return fmt.Errorf("failed to set %s: %s", PathEnv, err)
	}

	return nil
}

func prependPath(dir, path string) string {
	if path == "" {
		return dir
	}

	return dir + string(os.PathListSeparator) + path
}
