package tests

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/funvibe/symtab/internal/config"
)

// TestFunctional runs `symtab check` on each declaration file that has a
// .want file and compares the combined output.
// This tests the actual binary - what users see.
func TestFunctional(t *testing.T) {
	// Get project root (parent of tests/)
	projectRoot, err := filepath.Abs("..")
	if err != nil {
		t.Fatalf("Failed to get project root: %v", err)
	}

	binaryPath := filepath.Join(t.TempDir(), "symtab-test-binary")

	t.Log("Building fresh binary...")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/symtab")
	cmd.Dir = projectRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build binary: %v\n%s", err, output)
	}

	var testFiles []string
	err = filepath.Walk("testdata", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		for _, ext := range config.DeclFileExtensions {
			if strings.HasSuffix(path, ext) {
				wantFile := strings.TrimSuffix(path, ext) + ".want"
				if _, err := os.Stat(wantFile); err == nil {
					testFiles = append(testFiles, path)
				}
				break
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to walk directory: %v", err)
	}

	if len(testFiles) == 0 {
		t.Skip("No test files with .want found")
	}

	// No project file: every run uses the defaults.
	configPath := filepath.Join(t.TempDir(), config.ProjectFileName)

	for _, testFile := range testFiles {
		testFile := testFile
		testName := strings.TrimSuffix(filepath.Base(testFile), filepath.Ext(testFile))

		t.Run(testName, func(t *testing.T) {
			absPath, err := filepath.Abs(testFile)
			if err != nil {
				t.Fatalf("Failed to get absolute path: %v", err)
			}

			wantFile := strings.TrimSuffix(testFile, filepath.Ext(testFile)) + ".want"
			wantBytes, err := os.ReadFile(wantFile)
			if err != nil {
				t.Fatalf("Failed to read .want file: %v", err)
			}
			want := strings.TrimSpace(string(wantBytes))

			cmd := exec.Command(binaryPath, "check", absPath)
			cmd.Dir = projectRoot
			cmd.Env = append(os.Environ(), config.TestModeEnv+"=1", config.ConfigPathEnv+"="+configPath)
			var stdout, stderr bytes.Buffer
			cmd.Stdout = &stdout
			cmd.Stderr = &stderr

			_ = cmd.Run()

			stdoutStr := strings.TrimSpace(stdout.String())
			stderrStr := strings.TrimSpace(stderr.String())
			// Errors carry absolute paths
			stderrStr = strings.ReplaceAll(stderrStr, projectRoot+"/", "")

			var got string
			if stdoutStr != "" && stderrStr != "" {
				got = stdoutStr + "\n" + stderrStr
			} else if stdoutStr != "" {
				got = stdoutStr
			} else {
				got = stderrStr
			}

			got = strings.TrimSpace(strings.ReplaceAll(got, "\r\n", "\n"))
			want = strings.TrimSpace(strings.ReplaceAll(want, "\r\n", "\n"))

			if got != want {
				t.Errorf("Output mismatch:\n--- want ---\n%s\n--- got ---\n%s", want, got)
			}
		})
	}
}
