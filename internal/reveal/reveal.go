// Package reveal opens a directory in the host's file browser.
package reveal

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Opener implements pipeline.Notifier. It only acts on successful runs.
type Opener struct {
	// GOOS selects the launcher; empty means runtime.GOOS.
	GOOS string
	// run executes the command; nil means exec.Command(...).Start.
	run func(name string, args ...string) error
}

// Command returns the program and arguments that open dir on goos.
func Command(goos, dir string) (string, []string) {
	switch goos {
	case "windows":
		return "explorer", []string{dir}
	case "darwin":
		return "open", []string{dir}
	default:
		return "xdg-open", []string{dir}
	}
}

// Notify opens outputDir when success is true.
func (o *Opener) Notify(outputDir string, success bool) error {
	if !success {
		return nil
	}
	goos := o.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	name, args := Command(goos, outputDir)

	run := o.run
	if run == nil {
		run = start
	}
	if err := run(name, args...); err != nil {
		return fmt.Errorf("open %s with %s: %w", outputDir, name, err)
	}
	return nil
}

// start launches the browser without waiting for it; explorer.exe in
// particular exits non-zero even when it worked.
func start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}
