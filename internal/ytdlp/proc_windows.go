//go:build windows

package ytdlp

import (
	"errors"
	"os/exec"
	"strconv"

	"github.com/sirupsen/logrus"
)

func setProcessGroup(cmd *exec.Cmd) {
	// Tree termination goes through taskkill; no group setup needed.
}

// killProcessTree terminates the process and all descendants via taskkill
func killProcessTree(pid int) {
	cmd := exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid))
	if err := cmd.Run(); err != nil {
		logrus.Debugf("taskkill for pid %d: %v", pid, err)
	}
}

// suspendProcessGroup is unsupported on Windows; the engine surfaces this to
// the user instead of pausing.
func suspendProcessGroup(pid int) error {
	return errors.New("pause is not supported on this platform")
}

func resumeProcessGroup(pid int) error {
	return errors.New("resume is not supported on this platform")
}
