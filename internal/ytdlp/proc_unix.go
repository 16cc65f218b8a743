//go:build !windows

package ytdlp

import (
	"os/exec"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

// killGracePeriod is the delay between SIGTERM and SIGKILL when tearing down
// a process group.
const killGracePeriod = 500 * time.Millisecond

// setProcessGroup places the subprocess in its own process group so the
// whole tree (including tool-spawned helpers) can be signalled at once.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// killProcessTree terminates the process group: SIGTERM, a short grace
// period, then SIGKILL. Signal errors are ignored so the call is safe on an
// already-dead process.
func killProcessTree(pid int) {
	pgid, err := syscall.Getpgid(pid)
	if err != nil {
		// Process already gone or never grouped; best-effort direct kill.
		_ = syscall.Kill(pid, syscall.SIGKILL)
		return
	}

	_ = syscall.Kill(-pgid, syscall.SIGTERM)
	time.Sleep(killGracePeriod)
	_ = syscall.Kill(-pgid, syscall.SIGKILL)
	logrus.Debugf("Killed process group %d", pgid)
}

// suspendProcessGroup stops the process group without discarding state
func suspendProcessGroup(pid int) error {
	pgid, err := syscall.Getpgid(pid)
	if err != nil {
		return err
	}
	return syscall.Kill(-pgid, syscall.SIGSTOP)
}

// resumeProcessGroup continues a stopped process group
func resumeProcessGroup(pid int) error {
	pgid, err := syscall.Getpgid(pid)
	if err != nil {
		return err
	}
	return syscall.Kill(-pgid, syscall.SIGCONT)
}
