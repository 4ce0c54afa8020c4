package services

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Seeder runs the configured seed command and hands back whatever it printed.
type Seeder struct {
	command []string
	timeout time.Duration
}

// NewSeeder splits command on whitespace. A zero timeout means no limit beyond
// the caller's context.
func NewSeeder(command string, timeout time.Duration) *Seeder {
	return &Seeder{command: strings.Fields(command), timeout: timeout}
}

// Run executes the command and returns its stdout verbatim.
func (s *Seeder) Run(ctx context.Context) (string, error) {
	if len(s.command) == 0 {
		return "", errors.New("seed command is not configured")
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, s.command[0], s.command[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		log.WithFields(log.Fields{
			"command": strings.Join(s.command, " "),
			"stderr":  stderr.String(),
		}).WithError(err).Error("seed command failed")
		return "", errors.Wrap(err, "run seed command")
	}

	log.WithFields(log.Fields{
		"command":  strings.Join(s.command, " "),
		"duration": time.Since(start).String(),
	}).Info("seed command finished")
	return stdout.String(), nil
}
