package exec

import (
	"context"
	"errors"
	"fmt"
	"io"
	osexec "os/exec"
	"strings"
	"syscall"
	"time"

	giazero "github.com/torayeff/giazero"
)

const rollingBufSize = 2 * DefaultMaxBytes

// runCommand starts the given command, captures stdout and stderr through
// collectors, and renders the outcome per the tool contract. timeoutMS <= 0
// means no deadline: the call blocks until the process exits or ctx is
// cancelled. The whole process group is killed on cancellation so shell
// pipelines cannot outlive the tool call.
//
// A non-zero exit code is reported in the rendered text but is not an
// IsError result; only failures to run the process at all are.
func runCommand(ctx context.Context, timeoutMS int, sentinel, errVerb, name string, args ...string) (*giazero.ToolResult, error) {
	if timeoutMS > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(timeoutMS)*time.Millisecond)
		defer cancel()
	}

	cmd := osexec.CommandContext(ctx, name, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return domainError(fmt.Sprintf("%s: %s", errVerb, err)), nil
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return domainError(fmt.Sprintf("%s: %s", errVerb, err)), nil
	}

	if err := cmd.Start(); err != nil {
		return domainError(fmt.Sprintf("%s: %s", errVerb, err)), nil
	}

	stdoutC := NewOutputCollector(int64(DefaultMaxBytes), rollingBufSize)
	stderrC := NewOutputCollector(int64(DefaultMaxBytes), rollingBufSize)
	defer stdoutC.Close()
	defer stderrC.Close()

	stdoutDone := make(chan struct{})
	stderrDone := make(chan struct{})
	go func() { _, _ = io.Copy(stdoutC, stdoutPipe); close(stdoutDone) }()
	go func() { _, _ = io.Copy(stderrC, stderrPipe); close(stderrDone) }()

	<-stdoutDone
	<-stderrDone
	waitErr := cmd.Wait()

	exitCode := 0
	if waitErr != nil {
		var exitErr *osexec.ExitError
		isRealExit := errors.As(waitErr, &exitErr) && exitErr.ExitCode() >= 0
		if !isRealExit && ctx.Err() != nil {
			return timeoutResult(ctx.Err(), stdoutC, stderrC), nil
		}
		if errors.As(waitErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			return domainError(fmt.Sprintf("%s: %s", errVerb, waitErr)), nil
		}
	}

	stdoutStr, stdoutTR := processOutput(stdoutC)
	stderrStr, stderrTR := processOutput(stderrC)

	outcome := Outcome{Stdout: stdoutStr, Stderr: stderrStr, ExitCode: exitCode}

	var b strings.Builder
	b.WriteString(outcome.Render(sentinel))
	appendOffloadNotice(&b, "STDOUT", stdoutTR, stdoutC)
	appendOffloadNotice(&b, "STDERR", stderrTR, stderrC)

	return textResult(b.String()), nil
}

// processOutput sanitizes and truncates collector output, returning the
// processed string and truncation metadata.
func processOutput(c *OutputCollector) (string, TruncateResult) {
	raw := string(c.Bytes())
	clean := Sanitize(raw)
	tr := TruncateTail(clean, DefaultMaxLines, DefaultMaxBytes)
	// Override total lines with the collector's accurate count (the rolling
	// buffer may have dropped early data). TotalNewlines() counts \n
	// characters; add 1 for an unterminated final line.
	total := c.TotalNewlines()
	if len(raw) > 0 && raw[len(raw)-1] != '\n' {
		total++
	}
	tr.TotalLines = total
	return tr.Content, tr
}

func timeoutResult(ctxErr error, stdout, stderr *OutputCollector) *giazero.ToolResult {
	stdoutStr, stdoutTR := processOutput(stdout)
	stderrStr, stderrTR := processOutput(stderr)

	var b strings.Builder
	fmt.Fprintf(&b, "Error: command timed out or cancelled: %s", ctxErr)
	if stdoutStr != "" {
		fmt.Fprintf(&b, "\nSTDOUT (partial):\n%s", stdoutStr)
	}
	if stderrStr != "" {
		fmt.Fprintf(&b, "\nSTDERR (partial):\n%s", stderrStr)
	}

	appendOffloadNotice(&b, "STDOUT", stdoutTR, stdout)
	appendOffloadNotice(&b, "STDERR", stderrTR, stderr)

	return domainError(b.String())
}

func appendOffloadNotice(b *strings.Builder, name string, tr TruncateResult, c *OutputCollector) {
	filePath := c.FilePath()
	offloadErr := c.Err()

	if !tr.Truncated && filePath == "" {
		return
	}
	switch {
	case filePath != "" && offloadErr == nil:
		fmt.Fprintf(b, "\n[%s: Showing last %d of %d lines. Full output: %s]",
			name, tr.OutputLines, tr.TotalLines, filePath)
	case filePath != "" && offloadErr != nil:
		fmt.Fprintf(b, "\n[%s: Showing last %d of %d lines. Full output file may be incomplete: %s (%s)]",
			name, tr.OutputLines, tr.TotalLines, filePath, offloadErr)
	case tr.Truncated:
		fmt.Fprintf(b, "\n[%s: Showing last %d of %d lines]",
			name, tr.OutputLines, tr.TotalLines)
	}
}
