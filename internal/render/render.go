// Package render wraps the external FluidSynth process that does the actual
// audio synthesis. The tool is opaque here beyond its invocation contract:
// non-interactive flag, gain, fast-render output path, sample rate, voice
// bank, input file.
package render

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// DefaultExecutable is the renderer looked up on PATH.
const DefaultExecutable = "fluidsynth"

var (
	// ErrRendererMissing means the renderer executable is not on PATH.
	ErrRendererMissing = errors.New("renderer not installed")

	// ErrNoOutput means the process completed but the output file never
	// appeared.
	ErrNoOutput = errors.New("renderer produced no output file")
)

// Params is the fixed parameter set for one conversion job.
type Params struct {
	SoundFont  string
	Input      string
	Output     string
	Gain       float64
	SampleRate int
}

// Result describes a conversion whose output file was verified present.
type Result struct {
	Output string
	Size   int64
}

type Renderer struct {
	executable string
}

func New(executable string) *Renderer {
	if executable == "" {
		executable = DefaultExecutable
	}
	return &Renderer{executable: executable}
}

func (r *Renderer) Executable() string { return r.executable }

// Available probes PATH for the renderer. Callers treat a miss as fatal
// before any job runs.
func (r *Renderer) Available() error {
	if _, err := exec.LookPath(r.executable); err != nil {
		return errors.Wrap(ErrRendererMissing, r.executable)
	}
	return nil
}

// Render runs the renderer synchronously and verifies that the output file
// exists afterwards. The renderer's console output is suppressed; stderr is
// buffered so a nonzero exit can carry a diagnostic line. A nonzero exit is
// an error even when an output file appears, since a partial file would
// otherwise be misreported as success.
func (r *Renderer) Render(ctx context.Context, p Params) (Result, error) {
	args := []string{
		"-ni",
		"-g", strconv.FormatFloat(p.Gain, 'f', -1, 64),
		"-F", p.Output,
		"-r", strconv.Itoa(p.SampleRate),
		p.SoundFont,
		p.Input,
	}
	cmd := exec.CommandContext(ctx, r.executable, args...)
	cmd.Stdout = io.Discard
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return Result{}, errors.Wrap(ErrRendererMissing, r.executable)
		}
		return Result{}, errors.Wrapf(err, "%s: %s", r.executable, lastStderrLine(&stderr))
	}
	fi, err := os.Stat(p.Output)
	if err != nil || !fi.Mode().IsRegular() {
		return Result{}, errors.Wrap(ErrNoOutput, p.Output)
	}
	return Result{Output: p.Output, Size: fi.Size()}, nil
}

func lastStderrLine(buf *bytes.Buffer) string {
	s := strings.TrimSpace(buf.String())
	if s == "" {
		return "no diagnostic output"
	}
	lines := strings.Split(s, "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
