// Package faiz batch-converts the Sahar-e-Nau project's MIDI takes to WAV by
// driving an external FluidSynth process. Composition happens upstream; this
// package only resolves inputs, invokes the renderer once per file and
// verifies what came out.
package faiz

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/faizan-m/faiz/internal/midifile"
	"github.com/faizan-m/faiz/internal/render"
	"github.com/faizan-m/faiz/internal/soundfont"
	"github.com/faizan-m/faiz/internal/wavfile"
)

const (
	// InputExt is the case-sensitive suffix that marks convertible inputs.
	InputExt = ".mid"
	// OutputExt replaces InputExt when deriving output paths.
	OutputExt = ".wav"

	DefaultGain       = 1.0
	DefaultSampleRate = 44100
)

// ErrNoInputs reports a batch directory with zero matching files.
var ErrNoInputs = errors.New("no MIDI files found")

type Option func(*config)

type config struct {
	gain       float64
	sampleRate int
	soundFont  string
	executable string
	out        io.Writer
}

func defaultConfig() config {
	return config{
		gain:       DefaultGain,
		sampleRate: DefaultSampleRate,
		out:        os.Stdout,
	}
}

func WithGain(gain float64) Option {
	return func(cfg *config) {
		cfg.gain = gain
	}
}

func WithSampleRate(rate int) Option {
	return func(cfg *config) {
		cfg.sampleRate = rate
	}
}

// WithSoundFont pins the voice bank, skipping the default-then-search
// resolution.
func WithSoundFont(path string) Option {
	return func(cfg *config) {
		cfg.soundFont = path
	}
}

// WithRenderer overrides the renderer executable (name or path).
func WithRenderer(executable string) Option {
	return func(cfg *config) {
		cfg.executable = executable
	}
}

// WithOutput redirects the per-job progress lines, which otherwise go to
// stdout.
func WithOutput(w io.Writer) Option {
	return func(cfg *config) {
		cfg.out = w
	}
}

// Job pairs one input path with its output path.
type Job struct {
	Input  string
	Output string
}

// Summary tallies one run. It lives only for the process lifetime.
type Summary struct {
	Succeeded int
	Failed    int
	OutputDir string
}

type Converter struct {
	cfg      config
	renderer *render.Renderer
	bank     string
}

// NewConverter checks the environment up front: the renderer must be
// reachable and exactly one voice bank selected before any job runs.
func NewConverter(opts ...Option) (*Converter, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	r := render.New(cfg.executable)
	if err := r.Available(); err != nil {
		return nil, err
	}
	bank := cfg.soundFont
	if bank == "" {
		resolved, err := soundfont.Resolve(soundfont.DefaultOptions())
		if err != nil {
			return nil, err
		}
		bank = resolved
	} else if _, err := os.Stat(bank); err != nil {
		return nil, errors.Wrap(err, "soundfont")
	}
	return &Converter{cfg: cfg, renderer: r, bank: bank}, nil
}

// SoundFont returns the voice bank selected for this run.
func (c *Converter) SoundFont() string { return c.bank }

// OutputPath derives the conversion target for an input: same directory,
// input suffix swapped for the output suffix.
func OutputPath(input string) string {
	return strings.TrimSuffix(input, InputExt) + OutputExt
}

// DiscoverJobs lists the immediate *.mid entries of dir (no recursion,
// case-sensitive suffix) in lexical name order, which is the documented job
// order for batch runs.
func DiscoverJobs(dir string) ([]Job, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "read directory")
	}
	var jobs []Job
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), InputExt) {
			continue
		}
		in := filepath.Join(dir, e.Name())
		jobs = append(jobs, Job{Input: in, Output: OutputPath(in)})
	}
	return jobs, nil
}

// ConvertFile runs a single explicit job. A failed conversion is an error
// here; unlike batch mode there is nothing else to keep going for.
func (c *Converter) ConvertFile(ctx context.Context, input, output string) error {
	fi, err := os.Stat(input)
	if err != nil || !fi.Mode().IsRegular() {
		return errors.Errorf("input file not found: %s", input)
	}
	if !c.runJob(ctx, Job{Input: input, Output: output}) {
		return errors.Errorf("conversion failed: %s", input)
	}
	return nil
}

// ConvertDir discovers and converts every matching file in dir, strictly
// sequentially in discovery order. Individual failures are counted and
// reported but do not stop the run.
func (c *Converter) ConvertDir(ctx context.Context, dir string) (Summary, error) {
	fi, err := os.Stat(dir)
	if err != nil || !fi.IsDir() {
		return Summary{}, errors.Errorf("not a directory: %s", dir)
	}
	jobs, err := DiscoverJobs(dir)
	if err != nil {
		return Summary{}, err
	}
	if len(jobs) == 0 {
		return Summary{}, errors.Wrap(ErrNoInputs, dir)
	}

	fmt.Fprintf(c.cfg.out, "Found %d MIDI file(s) in %s\n", len(jobs), dir)
	fmt.Fprintf(c.cfg.out, "Using soundfont: %s\n", c.bank)

	sum := Summary{OutputDir: dir}
	for _, job := range jobs {
		fmt.Fprintln(c.cfg.out)
		if c.runJob(ctx, job) {
			sum.Succeeded++
		} else {
			sum.Failed++
		}
	}
	c.printSummary(sum)
	return sum, nil
}

// runJob is the invoke-and-verify sequence shared by both modes. It reports
// the outcome on the configured writer and returns whether the job
// succeeded.
func (c *Converter) runJob(ctx context.Context, job Job) bool {
	w := c.cfg.out
	fmt.Fprintf(w, "Converting: %s -> %s\n", filepath.Base(job.Input), filepath.Base(job.Output))
	if info, err := midifile.Probe(job.Input); err == nil {
		fmt.Fprintf(w, "  %s\n", info)
	}
	res, err := c.renderer.Render(ctx, render.Params{
		SoundFont:  c.bank,
		Input:      job.Input,
		Output:     job.Output,
		Gain:       c.cfg.gain,
		SampleRate: c.cfg.sampleRate,
	})
	if err != nil {
		fmt.Fprintf(w, "  FAILED: %v\n", err)
		return false
	}
	out, err := wavfile.Verify(res.Output)
	if err != nil {
		fmt.Fprintf(w, "  FAILED: %v\n", err)
		return false
	}
	fmt.Fprintf(w, "  OK %s (%s)\n", filepath.Base(res.Output), out)
	return true
}

func (c *Converter) printSummary(sum Summary) {
	fmt.Fprintln(c.cfg.out)
	fmt.Fprintln(c.cfg.out, strings.Repeat("=", 40))
	fmt.Fprintf(c.cfg.out, "Converted: %d succeeded\n", sum.Succeeded)
	if sum.Failed > 0 {
		fmt.Fprintf(c.cfg.out, "Failed: %d\n", sum.Failed)
	}
	fmt.Fprintf(c.cfg.out, "Output directory: %s\n", sum.OutputDir)
}
