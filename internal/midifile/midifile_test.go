package midifile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func writeTestSMF(t *testing.T, path string, bpm float64, notes int) {
	t.Helper()
	clock := smf.MetricTicks(480)
	var tr smf.Track
	tr.Add(0, smf.MetaTempo(bpm))
	for i := 0; i < notes; i++ {
		key := uint8(60 + i%12)
		tr.Add(0, midi.NoteOn(0, key, 100))
		tr.Add(clock.Ticks4th(), midi.NoteOff(0, key))
	}
	tr.Close(0)

	s := smf.New()
	s.TimeFormat = clock
	require.NoError(t, s.Add(tr))
	require.NoError(t, s.WriteFile(path))
}

func TestProbe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "take.mid")
	writeTestSMF(t, path, 120, 4)

	info, err := Probe(path)
	require.NoError(t, err)
	require.Equal(t, 1, info.Tracks)
	require.Equal(t, 4, info.Notes)
	require.Equal(t, uint16(480), info.TicksPerQuarter)
	// 4 quarter notes at 120 BPM.
	require.InDelta(t, 2.0, info.Duration.Seconds(), 0.01)
}

func TestProbeRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("not a midi file"), 0o644))

	_, err := Probe(path)
	require.Error(t, err)
}

func TestPlayTimeDefaultsTo120BPM(t *testing.T) {
	// 4 beats at the implicit 120 BPM.
	d := playTime(1920, 480, nil)
	require.InDelta(t, 2.0, d.Seconds(), 0.001)
}

func TestPlayTimeTempoChange(t *testing.T) {
	// 2 beats at 120 (1s), then 2 beats at 240 (0.5s).
	d := playTime(1920, 480, []tempoChange{{tick: 960, bpm: 240}})
	require.InDelta(t, 1.5, d.Seconds(), 0.001)
}

func TestInfoString(t *testing.T) {
	info := Info{
		Format:          1,
		Tracks:          2,
		TicksPerQuarter: 480,
		Notes:           37,
		Duration:        96400 * time.Millisecond,
	}
	require.Equal(t, "format 1, 2 track(s), 37 note(s), 480 ticks/quarter, ~1m36.4s", info.String())
}
