// Package midifile reports basic facts about a standard MIDI file before it
// is handed to the renderer. The file stays opaque to the conversion
// contract; a probe failure never blocks a job.
package midifile

import (
	"fmt"
	"sort"
	"time"

	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Info summarizes one SMF input.
type Info struct {
	Format          uint16
	Tracks          int
	TicksPerQuarter uint16 // 0 when the file uses SMPTE timing
	Notes           int
	Duration        time.Duration // 0 when timing cannot be resolved
}

func (i Info) String() string {
	s := fmt.Sprintf("format %d, %d track(s), %d note(s)", i.Format, i.Tracks, i.Notes)
	if i.TicksPerQuarter > 0 {
		s += fmt.Sprintf(", %d ticks/quarter", i.TicksPerQuarter)
	}
	if i.Duration > 0 {
		s += fmt.Sprintf(", ~%s", i.Duration.Round(100*time.Millisecond))
	}
	return s
}

type tempoChange struct {
	tick uint64
	bpm  float64
}

// Probe parses the file and derives track count, note count and an estimated
// play time from the tempo map.
func Probe(path string) (Info, error) {
	s, err := smf.ReadFile(path)
	if err != nil {
		return Info{}, errors.Wrapf(err, "probe %s", path)
	}

	info := Info{
		Format: s.Format(),
		Tracks: len(s.Tracks),
	}

	var tempos []tempoChange
	var maxTick uint64
	for _, track := range s.Tracks {
		var tick uint64
		for _, ev := range track {
			tick += uint64(ev.Delta)
			var ch, key, vel uint8
			if ev.Message.GetNoteOn(&ch, &key, &vel) && vel > 0 {
				info.Notes++
			}
			var bpm float64
			if ev.Message.GetMetaTempo(&bpm) && bpm > 0 {
				tempos = append(tempos, tempoChange{tick: tick, bpm: bpm})
			}
		}
		if tick > maxTick {
			maxTick = tick
		}
	}

	if ticks, ok := s.TimeFormat.(smf.MetricTicks); ok {
		info.TicksPerQuarter = uint16(ticks)
		info.Duration = playTime(maxTick, uint64(ticks), tempos)
	}
	return info, nil
}

// playTime integrates the tempo map over the longest track. MIDI defaults to
// 120 BPM until the first tempo event.
func playTime(endTick, ticksPerQuarter uint64, tempos []tempoChange) time.Duration {
	if endTick == 0 || ticksPerQuarter == 0 {
		return 0
	}
	sort.Slice(tempos, func(i, j int) bool { return tempos[i].tick < tempos[j].tick })

	bpm := 120.0
	var elapsed float64
	var at uint64
	for _, tc := range tempos {
		if tc.tick >= endTick {
			break
		}
		if tc.tick > at {
			elapsed += float64(tc.tick-at) * 60.0 / (bpm * float64(ticksPerQuarter))
			at = tc.tick
		}
		bpm = tc.bpm
	}
	elapsed += float64(endTick-at) * 60.0 / (bpm * float64(ticksPerQuarter))
	return time.Duration(elapsed * float64(time.Second))
}
