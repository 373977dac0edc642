// Package wavfile verifies rendered WAV output. The existence check alone
// would report a truncated or empty file as success, so the header is
// decoded and the audio length read back.
package wavfile

import (
	"fmt"
	"os"
	"time"

	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
)

// Info describes a decodable WAV file.
type Info struct {
	Size       int64
	SampleRate int
	Channels   int
	Duration   time.Duration
}

func (i Info) String() string {
	return fmt.Sprintf("%s, %d Hz %s, %s",
		HumanSize(i.Size), i.SampleRate, channelWord(i.Channels),
		i.Duration.Round(100*time.Millisecond))
}

// Verify opens path and decodes the WAV header.
func Verify(path string) (Info, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return Info{}, errors.Wrap(err, "verify output")
	}
	f, err := os.Open(path)
	if err != nil {
		return Info{}, errors.Wrap(err, "verify output")
	}
	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return Info{}, errors.Wrapf(err, "decode %s", path)
	}
	defer streamer.Close()

	n := streamer.Len()
	info := Info{
		Size:       fi.Size(),
		SampleRate: int(format.SampleRate),
		Channels:   format.NumChannels,
		Duration:   format.SampleRate.D(n),
	}
	if n == 0 {
		return Info{}, errors.Errorf("%s contains no audio", path)
	}
	return info, nil
}

// HumanSize renders a byte count in binary units, e.g. "12.3 MiB".
func HumanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func channelWord(n int) string {
	switch n {
	case 1:
		return "mono"
	case 2:
		return "stereo"
	default:
		return fmt.Sprintf("%d-channel", n)
	}
}
