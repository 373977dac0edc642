package wavfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/stretchr/testify/require"
)

func writeSilentWAV(t *testing.T, path string, samples int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	format := beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, beep.Silence(samples), format))
}

func TestVerify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "take.wav")
	writeSilentWAV(t, path, 4410)

	info, err := Verify(path)
	require.NoError(t, err)
	require.Equal(t, 44100, info.SampleRate)
	require.Equal(t, 2, info.Channels)
	require.InDelta(t, 0.1, info.Duration.Seconds(), 0.001)
	require.Greater(t, info.Size, int64(44))
}

func TestVerifyEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "take.wav")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := Verify(path)
	require.Error(t, err)
}

func TestVerifyGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "take.wav")
	require.NoError(t, os.WriteFile(path, []byte("definitely not riff data"), 0o644))

	_, err := Verify(path)
	require.Error(t, err)
}

func TestVerifyMissingFile(t *testing.T) {
	_, err := Verify(filepath.Join(t.TempDir(), "no-such.wav"))
	require.Error(t, err)
}

func TestHumanSize(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{1536, "1.5 KiB"},
		{12897484, "12.3 MiB"},
		{5 << 30, "5.0 GiB"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, HumanSize(tc.n), "HumanSize(%d)", tc.n)
	}
}
