package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

func main() {
	var (
		volume = flag.Float64("volume", 0, "volume offset in powers of two (-2 = quarter, 2 = 4x)")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: wavplay [flags] <file.wav>\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	path := flag.Arg(0)

	f, err := os.Open(path)
	if err != nil {
		log.Fatal(err)
	}
	streamer, format, err := wav.Decode(f)
	if err != nil {
		log.Fatalf("decode %s: %v", path, err)
	}
	defer streamer.Close()

	length := format.SampleRate.D(streamer.Len()).Round(100 * time.Millisecond)
	fmt.Printf("Playing %s (%d Hz, %d channel(s), %s)\n", path, format.SampleRate, format.NumChannels, length)

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		log.Fatal(err)
	}
	done := make(chan struct{})
	vol := &effects.Volume{Streamer: streamer, Base: 2, Volume: *volume}
	speaker.Play(beep.Seq(vol, beep.Callback(func() {
		close(done)
	})))
	<-done
}
