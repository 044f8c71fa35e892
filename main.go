package main

import (
	"flag"
	"fmt"
	"log"
	"os"
)

const defaultSampleRate = 48000

func main() {
	logLevel := flag.String("log-level", "info", "log level (debug|info|warn|error)")
	fontPath := flag.String("font", "", "TTF font used for time labels (builtin bitmap font if empty)")
	numPeaks := flag.Int("peaks", defaultNumPeaks, "number of waveform peak buckets")
	sampleRate := flag.Int("sample-rate", defaultSampleRate, "output sample rate in Hz")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <audio-file>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	filePath := flag.Arg(0)

	if err := InitLogger(*logLevel); err != nil {
		log.Fatalf("%v\n", err)
	}

	theme := DefaultTheme()
	if *fontPath != "" {
		font, err := LoadFontFromFile(*fontPath)
		if err != nil {
			log.Fatalf("%v\n", err)
		}
		face, err := font.GetFace(12)
		if err != nil {
			log.Fatalf("%v\n", err)
		}
		theme.Face = face
	}

	engine, err := CreateOtoEngine(*sampleRate)
	if err != nil {
		log.Fatalf("%v\n", err)
	}

	app := CreateApp(engine, theme, filePath, *numPeaks)
	if err := WithGL(fmt.Sprintf("wavetrim : %s", filePath), app); err != nil {
		log.Fatalf("%v\n", err)
	}
}
