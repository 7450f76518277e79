package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Plastique812375255/FUKMKD/internal/restool/audio"
	"github.com/Plastique812375255/FUKMKD/internal/restool/config"
)

var (
	modeFlag  = flag.String("mode", "", "conversion mode: au2wav, wav2au, or dir")
	inFlag    = flag.String("in", "", "input file (or directory for dir mode)")
	outFlag   = flag.String("out", "", "output file (or directory for dir mode)")
	rateFlag  = flag.Int("rate", audio.DefaultSampleRate, "sample rate for generated WAV files")
	refFlag   = flag.String("ref", "", "reference .au file whose header is reused (wav2au mode)")
	debugFlag = flag.Bool("d", false, "debug mode (show more info)")
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s: -mode <au2wav|wav2au|dir> -in <path> -out <path> [options]\n", os.Args[0])
	fmt.Fprintln(flag.CommandLine.Output(), "  -mode string")
	fmt.Fprintln(flag.CommandLine.Output(), "    \tau2wav: decode one .au file to .wav")
	fmt.Fprintln(flag.CommandLine.Output(), "    \twav2au: encode one .wav file to .au")
	fmt.Fprintln(flag.CommandLine.Output(), "    \tdir:    decode every .au file in a directory and write file_headers.csv")
	fmt.Fprintln(flag.CommandLine.Output(), "  -in string")
	fmt.Fprintln(flag.CommandLine.Output(), "    \tinput file (or directory for dir mode)")
	fmt.Fprintln(flag.CommandLine.Output(), "  -out string")
	fmt.Fprintln(flag.CommandLine.Output(), "    \toutput file (or directory for dir mode)")
	fmt.Fprintf(flag.CommandLine.Output(), "  -rate int\n    \tsample rate for generated WAV files (default %d)\n", audio.DefaultSampleRate)
	fmt.Fprintln(flag.CommandLine.Output(), "  -ref string")
	fmt.Fprintln(flag.CommandLine.Output(), "    \treference .au file whose header is reused (wav2au mode)")
	fmt.Fprintln(flag.CommandLine.Output(), "  -d\tdebug mode (show more info)")
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *modeFlag == "" || *inFlag == "" || *outFlag == "" {
		flag.Usage()
		os.Exit(1)
	}

	logger := config.NewDebugLogger(*debugFlag)
	converter := audio.NewConverter(logger)

	var err error
	switch *modeFlag {
	case "au2wav":
		err = converter.AUToWAV(*inFlag, *outFlag, *rateFlag)
		if err == nil {
			fmt.Printf("%s -> %s\n", *inFlag, *outFlag)
		}
	case "wav2au":
		err = converter.WAVToAU(*inFlag, *outFlag, *refFlag)
		if err == nil {
			fmt.Printf("%s -> %s\n", *inFlag, *outFlag)
		}
	case "dir":
		converted, convErr := converter.ConvertDir(*inFlag, *outFlag, *rateFlag)
		err = convErr
		for _, r := range converted {
			fmt.Printf("%s -> %s\n", r.Input, r.Output)
		}
	default:
		fmt.Fprintf(os.Stderr, "不明なモードです: %s\n", *modeFlag)
		flag.Usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "エラー: %v\n", err)
		os.Exit(1)
	}
}
