package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/SdS-Gonk/ImageProcessingHillelSimon/bmp"
)

var filterKinds = map[string]bmp.FilterKind{
	"boxblur":      bmp.FilterBoxBlur,
	"gaussianblur": bmp.FilterGaussianBlur,
	"sharpen":      bmp.FilterSharpen,
	"outline":      bmp.FilterOutline,
	"emboss":       bmp.FilterEmboss,
}

func main() {
	inPath := flag.String("in", "", "Input BMP file")
	outPath := flag.String("out", "", "Output BMP file (omit to skip saving)")
	depth := flag.Int("depth", 24, "Pixel depth of the input: 8 or 24")
	ops := flag.String("op", "", "Comma-separated operations: negative, brightness=N, threshold=N, grayscale, boxblur, gaussianblur, sharpen, outline, emboss, equalize")
	info := flag.Bool("info", false, "Print image info after loading")
	flag.Parse()

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: bmptool -in <file.bmp> [-depth 8|24] [-op <ops>] [-out <file.bmp>] [-info]")
		os.Exit(1)
	}

	var err error
	switch *depth {
	case 8:
		err = run8(*inPath, *outPath, *ops, *info)
	case 24:
		err = run24(*inPath, *outPath, *ops, *info)
	default:
		err = fmt.Errorf("unsupported depth %d, expected 8 or 24", *depth)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run8(inPath, outPath, ops string, info bool) error {
	img, err := bmp.LoadImage8(inPath)
	if err != nil {
		return err
	}
	if info {
		img.PrintInfo(os.Stdout)
	}

	for _, op := range splitOps(ops) {
		name, arg, hasArg := parseOp(op)
		switch {
		case name == "negative":
			err = img.Negative()
		case name == "brightness" && hasArg:
			err = img.Brightness(arg)
		case name == "threshold" && hasArg:
			err = img.Threshold(arg)
		case name == "equalize":
			err = img.Equalize()
		default:
			if kind, ok := filterKinds[name]; ok {
				err = img.ApplyNamedFilter(kind)
			} else {
				err = fmt.Errorf("unknown 8-bit operation %q", op)
			}
		}
		if err != nil {
			return fmt.Errorf("apply %s: %w", op, err)
		}
	}

	if outPath != "" {
		return bmp.SaveImage8(outPath, img)
	}
	return nil
}

func run24(inPath, outPath, ops string, info bool) error {
	img, err := bmp.LoadImage24(inPath)
	if err != nil {
		return err
	}
	if info {
		img.PrintInfo(os.Stdout)
	}

	for _, op := range splitOps(ops) {
		name, arg, hasArg := parseOp(op)
		switch {
		case name == "negative":
			err = img.Negative()
		case name == "brightness" && hasArg:
			err = img.Brightness(arg)
		case name == "grayscale":
			err = img.Grayscale()
		case name == "equalize":
			err = img.Equalize()
		default:
			if kind, ok := filterKinds[name]; ok {
				err = img.ApplyNamedFilter(kind)
			} else {
				err = fmt.Errorf("unknown 24-bit operation %q", op)
			}
		}
		if err != nil {
			return fmt.Errorf("apply %s: %w", op, err)
		}
	}

	if outPath != "" {
		return bmp.SaveImage24(outPath, img)
	}
	return nil
}

func splitOps(ops string) []string {
	if ops == "" {
		return nil
	}
	parts := strings.Split(ops, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseOp splits "name=value" into its parts; hasArg reports whether a
// valid integer argument was present.
func parseOp(op string) (name string, arg int, hasArg bool) {
	name, value, found := strings.Cut(op, "=")
	name = strings.ToLower(strings.TrimSpace(name))
	if !found {
		return name, 0, false
	}
	arg, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return name, 0, false
	}
	return name, arg, true
}
