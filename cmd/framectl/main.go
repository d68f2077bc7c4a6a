// framectl frames and de-frames byte streams on stdin/stdout.
//
//	framectl [-config wire.toml] encode   each stdin line becomes one frame
//	framectl [-config wire.toml] decode   each frame payload becomes one line
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/danmuck/framectl/framing"
	"github.com/danmuck/framectl/internal/config"
	"github.com/danmuck/framectl/internal/logging"
	"github.com/danmuck/framectl/nbio"
	"github.com/rs/zerolog/log"
)

func main() {
	logging.ConfigureRuntime()

	configPath := flag.String("config", "", "TOML wire layout file, defaults apply when empty")
	flag.Parse()

	cfg := config.DefaultWireConfig()
	if *configPath != "" {
		loaded, err := config.LoadWireConfig(*configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *configPath).Msg("failed to load wire config")
		}
		cfg = loaded
		log.Info().Str("path", *configPath).Msg("loaded wire config")
	}

	builder, err := cfg.Builder()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid wire layout")
	}

	switch flag.Arg(0) {
	case "encode":
		err = runEncode(builder, cfg.MaxFrameLen)
	case "decode":
		err = runDecode(builder)
	default:
		fmt.Fprintf(os.Stderr, "usage: framectl [-config wire.toml] encode|decode\n")
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("framectl stopped")
	}
}

func runEncode(b *framing.Builder, maxFrameLen int) error {
	out := bufio.NewWriter(os.Stdout)
	enc := b.NewEncoder(nbio.NewWriter(out))

	sc := bufio.NewScanner(os.Stdin)
	sc.Buffer(make([]byte, 0, 64*1024), maxFrameLen)

	frames := 0
	for sc.Scan() {
		payload := append([]byte(nil), sc.Bytes()...)
		if err := sendFrame(enc, payload); err != nil {
			return fmt.Errorf("encode frame %d: %w", frames, err)
		}
		frames++
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	if err := driveFlush(enc); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("flush stdout: %w", err)
	}
	log.Info().Int("frames", frames).Msg("encoded stream")
	return nil
}

func runDecode(b *framing.Builder) error {
	dec := b.NewDecoder(nbio.NewReader(bufio.NewReader(os.Stdin)))
	out := bufio.NewWriter(os.Stdout)

	frames := 0
	for {
		frame, err := dec.Next()
		switch {
		case err == nil:
			if _, werr := out.Write(frame); werr != nil {
				return fmt.Errorf("write stdout: %w", werr)
			}
			if werr := out.WriteByte('\n'); werr != nil {
				return fmt.Errorf("write stdout: %w", werr)
			}
			frames++
		case errors.Is(err, io.EOF):
			if err := out.Flush(); err != nil {
				return fmt.Errorf("flush stdout: %w", err)
			}
			log.Info().Int("frames", frames).Msg("decoded stream")
			return nil
		case errors.Is(err, nbio.ErrWouldBlock):
			continue
		default:
			return fmt.Errorf("decode frame %d: %w", frames, err)
		}
	}
}

// sendFrame retries through backpressure from an earlier in-flight frame.
func sendFrame(enc *framing.Encoder, payload []byte) error {
	for {
		err := enc.Send(payload)
		if errors.Is(err, nbio.ErrWouldBlock) {
			continue
		}
		return err
	}
}

func driveFlush(enc *framing.Encoder) error {
	for {
		err := enc.Flush()
		if errors.Is(err, nbio.ErrWouldBlock) {
			continue
		}
		return err
	}
}
