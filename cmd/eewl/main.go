// cmd/eewl/main.go
package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/tamzrod/eeprom-wearlevel/internal/config"
	"github.com/tamzrod/eeprom-wearlevel/internal/device"
	"github.com/tamzrod/eeprom-wearlevel/internal/recorder"
	"github.com/tamzrod/eeprom-wearlevel/internal/wearlevel"
)

const usage = `usage: eewl <config.yaml> <command> [args]

commands:
  layout                              print buffer ranges
  format <buffer>                     mark every slot free
  get    <buffer>                     print the current value (hex)
  put    <buffer> <hex>               store a new value
  record <buffer> <interval> [step]   persist a counter every interval`

func main() {
	if len(os.Args) < 3 {
		log.Fatal(usage)
	}

	if err := execute(os.Args[1], os.Args[2], os.Args[3:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// execute runs one command. The device is released on every return path.
func execute(cfgPath, cmd string, args []string, w io.Writer) error {
	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	config.Normalize(cfg)

	if cmd == "layout" {
		printLayout(w, cfg)
		return nil
	}

	if len(args) < 1 {
		return errors.New(usage)
	}

	// every other command exists to act on persisted state
	if cfg.Device.Kind == config.KindMemory {
		return fmt.Errorf("%s: device kind %q does not persist between runs, use %q or %q",
			cmd, config.KindMemory, config.KindPebble, config.KindModbus)
	}

	// --------------------
	// Device (sized once for every buffer)
	// --------------------

	dev, closeDevice, err := device.Build(cfg.Device, cfg.Device.Capacity)
	if err != nil {
		return fmt.Errorf("device build failed (kind=%s): %w", cfg.Device.Kind, err)
	}
	defer func() {
		if err := closeDevice(); err != nil {
			log.Printf("device close failed (kind=%s): %v", cfg.Device.Kind, err)
		}
	}()

	// --------------------
	// Buffers
	// --------------------

	buffers := make(map[string]*wearlevel.Buffer, len(cfg.Buffers))
	for _, bc := range cfg.Buffers {
		b, err := wearlevel.New(dev, bc.PayloadSize, bc.Slots, bc.Start,
			wearlevel.WithLogger(slog.Default().With("buffer", bc.Name)),
		)
		if err != nil {
			return fmt.Errorf("buffer build failed (buffer=%s): %w", bc.Name, err)
		}
		buffers[bc.Name] = b
	}

	name := args[0]
	buf, ok := buffers[name]
	if !ok {
		return fmt.Errorf("unknown buffer %q", name)
	}

	outcome, err := buf.Initialize()
	if err != nil {
		return fmt.Errorf("initialize failed (buffer=%s): %w", name, err)
	}
	if outcome != wearlevel.OutcomeEmpty && outcome != wearlevel.OutcomeSingle {
		log.Printf("buffer %s: scan outcome %s", name, outcome)
	}

	if err := run(w, cmd, name, buf, args[1:]); err != nil {
		return fmt.Errorf("%s failed (buffer=%s): %w", cmd, name, err)
	}
	return nil
}

func run(w io.Writer, cmd, name string, buf *wearlevel.Buffer, args []string) error {
	switch cmd {
	case "format":
		return buf.FastFormat()

	case "get":
		out := make([]byte, buf.PayloadSize())
		ok, err := buf.Get(out)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(w, "empty")
			return nil
		}
		fmt.Fprintln(w, hex.EncodeToString(out))
		return nil

	case "put":
		if len(args) < 1 {
			return fmt.Errorf("put: value required")
		}
		v, err := hex.DecodeString(args[0])
		if err != nil {
			return fmt.Errorf("put: value: %w", err)
		}
		return buf.Put(v)

	case "record":
		return record(name, buf, args)

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// record persists a counter until interrupted.
func record(name string, buf *wearlevel.Buffer, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("record: interval required")
	}
	interval, err := time.ParseDuration(args[0])
	if err != nil {
		return fmt.Errorf("record: interval: %w", err)
	}

	step := uint64(1)
	if len(args) > 1 {
		if step, err = strconv.ParseUint(args[1], 10, 32); err != nil {
			return fmt.Errorf("record: step: %w", err)
		}
	}

	hours, err := wearlevel.Wrap[uint32](buf)
	if err != nil {
		return fmt.Errorf("record: %w", err)
	}

	counter, err := recorder.NewCounter(hours, uint32(step))
	if err != nil {
		return err
	}

	r, err := recorder.New[uint32](recorder.Config{Name: name, Interval: interval}, hours, counter)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("recording %s every %s from %d", name, interval, counter.Value())

	out := make(chan recorder.Result[uint32])
	done := make(chan struct{})
	go func() {
		r.Run(ctx, out)
		close(done)
	}()

	for {
		select {
		case <-ctx.Done():
			// the device must not be closed under a running put
			<-done
			return nil
		case res := <-out:
			if res.Err != nil {
				log.Printf("record error (buffer=%s): %v", res.Name, res.Err)
				continue
			}
			log.Printf("%s=%d slot=%#x", res.Name, res.Value, res.Address)
		}
	}
}

func printLayout(w io.Writer, cfg *config.Config) {
	fmt.Fprintf(w, "device %s capacity=%d\n", cfg.Device.Kind, cfg.Device.Capacity)
	for _, b := range cfg.Buffers {
		fmt.Fprintf(w, "  %-16s start=%-6d end=%-6d slots=%-4d slot_size=%d\n",
			b.Name, b.Start, b.End(), b.Slots, b.SlotSize())
	}
}
