// cmd/eepromctl/main.go
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/tamzrod/lpc-eeprom/internal/block"
	"github.com/tamzrod/lpc-eeprom/internal/config"
	"github.com/tamzrod/lpc-eeprom/internal/device"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:")
	fmt.Fprintln(os.Stderr, "    eepromctl -config <config.yaml> [-v level] dump [offset [count]]")
	fmt.Fprintln(os.Stderr, "    eepromctl -config <config.yaml> [-v level] write <offset> <text>")
	fmt.Fprintln(os.Stderr, "    eepromctl -config <config.yaml> [-v level] fill <offset> <count> <byte>")
	os.Exit(1)
}

func main() {
	cfgPath := flag.String("config", "", "path to YAML config")
	verbosity := flag.Int("v", -1, "verbosity override (-1 keeps the config value)")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if *cfgPath == "" || len(args) < 1 {
		usage()
	}

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}
	config.Normalize(cfg)

	if *verbosity >= 0 {
		cfg.EEPROM.Verbosity = *verbosity
	}

	// --------------------
	// Build device, open the single session
	// --------------------

	dev, closeDev, err := device.Build(cfg)
	if err != nil {
		log.Fatalf("device build failed: %v", err)
	}
	defer closeDev()

	h, err := dev.Open()
	if err != nil {
		log.Fatalf("open failed: %v", err)
	}
	defer h.Close()

	switch args[0] {
	case "dump":
		offset := int64(0)
		count := int64(block.Size)
		if len(args) > 1 {
			offset = parseNum(args[1])
		}
		if len(args) > 2 {
			count = parseNum(args[2])
		}
		err = dump(h, offset, count)

	case "write":
		if len(args) < 3 {
			usage()
		}
		err = write(h, parseNum(args[1]), []byte(args[2]))

	case "fill":
		if len(args) < 4 {
			usage()
		}
		v := parseNum(args[3])
		if v < 0 || v > 0xFF {
			log.Fatalf("fill value %d out of byte range", v)
		}
		err = write(h, parseNum(args[1]), bytes.Repeat([]byte{byte(v)}, int(parseNum(args[2]))))

	default:
		usage()
	}

	if err != nil {
		log.Fatalf("%s failed: %v", args[0], err)
	}
}

// parseNum accepts decimal and 0x-prefixed values.
func parseNum(s string) int64 {
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil || v < 0 {
		log.Fatalf("bad number %q", s)
	}
	return v
}

// dump prints rows of 8 bytes as offset, hex and ASCII.
func dump(h *device.Handle, offset, count int64) error {
	if _, err := h.Seek(offset, io.SeekStart); err != nil {
		return err
	}

	buf := make([]byte, 8)
	for count > 0 {
		want := int64(len(buf))
		if count < want {
			want = count
		}

		n, err := h.Read(buf[:want])
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Printf("%04x ", offset)
		for i := 0; i < n; i++ {
			fmt.Printf("%02x ", buf[i])
		}
		for i := 0; i < n; i++ {
			c := buf[i]
			if c < 0x20 || c > 0x7E {
				c = '.'
			}
			fmt.Printf("%c", c)
		}
		fmt.Println()

		offset += int64(n)
		count -= int64(n)
	}
	return nil
}

func write(h *device.Handle, offset int64, data []byte) error {
	if _, err := h.Seek(offset, io.SeekStart); err != nil {
		return err
	}

	n, err := h.Write(data)
	if errors.Is(err, io.ErrShortWrite) {
		fmt.Fprintf(os.Stderr, "short write: %d of %d bytes (device end)\n", n, len(data))
		return nil
	}
	return err
}
