package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"lprun/internal/domain"
	appErrors "lprun/internal/errors"
)

type Config struct {
	Printer   string
	IP        string
	Port      uint16
	Text      string
	Image     string
	File      string
	Copies    int
	Color     bool
	Grayscale bool
	Verbose   bool
	TUI       bool
	List      bool
	History   string
}

var (
	ErrColorConflict  = errors.New("--color and --grayscale are mutually exclusive")
	ErrTargetConflict = errors.New("--printer and --ip are mutually exclusive")
	ErrDocConflict    = errors.New("only one of --text, --image and --file may be given")
	ErrCopies         = errors.New("--copies must be at least 1")
)

// Bind registers the print flags on fs. Values land in cfg once fs is
// parsed; Finalize must run afterwards.
func Bind(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVarP(&cfg.Printer, "printer", "p", "", "Spooler printer name")
	fs.StringVar(&cfg.IP, "ip", "", "Network printer IPv4 address (raw socket)")
	fs.Uint16Var(&cfg.Port, "port", domain.DefaultRawPort, "Raw socket port")
	fs.StringVarP(&cfg.Text, "text", "t", "", "Print this text")
	fs.StringVarP(&cfg.Image, "image", "i", "", "Print an image file")
	fs.StringVarP(&cfg.File, "file", "f", "", "Print a file (PDFs are converted to PostScript)")
	fs.IntVarP(&cfg.Copies, "copies", "n", 1, "Number of copies")
	fs.BoolVar(&cfg.Color, "color", false, "Force color output")
	fs.BoolVar(&cfg.Grayscale, "grayscale", false, "Force grayscale output")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose output")
	fs.BoolVar(&cfg.TUI, "tui", false, "Show an interactive progress view")
	fs.BoolVar(&cfg.List, "list", false, "List spooler printers and exit")
}

// Finalize applies environment fallbacks for unset flags and validates the
// combination. changed reports whether a flag was given on the command line.
func Finalize(cfg *Config, changed func(name string) bool) error {
	if cfg.Printer == "" {
		cfg.Printer = envOrEmpty("LPRUN_PRINTER")
	}
	if cfg.IP == "" {
		cfg.IP = envOrEmpty("LPRUN_IP")
	}
	if !changed("port") {
		if raw := envOrEmpty("LPRUN_PORT"); raw != "" {
			port, err := strconv.ParseUint(raw, 10, 16)
			if err != nil || port == 0 {
				return fmt.Errorf("invalid LPRUN_PORT %q", raw)
			}
			cfg.Port = uint16(port)
		}
	}
	if !cfg.Verbose {
		cfg.Verbose = envTruthy("LPRUN_VERBOSE")
	}
	if cfg.History == "" {
		cfg.History = envOrEmpty("LPRUN_HISTORY")
	}

	if cfg.Color && cfg.Grayscale {
		return ErrColorConflict
	}
	if cfg.Copies < 1 {
		return ErrCopies
	}
	if cfg.Port == 0 {
		return errors.New("--port must be between 1 and 65535")
	}
	if cfg.Printer != "" && cfg.IP != "" {
		return ErrTargetConflict
	}
	if cfg.IP != "" {
		if addr, err := netip.ParseAddr(cfg.IP); err != nil || !addr.Is4() {
			return appErrors.Wrap(appErrors.InvalidAddress, "ip", cfg.IP, fmt.Errorf("invalid IP %q: expected dotted IPv4", cfg.IP))
		}
	}
	docs := 0
	for _, v := range []string{cfg.Text, cfg.Image, cfg.File} {
		if v != "" {
			docs++
		}
	}
	if docs > 1 {
		return ErrDocConflict
	}
	return nil
}

func (c Config) ColorMode() domain.ColorMode {
	switch {
	case c.Color:
		return domain.ColorFull
	case c.Grayscale:
		return domain.ColorGrayscale
	default:
		return domain.ColorAuto
	}
}

func (c Config) Document() domain.Document {
	return domain.Document{
		Text:      c.Text,
		ImagePath: c.Image,
		FilePath:  c.File,
		Color:     c.ColorMode(),
	}
}

// Target returns the explicitly configured printer, or the zero Target
// when discovery has to find one.
func (c Config) Target() domain.Target {
	switch {
	case c.Printer != "":
		return domain.NewSpoolerTarget(c.Printer)
	case c.IP != "":
		return domain.NewNetworkTarget(c.IP, c.Port)
	default:
		return domain.Target{}
	}
}

func envOrEmpty(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envTruthy(key string) bool {
	val := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	return val == "1" || val == "true" || val == "yes" || val == "y"
}
