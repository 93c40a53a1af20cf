// miropti — Mir optimizer exploration tool.
//
// Reads a file containing a Mir object (or a bare code block) and
// applies optimizer steps to it, chosen interactively from stdin. In
// non-interactive mode a fixed steps string is applied once instead.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/mirvm/mir/driver"
)

const (
	appName            = "miropti"
	defaultHistoryFile = ".miropti_history"
)

// config is the optional YAML config file. Everything in it has a
// usable default; the file only tweaks presentation.
type config struct {
	Columns     int    `yaml:"columns"`
	Color       string `yaml:"color"` // auto | always | never
	HistoryFile string `yaml:"history_file"`
}

func defaultConfig() config {
	return config{Columns: 4, Color: "auto"}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("cannot read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("cannot parse config %s: %w", path, err)
	}
	if cfg.Columns < 1 {
		cfg.Columns = 4
	}
	return cfg, nil
}

func (c config) colorEnabled() bool {
	switch c.Color {
	case "always":
		return true
	case "never":
		return false
	default:
		return isatty.IsTerminal(os.Stderr.Fd())
	}
}

var errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		steps          string
		objectPath     string
		nonInteractive bool
		configPath     string
	)
	pflag.StringVar(&steps, "steps", "", "steps to execute non-interactively")
	pflag.StringVar(&objectPath, "object", "", "dotted path to an object in the input")
	pflag.BoolVarP(&nonInteractive, "non-interactive", "n", false, "stop after executing the provided steps")
	pflag.StringVar(&configPath, "config", "", "YAML config file (columns, color, history_file)")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s, Mir optimizer exploration tool.\n\n", appName)
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <file>\n\n", appName)
		fmt.Fprintf(os.Stderr, "Reads <file> containing a Mir object and applies optimizer steps to it,\n")
		fmt.Fprintf(os.Stderr, "interactively read from stdin. In non-interactive mode a list of steps\n")
		fmt.Fprintf(os.Stderr, "has to be provided. If <file> is -, Mir code is read from stdin and run\n")
		fmt.Fprintf(os.Stderr, "non-interactively. --object selects a dotted path to a sub-object.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if pflag.NArg() != 1 {
		pflag.Usage()
		return 2
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	inputFile := pflag.Arg(0)
	var src []byte
	if inputFile == "-" {
		nonInteractive = true
		src, err = io.ReadAll(os.Stdin)
	} else {
		src, err = os.ReadFile(inputFile)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, inputFile, err)
		return 1
	}

	if nonInteractive && steps == "" {
		pflag.Usage()
		return 2
	}

	fail := func(err error) int {
		msg := err.Error()
		if cfg.colorEnabled() {
			msg = errStyle.Render(msg)
		}
		fmt.Fprintln(os.Stderr, msg)
		return 1
	}

	session := driver.NewSession(driver.Config{Columns: cfg.Columns})
	if err := session.Parse(string(src), inputFile, objectPath); err != nil {
		return fail(err)
	}

	if !nonInteractive {
		fmt.Println(session.Render())
	}

	if steps != "" {
		if err := session.RunBatch(steps); err != nil {
			return fail(err)
		}
		if nonInteractive {
			fmt.Println(session.Render())
			return 0
		}
		fmt.Println("----------------------")
		fmt.Println(session.Render())
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := cfg.HistoryFile
	if histPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			histPath = filepath.Join(home, defaultHistoryFile)
		}
	}
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	if err := session.RunInteractive(&linerPrompter{ln: ln}); err != nil {
		return fail(err)
	}
	return 0
}

// linerPrompter feeds operator choices from the line editor. An aborted
// prompt (Ctrl+C) quits the session the same way end-of-input does.
type linerPrompter struct {
	ln *liner.State
}

func (p *linerPrompter) ReadChoice(prompt string) (string, error) {
	line, err := p.ln.Prompt(prompt)
	if err == liner.ErrPromptAborted {
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	if line != "" {
		p.ln.AppendHistory(line)
	}
	return line, nil
}
