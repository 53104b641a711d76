package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/san-kum/fluidview/internal/config"
	"github.com/san-kum/fluidview/internal/gui"
	"github.com/san-kum/fluidview/internal/logging"
	"github.com/san-kum/fluidview/internal/tui"
	"github.com/san-kum/fluidview/internal/viewer"
	"github.com/spf13/cobra"
)

var (
	configFile string
	logLevel   string
	logFile    string
	frameRate  int
	sceneName  string
	resolution int
	// probe
	probeKeys   string
	probeSteps  int
	probeFrame  string
	probeEnergy string
	// config init
	force bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "fluidview",
		Short:        "interactive viewer for a 2D liquid simulation",
		SilenceUsage: true,
		RunE:         runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	rootCmd.PersistentFlags().StringVar(&sceneName, "scene", "", "initial scene name")
	rootCmd.PersistentFlags().IntVar(&resolution, "resolution", config.DefaultResolution, "initial grid resolution")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "fluidview.log", "log file for the terminal viewer")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the terminal viewer",
		RunE:  runTUI,
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run the windowed viewer (needs the raylib build tag)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			opts, err := cfg.Options(logger)
			if err != nil {
				return err
			}
			return gui.Run(opts, cfg.FPS)
		},
	}

	keysCmd := &cobra.Command{
		Use:   "keys",
		Short: "list key bindings",
		RunE:  listKeys,
	}

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "list the scene table",
		RunE:  listScenes,
	}

	probeCmd := &cobra.Command{
		Use:   "probe",
		Short: "replay keys against the solver without a display",
		RunE:  runProbe,
	}
	probeCmd.Flags().StringVar(&probeKeys, "keys", "", "key presses to replay, in order")
	probeCmd.Flags().IntVar(&probeSteps, "steps", 200, "solver steps after the keys")
	probeCmd.Flags().StringVar(&probeFrame, "svg", "", "write the final frame as SVG")
	probeCmd.Flags().StringVar(&probeEnergy, "energy-svg", "", "write the kinetic energy plot as SVG")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(tuiCmd, guiCmd, keysCmd, scenesCmd, probeCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file if one is given and applies the flags
// the user set explicitly on top of it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Changed("resolution") {
		cfg.Controller.Resolution = resolution
	}
	if flags.Changed("scene") {
		idx, err := sceneIndex(cfg, sceneName)
		if err != nil {
			return nil, err
		}
		cfg.Controller.Scene = idx
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// sceneIndex finds name in the config's scene table. A built-in scene
// missing from a custom table is appended to it.
func sceneIndex(cfg *config.Config, name string) (int, error) {
	names := make([]string, len(cfg.Scenes))
	for i, s := range cfg.Scenes {
		if s.Name == name {
			return i, nil
		}
		names[i] = s.Name
	}
	if s, ok := config.GetScene(name); ok {
		cfg.Scenes = append(cfg.Scenes, s)
		return len(cfg.Scenes) - 1, nil
	}
	return 0, fmt.Errorf("unknown scene: %s (available: %v, built-in: %v)", name, names, config.ListScenes())
}

// setup loads the config and builds a logger on stderr.
func setup(cmd *cobra.Command) (*config.Config, *log.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// the alternate screen owns stdout, so the log goes to a file
	f, err := tea.LogToFile(logFile, "")
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()
	logger, err := logging.New(f, cfg.LogLevel)
	if err != nil {
		return err
	}

	opts, err := cfg.Options(logger)
	if err != nil {
		return err
	}
	m, err := tui.NewModel(opts, cfg.FPS)
	if err != nil {
		return err
	}
	return tui.Run(m)
}

func listKeys(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	km, err := cfg.KeyMap()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tDESCRIPTION")
	for a, b := range km.Controller {
		fmt.Fprintf(w, "%s\t%s\t%s\n", b.Help().Key, viewer.Action(a), b.Help().Desc)
	}
	for v, b := range km.Visibility {
		fmt.Fprintf(w, "%s\t%s\t%s\n", b.Help().Key, viewer.Visibility(v), b.Help().Desc)
	}
	return w.Flush()
}

func listScenes(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tINDEX\tNAME\tWIDTH\tHEIGHT")
	for i, s := range cfg.Scenes {
		mark := ""
		if i == cfg.Controller.Scene {
			mark = "*"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%.2f\t%.2f\n", mark, i, s.Name, s.Param0, s.Param1)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := args[0]
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
