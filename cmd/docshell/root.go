package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eringen/docshell"
	"github.com/eringen/docshell/logging"
)

// cli carries the state shared by all subcommands.
type cli struct {
	cfgFile   string
	logLevel  string
	logFile   string
	logConfig string

	v         *viper.Viper
	site      docshell.SiteConfig
	configDir string
	closeLogs func() error
}

func newRootCmd() *cobra.Command {
	return (&cli{}).rootCmd()
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "docshell",
		Short: "Documentation site shell: branding, navigation and theme resolution",
		Long: `docshell wraps pre-rendered documentation pages in a themed shell.
The theme is resolved from ordered configuration fragments; later fragments
override earlier ones key by key.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" || cmd.Name() == "new" {
				return nil
			}
			return c.initialize(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if c.closeLogs != nil {
				return c.closeLogs()
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.cfgFile, "config", "", "config file (default is ./docshell.yaml)")
	pf.StringVar(&c.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	pf.StringVar(&c.logFile, "log-file", "", "also write logs to this rotating file")
	pf.StringVar(&c.logConfig, "log-config", "", "zeroconfig YAML file, overrides the other log flags")

	root.AddCommand(
		newBuildCmd(c),
		newServeCmd(c),
		newCheckCmd(c),
		newNewCmd(),
		newVersionCmd(),
	)
	return root
}

func (c *cli) initialize(cmd *cobra.Command) error {
	v := viper.New()

	v.SetDefault("name", "Notes")
	v.SetDefault("url", "http://localhost:3000")
	v.SetDefault("addr", ":3000")
	v.SetDefault("base_path", "/notes")
	v.SetDefault("asset_prefix", "")
	v.SetDefault("content_dir", "pages")
	v.SetDefault("output_dir", "out")
	v.SetDefault("edit_path_prefix", "pages/")
	v.SetDefault("fragments", []string{})
	v.SetDefault("disable_analytics", false)
	v.SetDefault("analytics_id", "G-YJNFH344GM")
	v.SetDefault("page_cache_ttl", "1m")
	v.SetDefault("watch_debounce", "200ms")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.config", "")

	if c.cfgFile != "" {
		v.SetConfigFile(c.cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("docshell")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("DOCSHELL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, flag := range map[string]string{
		"log.level":  "log-level",
		"log.file":   "log-file",
		"log.config": "log-config",
	} {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return err
		}
	}
	// Only serve has --watch; its default applies when neither the config
	// nor the environment sets watch.
	if f := cmd.Flags().Lookup("watch"); f != nil {
		if err := v.BindPFlag("watch", f); err != nil {
			return err
		}
	}

	readErr := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if readErr != nil && !errors.As(readErr, &notFound) {
		return fmt.Errorf("failed to read config file: %w", readErr)
	}

	closeLogs, err := logging.Setup(logging.Options{
		Level:      v.GetString("log.level"),
		File:       v.GetString("log.file"),
		ConfigPath: v.GetString("log.config"),
	})
	if err != nil {
		return err
	}
	c.closeLogs = closeLogs

	if readErr != nil {
		log.Info().Msg("no config file found; using defaults and environment")
	} else {
		log.Info().Str("file", v.ConfigFileUsed()).Msg("using config file")
	}

	if err := v.Unmarshal(&c.site); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if used := v.ConfigFileUsed(); used != "" {
		c.configDir = filepath.Dir(used)
		relativeTo(c.configDir, &c.site)
	}
	c.v = v
	return nil
}

// relativeTo anchors relative paths from the config file at its directory.
func relativeTo(dir string, cfg *docshell.SiteConfig) {
	anchor := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	cfg.ContentDir = anchor(cfg.ContentDir)
	cfg.OutputDir = anchor(cfg.OutputDir)
	for i, f := range cfg.Fragments {
		cfg.Fragments[i] = anchor(f)
	}
}

func (c *cli) app() *docshell.App {
	opts := []docshell.Option{
		docshell.WithFragments(siteFragment()),
		docshell.WithLogos(siteLogos()),
	}
	if c.configDir != "" {
		opts = append(opts, docshell.WithProtectedDirs(c.configDir))
	}
	return docshell.New(c.site, opts...)
}
