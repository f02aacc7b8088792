package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	rangefilter "github.com/tphakala/go-sar-rangefilter"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app carries the state shared by all subcommands of one invocation.
type app struct {
	v          *viper.Viper
	configFile string
	logger     *zap.Logger
}

// filterSettings are the filter parameters as read from flags, config file
// and environment.
type filterSettings struct {
	Sensor            string  `mapstructure:"sensor"`
	NLMean            int     `mapstructure:"nlmean"`
	SNRThreshold      float64 `mapstructure:"snr-threshold"`
	RSR               float64 `mapstructure:"rsr"`
	RBW               float64 `mapstructure:"rbw"`
	Alpha             float64 `mapstructure:"alpha"`
	Oversample        int     `mapstructure:"ovs"`
	WeightCorrelation bool    `mapstructure:"weight-correlation"`
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "rangefilter",
		Short: "Adaptive range spectral filtering for InSAR block pairs",
		Long: `Filter co-registered master and slave SLC blocks around their common
range band. The local spectral shift is estimated from the interferogram
power spectrum, averaged over nlmean lines.

Filter parameters start from a sensor preset and can be overridden by
flags, a YAML config file (--config) or RANGEFILTER_* environment
variables, e.g. RANGEFILTER_SNR_THRESHOLD=3.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (YAML)")
	flags.BoolP("verbose", "v", false, "verbose output (debug logging)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")

	flags.String("sensor", defaultSensor, "sensor preset (ers, envisat, custom)")
	flags.Int("nlmean", defaultNLMean, "number of lines in the walking mean (odd)")
	flags.Float64("snr-threshold", defaultThreshold, "SNR below which the last accepted shift is reused")
	flags.Float64("rsr", 0, "range sampling rate in Hz (default from sensor)")
	flags.Float64("rbw", 0, "range bandwidth in Hz (default from sensor)")
	flags.Float64("alpha", defaultAlpha, "Hamming alpha, >= 0.9999 for rectangular filtering")
	flags.Int("ovs", defaultOversample, "range oversampling factor for the shift estimate (power of 2)")
	flags.Bool("weight-correlation", false, "correct the power spectrum for correlation bias")

	root.AddCommand(newFilterCmd(a), newWindowCmd(a))
	return root
}

// initialize reads the config file and environment, binds the parsed flags
// and creates the logger.
func (a *app) initialize(cmd *cobra.Command) error {
	if a.configFile != "" {
		a.v.SetConfigFile(a.configFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
	}

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	setDefaults(a.v)

	if err := bindFlags(cmd, a.v); err != nil {
		return err
	}

	logger, err := newLogger(cmd.ErrOrStderr(), a.v.GetString("log-level"), a.v.GetBool("verbose"))
	if err != nil {
		return err
	}
	a.logger = logger

	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug("using config file", zap.String("path", used))
	}
	return nil
}

// bindFlags binds each cobra flag to its viper key of the same name.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var lastErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err := v.BindPFlag(f.Name, f); err != nil {
			lastErr = err
		}
	})
	return lastErr
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("verbose", false)
	v.SetDefault("log-level", "info")

	v.SetDefault("sensor", defaultSensor)
	v.SetDefault("nlmean", defaultNLMean)
	v.SetDefault("snr-threshold", defaultThreshold)
	v.SetDefault("alpha", defaultAlpha)
	v.SetDefault("ovs", defaultOversample)
	v.SetDefault("weight-correlation", false)

	v.SetDefault("format", formatCpxFloat32)
	v.SetDefault("report", reportYAML)
}

func newLogger(w io.Writer, levelName string, verbose bool) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(levelName)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", levelName, err)
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	return zap.New(core), nil
}

// settings decodes the filter parameters.
func (a *app) settings() (filterSettings, error) {
	var s filterSettings
	if err := a.v.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("decoding filter settings: %w", err)
	}
	return s, nil
}

// config builds the library configuration: the sensor preset with every
// explicitly given parameter applied on top.
func (s filterSettings) config(logger *zap.Logger) (*rangefilter.Config, error) {
	preset, err := rangefilter.ParseSensor(s.Sensor)
	if err != nil {
		return nil, err
	}

	cfg := rangefilter.GetPresetConfig(preset)
	cfg.NLMean = s.NLMean
	cfg.SNRThreshold = s.SNRThreshold
	cfg.AlphaHamming = s.Alpha
	cfg.OversampleFactor = s.Oversample
	cfg.WeightCorrelation = s.WeightCorrelation
	if s.RSR > 0 {
		cfg.RSR = s.RSR
	}
	if s.RBW > 0 {
		cfg.RBW = s.RBW
	}
	cfg.Logger = logger

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
