package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"leverbox/internal/apparatus/domain"
	"leverbox/internal/apparatus/gesture"
	"leverbox/internal/apparatus/hardware"
	"leverbox/internal/apparatus/input"
	"leverbox/internal/apparatus/task"
	"leverbox/internal/logger"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid configuration")

const (
	BackendGPIO      = "gpio"
	BackendSimulated = "simulated"

	SinkLog  = "log"
	SinkMQTT = "mqtt"
)

// NewFlagSet declares the command line flags that override the config file.
func NewFlagSet(name string) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.String("config", "", "path to the box config file")
	flags.String("role", "", "box role: training, master or slave")
	flags.String("channel", "", "pair channel shared by master and slave")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	return flags
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("general.log_level", "info")
	v.SetDefault("general.log_max_size_mb", 10)
	v.SetDefault("general.log_max_backups", 3)

	v.SetDefault("box.role", "training")
	v.SetDefault("box.channel", "76")

	v.SetDefault("timing.lever_debounce", 100*time.Millisecond)
	v.SetDefault("timing.remote_debounce", 100*time.Millisecond)
	v.SetDefault("timing.synch_window", 5*time.Second)
	v.SetDefault("timing.inter_trial_interval", 5*time.Second)
	v.SetDefault("timing.long_timeout", 120*time.Second)
	v.SetDefault("timing.tick", time.Millisecond)

	v.SetDefault("gesture.long_press", 500*time.Millisecond)
	v.SetDefault("gesture.gap", 500*time.Millisecond)

	v.SetDefault("goals.training_one", 1)
	v.SetDefault("goals.training_two_min", 2)
	v.SetDefault("goals.training_two_max", 6)
	v.SetDefault("goals.paired_one", 1)
	v.SetDefault("goals.paired_two", 3)
	v.SetDefault("goals.paired_three", 6)
	v.SetDefault("goals.synch_pull_max", 12)
	v.SetDefault("goals.each_pull_timeout", false)

	v.SetDefault("reward.standard_amount", 1)
	v.SetDefault("reward.dispense_unit", 300*time.Millisecond)
	v.SetDefault("reward.lever_lock_actuation", 2*time.Second)

	v.SetDefault("radio.max_attempts", 5)
	v.SetDefault("radio.publish_timeout", 15*time.Millisecond)

	v.SetDefault("mqtt.enabled", false)
	v.SetDefault("mqtt.broker", "tcp://localhost:1883")

	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.folder", 1)
	v.SetDefault("audio.sink", SinkLog)

	gpio := hardware.DefaultGPIOConfig()
	v.SetDefault("hardware.backend", BackendSimulated)
	v.SetDefault("hardware.pins.lever_up", gpio.Pins.LeverUp)
	v.SetDefault("hardware.pins.lever_down", gpio.Pins.LeverDown)
	v.SetDefault("hardware.pins.remote", gpio.Pins.Remote)
	v.SetDefault("hardware.pins.dispenser", gpio.Pins.Dispenser)
	v.SetDefault("hardware.pins.lock_open", gpio.Pins.LockOpen)
	v.SetDefault("hardware.pins.lock_close", gpio.Pins.LockClose)
	v.SetDefault("hardware.lever_active_level", gpio.LeverActiveLevel)
	v.SetDefault("hardware.remote_active_level", gpio.RemoteActiveLevel)
	v.SetDefault("hardware.output_active_low", gpio.OutputActiveLow)

	v.SetDefault("http.enabled", true)
	v.SetDefault("http.addr", ":3000")

	v.SetDefault("journal.record_state_changes", false)
}

// LoadConfig reads box.yaml from the --config path, ./config or /config. A
// missing file is not an error: defaults and LEVERBOX_* variables apply.
func LoadConfig(flags *pflag.FlagSet) (AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("leverbox")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if flags != nil {
		for key, flag := range map[string]string{
			"box.role":          "role",
			"box.channel":       "channel",
			"general.log_level": "log-level",
		} {
			if f := flags.Lookup(flag); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return AppConfig{}, fmt.Errorf("binding flag %s: %w", flag, err)
				}
			}
		}
	}

	path := ""
	if flags != nil {
		path, _ = flags.GetString("config")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("box")
		v.AddConfigPath("config")
		v.AddConfigPath("/config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return AppConfig{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return AppConfig{
		General: GeneralConfig{
			LogLevel:      v.GetString("general.log_level"),
			LogFile:       v.GetString("general.log_file"),
			LogMaxSizeMB:  v.GetInt("general.log_max_size_mb"),
			LogMaxBackups: v.GetInt("general.log_max_backups"),
		},
		Box: BoxConfig{
			Role:    v.GetString("box.role"),
			Channel: v.GetString("box.channel"),
		},
		Timing: TimingConfig{
			LeverDebounce:      v.GetDuration("timing.lever_debounce"),
			RemoteDebounce:     v.GetDuration("timing.remote_debounce"),
			SynchWindow:        v.GetDuration("timing.synch_window"),
			InterTrialInterval: v.GetDuration("timing.inter_trial_interval"),
			LongTimeout:        v.GetDuration("timing.long_timeout"),
			Tick:               v.GetDuration("timing.tick"),
		},
		Gesture: GestureConfig{
			LongPress: v.GetDuration("gesture.long_press"),
			Gap:       v.GetDuration("gesture.gap"),
		},
		Goals: GoalsConfig{
			TrainingOne:     v.GetInt("goals.training_one"),
			TrainingTwoMin:  v.GetInt("goals.training_two_min"),
			TrainingTwoMax:  v.GetInt("goals.training_two_max"),
			PairedOne:       v.GetInt("goals.paired_one"),
			PairedTwo:       v.GetInt("goals.paired_two"),
			PairedThree:     v.GetInt("goals.paired_three"),
			SynchPullMax:    v.GetInt("goals.synch_pull_max"),
			EachPullTimeout: v.GetBool("goals.each_pull_timeout"),
		},
		Reward: RewardConfig{
			StandardAmount:     v.GetInt("reward.standard_amount"),
			DispenseUnit:       v.GetDuration("reward.dispense_unit"),
			LeverLockActuation: v.GetDuration("reward.lever_lock_actuation"),
		},
		Radio: RadioConfig{
			MaxAttempts:    v.GetInt("radio.max_attempts"),
			PublishTimeout: v.GetDuration("radio.publish_timeout"),
		},
		MQTT: MQTTConfig{
			Enabled:  v.GetBool("mqtt.enabled"),
			Broker:   v.GetString("mqtt.broker"),
			ClientID: v.GetString("mqtt.client_id"),
			Username: v.GetString("mqtt.username"),
			Password: v.GetString("mqtt.password"),
		},
		Audio: AudioConfig{
			Enabled: v.GetBool("audio.enabled"),
			Folder:  v.GetInt("audio.folder"),
			Sink:    v.GetString("audio.sink"),
		},
		Hardware: HardwareConfig{
			Backend: v.GetString("hardware.backend"),
			Pins: hardware.Pins{
				LeverUp:   v.GetUint("hardware.pins.lever_up"),
				LeverDown: v.GetUint("hardware.pins.lever_down"),
				Remote:    v.GetUint("hardware.pins.remote"),
				Dispenser: v.GetUint("hardware.pins.dispenser"),
				LockOpen:  v.GetUint("hardware.pins.lock_open"),
				LockClose: v.GetUint("hardware.pins.lock_close"),
			},
			LeverActiveLevel:  v.GetUint("hardware.lever_active_level"),
			RemoteActiveLevel: v.GetUint("hardware.remote_active_level"),
			OutputActiveLow:   v.GetBool("hardware.output_active_low"),
		},
		HTTP: HTTPConfig{
			Enabled: v.GetBool("http.enabled"),
			Addr:    v.GetString("http.addr"),
		},
		Journal: JournalConfig{
			RecordStateChanges: v.GetBool("journal.record_state_changes"),
		},
	}, nil
}

type AppConfig struct {
	General  GeneralConfig
	Box      BoxConfig
	Timing   TimingConfig
	Gesture  GestureConfig
	Goals    GoalsConfig
	Reward   RewardConfig
	Radio    RadioConfig
	MQTT     MQTTConfig
	Audio    AudioConfig
	Hardware HardwareConfig
	HTTP     HTTPConfig
	Journal  JournalConfig
}

type GeneralConfig struct {
	LogLevel      string
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
}

type BoxConfig struct {
	Role    string
	Channel string
}

type TimingConfig struct {
	LeverDebounce      time.Duration
	RemoteDebounce     time.Duration
	SynchWindow        time.Duration
	InterTrialInterval time.Duration
	LongTimeout        time.Duration
	Tick               time.Duration
}

type GestureConfig struct {
	LongPress time.Duration
	Gap       time.Duration
}

type GoalsConfig struct {
	TrainingOne     int
	TrainingTwoMin  int
	TrainingTwoMax  int
	PairedOne       int
	PairedTwo       int
	PairedThree     int
	SynchPullMax    int
	EachPullTimeout bool
}

type RewardConfig struct {
	StandardAmount     int
	DispenseUnit       time.Duration
	LeverLockActuation time.Duration
}

type RadioConfig struct {
	MaxAttempts    int
	PublishTimeout time.Duration
}

type MQTTConfig struct {
	Enabled  bool
	Broker   string
	ClientID string
	Username string
	Password string
}

type AudioConfig struct {
	Enabled bool
	Folder  int
	Sink    string
}

type HardwareConfig struct {
	Backend           string
	Pins              hardware.Pins
	LeverActiveLevel  uint
	RemoteActiveLevel uint
	OutputActiveLow   bool
}

type HTTPConfig struct {
	Enabled bool
	Addr    string
}

type JournalConfig struct {
	RecordStateChanges bool
}

// Role parses the configured box role.
func (c AppConfig) Role() (domain.Role, error) {
	return domain.ParseRole(c.Box.Role)
}

// TaskSettings maps the config onto engine settings. The role must parse.
func (c AppConfig) TaskSettings() (task.Settings, error) {
	role, err := c.Role()
	if err != nil {
		return task.Settings{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return task.Settings{
		Role:               role,
		SynchWindow:        c.Timing.SynchWindow,
		InterTrialInterval: c.Timing.InterTrialInterval,
		LongTimeout:        c.Timing.LongTimeout,
		Goals: task.Goals{
			TrainingOne:    c.Goals.TrainingOne,
			TrainingTwoMin: c.Goals.TrainingTwoMin,
			TrainingTwoMax: c.Goals.TrainingTwoMax,
			PairedOne:      c.Goals.PairedOne,
			PairedTwo:      c.Goals.PairedTwo,
			PairedThree:    c.Goals.PairedThree,
		},
		SynchPullMax:    c.Goals.SynchPullMax,
		EachPullTimeout: c.Goals.EachPullTimeout,
		RewardAmount:    c.Reward.StandardAmount,
	}, nil
}

func (c AppConfig) InputWindows() input.Windows {
	return input.Windows{
		Lever:  c.Timing.LeverDebounce,
		Remote: c.Timing.RemoteDebounce,
	}
}

func (c AppConfig) GestureTiming() gesture.Timing {
	return gesture.Timing{
		LongPress: c.Gesture.LongPress,
		Gap:       c.Gesture.Gap,
	}
}

func (c AppConfig) HardwareTiming() hardware.Timing {
	return hardware.Timing{
		DispenseUnit:       c.Reward.DispenseUnit,
		LeverLockActuation: c.Reward.LeverLockActuation,
	}
}

func (c AppConfig) GPIOConfig() hardware.GPIOConfig {
	return hardware.GPIOConfig{
		Pins:              c.Hardware.Pins,
		LeverActiveLevel:  c.Hardware.LeverActiveLevel,
		RemoteActiveLevel: c.Hardware.RemoteActiveLevel,
		OutputActiveLow:   c.Hardware.OutputActiveLow,
	}
}

func (c AppConfig) LoggerOptions() logger.Options {
	return logger.Options{
		Level:      c.General.LogLevel,
		File:       c.General.LogFile,
		MaxSizeMB:  c.General.LogMaxSizeMB,
		MaxBackups: c.General.LogMaxBackups,
	}
}

// Validate reports every problem found, each wrapping ErrInvalidConfig. A
// box must not start its control loop with an invalid config.
func (c AppConfig) Validate() error {
	var errs []error
	fail := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
	}

	settings, err := c.TaskSettings()
	if err != nil {
		errs = append(errs, err)
	} else if err := settings.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidConfig, err))
	}

	if c.Timing.LeverDebounce <= 0 {
		fail("lever debounce must be positive, got %s", c.Timing.LeverDebounce)
	}
	if c.Timing.RemoteDebounce <= 0 {
		fail("remote debounce must be positive, got %s", c.Timing.RemoteDebounce)
	}
	if c.Timing.Tick <= 0 {
		fail("tick must be positive, got %s", c.Timing.Tick)
	}
	if c.Gesture.LongPress <= 0 || c.Gesture.Gap <= 0 {
		fail("gesture long press and gap must be positive, got %s and %s", c.Gesture.LongPress, c.Gesture.Gap)
	}
	if c.Reward.DispenseUnit <= 0 {
		fail("dispense unit must be positive, got %s", c.Reward.DispenseUnit)
	}
	if c.Reward.LeverLockActuation <= 0 {
		fail("lever lock actuation must be positive, got %s", c.Reward.LeverLockActuation)
	}
	if c.Radio.MaxAttempts <= 0 {
		fail("radio max attempts must be positive, got %d", c.Radio.MaxAttempts)
	}
	if c.Radio.PublishTimeout <= 0 {
		fail("radio publish timeout must be positive, got %s", c.Radio.PublishTimeout)
	} else if c.Radio.MaxAttempts > 0 {
		// a failed send blocks the control loop for every attempt
		worstSend := time.Duration(c.Radio.MaxAttempts) * c.Radio.PublishTimeout
		if window := min(c.Timing.LeverDebounce, c.Timing.RemoteDebounce); worstSend >= window {
			fail("radio worst-case send %s (%d x %s) must stay below the debounce window %s",
				worstSend, c.Radio.MaxAttempts, c.Radio.PublishTimeout, window)
		}
	}
	if c.Audio.Folder < 1 || c.Audio.Folder > 99 {
		fail("audio folder must be within 1..99, got %d", c.Audio.Folder)
	}

	switch c.Audio.Sink {
	case SinkLog:
	case SinkMQTT:
		if !c.MQTT.Enabled {
			fail("audio sink %q requires mqtt", SinkMQTT)
		}
	default:
		fail("unknown audio sink %q", c.Audio.Sink)
	}

	switch c.Hardware.Backend {
	case BackendGPIO, BackendSimulated:
	default:
		fail("unknown hardware backend %q", c.Hardware.Backend)
	}

	if settings.Role.Paired() {
		if !c.MQTT.Enabled {
			fail("role %s requires mqtt to reach its peer", settings.Role)
		}
		if c.Box.Channel == "" {
			fail("role %s requires a channel", settings.Role)
		}
	}
	if c.MQTT.Enabled && c.MQTT.Broker == "" {
		fail("mqtt broker is required when mqtt is enabled")
	}

	return errors.Join(errs...)
}
