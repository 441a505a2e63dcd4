// sfpdump reads identification and diagnostic monitoring data from SFP
// transceiver modules on a multiplexed two-wire bus bit-banged over two
// GPIO lines.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cgxeiji/sfp"
	"github.com/cgxeiji/sfp/twi/bitbang"
)

type config struct {
	SDA   string         `yaml:"sda"`
	SCL   string         `yaml:"scl"`
	Ports map[string]int `yaml:"ports"`
}

var (
	flagSDA     string
	flagSCL     string
	flagConfig  string
	flagPort    string
	flagVerbose bool

	cfg config
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "sfpdump",
		Short:         "Read identification and diagnostics from SFP transceiver modules",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadConfig(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&flagSDA, "sda", "GPIO2", "GPIO pin of the data line")
	rootCmd.PersistentFlags().StringVar(&flagSCL, "scl", "GPIO3", "GPIO pin of the clock line")
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "YAML config file with pins and named ports")
	rootCmd.PersistentFlags().StringVarP(&flagPort, "port", "p", "0", "module port index or configured port name")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log driver activity to stderr")

	rootCmd.AddCommand(infoCmd(), diagCmd(), monitorCmd(), dumpCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "sfpdump:", err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) error {
	if flagConfig != "" {
		raw, err := os.ReadFile(flagConfig)
		if err != nil {
			return err
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return fmt.Errorf("could not parse %s: %w", flagConfig, err)
		}
	}
	// Explicit flags win over the config file.
	if cfg.SDA == "" || cmd.Flags().Changed("sda") {
		cfg.SDA = flagSDA
	}
	if cfg.SCL == "" || cmd.Flags().Changed("scl") {
		cfg.SCL = flagSCL
	}
	return nil
}

func resolvePort() (int, error) {
	if n, err := strconv.Atoi(flagPort); err == nil {
		return n, nil
	}
	if n, ok := cfg.Ports[flagPort]; ok {
		return n, nil
	}
	return 0, fmt.Errorf("unknown port %q", flagPort)
}

func openDevice() (*sfp.Device, error) {
	port, err := resolvePort()
	if err != nil {
		return nil, err
	}
	bus, err := bitbang.New(cfg.SDA, cfg.SCL)
	if err != nil {
		return nil, err
	}
	return sfp.New(bus, port, sfp.WithLogger(&cliLogger{verbose: flagVerbose}))
}

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print module identification",
		RunE: func(_ *cobra.Command, _ []string) error {
			dev, err := openDevice()
			if err != nil {
				return err
			}
			fmt.Println(dev)
			return nil
		},
	}
}

func diagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diag",
		Short: "Print live readings, thresholds and raised alerts",
		RunE: func(_ *cobra.Command, _ []string) error {
			dev, err := openDevice()
			if err != nil {
				return err
			}
			r, err := dev.Diagnostics()
			if err != nil {
				return err
			}
			t, err := dev.Thresholds()
			if err != nil {
				return err
			}
			fmt.Printf("temperature: %7.3f °C   (alarm %g/%g, warning %g/%g)\n",
				r.Temperature, t.Temperature.Alarm.Low, t.Temperature.Alarm.High,
				t.Temperature.Warning.Low, t.Temperature.Warning.High)
			fmt.Printf("voltage:     %7.4f V    (alarm %g/%g, warning %g/%g)\n",
				r.Voltage, t.Voltage.Alarm.Low, t.Voltage.Alarm.High,
				t.Voltage.Warning.Low, t.Voltage.Warning.High)
			fmt.Printf("tx bias:     %7.3f mA   (alarm %g/%g, warning %g/%g)\n",
				r.BiasCurrent, t.BiasCurrent.Alarm.Low, t.BiasCurrent.Alarm.High,
				t.BiasCurrent.Warning.Low, t.BiasCurrent.Warning.High)
			fmt.Printf("tx power:    %7.4f mW   (alarm %g/%g, warning %g/%g)\n",
				r.TxPower, t.TxPower.Alarm.Low, t.TxPower.Alarm.High,
				t.TxPower.Warning.Low, t.TxPower.Warning.High)
			fmt.Printf("rx power:    %7.4f mW   (alarm %g/%g, warning %g/%g)\n",
				r.RxPower, t.RxPower.Alarm.Low, t.RxPower.Alarm.High,
				t.RxPower.Warning.Low, t.RxPower.Warning.High)
			if st, err := dev.Status(); err == nil {
				fmt.Printf("status: data ready %v, tx disabled %v, tx fault %v, rx LOS %v\n",
					st.DataReady(), st.TxDisabled(), st.TxFault(), st.RxLOS())
			}
			printAlerts(dev)
			return nil
		},
	}
}

func monitorCmd() *cobra.Command {
	var interval time.Duration
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Periodically refresh live readings and print them",
		RunE: func(_ *cobra.Command, _ []string) error {
			dev, err := openDevice()
			if err != nil {
				return err
			}
			t := time.NewTicker(interval)
			defer t.Stop()
			for {
				r, err := dev.Diagnostics()
				if err != nil {
					return err
				}
				fmt.Printf("%s  %6.2f °C  %6.4f V  %6.2f mA  tx %6.4f mW  rx %6.4f mW\n",
					time.Now().Format("15:04:05"), r.Temperature, r.Voltage,
					r.BiasCurrent, r.TxPower, r.RxPower)
				printAlerts(dev)
				<-t.C
				if err := dev.RefreshReadings(); err != nil {
					return err
				}
			}
		},
	}
	cmd.Flags().DurationVarP(&interval, "interval", "i", time.Second, "refresh interval")
	return cmd
}

func dumpCmd() *cobra.Command {
	var page string
	var offset, length int
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Hex dump a raw memory page",
		RunE: func(_ *cobra.Command, _ []string) error {
			dev, err := openDevice()
			if err != nil {
				return err
			}
			var raw []byte
			switch strings.ToLower(page) {
			case "a0", "info":
				raw, err = dev.DumpInfo(offset, length)
			case "a2", "diag":
				raw, err = dev.DumpDiag(offset, length)
			default:
				return fmt.Errorf("unknown page %q (want a0 or a2)", page)
			}
			if err != nil {
				return err
			}
			hexdump(os.Stdout, offset, raw)
			return nil
		},
	}
	cmd.Flags().StringVar(&page, "page", "a0", "memory page: a0 (info) or a2 (diag)")
	cmd.Flags().IntVar(&offset, "offset", 0, "first byte to read")
	cmd.Flags().IntVar(&length, "length", 256, "number of bytes to read")
	return cmd
}

func printAlerts(dev *sfp.Device) {
	alerts, err := dev.Alerts()
	if err != nil {
		return
	}
	for _, a := range alerts {
		fmt.Printf("  ! %s\n", a)
	}
}

func hexdump(w *os.File, offset int, raw []byte) {
	for i := 0; i < len(raw); i += 16 {
		end := i + 16
		if end > len(raw) {
			end = len(raw)
		}
		row := raw[i:end]
		fmt.Fprintf(w, "%04x  ", offset+i)
		for j := 0; j < 16; j++ {
			if j < len(row) {
				fmt.Fprintf(w, "%02x ", row[j])
			} else {
				fmt.Fprint(w, "   ")
			}
			if j == 7 {
				fmt.Fprint(w, " ")
			}
		}
		fmt.Fprint(w, " |")
		for _, b := range row {
			if b < 0x20 || b > 0x7e {
				b = '.'
			}
			fmt.Fprintf(w, "%c", b)
		}
		fmt.Fprintln(w, "|")
	}
}

// cliLogger backs the driver's log sink with the standard logger. Debug and
// info output is gated behind --verbose; warnings and alarms always print.
type cliLogger struct {
	verbose bool
}

func (c *cliLogger) Debugf(format string, args ...interface{}) {
	if c.verbose {
		log.Printf("debug: "+format, args...)
	}
}

func (c *cliLogger) Infof(format string, args ...interface{}) {
	if c.verbose {
		log.Printf(format, args...)
	}
}

func (c *cliLogger) Warnf(format string, args ...interface{}) {
	log.Printf("warning: "+format, args...)
}

func (c *cliLogger) Errorf(format string, args ...interface{}) {
	log.Printf("alarm: "+format, args...)
}
