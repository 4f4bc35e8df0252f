package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/arffkit/internal/analysis"
	cfgpkg "github.com/KaramelBytes/arffkit/internal/config"
	"github.com/KaramelBytes/arffkit/internal/logging"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set arffkit configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "id_attribute: %s\n", c.IDAttribute)
		fmt.Fprintf(out, "class_attribute: %s\n", c.ClassAttribute)
		fmt.Fprintf(out, "positive_label: %s\n", c.PositiveLabel)
		fmt.Fprintf(out, "negative_label: %s\n", c.NegativeLabel)
		fmt.Fprintf(out, "missing_token: %s\n", c.MissingToken)
		fmt.Fprintf(out, "tracked_attributes: %s\n", strings.Join(c.TrackedAttributes, ","))
		fmt.Fprintf(out, "consolidate: %s\n", c.Consolidate)
		fmt.Fprintf(out, "log_level: %s\n", c.LogLevel)
		fmt.Fprintf(out, "log_format: %s\n", c.LogFormat)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := config()
		if err != nil {
			return err
		}
		switch key {
		case "id_attribute":
			c.IDAttribute = val
		case "class_attribute":
			c.ClassAttribute = val
		case "positive_label":
			c.PositiveLabel = val
		case "negative_label":
			c.NegativeLabel = val
		case "missing_token":
			if val == "" {
				return fmt.Errorf("missing_token must not be empty")
			}
			c.MissingToken = val
		case "tracked_attributes":
			var names []string
			for _, n := range strings.Split(val, ",") {
				if n = strings.TrimSpace(n); n != "" {
					names = append(names, n)
				}
			}
			c.TrackedAttributes = names
		case "consolidate":
			pol, err := analysis.ParsePolicy(val)
			if err != nil {
				return err
			}
			c.Consolidate = string(pol)
		case "log_level":
			if _, err := logging.ParseLevel(val); err != nil {
				return err
			}
			c.LogLevel = val
		case "log_format":
			switch val {
			case "text", "json":
				c.LogFormat = val
			default:
				return fmt.Errorf("invalid log_format: %s (use text or json)", val)
			}
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
