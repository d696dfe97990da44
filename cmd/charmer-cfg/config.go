package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dial-a-charmer/charmer/internal/config"
	"github.com/dial-a-charmer/charmer/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the charmer-cfg configuration file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		printer.Println(path)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.CreateDefaultConfig()
		if err != nil {
			return err
		}
		printer.PrintSuccess("Configuration created", ui.F("Path", path))
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if printer.JSON() {
			return printer.PrintJSON(registry)
		}
		data, err := yaml.Marshal(registry)
		if err != nil {
			return err
		}
		printer.Print(string(data))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configPathCmd, configInitCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}
