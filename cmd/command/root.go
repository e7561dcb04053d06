// Package command содержит корневую и служебные команды сервиса парковки.
//
//	./parking-service [-c config.toml]            # запуск HTTP сервера
//	./parking-service migrate up|version          # миграции PostgreSQL
//	./parking-service token --user <uuid> --role admin
package command

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const (
	defaultConfigPath = "config.toml"
	configPathEnv     = "CONFIG_FILE"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "parking-service",
	Short: "Campus parking reservation service",
	Long: `Campus parking reservation service: buildings, spots and time-window
bookings with conflict-free commit, a status lifecycle driven by
entry/exit scans, and a background sweeper for no-shows and overstays.`,
	SilenceUsage: true,
	RunE:         runServe,
}

// Execute разбирает аргументы и запускает выбранную команду
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file path")
}

// fixConfigPath берет путь из флага, затем из CONFIG_FILE, затем по умолчанию
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv(configPathEnv); !found || cfgPath == "" {
		cfgPath = defaultConfigPath
	}
}
