package main

import (
	"os"

	"github.com/rostart/rostart/internal/log"
)

var Version = "dev"

func init() {
	rootCmd.Flags().String("lang", "", "Initial language code (en, tr, de)")
	rootCmd.Flags().Bool("dark", false, "Start in dark mode")
	rootCmd.Flags().String("host", "", "Host mode: local, socket or both")
	rootCmd.Flags().Bool("no-socket", false, "Do not start the socket API")
	rootCmd.PersistentFlags().String("config", "", "Path to config.toml")

	notifyCmd.Flags().String("socket", "", "Socket path of a running wizard")
	listenCmd.Flags().String("socket", "", "Socket path of a running wizard")

	rootCmd.AddCommand(versionCmd, specsCmd, notifyCmd, listenCmd, dispatchCmd)
}

func main() {
	if os.Geteuid() == 0 {
		log.Fatal("This program should not be run as root. Exiting.")
	}

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
