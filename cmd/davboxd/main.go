package main

import (
	"fmt"
	"os"

	"github.com/davbox/davboxd/config"
	"github.com/davbox/davboxd/daemon"
	"github.com/spf13/cobra"
)

var version = "dev"

var flagConfigSource string

func main() {
	rootCmd := &cobra.Command{
		Use:   "davboxd",
		Short: "davboxd exposes object storage buckets over WebDAV",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
	rootCmd.PersistentFlags().StringVar(&flagConfigSource, "conf", "",
		`configuration source, "file:/etc/davboxd.conf" or "etcd:http://localhost:2379"`)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve() error {
	sources, err := daemon.GetConfigSources(flagConfigSource)
	if err != nil {
		return err
	}

	conf := config.New(sources)
	if err := conf.LoadDirectives(); err != nil {
		return err
	}

	d := daemon.New(conf)
	stopChan := d.TrapSignals()
	d.Start()
	return <-stopChan
}
