package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var nickname string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "chat-client",
		Short: "Terminal client for the online-chat server",
		Run: func(cmd *cobra.Command, args []string) {
			runClient()
		},
	}

	cobra.OnInitialize(loadConfig)

	rootCmd.Flags().StringVarP(&nickname, "nickname", "n", "", "Display name to join the room with (required)")
	rootCmd.MarkFlagRequired("nickname")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loadConfig() {
	viper.AddConfigPath("./configs")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	viper.SetDefault("server.url", "ws://localhost:8080/ws")
	viper.SetDefault("assistant.name", "川小农")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using defaults")
	}
}

func runClient() {
	client := NewClient(viper.GetString("assistant.name"))
	if err := client.Connect(viper.GetString("server.url"), nickname); err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	client.HandleStdin()
}
