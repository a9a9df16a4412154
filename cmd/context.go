package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/solvenote/solvenote"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configFileName = "solvenote"
	defaultAddress = "http://localhost:4020"
)

var contextCommand = &cobra.Command{
	Use:   "context",
	Short: "context commands",
}

func init() {
	contextCommand.AddCommand(setContextCommand())
	contextCommand.AddCommand(currentContextCommand())
	contextCommand.AddCommand(resetContextCommand())
}

// Context points the CLI at a server.
type Context struct {
	Address string `json:"address"`
	Token   string `json:"token"`
}

// saves the context info to the config file in ./.tmp
func setContextCommand() *cobra.Command {
	var address string
	var token string
	command := &cobra.Command{
		Use:   "set",
		Short: "set context",
		Run: func(cmd *cobra.Command, args []string) {
			if address == "" {
				color.Red(`missing: --address`)
				return
			}

			writeContext(Context{
				Address: address,
				Token:   token,
			})
			fmt.Println("context saved")
		},
	}

	command.Flags().StringVarP(&address, "address", "a", "", "server address")
	command.Flags().StringVarP(&token, "token", "t", "", "token")

	return command
}

func currentContextCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "current",
		Short: "current context",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := readContext()
			if ctx.Address == "" {
				ctx.Address = defaultAddress
			}
			printField("Address", ctx.Address)
		},
	}

	return command
}

func resetContextCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "reset",
		Short: "reset context",
		Run: func(cmd *cobra.Command, args []string) {
			writeContext(Context{})
			fmt.Println("context reset")
		},
	}

	return command
}

func writeContext(context Context) {
	if err := os.MkdirAll("./.tmp", os.ModePerm); err != nil {
		fmt.Println("error creating config dir: ", err)
		return
	}

	viper.SetConfigName(configFileName)
	viper.AddConfigPath("./.tmp")
	viper.SetConfigType("yml")
	viper.Set("context", context)

	if err := viper.WriteConfigAs("./.tmp/" + configFileName + ".yml"); err != nil {
		fmt.Println("error writing config file: ", err)
	}
}

func readContext() Context {
	var ctx Context

	// create file if it doesn't exist
	if _, err := os.Stat("./.tmp/" + configFileName + ".yml"); os.IsNotExist(err) {
		return ctx
	}

	viper.SetConfigName(configFileName)
	viper.AddConfigPath("./.tmp")
	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("error reading config file: ", err)
	}

	if err := viper.UnmarshalKey("context", &ctx); err != nil {
		fmt.Println("error unmarshalling config file: ", err)
	}

	return ctx
}

// apiClient builds a client against the configured server address.
func apiClient() *solvenote.Client {
	ctx := readContext()
	address := ctx.Address
	if address == "" {
		address = defaultAddress
	}

	client := solvenote.NewClient(address)
	if ctx.Token != "" {
		client = client.WithToken(ctx.Token)
	}

	return client
}
