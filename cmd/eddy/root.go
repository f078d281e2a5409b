package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/libitx/eddy/config"
)

var (
	encodingFlag string
	cfg          *config.Config
)

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "eddy",
		Short: "Ed25519 signatures and X25519 key agreement",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if encodingFlag != "" {
				v.Set("encoding", encodingFlag)
			}
			loaded, err := config.Load(v)
			if err != nil {
				return errors.Wrap(err, "load config")
			}
			cfg = loaded
			return nil
		},
	}
	root.PersistentFlags().StringVar(&encodingFlag, "encoding", "", "byte encoding: raw, base16, hex or base64 (default base16)")

	root.AddCommand(
		newKeygenCmd(),
		newPubkeyCmd(),
		newSignCmd(),
		newVerifyCmd(),
		newSharedSecretCmd(),
		newParamsCmd(),
	)
	return root
}
