package main

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/libitx/eddy"
	"github.com/libitx/eddy/eddsa"
)

func ctxFromConfig() *eddy.Context {
	return eddy.NewContext(cfg.HashFunc())
}

func encodingOf() eddy.Encoding {
	return eddy.Encoding(cfg.Encoding)
}

func logOp(op string, start time.Time, err error) {
	ev := logger.Info()
	if err != nil {
		ev = logger.Error().Err(err)
	}
	ev.Str("op", op).Str("encoding", string(encodingOf())).Dur("elapsed", time.Since(start)).Msg("eddy")
}

func newKeygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new Ed25519 key pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			kp, err := ctxFromConfig().GenerateKey(nil)
			defer func() { logOp("keygen", start, err) }()
			if err != nil {
				return errors.Wrap(err, "generate key")
			}
			seedStr, err := eddy.Encode(encodingOf(), kp.Private.Seed())
			if err != nil {
				return err
			}
			pubStr, err := eddy.Encode(encodingOf(), kp.Public.Bytes())
			if err != nil {
				return err
			}
			fmt.Printf("seed:   %s\n", seedStr)
			fmt.Printf("pubkey: %s\n", pubStr)
			return nil
		},
	}
}

func newPubkeyCmd() *cobra.Command {
	var seedStr string
	cmd := &cobra.Command{
		Use:   "pubkey",
		Short: "Derive a public key from a seed",
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			var err error
			defer func() { logOp("pubkey", start, err) }()

			seed, err := eddy.Decode(encodingOf(), seedStr)
			if err != nil {
				return err
			}
			sk, err := ctxFromConfig().PrivateKeyFromSeed(seed)
			if err != nil {
				return err
			}
			pubStr, err := eddy.Encode(encodingOf(), sk.Public().Bytes())
			if err != nil {
				return err
			}
			fmt.Println(pubStr)
			return nil
		},
	}
	cmd.Flags().StringVar(&seedStr, "seed", "", "encoded 32-byte seed (required)")
	cmd.MarkFlagRequired("seed")
	return cmd
}

func newSignCmd() *cobra.Command {
	var seedStr, message string
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a message",
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			var err error
			defer func() { logOp("sign", start, err) }()

			seed, err := eddy.Decode(encodingOf(), seedStr)
			if err != nil {
				return err
			}
			sk, err := ctxFromConfig().PrivateKeyFromSeed(seed)
			if err != nil {
				return err
			}
			sig, err := ctxFromConfig().Sign(sk, []byte(message))
			if err != nil {
				return err
			}
			sigStr, err := eddy.Encode(encodingOf(), sig.Bytes())
			if err != nil {
				return err
			}
			fmt.Println(sigStr)
			return nil
		},
	}
	cmd.Flags().StringVar(&seedStr, "seed", "", "encoded 32-byte seed (required)")
	cmd.Flags().StringVar(&message, "message", "", "message to sign (required)")
	cmd.MarkFlagRequired("seed")
	cmd.MarkFlagRequired("message")
	return cmd
}

func newVerifyCmd() *cobra.Command {
	var pubStr, sigStr, message string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a signature",
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			var err error
			defer func() { logOp("verify", start, err) }()

			pubBytes, err := eddy.Decode(encodingOf(), pubStr)
			if err != nil {
				return err
			}
			pub, err := eddy.ParsePublicKey(pubBytes)
			if err != nil {
				return err
			}
			sigBytes, err := eddy.Decode(encodingOf(), sigStr)
			if err != nil {
				return err
			}
			sig, serr := eddsa.ParseSignature(sigBytes)
			if serr != nil {
				err = errors.Wrap(serr, "verify: decode signature")
				return err
			}

			ok, verr := ctxFromConfig().Verify(pub, []byte(message), sig)
			if verr != nil {
				err = verr
				return err
			}
			fmt.Println(ok)
			return nil
		},
	}
	cmd.Flags().StringVar(&pubStr, "pubkey", "", "encoded 32-byte public key (required)")
	cmd.Flags().StringVar(&sigStr, "sig", "", "encoded 64-byte signature (required)")
	cmd.Flags().StringVar(&message, "message", "", "message that was signed (required)")
	cmd.MarkFlagRequired("pubkey")
	cmd.MarkFlagRequired("sig")
	cmd.MarkFlagRequired("message")
	return cmd
}

func newSharedSecretCmd() *cobra.Command {
	var seedStr, peerStr string
	cmd := &cobra.Command{
		Use:   "shared-secret",
		Short: "Derive an X25519 shared secret from an Ed25519 key pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			var err error
			defer func() { logOp("shared-secret", start, err) }()

			seed, err := eddy.Decode(encodingOf(), seedStr)
			if err != nil {
				return err
			}
			sk, err := ctxFromConfig().PrivateKeyFromSeed(seed)
			if err != nil {
				return err
			}
			peerBytes, err := eddy.Decode(encodingOf(), peerStr)
			if err != nil {
				return err
			}
			peer, err := eddy.ParsePublicKey(peerBytes)
			if err != nil {
				return err
			}
			secret, err := ctxFromConfig().SharedSecret(sk, peer)
			if err != nil {
				return err
			}
			secretStr, err := eddy.Encode(encodingOf(), secret)
			if err != nil {
				return err
			}
			fmt.Println(secretStr)
			return nil
		},
	}
	cmd.Flags().StringVar(&seedStr, "seed", "", "encoded 32-byte seed (required)")
	cmd.Flags().StringVar(&peerStr, "peer", "", "encoded 32-byte peer public key (required)")
	cmd.MarkFlagRequired("seed")
	cmd.MarkFlagRequired("peer")
	return cmd
}

func newParamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "params",
		Short: "Print the curve's domain parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := eddy.GetParams()
			enc := encodingOf()
			print := func(name string, b []byte) {
				s, _ := eddy.Encode(enc, b)
				fmt.Printf("%-6s %s\n", name, s)
			}
			print("p", p.P)
			print("a", p.A)
			print("d", p.D)
			print("gx", p.Gx)
			print("gy", p.Gy)
			print("l", p.L)
			fmt.Printf("%-6s %d\n", "h", p.H)
			print("sqrtm1", p.Sqrtm1)
			return nil
		},
	}
}
