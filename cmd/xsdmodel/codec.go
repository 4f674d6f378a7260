package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/CognitoIQ/xsdmodel/xsdtypes"
)

var codecs = map[string]xsdtypes.Codec{
	"datetime":        xsdtypes.DateTimeCodec,
	"minute-datetime": xsdtypes.MinuteDateTimeCodec,
	"duration":        xsdtypes.DurationCodec,
}

func parseMode(s string) (xsdtypes.Mode, error) {
	switch s {
	case "document":
		return xsdtypes.Document, nil
	case "native":
		return xsdtypes.Native, nil
	}
	return 0, fmt.Errorf("unknown mode %q, must be document or native", s)
}

func newCodecCmd() *cobra.Command {
	var (
		typ, mode string
		schema    bool
	)
	codecCmd := &cobra.Command{
		Use:   "codec [flags] value ...",
		Short: "Validate scalar values and print their serialized form",
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, ok := codecs[typ]
			if !ok {
				return fmt.Errorf("unknown type %q, must be datetime, minute-datetime or duration", typ)
			}
			m, err := parseMode(mode)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if schema {
				data, err := json.MarshalIndent(codec.Schema(), "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\n", data)
			}
			for _, arg := range args {
				v, err := codec.Validate(arg)
				if err != nil {
					return err
				}
				s, err := codec.Serialize(v, m)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, s)
			}
			return nil
		},
	}
	codecCmd.Flags().StringVarP(&typ, "type", "t", "duration", "scalar type: datetime, minute-datetime or duration")
	codecCmd.Flags().StringVar(&mode, "mode", "document", "serialization mode: document or native")
	codecCmd.Flags().BoolVar(&schema, "schema", false, "print the JSON schema of the type")
	return codecCmd
}
