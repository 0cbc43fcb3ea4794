package decode

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/azsqltools/sqlfault-go/app/config"
	"github.com/azsqltools/sqlfault-go/common"
)

var Cmd = &cobra.Command{
	Use:   "decode <reason-code>",
	Short: "Decode a resource governance reason code",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runFromCLI(cmd, args); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

const (
	configFlag   = "config"
	messageFlag  = "message"
	outputFlag   = "output"
	logLevelFlag = "log-level"
)

func init() {
	Cmd.Flags().StringP(configFlag, "c", "", "path to config file")
	Cmd.Flags().StringP(messageFlag, "m", "", "error message to extract the reason code from")
	Cmd.Flags().StringP(outputFlag, "o", "", "output rendering: text or json")
	Cmd.Flags().String(logLevelFlag, "", "minimal log level")
}

func runFromCLI(cmd *cobra.Command, args []string) error {
	message, err := cmd.Flags().GetString(messageFlag)
	if err != nil {
		return fmt.Errorf("get message flag: %v", err)
	}

	var code int

	if len(args) == 1 {
		code, err = strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("parse reason code '%s': %w", args[0], err)
		}
	}

	cfg, err := newConfigFromFlags(cmd)
	if err != nil {
		return err
	}

	logger, err := common.NewLoggerFromLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("new logger: %w", err)
	}

	return decodeAndRender(os.Stdout, logger, cfg.Output, code, message)
}

func newConfigFromFlags(cmd *cobra.Command) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString(configFlag)
	if err != nil {
		return nil, fmt.Errorf("get config flag: %v", err)
	}

	output, err := cmd.Flags().GetString(outputFlag)
	if err != nil {
		return nil, fmt.Errorf("get output flag: %v", err)
	}

	logLevel, err := cmd.Flags().GetString(logLevelFlag)
	if err != nil {
		return nil, fmt.Errorf("get log-level flag: %v", err)
	}

	cfg, err := config.NewConfigFromPath(configPath)
	if err != nil {
		return nil, fmt.Errorf("new config: %w", err)
	}

	if err := cfg.Override(logLevel, output); err != nil {
		return nil, fmt.Errorf("apply flag overrides: %w", err)
	}

	return cfg, nil
}
