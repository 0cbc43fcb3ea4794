package classify

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/azsqltools/sqlfault-go/app/config"
	"github.com/azsqltools/sqlfault-go/common"
)

var Cmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a server error as transient or permanent",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runFromCLI(cmd, args); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

const (
	configFlag   = "config"
	numbersFlag  = "numbers"
	messageFlag  = "message"
	outputFlag   = "output"
	logLevelFlag = "log-level"
)

func init() {
	Cmd.Flags().StringP(configFlag, "c", "", "path to config file")
	Cmd.Flags().Int32SliceP(numbersFlag, "n", nil, "server error numbers, in reporting order")
	Cmd.Flags().StringP(messageFlag, "m", "", "server error message")
	Cmd.Flags().StringP(outputFlag, "o", "", "output rendering: text or json")
	Cmd.Flags().String(logLevelFlag, "", "minimal log level")

	if err := Cmd.MarkFlagRequired(numbersFlag); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runFromCLI(cmd *cobra.Command, _ []string) error {
	numbers, err := cmd.Flags().GetInt32Slice(numbersFlag)
	if err != nil {
		return fmt.Errorf("get numbers flag: %v", err)
	}

	message, err := cmd.Flags().GetString(messageFlag)
	if err != nil {
		return fmt.Errorf("get message flag: %v", err)
	}

	cfg, err := newConfigFromFlags(cmd)
	if err != nil {
		return err
	}

	logger, err := common.NewLoggerFromLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("new logger: %w", err)
	}

	return classifyAndRender(os.Stdout, logger, cfg.Output, numbers, message)
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
