package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/azsqltools/sqlfault-go/app/classify"
	"github.com/azsqltools/sqlfault-go/app/decode"
	"github.com/azsqltools/sqlfault-go/app/version"
)

var rootCmd = &cobra.Command{
	Use:   "sqlfault",
	Short: "Transient fault inspection for SQL Server and Azure SQL errors",
}

func init() {
	rootCmd.AddCommand(decode.Cmd)
	rootCmd.AddCommand(classify.Cmd)
	rootCmd.AddCommand(version.Cmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
