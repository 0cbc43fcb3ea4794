package classify

import (
	"encoding/json"
	"fmt"
	"io"

	mssql "github.com/denisenkom/go-mssqldb"
	"go.uber.org/zap"

	"github.com/azsqltools/sqlfault-go/app/config"
	"github.com/azsqltools/sqlfault-go/common"
	"github.com/azsqltools/sqlfault-go/throttling"
	"github.com/azsqltools/sqlfault-go/transient"
)

// classifyAndRender reconstructs a driver error carrying the given server
// error numbers as its sub-errors, classifies it and writes the verdict to
// w in the requested rendering. The message is attached to every sub-error;
// it only matters for the throttling number, whose reason code is parsed
// from it.
func classifyAndRender(w io.Writer, logger *zap.Logger, output string, numbers []int32, message string) error {
	if len(numbers) == 0 {
		return fmt.Errorf("at least one error number must be specified")
	}

	subErrors := make([]mssql.Error, 0, len(numbers))
	for _, number := range numbers {
		subErrors = append(subErrors, mssql.Error{Number: number, Message: message})
	}

	driverErr := subErrors[0]
	driverErr.All = subErrors

	result := transient.Classify(driverErr)

	logger.Debug("error classified", common.ClassificationLogFields(result)...)

	if output == config.OutputJSON {
		payload := struct {
			Transient  bool                  `json:"transient"`
			Throttling *throttling.Condition `json:"throttling,omitempty"`
		}{
			Transient:  result.Transient,
			Throttling: result.Throttling,
		}

		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal classification: %w", err)
		}

		fmt.Fprintln(w, string(data))

		return nil
	}

	fmt.Fprintln(w, "transient:", result.Transient)

	if result.Throttling != nil {
		fmt.Fprintln(w, result.Throttling)
	}

	return nil
}
