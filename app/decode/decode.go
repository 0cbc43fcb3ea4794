package decode

import (
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/azsqltools/sqlfault-go/app/config"
	"github.com/azsqltools/sqlfault-go/common"
	"github.com/azsqltools/sqlfault-go/throttling"
)

// decodeAndRender decodes the throttling condition from either an explicit
// reason code or an error message carrying one, then writes it to w in the
// requested rendering.
func decodeAndRender(w io.Writer, logger *zap.Logger, output string, code int, message string) error {
	var cond throttling.Condition

	switch {
	case message != "":
		cond = throttling.FromMessage(message)
	case code != 0:
		cond = throttling.FromReasonCode(code)
	default:
		return fmt.Errorf("either a reason code argument or --%s must be specified", messageFlag)
	}

	logger.Debug("reason code decoded", common.ThrottlingLogFields(cond)...)

	if output == config.OutputJSON {
		data, err := json.MarshalIndent(cond, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal condition: %w", err)
		}

		fmt.Fprintln(w, string(data))

		return nil
	}

	fmt.Fprintln(w, cond)

	return nil
}
