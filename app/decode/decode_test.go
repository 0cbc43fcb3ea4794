package decode

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/azsqltools/sqlfault-go/app/config"
	"github.com/azsqltools/sqlfault-go/common"
)

func TestDecodeAndRenderText(t *testing.T) {
	logger := common.NewTestLogger(t)

	var buf bytes.Buffer
	err := decodeAndRender(&buf, logger, config.OutputText, 131075, "")
	require.NoError(t, err)
	require.Equal(t,
		"Mode: RejectAll | Cpu: Hard, DataReadIoDelay: None, DatabaseSize: None, "+
			"LogWriteIoDelay: None, PhysicalDatabaseSpace: None, PhysicalLogSpace: None, WorkerThreads: None\n",
		buf.String(),
	)
}

func TestDecodeAndRenderMessage(t *testing.T) {
	logger := common.NewTestLogger(t)

	var buf bytes.Buffer
	err := decodeAndRender(&buf, logger, config.OutputText,
		0, "The service is currently busy. Retry the request after 10 seconds. Code: 131075.")
	require.NoError(t, err)
	require.Contains(t, buf.String(), "Mode: RejectAll")
}

func TestDecodeAndRenderJSON(t *testing.T) {
	logger := common.NewTestLogger(t)

	var buf bytes.Buffer
	err := decodeAndRender(&buf, logger, config.OutputJSON, 131075, "")
	require.NoError(t, err)

	var decoded struct {
		Mode      string `json:"mode"`
		Resources []struct {
			Resource string `json:"resource"`
			Severity string `json:"severity"`
		} `json:"resources"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, "RejectAll", decoded.Mode)
	require.Len(t, decoded.Resources, 9)
}

func TestDecodeAndRenderWithoutInput(t *testing.T) {
	logger := common.NewTestLogger(t)

	var buf bytes.Buffer
	err := decodeAndRender(&buf, logger, config.OutputText, 0, "")
	require.ErrorContains(t, err, "reason code argument or --message")
	require.Empty(t, buf.String())
}
