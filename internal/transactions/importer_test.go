package transactions

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/tradebook/internal/api"
	"github.com/aristath/tradebook/internal/domain"
)

func TestIsCSV(t *testing.T) {
	assert.True(t, IsCSV("trades.csv"))
	assert.True(t, IsCSV("/tmp/TRADES.CSV"))
	assert.True(t, IsCSV("a.b.Csv"))
	assert.False(t, IsCSV("trades.csv.xlsx"))
	assert.False(t, IsCSV("csv"))
	assert.False(t, IsCSV(""))
}

func TestImporter_WarningWithoutWarningText(t *testing.T) {
	im := Importer{Open: true, File: "x.csv"}
	im.Begin()
	reload, autoClose := im.Finish(domain.Result[domain.ImportResult]{Value: domain.ImportResult{
		Message: "Imported 1",
		Errors:  []string{"row 2: Missing stock name"},
	}})

	assert.True(t, reload)
	assert.False(t, autoClose)
	assert.Equal(t, "Imported 1", im.Message)
}

func TestImporter_ErrorsVerbatimWithoutEscapes(t *testing.T) {
	im := Importer{Open: true, File: "x.csv"}
	im.Begin()
	im.Finish(domain.Result[domain.ImportResult]{Value: domain.ImportResult{
		Message: "Successfully imported 0 transactions",
		Warning: "3 rows had errors and were skipped",
		Errors: []string{
			"row 5: stock name <unknown> rejected",
			"row 9: a &amp; b",
			"row 11: \x1b[2J\x1b[31mred\x1b[0m",
		},
	}})

	assert.Equal(t, PanelWarning, im.Panel)
	assert.Equal(t, []string{
		"row 5: stock name <unknown> rejected",
		"row 9: a &amp; b",
		"row 11: red",
	}, im.Errors)
}

func TestImporter_FailureMessageWithoutEscapes(t *testing.T) {
	im := Importer{Open: true, File: "x.csv"}
	im.Begin()
	im.Finish(domain.Result[domain.ImportResult]{Err: &api.Error{Status: 400, Message: "\x1b]0;pwned\x07File must be a <CSV>"}})

	assert.Equal(t, PanelError, im.Panel)
	assert.Equal(t, "File must be a <CSV>", im.Message)
}

func TestImporter_TransportFailure(t *testing.T) {
	im := Importer{Open: true, File: "x.csv"}
	im.Begin()
	im.Finish(domain.Result[domain.ImportResult]{Err: errors.New("connection refused")})

	assert.Equal(t, PanelError, im.Panel)
	assert.Equal(t, MsgUploadFailed, im.Message)
	assert.False(t, im.Uploading)
}

func TestImporter_SelectClearsPanels(t *testing.T) {
	im := Importer{Open: true, Panel: PanelError, Message: "Upload failed"}
	im.Select("next.csv")

	assert.Equal(t, PanelNone, im.Panel)
	assert.Empty(t, im.Message)
	assert.True(t, im.CanUpload())
}
