package transactions

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/aristath/tradebook/internal/api"
	"github.com/aristath/tradebook/internal/domain"
)

// AutoCloseDelay is how long a fully successful import stays on screen.
const AutoCloseDelay = 3000 * time.Millisecond

// Import messages.
const (
	MsgUploadFailed = "Upload failed"
	MsgPickCSV      = "Please select a CSV file."
)

// Panel is the result area of the import dialog.
type Panel int

const (
	PanelNone Panel = iota
	PanelSuccess
	PanelWarning
	PanelError
)

// Importer is the state of the bulk import dialog.
type Importer struct {
	Open      bool
	File      string
	Uploading bool
	Panel     Panel
	Message   string
	Errors    []string
}

// IsCSV reports whether name ends in .csv, ignoring case. Only the name is
// checked.
func IsCSV(name string) bool {
	return strings.HasSuffix(strings.ToLower(filepath.Base(name)), ".csv")
}

// Select records the chosen file. Non-CSV names leave upload disabled.
func (im *Importer) Select(path string) {
	im.File = path
	im.Panel, im.Message, im.Errors = PanelNone, "", nil
}

// CanUpload reports whether the upload action is enabled.
func (im *Importer) CanUpload() bool {
	return IsCSV(im.File) && !im.Uploading
}

// Begin marks the upload in flight. It reports false when upload is disabled.
func (im *Importer) Begin() bool {
	if !im.CanUpload() {
		return false
	}
	im.Uploading = true
	im.Panel, im.Message, im.Errors = PanelNone, "", nil
	return true
}

// Finish applies the upload outcome. reload is set whenever rows may have
// been inserted; autoClose only for a clean import.
func (im *Importer) Finish(res domain.Result[domain.ImportResult]) (reload, autoClose bool) {
	im.Uploading = false

	if !res.Ok() {
		im.Panel = PanelError
		im.Message = clean(api.Message(res.Err, MsgUploadFailed))
		im.Errors = nil
		return false, false
	}

	r := res.Value
	if r.Partial() {
		im.Panel = PanelWarning
		im.Message = clean(warningText(r))
		im.Errors = cleanAll(r.Errors)
		return true, false
	}

	im.Panel = PanelSuccess
	im.Message = clean(r.Message)
	im.Errors = nil
	return true, true
}

func warningText(r domain.ImportResult) string {
	if r.Warning == "" {
		return r.Message
	}
	return r.Warning + ". " + r.Message
}

// Close hides the dialog and resets the selection and panels.
func (im *Importer) Close() {
	*im = Importer{}
}
