// Package transactions drives the transactions table and its create, edit,
// delete and bulk import workflows against the backend.
//
// Each workflow is split in two: an I/O half that only talks to the backend
// and may run on any goroutine, and a Finish half that mutates the view
// state and must run on the interaction loop.
package transactions

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/tradebook/internal/api"
	"github.com/aristath/tradebook/internal/domain"
	"github.com/aristath/tradebook/internal/format"
)

// Notice texts.
const (
	MsgAdded   = "Transaction added successfully!"
	MsgUpdated = "Transaction updated successfully!"
	MsgDeleted = "Transaction deleted successfully!"
)

// SampleFilename is where the sample CSV template is saved.
const SampleFilename = "sample_transactions.csv"

// API is the part of the backend the transactions view uses.
type API interface {
	AllTransactions(ctx context.Context) ([]domain.Transaction, error)
	Transaction(ctx context.Context, id domain.ID) (domain.Transaction, error)
	CreateTransaction(ctx context.Context, in domain.TransactionInput) (domain.Transaction, error)
	UpdateTransaction(ctx context.Context, id domain.ID, in domain.TransactionInput) (domain.Transaction, error)
	DeleteTransaction(ctx context.Context, id domain.ID) error
	BulkImport(ctx context.Context, filename string, r io.Reader) (domain.ImportResult, error)
	SampleCSV(ctx context.Context, w io.Writer) (int64, error)
}

// Mode is what saving the form does.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// PendingDelete is the row awaiting confirmation.
type PendingDelete struct {
	ID       domain.ID
	Stock    string
	Quantity int
}

// ViewState is everything the transactions view shows besides the table.
type ViewState struct {
	FormOpen bool
	Mode     Mode
	TargetID domain.ID
	Form     Form

	Delete *PendingDelete
	Import Importer
	Notice *domain.Notice
}

// SaveRequest is a validated form ready to send.
type SaveRequest struct {
	Mode  Mode
	ID    domain.ID
	Input domain.TransactionInput
}

// Controller owns the table and the view state of one transactions view.
type Controller struct {
	api    API
	format format.Formatter
	log    zerolog.Logger
	now    func() time.Time

	Table *Table
	State ViewState

	issued  uint64
	applied uint64
}

// NewController creates a controller with an empty table.
func NewController(api API, f format.Formatter, pageSize int, log zerolog.Logger) *Controller {
	return &Controller{
		api:    api,
		format: f,
		log:    log.With().Str("component", "transactions").Logger(),
		now:    time.Now,
		Table:  NewTable(pageSize),
	}
}

// Formatter returns the display formatter rows are rendered with.
func (c *Controller) Formatter() format.Formatter { return c.format }

// SetClock replaces the time source used for days held and the default buy date.
func (c *Controller) SetClock(now func() time.Time) { c.now = now }

func (c *Controller) notify(n domain.Notice) {
	c.State.Notice = &n
}

// DismissNotice clears the current notice.
func (c *Controller) DismissNotice() { c.State.Notice = nil }

// BeginReload issues a new reload sequence number. Results carrying an older
// number are discarded by FinishReload.
func (c *Controller) BeginReload() uint64 {
	c.issued++
	return c.issued
}

// LoadAll fetches every transaction.
func (c *Controller) LoadAll(ctx context.Context) domain.Result[[]domain.Transaction] {
	return domain.Await(func() ([]domain.Transaction, error) {
		return c.api.AllTransactions(ctx)
	})
}

// FinishReload applies the result of reload seq. It reports false when a
// newer reload has been issued since, in which case nothing changes.
func (c *Controller) FinishReload(seq uint64, res domain.Result[[]domain.Transaction]) bool {
	if seq < c.issued || seq <= c.applied {
		c.log.Debug().Uint64("seq", seq).Uint64("latest", c.issued).Msg("Discarding stale reload")
		return false
	}
	c.applied = seq
	if !res.Ok() {
		c.log.Error().Err(res.Err).Msg("Failed to load transactions")
		c.notify(domain.Danger(clean(api.Message(res.Err, "Error loading transactions"))))
		return true
	}
	c.Table.SetTransactions(res.Value, c.format, c.now())
	c.log.Debug().Int("rows", len(res.Value)).Msg("Transactions table reloaded")
	return true
}

// Reload runs a full reload synchronously.
func (c *Controller) Reload(ctx context.Context) error {
	seq := c.BeginReload()
	res := c.LoadAll(ctx)
	c.FinishReload(seq, res)
	return res.Err
}

// OpenCreate opens an empty form in create mode.
func (c *Controller) OpenCreate() {
	c.State.Mode = ModeCreate
	c.State.TargetID = ""
	c.State.Form.Reset(c.now())
	c.State.FormOpen = true
}

// LoadForEdit fetches the row to edit.
func (c *Controller) LoadForEdit(ctx context.Context, id domain.ID) domain.Result[domain.Transaction] {
	return domain.Await(func() (domain.Transaction, error) {
		return c.api.Transaction(ctx, id)
	})
}

// FinishEdit opens the form in edit mode populated from the fetched row.
func (c *Controller) FinishEdit(id domain.ID, res domain.Result[domain.Transaction]) {
	if !res.Ok() {
		c.log.Error().Err(res.Err).Str("id", id.String()).Msg("Failed to load transaction")
		c.notify(domain.Danger(clean(api.Message(res.Err, "Error loading transaction"))))
		return
	}
	c.State.Mode = ModeEdit
	c.State.TargetID = id
	c.State.Form.Populate(res.Value)
	c.State.FormOpen = true
}

// CloseForm hides the form, resetting it and forgetting the target.
func (c *Controller) CloseForm() {
	c.State.FormOpen = false
	c.State.Mode = ModeCreate
	c.State.TargetID = ""
	c.State.Form.Reset(c.now())
}

// PrepareSave validates the form. On failure the message becomes a notice
// and nothing should be sent.
func (c *Controller) PrepareSave() (SaveRequest, bool) {
	in, err := c.State.Form.Input()
	if err != nil {
		c.notify(domain.Danger(err.Error()))
		return SaveRequest{}, false
	}
	req := SaveRequest{Mode: ModeCreate, Input: in}
	if c.State.Mode == ModeEdit && !c.State.TargetID.IsZero() {
		req.Mode, req.ID = ModeEdit, c.State.TargetID
	}
	return req, true
}

// Submit sends a validated save.
func (c *Controller) Submit(ctx context.Context, req SaveRequest) domain.Result[domain.Transaction] {
	return domain.Await(func() (domain.Transaction, error) {
		if req.Mode == ModeEdit {
			return c.api.UpdateTransaction(ctx, req.ID, req.Input)
		}
		return c.api.CreateTransaction(ctx, req.Input)
	})
}

// FinishSave closes the form on success. It reports whether the table
// should reload. On failure the form stays open with the backend's message.
func (c *Controller) FinishSave(req SaveRequest, res domain.Result[domain.Transaction]) bool {
	if !res.Ok() {
		c.log.Error().Err(res.Err).Msg("Failed to save transaction")
		c.notify(domain.Danger(clean(api.Message(res.Err, api.GenericMessage))))
		return false
	}
	c.CloseForm()
	if req.Mode == ModeEdit {
		c.notify(domain.Success(MsgUpdated))
	} else {
		c.notify(domain.Success(MsgAdded))
	}
	c.log.Info().Str("id", res.Value.ID.String()).Str("stock", req.Input.StockName).Msg("Transaction saved")
	return true
}

// Save validates, sends and reloads synchronously.
func (c *Controller) Save(ctx context.Context) error {
	req, ok := c.PrepareSave()
	if !ok {
		return &ValidationError{Msg: c.State.Notice.Text}
	}
	res := c.Submit(ctx, req)
	if c.FinishSave(req, res) {
		return c.Reload(ctx)
	}
	return res.Err
}

// RequestDelete asks for confirmation before deleting row.
func (c *Controller) RequestDelete(row Row) {
	c.State.Delete = &PendingDelete{
		ID:       row.Transaction.ID,
		Stock:    row.Transaction.StockName,
		Quantity: row.Transaction.BuyQuantity,
	}
}

// CancelDelete dismisses the confirmation without sending anything.
func (c *Controller) CancelDelete() {
	c.State.Delete = nil
}

// ConfirmDelete returns the id to delete, if a confirmation is pending.
func (c *Controller) ConfirmDelete() (domain.ID, bool) {
	if c.State.Delete == nil {
		return "", false
	}
	return c.State.Delete.ID, true
}

// Delete sends the delete request.
func (c *Controller) Delete(ctx context.Context, id domain.ID) error {
	return c.api.DeleteTransaction(ctx, id)
}

// FinishDelete closes the confirmation. It reports whether the table should reload.
func (c *Controller) FinishDelete(id domain.ID, err error) bool {
	if err != nil {
		c.log.Error().Err(err).Str("id", id.String()).Msg("Failed to delete transaction")
		c.notify(domain.Danger(clean(api.Message(err, api.GenericMessage))))
		return false
	}
	c.State.Delete = nil
	c.notify(domain.Success(MsgDeleted))
	c.log.Info().Str("id", id.String()).Msg("Transaction deleted")
	return true
}

// OpenImport shows the import dialog.
func (c *Controller) OpenImport() {
	c.State.Import = Importer{Open: true}
}

// SelectImportFile records the chosen file.
func (c *Controller) SelectImportFile(path string) {
	c.State.Import.Select(path)
}

// BeginImport marks the upload in flight and returns the file to send.
func (c *Controller) BeginImport() (string, bool) {
	if !c.State.Import.Begin() {
		if !IsCSV(c.State.Import.File) {
			c.notify(domain.Danger(MsgPickCSV))
		}
		return "", false
	}
	return c.State.Import.File, true
}

// Import uploads the file at path.
func (c *Controller) Import(ctx context.Context, path string) domain.Result[domain.ImportResult] {
	return domain.Await(func() (domain.ImportResult, error) {
		f, err := os.Open(path)
		if err != nil {
			return domain.ImportResult{}, fmt.Errorf("open import file: %w", err)
		}
		defer f.Close()
		return c.api.BulkImport(ctx, filepath.Base(path), f)
	})
}

// FinishImport applies the upload outcome to the dialog. It reports whether
// the table should reload and whether the dialog should close itself after
// AutoCloseDelay.
func (c *Controller) FinishImport(res domain.Result[domain.ImportResult]) (reload, autoClose bool) {
	reload, autoClose = c.State.Import.Finish(res)
	ev := c.log.Info()
	if !res.Ok() {
		ev = c.log.Error().Err(res.Err)
	}
	ev.Int("imported", res.Value.SuccessfulImports).Int("rejected", len(res.Value.Errors)).Msg("Bulk import finished")
	return reload, autoClose
}

// CloseImport hides the import dialog and resets it.
func (c *Controller) CloseImport() {
	c.State.Import.Close()
}

// DownloadSample writes the sample CSV template to path.
func (c *Controller) DownloadSample(ctx context.Context, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := c.api.SampleCSV(ctx, f); err != nil {
		f.Close()
		return fmt.Errorf("download sample csv: %w", err)
	}
	return f.Close()
}
