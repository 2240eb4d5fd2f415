package entity

import (
	"context"
	"time"

	"github.com/catbe721-cyber/nexus-wms-sub001/internal/core/apperror"
)

// Document is the base type for business transactions.
// Examples: InboundReceipt.
type Document struct {
	BaseDocument

	// Number is the document number (unique within type)
	Number string `json:"number"`

	// Date is the business date of the document
	Date time.Time `json:"date"`

	// Posted indicates the document movements are recorded in the ledger
	Posted bool `json:"posted"`

	// Comment is an optional user comment
	Comment string `json:"comment,omitempty"`
}

// NewDocument creates a new Document with generated ID.
func NewDocument() Document {
	return Document{
		BaseDocument: NewBaseDocument(),
		Date:         time.Now().UTC(),
	}
}

// Validate implements Validatable interface.
func (d *Document) Validate(ctx context.Context) error {
	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}
	return nil
}

// CanModify checks if the document can be modified.
// Posted documents require unposting first.
func (d *Document) CanModify() error {
	if d.Posted {
		return apperror.NewBusinessRule(
			apperror.CodeDocumentPosted,
			"Cannot modify posted document. Unpost first.",
		).WithDetail("document_id", d.ID.String())
	}
	return nil
}

// MarkPosted sets the posted flag.
func (d *Document) MarkPosted() {
	d.Posted = true
	d.Touch()
}

// MarkUnposted clears the posted flag.
func (d *Document) MarkUnposted() {
	d.Posted = false
	d.Touch()
}
