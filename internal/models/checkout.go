package models

// LedgerHeader is the fixed column order of a checkout ledger
var LedgerHeader = []string{"book_uid", "isbn_13", "patron_id", "date_checkout", "date_due", "date_returned"}

// CheckoutRecord represents one checkout/return row of the ledger
type CheckoutRecord struct {
	BookUID      string `json:"book_uid"`
	ISBN13       string `json:"isbn_13"`
	PatronID     string `json:"patron_id"`
	DateCheckout string `json:"date_checkout"` // MM/DD/YYYY
	DateDue      string `json:"date_due"`      // MM/DD/YYYY
	DateReturned string `json:"date_returned"` // MM/DD/YYYY
}
