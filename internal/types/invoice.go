package types

// InvoiceStatus is the payment state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

// Collections served by the remote data store
const (
	TableInvoices  = "invoices"
	TableCustomers = "customers"
	TableRevenue   = "revenue"
)

// View paths whose cached renders are invalidated by mutations
const (
	ViewDashboard = "/dashboard"
	ViewInvoices  = "/dashboard/invoices"
)

// LatestInvoicesLimit is how many invoices the dashboard overview shows
const LatestInvoicesLimit = 5
