package entity

// SystemSalePolicy configuración global (fila única) que consulta el orquestador de ventas.
type SystemSalePolicy struct {
	AllowSaleWithoutStock    bool
	AllowSaleWithoutRegister bool
	CurrencySymbol           string
	LowStockAlert            bool
	DefaultMinStock          int
}

// PrintConfig configuración de impresión de tickets por sucursal.
type PrintConfig struct {
	BranchID      string
	PrintMode     string // pdf | termica
	TicketType    string // 58mm | 80mm | a4
	ShowLogo      bool
	ShowTaxID     bool
	FooterMessage string
	PrinterName   string
}

// BranchProfile datos de la sucursal para encabezados de ticket.
type BranchProfile struct {
	BranchID     string
	TradeName    string
	LegalName    string
	TaxID        string // CUIT
	Phone        string
	Email        string
	Address      string
	City         string
	TaxCondition string
	LogoBase64   string
}
