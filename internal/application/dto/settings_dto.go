package dto

// SystemSettingsResponse configuración global de ventas.
type SystemSettingsResponse struct {
	AllowSaleWithoutStock    bool   `json:"allow_sale_without_stock"`
	AllowSaleWithoutRegister bool   `json:"allow_sale_without_register"`
	CurrencySymbol           string `json:"currency_symbol"`
	LowStockAlert            bool   `json:"low_stock_alert"`
	DefaultMinStock          int    `json:"default_min_stock"`
}

// UpdateSystemSettingsRequest body para PUT /api/settings/system.
type UpdateSystemSettingsRequest struct {
	AllowSaleWithoutStock    bool   `json:"allow_sale_without_stock"`
	AllowSaleWithoutRegister bool   `json:"allow_sale_without_register"`
	CurrencySymbol           string `json:"currency_symbol" validate:"required,max=5"`
	LowStockAlert            bool   `json:"low_stock_alert"`
	DefaultMinStock          int    `json:"default_min_stock" validate:"gte=0"`
}

// PrintConfigResponse configuración de impresión de la sucursal.
type PrintConfigResponse struct {
	PrintMode     string `json:"print_mode"`
	TicketType    string `json:"ticket_type"`
	ShowLogo      bool   `json:"show_logo"`
	ShowTaxID     bool   `json:"show_tax_id"`
	FooterMessage string `json:"footer_message"`
	PrinterName   string `json:"printer_name,omitempty"`
}

// BranchProfileResponse datos de la sucursal para tickets.
type BranchProfileResponse struct {
	TradeName    string `json:"trade_name"`
	LegalName    string `json:"legal_name"`
	TaxID        string `json:"tax_id"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	Address      string `json:"address"`
	City         string `json:"city,omitempty"`
	TaxCondition string `json:"tax_condition,omitempty"`
	LogoBase64   string `json:"logo_base64,omitempty"`
}
